package history

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"nathanbeddoewebdev/pbsync/internal/database"
	"nathanbeddoewebdev/pbsync/internal/runlog"
)

func setupDB(t *testing.T) {
	t.Helper()
	database.SetPath(filepath.Join(t.TempDir(), "pbsync.db"))
	t.Cleanup(database.ResetPath)
}

func seed(t *testing.T, runs ...*runlog.Run) {
	t.Helper()
	repo, err := runlog.Open()
	if err != nil {
		t.Fatalf("runlog.Open: %v", err)
	}
	defer repo.Close()
	for _, run := range runs {
		if err := repo.Save(run); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
}

func execHistory(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func TestList_Empty(t *testing.T) {
	setupDB(t)

	stdout, err := execHistory(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if !strings.Contains(stdout, "No export runs found.") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestList_Table(t *testing.T) {
	setupDB(t)
	seed(t, &runlog.Run{
		Source: "carddav", Output: "3cx_contacts.csv", Fetched: 5, Exported: 4,
		Discarded: 1, Outcome: runlog.OutcomeSuccess, DurationMs: 1500,
	})

	stdout, err := execHistory(t, "list")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	for _, want := range []string{"carddav", "success", "1.5s", "3cx_contacts.csv"} {
		if !strings.Contains(stdout, want) {
			t.Errorf("expected %q in output:\n%s", want, stdout)
		}
	}
}

func TestList_JSONFilteredBySource(t *testing.T) {
	setupDB(t)
	seed(t,
		&runlog.Run{Source: "carddav", Outcome: runlog.OutcomeSuccess},
		&runlog.Run{Source: "file", Outcome: runlog.OutcomeError, Detail: "boom"},
	)

	stdout, err := execHistory(t, "list", "--source", "file", "-o", "json")
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}

	var runs []runlog.Run
	if err := json.Unmarshal([]byte(stdout), &runs); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(runs) != 1 || runs[0].Source != "file" || runs[0].Detail != "boom" {
		t.Errorf("unexpected runs: %+v", runs)
	}
}

func TestList_InvalidLimit(t *testing.T) {
	setupDB(t)

	if _, err := execHistory(t, "list", "--limit", "0"); err == nil {
		t.Error("expected error for zero limit")
	}
}

func TestPrune(t *testing.T) {
	setupDB(t)
	seed(t,
		&runlog.Run{Source: "carddav", Outcome: runlog.OutcomeSuccess, Timestamp: time.Now().UTC().Add(-40 * 24 * time.Hour)},
		&runlog.Run{Source: "carddav", Outcome: runlog.OutcomeSuccess},
	)

	stdout, err := execHistory(t, "prune", "--older-than", "30d")
	if err != nil {
		t.Fatalf("prune failed: %v", err)
	}
	if !strings.Contains(stdout, "Removed 1 run(s).") {
		t.Errorf("unexpected output: %s", stdout)
	}
}

func TestPrune_RequiresDuration(t *testing.T) {
	setupDB(t)

	_, err := execHistory(t, "prune")
	if err == nil || !strings.Contains(err.Error(), "--older-than is required") {
		t.Errorf("expected required flag error, got %v", err)
	}
}

func TestParseDuration(t *testing.T) {
	tests := []struct {
		in      string
		want    time.Duration
		wantErr bool
	}{
		{in: "30d", want: 30 * 24 * time.Hour},
		{in: "72h", want: 72 * time.Hour},
		{in: "90m", want: 90 * time.Minute},
		{in: "-1d", wantErr: true},
		{in: "xd", wantErr: true},
		{in: "soon", wantErr: true},
	}

	for _, tt := range tests {
		got, err := parseDuration(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("parseDuration(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseDuration(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("parseDuration(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := map[int64]string{
		250:       "250ms",
		1500:      "1.5s",
		180000:    "3m",
		7_200_000: "2h",
	}
	for ms, want := range tests {
		if got := formatDuration(ms); got != want {
			t.Errorf("formatDuration(%d) = %q, want %q", ms, got, want)
		}
	}
}
