package export

import (
	"bytes"
	"encoding/csv"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"nathanbeddoewebdev/pbsync/cmd/cmdutil"
	"nathanbeddoewebdev/pbsync/internal/config"
	"nathanbeddoewebdev/pbsync/internal/contacts/domain"
	"nathanbeddoewebdev/pbsync/internal/contacts/phonebook"
	"nathanbeddoewebdev/pbsync/internal/contacts/providers"
	"nathanbeddoewebdev/pbsync/internal/database"
	"nathanbeddoewebdev/pbsync/internal/runlog"
	"nathanbeddoewebdev/pbsync/internal/services/auth"

	"github.com/google/go-cmp/cmp"
)

const sampleVCF = `BEGIN:VCARD
FN:Ada Lovelace
N:Lovelace;Ada;;;
TEL;TYPE=WORK:+44 20 7946 0000
TEL;TYPE=CELL:+44 7700 900123
EMAIL:ada@example.com
END:VCARD
BEGIN:VCARD
NOTE:no name
END:VCARD
BEGIN:VCARD
N:Hopper;Grace;;;
TEL;TYPE=HOME:555-0100
END:VCARD
`

type env struct {
	dir   string
	vcf   string
	store *auth.MockStore
}

func setup(t *testing.T) env {
	t.Helper()
	dir := t.TempDir()

	config.SetPath(filepath.Join(dir, "config.json"))
	t.Cleanup(config.ResetPath)
	database.SetPath(filepath.Join(dir, "pbsync.db"))
	t.Cleanup(database.ResetPath)

	providers.Reset()
	providers.RegisterAll()
	t.Cleanup(providers.Reset)

	store := auth.NewMockStore()
	cmdutil.StoreFactory = func() auth.Store { return store }
	t.Cleanup(func() { cmdutil.StoreFactory = auth.DefaultStore })

	vcf := filepath.Join(dir, "contacts.vcf")
	if err := os.WriteFile(vcf, []byte(sampleVCF), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return env{dir: dir, vcf: vcf, store: store}
}

func execExport(t *testing.T, args ...string) (stdout string, err error) {
	t.Helper()
	var outBuf, errBuf bytes.Buffer
	cmd := NewCommand()
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return outBuf.String(), err
}

func readCSV(t *testing.T, path string) [][]string {
	t.Helper()
	f, err := os.Open(path)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer f.Close()
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	return records
}

func history(t *testing.T) []runlog.Run {
	t.Helper()
	repo, err := runlog.Open()
	if err != nil {
		t.Fatalf("runlog.Open: %v", err)
	}
	defer repo.Close()
	runs, err := repo.List(10)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	return runs
}

func TestExport_FileSourceWritesCSV(t *testing.T) {
	e := setup(t)
	out := filepath.Join(e.dir, "out", "phonebook.csv")

	stdout, err := execExport(t, "--source", "file", "--vcf-path", e.vcf, "--output", out)
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(stdout, "Exported 2 contact(s)") {
		t.Errorf("unexpected summary:\n%s", stdout)
	}

	records := readCSV(t, out)
	if diff := cmp.Diff(phonebook.Columns, records[0]); diff != "" {
		t.Errorf("header mismatch (-want +got):\n%s", diff)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}

	type row struct{ ID, First, Last, Phone, Mobile, Home, Work string }
	var got []row
	for _, r := range records[1:] {
		got = append(got, row{r[0], r[1], r[2], r[3], r[9], r[10], r[11]})
	}
	want := []row{
		{"1", "Ada", "Lovelace", "+44 20 7946 0000", "+44 7700 900123", "", "+44 20 7946 0000"},
		{"2", "Grace", "Hopper", "555-0100", "", "555-0100", ""},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}

	runs := history(t)
	if len(runs) != 1 {
		t.Fatalf("expected 1 recorded run, got %d", len(runs))
	}
	if runs[0].Outcome != runlog.OutcomeSuccess || runs[0].Exported != 2 || runs[0].Discarded != 1 || runs[0].Fetched != 3 {
		t.Errorf("unexpected run: %+v", runs[0])
	}
}

func TestExport_DryRunWritesNothing(t *testing.T) {
	e := setup(t)
	out := filepath.Join(e.dir, "phonebook.csv")

	stdout, err := execExport(t, "--source", "file", "--vcf-path", e.vcf, "--output", out, "--dry-run")
	if err != nil {
		t.Fatalf("export failed: %v", err)
	}
	if !strings.Contains(stdout, "Dry run") {
		t.Errorf("unexpected summary:\n%s", stdout)
	}
	if _, err := os.Stat(out); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("expected no output file, stat err = %v", err)
	}

	runs := history(t)
	if len(runs) != 1 || runs[0].Outcome != runlog.OutcomeDryRun {
		t.Errorf("unexpected history: %+v", runs)
	}
}

func TestExport_NoContactsLeavesOutputUntouched(t *testing.T) {
	e := setup(t)
	vcf := filepath.Join(e.dir, "nameless.vcf")
	if err := os.WriteFile(vcf, []byte("BEGIN:VCARD\nNOTE:x\nEND:VCARD\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	out := filepath.Join(e.dir, "phonebook.csv")
	if err := os.WriteFile(out, []byte("previous"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	_, err := execExport(t, "--source", "file", "--vcf-path", vcf, "--output", out)
	if !errors.Is(err, domain.ErrNoContacts) {
		t.Fatalf("expected ErrNoContacts, got %v", err)
	}

	data, _ := os.ReadFile(out)
	if string(data) != "previous" {
		t.Errorf("output file was modified: %q", data)
	}

	runs := history(t)
	if len(runs) != 1 || runs[0].Outcome != runlog.OutcomeError || runs[0].Detail == "" {
		t.Errorf("unexpected history: %+v", runs)
	}
}

func TestExport_CardDAVUnauthorized(t *testing.T) {
	e := setup(t)
	_ = e.store.SetPassword("alice", "wrong")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	t.Cleanup(srv.Close)

	_, err := execExport(t, "--url", srv.URL+"/contacts/", "--username", "alice", "--dry-run")
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if !strings.Contains(err.Error(), "pbsync auth login") {
		t.Errorf("expected login hint, got %v", err)
	}
}

func TestExport_CardDAVWithoutPassword(t *testing.T) {
	setup(t)

	_, err := execExport(t, "--url", "https://dav.example.com/contacts/", "--username", "nobody")
	if !errors.Is(err, auth.ErrPasswordNotFound) {
		t.Fatalf("expected ErrPasswordNotFound, got %v", err)
	}
}

func TestExport_InvalidSettings(t *testing.T) {
	setup(t)

	_, err := execExport(t, "--source", "carddav")
	if err == nil || !strings.Contains(err.Error(), "carddav-url is required") {
		t.Errorf("expected settings error, got %v", err)
	}
}
