package config

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestResolve_Defaults(t *testing.T) {
	got := Resolve(nil, Overrides{})
	want := Settings{
		Source:  DefaultSource,
		Output:  DefaultOutput,
		Workers: DefaultWorkers,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestResolve_OverridesWin(t *testing.T) {
	cfg := &Config{
		Source:     "carddav",
		CardDAVURL: "https://cloud.example.com/remote.php/dav/addressbooks/users/a/b/",
		Username:   "alice",
		Output:     "stored.csv",
		Workers:    2,
	}
	got := Resolve(cfg, Overrides{Output: "flag.csv", Workers: 8, Source: "FILE", VCFPath: "/tmp/x.vcf"})

	want := Settings{
		Source:     "file",
		CardDAVURL: cfg.CardDAVURL,
		Username:   "alice",
		VCFPath:    "/tmp/x.vcf",
		Output:     "flag.csv",
		Workers:    8,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Resolve mismatch (-want +got):\n%s", diff)
	}
}

func TestValidate_CardDAVComplete(t *testing.T) {
	s := Settings{
		Source:     "carddav",
		CardDAVURL: "https://cloud.example.com/dav/",
		Username:   "alice",
		Output:     "out.csv",
		Workers:    4,
	}
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_CardDAVMissingFields(t *testing.T) {
	s := Resolve(nil, Overrides{})

	err := s.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"carddav-url is required", "username is required"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestValidate_BadURL(t *testing.T) {
	s := Resolve(&Config{CardDAVURL: "not a url", Username: "a"}, Overrides{})

	err := s.Validate()
	if err == nil || !strings.Contains(err.Error(), "not a valid URL") {
		t.Fatalf("expected URL error, got %v", err)
	}
}

func TestValidate_FileSource(t *testing.T) {
	s := Resolve(nil, Overrides{Source: "file"})
	if err := s.Validate(); err == nil || !strings.Contains(err.Error(), "vcf-path is required") {
		t.Fatalf("expected vcf-path error, got %v", err)
	}

	s.VCFPath = "contacts.vcf"
	if err := s.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_UnknownSourceAndWorkers(t *testing.T) {
	s := Settings{Source: "ldap", Output: "x.csv", Workers: 100, LogLevel: "loud"}

	err := s.Validate()
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	for _, want := range []string{"source must be one of", "workers must be between", "log-level must be one of"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("expected %q in %q", want, err.Error())
		}
	}
}

func TestLoadSettings_ReadsStoredConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	SetPath(path)
	t.Cleanup(ResetPath)

	cfg := &Config{Source: "file", VCFPath: "/data/contacts"}
	if err := cfg.SaveTo(path); err != nil {
		t.Fatalf("SaveTo: %v", err)
	}

	got, err := LoadSettings(Overrides{Output: "out.csv"})
	if err != nil {
		t.Fatalf("LoadSettings: %v", err)
	}
	want := Settings{Source: "file", VCFPath: "/data/contacts", Output: "out.csv", Workers: DefaultWorkers}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("LoadSettings mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadSettings_Invalid(t *testing.T) {
	SetPath(filepath.Join(t.TempDir(), "config.json"))
	t.Cleanup(ResetPath)

	_, err := LoadSettings(Overrides{})
	if err == nil {
		t.Fatal("expected error for carddav source without url")
	}
	if !strings.Contains(err.Error(), "carddav-url is required") {
		t.Errorf("unexpected error: %v", err)
	}
}
