package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestFindConfig_Explicit(t *testing.T) {
	// Create a temp config file
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yaml")
	os.WriteFile(path, []byte("log_level: debug\n"), 0600)

	got, err := FindConfig(path)
	if err != nil {
		t.Fatalf("FindConfig(%q) error: %v", path, err)
	}
	if got != path {
		t.Errorf("FindConfig(%q) = %q, want %q", path, got, path)
	}
}

func TestFindConfig_ExplicitMissing(t *testing.T) {
	_, err := FindConfig("/nonexistent/config.yaml")
	if err == nil {
		t.Fatal("FindConfig with missing explicit path should error")
	}
}

func TestFindConfig_SearchPath(t *testing.T) {
	// When no config exists anywhere, should error.
	// Override searchPathsFunc to avoid finding real config files
	// on developer/deploy machines.
	dir := t.TempDir()
	orig := searchPathsFunc
	searchPathsFunc = func() []string {
		return []string{filepath.Join(dir, "config.yaml")}
	}
	defer func() { searchPathsFunc = orig }()

	_, err := FindConfig("")
	if err == nil {
		t.Fatal("FindConfig(\"\") with no config files should error")
	}
}

func TestLoad_Defaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("log_level: info\n"), 0600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.MaxMessageSize != DefaultMaxMessageSize {
		t.Errorf("MaxMessageSize = %d, want %d", cfg.MaxMessageSize, DefaultMaxMessageSize)
	}
	if cfg.RecursionLimit == 0 {
		t.Error("RecursionLimit should have a default")
	}
	if cfg.Quirks.CRLFRelaxed || cfg.Quirks.TrailingSpace {
		t.Error("quirks should default off")
	}
}

func TestLoad_Quirks(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte(strings.Join([]string{
		"max_message_size: 4096",
		"quirks:",
		"  crlf_relaxed: true",
		"  rectify_numbers: true",
		"",
	}, "\n")), 0600)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.MaxMessageSize != 4096 {
		t.Errorf("MaxMessageSize = %d, want 4096", cfg.MaxMessageSize)
	}
	q := cfg.Quirks.ToQuirks()
	if !q.CRLFRelaxed || !q.RectifyNumbers {
		t.Error("expected crlf_relaxed and rectify_numbers on")
	}
	if q.TrailingSpace || q.MissingText || q.IDEmptyToNil {
		t.Error("unset quirks should stay off")
	}
}

func TestLoad_UnboundedConflict(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("unbounded: true\nmax_message_size: 1024\n"), 0600)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unbounded + max_message_size")
	}
}

func TestLoad_BadLogLevel(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	os.WriteFile(path, []byte("log_level: shouty\n"), 0600)

	if _, err := Load(path); err == nil {
		t.Fatal("expected validation error for unknown log level")
	}
}

func TestParseLogLevel(t *testing.T) {
	for _, tc := range []struct {
		in      string
		wantErr bool
	}{
		{"trace", false},
		{"DEBUG", false},
		{" warn ", false},
		{"", false},
		{"loud", true},
	} {
		_, err := ParseLogLevel(tc.in)
		if (err != nil) != tc.wantErr {
			t.Errorf("ParseLogLevel(%q) error = %v, wantErr %v", tc.in, err, tc.wantErr)
		}
	}
}
