package config_test

import (
	"path/filepath"
	"strings"
	"testing"

	"podhaul/internal/config"
	"podhaul/internal/testsupport"
)

func TestLoadMissingFileYieldsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if exists {
		t.Fatal("file should not exist")
	}
	if resolved != path {
		t.Fatalf("resolved = %q, want %q", resolved, path)
	}
	if !cfg.Transfer.CheckFreeSpace || cfg.Transfer.FreeSpaceMarginMiB != 64 {
		t.Fatalf("transfer defaults = %+v", cfg.Transfer)
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("logging defaults = %+v", cfg.Logging)
	}
}

func TestLoadParsesAndExpands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	testsupport.WriteFile(t, path, `
[paths]
library_db = "`+dir+`/MTLibrary.sqlite"
log_dir = "`+dir+`/logs"

[destination]
default_dir = "`+dir+`/player"

[transfer]
check_free_space = false
free_space_margin_mib = 128

[logging]
format = "JSON"
level = "Debug"
`)

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !exists {
		t.Fatal("expected existing config")
	}
	if cfg.Paths.LibraryDB != filepath.Join(dir, "MTLibrary.sqlite") {
		t.Fatalf("library_db = %q", cfg.Paths.LibraryDB)
	}
	if cfg.Destination.DefaultDir != filepath.Join(dir, "player") {
		t.Fatalf("default_dir = %q", cfg.Destination.DefaultDir)
	}
	if cfg.Transfer.CheckFreeSpace || cfg.Transfer.FreeSpaceMarginMiB != 128 {
		t.Fatalf("transfer = %+v", cfg.Transfer)
	}
	// Format and level are normalized to lower case.
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging = %+v", cfg.Logging)
	}
	if got := cfg.LogFilePath(); got != filepath.Join(dir, "logs", "podhaul.log") {
		t.Fatalf("LogFilePath = %q", got)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"bad format", "[logging]\nformat = \"xml\"\n", "logging.format"},
		{"bad level", "[logging]\nlevel = \"loud\"\n", "logging.level"},
		{"negative margin", "[transfer]\nfree_space_margin_mib = -1\n", "free_space_margin_mib"},
		{"malformed toml", "paths = not toml\n", "parse config"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			testsupport.WriteFile(t, path, tc.body)
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestLogFilePathDisabledWithoutLogDir(t *testing.T) {
	cfg := config.Default()
	if got := cfg.LogFilePath(); got != "" {
		t.Fatalf("LogFilePath = %q, want empty", got)
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}

	// The sample must load cleanly through the same pipeline.
	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("sample not found after write")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("sample config invalid: %v", err)
	}
}

func TestExpandPathHome(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	got, err := config.ExpandPath("~/music")
	if err != nil {
		t.Fatalf("ExpandPath: %v", err)
	}
	if !filepath.IsAbs(got) || filepath.Base(got) != "music" {
		t.Fatalf("ExpandPath = %q", got)
	}
}
