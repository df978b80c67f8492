package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.toml"))
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultProject != "lyrics.lrclab" {
		t.Errorf("default_project = %q", cfg.DefaultProject)
	}
	if !cfg.Export.TrailingNewline {
		t.Error("trailing_newline default should be true")
	}
}

func TestLoadParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `default_project = "album.lrclab"

[export]
trailing_newline = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.DefaultProject != "album.lrclab" {
		t.Errorf("default_project = %q, want %q", cfg.DefaultProject, "album.lrclab")
	}
	if cfg.Export.TrailingNewline {
		t.Error("trailing_newline should be false")
	}
}

func TestLoadRejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("not [valid toml"), 0o644); err != nil {
		t.Fatalf("failed to write test file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for malformed config")
	}
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")

	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("sample config does not parse: %v", err)
	}
	if cfg.DefaultProject == "" {
		t.Error("sample config missing default_project")
	}

	if err := WriteSample(path); err == nil {
		t.Error("WriteSample overwrote an existing file")
	}
}
