package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.Uploads.MaxPhotoBytes() != 3<<20 {
		t.Errorf("expected 3 MB photo limit, got %d", cfg.Uploads.MaxPhotoBytes())
	}
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
addr = ":9090"
db_path = "portal.sqlite3"

[uploads]
max_photo_mb = 2
max_proof_mb = 10
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":9090" || cfg.DBPath != "portal.sqlite3" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.Uploads.MaxProofMB != 10 {
		t.Errorf("expected proof limit 10, got %d", cfg.Uploads.MaxProofMB)
	}
}

func TestEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`addr = ":9090"`), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	t.Setenv("LOSTFOUND_ADDR", ":7070")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Addr != ":7070" {
		t.Errorf("expected env override, got %q", cfg.Addr)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.toml")); err == nil {
		t.Error("expected error for missing config file")
	}
}

func TestLoadInvalidLimits(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
[uploads]
max_photo_mb = 0
max_proof_mb = 5
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Error("expected error for zero upload limit")
	}
}
