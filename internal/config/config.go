package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Config holds the server configuration. Values come from an optional TOML
// file, then environment variables, then flags (highest priority; applied by
// the caller).
type Config struct {
	Addr    string  `toml:"addr"`
	DBPath  string  `toml:"db_path"`
	LogPath string  `toml:"log_path"`
	Uploads Uploads `toml:"uploads"`
}

// Uploads holds file-upload limits in megabytes.
type Uploads struct {
	MaxPhotoMB int64 `toml:"max_photo_mb"`
	MaxProofMB int64 `toml:"max_proof_mb"`
}

// MaxPhotoBytes returns the photo upload limit in bytes.
func (u Uploads) MaxPhotoBytes() int64 { return u.MaxPhotoMB << 20 }

// MaxProofBytes returns the proof upload limit in bytes.
func (u Uploads) MaxProofBytes() int64 { return u.MaxProofMB << 20 }

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Addr:   ":8080",
		DBPath: "lostfound.sqlite3",
		Uploads: Uploads{
			MaxPhotoMB: 3,
			MaxProofMB: 5,
		},
	}
}

// Load reads configuration. If path is non-empty, the TOML file is required;
// environment variables (LOSTFOUND_ADDR, LOSTFOUND_DB, LOSTFOUND_LOG)
// override file values.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config file: %w", err)
		}
		if err := toml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config file: %w", err)
		}
	}

	if v := os.Getenv("LOSTFOUND_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("LOSTFOUND_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("LOSTFOUND_LOG"); v != "" {
		cfg.LogPath = v
	}

	if cfg.Uploads.MaxPhotoMB <= 0 || cfg.Uploads.MaxProofMB <= 0 {
		return cfg, fmt.Errorf("upload limits must be positive")
	}

	return cfg, nil
}
