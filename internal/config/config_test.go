package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfigIsValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
	if cfg.Engine.StrictCastling {
		t.Fatalf("castling should be relaxed by default")
	}
	if !cfg.Storage.Enabled || cfg.Storage.Dir == "" {
		t.Fatalf("expected archive enabled with a directory, got %+v", cfg.Storage)
	}
}

func TestReadCfgFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"server":{"addr":":8080"},"engine":{"strict_castling":true}}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg := DefaultConfig()
	if err := readCfgFile(path, &cfg); err != nil {
		t.Fatalf("read: %v", err)
	}
	if cfg.Server.Addr != ":8080" || !cfg.Engine.StrictCastling {
		t.Fatalf("file values not applied: %+v", cfg)
	}
	if cfg.Server.ReadBufferSize != 1024 || len(cfg.Server.AllowOrigins) != 1 {
		t.Fatalf("defaults lost: %+v", cfg.Server)
	}
}

func TestReadCfgFileRejectsBadJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(`{"server":`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg := DefaultConfig()
	var invalid *InvalidConfig
	if err := readCfgFile(path, &cfg); !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidConfig, got %v", err)
	}
}

func TestSaveCfgFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	want := DefaultConfig()
	want.Server.Addr = "127.0.0.1:9000"
	want.Log.Development = true
	if err := saveCfgFile(path, &want, 0o644); err != nil {
		t.Fatalf("save: %v", err)
	}

	var got Config
	if err := readCfgFile(path, &got); err != nil {
		t.Fatalf("read: %v", err)
	}
	if got.Server.Addr != want.Server.Addr || !got.Log.Development || got.Storage.Dir != want.Storage.Dir {
		t.Fatalf("round trip mismatch: %+v", got)
	}
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("CHESSRULES_ADDR", ":4000")
	t.Setenv("CHESSRULES_ALLOW_ORIGINS", "http://a.test, http://b.test,")
	t.Setenv("CHESSRULES_STRICT_CASTLING", "true")
	t.Setenv("CHESSRULES_STORAGE_ENABLED", "0")
	t.Setenv("CHESSRULES_STORAGE_DIR", "/tmp/archive")
	t.Setenv("CHESSRULES_LOG_DEV", "1")

	cfg := DefaultConfig()
	if err := cfg.applyEnv(); err != nil {
		t.Fatalf("applyEnv: %v", err)
	}
	if cfg.Server.Addr != ":4000" {
		t.Errorf("addr = %q", cfg.Server.Addr)
	}
	if len(cfg.Server.AllowOrigins) != 2 || cfg.Server.AllowOrigins[1] != "http://b.test" {
		t.Errorf("origins = %v", cfg.Server.AllowOrigins)
	}
	if !cfg.Engine.StrictCastling || cfg.Storage.Enabled || !cfg.Log.Development {
		t.Errorf("booleans not applied: %+v", cfg)
	}
	if cfg.Storage.Dir != "/tmp/archive" {
		t.Errorf("storage dir = %q", cfg.Storage.Dir)
	}
}

func TestApplyEnvRejectsBadBool(t *testing.T) {
	t.Setenv("CHESSRULES_STRICT_CASTLING", "sometimes")
	cfg := DefaultConfig()
	var invalid *InvalidConfig
	if err := cfg.applyEnv(); !errors.As(err, &invalid) {
		t.Fatalf("expected *InvalidConfig, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty addr", func(c *Config) { c.Server.Addr = "" }},
		{"negative buffer", func(c *Config) { c.Server.ReadBufferSize = -1 }},
		{"storage without dir", func(c *Config) { c.Storage.Dir = "" }},
		{"unknown level", func(c *Config) { c.Log.Level = "loud" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			var invalid *InvalidConfig
			if err := cfg.Validate(); !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidConfig, got %v", err)
			}
		})
	}

	cfg := DefaultConfig()
	cfg.Storage.Enabled = false
	cfg.Storage.Dir = ""
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled storage needs no dir: %v", err)
	}
}
