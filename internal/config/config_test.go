package config

import (
	"path/filepath"
	"testing"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MASKVAULT_DATA_DIR", "")
	t.Setenv("MASKVAULT_DB_PATH", "")
	t.Setenv("MASKVAULT_KEY_PATH", "")

	cfg := Load("", "", "")
	if cfg.DataDir != "data" {
		t.Fatalf("dataDir=%q", cfg.DataDir)
	}
	if cfg.DBPath != filepath.Join("data", "users.db") {
		t.Fatalf("dbPath=%q", cfg.DBPath)
	}
	if cfg.KeyPath != filepath.Join("data", "maskvault.key") {
		t.Fatalf("keyPath=%q", cfg.KeyPath)
	}
}

func TestLoad_EnvFallback(t *testing.T) {
	t.Setenv("MASKVAULT_DATA_DIR", "/srv/vault")
	t.Setenv("MASKVAULT_DB_PATH", "")
	t.Setenv("MASKVAULT_KEY_PATH", "/secrets/master.key")

	cfg := Load("", "", "")
	if cfg.DataDir != "/srv/vault" {
		t.Fatalf("dataDir=%q", cfg.DataDir)
	}
	if cfg.DBPath != filepath.Join("/srv/vault", "users.db") {
		t.Fatalf("dbPath=%q", cfg.DBPath)
	}
	if cfg.KeyPath != "/secrets/master.key" {
		t.Fatalf("keyPath=%q", cfg.KeyPath)
	}
}

func TestLoad_FlagsWinOverEnv(t *testing.T) {
	t.Setenv("MASKVAULT_DATA_DIR", "/srv/vault")
	t.Setenv("MASKVAULT_DB_PATH", "/srv/vault/other.db")
	t.Setenv("MASKVAULT_KEY_PATH", "")

	cfg := Load("/tmp/d", "/tmp/d/db.sqlite", "")
	if cfg.DataDir != "/tmp/d" || cfg.DBPath != "/tmp/d/db.sqlite" {
		t.Fatalf("flags must win: %+v", cfg)
	}
	if cfg.KeyPath != filepath.Join("/tmp/d", "maskvault.key") {
		t.Fatalf("keyPath=%q", cfg.KeyPath)
	}
}
