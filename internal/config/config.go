// Package config resolves storage locations from flags and environment.
package config

import (
	"os"
	"path/filepath"
)

const (
	envDataDir = "MASKVAULT_DATA_DIR"
	envDBPath  = "MASKVAULT_DB_PATH"
	envKeyPath = "MASKVAULT_KEY_PATH"

	defaultDataDir = "data"
	dbFileName     = "users.db"
	keyFileName    = "maskvault.key"
)

// Config holds the resolved file locations.
type Config struct {
	DataDir string
	DBPath  string
	KeyPath string
}

// Load resolves paths with precedence flag > environment > default. Explicit
// db/key paths win over the data-dir derivation.
func Load(dataDir, dbPath, keyPath string) Config {
	if dataDir == "" {
		dataDir = os.Getenv(envDataDir)
	}
	if dataDir == "" {
		dataDir = defaultDataDir
	}
	if dbPath == "" {
		dbPath = os.Getenv(envDBPath)
	}
	if dbPath == "" {
		dbPath = filepath.Join(dataDir, dbFileName)
	}
	if keyPath == "" {
		keyPath = os.Getenv(envKeyPath)
	}
	if keyPath == "" {
		keyPath = filepath.Join(dataDir, keyFileName)
	}
	return Config{DataDir: dataDir, DBPath: dbPath, KeyPath: keyPath}
}
