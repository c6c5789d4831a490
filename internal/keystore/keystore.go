// Package keystore persists the symmetric master key as a single local file.
package keystore

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/maskvault/maskvault/internal/errs"
)

// KeySize is the required master key length in bytes.
const KeySize = 32

// GetOrCreate returns the key stored at path, generating and persisting a
// fresh random one when the file does not exist yet. An existing file is
// returned unchanged on every call. A file of the wrong size fails with
// ErrKeyStore: regenerating would orphan all ciphertext made with it.
func GetOrCreate(path string) ([]byte, error) {
	key, err := os.ReadFile(path)
	switch {
	case err == nil:
		if len(key) != KeySize {
			return nil, fmt.Errorf("key file %s holds %d bytes, want %d: %w", path, len(key), KeySize, errs.ErrKeyStore)
		}
		return key, nil
	case errors.Is(err, fs.ErrNotExist):
		return create(path)
	default:
		return nil, fmt.Errorf("read key file: %v: %w", err, errs.ErrKeyStore)
	}
}

func create(path string) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, fmt.Errorf("generate key: %v: %w", err, errs.ErrKeyStore)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create key dir: %v: %w", err, errs.ErrKeyStore)
	}
	if err := os.WriteFile(path, key, 0o600); err != nil {
		return nil, fmt.Errorf("write key file: %v: %w", err, errs.ErrKeyStore)
	}
	return key, nil
}
