// Package errs defines the sentinel errors shared across layers.
package errs

import (
	"errors"
	"fmt"
)

// Common sentinels across keystore/cipher/repo/service layers.
var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrKeyStore indicates unusable key material (unreadable file, wrong size).
	// Callers must treat it as fatal; the key is never regenerated.
	ErrKeyStore = errors.New("key store")

	// ErrDecrypt indicates a value could not be authenticated and decrypted
	// (wrong key, tampered or malformed ciphertext).
	ErrDecrypt = errors.New("decrypt failed")

	// ErrCiphertextInvalid is the ErrDecrypt case where the input is not a
	// well-formed envelope (bad encoding, truncated, unknown version).
	ErrCiphertextInvalid = fmt.Errorf("invalid ciphertext: %w", ErrDecrypt)

	// ErrAlreadyEncrypted indicates an encryption pass was requested while
	// at least one record is already encrypted.
	ErrAlreadyEncrypted = errors.New("already encrypted")
)
