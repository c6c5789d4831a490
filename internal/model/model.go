// Package model defines domain entities used by services and repositories.
package model

import (
	"time"

	"github.com/gofrs/uuid/v5"
)

// EmailState tags what the email column of a record currently holds.
type EmailState string

const (
	// EmailPlain marks a readable email address.
	EmailPlain EmailState = "plain"
	// EmailEncrypted marks a ciphertext envelope produced by the cipher.
	EmailEncrypted EmailState = "encrypted"
)

// Valid reports whether s is one of the known states.
func (s EmailState) Valid() bool {
	return s == EmailPlain || s == EmailEncrypted
}

// User is a single dataset record. Email holds either a plaintext address or
// a ciphertext envelope, as tagged by EmailState.
type User struct {
	ID         int64 // DB-assigned PK, stable across reads
	Name       string
	Email      string
	EmailState EmailState
	UpdatedAt  time.Time // maintained by the repository
}

// SeedUser is an initial fixture row (ID assigned by the store).
type SeedUser struct {
	Name  string
	Email string
}

// IdentityUpdate replaces both personal fields of one record.
type IdentityUpdate struct {
	ID    int64
	Name  string
	Email string
}

// EmailUpdate replaces the email column of one record and retags its state.
type EmailUpdate struct {
	ID    int64
	Email string
	State EmailState
}

// InitReport describes what an initialize run did.
type InitReport struct {
	RunID  uuid.UUID
	Seeded bool // fixtures were inserted (empty table or reset)
	Reset  bool // existing rows were wiped first
	Rows   int
}

// MutationReport describes a whole-table mutation (anonymize, encrypt).
type MutationReport struct {
	RunID    uuid.UUID
	Rows     int
	Duration time.Duration
}

// EmailView is one decrypt-and-display result. Err is set when the stored
// value could not be decrypted; Email then holds the stored value as-is.
type EmailView struct {
	ID    int64
	Name  string
	Email string
	Err   error
}
