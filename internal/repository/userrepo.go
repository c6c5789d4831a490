// Package repository defines storage interfaces implemented by concrete backends.
package repository

import (
	"context"

	"github.com/maskvault/maskvault/internal/model"
)

// UserRepository provides access to the users table. Bulk mutations are
// transactional: they change every targeted row or none.
type UserRepository interface {
	// SeedIfEmpty inserts fixtures only when the table holds no rows.
	// Reports whether it seeded.
	SeedIfEmpty(ctx context.Context, seed []model.SeedUser) (bool, error)

	// Reset wipes the table and reinserts fixtures in one transaction.
	Reset(ctx context.Context, seed []model.SeedUser) error

	// ListAll returns every record ordered by ID.
	ListAll(ctx context.Context) ([]model.User, error)

	// SetName updates one record's name. ErrNotFound when id is absent.
	SetName(ctx context.Context, id int64, name string) error

	// SetEmail updates one record's email and state tag. ErrNotFound when id is absent.
	SetEmail(ctx context.Context, id int64, email string, state model.EmailState) error

	// ReplaceIdentities rewrites name+email of the given records and retags
	// them plain, all in one transaction.
	ReplaceIdentities(ctx context.Context, updates []model.IdentityUpdate) error

	// ReplaceEmails rewrites emails with their new state tag in one transaction.
	ReplaceEmails(ctx context.Context, updates []model.EmailUpdate) error

	// CountByState tallies records per email state.
	CountByState(ctx context.Context) (map[model.EmailState]int, error)
}
