package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/maskvault/maskvault/internal/errs"
	"github.com/maskvault/maskvault/internal/model"
)

// UserRepo implements UserRepository using SQLite.
type UserRepo struct{ db *DB }

// NewUserRepo constructs a user repository.
func NewUserRepo(db *DB) *UserRepo { return &UserRepo{db: db} }

// SeedIfEmpty inserts fixtures inside one transaction when the table is empty.
func (r *UserRepo) SeedIfEmpty(ctx context.Context, seed []model.SeedUser) (seeded bool, err error) {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return false, err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if e := tx.Commit(); e != nil {
			err = e
		}
	}()

	var n int
	if err = tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	const ins = `INSERT INTO users (name, email, email_state, updated_at) VALUES (?, ?, ?, ?)`
	now := time.Now().UTC()
	for _, s := range seed {
		if _, err = tx.ExecContext(ctx, ins, s.Name, s.Email, model.EmailPlain, now); err != nil {
			return false, err
		}
	}
	return true, nil
}

// Reset wipes the table, restarts ID numbering and reinserts fixtures.
func (r *UserRepo) Reset(ctx context.Context, seed []model.SeedUser) (err error) {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if e := tx.Commit(); e != nil {
			err = e
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM users`); err != nil {
		return err
	}
	// fresh dataset starts counting from 1 again; sqlite_sequence only exists
	// once the first AUTOINCREMENT insert has happened
	var hasSeq int
	if err = tx.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='sqlite_sequence'`).Scan(&hasSeq); err != nil {
		return err
	}
	if hasSeq > 0 {
		if _, err = tx.ExecContext(ctx, `DELETE FROM sqlite_sequence WHERE name='users'`); err != nil {
			return err
		}
	}

	const ins = `INSERT INTO users (name, email, email_state, updated_at) VALUES (?, ?, ?, ?)`
	now := time.Now().UTC()
	for _, s := range seed {
		if _, err = tx.ExecContext(ctx, ins, s.Name, s.Email, model.EmailPlain, now); err != nil {
			return err
		}
	}
	return nil
}

// ListAll returns every row ordered by id.
func (r *UserRepo) ListAll(ctx context.Context) ([]model.User, error) {
	const q = `
SELECT id, name, email, email_state, updated_at
FROM users
ORDER BY id ASC`
	rows, err := r.db.SQL.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.User
	for rows.Next() {
		var u model.User
		if err = rows.Scan(&u.ID, &u.Name, &u.Email, &u.EmailState, &u.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

// SetName updates the name of one row.
func (r *UserRepo) SetName(ctx context.Context, id int64, name string) error {
	const q = `UPDATE users SET name=?, updated_at=? WHERE id=?`
	res, err := r.db.SQL.ExecContext(ctx, q, name, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return oneRowAffected(res)
}

// SetEmail updates the email and state tag of one row.
func (r *UserRepo) SetEmail(ctx context.Context, id int64, email string, state model.EmailState) error {
	const q = `UPDATE users SET email=?, email_state=?, updated_at=? WHERE id=?`
	res, err := r.db.SQL.ExecContext(ctx, q, email, state, time.Now().UTC(), id)
	if err != nil {
		return err
	}
	return oneRowAffected(res)
}

// ReplaceIdentities rewrites name+email per update and retags rows plain,
// all-or-nothing.
func (r *UserRepo) ReplaceIdentities(ctx context.Context, updates []model.IdentityUpdate) (err error) {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if e := tx.Commit(); e != nil {
			err = e
		}
	}()

	const q = `UPDATE users SET name=?, email=?, email_state=?, updated_at=? WHERE id=?`
	now := time.Now().UTC()
	var res sql.Result
	for i, up := range updates {
		if res, err = tx.ExecContext(ctx, q, up.Name, up.Email, model.EmailPlain, now, up.ID); err != nil {
			return err
		}
		if err = oneRowAffected(res); err != nil {
			return fmt.Errorf("user[%d] id=%d: %w", i, up.ID, err)
		}
	}
	return nil
}

// ReplaceEmails rewrites email+state per update, all-or-nothing.
func (r *UserRepo) ReplaceEmails(ctx context.Context, updates []model.EmailUpdate) (err error) {
	tx, err := r.db.SQL.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
			return
		}
		if e := tx.Commit(); e != nil {
			err = e
		}
	}()

	const q = `UPDATE users SET email=?, email_state=?, updated_at=? WHERE id=?`
	now := time.Now().UTC()
	var res sql.Result
	for i, up := range updates {
		if res, err = tx.ExecContext(ctx, q, up.Email, up.State, now, up.ID); err != nil {
			return err
		}
		if err = oneRowAffected(res); err != nil {
			return fmt.Errorf("user[%d] id=%d: %w", i, up.ID, err)
		}
	}
	return nil
}

// CountByState tallies rows per email state.
func (r *UserRepo) CountByState(ctx context.Context) (map[model.EmailState]int, error) {
	const q = `SELECT email_state, COUNT(*) FROM users GROUP BY email_state`
	rows, err := r.db.SQL.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[model.EmailState]int)
	for rows.Next() {
		var state model.EmailState
		var n int
		if err = rows.Scan(&state, &n); err != nil {
			return nil, err
		}
		out[state] = n
	}
	return out, rows.Err()
}

func oneRowAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return errs.ErrNotFound
	}
	return nil
}
