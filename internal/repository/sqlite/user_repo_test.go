package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maskvault/maskvault/internal/errs"
	"github.com/maskvault/maskvault/internal/migrate"
	"github.com/maskvault/maskvault/internal/model"
)

var testSeed = []model.SeedUser{
	{Name: "Anna Andersson", Email: "anna@test.se"},
	{Name: "Bo Bengtsson", Email: "bo@test.se"},
}

func newTestRepo(t *testing.T) *UserRepo {
	t.Helper()
	ctx := context.Background()
	db, err := Open(ctx, filepath.Join(t.TempDir(), "users.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, migrate.Up(ctx, db.SQL))
	return NewUserRepo(db)
}

func TestSeedIfEmpty_SeedsOnlyOnce(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	seeded, err := r.SeedIfEmpty(ctx, testSeed)
	require.NoError(t, err)
	require.True(t, seeded)

	seeded, err = r.SeedIfEmpty(ctx, testSeed)
	require.NoError(t, err)
	require.False(t, seeded)

	users, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, int64(1), users[0].ID)
	require.Equal(t, "Anna Andersson", users[0].Name)
	require.Equal(t, "anna@test.se", users[0].Email)
	require.Equal(t, model.EmailPlain, users[0].EmailState)
	require.Equal(t, int64(2), users[1].ID)
	require.Equal(t, "Bo Bengtsson", users[1].Name)
}

func TestReset_WipesAndReseeds(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	_, err := r.SeedIfEmpty(ctx, testSeed)
	require.NoError(t, err)
	require.NoError(t, r.SetEmail(ctx, 1, "ciphertext-here", model.EmailEncrypted))

	require.NoError(t, r.Reset(ctx, testSeed))

	users, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	// numbering restarts after a reset
	require.Equal(t, int64(1), users[0].ID)
	require.Equal(t, "anna@test.se", users[0].Email)
	require.Equal(t, model.EmailPlain, users[0].EmailState)
}

func TestReset_OnFreshDatabase(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	// no insert has ever happened here
	require.NoError(t, r.Reset(ctx, testSeed))

	users, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, int64(1), users[0].ID)
}

func TestListAll_EmptyAndOrdered(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)

	users, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Empty(t, users)

	_, err = r.SeedIfEmpty(ctx, testSeed)
	require.NoError(t, err)

	users, err = r.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Less(t, users[0].ID, users[1].ID)
	require.False(t, users[0].UpdatedAt.IsZero())
}

func TestSetName_And_SetEmail(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	_, err := r.SeedIfEmpty(ctx, testSeed)
	require.NoError(t, err)

	require.NoError(t, r.SetName(ctx, 1, "Cecilia Carlsson"))
	require.NoError(t, r.SetEmail(ctx, 2, "envelope", model.EmailEncrypted))

	users, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, "Cecilia Carlsson", users[0].Name)
	require.Equal(t, "anna@test.se", users[0].Email)
	require.Equal(t, "envelope", users[1].Email)
	require.Equal(t, model.EmailEncrypted, users[1].EmailState)

	require.ErrorIs(t, r.SetName(ctx, 999, "x"), errs.ErrNotFound)
	require.ErrorIs(t, r.SetEmail(ctx, 999, "x", model.EmailPlain), errs.ErrNotFound)
}

func TestReplaceIdentities_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	_, err := r.SeedIfEmpty(ctx, testSeed)
	require.NoError(t, err)

	err = r.ReplaceIdentities(ctx, []model.IdentityUpdate{
		{ID: 1, Name: "New One", Email: "one@example.org"},
		{ID: 999, Name: "Ghost", Email: "ghost@example.org"},
	})
	require.ErrorIs(t, err, errs.ErrNotFound)

	// first update must have been rolled back
	users, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, "Anna Andersson", users[0].Name)
	require.Equal(t, "anna@test.se", users[0].Email)

	require.NoError(t, r.ReplaceIdentities(ctx, []model.IdentityUpdate{
		{ID: 1, Name: "New One", Email: "one@example.org"},
		{ID: 2, Name: "New Two", Email: "two@example.org"},
	}))
	users, err = r.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, "New One", users[0].Name)
	require.Equal(t, "two@example.org", users[1].Email)
	require.Equal(t, model.EmailPlain, users[1].EmailState)
}

func TestReplaceEmails_AllOrNothing(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	_, err := r.SeedIfEmpty(ctx, testSeed)
	require.NoError(t, err)

	err = r.ReplaceEmails(ctx, []model.EmailUpdate{
		{ID: 1, Email: "env-1", State: model.EmailEncrypted},
		{ID: 999, Email: "env-x", State: model.EmailEncrypted},
	})
	require.ErrorIs(t, err, errs.ErrNotFound)

	users, err := r.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, "anna@test.se", users[0].Email)
	require.Equal(t, model.EmailPlain, users[0].EmailState)

	require.NoError(t, r.ReplaceEmails(ctx, []model.EmailUpdate{
		{ID: 1, Email: "env-1", State: model.EmailEncrypted},
		{ID: 2, Email: "env-2", State: model.EmailEncrypted},
	}))
	users, err = r.ListAll(ctx)
	require.NoError(t, err)
	require.Equal(t, "env-1", users[0].Email)
	require.Equal(t, model.EmailEncrypted, users[0].EmailState)
	require.Equal(t, model.EmailEncrypted, users[1].EmailState)
}

func TestCountByState(t *testing.T) {
	ctx := context.Background()
	r := newTestRepo(t)
	_, err := r.SeedIfEmpty(ctx, testSeed)
	require.NoError(t, err)

	counts, err := r.CountByState(ctx)
	require.NoError(t, err)
	require.Equal(t, map[model.EmailState]int{model.EmailPlain: 2}, counts)

	require.NoError(t, r.SetEmail(ctx, 1, "env", model.EmailEncrypted))
	counts, err = r.CountByState(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, counts[model.EmailPlain])
	require.Equal(t, 1, counts[model.EmailEncrypted])
}
