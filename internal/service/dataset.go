// Package service implements the dataset operations on top of the storage,
// cipher and fake-data collaborators.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid/v5"

	"github.com/maskvault/maskvault/internal/errs"
	"github.com/maskvault/maskvault/internal/fake"
	"github.com/maskvault/maskvault/internal/model"
	"github.com/maskvault/maskvault/internal/repository"
)

// DefaultSeed is the fixture dataset installed by Initialize.
var DefaultSeed = []model.SeedUser{
	{Name: "Anna Andersson", Email: "anna@test.se"},
	{Name: "Bo Bengtsson", Email: "bo@test.se"},
}

// Sealer seals and opens email values. Implemented by cipher.Cipher.
type Sealer interface {
	EncryptString(plaintext string) (string, error)
	DecryptString(envelope string) (string, error)
}

// SealerProvider builds the Sealer on first use. Providers load or create
// the master key, so operations that never seal or open also never touch
// the key file.
type SealerProvider func() (Sealer, error)

// DatasetService defines the operations of the dataset manager.
type DatasetService interface {
	// Initialize ensures the fixture dataset exists; reset wipes first.
	Initialize(ctx context.Context, reset bool) (model.InitReport, error)
	// Anonymize replaces every name and email with synthetic values.
	Anonymize(ctx context.Context) (model.MutationReport, error)
	// EncryptEmails seals every email; rejected when any row already holds ciphertext.
	EncryptEmails(ctx context.Context) (model.MutationReport, error)
	// DecryptEmails opens every email, reporting failures per record.
	DecryptEmails(ctx context.Context) ([]model.EmailView, error)
	// List returns the records exactly as stored.
	List(ctx context.Context) ([]model.User, error)
}

// DatasetServiceImpl runs operations one at a time under a single mutex.
type DatasetServiceImpl struct {
	mu     sync.Mutex
	repo   repository.UserRepository
	gen    fake.Generator
	sealer SealerProvider
	seed   []model.SeedUser
}

// NewDatasetService constructs DatasetService. A nil seed falls back to DefaultSeed.
func NewDatasetService(repo repository.UserRepository, gen fake.Generator, sealer SealerProvider, seed []model.SeedUser) *DatasetServiceImpl {
	if seed == nil {
		seed = DefaultSeed
	}
	return &DatasetServiceImpl{repo: repo, gen: gen, sealer: sealer, seed: seed}
}

// Initialize seeds the dataset. Without reset it is idempotent: an already
// populated table is left exactly as found.
func (s *DatasetServiceImpl) Initialize(ctx context.Context, reset bool) (model.InitReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rep := model.InitReport{RunID: newRunID(), Reset: reset}
	if reset {
		if err := s.repo.Reset(ctx, s.seed); err != nil {
			return model.InitReport{}, err
		}
		rep.Seeded = true
	} else {
		seeded, err := s.repo.SeedIfEmpty(ctx, s.seed)
		if err != nil {
			return model.InitReport{}, err
		}
		rep.Seeded = seeded
	}

	counts, err := s.repo.CountByState(ctx)
	if err != nil {
		return model.InitReport{}, err
	}
	for _, n := range counts {
		rep.Rows += n
	}
	return rep, nil
}

// Anonymize draws a fresh synthetic identity per record and writes all of
// them in one transaction. Valid from any state; rows end up tagged plain.
func (s *DatasetServiceImpl) Anonymize(ctx context.Context) (model.MutationReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return model.MutationReport{}, err
	}
	rep := model.MutationReport{RunID: newRunID()}
	if len(users) == 0 {
		return rep, nil
	}

	updates := make([]model.IdentityUpdate, 0, len(users))
	for _, u := range users {
		updates = append(updates, model.IdentityUpdate{
			ID:    u.ID,
			Name:  s.gen.Name(),
			Email: s.gen.Email(),
		})
	}
	if err := s.repo.ReplaceIdentities(ctx, updates); err != nil {
		return model.MutationReport{}, err
	}
	rep.Rows = len(updates)
	rep.Duration = time.Since(start)
	return rep, nil
}

// EncryptEmails seals every email in one transactional write. The whole
// operation is rejected with ErrAlreadyEncrypted when any record already
// holds ciphertext.
func (s *DatasetServiceImpl) EncryptEmails(ctx context.Context) (model.MutationReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	start := time.Now()
	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return model.MutationReport{}, err
	}
	for _, u := range users {
		if u.EmailState == model.EmailEncrypted {
			return model.MutationReport{}, fmt.Errorf("record %d: %w", u.ID, errs.ErrAlreadyEncrypted)
		}
	}

	rep := model.MutationReport{RunID: newRunID()}
	if len(users) == 0 {
		return rep, nil
	}

	sealer, err := s.sealer()
	if err != nil {
		return model.MutationReport{}, err
	}
	updates := make([]model.EmailUpdate, 0, len(users))
	for _, u := range users {
		env, err := sealer.EncryptString(u.Email)
		if err != nil {
			return model.MutationReport{}, fmt.Errorf("encrypt record %d: %w", u.ID, err)
		}
		updates = append(updates, model.EmailUpdate{ID: u.ID, Email: env, State: model.EmailEncrypted})
	}
	if err := s.repo.ReplaceEmails(ctx, updates); err != nil {
		return model.MutationReport{}, err
	}
	rep.Rows = len(updates)
	rep.Duration = time.Since(start)
	return rep, nil
}

// DecryptEmails is read-only: every record yields a view, and a record that
// cannot be opened carries its error plus the stored value instead of
// aborting the scan.
func (s *DatasetServiceImpl) DecryptEmails(ctx context.Context) ([]model.EmailView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return []model.EmailView{}, nil
	}

	sealer, err := s.sealer()
	if err != nil {
		return nil, err
	}
	views := make([]model.EmailView, 0, len(users))
	for _, u := range users {
		v := model.EmailView{ID: u.ID, Name: u.Name, Email: u.Email}
		switch u.EmailState {
		case model.EmailEncrypted:
			if plain, err := sealer.DecryptString(u.Email); err != nil {
				v.Err = err
			} else {
				v.Email = plain
			}
		default:
			v.Err = fmt.Errorf("stored value is not ciphertext: %w", errs.ErrCiphertextInvalid)
		}
		views = append(views, v)
	}
	return views, nil
}

// List returns records as stored, without transformation.
func (s *DatasetServiceImpl) List(ctx context.Context) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.repo.ListAll(ctx)
}

func newRunID() uuid.UUID { return uuid.Must(uuid.NewV4()) }
