// Package fake produces synthetic replacement identities.
package fake

import "github.com/brianvoe/gofakeit/v6"

// Generator produces synthetic personal data. Values are plausible but carry
// no uniqueness guarantee; callers must not assume distinctness.
type Generator interface {
	Name() string
	Email() string
}

// Faker is the gofakeit-backed Generator.
type Faker struct {
	f *gofakeit.Faker
}

// NewFaker returns a seeded Faker; seed 0 picks a random seed.
func NewFaker(seed uint64) *Faker {
	return &Faker{f: gofakeit.New(int64(seed))}
}

func (g *Faker) Name() string  { return g.f.Name() }
func (g *Faker) Email() string { return g.f.Email() }
