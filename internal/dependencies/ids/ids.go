package ids

import "github.com/google/uuid"

// Generator produces identifiers for new records and can be mocked for testing
type Generator interface {
	New() uuid.UUID
}

// RandomGenerator issues random (version 4) UUIDs
type RandomGenerator struct{}

// New creates a new RandomGenerator
func New() *RandomGenerator {
	return &RandomGenerator{}
}

// New returns a fresh random UUID
func (g *RandomGenerator) New() uuid.UUID {
	return uuid.New()
}
