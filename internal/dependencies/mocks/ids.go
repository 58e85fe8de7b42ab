package mocks

import (
	"github.com/google/uuid"

	"github.com/mcoot/scorecli/internal/dependencies/ids"
)

// MockIDs is a mock implementation of Generator for testing
type MockIDs struct {
	// Results is a queue of ids to return from New
	Results []uuid.UUID
	index   int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a MockIDs with the given queued ids
func NewMockIDs(queued ...uuid.UUID) *MockIDs {
	return &MockIDs{Results: queued}
}

// New returns the next queued id, or a random one if none remain
func (m *MockIDs) New() uuid.UUID {
	if m.index >= len(m.Results) {
		return uuid.New()
	}
	id := m.Results[m.index]
	m.index++
	return id
}

// Queue adds ids to the result queue. Strings must be valid UUIDs.
func (m *MockIDs) Queue(values ...string) {
	for _, v := range values {
		m.Results = append(m.Results, uuid.MustParse(v))
	}
}
