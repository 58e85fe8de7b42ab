package factory

import (
	"cloud.google.com/go/civil"

	"github.com/mcoot/scorecli/internal/dependencies/mocks"
	"github.com/mcoot/scorecli/internal/storage/memory"
	"github.com/mcoot/scorecli/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockStorage *memory.Storage
	MockClock   *mocks.MockClock
	MockIDs     *mocks.MockIDs
}

// NewTestApp creates an App backed by memory storage with mocked dependencies
func NewTestApp(today civil.Date) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClockOn(today)
	mockIDs := mocks.NewMockIDs()

	app := newWithDependencies(store, mockClock, mockIDs, testutil.NopLogger())

	return &TestApp{
		App:         app,
		MockStorage: store,
		MockClock:   mockClock,
		MockIDs:     mockIDs,
	}
}
