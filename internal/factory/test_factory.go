package factory

import (
	"time"

	"github.com/quizhall/quizhall/internal/dependencies/mocks"
	"github.com/quizhall/quizhall/internal/dependencies/random"
	"github.com/quizhall/quizhall/internal/services/auth"
	"github.com/quizhall/quizhall/internal/storage/memory"
	"github.com/quizhall/quizhall/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// MockClock drives time-dependent behavior in tests. Identifier and
	// token generation stay on real randomness so ids are unique.
	MockClock *mocks.MockClock
}

// NewTestApp creates an App configured for testing with a controllable clock
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))

	app := newWithDependencies(store, mockClock, random.New(), auth.DefaultConfig(), testutil.NopLogger())

	return &TestApp{
		App:       app,
		MockClock: mockClock,
	}
}
