package factory

import (
	"io"
	"log/slog"
	"time"

	"github.com/mcoot/wordsearch-go/internal/dependencies/mocks"
	"github.com/mcoot/wordsearch-go/internal/dependencies/random"
	"github.com/mcoot/wordsearch-go/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies.
// Random draws that are not queued come from a fixed seed.
func NewTestApp() *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()
	mockRandom.Fallback = random.NewSeeded(1)

	app := newWithDependencies(store, mockClock, mockRandom, slog.New(slog.NewJSONHandler(io.Discard, nil)))

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}
