package factory

import (
	"time"

	"github.com/taskbloom/taskbloom/internal/dependencies/mocks"
	"github.com/taskbloom/taskbloom/internal/session"
	"github.com/taskbloom/taskbloom/internal/testutil"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
	Tokens     *session.MemoryTokenStore
}

// NewTestApp creates an App pointed at the given server URL, with mocked
// clock/random and an in-memory token store
func NewTestApp(serverURL string) *TestApp {
	tokens := session.NewMemoryTokenStore("")
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(serverURL, 0, tokens, mockClock, mockRandom, testutil.NopLogger())

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
		Tokens:     tokens,
	}
}
