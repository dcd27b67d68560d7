package browser

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/playwright-community/playwright-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSession_RetriesAndFails(t *testing.T) {
	origRun, origDelay := runDriver, createDelay
	defer func() { runDriver, createDelay = origRun, origDelay }()
	createDelay = time.Millisecond

	calls := 0
	runDriver = func() (*playwright.Playwright, error) {
		calls++
		return nil, errors.New("driver not installed")
	}

	_, err := NewSession(context.Background(), Opts{Engine: Chromium})
	require.Error(t, err)

	var sessionErr *SessionCreationError
	require.ErrorAs(t, err, &sessionErr)
	assert.Equal(t, Chromium, sessionErr.Engine)
	assert.Equal(t, createAttempts, sessionErr.Attempts)
	assert.Equal(t, createAttempts, calls, "every attempt should start the driver")
}

func TestNewSession_CanceledContext(t *testing.T) {
	origRun, origDelay := runDriver, createDelay
	defer func() { runDriver, createDelay = origRun, origDelay }()
	createDelay = time.Minute // cancellation must win over the backoff

	runDriver = func() (*playwright.Playwright, error) {
		return nil, errors.New("driver not installed")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	start := time.Now()
	_, err := NewSession(ctx, Opts{})
	require.Error(t, err)
	assert.Less(t, time.Since(start), 10*time.Second)
}
