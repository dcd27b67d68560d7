package browser

import (
	"errors"
	"fmt"
	"strings"
)

// ErrStale indicates the located element disappeared or was replaced mid
// operation, usually because the application re-rendered the DOM. Stale
// failures are the only transient ones the interaction layer retries.
var ErrStale = errors.New("element is stale or detached from the document")

// staleMarkers are driver error fragments that mean the element went away
// between lookup and use. Playwright reports these as plain strings, so
// classification is by substring match.
var staleMarkers = []string{
	"not attached",
	"detached",
	"stale",
	"element was removed",
}

// IsStale reports whether err is a transient staleness signal.
func IsStale(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, ErrStale) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, m := range staleMarkers {
		if strings.Contains(msg, m) {
			return true
		}
	}
	return false
}

// SessionCreationError is returned when a browser session could not be
// created after all attempts. It is fatal to the suite.
type SessionCreationError struct {
	Engine   Engine
	Attempts int
	Err      error
}

func (e *SessionCreationError) Error() string {
	return fmt.Sprintf("create %s session failed after %d attempts: %v", e.Engine, e.Attempts, e.Err)
}

func (e *SessionCreationError) Unwrap() error { return e.Err }
