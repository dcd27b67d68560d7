// Package interact implements the resilient browser-interaction layer:
// locating elements, filling fields, setting date inputs, clicking controls
// and scanning for rendered error messages. Every primitive tolerates DOM
// re-rendering races with bounded local retries; exhausted retries propagate
// the last error to the enclosing scenario.
package interact

import (
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/shopcheck/shopcheck/pkg/browser"
)

const (
	// DefaultLocateRetries bounds full-lookup retries on staleness.
	DefaultLocateRetries = 3

	findTimeout    = 10 * time.Second // bounded wait for element presence
	visibleTimeout = 5 * time.Second  // bounded wait for element visibility
	locatePause    = 100 * time.Millisecond

	outerRetries = 3
	retryPause   = 200 * time.Millisecond
	settlePause  = 150 * time.Millisecond
)

// ElementNotFoundError is returned when a lookup exhausted its staleness
// retries. It carries the last underlying error.
type ElementNotFoundError struct {
	Locator browser.Locator
	Err     error
}

func (e *ElementNotFoundError) Error() string {
	return fmt.Sprintf("element %s not found: %v", e.Locator, e.Err)
}

func (e *ElementNotFoundError) Unwrap() error { return e.Err }

// ClickFailedError is returned when a click exhausted its outer retries.
type ClickFailedError struct {
	Locator browser.Locator
	Err     error
}

func (e *ClickFailedError) Error() string {
	return fmt.Sprintf("click %s failed: %v", e.Locator, e.Err)
}

func (e *ClickFailedError) Unwrap() error { return e.Err }

// Locate finds an element, waiting for presence then visibility, each with
// its own bounded timeout. A transient staleness signal retries the full
// lookup up to maxRetries times with a short pause between attempts; any
// other failure propagates immediately without retry.
func Locate(page browser.Page, loc browser.Locator, maxRetries int) (browser.Element, error) {
	if maxRetries <= 0 {
		maxRetries = DefaultLocateRetries
	}

	var lastErr error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		el, err := page.Find(loc, findTimeout)
		if err == nil {
			if err = el.WaitVisible(visibleTimeout); err == nil {
				return el, nil
			}
		}
		if !browser.IsStale(err) {
			return nil, err
		}
		lastErr = err
		lgr.Printf("[DEBUG] stale element on %s, lookup attempt %d/%d", loc, attempt, maxRetries)
		time.Sleep(locatePause)
	}
	return nil, &ElementNotFoundError{Locator: loc, Err: lastErr}
}

// Fill writes value into a text-like input and verifies the written value by
// reading it back. A read-back mismatch falls back to direct value
// assignment with synthetic input/change notifications; the fallback is
// accepted best-effort and not re-verified. The whole sequence is retried up
// to 3 times, 200ms apart, with every failure logged; the last error
// propagates after the retries are exhausted.
func Fill(page browser.Page, loc browser.Locator, value string, timeout time.Duration) (browser.Element, error) {
	var lastErr error
	for attempt := 1; attempt <= outerRetries; attempt++ {
		el, err := fillOnce(page, loc, value, timeout)
		if err == nil {
			return el, nil
		}
		lastErr = err
		lgr.Printf("[WARN] fill %s attempt %d/%d failed: %v", loc, attempt, outerRetries, err)
		time.Sleep(retryPause)
	}
	return nil, lastErr
}

func fillOnce(page browser.Page, loc browser.Locator, value string, timeout time.Duration) (browser.Element, error) {
	el, err := Locate(page, loc, DefaultLocateRetries)
	if err != nil {
		return nil, err
	}
	if err = el.WaitEnabled(timeout); err != nil {
		return nil, fmt.Errorf("wait enabled: %w", err)
	}
	if err = el.ScrollIntoView(); err != nil {
		return nil, fmt.Errorf("scroll into view: %w", err)
	}
	time.Sleep(settlePause)
	if err = el.Clear(); err != nil {
		return nil, fmt.Errorf("clear: %w", err)
	}
	time.Sleep(settlePause)
	if err = el.Type(value); err != nil {
		return nil, fmt.Errorf("type: %w", err)
	}

	got, err := el.Value()
	if err != nil {
		return nil, fmt.Errorf("read back: %w", err)
	}
	if got != value {
		lgr.Printf("[WARN] read-back mismatch on %s (got %q, want %q), using direct assignment", loc, got, value)
		if err = el.SetValue(value); err != nil {
			return nil, fmt.Errorf("direct assignment: %w", err)
		}
		// the fallback is accepted as best-effort, no second read-back
	}
	return el, nil
}

// Click activates a control, retrying the whole sequence up to 3 times,
// 200ms apart. Within one attempt a failed pointer click falls back to
// direct invocation of the element's activation behavior. Exhausted retries
// return a ClickFailedError.
func Click(page browser.Page, loc browser.Locator, timeout time.Duration) (browser.Element, error) {
	var lastErr error
	for attempt := 1; attempt <= outerRetries; attempt++ {
		el, err := clickOnce(page, loc, timeout)
		if err == nil {
			return el, nil
		}
		lastErr = err
		lgr.Printf("[WARN] click %s attempt %d/%d failed: %v", loc, attempt, outerRetries, err)
		time.Sleep(retryPause)
	}
	return nil, &ClickFailedError{Locator: loc, Err: lastErr}
}

func clickOnce(page browser.Page, loc browser.Locator, timeout time.Duration) (browser.Element, error) {
	el, err := Locate(page, loc, DefaultLocateRetries)
	if err != nil {
		return nil, err
	}
	if err = el.WaitEnabled(timeout); err != nil {
		return nil, fmt.Errorf("wait enabled: %w", err)
	}
	if err = el.ScrollIntoView(); err != nil {
		return nil, fmt.Errorf("scroll into view: %w", err)
	}
	time.Sleep(settlePause)

	if err = el.Click(); err != nil {
		lgr.Printf("[DEBUG] pointer click on %s failed (%v), trying direct activation", loc, err)
		if jsErr := el.ClickJS(); jsErr != nil {
			return nil, fmt.Errorf("pointer click: %v, direct activation: %w", err, jsErr)
		}
	}
	return el, nil
}
