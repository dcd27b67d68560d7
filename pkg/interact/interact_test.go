package interact

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shopcheck/shopcheck/pkg/browser"
	"github.com/shopcheck/shopcheck/pkg/browser/browsertest"
)

func TestLocate(t *testing.T) {
	page := browsertest.NewPage()
	page.Add("#email")

	el, err := Locate(page, browser.ID("email"), DefaultLocateRetries)
	require.NoError(t, err)
	assert.NotNil(t, el)
	assert.Equal(t, 1, page.FindCalls["#email"])
}

func TestLocate_RetriesOnStale(t *testing.T) {
	page := browsertest.NewPage()
	page.Add("#email")
	page.FindErrs["#email"] = []error{browser.ErrStale, browser.ErrStale, nil}

	el, err := Locate(page, browser.ID("email"), DefaultLocateRetries)
	require.NoError(t, err)
	assert.NotNil(t, el)
	assert.Equal(t, 3, page.FindCalls["#email"], "two stale attempts plus the successful one")
}

func TestLocate_StaleExhausted(t *testing.T) {
	page := browsertest.NewPage()
	page.Add("#email")
	page.FindErrs["#email"] = []error{browser.ErrStale, browser.ErrStale, browser.ErrStale}

	_, err := Locate(page, browser.ID("email"), DefaultLocateRetries)
	require.Error(t, err)

	var notFound *ElementNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.ErrorIs(t, notFound.Err, browser.ErrStale)
	assert.Equal(t, 3, page.FindCalls["#email"])
}

func TestLocate_NonStaleFailsImmediately(t *testing.T) {
	page := browsertest.NewPage()
	boom := errors.New("timeout waiting for element")
	page.FindErrs["#email"] = []error{boom, boom, boom}

	_, err := Locate(page, browser.ID("email"), DefaultLocateRetries)
	require.Error(t, err)
	assert.Equal(t, boom, err)
	assert.Equal(t, 1, page.FindCalls["#email"], "non-stale errors must not retry")
}

func TestLocate_VisibilityStaleRetried(t *testing.T) {
	page := browsertest.NewPage()
	el := page.Add("#email")
	el.WaitVisibleErr = browser.ErrStale

	_, err := Locate(page, browser.ID("email"), DefaultLocateRetries)
	require.Error(t, err)

	var notFound *ElementNotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, 3, page.FindCalls["#email"], "staleness after find retries the full lookup")
}

func TestLocate_VisibilityTimeoutFailsImmediately(t *testing.T) {
	page := browsertest.NewPage()
	el := page.Add("#email")
	el.WaitVisibleErr = errors.New("element not visible after 5s")

	_, err := Locate(page, browser.ID("email"), DefaultLocateRetries)
	require.Error(t, err)
	assert.Equal(t, 1, page.FindCalls["#email"])
}

func TestFill(t *testing.T) {
	page := browsertest.NewPage()
	el := page.Add("#first_name")
	el.Val = "leftover"

	got, err := Fill(page, browser.ID("first_name"), "Jane", time.Second)
	require.NoError(t, err)
	assert.Same(t, el, got.(*browsertest.Element))
	assert.Equal(t, "Jane", el.Val, "previous content cleared before typing")
	assert.Equal(t, []string{"Jane"}, el.Typed)
	assert.Empty(t, el.SetValues, "verified type needs no fallback")
	assert.Equal(t, 1, el.Scrolls)
}

func TestFill_ReadBackMismatchFallsBack(t *testing.T) {
	page := browsertest.NewPage()
	el := page.Add("#phone")
	// widget reformats keystrokes, read-back never matches
	el.OnType = func(e *browsertest.Element, _ string) { e.Val = "(555) 123" }

	_, err := Fill(page, browser.ID("phone"), "5551234", time.Second)
	require.NoError(t, err)
	assert.Equal(t, []string{"5551234"}, el.SetValues, "mismatch triggers direct assignment")
}

func TestFill_ExhaustsRetries(t *testing.T) {
	page := browsertest.NewPage()
	el := page.Add("#email")
	el.TypeErr = errors.New("keyboard detached")

	_, err := Fill(page, browser.ID("email"), "a@x.com", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "type")
	assert.Equal(t, outerRetries, page.FindCalls["#email"], "whole fill sequence retried")
}

func TestFill_DisabledField(t *testing.T) {
	page := browsertest.NewPage()
	el := page.Add("#state")
	el.WaitEnabledErr = errors.New("still disabled")

	_, err := Fill(page, browser.ID("state"), "IL", time.Second)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wait enabled")
	assert.Empty(t, el.Typed)
}

func TestClick(t *testing.T) {
	page := browsertest.NewPage()
	el := page.Add(`button[data-test="register-submit"]`)

	_, err := Click(page, browser.CSS(`button[data-test="register-submit"]`), time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, el.Clicks)
	assert.Zero(t, el.JSClicks)
}

func TestClick_FallsBackToJS(t *testing.T) {
	page := browsertest.NewPage()
	el := page.Add("#submit")
	el.ClickErr = errors.New("element is covered by an overlay")

	_, err := Click(page, browser.ID("submit"), time.Second)
	require.NoError(t, err)
	assert.Equal(t, 1, el.Clicks)
	assert.Equal(t, 1, el.JSClicks)
}

func TestClick_ExhaustsRetries(t *testing.T) {
	page := browsertest.NewPage()
	el := page.Add("#submit")
	el.ClickErr = errors.New("covered")
	el.ClickJSErr = errors.New("handler threw")

	_, err := Click(page, browser.ID("submit"), time.Second)
	require.Error(t, err)

	var clickErr *ClickFailedError
	require.ErrorAs(t, err, &clickErr)
	assert.Equal(t, outerRetries, el.Clicks)
	assert.Equal(t, outerRetries, el.JSClicks)
}
