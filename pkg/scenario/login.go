package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/shopcheck/shopcheck/pkg/browser"
	"github.com/shopcheck/shopcheck/pkg/config"
	"github.com/shopcheck/shopcheck/pkg/fixtures"
	"github.com/shopcheck/shopcheck/pkg/interact"
)

// submitProbeTimeout bounds the presence wait per submit-control candidate.
// absence of every candidate is a structural page problem, not a transient
// one, so the probe stays short and is never retried.
const submitProbeTimeout = 2 * time.Second

// SubmitNotFoundError is returned when none of the submit-control selector
// candidates matched.
type SubmitNotFoundError struct {
	Candidates []string
}

func (e *SubmitNotFoundError) Error() string {
	return fmt.Sprintf("no submit control matched any of %d candidates: %s",
		len(e.Candidates), strings.Join(e.Candidates, ", "))
}

// Login runs one end-to-end login scenario per fixture record.
type Login struct {
	page browser.Page
	cfg  *config.Config
}

// NewLogin creates a login runner bound to one page.
func NewLogin(page browser.Page, cfg *config.Config) *Login {
	return &Login{page: page, cfg: cfg}
}

// Run executes the full login flow for one record and derives its outcome.
// Success means the current URL exactly equals the authenticated landing URL
// (trailing slash tolerated) or any authenticated-session marker is visible,
// checked in that order with short-circuiting. There is no environment-error
// case for login.
func (l *Login) Run(user fixtures.LoginUser) (Outcome, error) {
	sel := l.cfg.Selectors
	enabled := l.cfg.Timeouts.Enabled

	lgr.Printf("[INFO] login case %s (%s)", user.ID, user.Email)

	if err := l.page.Navigate(l.cfg.BaseURL); err != nil {
		return Fail, fmt.Errorf("navigate home: %w", err)
	}
	if _, err := interact.Click(l.page, browser.CSS(sel.SignInLink), enabled); err != nil {
		return Fail, fmt.Errorf("open login form: %w", err)
	}
	if _, err := l.page.Evaluate(resetFormsScript, nil); err != nil {
		lgr.Printf("[DEBUG] form reset failed for %s: %v", user.ID, err)
	}

	if _, err := interact.Fill(l.page, browser.CSS(sel.LoginEmail), user.Email, enabled); err != nil {
		return Fail, fmt.Errorf("fill email: %w", err)
	}
	if _, err := interact.Fill(l.page, browser.CSS(sel.LoginPassword), user.Password, enabled); err != nil {
		return Fail, fmt.Errorf("fill password: %w", err)
	}

	submit, err := l.findSubmit()
	if err != nil {
		return Fail, err
	}
	if err := submit.Click(); err != nil {
		lgr.Printf("[DEBUG] pointer click on submit failed (%v), trying direct activation", err)
		if jsErr := submit.ClickJS(); jsErr != nil {
			return Fail, fmt.Errorf("submit login: %w", jsErr)
		}
	}
	time.Sleep(l.cfg.Timeouts.LoginSettle)

	return l.outcome(user.ID), nil
}

// findSubmit probes the ordered candidate selectors; the first present
// control wins. No candidate matching is treated as a structural page
// problem and propagates immediately without retry.
func (l *Login) findSubmit() (browser.Element, error) {
	for _, candidate := range l.cfg.Selectors.LoginSubmitCandidates {
		el, err := l.page.Find(browser.CSS(candidate), submitProbeTimeout)
		if err != nil {
			continue
		}
		lgr.Printf("[DEBUG] submit control matched candidate %q", candidate)
		return el, nil
	}
	return nil, &SubmitNotFoundError{Candidates: l.cfg.Selectors.LoginSubmitCandidates}
}

// outcome derives the login verdict: URL equality first, then the marker
// elements in listed order.
func (l *Login) outcome(id string) Outcome {
	url := l.page.URL()
	account := l.cfg.AccountURL()
	if url == account || url == account+"/" {
		lgr.Printf("[INFO] case %s: landed on account page", id)
		return Success
	}
	if interact.AnyVisible(l.page, l.cfg.Selectors.AuthMarkers) {
		lgr.Printf("[INFO] case %s: authenticated-session marker visible", id)
		return Success
	}
	lgr.Printf("[INFO] case %s: no authenticated indicator, url %s", id, url)
	return Fail
}

// ResetAuth returns the session to an unauthenticated state between cases:
// logout via the user menu when present, otherwise clearing all session
// cookies. It runs after every case regardless of outcome, since scenarios
// share one session.
func (l *Login) ResetAuth() {
	sel := l.cfg.Selectors

	menu, err := l.page.Find(browser.CSS(sel.UserMenu), submitProbeTimeout)
	if err == nil {
		if visible, visErr := menu.Visible(); visErr == nil && visible {
			if l.logoutViaMenu(menu) {
				return
			}
		}
	}

	if err := l.page.ClearCookies(); err != nil {
		lgr.Printf("[WARN] cookie clear failed: %v", err)
		return
	}
	lgr.Printf("[DEBUG] auth state reset via cookie clear")
}

func (l *Login) logoutViaMenu(menu browser.Element) bool {
	if err := menu.Click(); err != nil {
		lgr.Printf("[DEBUG] user menu click failed: %v", err)
		return false
	}
	signOut, err := l.page.Find(browser.CSS(l.cfg.Selectors.SignOutLink), submitProbeTimeout)
	if err != nil {
		lgr.Printf("[DEBUG] sign-out link not found: %v", err)
		return false
	}
	if err := signOut.Click(); err != nil {
		lgr.Printf("[DEBUG] sign-out click failed: %v", err)
		return false
	}
	lgr.Printf("[DEBUG] auth state reset via logout")
	return true
}
