package scenario

import (
	"os"
	"path/filepath"

	"github.com/go-pkgz/lgr"

	"github.com/shopcheck/shopcheck/pkg/browser"
	"github.com/shopcheck/shopcheck/pkg/config"
	"github.com/shopcheck/shopcheck/pkg/fixtures"
)

// Suite runs scenario cases serially against a single browser session and
// collects per-case verdicts. Fixture records are processed in fixture
// order, one fully-completed scenario before the next begins.
type Suite struct {
	page browser.Page
	cfg  *config.Config
}

// NewSuite creates a suite bound to one page of a live session.
func NewSuite(page browser.Page, cfg *config.Config) *Suite {
	return &Suite{page: page, cfg: cfg}
}

// RunRegistrations runs the registration scenario for every record and
// returns the suite's result collector.
func (s *Suite) RunRegistrations(users []fixtures.RegistrationUser) *Results {
	results := NewResults("registration")
	runner := NewRegistration(s.page, s.cfg)

	for _, user := range users {
		s.runCase(results, user.ID, user.Expected, func() (Outcome, error) {
			return runner.Run(user)
		}, nil)
	}
	return results
}

// RunLogins runs the login scenario for every record. Authentication state
// is reset after each case, regardless of outcome, so the next record starts
// unauthenticated.
func (s *Suite) RunLogins(users []fixtures.LoginUser) *Results {
	results := NewResults("login")
	runner := NewLogin(s.page, s.cfg)

	for _, user := range users {
		s.runCase(results, user.ID, user.Expected, func() (Outcome, error) {
			return runner.Run(user)
		}, runner.ResetAuth)
	}
	return results
}

// runCase executes one scenario and records its verdict. An error from the
// scenario marks the case failed and captures a screenshot keyed by the case
// identifier. An environment-error outcome skips the assertion entirely and
// touches neither the pass nor the fail list.
func (s *Suite) runCase(results *Results, id string, expected fixtures.Expected, run func() (Outcome, error), cleanup func()) {
	if cleanup != nil {
		defer cleanup()
	}

	observed, err := run()
	if err != nil {
		lgr.Printf("[WARN] case %s failed: %v", id, err)
		s.screenshot(id)
		results.Fail(id)
		return
	}

	switch {
	case observed == EnvError:
		lgr.Printf("[WARN] case %s: environment error, assertion skipped", id)
		results.Skip(id)
	case observed.Matches(expected):
		lgr.Printf("[INFO] case %s: %s as expected", id, observed)
		results.Pass(id)
	default:
		lgr.Printf("[WARN] case %s: expected %s, observed %s", id, expected, observed)
		results.Fail(id)
	}
}

// screenshot captures a diagnostic artifact for a failed case, best-effort.
func (s *Suite) screenshot(id string) {
	dir := s.cfg.ScreenshotDir
	if dir == "" {
		dir = "screenshots"
	}
	if err := os.MkdirAll(dir, 0o750); err != nil {
		lgr.Printf("[WARN] create screenshot dir: %v", err)
		return
	}
	path := filepath.Join(dir, id+".png")
	if err := s.page.Screenshot(path); err != nil {
		lgr.Printf("[WARN] screenshot for %s failed: %v", id, err)
		return
	}
	lgr.Printf("[INFO] screenshot saved: %s", path)
}
