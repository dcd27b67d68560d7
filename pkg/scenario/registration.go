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

// outOfStockMarker classifies an inventory-style error on the target side as
// an environment problem rather than a test verdict. The check is a literal
// case-insensitive substring match; it encodes the real contract with the
// system under test and must not be replaced with structured parsing.
const outOfStockMarker = "out of stock"

// resetFormsScript clears any residual values before a scenario fills the
// form.
const resetFormsScript = `() => { document.querySelectorAll('form').forEach(f => f.reset()); }`

// Registration runs one end-to-end registration scenario per fixture record.
type Registration struct {
	page browser.Page
	cfg  *config.Config
}

// NewRegistration creates a registration runner bound to one page.
func NewRegistration(page browser.Page, cfg *config.Config) *Registration {
	return &Registration{page: page, cfg: cfg}
}

// Run executes the full registration flow for one record and derives its
// outcome. Success means the resulting URL contains the login path segment;
// an "out of stock" error message downgrades the case to an environment
// error; anything else is a Fail. Errors from the flow itself propagate to
// the suite, which records the case failed and captures a screenshot.
func (r *Registration) Run(user fixtures.RegistrationUser) (Outcome, error) {
	sel := r.cfg.Selectors
	enabled := r.cfg.Timeouts.Enabled

	lgr.Printf("[INFO] registration case %s (%s)", user.ID, user.Email)

	if err := r.page.Navigate(r.cfg.BaseURL); err != nil {
		return Fail, fmt.Errorf("navigate home: %w", err)
	}
	if _, err := interact.Click(r.page, browser.CSS(sel.SignInLink), enabled); err != nil {
		return Fail, fmt.Errorf("open sign-in: %w", err)
	}
	if _, err := interact.Click(r.page, browser.CSS(sel.RegisterLink), enabled); err != nil {
		return Fail, fmt.Errorf("open registration form: %w", err)
	}
	if _, err := r.page.Evaluate(resetFormsScript, nil); err != nil {
		lgr.Printf("[DEBUG] form reset failed for %s: %v", user.ID, err)
	}

	// identity
	if err := r.fill(sel.FirstName, user.FirstName); err != nil {
		return Fail, err
	}
	if err := r.fill(sel.LastName, user.LastName); err != nil {
		return Fail, err
	}

	// date of birth is best-effort: a total failure is logged and the
	// scenario continues with whatever partial value exists
	r.setDateOfBirth(user)

	// address
	if err := r.fill(sel.Street, user.Street); err != nil {
		return Fail, err
	}
	if err := r.fill(sel.PostCode, user.PostCode); err != nil {
		return Fail, err
	}
	if err := r.fill(sel.City, user.City); err != nil {
		return Fail, err
	}
	if err := r.fill(sel.State, user.State); err != nil {
		return Fail, err
	}
	r.selectCountry(user)

	// contact
	if err := r.fill(sel.Phone, user.Phone); err != nil {
		return Fail, err
	}
	if err := r.fill(sel.Email, user.Email); err != nil {
		return Fail, err
	}
	if err := r.fill(sel.Password, user.Password); err != nil {
		return Fail, err
	}

	if _, err := interact.Click(r.page, browser.CSS(sel.RegisterSubmit), enabled); err != nil {
		return Fail, fmt.Errorf("submit registration: %w", err)
	}
	time.Sleep(r.cfg.Timeouts.RegistrationSettle)

	return r.outcome(user.ID), nil
}

func (r *Registration) fill(selector, value string) error {
	if _, err := interact.Fill(r.page, browser.CSS(selector), value, r.cfg.Timeouts.Enabled); err != nil {
		return fmt.Errorf("fill %s: %w", selector, err)
	}
	return nil
}

// setDateOfBirth tries the full strategy chain and, when that fails, sweeps
// alternative textual date formats. Nothing here is fatal.
func (r *Registration) setDateOfBirth(user fixtures.RegistrationUser) {
	el, err := interact.Locate(r.page, browser.CSS(r.cfg.Selectors.DOB), interact.DefaultLocateRetries)
	if err != nil {
		lgr.Printf("[WARN] case %s: date-of-birth field not found, continuing: %v", user.ID, err)
		return
	}
	if _, err := interact.SetDate(el, user.DOB); err != nil {
		lgr.Printf("[WARN] case %s: all date strategies failed, trying format sweep: %v", user.ID, err)
		if applied, ok := interact.SweepDateFormats(el, user.DOB); ok {
			lgr.Printf("[INFO] case %s: date set via format sweep: %q", user.ID, applied)
			return
		}
		lgr.Printf("[WARN] case %s: date of birth left partial, continuing", user.ID)
	}
}

// selectCountry picks the country option click-based and falls back to
// direct value assignment with a change notification.
func (r *Registration) selectCountry(user fixtures.RegistrationUser) {
	sel := r.cfg.Selectors.Country
	el, err := interact.Locate(r.page, browser.CSS(sel), interact.DefaultLocateRetries)
	if err != nil {
		lgr.Printf("[WARN] case %s: country select not found: %v", user.ID, err)
		return
	}
	if err := r.clickCountryOption(el, sel, user.Country); err != nil {
		lgr.Printf("[WARN] case %s: click-based country selection failed (%v), using direct assignment", user.ID, err)
		if setErr := el.SetValue(user.Country); setErr != nil {
			lgr.Printf("[WARN] case %s: country assignment failed: %v", user.ID, setErr)
		}
	}
}

func (r *Registration) clickCountryOption(el browser.Element, selector, country string) error {
	if err := el.Click(); err != nil {
		return fmt.Errorf("open select: %w", err)
	}
	optionSel := fmt.Sprintf("%s option[value=%q]", selector, country)
	option, err := r.page.Find(browser.CSS(optionSel), r.cfg.Timeouts.Enabled)
	if err != nil {
		return fmt.Errorf("find option %s: %w", country, err)
	}
	if err := option.Click(); err != nil {
		return fmt.Errorf("click option %s: %w", country, err)
	}
	return nil
}

// outcome derives the registration verdict from URL and DOM state.
func (r *Registration) outcome(id string) Outcome {
	errText := interact.ErrorText(r.page, r.cfg.Selectors.ErrorIndicators, r.cfg.Timeouts.ErrorSettle)
	url := r.page.URL()

	if strings.Contains(url, r.cfg.LoginPath) {
		lgr.Printf("[INFO] case %s: redirected to login page (%s)", id, url)
		return Success
	}
	if strings.Contains(strings.ToLower(errText), outOfStockMarker) {
		lgr.Printf("[WARN] case %s: environment error on target: %q", id, errText)
		return EnvError
	}
	if errText != "" {
		lgr.Printf("[INFO] case %s: registration rejected: %q", id, errText)
	}
	return Fail
}
