package interact

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/shopcheck/shopcheck/pkg/browser"
)

// date inputs normalize or reject programmatic values depending on locale
// and widget implementation, so no single strategy is reliable. SetDate
// tries an ordered chain and checks acceptance empirically after each
// attempt instead of trusting the call's return.

const isoDateLayout = "2006-01-02"

// charDelay mitigates widgets that reformat the value on each keystroke.
const charDelay = 10 * time.Millisecond

// DateAssignmentError is returned when every date-setting strategy failed
// the acceptance test.
type DateAssignmentError struct {
	Value string
}

func (e *DateAssignmentError) Error() string {
	return fmt.Sprintf("no strategy assigned date %q", e.Value)
}

type dateStrategy struct {
	name  string
	apply func(el browser.Element, date string) error
}

var dateStrategies = []dateStrategy{
	{"direct assignment", func(el browser.Element, date string) error {
		return el.SetValue(date)
	}},
	{"clear and type", func(el browser.Element, date string) error {
		if err := el.Clear(); err != nil {
			return err
		}
		return el.Type(date)
	}},
	{"select-all and type", func(el browser.Element, date string) error {
		if err := el.Press("ControlOrMeta+a"); err != nil {
			return err
		}
		return el.Type(date)
	}},
	{"character by character", func(el browser.Element, date string) error {
		if err := el.Click(); err != nil {
			return err
		}
		if err := el.Clear(); err != nil {
			return err
		}
		return el.TypeSlow(date, charDelay)
	}},
	{"normalized reconstruction", func(el browser.Element, date string) error {
		t, err := time.Parse(isoDateLayout, date)
		if err != nil {
			return fmt.Errorf("parse %q: %w", date, err)
		}
		normalized := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC).Format(isoDateLayout)
		return el.SetValue(normalized)
	}},
}

// SetDate assigns isoDate to a date-typed input, trying strategies in fixed
// order until one passes the acceptance test: the resulting value contains
// the expected year component or exactly equals the requested string. The
// first accepted strategy short-circuits the rest. Returns the applied value.
func SetDate(el browser.Element, isoDate string) (string, error) {
	year := yearComponent(isoDate)

	for _, st := range dateStrategies {
		if err := st.apply(el, isoDate); err != nil {
			lgr.Printf("[DEBUG] date strategy %q failed: %v", st.name, err)
			continue
		}
		got, err := el.Value()
		if err != nil {
			lgr.Printf("[DEBUG] date strategy %q read back failed: %v", st.name, err)
			continue
		}
		if dateAccepted(got, isoDate, year) {
			lgr.Printf("[DEBUG] date strategy %q accepted, value %q", st.name, got)
			return got, nil
		}
		lgr.Printf("[DEBUG] date strategy %q rejected, value %q", st.name, got)
	}
	return "", &DateAssignmentError{Value: isoDate}
}

// SweepDateFormats is a best-effort secondary fallback for callers whose
// SetDate failed outright: it assigns alternative textual renderings of the
// date (original, slash-delimited, day-first, month-first) via the
// synthetic-notification technique, accepting the first that sticks. It
// never fails hard; ok is false when nothing was accepted.
func SweepDateFormats(el browser.Element, isoDate string) (applied string, ok bool) {
	year := yearComponent(isoDate)

	for _, format := range alternateFormats(isoDate) {
		if err := el.SetValue(format); err != nil {
			lgr.Printf("[DEBUG] date format %q assignment failed: %v", format, err)
			continue
		}
		got, err := el.Value()
		if err != nil {
			continue
		}
		if dateAccepted(got, format, year) {
			lgr.Printf("[INFO] fallback date format %q accepted, value %q", format, got)
			return got, true
		}
	}
	return "", false
}

// dateAccepted is the acceptance predicate shared by SetDate and the format
// sweep: value contains the year component, or equals the requested string.
func dateAccepted(got, want, year string) bool {
	if year != "" && strings.Contains(got, year) {
		return true
	}
	return got == want
}

// yearComponent extracts the 4-digit year from an ISO date, falling back to
// the leading segment when the string does not parse.
func yearComponent(isoDate string) string {
	if t, err := time.Parse(isoDateLayout, isoDate); err == nil {
		return fmt.Sprintf("%04d", t.Year())
	}
	if i := strings.IndexByte(isoDate, '-'); i > 0 {
		return isoDate[:i]
	}
	return isoDate
}

// alternateFormats renders the date in the sweep order: original,
// slash-delimited, day-first, month-first. An unparseable date yields only
// the original string.
func alternateFormats(isoDate string) []string {
	t, err := time.Parse(isoDateLayout, isoDate)
	if err != nil {
		return []string{isoDate}
	}
	return []string{
		isoDate,
		t.Format("2006/01/02"),
		t.Format("02-01-2006"),
		t.Format("01/02/2006"),
	}
}
