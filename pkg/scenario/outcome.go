// Package scenario drives end-to-end registration and login flows against
// the target storefront, one fixture record at a time, using the resilient
// interaction primitives. Scenarios run strictly serially against a single
// browser session per suite.
package scenario

import (
	"fmt"

	"github.com/shopcheck/shopcheck/pkg/fixtures"
)

// Outcome is the observed result of one scenario run, derived from the page
// URL and DOM state.
type Outcome int

// scenario outcomes. EnvError marks an environment problem on the target
// side; such cases are excluded from the expected-vs-actual assertion.
const (
	Fail Outcome = iota
	Success
	EnvError
)

func (o Outcome) String() string {
	switch o {
	case Success:
		return "success"
	case Fail:
		return "fail"
	case EnvError:
		return "environment-error"
	}
	return fmt.Sprintf("outcome(%d)", int(o))
}

// Matches reports whether the observed outcome satisfies the fixture's
// expectation. EnvError never matches; callers skip the assertion for it.
func (o Outcome) Matches(expected fixtures.Expected) bool {
	switch expected {
	case fixtures.ExpectSuccess:
		return o == Success
	case fixtures.ExpectFail:
		return o == Fail
	}
	return false
}
