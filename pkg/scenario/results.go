package scenario

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"
)

// Results collects per-case verdicts for one suite run. Each suite owns its
// collector; nothing is shared across suites.
type Results struct {
	Suite   string
	Passed  []string
	Failed  []string
	Skipped []string

	started time.Time
}

// NewResults creates an empty collector for the named suite.
func NewResults(suite string) *Results {
	return &Results{Suite: suite, started: time.Now()}
}

// Pass records a case whose observed outcome matched the expectation.
func (r *Results) Pass(id string) { r.Passed = append(r.Passed, id) }

// Fail records a case that mismatched or errored.
func (r *Results) Fail(id string) { r.Failed = append(r.Failed, id) }

// Skip records a case excluded from the assertion (environment error).
func (r *Results) Skip(id string) { r.Skipped = append(r.Skipped, id) }

// Total returns the number of recorded cases.
func (r *Results) Total() int { return len(r.Passed) + len(r.Failed) + len(r.Skipped) }

// Ok reports whether the suite had no failed cases.
func (r *Results) Ok() bool { return len(r.Failed) == 0 }

// Elapsed returns the wall-clock duration since the collector was created.
func (r *Results) Elapsed() time.Duration { return time.Since(r.started).Round(time.Millisecond) }

// Summary renders the per-suite summary block: counts and the list of
// failed identifiers.
func (r *Results) Summary() string {
	var b strings.Builder

	header := color.New(color.FgCyan, color.Bold)
	okColor := color.New(color.FgGreen)
	badColor := color.New(color.FgRed)
	skipColor := color.New(color.FgYellow)

	fmt.Fprintf(&b, "%s\n", header.Sprintf("%s suite: %d cases in %s", r.Suite, r.Total(), r.Elapsed()))
	fmt.Fprintf(&b, "  %s\n", okColor.Sprintf("passed:  %d", len(r.Passed)))
	fmt.Fprintf(&b, "  %s\n", badColor.Sprintf("failed:  %d", len(r.Failed)))
	fmt.Fprintf(&b, "  %s\n", skipColor.Sprintf("skipped: %d", len(r.Skipped)))

	if len(r.Failed) > 0 {
		fmt.Fprintf(&b, "  %s\n", badColor.Sprintf("failed cases: %s", strings.Join(r.Failed, ", ")))
	}
	if len(r.Skipped) > 0 {
		fmt.Fprintf(&b, "  %s\n", skipColor.Sprintf("skipped cases: %s", strings.Join(r.Skipped, ", ")))
	}
	return b.String()
}
