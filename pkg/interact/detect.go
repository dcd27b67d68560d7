package interact

import (
	"strings"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/shopcheck/shopcheck/pkg/browser"
)

// ErrorText waits for asynchronous validation to render, then scans the
// error-indicating selectors in order and returns the trimmed text of the
// first visible element with non-empty content. An empty result means no
// message was observed; that is not an error condition. Outcome
// classification from the returned text lives in the scenario runners, since
// success criteria differ between registration and login.
func ErrorText(page browser.Page, selectors []string, settle time.Duration) string {
	time.Sleep(settle)

	for _, sel := range selectors {
		els, err := page.FindAll(browser.CSS(sel))
		if err != nil {
			lgr.Printf("[DEBUG] error scan %q failed: %v", sel, err)
			continue
		}
		for _, el := range els {
			visible, err := el.Visible()
			if err != nil || !visible {
				continue
			}
			text, err := el.Text()
			if err != nil {
				continue
			}
			if trimmed := strings.TrimSpace(text); trimmed != "" {
				return trimmed
			}
		}
	}
	return ""
}

// AnyVisible reports whether any of the selectors resolves to a visible
// element, probing them in order and short-circuiting on the first hit.
func AnyVisible(page browser.Page, selectors []string) bool {
	for _, sel := range selectors {
		els, err := page.FindAll(browser.CSS(sel))
		if err != nil {
			continue
		}
		for _, el := range els {
			if visible, err := el.Visible(); err == nil && visible {
				return true
			}
		}
	}
	return false
}
