package browser

import (
	"fmt"
	"time"

	"github.com/playwright-community/playwright-go"
)

// setValueScript assigns a value directly and fires synthetic input/change
// notifications, so reactive form code observes the change without
// keystroke simulation.
const setValueScript = `(el, v) => {
	el.value = v;
	el.dispatchEvent(new Event('input', { bubbles: true }));
	el.dispatchEvent(new Event('change', { bubbles: true }));
}`

// pwPage adapts a playwright page to the Page interface.
type pwPage struct {
	page    playwright.Page
	browctx playwright.BrowserContext
}

func (p *pwPage) Navigate(url string) error {
	if _, err := p.page.Goto(url); err != nil {
		return fmt.Errorf("navigate to %s: %w", url, err)
	}
	return nil
}

func (p *pwPage) URL() string { return p.page.URL() }

// Find waits for the first match to be present (attached) and returns it.
func (p *pwPage) Find(loc Locator, timeout time.Duration) (Element, error) {
	l := p.page.Locator(loc.Selector()).First()
	err := l.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateAttached,
		Timeout: playwright.Float(float64(timeout / time.Millisecond)),
	})
	if err != nil {
		return nil, fmt.Errorf("wait for %s: %w", loc, err)
	}
	return &pwElement{loc: l}, nil
}

// FindAll returns the current matches without waiting.
func (p *pwPage) FindAll(loc Locator) ([]Element, error) {
	all, err := p.page.Locator(loc.Selector()).All()
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", loc, err)
	}
	els := make([]Element, 0, len(all))
	for _, l := range all {
		els = append(els, &pwElement{loc: l})
	}
	return els, nil
}

func (p *pwPage) Evaluate(script string, arg any) (any, error) {
	if arg == nil {
		return p.page.Evaluate(script)
	}
	return p.page.Evaluate(script, arg)
}

func (p *pwPage) Screenshot(path string) error {
	_, err := p.page.Screenshot(playwright.PageScreenshotOptions{
		Path:     playwright.String(path),
		FullPage: playwright.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("screenshot %s: %w", path, err)
	}
	return nil
}

func (p *pwPage) ClearCookies() error {
	if err := p.browctx.ClearCookies(); err != nil {
		return fmt.Errorf("clear cookies: %w", err)
	}
	return nil
}

// pwElement adapts a scoped playwright locator to the Element interface.
type pwElement struct {
	loc playwright.Locator
}

func (e *pwElement) WaitVisible(timeout time.Duration) error {
	return e.loc.WaitFor(playwright.LocatorWaitForOptions{
		State:   playwright.WaitForSelectorStateVisible,
		Timeout: playwright.Float(float64(timeout / time.Millisecond)),
	})
}

// WaitEnabled polls the enabled state; playwright has no direct wait for it.
func (e *pwElement) WaitEnabled(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for {
		enabled, err := e.loc.IsEnabled()
		if err == nil && enabled {
			return nil
		}
		if time.Now().After(deadline) {
			if err != nil {
				return fmt.Errorf("element not enabled after %v: %w", timeout, err)
			}
			return fmt.Errorf("element not enabled after %v", timeout)
		}
		time.Sleep(50 * time.Millisecond)
	}
}

func (e *pwElement) Visible() (bool, error) { return e.loc.IsVisible() }
func (e *pwElement) Enabled() (bool, error) { return e.loc.IsEnabled() }

func (e *pwElement) Click() error { return e.loc.Click() }

// ClickJS invokes the element's activation behavior directly, bypassing
// pointer simulation.
func (e *pwElement) ClickJS() error {
	_, err := e.loc.Evaluate("el => el.click()", nil)
	return err
}

func (e *pwElement) Clear() error { return e.loc.Clear() }

func (e *pwElement) Type(text string) error { return e.loc.PressSequentially(text) }

func (e *pwElement) TypeSlow(text string, delay time.Duration) error {
	return e.loc.PressSequentially(text, playwright.LocatorPressSequentiallyOptions{
		Delay: playwright.Float(float64(delay / time.Millisecond)),
	})
}

func (e *pwElement) Press(key string) error { return e.loc.Press(key) }

func (e *pwElement) Text() (string, error) { return e.loc.TextContent() }

func (e *pwElement) Value() (string, error) { return e.loc.InputValue() }

func (e *pwElement) SetValue(value string) error {
	_, err := e.loc.Evaluate(setValueScript, value)
	return err
}

func (e *pwElement) ScrollIntoView() error { return e.loc.ScrollIntoViewIfNeeded() }
