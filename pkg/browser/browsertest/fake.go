// Package browsertest provides scripted in-memory fakes for the browser
// Page and Element interfaces, used by interaction and scenario tests.
package browsertest

import (
	"fmt"
	"time"

	"github.com/shopcheck/shopcheck/pkg/browser"
)

// Page is a scripted fake implementing browser.Page. Elements are keyed by
// the rendered CSS selector of the locator used to find them.
type Page struct {
	CurrentURL  string
	NavigateErr error
	Navigated   []string

	Elements map[string]*Element   // single-element lookups
	Multi    map[string][]*Element // FindAll results, falls back to Elements

	// FindErrs queues errors per selector; each Find pops one entry before
	// consulting Elements. A nil entry means "succeed this time".
	FindErrs  map[string][]error
	FindCalls map[string]int

	EvalResult  any
	EvalErr     error
	Evaluated   []string
	Screenshots []string
	ScreenshotE error
	CookieWipes int
}

// NewPage creates an empty fake page.
func NewPage() *Page {
	return &Page{
		Elements:  map[string]*Element{},
		Multi:     map[string][]*Element{},
		FindErrs:  map[string][]error{},
		FindCalls: map[string]int{},
	}
}

// Add registers an element under the given CSS selector and returns it.
func (p *Page) Add(selector string) *Element {
	el := NewElement()
	p.Elements[selector] = el
	return el
}

func (p *Page) Navigate(url string) error {
	p.Navigated = append(p.Navigated, url)
	if p.NavigateErr != nil {
		return p.NavigateErr
	}
	return nil
}

func (p *Page) URL() string { return p.CurrentURL }

func (p *Page) Find(loc browser.Locator, _ time.Duration) (browser.Element, error) {
	sel := loc.Selector()
	p.FindCalls[sel]++
	if errs := p.FindErrs[sel]; len(errs) > 0 {
		err := errs[0]
		p.FindErrs[sel] = errs[1:]
		if err != nil {
			return nil, err
		}
	}
	el, ok := p.Elements[sel]
	if !ok {
		return nil, fmt.Errorf("timeout waiting for %s", sel)
	}
	return el, nil
}

func (p *Page) FindAll(loc browser.Locator) ([]browser.Element, error) {
	sel := loc.Selector()
	if els, ok := p.Multi[sel]; ok {
		res := make([]browser.Element, 0, len(els))
		for _, el := range els {
			res = append(res, el)
		}
		return res, nil
	}
	if el, ok := p.Elements[sel]; ok {
		return []browser.Element{el}, nil
	}
	return nil, nil
}

func (p *Page) Evaluate(script string, _ any) (any, error) {
	p.Evaluated = append(p.Evaluated, script)
	return p.EvalResult, p.EvalErr
}

func (p *Page) Screenshot(path string) error {
	p.Screenshots = append(p.Screenshots, path)
	return p.ScreenshotE
}

func (p *Page) ClearCookies() error {
	p.CookieWipes++
	return nil
}

// Element is a scripted fake implementing browser.Element.
type Element struct {
	Val     string
	TextVal string

	Hidden   bool
	Disabled bool

	WaitVisibleErr error
	WaitEnabledErr error
	VisibleErr     error
	ClickErr       error
	ClickJSErr     error
	ClearErr       error
	TypeErr        error
	PressErr       error
	SetValueErr    error
	ValueErr       error

	Clicks    int
	JSClicks  int
	Scrolls   int
	Typed     []string
	Pressed   []string
	SetValues []string

	// OnType overrides the default typing behavior (append to Val); used to
	// simulate widgets that reformat or reject keystrokes.
	OnType func(el *Element, text string)
	// OnSetValue overrides the default direct-assignment behavior (Val = v).
	OnSetValue func(el *Element, value string)

	selectedAll bool
}

// NewElement creates a visible, enabled fake element.
func NewElement() *Element { return &Element{} }

func (e *Element) WaitVisible(time.Duration) error { return e.WaitVisibleErr }
func (e *Element) WaitEnabled(time.Duration) error { return e.WaitEnabledErr }

func (e *Element) Visible() (bool, error) {
	if e.VisibleErr != nil {
		return false, e.VisibleErr
	}
	return !e.Hidden, nil
}

func (e *Element) Enabled() (bool, error) { return !e.Disabled, nil }

func (e *Element) Click() error {
	e.Clicks++
	return e.ClickErr
}

func (e *Element) ClickJS() error {
	e.JSClicks++
	return e.ClickJSErr
}

func (e *Element) Clear() error {
	if e.ClearErr != nil {
		return e.ClearErr
	}
	e.Val = ""
	return nil
}

func (e *Element) Type(text string) error {
	if e.TypeErr != nil {
		return e.TypeErr
	}
	e.Typed = append(e.Typed, text)
	switch {
	case e.OnType != nil:
		e.OnType(e, text)
	case e.selectedAll:
		e.Val = text
		e.selectedAll = false
	default:
		e.Val += text
	}
	return nil
}

func (e *Element) TypeSlow(text string, _ time.Duration) error { return e.Type(text) }

func (e *Element) Press(key string) error {
	if e.PressErr != nil {
		return e.PressErr
	}
	e.Pressed = append(e.Pressed, key)
	if key == "ControlOrMeta+a" {
		e.selectedAll = true
	}
	return nil
}

func (e *Element) Text() (string, error) { return e.TextVal, nil }

func (e *Element) Value() (string, error) {
	if e.ValueErr != nil {
		return "", e.ValueErr
	}
	return e.Val, nil
}

func (e *Element) SetValue(value string) error {
	if e.SetValueErr != nil {
		return e.SetValueErr
	}
	e.SetValues = append(e.SetValues, value)
	if e.OnSetValue != nil {
		e.OnSetValue(e, value)
		return nil
	}
	e.Val = value
	return nil
}

func (e *Element) ScrollIntoView() error {
	e.Scrolls++
	return nil
}
