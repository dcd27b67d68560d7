// Package browser wraps the playwright driver behind narrow Page and Element
// interfaces, so the interaction layer and the scenario runners stay
// driver-agnostic and testable without a live browser.
package browser

import (
	"fmt"
	"time"
)

// Locator describes how to find zero-or-more DOM elements. It is a value
// type, constructed fresh per lookup, and carries no state beyond the call.
type Locator struct {
	By    string // locating mechanism: css, id or name
	Value string
}

// locating mechanisms.
const (
	ByCSS  = "css"
	ByID   = "id"
	ByName = "name"
)

// CSS returns a locator for a raw CSS selector.
func CSS(selector string) Locator { return Locator{By: ByCSS, Value: selector} }

// ID returns a locator for an element id.
func ID(id string) Locator { return Locator{By: ByID, Value: id} }

// Name returns a locator for a form control name attribute.
func Name(name string) Locator { return Locator{By: ByName, Value: name} }

// Selector renders the locator as a CSS selector understood by the driver.
func (l Locator) Selector() string {
	switch l.By {
	case ByID:
		return "#" + l.Value
	case ByName:
		return fmt.Sprintf("[name=%q]", l.Value)
	default:
		return l.Value
	}
}

func (l Locator) String() string { return l.By + "=" + l.Value }

// Page is the harness view of one rendered page inside a session. Find waits
// for element presence up to the given timeout; FindAll returns the current
// matches without waiting.
type Page interface {
	Navigate(url string) error
	URL() string
	Find(loc Locator, timeout time.Duration) (Element, error)
	FindAll(loc Locator) ([]Element, error)
	Evaluate(script string, arg any) (any, error)
	Screenshot(path string) error
	ClearCookies() error
}

// Element is a handle to a single located DOM element.
type Element interface {
	WaitVisible(timeout time.Duration) error
	WaitEnabled(timeout time.Duration) error
	Visible() (bool, error)
	Enabled() (bool, error)
	Click() error
	ClickJS() error
	Clear() error
	Type(text string) error
	TypeSlow(text string, delay time.Duration) error
	Press(key string) error
	Text() (string, error)
	Value() (string, error)
	SetValue(value string) error
	ScrollIntoView() error
}
