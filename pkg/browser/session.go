package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-pkgz/lgr"
	"github.com/go-pkgz/repeater"
	"github.com/playwright-community/playwright-go"
)

// Engine names a browser engine supported by the driver.
type Engine string

// supported engines, chromium being the primary one.
const (
	Chromium Engine = "chromium"
	Firefox  Engine = "firefox"
	WebKit   Engine = "webkit"
)

// ParseEngine maps a user-supplied engine name to an Engine.
func ParseEngine(name string) (Engine, error) {
	switch Engine(name) {
	case Chromium, Firefox, WebKit:
		return Engine(name), nil
	case "":
		return Chromium, nil
	}
	return "", fmt.Errorf("unknown browser engine %q", name)
}

// Opts holds session configuration.
type Opts struct {
	Engine      Engine
	Headless    bool
	Timeout     time.Duration // implicit wait applied to element operations
	PageTimeout time.Duration // page-load (navigation) timeout
}

const (
	viewportWidth  = 1920
	viewportHeight = 1080

	createAttempts = 3

	defaultTimeout     = 10 * time.Second
	defaultPageTimeout = 30 * time.Second
)

// createDelay is the fixed backoff between session-creation attempts.
// a var so tests can shrink it.
var createDelay = 2 * time.Second

// chromiumArgs suppress automation autodetection markers and disable
// features that add timing noise (images, notifications, extensions).
var chromiumArgs = []string{
	"--disable-blink-features=AutomationControlled",
	"--blink-settings=imagesEnabled=false",
	"--disable-notifications",
	"--disable-extensions",
}

// Session owns one live browser, context and page. It is created once per
// suite and all scenario steps run serially against it.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	browctx playwright.BrowserContext
	page    playwright.Page
	closed  bool
}

// runDriver starts the playwright driver. a var so tests can stub it.
var runDriver = func() (*playwright.Playwright, error) { return playwright.Run() }

// NewSession creates a configured browser session, retrying a bounded number
// of times with a fixed delay between attempts. Failure after all attempts
// returns a SessionCreationError, which is fatal to the suite.
func NewSession(ctx context.Context, opts Opts) (*Session, error) {
	if opts.Engine == "" {
		opts.Engine = Chromium
	}
	if opts.Timeout <= 0 {
		opts.Timeout = defaultTimeout
	}
	if opts.PageTimeout <= 0 {
		opts.PageTimeout = defaultPageTimeout
	}

	var session *Session
	attempt := 0
	err := repeater.NewDefault(createAttempts, createDelay).Do(ctx, func() error {
		attempt++
		s, err := create(opts)
		if err != nil {
			lgr.Printf("[WARN] session creation attempt %d/%d failed: %v", attempt, createAttempts, err)
			return err
		}
		session = s
		return nil
	})
	if err != nil {
		return nil, &SessionCreationError{Engine: opts.Engine, Attempts: createAttempts, Err: err}
	}

	lgr.Printf("[INFO] %s session created, headless=%v", opts.Engine, opts.Headless)
	return session, nil
}

// create performs a single session-creation attempt.
func create(opts Opts) (*Session, error) {
	pw, err := runDriver()
	if err != nil {
		return nil, fmt.Errorf("start driver: %w", err)
	}

	var browserType playwright.BrowserType
	launchOpts := playwright.BrowserTypeLaunchOptions{Headless: playwright.Bool(opts.Headless)}
	switch opts.Engine {
	case Firefox:
		browserType = pw.Firefox
	case WebKit:
		browserType = pw.WebKit
	default:
		browserType = pw.Chromium
		launchOpts.Args = chromiumArgs
	}

	browser, err := browserType.Launch(launchOpts)
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch %s: %w", opts.Engine, err)
	}

	browctx, err := browser.NewContext(playwright.BrowserNewContextOptions{
		Viewport: &playwright.Size{Width: viewportWidth, Height: viewportHeight},
	})
	if err != nil {
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("create context: %w", err)
	}

	page, err := browctx.NewPage()
	if err != nil {
		_ = browctx.Close()
		_ = browser.Close()
		_ = pw.Stop()
		return nil, fmt.Errorf("create page: %w", err)
	}

	page.SetDefaultTimeout(float64(opts.Timeout / time.Millisecond))
	page.SetDefaultNavigationTimeout(float64(opts.PageTimeout / time.Millisecond))

	return &Session{pw: pw, browser: browser, browctx: browctx, page: page}, nil
}

// Page returns the session's single page behind the Page interface.
func (s *Session) Page() Page {
	return &pwPage{page: s.page, browctx: s.browctx}
}

// Close releases page, context, browser and driver in order. It must be
// called exactly once per created session, including on scenario failure;
// repeated calls are no-ops.
func (s *Session) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true

	var firstErr error
	if err := s.page.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close page: %w", err)
	}
	if err := s.browctx.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close context: %w", err)
	}
	if err := s.browser.Close(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("close browser: %w", err)
	}
	if err := s.pw.Stop(); err != nil && firstErr == nil {
		firstErr = fmt.Errorf("stop driver: %w", err)
	}
	return firstErr
}
