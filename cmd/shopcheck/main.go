// Package main provides shopcheck - a data-driven UI test harness that
// drives a browser through registration and login flows of a storefront
// application and checks observed outcomes against fixture expectations.
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/go-pkgz/lgr"
	"github.com/jessevdk/go-flags"

	"github.com/shopcheck/shopcheck/pkg/browser"
	"github.com/shopcheck/shopcheck/pkg/config"
	"github.com/shopcheck/shopcheck/pkg/fixtures"
	"github.com/shopcheck/shopcheck/pkg/notify"
	"github.com/shopcheck/shopcheck/pkg/scenario"
)

// opts holds all command-line options.
type opts struct {
	BaseURL     string `long:"base-url" env:"BASE_URL" description:"target application base URL (overrides config)"`
	Browser     string `long:"browser" env:"BROWSER" default:"chromium" choice:"chromium" choice:"firefox" choice:"webkit" description:"browser engine"`
	Headless    bool   `long:"headless" env:"HEADLESS" description:"run the browser headless"`
	MaxUsers    int    `long:"max-users" env:"MAX_USERS" description:"limit registration records, 0 runs all"`
	MaxLogins   int    `long:"max-logins" env:"MAX_LOGINS" description:"limit login records, 0 runs all"`
	Users       string `long:"users" default:"testdata/users.yml" description:"registration fixtures file"`
	Logins      string `long:"logins" default:"testdata/logins.yml" description:"login fixtures file"`
	Config      string `long:"config" env:"SHOPCHECK_CONFIG" description:"optional config file overriding embedded defaults"`
	Screenshots string `long:"screenshots" description:"screenshot directory (overrides config)"`

	SkipRegistration bool `long:"skip-registration" description:"skip the registration suite"`
	SkipLogin        bool `long:"skip-login" description:"skip the login suite"`
	Generate         int  `long:"generate" description:"generate N fixture records per suite and exit"`

	Dbg     bool `long:"dbg" env:"DEBUG" description:"debug mode"`
	NoColor bool `long:"no-color" env:"NO_COLOR" description:"disable color output"`
	Version bool `short:"v" long:"version" description:"print version and exit"`
}

var revision = "unknown"

func main() {
	fmt.Printf("shopcheck %s\n", revision)

	var o opts
	parser := flags.NewParser(&o, flags.Default)
	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}

	if o.Version {
		os.Exit(0)
	}

	setupLog(o.Dbg)
	if o.NoColor {
		color.NoColor = true
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, o); err != nil {
		lgr.Printf("[ERROR] %v", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, o opts) error {
	cfg, err := config.Load(o.Config)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if o.BaseURL != "" {
		cfg.BaseURL = o.BaseURL
	}
	if o.Screenshots != "" {
		cfg.ScreenshotDir = o.Screenshots
	}

	if o.Generate > 0 {
		return generateFixtures(o)
	}

	engine, err := browser.ParseEngine(o.Browser)
	if err != nil {
		return err
	}

	regUsers, loginUsers, err := loadFixtures(o)
	if err != nil {
		return err
	}

	notifier, err := notify.New(cfg.Notify)
	if err != nil {
		return fmt.Errorf("create notifier: %w", err)
	}

	session, err := browser.NewSession(ctx, browser.Opts{
		Engine:      engine,
		Headless:    o.Headless,
		Timeout:     cfg.Timeouts.Implicit,
		PageTimeout: cfg.Timeouts.PageLoad,
	})
	if err != nil {
		return fmt.Errorf("create session: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			lgr.Printf("[WARN] session close: %v", closeErr)
		}
	}()

	suite := scenario.NewSuite(session.Page(), cfg)
	failed := false

	if !o.SkipRegistration {
		results := suite.RunRegistrations(regUsers)
		fmt.Print(results.Summary())
		notifier.Send(ctx, suiteResult(results))
		failed = failed || !results.Ok()
	}

	if !o.SkipLogin {
		results := suite.RunLogins(loginUsers)
		fmt.Print(results.Summary())
		notifier.Send(ctx, suiteResult(results))
		failed = failed || !results.Ok()
	}

	if failed {
		return errors.New("one or more suites had failing cases")
	}
	return nil
}

func loadFixtures(o opts) (regUsers []fixtures.RegistrationUser, loginUsers []fixtures.LoginUser, err error) {
	if !o.SkipRegistration {
		if regUsers, err = fixtures.LoadRegistrations(o.Users, o.MaxUsers); err != nil {
			return nil, nil, fmt.Errorf("load registration fixtures: %w", err)
		}
		lgr.Printf("[INFO] loaded %d registration records from %s", len(regUsers), o.Users)
	}
	if !o.SkipLogin {
		if loginUsers, err = fixtures.LoadLogins(o.Logins, o.MaxLogins); err != nil {
			return nil, nil, fmt.Errorf("load login fixtures: %w", err)
		}
		lgr.Printf("[INFO] loaded %d login records from %s", len(loginUsers), o.Logins)
	}
	return regUsers, loginUsers, nil
}

func generateFixtures(o opts) error {
	if err := fixtures.Save(o.Users, fixtures.GenerateRegistrations(o.Generate)); err != nil {
		return fmt.Errorf("generate registration fixtures: %w", err)
	}
	if err := fixtures.Save(o.Logins, fixtures.GenerateLogins(o.Generate)); err != nil {
		return fmt.Errorf("generate login fixtures: %w", err)
	}
	lgr.Printf("[INFO] generated %d records each into %s and %s", o.Generate, o.Users, o.Logins)
	return nil
}

func suiteResult(r *scenario.Results) notify.Result {
	status := "success"
	if !r.Ok() {
		status = "failure"
	}
	return notify.Result{
		Suite:     r.Suite,
		Status:    status,
		Total:     r.Total(),
		Passed:    len(r.Passed),
		Failed:    len(r.Failed),
		Skipped:   len(r.Skipped),
		FailedIDs: r.Failed,
		Duration:  r.Elapsed().String(),
	}
}

func setupLog(dbg bool) {
	if dbg {
		lgr.Setup(lgr.Debug, lgr.CallerFile, lgr.CallerFunc, lgr.Msec, lgr.LevelBraces)
		return
	}
	lgr.Setup(lgr.Msec, lgr.LevelBraces)
}
