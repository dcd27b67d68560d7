// Package config loads harness configuration: the target application's DOM
// contract (selectors), timeouts and settle delays, artifact locations and
// notification settings. Embedded defaults describe the reference storefront;
// an optional local config file overrides individual keys.
package config

import (
	"embed"
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/ini.v1"
)

//go:embed defaults/shopcheck.ini
var defaultsFS embed.FS

// Config holds all file-based harness configuration. Browser engine,
// headless mode and fixture limits come from flags/environment, not from
// here.
type Config struct {
	BaseURL     string
	LoginPath   string // URL path segment marking a successful registration redirect
	AccountPath string // authenticated landing page path

	ScreenshotDir string

	Timeouts  Timeouts
	Selectors Selectors
	Notify    Notify
}

// Timeouts holds the bounded waits and settle delays used by the runners.
type Timeouts struct {
	Find               time.Duration // wait for element presence
	Enabled            time.Duration // wait for element to become enabled
	PageLoad           time.Duration
	Implicit           time.Duration // driver-level implicit wait
	ErrorSettle        time.Duration // delay before scanning for error messages
	RegistrationSettle time.Duration // post-submit settle for registration
	LoginSettle        time.Duration // post-submit settle for login
}

// Selectors is the fixed integration contract with the system under test.
type Selectors struct {
	SignInLink   string
	RegisterLink string

	FirstName string
	LastName  string
	DOB       string
	Street    string
	PostCode  string
	City      string
	State     string
	Country   string
	Phone     string
	Email     string
	Password  string

	RegisterSubmit string

	LoginEmail            string
	LoginPassword         string
	LoginSubmitCandidates []string

	ErrorIndicators []string
	AuthMarkers     []string
	UserMenu        string
	SignOutLink     string
}

// Notify holds notification channel settings for the suite summary.
type Notify struct {
	Channels     []string
	WebhookURLs  []string
	SlackToken   string
	SlackChannel string
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	EmailFrom    string
	EmailTo      []string
	TimeoutMs    int
}

// Load reads the embedded defaults and, when localPath is non-empty, merges
// the local config file over them key by key.
func Load(localPath string) (*Config, error) {
	defaults, err := defaultsFS.ReadFile("defaults/shopcheck.ini")
	if err != nil {
		return nil, fmt.Errorf("read embedded defaults: %w", err)
	}

	sources := []any{defaults}
	if localPath != "" {
		if _, statErr := os.Stat(localPath); statErr != nil {
			return nil, fmt.Errorf("config file not found: %s", localPath)
		}
		sources = append(sources, localPath)
	}

	// later sources override earlier keys
	f, err := ini.LoadSources(ini.LoadOptions{IgnoreInlineComment: true}, sources[0], sources[1:]...)
	if err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg := &Config{}
	target := f.Section("target")
	cfg.BaseURL = strings.TrimRight(target.Key("base_url").String(), "/")
	cfg.LoginPath = target.Key("login_path").String()
	cfg.AccountPath = target.Key("account_path").String()

	t := f.Section("timeouts")
	cfg.Timeouts = Timeouts{
		Find:               msKey(t, "find_ms"),
		Enabled:            msKey(t, "enabled_ms"),
		PageLoad:           msKey(t, "page_load_ms"),
		Implicit:           msKey(t, "implicit_ms"),
		ErrorSettle:        msKey(t, "error_settle_ms"),
		RegistrationSettle: msKey(t, "registration_settle_ms"),
		LoginSettle:        msKey(t, "login_settle_ms"),
	}

	s := f.Section("selectors")
	cfg.Selectors = Selectors{
		SignInLink:            s.Key("sign_in_link").String(),
		RegisterLink:          s.Key("register_link").String(),
		FirstName:             s.Key("first_name").String(),
		LastName:              s.Key("last_name").String(),
		DOB:                   s.Key("dob").String(),
		Street:                s.Key("street").String(),
		PostCode:              s.Key("postcode").String(),
		City:                  s.Key("city").String(),
		State:                 s.Key("state").String(),
		Country:               s.Key("country").String(),
		Phone:                 s.Key("phone").String(),
		Email:                 s.Key("email").String(),
		Password:              s.Key("password").String(),
		RegisterSubmit:        s.Key("register_submit").String(),
		LoginEmail:            s.Key("login_email").String(),
		LoginPassword:         s.Key("login_password").String(),
		LoginSubmitCandidates: csvKey(s, "login_submit_candidates"),
		ErrorIndicators:       csvKey(s, "error_indicators"),
		AuthMarkers:           csvKey(s, "auth_markers"),
		UserMenu:              s.Key("user_menu").String(),
		SignOutLink:           s.Key("sign_out_link").String(),
	}

	a := f.Section("artifacts")
	cfg.ScreenshotDir = a.Key("screenshot_dir").String()

	n := f.Section("notify")
	cfg.Notify = Notify{
		Channels:     csvKey(n, "channels"),
		WebhookURLs:  csvKey(n, "webhook_urls"),
		SlackToken:   n.Key("slack_token").String(),
		SlackChannel: n.Key("slack_channel").String(),
		SMTPHost:     n.Key("smtp_host").String(),
		SMTPPort:     n.Key("smtp_port").MustInt(587),
		SMTPUsername: n.Key("smtp_username").String(),
		SMTPPassword: n.Key("smtp_password").String(),
		EmailFrom:    n.Key("email_from").String(),
		EmailTo:      csvKey(n, "email_to"),
		TimeoutMs:    n.Key("timeout_ms").MustInt(10000),
	}

	return cfg, nil
}

// AccountURL returns the full authenticated landing URL.
func (c *Config) AccountURL() string { return c.BaseURL + c.AccountPath }

// msKey reads a millisecond key as a duration; negative values are clamped
// to zero.
func msKey(s *ini.Section, name string) time.Duration {
	ms := s.Key(name).MustInt(0)
	if ms < 0 {
		ms = 0
	}
	return time.Duration(ms) * time.Millisecond
}

// csvKey reads a comma-separated key into a trimmed, empty-filtered list.
func csvKey(s *ini.Section, name string) []string {
	raw := strings.TrimSpace(s.Key(name).String())
	if raw == "" {
		return nil
	}
	var out []string
	for part := range strings.SplitSeq(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
