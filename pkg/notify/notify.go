// Package notify sends suite-summary notifications through configured
// channels (webhook, slack, email). Sending is best-effort: failures are
// logged, never returned to the suite.
package notify

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/go-pkgz/lgr"
	ntfy "github.com/go-pkgz/notify"

	"github.com/shopcheck/shopcheck/pkg/config"
)

// Result holds one suite's completion data for notifications.
type Result struct {
	Suite     string
	Status    string // "success" or "failure"
	Total     int
	Passed    int
	Failed    int
	Skipped   int
	FailedIDs []string
	Duration  string
	Error     string
}

// Service orchestrates sending notifications through configured channels.
type Service struct {
	channels []channel
	timeout  time.Duration
	hostname string
}

// channel pairs a notifier with its destination URI.
type channel struct {
	notifier ntfy.Notifier
	dest     string
}

// New creates a notification Service from config. Returns nil, nil when no
// channels are configured; Send is nil-safe so callers skip nil checks.
func New(p config.Notify) (*Service, error) {
	if len(p.Channels) == 0 {
		return nil, nil //nolint:nilnil // nil,nil signals "no channels configured" — Send is nil-safe
	}

	hostname, err := os.Hostname()
	if err != nil {
		hostname = "unknown"
	}

	svc := &Service{hostname: hostname, timeout: time.Duration(p.TimeoutMs) * time.Millisecond}
	if svc.timeout <= 0 {
		svc.timeout = 10 * time.Second
	}

	for _, ch := range p.Channels {
		switch strings.TrimSpace(strings.ToLower(ch)) {
		case "webhook":
			chs, chErr := makeWebhookChannels(p)
			if chErr != nil {
				return nil, fmt.Errorf("webhook channel: %w", chErr)
			}
			svc.channels = append(svc.channels, chs...)
		case "slack":
			c, chErr := makeSlackChannel(p)
			if chErr != nil {
				return nil, fmt.Errorf("slack channel: %w", chErr)
			}
			svc.channels = append(svc.channels, c)
		case "email":
			c, chErr := makeEmailChannel(p)
			if chErr != nil {
				return nil, fmt.Errorf("email channel: %w", chErr)
			}
			svc.channels = append(svc.channels, c)
		default:
			return nil, fmt.Errorf("unknown notification channel: %q", ch)
		}
	}

	return svc, nil
}

// Send delivers one suite summary to all configured channels. Nil-safe on
// the receiver; errors are logged and never returned.
func (s *Service) Send(ctx context.Context, r Result) {
	if s == nil {
		return
	}

	msg := s.formatMessage(r)

	sendCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	for _, ch := range s.channels {
		if err := ch.notifier.Send(sendCtx, ch.dest, msg); err != nil {
			lgr.Printf("[WARN] notification failed for %s: %v", ch.notifier, err)
		}
	}
}

func (s *Service) formatMessage(r Result) string {
	var b strings.Builder

	if r.Status == "success" {
		fmt.Fprintf(&b, "shopcheck %s suite passed on %s\n", r.Suite, s.hostname)
	} else {
		fmt.Fprintf(&b, "shopcheck %s suite FAILED on %s\n", r.Suite, s.hostname)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "cases:    %d (passed %d, failed %d, skipped %d)\n", r.Total, r.Passed, r.Failed, r.Skipped)
	if r.Duration != "" {
		fmt.Fprintf(&b, "duration: %s\n", r.Duration)
	}
	if len(r.FailedIDs) > 0 {
		fmt.Fprintf(&b, "failed:   %s\n", strings.Join(r.FailedIDs, ", "))
	}
	if r.Error != "" {
		fmt.Fprintf(&b, "error:    %s\n", r.Error)
	}
	return b.String()
}

func makeWebhookChannels(p config.Notify) ([]channel, error) {
	if len(p.WebhookURLs) == 0 {
		return nil, errors.New("webhook_urls is required")
	}

	wh := ntfy.NewWebhook(ntfy.WebhookParams{})
	var channels []channel
	for _, u := range p.WebhookURLs {
		channels = append(channels, channel{notifier: wh, dest: u})
	}
	return channels, nil
}

func makeSlackChannel(p config.Notify) (channel, error) {
	if p.SlackToken == "" {
		return channel{}, errors.New("slack_token is required")
	}
	if p.SlackChannel == "" {
		return channel{}, errors.New("slack_channel is required")
	}

	sl := ntfy.NewSlack(p.SlackToken)
	return channel{notifier: sl, dest: "slack:" + p.SlackChannel}, nil
}

func makeEmailChannel(p config.Notify) (channel, error) {
	if p.SMTPHost == "" {
		return channel{}, errors.New("smtp_host is required")
	}
	if p.EmailFrom == "" {
		return channel{}, errors.New("email_from is required")
	}
	if len(p.EmailTo) == 0 {
		return channel{}, errors.New("email_to is required")
	}

	em := ntfy.NewEmail(ntfy.SMTPParams{
		Host:     p.SMTPHost,
		Port:     p.SMTPPort,
		Username: p.SMTPUsername,
		Password: p.SMTPPassword,
		StartTLS: true,
	})

	to := strings.Join(p.EmailTo, ",")
	dest := fmt.Sprintf("mailto:%s?from=%s&subject=%s",
		to, url.QueryEscape(p.EmailFrom), url.QueryEscape("shopcheck suite summary"))
	return channel{notifier: em, dest: dest}, nil
}
