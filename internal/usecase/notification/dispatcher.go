package notification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"quote-workflow/internal/domain/emailtemplate"
	"quote-workflow/internal/domain/setting"
	"quote-workflow/internal/infrastructure/metrics"

	"github.com/rs/zerolog"
)

const (
	ProviderResend = "resend"
	ProviderSMTP   = "smtp"
)

var (
	ErrTemplateMissing  = errors.New("email template not found")
	ErrTemplateDisabled = errors.New("email template disabled")
)

// Email is a fully rendered message handed to a Provider.
type Email struct {
	From     string
	FromName string
	To       []string
	Subject  string
	HTML     string
}

// Provider delivers rendered email. Implementations live in adapter/mail.
type Provider interface {
	Send(ctx context.Context, e Email) error
}

// Message is a send request. When TemplateType is set, Subject and HTML are
// rendered from the stored template and TemplateData.
type Message struct {
	To           []string
	Subject      string
	HTML         string
	TemplateType string
	TemplateData map[string]any
}

// Settings is the email_settings row.
type Settings struct {
	Provider    string `json:"provider"`
	FromAddress string `json:"fromAddress"`
	FromName    string `json:"fromName"`
	Enabled     *bool  `json:"enabled,omitempty"`
}

type Dispatcher struct {
	templates   emailtemplate.Repository
	settings    setting.Repository
	providers   map[string]Provider
	defaultFrom string
	metrics     *metrics.Metrics
	log         zerolog.Logger
}

// NewDispatcher takes only the providers whose credentials are configured;
// an absent provider means "not configured".
func NewDispatcher(
	templates emailtemplate.Repository,
	settings setting.Repository,
	providers map[string]Provider,
	defaultFrom string,
	m *metrics.Metrics,
	log zerolog.Logger,
) *Dispatcher {
	if providers == nil {
		providers = map[string]Provider{}
	}
	return &Dispatcher{
		templates:   templates,
		settings:    settings,
		providers:   providers,
		defaultFrom: defaultFrom,
		metrics:     m,
		log:         log,
	}
}

// Send renders and delivers msg. Only template resolution errors are
// returned; disabled or unconfigured delivery and provider failures are
// logged and reported as success.
func (d *Dispatcher) Send(ctx context.Context, msg Message) error {
	to := cleanRecipients(msg.To)
	if len(to) == 0 {
		d.log.Debug().Str("template", msg.TemplateType).Msg("notification: no recipients, skipping")
		return nil
	}

	subject, body := msg.Subject, msg.HTML
	if msg.TemplateType != "" {
		t, err := d.loadTemplate(ctx, msg.TemplateType)
		if err != nil {
			return err
		}
		subject = Render(t.SubjectTemplate, msg.TemplateData, false)
		body = Render(t.BodyTemplate, msg.TemplateData, true)
	}

	cfg := d.loadSettings(ctx)
	if cfg.Enabled != nil && !*cfg.Enabled {
		d.log.Info().Str("template", msg.TemplateType).Msg("notification: email disabled in settings, skipping")
		d.metrics.IncNotification(cfg.Provider, "disabled")
		return nil
	}

	from := cfg.FromAddress
	if from == "" {
		from = d.defaultFrom
	}
	if from == "" {
		d.log.Warn().Str("provider", cfg.Provider).Msg("notification: no sender address configured, skipping")
		d.metrics.IncNotification(cfg.Provider, "unconfigured")
		return nil
	}

	p, ok := d.providers[cfg.Provider]
	if !ok {
		d.log.Warn().Str("provider", cfg.Provider).Msg("notification: provider credentials missing, skipping")
		d.metrics.IncNotification(cfg.Provider, "unconfigured")
		return nil
	}

	err := p.Send(ctx, Email{From: from, FromName: cfg.FromName, To: to, Subject: subject, HTML: body})
	if err != nil {
		d.log.Warn().Err(err).
			Str("provider", cfg.Provider).
			Int("recipients", len(to)).
			Msg("notification: delivery failed")
		d.metrics.IncNotification(cfg.Provider, "failed")
		return nil
	}
	d.metrics.IncNotification(cfg.Provider, "sent")
	return nil
}

func (d *Dispatcher) loadTemplate(ctx context.Context, templateType string) (*emailtemplate.EmailTemplate, error) {
	stored, ok := emailtemplate.ResolveType(templateType)
	if !ok {
		return nil, fmt.Errorf("%w: unknown type %q", ErrTemplateMissing, templateType)
	}
	t, err := d.templates.GetByType(ctx, stored)
	if errors.Is(err, emailtemplate.ErrNotFound) {
		return nil, fmt.Errorf("%w: %s", ErrTemplateMissing, stored)
	}
	if err != nil {
		return nil, fmt.Errorf("load email template %s: %w", stored, err)
	}
	if !t.Enabled {
		return nil, fmt.Errorf("%w: %s", ErrTemplateDisabled, stored)
	}
	return t, nil
}

func (d *Dispatcher) loadSettings(ctx context.Context) Settings {
	cfg := Settings{Provider: ProviderResend}
	row, err := d.settings.Get(ctx, setting.KeyEmailSettings)
	if err != nil {
		if !errors.Is(err, setting.ErrNotFound) {
			d.log.Warn().Err(err).Msg("notification: could not read email settings, using defaults")
		}
		return cfg
	}
	if err := json.Unmarshal(row.Value, &cfg); err != nil {
		d.log.Warn().Err(err).Msg("notification: unreadable email settings, using defaults")
		return Settings{Provider: ProviderResend}
	}
	cfg.Provider = strings.ToLower(strings.TrimSpace(cfg.Provider))
	if cfg.Provider == "" {
		cfg.Provider = ProviderResend
	}
	return cfg
}

func cleanRecipients(in []string) []string {
	seen := map[string]bool{}
	out := make([]string, 0, len(in))
	for _, r := range in {
		r = strings.TrimSpace(r)
		if r == "" || seen[strings.ToLower(r)] {
			continue
		}
		seen[strings.ToLower(r)] = true
		out = append(out, r)
	}
	return out
}
