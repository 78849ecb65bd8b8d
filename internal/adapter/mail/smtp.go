package mail

import (
	"context"
	"fmt"

	"quote-workflow/internal/usecase/notification"

	gomail "github.com/wneessen/go-mail"
)

type SMTPConfig struct {
	Host     string
	Port     int
	Username string
	Password string
}

// SMTP delivers through a plain SMTP relay, upgrading to TLS when offered.
type SMTP struct {
	cfg SMTPConfig
}

var _ notification.Provider = (*SMTP)(nil)

func NewSMTP(cfg SMTPConfig) *SMTP {
	if cfg.Port == 0 {
		cfg.Port = 587
	}
	return &SMTP{cfg: cfg}
}

func (s *SMTP) Send(ctx context.Context, e notification.Email) error {
	m, err := buildMessage(e)
	if err != nil {
		return err
	}

	opts := []gomail.Option{
		gomail.WithPort(s.cfg.Port),
		gomail.WithTLSPolicy(gomail.TLSOpportunistic),
	}
	if s.cfg.Username != "" {
		opts = append(opts,
			gomail.WithSMTPAuth(gomail.SMTPAuthPlain),
			gomail.WithUsername(s.cfg.Username),
			gomail.WithPassword(s.cfg.Password),
		)
	}
	c, err := gomail.NewClient(s.cfg.Host, opts...)
	if err != nil {
		return fmt.Errorf("smtp: client: %w", err)
	}
	if err := c.DialAndSendWithContext(ctx, m); err != nil {
		return fmt.Errorf("smtp: send: %w", err)
	}
	return nil
}

func buildMessage(e notification.Email) (*gomail.Msg, error) {
	m := gomail.NewMsg()
	var err error
	if e.FromName != "" {
		err = m.FromFormat(e.FromName, e.From)
	} else {
		err = m.From(e.From)
	}
	if err != nil {
		return nil, fmt.Errorf("smtp: from: %w", err)
	}
	if err := m.To(e.To...); err != nil {
		return nil, fmt.Errorf("smtp: to: %w", err)
	}
	m.Subject(e.Subject)
	m.SetBodyString(gomail.TypeTextHTML, e.HTML)
	return m, nil
}
