package mail

import (
	"context"
	"fmt"

	"quote-workflow/internal/usecase/notification"

	"github.com/resend/resend-go/v2"
)

// Resend delivers through the Resend transactional email API.
type Resend struct {
	client *resend.Client
}

var _ notification.Provider = (*Resend)(nil)

func NewResend(apiKey string) *Resend {
	return &Resend{client: resend.NewClient(apiKey)}
}

func (r *Resend) Send(ctx context.Context, e notification.Email) error {
	_, err := r.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    formatAddress(e.FromName, e.From),
		To:      e.To,
		Subject: e.Subject,
		Html:    e.HTML,
	})
	if err != nil {
		return fmt.Errorf("resend: %w", err)
	}
	return nil
}

func formatAddress(name, addr string) string {
	if name == "" {
		return addr
	}
	return fmt.Sprintf("%s <%s>", name, addr)
}
