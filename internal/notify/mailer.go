package notify

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

type Email struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

// Mailer failures are always best-effort for callers: log and continue,
// never fail the surrounding operation.
type Mailer interface {
	Send(ctx context.Context, msg Email) error
}

type SendGridMailer struct {
	client *sendgrid.Client
	from   string
}

func NewSendGrid(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{
		client: sendgrid.NewSendClient(apiKey),
		from:   from,
	}
}

func (m *SendGridMailer) Send(ctx context.Context, msg Email) error {
	message := mail.NewSingleEmail(
		mail.NewEmail("ChicFit", m.from),
		msg.Subject,
		mail.NewEmail("", msg.To),
		msg.Text,
		msg.HTML,
	)
	resp, err := m.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sendgrid: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid: status %d: %s", resp.StatusCode, resp.Body)
	}
	return nil
}
