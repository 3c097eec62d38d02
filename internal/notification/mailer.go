package notification

import (
	"context"
	"fmt"
	"log"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// Mailer sends invitation emails.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SendGridMailer implements Mailer on the SendGrid API.
type SendGridMailer struct {
	apiKey string
	from   string
}

// NewSendGridMailer builds a mailer with the given API key and sender
// address.  An empty key yields a mailer that reports ErrNotConfigured
// on every send.
func NewSendGridMailer(apiKey, from string) *SendGridMailer {
	return &SendGridMailer{apiKey: apiKey, from: from}
}

// Send delivers one plain-text invitation email.  A non-2xx provider
// response is wrapped in ErrProvider.
func (m *SendGridMailer) Send(ctx context.Context, to, subject, body string) error {
	if m.apiKey == "" || m.from == "" {
		return ErrNotConfigured
	}
	if to == "" {
		return fmt.Errorf("%w: guest has no email address", ErrProvider)
	}

	from := mail.NewEmail("", m.from)
	recipient := mail.NewEmail("", to)
	html := fmt.Sprintf("<pre>%s</pre>", body)
	message := mail.NewSingleEmail(from, subject, recipient, body, html)

	resp, err := sendgrid.NewSendClient(m.apiKey).SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("%w: sendgrid: %v", ErrProvider, err)
	}
	if resp.StatusCode >= 400 {
		log.Printf("sendgrid: send failed status=%d body=%s", resp.StatusCode, resp.Body)
		return fmt.Errorf("%w: sendgrid status %d", ErrProvider, resp.StatusCode)
	}
	return nil
}
