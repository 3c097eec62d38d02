package notification

import (
	"context"
	"fmt"

	"github.com/guonaihong/gout"
)

// SMSSender sends invitation text messages.
type SMSSender interface {
	Send(ctx context.Context, phone, message string) error
}

// HTTPSMSSender implements SMSSender against a generic JSON gateway:
// a POST with {"to": ..., "message": ...} and a bearer token, which is
// the contract most BR SMS brokers expose.
type HTTPSMSSender struct {
	endpoint string
	token    string
}

// NewHTTPSMSSender builds a sender for the given gateway endpoint.  An
// empty endpoint yields a sender that reports ErrNotConfigured.
func NewHTTPSMSSender(endpoint, token string) *HTTPSMSSender {
	return &HTTPSMSSender{endpoint: endpoint, token: token}
}

// Send posts one message to the gateway.  A non-2xx status is wrapped
// in ErrProvider.
func (s *HTTPSMSSender) Send(ctx context.Context, phone, message string) error {
	if s.endpoint == "" {
		return ErrNotConfigured
	}
	if phone == "" {
		return fmt.Errorf("%w: guest has no phone number", ErrProvider)
	}

	var status int
	err := gout.POST(s.endpoint).
		WithContext(ctx).
		SetHeader(gout.H{"Authorization": "Bearer " + s.token}).
		SetJSON(gout.H{"to": phone, "message": message}).
		Code(&status).
		Do()
	if err != nil {
		return fmt.Errorf("%w: sms gateway: %v", ErrProvider, err)
	}
	if status >= 400 {
		return fmt.Errorf("%w: sms gateway status %d", ErrProvider, status)
	}
	return nil
}
