// Package notification dispatches invitations to guests over email,
// SMS and WhatsApp deep links.  The package only knows the provider
// contracts; deciding who gets invited, and recording that it
// happened, stays in the handler layer.
package notification

import "errors"

// ErrProvider wraps failures reported by an external delivery
// provider.  The core surfaces it to the caller without retrying;
// retries belong to the transport layer.
var ErrProvider = errors.New("provider error")

// ErrNotConfigured is returned when a dispatch channel has no
// credentials configured, so the admin UI can tell "provider down"
// apart from "channel never set up".
var ErrNotConfigured = errors.New("channel not configured")
