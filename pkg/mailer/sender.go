package mailer

import "context"

// Sender delivers a fully prepared Email.
// Implementations live in subpackages (smtp, resend).
type Sender interface {
	// Send delivers one message. The Email has recipients, a subject and
	// at least one of HTML or Text set.
	Send(ctx context.Context, email *Email) error
}

// SenderFunc adapts a function to Sender.
type SenderFunc func(ctx context.Context, email *Email) error

// Send calls f.
func (f SenderFunc) Send(ctx context.Context, email *Email) error {
	return f(ctx, email)
}
