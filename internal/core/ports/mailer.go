package ports

import "context"

// MailKind selects the template used for an outbound message.
type MailKind string

const (
	MailVerificationLink MailKind = "verification-link"
	MailResetLink        MailKind = "reset-link"
	MailLoginNotice      MailKind = "login-notice"
)

// MailData carries the template context for a single message.
type MailData struct {
	Username string
	Link     string
}

// Mailer is the outbound mail collaborator. Delivery failures are returned
// to the caller, never swallowed or retried internally.
type Mailer interface {
	Send(ctx context.Context, to string, kind MailKind, data MailData) error
}
