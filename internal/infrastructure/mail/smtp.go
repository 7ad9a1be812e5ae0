package mail

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	gomail "gopkg.in/gomail.v2"

	"github.com/shoplane/commerce-api/internal/api/metrics"
	"github.com/shoplane/commerce-api/internal/core/ports"
)

// Config holds SMTP delivery settings.
type Config struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
}

// SMTPMailer delivers account mail over SMTP using gomail.
type SMTPMailer struct {
	dialer *gomail.Dialer
	from   string
	log    zerolog.Logger
}

func NewSMTPMailer(cfg Config, log zerolog.Logger) *SMTPMailer {
	return &SMTPMailer{
		dialer: gomail.NewDialer(cfg.Host, cfg.Port, cfg.Username, cfg.Password),
		from:   cfg.From,
		log:    log,
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to string, kind ports.MailKind, data ports.MailData) error {
	subject, body, err := renderMail(kind, data)
	if err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	done := make(chan error, 1)
	go func() { done <- m.dialer.DialAndSend(msg) }()

	select {
	case <-ctx.Done():
		metrics.MailsSentTotal.WithLabelValues(string(kind), "error").Inc()
		return ctx.Err()
	case err := <-done:
		if err != nil {
			metrics.MailsSentTotal.WithLabelValues(string(kind), "error").Inc()
			return fmt.Errorf("smtp send: %w", err)
		}
	}

	metrics.MailsSentTotal.WithLabelValues(string(kind), "ok").Inc()
	m.log.Info().Str("to", to).Str("kind", string(kind)).Msg("mail sent")
	return nil
}

// renderMail produces the subject and HTML body for a mail kind. The body
// embeds the action link for link-bearing kinds.
func renderMail(kind ports.MailKind, data ports.MailData) (subject, body string, err error) {
	switch kind {
	case ports.MailVerificationLink:
		subject = "Verify your email"
		body = fmt.Sprintf(
			`<p>Hi %s,</p><p>Welcome aboard. Please confirm your email address by clicking the link below.</p><p><a href=%q>Verify email</a></p>`,
			data.Username, data.Link)
	case ports.MailResetLink:
		subject = "Reset your password"
		body = fmt.Sprintf(
			`<p>Hi %s,</p><p>We received a request to reset your password. The link below takes you to the reset page.</p><p><a href=%q>Reset password</a></p><p>If you did not request this, you can ignore this message.</p>`,
			data.Username, data.Link)
	case ports.MailLoginNotice:
		subject = "New login to your account"
		body = fmt.Sprintf(
			`<p>Hi %s,</p><p>Your account was just signed in to. If this was you, no action is needed.</p>`,
			data.Username)
	default:
		return "", "", fmt.Errorf("unknown mail kind %q", kind)
	}
	return subject, body, nil
}
