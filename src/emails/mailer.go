// Package emails sends transactional mail over SMTP.
package emails

import (
	"github.com/rs/zerolog"
	"gopkg.in/gomail.v2"
)

// Sender is the narrow mailing interface controllers depend on. Nil-able in
// tests; all sends are best-effort.
type Sender interface {
	SendHTML(to, subject, htmlBody string) error
}

// Mailer sends mail through a gomail dialer.
type Mailer struct {
	dialer *gomail.Dialer
	from   string
	logger zerolog.Logger
}

// NewMailer creates a Mailer for the given SMTP settings.
func NewMailer(host string, port int, username, password, from string, logger zerolog.Logger) *Mailer {
	return &Mailer{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
		logger: logger,
	}
}

// SendHTML sends a single HTML email.
func (m *Mailer) SendHTML(to, subject, htmlBody string) error {
	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", htmlBody)

	if err := m.dialer.DialAndSend(msg); err != nil {
		m.logger.Error().Err(err).Str("to", to).Str("subject", subject).Msg("failed to send email")
		return err
	}

	m.logger.Info().Str("to", to).Str("subject", subject).Msg("email sent")
	return nil
}
