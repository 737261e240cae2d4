package users

import (
	"context"
	"fmt"
	"net/smtp"
	"net/url"

	"github.com/rs/zerolog"

	"github.com/MessiahAndrw/Collaborate/internal/pkg/logx"
)

// Mailer delivers verification email. The users service does not care how.
type Mailer interface {
	// SendVerification sends the verification link for username's account
	// to the given address. siteAddress is the externally reachable base URL.
	SendVerification(ctx context.Context, to, username, token, siteAddress string) error
}

// verificationLink builds the URL a user clicks to verify their address.
func verificationLink(siteAddress, username, token string) string {
	return fmt.Sprintf("%s/verify?username=%s&token=%s",
		siteAddress, url.QueryEscape(username), url.QueryEscape(token))
}

// SMTPMailer sends mail through a plain SMTP relay.
type SMTPMailer struct {
	// Addr is the relay in host:port form.
	Addr string

	// From is the sender address.
	From string

	// Auth is optional; nil sends without authentication.
	Auth smtp.Auth
}

// SendVerification composes and sends the verification email.
// Delivery is blocking; callers decide whether to run it in the background.
func (m *SMTPMailer) SendVerification(ctx context.Context, to, username, token, siteAddress string) error {
	link := verificationLink(siteAddress, username, token)

	msg := fmt.Sprintf("From: %s\r\nTo: %s\r\nSubject: Verify your email address\r\n\r\n"+
		"Hello %s,\r\n\r\n"+
		"Visit the link below to verify your email address:\r\n\r\n%s\r\n",
		m.From, to, username, link)

	if err := smtp.SendMail(m.Addr, m.Auth, m.From, []string{to}, []byte(msg)); err != nil {
		return fmt.Errorf("failed to send verification mail to %q: %w", to, err)
	}

	return nil
}

// LogMailer writes outgoing mail to the log instead of sending it. Used in
// development when no SMTP relay is configured.
type LogMailer struct {
	logger zerolog.Logger
}

// NewLogMailer returns a Mailer that only logs.
func NewLogMailer() *LogMailer {
	return &LogMailer{
		logger: logx.Logger().With().Str("component", "mailer").Logger(),
	}
}

// SendVerification logs the verification link.
func (m *LogMailer) SendVerification(ctx context.Context, to, username, token, siteAddress string) error {
	m.logger.Info().
		Str("to", to).
		Str("username", username).
		Str("link", verificationLink(siteAddress, username, token)).
		Msg("Verification email (log only, no SMTP relay configured).")
	return nil
}
