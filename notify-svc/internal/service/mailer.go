package service

import (
	"context"
	"fmt"
	"strings"

	"flavor-heaven/notify-svc/internal/domain"

	"github.com/rs/zerolog/log"
	"github.com/wneessen/go-mail"
)

// sender is the part of *mail.Client the mailer uses.
type sender interface {
	DialAndSendWithContext(ctx context.Context, messages ...*mail.Msg) error
}

// SMTPMailer delivers HTML mail through an authenticated SMTP relay.
type SMTPMailer struct {
	From   string
	client sender
}

func NewSMTPMailer(host string, port int, user, password string) (*SMTPMailer, error) {
	client, err := mail.NewClient(host,
		mail.WithPort(port),
		mail.WithTLSPolicy(mail.TLSOpportunistic),
		mail.WithSMTPAuth(mail.SMTPAuthPlain),
		mail.WithUsername(user),
		mail.WithPassword(password),
	)
	if err != nil {
		return nil, fmt.Errorf("create smtp client: %w", err)
	}
	return &SMTPMailer{From: user, client: client}, nil
}

func (m *SMTPMailer) Send(ctx context.Context, email domain.Email) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg, err := m.message(email)
	if err != nil {
		return err
	}
	if err := m.client.DialAndSendWithContext(ctx, msg); err != nil {
		return fmt.Errorf("send mail to %s: %w", email.To, err)
	}
	log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("email sent")
	return nil
}

func (m *SMTPMailer) message(email domain.Email) (*mail.Msg, error) {
	msg := mail.NewMsg()
	if err := msg.From(m.From); err != nil {
		return nil, fmt.Errorf("invalid sender %q: %w", m.From, err)
	}
	if err := msg.To(email.To); err != nil {
		return nil, fmt.Errorf("invalid recipient %q: %w", email.To, err)
	}
	msg.Subject(headerSafe(email.Subject))
	msg.SetBodyString(mail.TypeTextHTML, email.HTML)
	return msg, nil
}

// headerSafe folds CR and LF into spaces so user input cannot start a new header.
func headerSafe(s string) string {
	return strings.NewReplacer("\r\n", " ", "\r", " ", "\n", " ").Replace(s)
}

// LogMailer stands in when email credentials are missing.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, email domain.Email) error {
	log.Info().Str("to", email.To).Str("subject", email.Subject).Msg("email not configured, skipping send")
	return nil
}
