package service

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"flavor-heaven/notify-svc/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wneessen/go-mail"
)

type captureSender struct {
	sent []*mail.Msg
	err  error
}

func (c *captureSender) DialAndSendWithContext(_ context.Context, messages ...*mail.Msg) error {
	c.sent = append(c.sent, messages...)
	return c.err
}

func written(t *testing.T, msg *mail.Msg) string {
	t.Helper()
	var buf bytes.Buffer
	_, err := msg.WriteTo(&buf)
	require.NoError(t, err)
	return buf.String()
}

func TestNewSMTPMailer(t *testing.T) {
	mailer, err := NewSMTPMailer("smtp.example.com", 587, "bot@example.com", "secret")

	require.NoError(t, err)
	assert.Equal(t, "bot@example.com", mailer.From)
	assert.NotNil(t, mailer.client)
}

func TestSMTPMailerSend(t *testing.T) {
	capture := &captureSender{}
	mailer := &SMTPMailer{From: "bot@example.com", client: capture}

	err := mailer.Send(context.Background(), domain.Email{To: "ada@example.com", Subject: "Hello", HTML: "<p>hi</p>"})
	require.NoError(t, err)

	require.Len(t, capture.sent, 1)
	raw := written(t, capture.sent[0])
	assert.Contains(t, raw, "From: <bot@example.com>")
	assert.Contains(t, raw, "To: <ada@example.com>")
	assert.Contains(t, raw, "Subject: Hello\r\n")
	assert.Contains(t, raw, "Content-Type: text/html")
	assert.Contains(t, raw, "<p>hi</p>")
}

func TestSMTPMailerKeepsSubjectOnOneLine(t *testing.T) {
	capture := &captureSender{}
	mailer := &SMTPMailer{From: "bot@example.com", client: capture}

	err := mailer.Send(context.Background(), domain.Email{
		To:      "kitchen@example.com",
		Subject: "New Order: FH-1 - Eve\r\nBcc: victim@example.com",
		HTML:    "<p>order</p>",
	})
	require.NoError(t, err)

	require.Len(t, capture.sent, 1)
	raw := written(t, capture.sent[0])
	assert.NotContains(t, raw, "\r\nBcc:")
	assert.NotContains(t, raw, "\nBcc:")
	assert.Equal(t, []string{"New Order: FH-1 - Eve Bcc: victim@example.com"}, capture.sent[0].GetGenHeader(mail.HeaderSubject))
}

func TestSMTPMailerErrors(t *testing.T) {
	capture := &captureSender{err: errors.New("535 auth failed")}
	mailer := &SMTPMailer{From: "bot@example.com", client: capture}

	err := mailer.Send(context.Background(), domain.Email{To: "ada@example.com"})
	assert.ErrorContains(t, err, "535 auth failed")

	err = mailer.Send(context.Background(), domain.Email{To: "ada@example.com\r\nBcc: victim@example.com"})
	assert.ErrorContains(t, err, "invalid recipient")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, mailer.Send(ctx, domain.Email{To: "ada@example.com"}), context.Canceled)
	assert.Len(t, capture.sent, 1)
}

func TestHeaderSafe(t *testing.T) {
	assert.Equal(t, "a b c d", headerSafe("a\r\nb\rc\nd"))
	assert.Equal(t, "plain", headerSafe("plain"))
}

func TestLogMailerNeverFails(t *testing.T) {
	assert.NoError(t, LogMailer{}.Send(context.Background(), domain.Email{To: "ada@example.com"}))
}
