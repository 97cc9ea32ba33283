package notify

import (
	"context"
	"errors"
	"net/smtp"
	"testing"

	"github.com/jordan-wright/email"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/pkg/config"
	"github.com/jhoicas/engage-api/pkg/logger"
)

func TestEmailNotifier_Send(t *testing.T) {
	n := NewEmailNotifier(config.SMTPConfig{Host: "smtp.local", Port: 2525, Username: "bot@engage.test", Password: "x"}, logger.Nop())
	var (
		sent *email.Email
		addr string
	)
	n.send = func(e *email.Email, a string, auth smtp.Auth) error {
		sent, addr = e, a
		assert.NotNil(t, auth)
		return nil
	}

	d, err := n.Send(context.Background(), ports.Notification{
		Channel:   "email",
		Recipient: " ana@example.com ",
		Subject:   "Pedido listo",
		Body:      "Tu pedido está listo",
	})
	require.NoError(t, err)
	assert.Equal(t, statusSent, d.Status)
	assert.NotEmpty(t, d.ProviderID)

	require.NotNil(t, sent)
	assert.Equal(t, "smtp.local:2525", addr)
	assert.Equal(t, "bot@engage.test", sent.From)
	assert.Equal(t, []string{"ana@example.com"}, sent.To)
	assert.Equal(t, "Pedido listo", sent.Subject)
	assert.Equal(t, d.ProviderID, sent.Headers.Get("X-Engage-Message-Id"))
}

func TestEmailNotifier_Errores(t *testing.T) {
	n := NewEmailNotifier(config.SMTPConfig{Host: "smtp.local", Port: 25, From: "noreply@engage.test"}, logger.Nop())
	n.send = func(*email.Email, string, smtp.Auth) error { return errors.New("550 rejected") }

	_, err := n.Send(context.Background(), ports.Notification{Recipient: ""})
	assert.Error(t, err)

	_, err = n.Send(context.Background(), ports.Notification{Recipient: "a@b.co"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "550")
}

func TestLogNotifier_Send(t *testing.T) {
	n := NewLogNotifier("sms", "queued", logger.Nop())
	d, err := n.Send(context.Background(), ports.Notification{Channel: "sms", Recipient: "+573001112233", Body: "hola"})
	require.NoError(t, err)
	assert.Equal(t, "queued", d.Status)
	assert.NotEmpty(t, d.ProviderID)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = n.Send(ctx, ports.Notification{Channel: "sms"})
	assert.ErrorIs(t, err, context.Canceled)
}
