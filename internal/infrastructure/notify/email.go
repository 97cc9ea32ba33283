// Package notify adaptadores de ports.Notifier: email real vía SMTP y un notificador que
// solo registra el envío para los canales sin proveedor (llamadas, SMS, redes sociales).
package notify

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"

	"github.com/google/uuid"
	"github.com/jordan-wright/email"

	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/pkg/config"
	"github.com/jhoicas/engage-api/pkg/logger"
)

var _ ports.Notifier = (*EmailNotifier)(nil)

const statusSent = "sent"

type sendFunc func(e *email.Email, addr string, auth smtp.Auth) error

// EmailNotifier envía correos de texto plano por SMTP.
type EmailNotifier struct {
	from string
	host string
	addr string
	auth smtp.Auth
	send sendFunc
	log  *logger.Logger
}

// NewEmailNotifier sin usuario SMTP se envía sin autenticación (relay interno).
func NewEmailNotifier(cfg config.SMTPConfig, log *logger.Logger) *EmailNotifier {
	n := &EmailNotifier{
		from: cfg.From,
		host: cfg.Host,
		addr: fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		send: func(e *email.Email, addr string, auth smtp.Auth) error { return e.Send(addr, auth) },
		log:  log.Component("notify.email"),
	}
	if n.from == "" {
		n.from = cfg.Username
	}
	if cfg.Username != "" {
		n.auth = smtp.PlainAuth("", cfg.Username, cfg.Password, cfg.Host)
	}
	return n
}

func (n *EmailNotifier) Send(ctx context.Context, in ports.Notification) (*ports.Delivery, error) {
	to := strings.TrimSpace(in.Recipient)
	if to == "" {
		return nil, fmt.Errorf("notify: email sin destinatario")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	id := uuid.New().String()
	e := email.NewEmail()
	e.From = n.from
	e.To = []string{to}
	e.Subject = in.Subject
	e.Text = []byte(in.Body)
	e.Headers.Set("X-Engage-Message-Id", id)

	if err := n.send(e, n.addr, n.auth); err != nil {
		return nil, fmt.Errorf("notify: smtp: %w", err)
	}
	n.log.Info().Str("provider_id", id).Str("to", to).Msg("email enviado")
	return &ports.Delivery{ProviderID: id, Status: statusSent}, nil
}
