package notify

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/pkg/logger"
)

var _ ports.Notifier = (*LogNotifier)(nil)

// LogNotifier acepta el envío y lo deja en el log estructurado con un id de proveedor
// sintético. Se usa para los canales que no tienen integración real.
type LogNotifier struct {
	status string
	log    *logger.Logger
}

// NewLogNotifier status es el estado que reporta el "proveedor" (p. ej. "queued").
func NewLogNotifier(channel, status string, log *logger.Logger) *LogNotifier {
	return &LogNotifier{status: status, log: log.Component("notify." + channel)}
}

func (n *LogNotifier) Send(ctx context.Context, in ports.Notification) (*ports.Delivery, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := uuid.New().String()
	n.log.Info().
		Str("provider_id", id).
		Str("channel", in.Channel).
		Str("recipient", in.Recipient).
		Int("body_len", len(in.Body)).
		Msg("envío registrado")
	return &ports.Delivery{ProviderID: id, Status: n.status}, nil
}
