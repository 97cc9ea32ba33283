package repository

import (
	"context"

	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// TicketRepository define el puerto de persistencia para tickets y mensajes.
type TicketRepository interface {
	Create(ctx context.Context, t *entity.SupportTicket) error
	GetByID(ctx context.Context, id string) (*entity.SupportTicket, error)
	List(ctx context.Context, f TicketFilter, p Page) ([]*entity.SupportTicket, int, error)
	UpdateStatus(ctx context.Context, id, status string) error
	AddMessage(ctx context.Context, m *entity.SupportMessage) error
	// ListMessages en orden ascendente de creación.
	ListMessages(ctx context.Context, ticketID string) ([]entity.SupportMessage, error)
}

// FAQRepository define el puerto de persistencia para preguntas frecuentes.
type FAQRepository interface {
	Create(ctx context.Context, f *entity.FAQ) error
	GetByID(ctx context.Context, id string) (*entity.FAQ, error)
	Update(ctx context.Context, f *entity.FAQ) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, category string, p Page) ([]*entity.FAQ, int, error)
	Categories(ctx context.Context) ([]string, error)
}
