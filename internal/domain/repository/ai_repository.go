package repository

import (
	"context"

	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// AIAgentRepository define el puerto de persistencia para agentes.
type AIAgentRepository interface {
	Create(ctx context.Context, a *entity.AIAgent) error
	GetByID(ctx context.Context, id string) (*entity.AIAgent, error)
	Update(ctx context.Context, a *entity.AIAgent) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, p Page) ([]*entity.AIAgent, int, error)
}

// AIInteractionRepository historial de interacciones (append-only).
type AIInteractionRepository interface {
	Create(ctx context.Context, i *entity.AIInteraction) error
	ListByUser(ctx context.Context, userID string, p Page) ([]*entity.AIInteraction, int, error)
}
