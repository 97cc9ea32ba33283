package repository

import (
	"context"

	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// MessageRepository log de comunicaciones multicanal.
type MessageRepository interface {
	Create(ctx context.Context, m *entity.Message) error
	GetByID(ctx context.Context, id string) (*entity.Message, error)
	List(ctx context.Context, f MessageFilter, p Page) ([]*entity.Message, int, error)
}
