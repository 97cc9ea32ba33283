package repository

import (
	"context"

	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// OrderRepository define el puerto de persistencia para Order y sus líneas.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	AddItem(ctx context.Context, item *entity.OrderItem) error
	GetByID(ctx context.Context, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Order, error)
	ListItems(ctx context.Context, orderID string) ([]entity.OrderItem, error)
	UpdateStatus(ctx context.Context, id, status, cancellationReason string) error
	List(ctx context.Context, f OrderFilter, p Page) ([]*entity.Order, int, error)
}
