package repository

import (
	"context"

	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para movimientos (append-only).
type InventoryMovementRepository interface {
	Create(ctx context.Context, movement *entity.InventoryMovement) error
	ListByProduct(ctx context.Context, productID string, p Page) ([]*entity.InventoryMovement, int, error)
}
