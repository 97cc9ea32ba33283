package repository

import (
	"context"

	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// El stock solo se escribe con UpdateStock, llamado por el ledger.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	UpdateStock(ctx context.Context, id string, quantity int) error
	List(ctx context.Context, f ProductFilter, p Page) ([]*entity.Product, int, error)
	// ReservedQuantity unidades en órdenes pending/processing.
	ReservedQuantity(ctx context.Context, id string) (int, error)
}
