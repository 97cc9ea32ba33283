package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// CustomerSummary cliente con totales de compra (búsqueda).
type CustomerSummary struct {
	User        entity.User
	TotalOrders int
	TotalSpent  decimal.Decimal
}

// UserRepository define el puerto de persistencia para User (DIP).
// GetByID/GetByEmail devuelven (nil, nil) si no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	SearchCustomers(ctx context.Context, f CustomerFilter, p Page) ([]*CustomerSummary, int, error)
}
