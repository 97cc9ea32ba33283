package search

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/testutil/memstore"
)

func setup(t *testing.T) *UseCase {
	t.Helper()
	s := memstore.New()
	base := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	s.Products["p1"] = entity.Product{ID: "p1", Name: "Wireless Mouse", Price: decimal.NewFromInt(20), StockQuantity: 4, IsActive: true, CategoryID: "c1", CreatedAt: base}
	s.Products["p2"] = entity.Product{ID: "p2", Name: "Gaming Mouse", Price: decimal.NewFromInt(80), StockQuantity: 0, IsActive: true, CategoryID: "c1", CreatedAt: base.Add(time.Hour)}
	s.Products["p3"] = entity.Product{ID: "p3", Name: "Old Mouse", Price: decimal.NewFromInt(5), StockQuantity: 9, IsActive: false, CreatedAt: base}
	s.Categories["c1"] = entity.Category{ID: "c1", Name: "Peripherals"}

	s.Users["u1"] = entity.User{ID: "u1", Email: "ana@example.com", FirstName: "Ana", LastName: "Ruiz", Role: entity.RoleCustomer, IsActive: true, CreatedAt: base}
	s.Users["u2"] = entity.User{ID: "u2", Email: "luis@example.com", FirstName: "Luis", Role: entity.RoleCustomer, IsActive: true, CreatedAt: base.Add(time.Hour)}
	s.Users["s1"] = entity.User{ID: "s1", Email: "ana.staff@example.com", FirstName: "Ana", Role: entity.RoleSupport, IsActive: true, CreatedAt: base}

	s.Orders["o1"] = entity.Order{ID: "o1", OrderNumber: "ORD-20240301-AAAA0001", CustomerID: "u1", Status: entity.OrderStatusCompleted, TotalAmount: decimal.RequireFromString("100.50"), CreatedAt: base}
	s.Orders["o2"] = entity.Order{ID: "o2", OrderNumber: "ORD-20240310-BBBB0002", CustomerID: "u1", Status: entity.OrderStatusPending, TotalAmount: decimal.NewFromInt(40), CreatedAt: base.AddDate(0, 0, 9)}
	s.Orders["o3"] = entity.Order{ID: "o3", OrderNumber: "ORD-20240320-CCCC0003", CustomerID: "u2", Status: entity.OrderStatusCompleted, TotalAmount: decimal.NewFromInt(10), CreatedAt: base.AddDate(0, 0, 19)}

	return NewUseCase(s.ProductRepo(), s.UserRepo(), s.OrderRepo())
}

func TestProducts_Filtros(t *testing.T) {
	uc := setup(t)

	res, err := uc.Products(context.Background(), dto.ProductSearchQuery{Query: "mouse"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total, "los inactivos no aparecen")

	res, err = uc.Products(context.Background(), dto.ProductSearchQuery{Query: "mouse", InStock: true, MaxPrice: "50"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "p1", res.Items[0].ID)
	assert.Equal(t, "Peripherals", res.Items[0].CategoryName)

	_, err = uc.Products(context.Background(), dto.ProductSearchQuery{MinPrice: "barato"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCustomers_SoloClientesConTotales(t *testing.T) {
	uc := setup(t)

	res, err := uc.Customers(context.Background(), dto.CustomerSearchQuery{Query: "ana"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	c := res.Items[0]
	assert.Equal(t, "u1", c.ID)
	assert.Equal(t, 2, c.TotalOrders)
	assert.Equal(t, "100.50", c.TotalSpent)
}

func TestCustomers_Paginacion(t *testing.T) {
	uc := setup(t)

	res, err := uc.Customers(context.Background(), dto.CustomerSearchQuery{PageRequest: dto.PageRequest{Page: 2, Limit: 1}})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
	assert.Equal(t, 2, res.Page)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "u1", res.Items[0].ID)
}

func TestOrders_EstadoYRango(t *testing.T) {
	uc := setup(t)

	res, err := uc.Orders(context.Background(), dto.OrderListQuery{Status: entity.OrderStatusCompleted})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)

	res, err = uc.Orders(context.Background(), dto.OrderListQuery{
		DateRangeQuery: dto.DateRangeQuery{StartDate: "2024-03-05", EndDate: "2024-03-10"},
	})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "o2", res.Items[0].ID)
	assert.Equal(t, "ana@example.com", res.Items[0].CustomerEmail)

	_, err = uc.Orders(context.Background(), dto.OrderListQuery{Status: "lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
