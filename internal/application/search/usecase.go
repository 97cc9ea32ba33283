// Package search expone búsquedas paginadas de productos, clientes y órdenes
// reutilizando los filtros de los módulos dueños de cada recurso.
package search

import (
	"context"
	"strings"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/inventory"
	"github.com/jhoicas/engage-api/internal/application/orders"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

type UseCase struct {
	products repository.ProductRepository
	users    repository.UserRepository
	orders   repository.OrderRepository
}

func NewUseCase(products repository.ProductRepository, users repository.UserRepository, orderRepo repository.OrderRepository) *UseCase {
	return &UseCase{products: products, users: users, orders: orderRepo}
}

// Products productos activos por texto, categoría, rango de precio y disponibilidad.
func (uc *UseCase) Products(ctx context.Context, q dto.ProductSearchQuery) (*dto.PageResponse[dto.ProductResponse], error) {
	f, err := inventory.ProductFilter(q)
	if err != nil {
		return nil, err
	}
	page := q.Normalize()
	list, total, err := uc.products.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, inventory.ToProductResponse(p))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

// Customers clientes con total de órdenes y monto gastado.
func (uc *UseCase) Customers(ctx context.Context, q dto.CustomerSearchQuery) (*dto.PageResponse[dto.CustomerSearchResult], error) {
	page := q.Normalize()
	list, total, err := uc.users.SearchCustomers(ctx, repository.CustomerFilter{Query: strings.TrimSpace(q.Query)}, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CustomerSearchResult, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CustomerSearchResult{
			ID:          c.User.ID,
			Email:       c.User.Email,
			FirstName:   c.User.FirstName,
			LastName:    c.User.LastName,
			Phone:       c.User.Phone,
			TotalOrders: c.TotalOrders,
			TotalSpent:  c.TotalSpent.StringFixed(2),
		})
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

// Orders órdenes por número, cliente, estado y rango de fechas.
func (uc *UseCase) Orders(ctx context.Context, q dto.OrderListQuery) (*dto.PageResponse[dto.OrderResponse], error) {
	f, err := orders.Filter(q)
	if err != nil {
		return nil, err
	}
	page := q.Normalize()
	list, total, err := uc.orders.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OrderResponse, 0, len(list))
	for _, o := range list {
		out = append(out, orders.ToOrderResponse(o))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}
