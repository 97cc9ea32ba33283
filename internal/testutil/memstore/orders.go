package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo órdenes en memoria.
type OrderRepo struct{ s *Store }

// OrderRepo repositorio de órdenes.
func (s *Store) OrderRepo() *OrderRepo { return &OrderRepo{s: s} }

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	c := *o
	c.Items = nil
	r.s.Orders[o.ID] = c
	return nil
}

func (r *OrderRepo) AddItem(_ context.Context, it *entity.OrderItem) error {
	if _, ok := r.s.Orders[it.OrderID]; !ok {
		return notFound()
	}
	r.s.OrderItems[it.OrderID] = append(r.s.OrderItems[it.OrderID], *it)
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, id string) (*entity.Order, error) {
	o, ok := r.s.Orders[id]
	if !ok {
		return nil, nil
	}
	r.decorate(&o)
	return &o, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.GetByID(ctx, id)
}

func (r *OrderRepo) ListItems(_ context.Context, orderID string) ([]entity.OrderItem, error) {
	items := append([]entity.OrderItem(nil), r.s.OrderItems[orderID]...)
	for i := range items {
		items[i].ProductName = r.s.Products[items[i].ProductID].Name
	}
	return items, nil
}

func (r *OrderRepo) UpdateStatus(_ context.Context, id, status, reason string) error {
	o, ok := r.s.Orders[id]
	if !ok {
		return notFound()
	}
	o.Status = status
	if reason != "" {
		o.CancellationReason = reason
	}
	r.s.Orders[id] = o
	return nil
}

func (r *OrderRepo) List(_ context.Context, f repository.OrderFilter, p repository.Page) ([]*entity.Order, int, error) {
	var out []*entity.Order
	for _, o := range r.s.Orders {
		o := o
		r.decorate(&o)
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		if f.CustomerID != "" && o.CustomerID != f.CustomerID {
			continue
		}
		if f.From != nil && o.CreatedAt.Before(*f.From) {
			continue
		}
		if f.To != nil && o.CreatedAt.After(*f.To) {
			continue
		}
		if f.Query != "" && !(contains(o.OrderNumber, f.Query) || contains(o.CustomerEmail, f.Query) || contains(o.CustomerName, f.Query)) {
			continue
		}
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, p), len(out), nil
}

func (r *OrderRepo) decorate(o *entity.Order) {
	if u, ok := r.s.Users[o.CustomerID]; ok {
		o.CustomerEmail = u.Email
		o.CustomerName = u.FullName()
	}
}
