package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository          = (*CategoryRepo)(nil)
	_ repository.ProductRepository           = (*ProductRepo)(nil)
	_ repository.InventoryMovementRepository = (*MovementRepo)(nil)
)

// CategoryRepo categorías en memoria.
type CategoryRepo struct{ s *Store }

// CategoryRepo repositorio de categorías.
func (s *Store) CategoryRepo() *CategoryRepo { return &CategoryRepo{s: s} }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	r.s.Categories[c.ID] = *c
	return nil
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	c, ok := r.s.Categories[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	for _, c := range r.s.Categories {
		c := c
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ProductRepo productos en memoria.
type ProductRepo struct{ s *Store }

// ProductRepo repositorio de productos.
func (s *Store) ProductRepo() *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	r.s.Products[p.ID] = *p
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	p, ok := r.s.Products[id]
	if !ok {
		return nil, nil
	}
	if c, ok := r.s.Categories[p.CategoryID]; ok {
		p.CategoryName = c.Name
	}
	return &p, nil
}

func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	r.s.Locks = append(r.s.Locks, id)
	return r.GetByID(ctx, id)
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	cur, ok := r.s.Products[p.ID]
	if !ok {
		return notFound()
	}
	stock := cur.StockQuantity
	cur = *p
	cur.StockQuantity = stock
	r.s.Products[p.ID] = cur
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, id string, quantity int) error {
	p, ok := r.s.Products[id]
	if !ok {
		return notFound()
	}
	p.StockQuantity = quantity
	r.s.Products[id] = p
	return nil
}

func (r *ProductRepo) List(_ context.Context, f repository.ProductFilter, pg repository.Page) ([]*entity.Product, int, error) {
	var out []*entity.Product
	for _, p := range r.s.Products {
		p := p
		if !f.IncludeInactive && !p.IsActive {
			continue
		}
		if f.Query != "" && !(contains(p.Name, f.Query) || contains(p.Description, f.Query)) {
			continue
		}
		if f.CategoryID != "" && p.CategoryID != f.CategoryID {
			continue
		}
		if f.MinPrice != nil && p.Price.LessThan(*f.MinPrice) {
			continue
		}
		if f.MaxPrice != nil && p.Price.GreaterThan(*f.MaxPrice) {
			continue
		}
		if f.InStock && p.StockQuantity <= 0 {
			continue
		}
		if c, ok := r.s.Categories[p.CategoryID]; ok {
			p.CategoryName = c.Name
		}
		out = append(out, &p)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, pg), len(out), nil
}

func (r *ProductRepo) ReservedQuantity(_ context.Context, id string) (int, error) {
	total := 0
	for orderID, items := range r.s.OrderItems {
		o := r.s.Orders[orderID]
		if o.Status != entity.OrderStatusPending && o.Status != entity.OrderStatusProcessing {
			continue
		}
		for _, it := range items {
			if it.ProductID == id {
				total += it.Quantity
			}
		}
	}
	return total, nil
}

// MovementRepo movimientos en memoria.
type MovementRepo struct{ s *Store }

// MovementRepo repositorio de movimientos.
func (s *Store) MovementRepo() *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) Create(_ context.Context, m *entity.InventoryMovement) error {
	r.s.Movements = append(r.s.Movements, *m)
	return nil
}

func (r *MovementRepo) ListByProduct(_ context.Context, productID string, p repository.Page) ([]*entity.InventoryMovement, int, error) {
	var out []*entity.InventoryMovement
	for i := len(r.s.Movements) - 1; i >= 0; i-- {
		if m := r.s.Movements[i]; m.ProductID == productID {
			out = append(out, &m)
		}
	}
	return paginate(out, p), len(out), nil
}

// MovementsFor movimientos de un producto en orden de inserción.
func (s *Store) MovementsFor(productID string) []entity.InventoryMovement {
	var out []entity.InventoryMovement
	for _, m := range s.Movements {
		if m.ProductID == productID {
			out = append(out, m)
		}
	}
	return out
}
