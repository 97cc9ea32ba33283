package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

const orderSelect = `
	SELECT o.id, o.order_number, o.customer_id, COALESCE(u.email, ''),
	       COALESCE(TRIM(u.first_name || ' ' || u.last_name), ''),
	       o.status, o.total_amount, o.shipping_address, o.billing_address, o.payment_method,
	       o.notes, o.cancellation_reason, o.created_at, o.updated_at
	FROM orders o
	LEFT JOIN users u ON u.id = o.customer_id`

// OrderRepo órdenes y sus líneas sobre PostgreSQL (usable con pool o tx).
type OrderRepo struct {
	q Querier
}

func NewOrderRepository(q Querier) *OrderRepo {
	return &OrderRepo{q: q}
}

// Create inserta la cabecera; las líneas se agregan con AddItem en la misma tx.
func (r *OrderRepo) Create(ctx context.Context, o *entity.Order) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO orders (id, order_number, customer_id, status, total_amount, shipping_address, billing_address, payment_method, notes, cancellation_reason, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		o.ID, o.OrderNumber, o.CustomerID, o.Status, o.TotalAmount, o.ShippingAddress, o.BillingAddress,
		o.PaymentMethod, o.Notes, o.CancellationReason, o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: order number already exists", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert order: %w", err)
	}
	return nil
}

func (r *OrderRepo) AddItem(ctx context.Context, it *entity.OrderItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO order_items (id, order_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		it.ID, it.OrderID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert order item: %w", err)
	}
	return nil
}

func (r *OrderRepo) GetByID(ctx context.Context, id string) (*entity.Order, error) {
	return r.findOne(ctx, orderSelect+` WHERE o.id = $1`, id)
}

// GetForUpdate bloquea la orden para transiciones de estado concurrentes.
func (r *OrderRepo) GetForUpdate(ctx context.Context, id string) (*entity.Order, error) {
	return r.findOne(ctx, orderSelect+` WHERE o.id = $1 FOR UPDATE OF o`, id)
}

func (r *OrderRepo) findOne(ctx context.Context, query, id string) (*entity.Order, error) {
	o, err := scanOrder(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get order: %w", err)
	}
	return o, nil
}

// ListItems líneas con nombre de producto, en orden de inserción.
func (r *OrderRepo) ListItems(ctx context.Context, orderID string) ([]entity.OrderItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT oi.id, oi.order_id, oi.product_id, COALESCE(p.name, ''), oi.quantity, oi.unit_price, oi.total_price
		FROM order_items oi
		LEFT JOIN products p ON p.id = oi.product_id
		WHERE oi.order_id = $1
		ORDER BY oi.seq`, orderID)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	defer rows.Close()
	var out []entity.OrderItem
	for rows.Next() {
		var it entity.OrderItem
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ProductID, &it.ProductName, &it.Quantity, &it.UnitPrice, &it.TotalPrice); err != nil {
			return nil, fmt.Errorf("scan order item: %w", err)
		}
		out = append(out, it)
	}
	return out, rows.Err()
}

// UpdateStatus cambia el estado; el motivo solo se escribe si viene informado.
func (r *OrderRepo) UpdateStatus(ctx context.Context, id, status, reason string) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE orders
		SET status = $2,
		    cancellation_reason = CASE WHEN $3 = '' THEN cancellation_reason ELSE $3 END,
		    updated_at = now()
		WHERE id = $1`, id, status, reason)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List órdenes filtradas, más recientes primero.
func (r *OrderRepo) List(ctx context.Context, f repository.OrderFilter, p repository.Page) ([]*entity.Order, int, error) {
	var b filterBuilder
	b.AddIf(f.Status != "", "o.status = ?", f.Status)
	b.AddIf(f.CustomerID != "", "o.customer_id = ?", f.CustomerID)
	if f.From != nil {
		b.Add("o.created_at >= ?", *f.From)
	}
	if f.To != nil {
		b.Add("o.created_at <= ?", *f.To)
	}
	if f.Query != "" {
		like := likePattern(f.Query)
		b.Add("(o.order_number ILIKE ? OR u.email ILIKE ? OR (u.first_name || ' ' || u.last_name) ILIKE ?)", like, like, like)
	}

	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM orders o LEFT JOIN users u ON u.id = o.customer_id`+b.Where(), b.Args()...,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	page, args := b.Page(p.Limit, p.Offset())
	rows, err := r.q.Query(ctx, orderSelect+b.Where()+` ORDER BY o.created_at DESC`+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()
	var out []*entity.Order
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func scanOrder(row rowScanner) (*entity.Order, error) {
	var o entity.Order
	if err := row.Scan(
		&o.ID, &o.OrderNumber, &o.CustomerID, &o.CustomerEmail, &o.CustomerName,
		&o.Status, &o.TotalAmount, &o.ShippingAddress, &o.BillingAddress, &o.PaymentMethod,
		&o.Notes, &o.CancellationReason, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &o, nil
}
