package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

// InventoryMovementRepo implementación sobre PostgreSQL (usable con pool o tx). Append-only.
type InventoryMovementRepo struct {
	q Querier
}

// NewInventoryMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewInventoryMovementRepository(q Querier) *InventoryMovementRepo {
	return &InventoryMovementRepo{q: q}
}

// Create persiste un movimiento de inventario.
func (r *InventoryMovementRepo) Create(ctx context.Context, m *entity.InventoryMovement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO inventory_movements (id, product_id, movement_type, quantity, previous_quantity, new_quantity, reference_type, reference_id, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		m.ID, m.ProductID, m.Type, m.Quantity, m.PreviousQuantity, m.NewQuantity,
		m.Reason, nullIfEmpty(m.ReferenceID), nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create inventory movement: %w", err)
	}
	return nil
}

// ListByProduct historial de un producto, más reciente primero.
func (r *InventoryMovementRepo) ListByProduct(ctx context.Context, productID string, p repository.Page) ([]*entity.InventoryMovement, int, error) {
	var total int
	if err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM inventory_movements WHERE product_id = $1`, productID,
	).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count movements: %w", err)
	}

	rows, err := r.q.Query(ctx, `
		SELECT id, product_id, movement_type, quantity, previous_quantity, new_quantity, reference_type, reference_id, created_by, created_at
		FROM inventory_movements WHERE product_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, productID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var out []*entity.InventoryMovement
	for rows.Next() {
		var (
			m                entity.InventoryMovement
			refID, createdBy *string
		)
		if err := rows.Scan(
			&m.ID, &m.ProductID, &m.Type, &m.Quantity, &m.PreviousQuantity, &m.NewQuantity,
			&m.Reason, &refID, &createdBy, &m.CreatedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("scan movement: %w", err)
		}
		m.ReferenceID, m.CreatedBy = deref(refID), deref(createdBy)
		out = append(out, &m)
	}
	return out, total, rows.Err()
}
