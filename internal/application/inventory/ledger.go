package inventory

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	domaininv "github.com/jhoicas/engage-api/internal/domain/inventory"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

// Entry ajuste de stock a registrar en el ledger.
type Entry struct {
	ProductID   string
	Quantity    int
	Operation   string
	Reason      string
	ReferenceID string
	ActorID     string
	// RequireStock hace fallar un decrement mayor al stock con ErrInsufficientStock
	// en lugar de limitarlo en cero (órdenes).
	RequireStock bool
}

// Record bloquea el producto (SELECT FOR UPDATE) y aplica el ajuste con los repositorios de tx.
// Es el único camino de escritura del stock.
func Record(ctx context.Context, tx repository.TxRepos, e Entry) (*entity.Product, *entity.InventoryMovement, error) {
	product, err := tx.Products.GetForUpdate(ctx, e.ProductID)
	if err != nil {
		return nil, nil, err
	}
	if product == nil {
		return nil, nil, fmt.Errorf("%w: product %s not found", domain.ErrNotFound, e.ProductID)
	}
	mov, err := RecordLocked(ctx, tx, product, e)
	if err != nil {
		return nil, nil, err
	}
	return product, mov, nil
}

// RecordLocked aplica el ajuste sobre un producto ya bloqueado en la misma tx.
// Actualiza product.StockQuantity en memoria y agrega exactamente un movimiento.
func RecordLocked(ctx context.Context, tx repository.TxRepos, product *entity.Product, e Entry) (*entity.InventoryMovement, error) {
	if e.RequireStock && e.Operation == domaininv.OpDecrement && product.StockQuantity < e.Quantity {
		return nil, fmt.Errorf("%w: product %s has %d units, %d requested",
			domain.ErrInsufficientStock, product.Name, product.StockQuantity, e.Quantity)
	}
	adj, err := domaininv.Apply(product.StockQuantity, e.Quantity, e.Operation)
	if err != nil {
		return nil, err
	}
	if err := tx.Products.UpdateStock(ctx, product.ID, adj.New); err != nil {
		return nil, err
	}
	reason := e.Reason
	if reason == "" {
		reason = entity.MovementReasonManual
	}
	mov := &entity.InventoryMovement{
		ID:               uuid.New().String(),
		ProductID:        product.ID,
		Type:             adj.MovementType,
		Quantity:         adj.Applied, // delta aplicado, no el pedido: previous ± quantity = new
		PreviousQuantity: adj.Previous,
		NewQuantity:      adj.New,
		Reason:           reason,
		ReferenceID:      e.ReferenceID,
		CreatedBy:        e.ActorID,
		CreatedAt:        time.Now(),
	}
	if err := tx.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	product.StockQuantity = adj.New
	return mov, nil
}
