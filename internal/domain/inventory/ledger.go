package inventory

import (
	"fmt"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// Operaciones de ajuste de stock.
const (
	OpIncrement = "increment"
	OpDecrement = "decrement"
	OpSet       = "set"
)

// ValidOperation indica si op es una operación del ledger.
func ValidOperation(op string) bool {
	return op == OpIncrement || op == OpDecrement || op == OpSet
}

// Adjustment resultado de aplicar una operación sobre un stock actual.
type Adjustment struct {
	Previous     int
	New          int
	Applied      int    // magnitud del cambio efectivo (>= 0)
	MovementType string // stock_in | stock_out
}

// Apply calcula el nuevo stock (servicio de dominio, sin efectos).
// decrement se limita en cero sin error. increment/decrement fijan el tipo de movimiento;
// en set lo decide el signo del cambio (sin cambio = stock_in de 0).
func Apply(current, quantity int, op string) (Adjustment, error) {
	if quantity < 0 {
		return Adjustment{}, fmt.Errorf("%w: quantity must be >= 0", domain.ErrInvalidInput)
	}
	adj := Adjustment{Previous: current}
	switch op {
	case OpIncrement:
		adj.New = current + quantity
	case OpDecrement:
		adj.New = current - quantity
		if adj.New < 0 {
			adj.New = 0
		}
	case OpSet:
		adj.New = quantity
	default:
		return Adjustment{}, fmt.Errorf("%w: operation must be increment, decrement or set", domain.ErrInvalidInput)
	}
	if adj.New >= adj.Previous {
		adj.Applied = adj.New - adj.Previous
	} else {
		adj.Applied = adj.Previous - adj.New
	}
	switch {
	case op == OpIncrement:
		adj.MovementType = entity.MovementTypeStockIn
	case op == OpDecrement:
		adj.MovementType = entity.MovementTypeStockOut
	case adj.New >= adj.Previous:
		adj.MovementType = entity.MovementTypeStockIn
	default:
		adj.MovementType = entity.MovementTypeStockOut
	}
	return adj, nil
}
