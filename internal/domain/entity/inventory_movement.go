package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeStockIn  = "stock_in"
	MovementTypeStockOut = "stock_out"
)

// Motivos (reference_type) de un movimiento.
const (
	MovementReasonManual            = "manual_adjustment"
	MovementReasonInitial           = "initial_stock"
	MovementReasonOrder             = "order"
	MovementReasonOrderCancellation = "order_cancellation"
)

// InventoryMovement registro de auditoría inmutable: una fila por mutación del ledger.
// Quantity es el cambio efectivamente aplicado (siempre >= 0); PreviousQuantity/NewQuantity
// documentan el antes y después.
type InventoryMovement struct {
	ID               string
	ProductID        string
	Type             string
	Quantity         int
	PreviousQuantity int
	NewQuantity      int
	Reason           string
	ReferenceID      string // p.ej. id de la orden; vacío en ajustes manuales
	CreatedBy        string
	CreatedAt        time.Time
}
