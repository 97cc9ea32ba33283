package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una orden.
const (
	OrderStatusPending    = "pending"
	OrderStatusProcessing = "processing"
	OrderStatusCompleted  = "completed"
	OrderStatusCancelled  = "cancelled"
)

// Order pedido de un cliente. TotalAmount se fija al crear: Σ(quantity × unit_price).
type Order struct {
	ID                 string
	OrderNumber        string
	CustomerID         string
	CustomerEmail      string // solo lectura (JOIN)
	CustomerName       string // solo lectura (JOIN)
	Status             string
	TotalAmount        decimal.Decimal
	ShippingAddress    string
	BillingAddress     string
	PaymentMethod      string
	Notes              string
	CancellationReason string
	Items              []OrderItem
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// OrderItem línea de la orden con snapshot del precio al momento de la compra.
type OrderItem struct {
	ID          string
	OrderID     string
	ProductID   string
	ProductName string // solo lectura (JOIN)
	Quantity    int
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
}
