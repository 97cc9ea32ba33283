package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea solicitada.
type OrderItemRequest struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

// CreateOrderRequest alta de orden. CustomerID se ignora si quien crea es un customer.
type CreateOrderRequest struct {
	CustomerID      string             `json:"customer_id" validate:"omitempty,uuid"`
	Items           []OrderItemRequest `json:"items" validate:"required,min=1,dive"`
	ShippingAddress string             `json:"shipping_address"`
	BillingAddress  string             `json:"billing_address"`
	PaymentMethod   string             `json:"payment_method" validate:"max=50"`
	Notes           string             `json:"notes"`
}

// UpdateOrderStatusRequest cambio de estado (validado contra la tabla de transiciones).
type UpdateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Reason string `json:"reason"`
}

// CancelOrderRequest motivo de cancelación.
type CancelOrderRequest struct {
	Reason string `json:"reason" validate:"max=500"`
}

// OrderListQuery filtros del listado de órdenes.
type OrderListQuery struct {
	PageRequest
	DateRangeQuery
	Query  string `query:"query"`
	Status string `query:"status"`
}

// OrderItemResponse línea con snapshot de precio.
type OrderItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// OrderResponse orden para la API. Items solo en detalle y creación.
type OrderResponse struct {
	ID                 string              `json:"id"`
	OrderNumber        string              `json:"order_number"`
	CustomerID         string              `json:"customer_id"`
	CustomerEmail      string              `json:"customer_email,omitempty"`
	CustomerName       string              `json:"customer_name,omitempty"`
	Status             string              `json:"status"`
	TotalAmount        decimal.Decimal     `json:"total_amount"`
	ShippingAddress    string              `json:"shipping_address,omitempty"`
	BillingAddress     string              `json:"billing_address,omitempty"`
	PaymentMethod      string              `json:"payment_method,omitempty"`
	Notes              string              `json:"notes,omitempty"`
	CancellationReason string              `json:"cancellation_reason,omitempty"`
	Items              []OrderItemResponse `json:"items,omitempty"`
	CreatedAt          time.Time           `json:"created_at"`
	UpdatedAt          time.Time           `json:"updated_at"`
}
