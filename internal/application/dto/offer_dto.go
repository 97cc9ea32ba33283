package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateOfferRequest alta de oferta.
type CreateOfferRequest struct {
	Code        string           `json:"code" validate:"required,max=50"`
	Name        string           `json:"name" validate:"required,max=255"`
	Description string           `json:"description"`
	Type        string           `json:"type" validate:"required,oneof=percentage fixed"`
	Value       decimal.Decimal  `json:"value"`
	MinPurchase *decimal.Decimal `json:"min_purchase"`
	MaxDiscount *decimal.Decimal `json:"max_discount"`
	UsageLimit  *int             `json:"usage_limit" validate:"omitempty,min=1"`
	StartDate   time.Time        `json:"start_date" validate:"required"`
	EndDate     time.Time        `json:"end_date" validate:"required"`
	IsActive    *bool            `json:"is_active"`
}

// UpdateOfferRequest actualización parcial (campos nil no cambian).
type UpdateOfferRequest struct {
	Name        *string          `json:"name" validate:"omitempty,max=255"`
	Description *string          `json:"description"`
	Type        *string          `json:"type" validate:"omitempty,oneof=percentage fixed"`
	Value       *decimal.Decimal `json:"value"`
	MinPurchase *decimal.Decimal `json:"min_purchase"`
	MaxDiscount *decimal.Decimal `json:"max_discount"`
	UsageLimit  *int             `json:"usage_limit" validate:"omitempty,min=1"`
	StartDate   *time.Time       `json:"start_date"`
	EndDate     *time.Time       `json:"end_date"`
	IsActive    *bool            `json:"is_active"`
	// Clear vuelve a null los opcionales nombrados; no puede combinarse con un valor para el mismo campo.
	Clear []string `json:"clear" validate:"omitempty,dive,oneof=min_purchase max_discount usage_limit"`
}

// Campos opcionales de una oferta que Clear puede anular.
const (
	OfferFieldMinPurchase = "min_purchase"
	OfferFieldMaxDiscount = "max_discount"
	OfferFieldUsageLimit  = "usage_limit"
)

// OfferListQuery filtros del listado de ofertas.
type OfferListQuery struct {
	PageRequest
	Active string `query:"active"` // "true" | "false" | ""
	Type   string `query:"type"`
}

// OfferResponse oferta para la API.
type OfferResponse struct {
	ID          string           `json:"id"`
	Code        string           `json:"code"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Type        string           `json:"type"`
	Value       decimal.Decimal  `json:"value"`
	MinPurchase *decimal.Decimal `json:"min_purchase"`
	MaxDiscount *decimal.Decimal `json:"max_discount"`
	UsageLimit  *int             `json:"usage_limit"`
	TotalUses   int              `json:"total_uses"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	IsActive    bool             `json:"is_active"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// ValidateOfferRequest código y monto del carrito.
type ValidateOfferRequest struct {
	Code   string          `json:"code" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// OfferQuote resultado de la validación.
type OfferQuote struct {
	ID          string          `json:"id"`
	Code        string          `json:"code"`
	Type        string          `json:"type"`
	Value       decimal.Decimal `json:"value"`
	Discount    decimal.Decimal `json:"discount"`
	FinalAmount decimal.Decimal `json:"final_amount"`
}

// ValidateOfferResponse envoltura {offer: ...}.
type ValidateOfferResponse struct {
	Offer OfferQuote `json:"offer"`
}

// RedeemOfferRequest confirma el uso de un código.
type RedeemOfferRequest struct {
	Code    string          `json:"code" validate:"required"`
	Amount  decimal.Decimal `json:"amount"`
	OrderID string          `json:"order_id" validate:"omitempty,uuid"`
}

// RedemptionResponse redención registrada.
type RedemptionResponse struct {
	ID         string          `json:"id"`
	OfferID    string          `json:"offer_id"`
	OfferCode  string          `json:"offer_code"`
	OfferName  string          `json:"offer_name,omitempty"`
	OfferType  string          `json:"offer_type,omitempty"`
	OfferValue decimal.Decimal `json:"offer_value"`
	OrderID    string          `json:"order_id,omitempty"`
	Discount   decimal.Decimal `json:"discount"`
	UsedAt     time.Time       `json:"used_at"`
}
