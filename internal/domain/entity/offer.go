package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de oferta.
const (
	OfferTypePercentage = "percentage"
	OfferTypeFixed      = "fixed"
)

// Offer código promocional. MinPurchase, MaxDiscount y UsageLimit son opcionales (nil = sin límite).
type Offer struct {
	ID          string
	Code        string
	Name        string
	Description string
	Type        string
	Value       decimal.Decimal
	MinPurchase *decimal.Decimal
	MaxDiscount *decimal.Decimal
	UsageLimit  *int
	StartDate   time.Time
	EndDate     time.Time
	IsActive    bool
	TotalUses   int // solo lectura (COUNT de user_offers)
	CreatedBy   string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// UserOffer redención de una oferta por un usuario.
type UserOffer struct {
	ID       string
	UserID   string
	OfferID  string
	OrderID  string // opcional
	Discount decimal.Decimal
	UsedAt   time.Time

	// solo lectura (JOIN con offers)
	OfferCode  string
	OfferName  string
	OfferType  string
	OfferValue decimal.Decimal
}
