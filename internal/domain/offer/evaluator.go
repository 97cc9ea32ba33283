package offer

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// Quote descuento calculado para un monto.
type Quote struct {
	Discount    decimal.Decimal
	FinalAmount decimal.Decimal
}

var hundred = decimal.NewFromInt(100)

// Evaluate aplica, en orden, vigencia, límite de uso, compra mínima y cálculo del descuento.
// uses es la cantidad de redenciones registradas. No tiene efectos.
func Evaluate(o *entity.Offer, uses int, amount decimal.Decimal, now time.Time) (Quote, error) {
	if o == nil || !o.IsActive || now.Before(o.StartDate) || now.After(o.EndDate) {
		return Quote{}, fmt.Errorf("%w: invalid or expired offer code", domain.ErrNotFound)
	}
	if o.UsageLimit != nil && uses >= *o.UsageLimit {
		return Quote{}, domain.ErrOfferLimitReached
	}
	if o.MinPurchase != nil && amount.LessThan(*o.MinPurchase) {
		return Quote{}, fmt.Errorf("%w: minimum purchase amount of %s required", domain.ErrMinPurchaseRequired, o.MinPurchase.StringFixed(2))
	}

	var discount decimal.Decimal
	if o.Type == entity.OfferTypePercentage {
		discount = amount.Mul(o.Value).Div(hundred)
		if o.MaxDiscount != nil && discount.GreaterThan(*o.MaxDiscount) {
			discount = *o.MaxDiscount
		}
	} else {
		discount = o.Value
	}
	// un descuento fijo nunca deja el total en negativo
	if discount.GreaterThan(amount) {
		discount = amount
	}
	return Quote{Discount: discount, FinalAmount: amount.Sub(discount)}, nil
}

// ValidType indica si t es un tipo de oferta soportado.
func ValidType(t string) bool {
	return t == entity.OfferTypePercentage || t == entity.OfferTypeFixed
}
