package order

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// transitions tabla de transiciones legales. completed y cancelled son terminales.
var transitions = map[string][]string{
	entity.OrderStatusPending:    {entity.OrderStatusProcessing, entity.OrderStatusCompleted, entity.OrderStatusCancelled},
	entity.OrderStatusProcessing: {entity.OrderStatusCompleted, entity.OrderStatusCancelled},
	entity.OrderStatusCompleted:  {},
	entity.OrderStatusCancelled:  {},
}

// ValidStatus indica si s es un estado conocido.
func ValidStatus(s string) bool {
	_, ok := transitions[s]
	return ok
}

// CanTransition indica si from → to es legal.
func CanTransition(from, to string) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// CheckTransition devuelve ErrInvalidTransition envuelto con el detalle si from → to no es legal.
func CheckTransition(from, to string) error {
	if !ValidStatus(to) {
		return fmt.Errorf("%w: unknown status %q", domain.ErrInvalidInput, to)
	}
	if !CanTransition(from, to) {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
	}
	return nil
}

// Total Σ(quantity × unit_price) de las líneas.
func Total(items []entity.OrderItem) decimal.Decimal {
	total := decimal.Zero
	for _, it := range items {
		total = total.Add(it.UnitPrice.Mul(decimal.NewFromInt(int64(it.Quantity))))
	}
	return total
}
