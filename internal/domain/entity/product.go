package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// StockQuantity solo se modifica a través del ledger de stock (nunca negativo).
type Product struct {
	ID            string
	SKU           string
	Name          string
	Description   string
	Price         decimal.Decimal
	StockQuantity int
	MinStockLevel int
	CategoryID    string // vacío si no tiene categoría
	CategoryName  string // solo lectura (JOIN)
	IsActive      bool
	CreatedBy     string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock indica si el stock está en o por debajo del mínimo.
func (p *Product) LowStock() bool {
	return p.StockQuantity <= p.MinStockLevel
}
