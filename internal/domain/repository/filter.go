package repository

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// Límites de paginación.
const (
	DefaultPageSize = 20
	MaxPageSize     = 100
)

// Page paginación 1-indexada.
type Page struct {
	Page  int
	Limit int
}

// NewPage normaliza page/limit: page < 1 → 1, limit < 1 → 20, limit > 100 → 100.
// page se acota a math.MaxInt/limit para que Offset nunca desborde.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = DefaultPageSize
	}
	if limit > MaxPageSize {
		limit = MaxPageSize
	}
	if maxPage := math.MaxInt / limit; page > maxPage {
		page = maxPage
	}
	return Page{Page: page, Limit: limit}
}

// Offset filas a saltar.
func (p Page) Offset() int {
	return (p.Page - 1) * p.Limit
}

// ProductFilter filtros de listado/búsqueda de productos. Los campos cero no filtran.
type ProductFilter struct {
	Query           string // ILIKE sobre nombre y descripción
	CategoryID      string
	MinPrice        *decimal.Decimal
	MaxPrice        *decimal.Decimal
	InStock         bool
	IncludeInactive bool
}

// OrderFilter filtros de listado/búsqueda de órdenes.
type OrderFilter struct {
	Query      string // número de orden, email o nombre del cliente
	Status     string
	CustomerID string
	From       *time.Time
	To         *time.Time
}

// CustomerFilter búsqueda de clientes (usuarios con rol customer).
type CustomerFilter struct {
	Query string
}

// OfferFilter filtros de listado de ofertas.
type OfferFilter struct {
	Active *bool
	Type   string
}

// TicketFilter filtros de tickets; UserID vacío = todos.
type TicketFilter struct {
	UserID   string
	Status   string
	Priority string
}

// MessageFilter filtros del log de comunicaciones.
type MessageFilter struct {
	Channels  []string
	Direction string
}
