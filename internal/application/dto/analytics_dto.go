package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ── Query parameters ──────────────────────────────────────────────────────────

// AnalyticsQuery rango y agrupación. Sin fechas: últimos 30 días.
type AnalyticsQuery struct {
	DateRangeQuery
	GroupBy string `query:"group_by"` // hour|day|week|month (default day)
	Limit   int    `query:"limit"`    // top N para performance de productos
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// SalesPointDTO ventas de un intervalo.
type SalesPointDTO struct {
	Period        time.Time       `json:"period"`
	OrderCount    int             `json:"order_count"`
	Revenue       decimal.Decimal `json:"revenue"`
	AverageTicket decimal.Decimal `json:"average_ticket"`
}

// SalesAnalyticsResponse serie de ventas completadas.
type SalesAnalyticsResponse struct {
	StartDate    time.Time       `json:"start_date"`
	EndDate      time.Time       `json:"end_date"`
	GroupBy      string          `json:"group_by"`
	TotalOrders  int             `json:"total_orders"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Series       []SalesPointDTO `json:"series"`
}

// ── Inventario ────────────────────────────────────────────────────────────────

// CategoryStockDTO stock agregado por categoría.
type CategoryStockDTO struct {
	Category      string          `json:"category"`
	ProductCount  int             `json:"product_count"`
	TotalUnits    int             `json:"total_units"`
	StockValue    decimal.Decimal `json:"stock_value"`
	LowStockCount int             `json:"low_stock_count"`
}

// InventoryAnalyticsResponse inventario por categoría con totales.
type InventoryAnalyticsResponse struct {
	Categories      []CategoryStockDTO `json:"categories"`
	TotalStockValue decimal.Decimal    `json:"total_stock_value"`
	TotalLowStock   int                `json:"total_low_stock"`
}

// ── Clientes ──────────────────────────────────────────────────────────────────

// CustomerSegmentDTO segmento de clientes.
type CustomerSegmentDTO struct {
	Segment       string          `json:"segment"`
	CustomerCount int             `json:"customer_count"`
	Revenue       decimal.Decimal `json:"revenue"`
}

// CustomerAnalyticsResponse overview y segmentos.
type CustomerAnalyticsResponse struct {
	TotalCustomers  int                  `json:"total_customers"`
	ActiveCustomers int                  `json:"active_customers"`
	NewCustomers    int                  `json:"new_customers"`
	Segments        []CustomerSegmentDTO `json:"segments"`
}

// ── Productos ─────────────────────────────────────────────────────────────────

// ProductPerformanceDTO ventas de un producto.
type ProductPerformanceDTO struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	UnitsSold int             `json:"units_sold"`
	Revenue   decimal.Decimal `json:"revenue"`
	Orders    int             `json:"orders"`
}

// ── Comunicaciones ────────────────────────────────────────────────────────────

// ChannelStatsDTO comunicaciones por canal/dirección.
type ChannelStatsDTO struct {
	Channel         string          `json:"channel"`
	Direction       string          `json:"direction"`
	Total           int             `json:"total"`
	AIHandled       int             `json:"ai_handled"`
	AvgResponseTime decimal.Decimal `json:"avg_response_time"`
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// DashboardOverview KPIs principales.
type DashboardOverview struct {
	TotalOrders      int             `json:"total_orders"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalCustomers   int             `json:"total_customers"`
	LowStockProducts int             `json:"low_stock_products"`
}

// ActivityDTO evento del feed de actividad reciente.
type ActivityDTO struct {
	Type        string    `json:"type"`
	ReferenceID string    `json:"reference_id"`
	Description string    `json:"description"`
	Status      string    `json:"status,omitempty"`
	ActorEmail  string    `json:"actor_email,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}
