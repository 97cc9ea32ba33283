package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Agrupaciones válidas para la serie de ventas.
const (
	GroupByHour  = "hour"
	GroupByDay   = "day"
	GroupByWeek  = "week"
	GroupByMonth = "month"
)

// SalesPoint ventas completadas agregadas en un intervalo.
type SalesPoint struct {
	Period        time.Time
	OrderCount    int
	Revenue       decimal.Decimal
	AverageTicket decimal.Decimal
}

// CategoryStock stock agregado por categoría ("Uncategorized" si no tiene).
type CategoryStock struct {
	Category      string
	ProductCount  int
	TotalUnits    int
	StockValue    decimal.Decimal
	LowStockCount int
}

// CustomerOverview totales de clientes.
type CustomerOverview struct {
	TotalCustomers  int
	ActiveCustomers int // con al menos una orden en el período
	NewCustomers    int // registrados en el período
}

// CustomerSegment clientes agrupados por número de órdenes (One-time, Regular, Loyal).
type CustomerSegment struct {
	Segment       string
	CustomerCount int
	Revenue       decimal.Decimal
}

// ProductPerformance ventas por producto en el período.
type ProductPerformance struct {
	ProductID string
	Name      string
	UnitsSold int
	Revenue   decimal.Decimal
	Orders    int
}

// ChannelStats comunicaciones por canal y dirección.
type ChannelStats struct {
	Channel         string
	Direction       string
	Total           int
	AIHandled       int
	AvgResponseTime decimal.Decimal // segundos
}

// DashboardCounts métricas del overview.
type DashboardCounts struct {
	TotalOrders      int
	TotalRevenue     decimal.Decimal
	TotalCustomers   int
	LowStockProducts int
}

// ActivityEvent evento reciente (orden creada o producto creado).
type ActivityEvent struct {
	Type        string // order | product
	ReferenceID string
	Description string
	Status      string
	ActorEmail  string
	CreatedAt   time.Time
}

// AnalyticsRepository consultas de lectura para analítica y dashboard (read-only).
type AnalyticsRepository interface {
	SalesSeries(ctx context.Context, from, to time.Time, groupBy string) ([]SalesPoint, error)
	InventoryByCategory(ctx context.Context) ([]CategoryStock, error)
	CustomerOverview(ctx context.Context, from, to time.Time) (*CustomerOverview, error)
	CustomerSegments(ctx context.Context) ([]CustomerSegment, error)
	ProductPerformance(ctx context.Context, from, to time.Time, limit int) ([]ProductPerformance, error)
	CommunicationStats(ctx context.Context, from, to time.Time) ([]ChannelStats, error)

	// ── Métodos del Dashboard ─────────────────────────────────────────────────

	CountOrders(ctx context.Context) (int, error)
	CompletedRevenue(ctx context.Context) (decimal.Decimal, error)
	CountCustomers(ctx context.Context) (int, error)
	CountLowStock(ctx context.Context) (int, error)
	RecentActivity(ctx context.Context, limit int) ([]ActivityEvent, error)
}
