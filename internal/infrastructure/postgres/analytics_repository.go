package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.AnalyticsRepository = (*AnalyticsRepo)(nil)

// AnalyticsRepo consultas de solo lectura para analítica y dashboard.
type AnalyticsRepo struct {
	q Querier
}

// NewAnalyticsRepository construye el adaptador de analítica.
func NewAnalyticsRepository(q Querier) *AnalyticsRepo {
	return &AnalyticsRepo{q: q}
}

// SalesSeries agrupa órdenes completadas con date_trunc. groupBy ya viene validado
// por el caso de uso y además viaja como parámetro, nunca interpolado.
func (r *AnalyticsRepo) SalesSeries(ctx context.Context, from, to time.Time, groupBy string) ([]repository.SalesPoint, error) {
	const query = `
	SELECT
	    date_trunc($3, o.created_at)         AS period,
	    COUNT(*)                              AS order_count,
	    COALESCE(SUM(o.total_amount), 0)      AS revenue,
	    COALESCE(AVG(o.total_amount), 0)      AS average_ticket
	FROM orders o
	WHERE o.status = 'completed'
	  AND o.created_at BETWEEN $1 AND $2
	GROUP BY period
	ORDER BY period`

	rows, err := r.q.Query(ctx, query, from, to, groupBy)
	if err != nil {
		return nil, fmt.Errorf("analytics.SalesSeries: %w", err)
	}
	defer rows.Close()

	var out []repository.SalesPoint
	for rows.Next() {
		var p repository.SalesPoint
		if err := rows.Scan(&p.Period, &p.OrderCount, &p.Revenue, &p.AverageTicket); err != nil {
			return nil, fmt.Errorf("analytics.SalesSeries scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// InventoryByCategory productos activos agrupados por categoría ("Uncategorized" sin categoría).
func (r *AnalyticsRepo) InventoryByCategory(ctx context.Context) ([]repository.CategoryStock, error) {
	const query = `
	SELECT
	    COALESCE(c.name, 'Uncategorized')                            AS category,
	    COUNT(p.id)                                                  AS product_count,
	    COALESCE(SUM(p.stock_quantity), 0)                           AS total_units,
	    COALESCE(SUM(p.stock_quantity * p.price), 0)                 AS stock_value,
	    COUNT(*) FILTER (WHERE p.stock_quantity <= p.min_stock_level) AS low_stock_count
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	WHERE p.is_active = TRUE
	GROUP BY c.name
	ORDER BY stock_value DESC`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.InventoryByCategory: %w", err)
	}
	defer rows.Close()

	var out []repository.CategoryStock
	for rows.Next() {
		var c repository.CategoryStock
		if err := rows.Scan(&c.Category, &c.ProductCount, &c.TotalUnits, &c.StockValue, &c.LowStockCount); err != nil {
			return nil, fmt.Errorf("analytics.InventoryByCategory scan: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

// CustomerOverview total de clientes, activos (con órdenes en el período) y nuevos.
func (r *AnalyticsRepo) CustomerOverview(ctx context.Context, from, to time.Time) (*repository.CustomerOverview, error) {
	const query = `
	SELECT
	    COUNT(*)                                                          AS total_customers,
	    COUNT(*) FILTER (WHERE EXISTS (
	        SELECT 1 FROM orders o
	        WHERE o.customer_id = u.id AND o.created_at BETWEEN $1 AND $2)) AS active_customers,
	    COUNT(*) FILTER (WHERE u.created_at BETWEEN $1 AND $2)            AS new_customers
	FROM users u
	WHERE u.role = 'customer'`

	var o repository.CustomerOverview
	if err := r.q.QueryRow(ctx, query, from, to).Scan(&o.TotalCustomers, &o.ActiveCustomers, &o.NewCustomers); err != nil {
		return nil, fmt.Errorf("analytics.CustomerOverview: %w", err)
	}
	return &o, nil
}

// CustomerSegments One-time (1 orden), Regular (2-4), Loyal (5+). Clientes sin órdenes no cuentan.
func (r *AnalyticsRepo) CustomerSegments(ctx context.Context) ([]repository.CustomerSegment, error) {
	const query = `
	WITH per_customer AS (
	    SELECT o.customer_id,
	           COUNT(*)                                                    AS orders,
	           COALESCE(SUM(o.total_amount) FILTER (WHERE o.status = 'completed'), 0) AS revenue
	    FROM orders o
	    GROUP BY o.customer_id
	)
	SELECT
	    CASE WHEN orders = 1 THEN 'One-time'
	         WHEN orders < 5 THEN 'Regular'
	         ELSE 'Loyal' END            AS segment,
	    COUNT(*)                         AS customer_count,
	    COALESCE(SUM(revenue), 0)        AS revenue
	FROM per_customer
	GROUP BY segment
	ORDER BY MIN(orders)`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("analytics.CustomerSegments: %w", err)
	}
	defer rows.Close()

	var out []repository.CustomerSegment
	for rows.Next() {
		var s repository.CustomerSegment
		if err := rows.Scan(&s.Segment, &s.CustomerCount, &s.Revenue); err != nil {
			return nil, fmt.Errorf("analytics.CustomerSegments scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ProductPerformance top `limit` productos por ingreso en órdenes no canceladas.
func (r *AnalyticsRepo) ProductPerformance(ctx context.Context, from, to time.Time, limit int) ([]repository.ProductPerformance, error) {
	const query = `
	SELECT
	    p.id,
	    p.name,
	    COALESCE(SUM(oi.quantity), 0)       AS units_sold,
	    COALESCE(SUM(oi.total_price), 0)    AS revenue,
	    COUNT(DISTINCT o.id)                AS orders
	FROM order_items oi
	JOIN orders   o ON o.id = oi.order_id
	JOIN products p ON p.id = oi.product_id
	WHERE o.status <> 'cancelled'
	  AND o.created_at BETWEEN $1 AND $2
	GROUP BY p.id, p.name
	ORDER BY revenue DESC
	LIMIT $3`

	rows, err := r.q.Query(ctx, query, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.ProductPerformance: %w", err)
	}
	defer rows.Close()

	var out []repository.ProductPerformance
	for rows.Next() {
		var p repository.ProductPerformance
		if err := rows.Scan(&p.ProductID, &p.Name, &p.UnitsSold, &p.Revenue, &p.Orders); err != nil {
			return nil, fmt.Errorf("analytics.ProductPerformance scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// CommunicationStats mensajes por canal y dirección con tiempo medio de respuesta.
func (r *AnalyticsRepo) CommunicationStats(ctx context.Context, from, to time.Time) ([]repository.ChannelStats, error) {
	const query = `
	SELECT
	    channel,
	    direction,
	    COUNT(*)                                  AS total,
	    COUNT(*) FILTER (WHERE is_ai_handled)     AS ai_handled,
	    COALESCE(AVG(response_time), 0)           AS avg_response_time
	FROM messages
	WHERE created_at BETWEEN $1 AND $2
	GROUP BY channel, direction
	ORDER BY channel, direction`

	rows, err := r.q.Query(ctx, query, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics.CommunicationStats: %w", err)
	}
	defer rows.Close()

	var out []repository.ChannelStats
	for rows.Next() {
		var s repository.ChannelStats
		if err := rows.Scan(&s.Channel, &s.Direction, &s.Total, &s.AIHandled, &s.AvgResponseTime); err != nil {
			return nil, fmt.Errorf("analytics.CommunicationStats scan: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

func (r *AnalyticsRepo) CountOrders(ctx context.Context) (int, error) {
	return r.count(ctx, "CountOrders", `SELECT COUNT(*) FROM orders`)
}

func (r *AnalyticsRepo) CountCustomers(ctx context.Context) (int, error) {
	return r.count(ctx, "CountCustomers", `SELECT COUNT(*) FROM users WHERE role = 'customer'`)
}

func (r *AnalyticsRepo) CountLowStock(ctx context.Context) (int, error) {
	return r.count(ctx, "CountLowStock",
		`SELECT COUNT(*) FROM products WHERE is_active = TRUE AND stock_quantity <= min_stock_level`)
}

// CompletedRevenue suma de órdenes completadas; cero si no hay.
func (r *AnalyticsRepo) CompletedRevenue(ctx context.Context) (decimal.Decimal, error) {
	var v decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(total_amount), 0) FROM orders WHERE status = 'completed'`).Scan(&v)
	if err != nil {
		return decimal.Zero, fmt.Errorf("analytics.CompletedRevenue: %w", err)
	}
	return v, nil
}

// RecentActivity últimas órdenes y productos creados, mezclados por fecha.
func (r *AnalyticsRepo) RecentActivity(ctx context.Context, limit int) ([]repository.ActivityEvent, error) {
	const query = `
	(SELECT 'order', o.id::TEXT, o.order_number, o.status, COALESCE(u.email, ''), o.created_at
	 FROM orders o LEFT JOIN users u ON u.id = o.customer_id
	 ORDER BY o.created_at DESC LIMIT $1)
	UNION ALL
	(SELECT 'product', p.id::TEXT, p.name, CASE WHEN p.is_active THEN 'active' ELSE 'inactive' END,
	        COALESCE(u.email, ''), p.created_at
	 FROM products p LEFT JOIN users u ON u.id = p.created_by
	 ORDER BY p.created_at DESC LIMIT $1)
	ORDER BY 6 DESC
	LIMIT $1`

	rows, err := r.q.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics.RecentActivity: %w", err)
	}
	defer rows.Close()

	var out []repository.ActivityEvent
	for rows.Next() {
		var e repository.ActivityEvent
		if err := rows.Scan(&e.Type, &e.ReferenceID, &e.Description, &e.Status, &e.ActorEmail, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("analytics.RecentActivity scan: %w", err)
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *AnalyticsRepo) count(ctx context.Context, name, query string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, query).Scan(&n); err != nil {
		return 0, fmt.Errorf("analytics.%s: %w", name, err)
	}
	return n, nil
}
