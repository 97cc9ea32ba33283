package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

const (
	defaultRangeDays = 30
	defaultTopN      = 10
	maxTopN          = 100
)

// AnalyticsUseCase rollups de solo lectura. Sin rango explícito se usan los últimos 30 días.
type AnalyticsUseCase struct {
	analyticsRepo repository.AnalyticsRepository
	now           func() time.Time
}

// NewAnalyticsUseCase construye el caso de uso.
func NewAnalyticsUseCase(analyticsRepo repository.AnalyticsRepository) *AnalyticsUseCase {
	return &AnalyticsUseCase{analyticsRepo: analyticsRepo, now: time.Now}
}

// Sales serie de órdenes completadas agrupada por hour|day|week|month.
func (uc *AnalyticsUseCase) Sales(ctx context.Context, q dto.AnalyticsQuery) (*dto.SalesAnalyticsResponse, error) {
	from, to, err := uc.period(q.DateRangeQuery)
	if err != nil {
		return nil, err
	}
	groupBy := q.GroupBy
	if groupBy == "" {
		groupBy = repository.GroupByDay
	}
	switch groupBy {
	case repository.GroupByHour, repository.GroupByDay, repository.GroupByWeek, repository.GroupByMonth:
	default:
		return nil, fmt.Errorf("%w: group_by must be hour, day, week or month", domain.ErrInvalidInput)
	}

	points, err := uc.analyticsRepo.SalesSeries(ctx, from, to, groupBy)
	if err != nil {
		return nil, fmt.Errorf("analytics: sales: %w", err)
	}
	resp := &dto.SalesAnalyticsResponse{
		StartDate:    from,
		EndDate:      to,
		GroupBy:      groupBy,
		TotalRevenue: decimal.Zero,
		Series:       make([]dto.SalesPointDTO, 0, len(points)),
	}
	for _, p := range points {
		resp.TotalOrders += p.OrderCount
		resp.TotalRevenue = resp.TotalRevenue.Add(p.Revenue)
		resp.Series = append(resp.Series, dto.SalesPointDTO{
			Period:        p.Period,
			OrderCount:    p.OrderCount,
			Revenue:       p.Revenue.Round(2),
			AverageTicket: p.AverageTicket.Round(2),
		})
	}
	resp.TotalRevenue = resp.TotalRevenue.Round(2)
	return resp, nil
}

// Inventory stock por categoría con valor total y productos bajo mínimo.
func (uc *AnalyticsUseCase) Inventory(ctx context.Context) (*dto.InventoryAnalyticsResponse, error) {
	rows, err := uc.analyticsRepo.InventoryByCategory(ctx)
	if err != nil {
		return nil, fmt.Errorf("analytics: inventory: %w", err)
	}
	resp := &dto.InventoryAnalyticsResponse{
		Categories:      make([]dto.CategoryStockDTO, 0, len(rows)),
		TotalStockValue: decimal.Zero,
	}
	for _, r := range rows {
		resp.TotalStockValue = resp.TotalStockValue.Add(r.StockValue)
		resp.TotalLowStock += r.LowStockCount
		resp.Categories = append(resp.Categories, dto.CategoryStockDTO{
			Category:      r.Category,
			ProductCount:  r.ProductCount,
			TotalUnits:    r.TotalUnits,
			StockValue:    r.StockValue.Round(2),
			LowStockCount: r.LowStockCount,
		})
	}
	resp.TotalStockValue = resp.TotalStockValue.Round(2)
	return resp, nil
}

// Customers overview del período y segmentos por frecuencia de compra (en paralelo).
func (uc *AnalyticsUseCase) Customers(ctx context.Context, q dto.AnalyticsQuery) (*dto.CustomerAnalyticsResponse, error) {
	from, to, err := uc.period(q.DateRangeQuery)
	if err != nil {
		return nil, err
	}
	var (
		overview *repository.CustomerOverview
		segments []repository.CustomerSegment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		overview, err = uc.analyticsRepo.CustomerOverview(gctx, from, to)
		return err
	})
	g.Go(func() (err error) {
		segments, err = uc.analyticsRepo.CustomerSegments(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analytics: customers: %w", err)
	}
	resp := &dto.CustomerAnalyticsResponse{Segments: make([]dto.CustomerSegmentDTO, 0, len(segments))}
	if overview != nil {
		resp.TotalCustomers = overview.TotalCustomers
		resp.ActiveCustomers = overview.ActiveCustomers
		resp.NewCustomers = overview.NewCustomers
	}
	for _, s := range segments {
		resp.Segments = append(resp.Segments, dto.CustomerSegmentDTO{
			Segment:       s.Segment,
			CustomerCount: s.CustomerCount,
			Revenue:       s.Revenue.Round(2),
		})
	}
	return resp, nil
}

// Products top N por ingresos en el período.
func (uc *AnalyticsUseCase) Products(ctx context.Context, q dto.AnalyticsQuery) ([]dto.ProductPerformanceDTO, error) {
	from, to, err := uc.period(q.DateRangeQuery)
	if err != nil {
		return nil, err
	}
	limit := q.Limit
	if limit <= 0 {
		limit = defaultTopN
	}
	if limit > maxTopN {
		limit = maxTopN
	}
	rows, err := uc.analyticsRepo.ProductPerformance(ctx, from, to, limit)
	if err != nil {
		return nil, fmt.Errorf("analytics: products: %w", err)
	}
	out := make([]dto.ProductPerformanceDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ProductPerformanceDTO{
			ProductID: r.ProductID,
			Name:      r.Name,
			UnitsSold: r.UnitsSold,
			Revenue:   r.Revenue.Round(2),
			Orders:    r.Orders,
		})
	}
	return out, nil
}

// Communications volumen por canal y dirección en el período.
func (uc *AnalyticsUseCase) Communications(ctx context.Context, q dto.AnalyticsQuery) ([]dto.ChannelStatsDTO, error) {
	from, to, err := uc.period(q.DateRangeQuery)
	if err != nil {
		return nil, err
	}
	rows, err := uc.analyticsRepo.CommunicationStats(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("analytics: communications: %w", err)
	}
	out := make([]dto.ChannelStatsDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.ChannelStatsDTO{
			Channel:         r.Channel,
			Direction:       r.Direction,
			Total:           r.Total,
			AIHandled:       r.AIHandled,
			AvgResponseTime: r.AvgResponseTime.Round(2),
		})
	}
	return out, nil
}

// period resuelve el rango: sin fechas, los últimos 30 días hasta ahora.
func (uc *AnalyticsUseCase) period(q dto.DateRangeQuery) (time.Time, time.Time, error) {
	from, to, err := q.Parse()
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	end := uc.now()
	if to != nil {
		end = *to
	}
	start := end.AddDate(0, 0, -defaultRangeDays)
	if from != nil {
		start = *from
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: end_date before start_date", domain.ErrInvalidInput)
	}
	return start, end, nil
}
