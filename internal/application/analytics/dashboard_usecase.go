// Package analytics contiene los casos de uso de reportes (ventas, inventario, clientes,
// productos, comunicaciones) y el dashboard. Todo es de solo lectura.
package analytics

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

const recentActivityLimit = 10

// DashboardUseCase KPIs generales y feed de actividad reciente.
type DashboardUseCase struct {
	analyticsRepo repository.AnalyticsRepository
}

// NewDashboardUseCase construye el caso de uso.
func NewDashboardUseCase(analyticsRepo repository.AnalyticsRepository) *DashboardUseCase {
	return &DashboardUseCase{analyticsRepo: analyticsRepo}
}

// Overview ejecuta los cuatro conteos en paralelo; el primer error cancela el resto.
func (uc *DashboardUseCase) Overview(ctx context.Context) (*dto.DashboardOverview, error) {
	var (
		orders, customers, lowStock int
		revenue                     decimal.Decimal
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		orders, err = uc.analyticsRepo.CountOrders(gctx)
		return wrap("total orders", err)
	})
	g.Go(func() (err error) {
		revenue, err = uc.analyticsRepo.CompletedRevenue(gctx)
		return wrap("revenue", err)
	})
	g.Go(func() (err error) {
		customers, err = uc.analyticsRepo.CountCustomers(gctx)
		return wrap("customers", err)
	})
	g.Go(func() (err error) {
		lowStock, err = uc.analyticsRepo.CountLowStock(gctx)
		return wrap("low stock", err)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &dto.DashboardOverview{
		TotalOrders:      orders,
		TotalRevenue:     revenue.Round(2),
		TotalCustomers:   customers,
		LowStockProducts: lowStock,
	}, nil
}

// RecentActivity últimos eventos de órdenes y productos.
func (uc *DashboardUseCase) RecentActivity(ctx context.Context) ([]dto.ActivityDTO, error) {
	events, err := uc.analyticsRepo.RecentActivity(ctx, recentActivityLimit)
	if err != nil {
		return nil, wrap("recent activity", err)
	}
	out := make([]dto.ActivityDTO, 0, len(events))
	for _, e := range events {
		out = append(out, dto.ActivityDTO{
			Type:        e.Type,
			ReferenceID: e.ReferenceID,
			Description: e.Description,
			Status:      e.Status,
			ActorEmail:  e.ActorEmail,
			CreatedAt:   e.CreatedAt,
		})
	}
	return out, nil
}

func wrap(what string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("dashboard: %s: %w", what, err)
}
