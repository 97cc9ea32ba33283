package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/engage-api/internal/application/analytics"
)

// DashboardHandler maneja los endpoints del módulo de Dashboard.
type DashboardHandler struct {
	uc *appanalytics.DashboardUseCase
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc *appanalytics.DashboardUseCase) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// Overview godoc
// @Summary      KPIs del dashboard
// @Description  total_orders, total_revenue (órdenes completadas), total_customers, low_stock_products.
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DashboardOverview
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/dashboard/overview [get]
func (h *DashboardHandler) Overview(c *fiber.Ctx) error {
	out, err := h.uc.Overview(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// RecentActivity godoc
// @Summary      Actividad reciente
// @Tags         dashboard
// @Security     Bearer
// @Produce      json
// @Success      200  {array}   dto.ActivityDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/dashboard/recent-activity [get]
func (h *DashboardHandler) RecentActivity(c *fiber.Ctx) error {
	out, err := h.uc.RecentActivity(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}
