package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/engage-api/internal/application/analytics"
	"github.com/jhoicas/engage-api/internal/application/dto"
)

// AnalyticsHandler reportes agregados (admin/analyst).
type AnalyticsHandler struct {
	uc *appanalytics.AnalyticsUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.AnalyticsUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc}
}

func analyticsQuery(c *fiber.Ctx) (dto.AnalyticsQuery, error) {
	var q dto.AnalyticsQuery
	err := bindQuery(c, &q)
	return q, err
}

// Sales godoc
// @Summary      Ventas completadas por intervalo
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (default: hace 30 días)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Param        group_by    query  string  false  "hour|day|week|month"  default(day)
// @Success      200  {object}  dto.SalesAnalyticsResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/analytics/sales [get]
func (h *AnalyticsHandler) Sales(c *fiber.Ctx) error {
	q, err := analyticsQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Sales(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Inventory godoc
// @Summary      Inventario por categoría
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventoryAnalyticsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/analytics/inventory [get]
func (h *AnalyticsHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.Inventory(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Customers godoc
// @Summary      Clientes: overview y segmentos
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.CustomerAnalyticsResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/analytics/customers [get]
func (h *AnalyticsHandler) Customers(c *fiber.Ctx) error {
	q, err := analyticsQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Customers(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ProductPerformance godoc
// @Summary      Top de productos por ingresos
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        limit       query  int     false  "Top N (máx 100)"  default(10)
// @Success      200  {array}   dto.ProductPerformanceDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/analytics/products/performance [get]
func (h *AnalyticsHandler) ProductPerformance(c *fiber.Ctx) error {
	q, err := analyticsQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Products(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Communications godoc
// @Summary      Comunicaciones por canal y dirección
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.ChannelStatsDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/analytics/communications [get]
func (h *AnalyticsHandler) Communications(c *fiber.Ctx) error {
	q, err := analyticsQuery(c)
	if err != nil {
		return err
	}
	out, err := h.uc.Communications(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
