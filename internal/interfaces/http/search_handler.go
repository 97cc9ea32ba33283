package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/search"
)

// SearchHandler búsquedas filtradas y paginadas.
type SearchHandler struct {
	uc *search.UseCase
}

func NewSearchHandler(uc *search.UseCase) *SearchHandler {
	return &SearchHandler{uc: uc}
}

// Products godoc
// @Summary      Buscar productos
// @Tags         search
// @Security     Bearer
// @Produce      json
// @Param        query        query  string  false  "Texto"
// @Param        category_id  query  string  false  "Categoría"
// @Param        min_price    query  string  false  "Precio mínimo"
// @Param        max_price    query  string  false  "Precio máximo"
// @Param        in_stock     query  bool    false  "Solo con stock"
// @Param        page         query  int     false  "Página"
// @Param        limit        query  int     false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.ProductResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /v1/search/products [get]
func (h *SearchHandler) Products(c *fiber.Ctx) error {
	var q dto.ProductSearchQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.Products(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Customers godoc
// @Summary      Buscar clientes
// @Tags         search
// @Security     Bearer
// @Produce      json
// @Param        query  query  string  false  "Nombre, email o teléfono"
// @Param        page   query  int     false  "Página"
// @Param        limit  query  int     false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.CustomerSearchResult]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/search/customers [get]
func (h *SearchHandler) Customers(c *fiber.Ctx) error {
	var q dto.CustomerSearchQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.Customers(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Orders godoc
// @Summary      Buscar órdenes
// @Tags         search
// @Security     Bearer
// @Produce      json
// @Param        query       query  string  false  "Número de orden, email o nombre"
// @Param        status      query  string  false  "Estado"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        page        query  int     false  "Página"
// @Param        limit       query  int     false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.OrderResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/search/orders [get]
func (h *SearchHandler) Orders(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.Orders(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
