package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/orders"
)

// OrderHandler pedidos: alta, consulta, estado, cancelación y comprobante.
type OrderHandler struct {
	uc *orders.UseCase
}

func NewOrderHandler(uc *orders.UseCase) *OrderHandler {
	return &OrderHandler{uc: uc}
}

// List godoc
// @Summary      Listar órdenes
// @Description  Un customer solo ve sus propias órdenes.
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        status      query  string  false  "pending|processing|completed|cancelled"
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Param        page        query  int     false  "Página"
// @Param        limit       query  int     false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.OrderResponse]
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /v1/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var q dto.OrderListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), actor(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear orden
// @Description  Descuenta stock con bloqueo de fila; una línea sin stock suficiente falla con INSUFFICIENT_STOCK.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "Ítems y direcciones"
// @Success      201   {object}  dto.OrderResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Get godoc
// @Summary      Obtener orden con ítems
// @Tags         orders
// @Security     Bearer
// @Produce      json
// @Param        orderId  path  string  true  "ID de la orden"
// @Success      200  {object}  dto.OrderResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/orders/{orderId} [get]
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "orderId")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), actor(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orderId  path  string                        true  "ID de la orden"
// @Param        body     body  dto.UpdateOrderStatusRequest  true  "Nuevo estado"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/orders/{orderId}/status [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	id, err := paramUUID(c, "orderId")
	if err != nil {
		return err
	}
	var in dto.UpdateOrderStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), actor(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Cancel godoc
// @Summary      Cancelar orden
// @Description  Solo órdenes pending o processing; repone el stock.
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        orderId  path  string                  true   "ID de la orden"
// @Param        body     body  dto.CancelOrderRequest  false  "Motivo"
// @Success      200  {object}  dto.OrderResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/orders/{orderId}/cancel [post]
func (h *OrderHandler) Cancel(c *fiber.Ctx) error {
	id, err := paramUUID(c, "orderId")
	if err != nil {
		return err
	}
	var in dto.CancelOrderRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Cancel(c.UserContext(), actor(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Receipt godoc
// @Summary      Comprobante PDF de la orden
// @Tags         orders
// @Security     Bearer
// @Produce      application/pdf
// @Param        orderId  path  string  true  "ID de la orden"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/orders/{orderId}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	id, err := paramUUID(c, "orderId")
	if err != nil {
		return err
	}
	pdf, filename, err := h.uc.Receipt(c.UserContext(), actor(c), id)
	if err != nil {
		return err
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `inline; filename="`+filename+`"`)
	return c.Send(pdf)
}
