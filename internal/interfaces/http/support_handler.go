package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/support"
)

// SupportHandler tickets de soporte y FAQ.
type SupportHandler struct {
	uc *support.UseCase
}

func NewSupportHandler(uc *support.UseCase) *SupportHandler {
	return &SupportHandler{uc: uc}
}

// ListTickets godoc
// @Summary      Listar tickets
// @Description  Admin y support ven todos; el resto solo los propios. Orden: prioridad alta primero, luego más recientes.
// @Tags         support
// @Security     Bearer
// @Produce      json
// @Param        status    query  string  false  "open|closed"
// @Param        priority  query  string  false  "high|medium|low"
// @Param        page      query  int     false  "Página"
// @Param        limit     query  int     false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.TicketResponse]
// @Router       /v1/support/tickets [get]
func (h *SupportHandler) ListTickets(c *fiber.Ctx) error {
	var q dto.TicketListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.ListTickets(c.UserContext(), actor(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateTicket godoc
// @Summary      Crear ticket
// @Tags         support
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTicketRequest  true  "subject, description, category, priority"
// @Success      201   {object}  dto.TicketResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/support/tickets [post]
func (h *SupportHandler) CreateTicket(c *fiber.Ctx) error {
	var in dto.CreateTicketRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateTicket(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetTicket godoc
// @Summary      Obtener ticket con mensajes
// @Tags         support
// @Security     Bearer
// @Produce      json
// @Param        ticketId  path  string  true  "ID del ticket"
// @Success      200  {object}  dto.TicketResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/support/tickets/{ticketId} [get]
func (h *SupportHandler) GetTicket(c *fiber.Ctx) error {
	id, err := paramUUID(c, "ticketId")
	if err != nil {
		return err
	}
	out, err := h.uc.GetTicket(c.UserContext(), actor(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateTicketStatus godoc
// @Summary      Cambiar estado del ticket
// @Tags         support
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        ticketId  path  string                         true  "ID del ticket"
// @Param        body      body  dto.UpdateTicketStatusRequest  true  "open|closed"
// @Success      200  {object}  dto.TicketResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/support/tickets/{ticketId}/status [put]
func (h *SupportHandler) UpdateTicketStatus(c *fiber.Ctx) error {
	id, err := paramUUID(c, "ticketId")
	if err != nil {
		return err
	}
	var in dto.UpdateTicketStatusRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateTicketStatus(c.UserContext(), actor(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AddMessage godoc
// @Summary      Agregar mensaje al ticket
// @Tags         support
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        ticketId  path  string                       true  "ID del ticket"
// @Param        body      body  dto.AddTicketMessageRequest  true  "message"
// @Success      201  {object}  dto.TicketMessageResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/support/tickets/{ticketId}/messages [post]
func (h *SupportHandler) AddMessage(c *fiber.Ctx) error {
	id, err := paramUUID(c, "ticketId")
	if err != nil {
		return err
	}
	var in dto.AddTicketMessageRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AddMessage(c.UserContext(), actor(c), id, in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// FAQCategories godoc
// @Summary      Categorías de FAQ
// @Tags         support
// @Produce      json
// @Success      200  {array}  string
// @Router       /v1/support/faq/categories [get]
func (h *SupportHandler) FAQCategories(c *fiber.Ctx) error {
	out, err := h.uc.FAQCategories(c.UserContext())
	if err != nil {
		return err
	}
	if out == nil {
		out = []string{}
	}
	return c.JSON(out)
}

// ListFAQ godoc
// @Summary      Listar FAQ activas
// @Tags         support
// @Produce      json
// @Param        category  query  string  false  "Categoría"
// @Param        page      query  int     false  "Página"
// @Param        limit     query  int     false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.FAQResponse]
// @Router       /v1/support/faq [get]
func (h *SupportHandler) ListFAQ(c *fiber.Ctx) error {
	var q dto.FAQListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.ListFAQ(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateFAQ godoc
// @Summary      Crear FAQ
// @Tags         support
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.FAQRequest  true  "question, answer, category"
// @Success      201   {object}  dto.FAQResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/support/faq [post]
func (h *SupportHandler) CreateFAQ(c *fiber.Ctx) error {
	var in dto.FAQRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateFAQ(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateFAQ godoc
// @Summary      Actualizar FAQ
// @Tags         support
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        faqId  path  string          true  "ID de la FAQ"
// @Param        body   body  dto.FAQRequest  true  "question, answer, category"
// @Success      200  {object}  dto.FAQResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/support/faq/{faqId} [put]
func (h *SupportHandler) UpdateFAQ(c *fiber.Ctx) error {
	id, err := paramUUID(c, "faqId")
	if err != nil {
		return err
	}
	var in dto.FAQRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateFAQ(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteFAQ godoc
// @Summary      Eliminar FAQ
// @Tags         support
// @Security     Bearer
// @Produce      json
// @Param        faqId  path  string  true  "ID de la FAQ"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/support/faq/{faqId} [delete]
func (h *SupportHandler) DeleteFAQ(c *fiber.Ctx) error {
	id, err := paramUUID(c, "faqId")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteFAQ(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.Success("FAQ deleted successfully", nil))
}
