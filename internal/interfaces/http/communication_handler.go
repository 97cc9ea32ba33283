package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/communication"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// CommunicationHandler envíos salientes (llamadas, SMS, email, redes sociales) y su log.
type CommunicationHandler struct {
	uc *communication.UseCase
}

func NewCommunicationHandler(uc *communication.UseCase) *CommunicationHandler {
	return &CommunicationHandler{uc: uc}
}

var (
	callChannels   = []string{entity.ChannelCall}
	smsChannels    = []string{entity.ChannelSMS}
	emailChannels  = []string{entity.ChannelEmail}
	socialChannels = entity.SocialChannels
)

// InitiateCall godoc
// @Summary      Iniciar llamada
// @Tags         communication
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.InitiateCallRequest  true  "phone_number, customer_id, notes"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/communication/calls [post]
func (h *CommunicationHandler) InitiateCall(c *fiber.Ctx) error {
	var in dto.InitiateCallRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.InitiateCall(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListCalls godoc
// @Summary      Log de llamadas
// @Tags         communication
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"
// @Param        limit  query  int  false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.MessageResponse]
// @Router       /v1/communication/calls [get]
func (h *CommunicationHandler) ListCalls(c *fiber.Ctx) error {
	return h.list(c, callChannels)
}

// GetCall godoc
// @Summary      Detalle de una llamada
// @Tags         communication
// @Security     Bearer
// @Produce      json
// @Param        callId  path  string  true  "ID de la llamada"
// @Success      200  {object}  dto.MessageResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/communication/calls/{callId} [get]
func (h *CommunicationHandler) GetCall(c *fiber.Ctx) error {
	id, err := paramUUID(c, "callId")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), callChannels, id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// SendSMS godoc
// @Summary      Enviar SMS
// @Tags         communication
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendSMSRequest  true  "phone_number, message"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/communication/sms [post]
func (h *CommunicationHandler) SendSMS(c *fiber.Ctx) error {
	var in dto.SendSMSRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SendSMS(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSMS godoc
// @Summary      Log de SMS
// @Tags         communication
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"
// @Param        limit  query  int  false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.MessageResponse]
// @Router       /v1/communication/sms [get]
func (h *CommunicationHandler) ListSMS(c *fiber.Ctx) error {
	return h.list(c, smsChannels)
}

// SendEmail godoc
// @Summary      Enviar email
// @Tags         communication
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendEmailRequest  true  "to, subject, body"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/communication/email [post]
func (h *CommunicationHandler) SendEmail(c *fiber.Ctx) error {
	var in dto.SendEmailRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SendEmail(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListEmail godoc
// @Summary      Log de emails
// @Tags         communication
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"
// @Param        limit  query  int  false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.MessageResponse]
// @Router       /v1/communication/email [get]
func (h *CommunicationHandler) ListEmail(c *fiber.Ctx) error {
	return h.list(c, emailChannels)
}

// SendSocial godoc
// @Summary      Mensaje en red social
// @Tags         communication
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SendSocialRequest  true  "platform, recipient, message"
// @Success      201   {object}  dto.MessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/communication/social [post]
// @Router       /v1/communication/socials/message [post]
func (h *CommunicationHandler) SendSocial(c *fiber.Ctx) error {
	var in dto.SendSocialRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.SendSocial(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSocial godoc
// @Summary      Log de mensajes en redes sociales
// @Tags         communication
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"
// @Param        limit  query  int  false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.MessageResponse]
// @Router       /v1/communication/social [get]
// @Router       /v1/communication/socials/message [get]
func (h *CommunicationHandler) ListSocial(c *fiber.Ctx) error {
	return h.list(c, socialChannels)
}

func (h *CommunicationHandler) list(c *fiber.Ctx, channels []string) error {
	var q dto.PageRequest
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), channels, q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
