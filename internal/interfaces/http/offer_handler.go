package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/offers"
)

// OfferHandler ofertas, validación, redención e historial.
type OfferHandler struct {
	uc *offers.UseCase
}

func NewOfferHandler(uc *offers.UseCase) *OfferHandler {
	return &OfferHandler{uc: uc}
}

// List godoc
// @Summary      Listar ofertas
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Param        active  query  string  false  "true|false"
// @Param        type    query  string  false  "percentage|fixed"
// @Param        page    query  int     false  "Página"
// @Param        limit   query  int     false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.OfferResponse]
// @Router       /v1/offers [get]
func (h *OfferHandler) List(c *fiber.Ctx) error {
	var q dto.OfferListQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Get godoc
// @Summary      Obtener oferta
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Param        offerId  path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.OfferResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/offers/{offerId} [get]
func (h *OfferHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "offerId")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear oferta
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOfferRequest  true  "Datos de la oferta"
// @Success      201   {object}  dto.OfferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /v1/offers [post]
func (h *OfferHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOfferRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Actualizar oferta (parcial)
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        offerId  path  string                  true  "ID de la oferta"
// @Param        body     body  dto.UpdateOfferRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.OfferResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/offers/{offerId} [put]
func (h *OfferHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "offerId")
	if err != nil {
		return err
	}
	var in dto.UpdateOfferRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar oferta
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Param        offerId  path  string  true  "ID de la oferta"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/offers/{offerId} [delete]
func (h *OfferHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "offerId")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.Success("Offer deleted successfully", nil))
}

// Validate godoc
// @Summary      Validar código de oferta
// @Description  Calcula el descuento sobre amount sin registrar el uso.
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ValidateOfferRequest  true  "code, amount"
// @Success      200   {object}  dto.ValidateOfferResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/offers/validate [post]
func (h *OfferHandler) Validate(c *fiber.Ctx) error {
	var in dto.ValidateOfferRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Validate(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Redeem godoc
// @Summary      Redimir oferta
// @Description  Revalida bajo bloqueo de fila y registra el uso para el principal.
// @Tags         offers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RedeemOfferRequest  true  "code, amount, order_id"
// @Success      201   {object}  dto.RedemptionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/offers/redeem [post]
func (h *OfferHandler) Redeem(c *fiber.Ctx) error {
	var in dto.RedeemOfferRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Redeem(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UserHistory godoc
// @Summary      Historial de redenciones de un usuario
// @Tags         offers
// @Security     Bearer
// @Produce      json
// @Param        userId  path   string  true   "ID del usuario"
// @Param        page    query  int     false  "Página"
// @Param        limit   query  int     false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.RedemptionResponse]
// @Failure      403  {object}  dto.ErrorResponse
// @Router       /v1/offers/user/{userId} [get]
func (h *OfferHandler) UserHistory(c *fiber.Ctx) error {
	id, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}
	var q dto.PageRequest
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.UserHistory(c.UserContext(), actor(c), id, q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
