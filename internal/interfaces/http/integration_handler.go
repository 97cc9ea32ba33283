package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/integrations"
)

// IntegrationHandler integraciones con terceros (admin).
type IntegrationHandler struct {
	uc *integrations.UseCase
}

func NewIntegrationHandler(uc *integrations.UseCase) *IntegrationHandler {
	return &IntegrationHandler{uc: uc}
}

// List godoc
// @Summary      Listar integraciones
// @Tags         integrations
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"
// @Param        limit  query  int  false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.IntegrationResponse]
// @Router       /v1/integrations [get]
func (h *IntegrationHandler) List(c *fiber.Ctx) error {
	var q dto.PageRequest
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear integración
// @Tags         integrations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.IntegrationRequest  true  "name, type, config"
// @Success      201   {object}  dto.IntegrationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/integrations [post]
func (h *IntegrationHandler) Create(c *fiber.Ctx) error {
	var in dto.IntegrationRequest
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
// @Summary      Obtener integración
// @Tags         integrations
// @Security     Bearer
// @Produce      json
// @Param        integrationId  path  string  true  "ID de la integración"
// @Success      200  {object}  dto.IntegrationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/integrations/{integrationId} [get]
func (h *IntegrationHandler) Get(c *fiber.Ctx) error {
	id, err := paramUUID(c, "integrationId")
	if err != nil {
		return err
	}
	out, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar integración
// @Tags         integrations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        integrationId  path  string                  true  "ID de la integración"
// @Param        body           body  dto.IntegrationRequest  true  "name, type, config"
// @Success      200  {object}  dto.IntegrationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/integrations/{integrationId} [put]
func (h *IntegrationHandler) Update(c *fiber.Ctx) error {
	id, err := paramUUID(c, "integrationId")
	if err != nil {
		return err
	}
	var in dto.IntegrationRequest
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
// @Summary      Eliminar integración
// @Tags         integrations
// @Security     Bearer
// @Produce      json
// @Param        integrationId  path  string  true  "ID de la integración"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/integrations/{integrationId} [delete]
func (h *IntegrationHandler) Delete(c *fiber.Ctx) error {
	id, err := paramUUID(c, "integrationId")
	if err != nil {
		return err
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.Success("Integration deleted successfully", nil))
}

// Test godoc
// @Summary      Probar conexión
// @Description  GET a config.url con timeout de 5 s si existe; el resultado queda en el log de la integración.
// @Tags         integrations
// @Security     Bearer
// @Produce      json
// @Param        integrationId  path  string  true  "ID de la integración"
// @Success      200  {object}  dto.IntegrationTestResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/integrations/{integrationId}/test [post]
func (h *IntegrationHandler) Test(c *fiber.Ctx) error {
	id, err := paramUUID(c, "integrationId")
	if err != nil {
		return err
	}
	out, err := h.uc.Test(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Log de la integración
// @Tags         integrations
// @Security     Bearer
// @Produce      json
// @Param        integrationId  path   string  true   "ID de la integración"
// @Param        page           query  int     false  "Página"
// @Param        limit          query  int     false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.IntegrationLogResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/integrations/{integrationId}/logs [get]
func (h *IntegrationHandler) Logs(c *fiber.Ctx) error {
	id, err := paramUUID(c, "integrationId")
	if err != nil {
		return err
	}
	var q dto.PageRequest
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.Logs(c.UserContext(), id, q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Feed godoc
// @Summary      Feed XML de productos
// @Description  Solo integraciones product_feed activas. ETag = SHA-256 del XML canónico; If-None-Match responde 304.
// @Tags         integrations
// @Security     Bearer
// @Produce      application/xml
// @Param        integrationId  path  string  true  "ID de la integración"
// @Success      200  {string}  string
// @Success      304  {string}  string
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/integrations/{integrationId}/feed [get]
func (h *IntegrationHandler) Feed(c *fiber.Ctx) error {
	id, err := paramUUID(c, "integrationId")
	if err != nil {
		return err
	}
	feed, err := h.uc.Feed(c.UserContext(), id)
	if err != nil {
		return err
	}
	etag := `"` + feed.Digest + `"`
	c.Set(fiber.HeaderETag, etag)
	if c.Get(fiber.HeaderIfNoneMatch) == etag {
		return c.SendStatus(fiber.StatusNotModified)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationXMLCharsetUTF8)
	return c.Send(feed.XML)
}
