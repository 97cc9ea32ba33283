package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/ai"
	"github.com/jhoicas/engage-api/internal/application/dto"
)

// AIHandler agentes de IA, procesamiento de mensajes e historial de interacciones.
type AIHandler struct {
	uc *ai.UseCase
}

// NewAIHandler construye el handler.
func NewAIHandler(uc *ai.UseCase) *AIHandler {
	return &AIHandler{uc: uc}
}

// ListAgents godoc
// @Summary      Listar agentes
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"
// @Param        limit  query  int  false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.AIAgentResponse]
// @Router       /v1/ai/agents [get]
func (h *AIHandler) ListAgents(c *fiber.Ctx) error {
	var q dto.PageRequest
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.ListAgents(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// GetAgent godoc
// @Summary      Obtener agente
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Param        agentId  path  string  true  "ID del agente"
// @Success      200  {object}  dto.AIAgentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/ai/agents/{agentId} [get]
func (h *AIHandler) GetAgent(c *fiber.Ctx) error {
	id, err := paramUUID(c, "agentId")
	if err != nil {
		return err
	}
	out, err := h.uc.GetAgent(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateAgent godoc
// @Summary      Crear agente
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AIAgentRequest  true  "Datos del agente"
// @Success      201   {object}  dto.AIAgentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /v1/ai/agents [post]
func (h *AIHandler) CreateAgent(c *fiber.Ctx) error {
	var in dto.AIAgentRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateAgent(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// UpdateAgent godoc
// @Summary      Actualizar agente
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        agentId  path  string              true  "ID del agente"
// @Param        body     body  dto.AIAgentRequest  true  "Datos del agente"
// @Success      200  {object}  dto.AIAgentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/ai/agents/{agentId} [put]
func (h *AIHandler) UpdateAgent(c *fiber.Ctx) error {
	id, err := paramUUID(c, "agentId")
	if err != nil {
		return err
	}
	var in dto.AIAgentRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateAgent(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteAgent godoc
// @Summary      Eliminar agente
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Param        agentId  path  string  true  "ID del agente"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/ai/agents/{agentId} [delete]
func (h *AIHandler) DeleteAgent(c *fiber.Ctx) error {
	id, err := paramUUID(c, "agentId")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteAgent(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.Success("Agent deleted successfully", nil))
}

// Process godoc
// @Summary      Procesar mensaje con un agente
// @Description  Elige el proveedor según el modelo del agente (placeholder si no hay credenciales)
// @Description  y registra la interacción. Timeout interno de 10 s.
// @Tags         ai
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ProcessMessageRequest  true  "message, agent_id, context"
// @Success      200   {object}  dto.ProcessMessageResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /v1/ai/process [post]
func (h *AIHandler) Process(c *fiber.Ctx) error {
	var in dto.ProcessMessageRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Process(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Interactions godoc
// @Summary      Interacciones del usuario
// @Tags         ai
// @Security     Bearer
// @Produce      json
// @Param        page   query  int  false  "Página"
// @Param        limit  query  int  false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.AIInteractionResponse]
// @Router       /v1/ai/interactions [get]
func (h *AIHandler) Interactions(c *fiber.Ctx) error {
	var q dto.PageRequest
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.Interactions(c.UserContext(), actor(c), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
