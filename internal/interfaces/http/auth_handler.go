package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/auth"
	"github.com/jhoicas/engage-api/internal/application/dto"
)

// AuthHandler login, refresh, logout y alta/consulta de clientes.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      429   {object}  dto.ErrorResponse
// @Router       /v1/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Refresh godoc
// @Summary      Renovar access token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RefreshRequest  true  "refresh_token"
// @Success      200   {object}  dto.RefreshResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /v1/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	var in dto.RefreshRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.Refresh(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  Revoca el access token presentado y, si se envía, el refresh token.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LogoutRequest  false  "refresh_token opcional"
// @Success      200   {object}  dto.SuccessResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /v1/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	var in dto.LogoutRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	if err := h.uc.Logout(c.UserContext(), GetSession(c), in); err != nil {
		return err
	}
	return c.JSON(dto.Success("Logged out successfully", nil))
}

// RegisterClient godoc
// @Summary      Registrar cliente
// @Description  Sin password se genera una contraseña temporal que se devuelve una sola vez.
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterClientRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.RegisterClientResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /v1/auth/client [post]
func (h *AuthHandler) RegisterClient(c *fiber.Ctx) error {
	var in dto.RegisterClientRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.RegisterClient(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetClient godoc
// @Summary      Datos de contacto de un cliente
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Param        clientId  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.ClientResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/auth/client/{clientId} [get]
func (h *AuthHandler) GetClient(c *fiber.Ctx) error {
	id, err := paramUUID(c, "clientId")
	if err != nil {
		return err
	}
	out, err := h.uc.GetClient(c.UserContext(), actor(c), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateUser godoc
// @Summary      Cambiar rol o estado de un usuario
// @Tags         auth
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        userId  path  string                 true  "ID del usuario"
// @Param        body    body  dto.UpdateUserRequest  true  "Campos a cambiar"
// @Success      200  {object}  dto.UserResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/auth/users/{userId} [patch]
func (h *AuthHandler) UpdateUser(c *fiber.Ctx) error {
	id, err := paramUUID(c, "userId")
	if err != nil {
		return err
	}
	var in dto.UpdateUserRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateUser(c.UserContext(), actor(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
