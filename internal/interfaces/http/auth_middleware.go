package http

import (
	"context"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/auth"
	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/domain"
)

// localSession clave de c.Locals con la *auth.Session del request.
const localSession = "session"

// authenticator contrato mínimo del middleware; lo implementa *auth.AuthUseCase.
type authenticator interface {
	Authenticate(ctx context.Context, token string) (*auth.Session, error)
}

// AuthMiddleware valida el Bearer Token y recarga el principal desde la base en cada
// request (usuario borrado o inactivo → 401 aunque el token sea válido).
func AuthMiddleware(a authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return fmt.Errorf("%w: no token provided", domain.ErrUnauthenticated)
		}
		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return fmt.Errorf("%w: expected Bearer <token>", domain.ErrUnauthenticated)
		}
		s, err := a.Authenticate(c.UserContext(), strings.TrimSpace(parts[1]))
		if err != nil {
			return err
		}
		c.Locals(localSession, s)
		return c.Next()
	}
}

// Authorize corre después de AuthMiddleware y antes del handler: si el rol no puede
// invocar op responde 403 sin tocar el recurso.
func Authorize(op authz.Operation) fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := GetSession(c)
		if s == nil {
			return fmt.Errorf("%w: authentication required", domain.ErrUnauthenticated)
		}
		if err := authz.Check(op, s.User.Role); err != nil {
			return err
		}
		return c.Next()
	}
}

// GetSession sesión del request (nil en rutas públicas).
func GetSession(c *fiber.Ctx) *auth.Session {
	s, _ := c.Locals(localSession).(*auth.Session)
	return s
}

// actor principal del request para los casos de uso.
func actor(c *fiber.Ctx) authz.Actor {
	if s := GetSession(c); s != nil {
		return s.Actor()
	}
	return authz.Actor{}
}
