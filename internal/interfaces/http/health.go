package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// healthCheckTimeout tope por dependencia.
const healthCheckTimeout = 2 * time.Second

// HealthResponse cuerpo de /health.
type HealthResponse struct {
	Status  string            `json:"status"`
	Version string            `json:"version"`
	Checks  map[string]string `json:"checks,omitempty"`
}

// HealthCheck dependencia verificada en cada /health.
type HealthCheck struct {
	Name string
	Ping func(ctx context.Context) error
}

// Health godoc
// @Summary      Estado del servicio
// @Description  Verifica las dependencias configuradas; si alguna falla responde 503 con status degraded.
// @Tags         platform
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func Health(version string, checks ...HealthCheck) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out := HealthResponse{Status: "ok", Version: version}
		if len(checks) == 0 {
			return c.JSON(out)
		}
		out.Checks = make(map[string]string, len(checks))
		for _, hc := range checks {
			ctx, cancel := context.WithTimeout(c.UserContext(), healthCheckTimeout)
			err := hc.Ping(ctx)
			cancel()
			if err != nil {
				out.Status = "degraded"
				out.Checks[hc.Name] = err.Error()
				continue
			}
			out.Checks[hc.Name] = "ok"
		}
		if out.Status != "ok" {
			return c.Status(fiber.StatusServiceUnavailable).JSON(out)
		}
		return c.JSON(out)
	}
}
