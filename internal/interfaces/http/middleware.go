package http

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/pkg/logger"
	"github.com/jhoicas/engage-api/pkg/metrics"
)

func requestID(c *fiber.Ctx) string {
	if id, ok := c.Locals("requestid").(string); ok {
		return id
	}
	return c.GetRespHeader(fiber.HeaderXRequestID)
}

// routeLabel patrón de la ruta ("/v1/orders/:id"); evita cardinalidad por ids.
func routeLabel(c *fiber.Ctx) string {
	if r := c.Route(); r != nil && r.Path != "" {
		return r.Path
	}
	return "unmatched"
}

// statusOf status final: si el handler devolvió error, el que le asignará el ErrorHandler.
func statusOf(c *fiber.Ctx, err error) int {
	if err != nil {
		status, _ := MapError(err)
		return status
	}
	return c.Response().StatusCode()
}

// RequestLogger una línea por request al terminar, con método, ruta, status, latencia e id.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := statusOf(c, err)

		ev := log.Info()
		if status >= fiber.StatusInternalServerError {
			ev = log.Warn()
		}
		ev.Str("method", c.Method()).
			Str("route", routeLabel(c)).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Str("request_id", requestID(c)).
			Str("ip", c.IP()).
			Msg("request")
		return err
	}
}

// Metrics alimenta los colectores HTTP de Prometheus.
func Metrics(m *metrics.HTTP) fiber.Handler {
	return func(c *fiber.Ctx) error {
		method := c.Method()
		m.InFlight.WithLabelValues(method).Inc()
		defer m.InFlight.WithLabelValues(method).Dec()

		start := time.Now()
		err := c.Next()
		status := strconv.Itoa(statusOf(c, err))
		route := routeLabel(c)
		m.Requests.WithLabelValues(method, route, status).Inc()
		m.Duration.WithLabelValues(method, route, status).Observe(time.Since(start).Seconds())
		return err
	}
}

// Timeout acota el contexto de I/O del request. Un handler que excede el plazo termina
// con context.DeadlineExceeded, que se responde 503.
func Timeout(d time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if d <= 0 {
			return c.Next()
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), d)
		defer cancel()
		c.SetUserContext(ctx)
		err := c.Next()
		if err != nil && errors.Is(err, context.DeadlineExceeded) {
			return fiber.NewError(fiber.StatusServiceUnavailable, "request timed out")
		}
		return err
	}
}
