package http

import (
	"errors"
	"fmt"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/engage-api/internal/domain"
)

func TestMapError(t *testing.T) {
	cases := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{"limite de oferta", fmt.Errorf("%w: offer already used", domain.ErrOfferLimitReached), 400, CodeOfferLimitReached, "Offer already used"},
		{"compra minima", domain.ErrMinPurchaseRequired, 400, CodeMinPurchaseRequired, ""},
		{"transicion", fmt.Errorf("cancel: %w: delivered -> cancelled", domain.ErrInvalidTransition), 400, CodeInvalidTransition, "Delivered -> cancelled"},
		{"stock", fmt.Errorf("%w: Mug", domain.ErrInsufficientStock), 400, CodeInsufficientStock, "Mug"},
		{"duplicado", domain.ErrEmailAlreadyExists, 409, CodeConflict, ""},
		{"no encontrado", fmt.Errorf("get: %w", domain.ErrNotFound), 404, CodeNotFound, ""},
		{"fiber 404", fiber.ErrNotFound, 404, CodeNotFound, "Not Found"},
		{"fiber 429", fiber.NewError(fiber.StatusTooManyRequests, "slow down"), 429, CodeTooManyRequests, "slow down"},
		{"timeout", fiber.NewError(fiber.StatusServiceUnavailable, "request timed out"), 503, CodeTimeout, "request timed out"},
		{"interno", errors.New("pq: connection refused"), 500, CodeServerError, serverErrorMessage},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, body := MapError(tc.err)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.code, body.Code)
			if tc.message != "" {
				assert.Equal(t, tc.message, body.Message)
			}
		})
	}
}

func TestMapError_Validacion(t *testing.T) {
	err := &ValidationError{Fields: []FieldError{{Field: "email", Rule: "email"}}}
	status, body := MapError(fmt.Errorf("bind: %w", err))
	assert.Equal(t, 400, status)
	assert.Equal(t, CodeBadRequest, body.Code)
	assert.Equal(t, err.Fields, body.Details)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
}

func TestTimeout_DeadlineA503(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: func(c *fiber.Ctx, err error) error {
		status, body := MapError(err)
		return c.Status(status).JSON(body)
	}})
	app.Get("/slow", Timeout(time.Millisecond), func(c *fiber.Ctx) error {
		<-c.UserContext().Done()
		return c.UserContext().Err()
	})
	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/slow", nil), -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
}
