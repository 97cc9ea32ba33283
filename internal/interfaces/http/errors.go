package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/pkg/logger"
)

// Códigos de error de la API.
const (
	CodeUnauthorized        = "UNAUTHORIZED"
	CodeForbidden           = "FORBIDDEN"
	CodeNotFound            = "NOT_FOUND"
	CodeBadRequest          = "BAD_REQUEST"
	CodeOfferLimitReached   = "OFFER_LIMIT_REACHED"
	CodeMinPurchaseRequired = "MIN_PURCHASE_REQUIRED"
	CodeInvalidTransition   = "INVALID_TRANSITION"
	CodeInsufficientStock   = "INSUFFICIENT_STOCK"
	CodeConflict            = "CONFLICT"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
	CodeTimeout             = "TIMEOUT"
	CodeServerError         = "SERVER_ERROR"
)

const serverErrorMessage = "Internal server error"

type errorMapping struct {
	target error
	status int
	code   string
}

// errorTable orden relevante: el primer errors.Is que coincide gana.
var errorTable = []errorMapping{
	{domain.ErrUnauthenticated, fiber.StatusUnauthorized, CodeUnauthorized},
	{domain.ErrForbidden, fiber.StatusForbidden, CodeForbidden},
	{domain.ErrNotFound, fiber.StatusNotFound, CodeNotFound},
	{domain.ErrOfferLimitReached, fiber.StatusBadRequest, CodeOfferLimitReached},
	{domain.ErrMinPurchaseRequired, fiber.StatusBadRequest, CodeMinPurchaseRequired},
	{domain.ErrInvalidTransition, fiber.StatusBadRequest, CodeInvalidTransition},
	{domain.ErrInsufficientStock, fiber.StatusBadRequest, CodeInsufficientStock},
	{domain.ErrInvalidInput, fiber.StatusBadRequest, CodeBadRequest},
	{domain.ErrEmailAlreadyExists, fiber.StatusConflict, CodeConflict},
	{domain.ErrDuplicate, fiber.StatusConflict, CodeConflict},
}

// MapError traduce un error a status HTTP y código. Los errores de dominio exponen su
// mensaje; el resto es SERVER_ERROR con mensaje genérico.
func MapError(err error) (int, dto.ErrorResponse) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: CodeBadRequest, Message: ve.Error(), Details: ve.Fields}
	}
	for _, m := range errorTable {
		if errors.Is(err, m.target) {
			return m.status, dto.ErrorResponse{Code: m.code, Message: publicMessage(err, m.target)}
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: fiberCode(fe.Code), Message: fe.Message}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: CodeServerError, Message: serverErrorMessage}
}

// publicMessage "invalid input: quantity must be > 0" → "quantity must be > 0".
func publicMessage(err, target error) string {
	msg := err.Error()
	prefix := target.Error() + ": "
	if i := strings.Index(msg, prefix); i >= 0 {
		msg = msg[i+len(prefix):]
	}
	if msg == "" {
		return target.Error()
	}
	return strings.ToUpper(msg[:1]) + msg[1:]
}

func fiberCode(status int) string {
	switch status {
	case fiber.StatusBadRequest, fiber.StatusUnprocessableEntity, fiber.StatusRequestEntityTooLarge:
		return CodeBadRequest
	case fiber.StatusUnauthorized:
		return CodeUnauthorized
	case fiber.StatusForbidden:
		return CodeForbidden
	case fiber.StatusNotFound, fiber.StatusMethodNotAllowed:
		return CodeNotFound
	case fiber.StatusTooManyRequests:
		return CodeTooManyRequests
	case fiber.StatusRequestTimeout, fiber.StatusGatewayTimeout, fiber.StatusServiceUnavailable:
		return CodeTimeout
	}
	if status >= 500 {
		return CodeServerError
	}
	return CodeBadRequest
}

// ErrorHandler fiber.ErrorHandler único de la aplicación. Los 5xx se registran con el
// error original; details solo fuera de producción.
func ErrorHandler(production bool, log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := MapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Str("request_id", requestID(c)).
				Msg("request failed")
			if !production && body.Code == CodeServerError {
				body.Details = err.Error()
			}
		}
		return c.Status(status).JSON(body)
	}
}
