package domain

import "errors"

// Errores de dominio (sin dependencias externas). La capa HTTP los traduce a status y código.
var (
	ErrNotFound            = errors.New("resource not found")
	ErrUnauthenticated     = errors.New("authentication required")
	ErrForbidden           = errors.New("insufficient permissions")
	ErrInvalidInput        = errors.New("invalid input")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrOfferLimitReached   = errors.New("offer usage limit reached")
	ErrMinPurchaseRequired = errors.New("minimum purchase amount not met")
	ErrInsufficientStock   = errors.New("insufficient stock")
	ErrEmailAlreadyExists  = errors.New("email already registered")
	ErrDuplicate           = errors.New("duplicate resource")
)
