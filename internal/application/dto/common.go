package dto

import (
	"fmt"
	"time"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

// PageRequest paginación 1-indexada para listados (query ?page=&limit=).
type PageRequest struct {
	Page  int `query:"page"`
	Limit int `query:"limit"`
}

// Normalize aplica defaults (page=1, limit=20) y el máximo de 100.
func (p PageRequest) Normalize() repository.Page {
	return repository.NewPage(p.Page, p.Limit)
}

// PageResponse respuesta de listados paginados.
type PageResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// NewPageResponse arma la respuesta; items nil se serializa como [].
func NewPageResponse[T any](items []T, total int, p repository.Page) PageResponse[T] {
	if items == nil {
		items = []T{}
	}
	return PageResponse[T]{Items: items, Total: total, Page: p.Page, Limit: p.Limit}
}

// ErrorResponse cuerpo de error HTTP. Details solo fuera de producción.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// SuccessResponse confirmación de mutaciones sin recurso que devolver.
type SuccessResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Data    any    `json:"data,omitempty"`
}

// Success construye una SuccessResponse con código SUCCESS.
func Success(message string, data any) SuccessResponse {
	return SuccessResponse{Code: "SUCCESS", Message: message, Data: data}
}

// DateRangeQuery rango de fechas (YYYY-MM-DD o RFC3339).
type DateRangeQuery struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// Parse interpreta el rango. Una fecha sin hora en end_date incluye todo ese día.
func (q DateRangeQuery) Parse() (from, to *time.Time, err error) {
	if q.StartDate != "" {
		t, _, err := parseDate(q.StartDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: start_date: %v", domain.ErrInvalidInput, err)
		}
		from = &t
	}
	if q.EndDate != "" {
		t, dateOnly, err := parseDate(q.EndDate)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: end_date: %v", domain.ErrInvalidInput, err)
		}
		if dateOnly {
			t = t.Add(24*time.Hour - time.Nanosecond)
		}
		to = &t
	}
	if from != nil && to != nil && to.Before(*from) {
		return nil, nil, fmt.Errorf("%w: end_date before start_date", domain.ErrInvalidInput)
	}
	return from, to, nil
}

func parseDate(s string) (time.Time, bool, error) {
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, false, fmt.Errorf("expected YYYY-MM-DD or RFC3339")
	}
	return t, false, nil
}
