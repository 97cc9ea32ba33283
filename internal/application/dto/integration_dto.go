package dto

import (
	"encoding/json"
	"time"
)

// IntegrationRequest alta/edición de integración.
type IntegrationRequest struct {
	Name     string          `json:"name" validate:"required,max=255"`
	Type     string          `json:"type" validate:"required,max=50"`
	Config   json.RawMessage `json:"config" swaggertype:"object"`
	IsActive *bool           `json:"is_active"`
}

// IntegrationResponse integración para la API.
type IntegrationResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	Type       string          `json:"type"`
	Config     json.RawMessage `json:"config" swaggertype:"object"`
	IsActive   bool            `json:"is_active"`
	LastTestAt *time.Time      `json:"last_test_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// IntegrationTestDetails detalle del test de conectividad.
type IntegrationTestDetails struct {
	Type       string    `json:"type"`
	Timestamp  time.Time `json:"timestamp"`
	Endpoint   string    `json:"endpoint,omitempty"`
	StatusCode int       `json:"status_code,omitempty"`
}

// IntegrationTestResponse resultado del test.
type IntegrationTestResponse struct {
	Success bool                   `json:"success"`
	Message string                 `json:"message"`
	Details IntegrationTestDetails `json:"details"`
}

// IntegrationLogResponse entrada del log de una integración.
type IntegrationLogResponse struct {
	ID        string          `json:"id"`
	Action    string          `json:"action"`
	Status    string          `json:"status"`
	Message   string          `json:"message"`
	Details   json.RawMessage `json:"details,omitempty" swaggertype:"object"`
	CreatedAt time.Time       `json:"created_at"`
}
