package entity

import (
	"encoding/json"
	"time"
)

// Tipos de integración con comportamiento propio (el resto es opaco).
const (
	IntegrationTypeWebhook     = "webhook"
	IntegrationTypeProductFeed = "product_feed"
)

// Integration descriptor opaco de conexión con un tercero.
type Integration struct {
	ID         string
	Name       string
	Type       string
	Config     json.RawMessage
	IsActive   bool
	LastTestAt *time.Time
	CreatedBy  string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// IntegrationLog resultado de una operación sobre la integración (test, feed, ...).
type IntegrationLog struct {
	ID            string
	IntegrationID string
	Action        string
	Status        string // success, failure
	Message       string
	Details       json.RawMessage
	CreatedAt     time.Time
}
