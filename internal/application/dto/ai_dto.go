package dto

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AIAgentRequest alta/edición de agente.
type AIAgentRequest struct {
	Name         string          `json:"name" validate:"required,max=255"`
	Description  string          `json:"description"`
	Type         string          `json:"type" validate:"max=50"`
	Model        string          `json:"model" validate:"max=100"`
	Capabilities []string        `json:"capabilities"`
	Settings     json.RawMessage `json:"settings" swaggertype:"object"`
	IsActive     *bool           `json:"is_active"`
}

// AIAgentResponse agente para la API.
type AIAgentResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Type         string          `json:"type"`
	Model        string          `json:"model"`
	Capabilities []string        `json:"capabilities"`
	Settings     json.RawMessage `json:"settings" swaggertype:"object"`
	IsActive     bool            `json:"is_active"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// ProcessMessageRequest consulta a un agente.
type ProcessMessageRequest struct {
	Message string          `json:"message" validate:"required,max=8000"`
	AgentID string          `json:"agent_id" validate:"omitempty,uuid"`
	Context json.RawMessage `json:"context" swaggertype:"object"`
}

// ProcessMessageResponse respuesta generada y registrada.
type ProcessMessageResponse struct {
	InteractionID string          `json:"interaction_id"`
	Response      string          `json:"response"`
	Confidence    decimal.Decimal `json:"confidence"`
	Provider      string          `json:"provider"`
	Model         string          `json:"model"`
}

// AIInteractionResponse interacción registrada.
type AIInteractionResponse struct {
	ID         string          `json:"id"`
	AgentID    string          `json:"agent_id,omitempty"`
	Input      string          `json:"input"`
	Response   string          `json:"response"`
	Confidence decimal.Decimal `json:"confidence"`
	Metadata   json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
	CreatedAt  time.Time       `json:"created_at"`
}
