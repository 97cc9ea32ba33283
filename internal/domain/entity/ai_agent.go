package entity

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// AIAgent metadatos de un agente conversacional. Model decide qué Responder atiende.
type AIAgent struct {
	ID           string
	Name         string
	Description  string
	Type         string
	Model        string
	Capabilities []string
	Settings     json.RawMessage
	IsActive     bool
	CreatedBy    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// AIInteraction registro de una consulta procesada por un agente.
type AIInteraction struct {
	ID         string
	AgentID    string // vacío si no se indicó agente
	UserID     string
	Input      string
	Response   string
	Confidence decimal.Decimal
	Metadata   json.RawMessage
	CreatedAt  time.Time
}
