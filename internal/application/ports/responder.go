package ports

import (
	"context"
	"encoding/json"
)

// ResponderRequest consulta para un agente.
type ResponderRequest struct {
	Model        string
	SystemPrompt string
	Message      string
	Context      json.RawMessage
}

// ResponderReply respuesta del proveedor. Confidence en [0, 1].
type ResponderReply struct {
	Message    string
	Confidence float64
	Provider   string
	Model      string
}

// Responder define el puerto de salida para generar respuestas de agentes de IA.
// Cualquier adaptador (Anthropic, Gemini, placeholder) debe implementar esta interfaz;
// la aplicación solo conoce este contrato. El contexto debe llevar un timeout.
type Responder interface {
	Respond(ctx context.Context, req ResponderRequest) (*ResponderReply, error)
}
