// Package ai contiene los adaptadores de ports.Responder: Anthropic y Gemini vía REST
// (net/http), una respuesta placeholder y un Router que elige proveedor por modelo.
package ai

import (
	"encoding/json"
	"regexp"
	"strings"
)

// replyInstructions se agrega al prompt del agente para obtener texto y confianza en JSON.
const replyInstructions = `

Responde ÚNICAMENTE con un objeto JSON válido (sin markdown) con esta estructura exacta:
{"reply": "<respuesta para el cliente>", "confidence": <número entre 0.0 y 1.0>}`

// defaultConfidence cuando el modelo responde texto libre en lugar del JSON pedido.
const defaultConfidence = 0.5

type replyPayload struct {
	Reply      string   `json:"reply"`
	Confidence *float64 `json:"confidence"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

// parseReply interpreta la salida del modelo. Si no es el JSON esperado, el texto completo
// es la respuesta con confianza por defecto.
func parseReply(raw string) (string, float64) {
	var p replyPayload
	if clean := extractJSON(raw); clean != "" {
		if err := json.Unmarshal([]byte(clean), &p); err == nil && p.Reply != "" {
			c := defaultConfidence
			if p.Confidence != nil {
				c = *p.Confidence
			}
			return p.Reply, c
		}
	}
	return strings.TrimSpace(raw), defaultConfidence
}

// extractJSON quita bloques de código markdown y captura el primer { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

// userContent mensaje del usuario más el contexto opcional de la conversación.
func userContent(message string, context json.RawMessage) string {
	if len(context) == 0 || string(context) == "null" {
		return message
	}
	return message + "\n\nContexto: " + string(context)
}
