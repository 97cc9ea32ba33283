package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/jhoicas/engage-api/internal/application/ports"
)

var _ ports.Responder = (*AnthropicResponder)(nil)

const (
	anthropicMessagesURL = "https://api.anthropic.com/v1/messages"
	anthropicVersion     = "2023-06-01"
	providerAnthropic    = "anthropic"
)

// AnthropicResponder adaptador sobre la API REST Messages de Anthropic.
type AnthropicResponder struct {
	apiKey     string
	model      string
	endpoint   string
	httpClient *http.Client
}

// NewAnthropicResponder model es el modelo por defecto cuando el agente no indica uno.
func NewAnthropicResponder(apiKey, model string) *AnthropicResponder {
	return &AnthropicResponder{
		apiKey:   apiKey,
		model:    model,
		endpoint: anthropicMessagesURL,
		httpClient: &http.Client{
			// Timeout de red; el caso de uso impone además un context.WithTimeout más corto.
			Timeout: 25 * time.Second,
		},
	}
}

type anthropicRequest struct {
	Model     string             `json:"model"`
	MaxTokens int                `json:"max_tokens"`
	System    string             `json:"system"`
	Messages  []anthropicMessage `json:"messages"`
}

type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type anthropicResponse struct {
	Model   string `json:"model"`
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Respond envía el mensaje a Claude con el prompt del agente.
func (s *AnthropicResponder) Respond(ctx context.Context, in ports.ResponderRequest) (*ports.ResponderReply, error) {
	if s.apiKey == "" {
		return nil, fmt.Errorf("AI: ANTHROPIC_API_KEY no configurado")
	}
	model := in.Model
	if model == "" {
		model = s.model
	}

	body, err := json.Marshal(anthropicRequest{
		Model:     model,
		MaxTokens: 1024,
		System:    in.SystemPrompt + replyInstructions,
		Messages:  []anthropicMessage{{Role: "user", Content: userContent(in.Message, in.Context)}},
	})
	if err != nil {
		return nil, fmt.Errorf("AI: serializar request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("AI: crear HTTP request: %w", err)
	}
	req.Header.Set("x-api-key", s.apiKey)
	req.Header.Set("anthropic-version", anthropicVersion)
	req.Header.Set("content-type", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("AI: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("AI: llamada HTTP fallida: %w", err)
	}
	defer resp.Body.Close()

	rawBody, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return nil, fmt.Errorf("AI: leer respuesta: %w", err)
	}

	var out anthropicResponse
	if resp.StatusCode != http.StatusOK {
		if jsonErr := json.Unmarshal(rawBody, &out); jsonErr == nil && out.Error != nil {
			return nil, fmt.Errorf("AI: Anthropic error (%s): %s", out.Error.Type, out.Error.Message)
		}
		return nil, fmt.Errorf("AI: Anthropic HTTP %d: %s", resp.StatusCode, string(rawBody))
	}
	if err := json.Unmarshal(rawBody, &out); err != nil {
		return nil, fmt.Errorf("AI: deserializar respuesta Anthropic: %w", err)
	}
	if len(out.Content) == 0 {
		return nil, fmt.Errorf("AI: Claude devolvió respuesta vacía")
	}

	text, confidence := parseReply(out.Content[0].Text)
	if out.Model != "" {
		model = out.Model
	}
	return &ports.ResponderReply{Message: text, Confidence: confidence, Provider: providerAnthropic, Model: model}, nil
}
