package ai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

// respondTimeout tope por consulta al proveedor.
const respondTimeout = 10 * time.Second

const defaultSystemPrompt = "You are a helpful customer engagement assistant. Answer briefly and politely."

// UseCase metadatos de agentes y procesamiento de mensajes a través del puerto Responder.
type UseCase struct {
	agents       repository.AIAgentRepository
	interactions repository.AIInteractionRepository
	responder    ports.Responder
}

// NewUseCase construye el caso de uso de IA.
func NewUseCase(agents repository.AIAgentRepository, interactions repository.AIInteractionRepository, responder ports.Responder) *UseCase {
	return &UseCase{agents: agents, interactions: interactions, responder: responder}
}

// ListAgents agentes por nombre.
func (uc *UseCase) ListAgents(ctx context.Context, q dto.PageRequest) (*dto.PageResponse[dto.AIAgentResponse], error) {
	page := q.Normalize()
	list, total, err := uc.agents.List(ctx, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AIAgentResponse, 0, len(list))
	for _, a := range list {
		out = append(out, toAgentResponse(a))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

// GetAgent detalle de un agente.
func (uc *UseCase) GetAgent(ctx context.Context, id string) (*dto.AIAgentResponse, error) {
	a, err := uc.mustAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toAgentResponse(a)
	return &out, nil
}

// CreateAgent alta de agente.
func (uc *UseCase) CreateAgent(ctx context.Context, actor authz.Actor, in dto.AIAgentRequest) (*dto.AIAgentResponse, error) {
	if err := validSettings(in.Settings); err != nil {
		return nil, err
	}
	now := time.Now()
	a := &entity.AIAgent{
		ID:        uuid.New().String(),
		IsActive:  true,
		CreatedBy: actor.ID,
		CreatedAt: now,
	}
	applyAgent(a, in)
	a.UpdatedAt = now
	if err := uc.agents.Create(ctx, a); err != nil {
		return nil, err
	}
	out := toAgentResponse(a)
	return &out, nil
}

// UpdateAgent reemplaza los datos del agente.
func (uc *UseCase) UpdateAgent(ctx context.Context, id string, in dto.AIAgentRequest) (*dto.AIAgentResponse, error) {
	if err := validSettings(in.Settings); err != nil {
		return nil, err
	}
	a, err := uc.mustAgent(ctx, id)
	if err != nil {
		return nil, err
	}
	applyAgent(a, in)
	a.UpdatedAt = time.Now()
	if err := uc.agents.Update(ctx, a); err != nil {
		return nil, err
	}
	out := toAgentResponse(a)
	return &out, nil
}

// DeleteAgent elimina el agente; sus interacciones quedan sin agente.
func (uc *UseCase) DeleteAgent(ctx context.Context, id string) error {
	return uc.agents.Delete(ctx, id)
}

// Process envía el mensaje al Responder (según el modelo del agente, si se indicó)
// y registra la interacción.
func (uc *UseCase) Process(ctx context.Context, actor authz.Actor, in dto.ProcessMessageRequest) (*dto.ProcessMessageResponse, error) {
	msg := strings.TrimSpace(in.Message)
	if msg == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	if err := validSettings(in.Context); err != nil {
		return nil, err
	}
	req := ports.ResponderRequest{SystemPrompt: defaultSystemPrompt, Message: msg, Context: in.Context}
	if in.AgentID != "" {
		a, err := uc.mustAgent(ctx, in.AgentID)
		if err != nil {
			return nil, err
		}
		if !a.IsActive {
			return nil, fmt.Errorf("%w: agent is inactive", domain.ErrInvalidInput)
		}
		req.Model = a.Model
		if a.Description != "" {
			req.SystemPrompt = a.Description
		}
	}

	rctx, cancel := context.WithTimeout(ctx, respondTimeout)
	defer cancel()
	reply, err := uc.responder.Respond(rctx, req)
	if err != nil {
		return nil, fmt.Errorf("ai responder: %w", err)
	}

	meta, err := json.Marshal(map[string]any{
		"provider": reply.Provider,
		"model":    reply.Model,
		"context":  in.Context,
	})
	if err != nil {
		return nil, err
	}
	it := &entity.AIInteraction{
		ID:         uuid.New().String(),
		AgentID:    in.AgentID,
		UserID:     actor.ID,
		Input:      msg,
		Response:   reply.Message,
		Confidence: decimal.NewFromFloat(clamp01(reply.Confidence)).Round(2),
		Metadata:   meta,
		CreatedAt:  time.Now(),
	}
	if err := uc.interactions.Create(ctx, it); err != nil {
		return nil, err
	}
	return &dto.ProcessMessageResponse{
		InteractionID: it.ID,
		Response:      it.Response,
		Confidence:    it.Confidence,
		Provider:      reply.Provider,
		Model:         reply.Model,
	}, nil
}

// Interactions historial propio del actor, más reciente primero.
func (uc *UseCase) Interactions(ctx context.Context, actor authz.Actor, q dto.PageRequest) (*dto.PageResponse[dto.AIInteractionResponse], error) {
	page := q.Normalize()
	list, total, err := uc.interactions.ListByUser(ctx, actor.ID, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AIInteractionResponse, 0, len(list))
	for _, it := range list {
		out = append(out, dto.AIInteractionResponse{
			ID:         it.ID,
			AgentID:    it.AgentID,
			Input:      it.Input,
			Response:   it.Response,
			Confidence: it.Confidence,
			Metadata:   it.Metadata,
			CreatedAt:  it.CreatedAt,
		})
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

func (uc *UseCase) mustAgent(ctx context.Context, id string) (*entity.AIAgent, error) {
	a, err := uc.agents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if a == nil {
		return nil, fmt.Errorf("%w: agent not found", domain.ErrNotFound)
	}
	return a, nil
}

func applyAgent(a *entity.AIAgent, in dto.AIAgentRequest) {
	a.Name = strings.TrimSpace(in.Name)
	a.Description = in.Description
	a.Type = in.Type
	a.Model = in.Model
	a.Capabilities = in.Capabilities
	if a.Capabilities == nil {
		a.Capabilities = []string{}
	}
	a.Settings = in.Settings
	if len(a.Settings) == 0 {
		a.Settings = json.RawMessage("{}")
	}
	if in.IsActive != nil {
		a.IsActive = *in.IsActive
	}
}

func validSettings(raw json.RawMessage) error {
	if len(raw) > 0 && !json.Valid(raw) {
		return fmt.Errorf("%w: invalid JSON object", domain.ErrInvalidInput)
	}
	return nil
}

func clamp01(f float64) float64 {
	switch {
	case f < 0:
		return 0
	case f > 1:
		return 1
	}
	return f
}

func toAgentResponse(a *entity.AIAgent) dto.AIAgentResponse {
	return dto.AIAgentResponse{
		ID:           a.ID,
		Name:         a.Name,
		Description:  a.Description,
		Type:         a.Type,
		Model:        a.Model,
		Capabilities: a.Capabilities,
		Settings:     a.Settings,
		IsActive:     a.IsActive,
		CreatedAt:    a.CreatedAt,
		UpdatedAt:    a.UpdatedAt,
	}
}
