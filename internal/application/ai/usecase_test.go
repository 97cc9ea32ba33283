package ai

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/testutil/memstore"
)

var (
	admin = authz.Actor{ID: "admin-1", Role: entity.RoleAdmin}
	user  = authz.Actor{ID: "cust-1", Role: entity.RoleCustomer}
)

type stubResponder struct {
	last ports.ResponderRequest
	err  error
}

func (s *stubResponder) Respond(_ context.Context, req ports.ResponderRequest) (*ports.ResponderReply, error) {
	s.last = req
	if s.err != nil {
		return nil, s.err
	}
	return &ports.ResponderReply{Message: "echo: " + req.Message, Confidence: 0.876, Provider: "stub", Model: req.Model}, nil
}

func setup() (*UseCase, *memstore.Store, *stubResponder) {
	s := memstore.New()
	r := &stubResponder{}
	return NewUseCase(s.AgentRepo(), s.InteractionRepo(), r), s, r
}

func TestProcess_SinAgente(t *testing.T) {
	uc, s, r := setup()
	out, err := uc.Process(context.Background(), user, dto.ProcessMessageRequest{Message: " hello ", Context: json.RawMessage(`{"order":"ORD-1"}`)})
	require.NoError(t, err)

	assert.Equal(t, "echo: hello", out.Response)
	assert.True(t, out.Confidence.Equal(decimal.RequireFromString("0.88")))
	assert.Equal(t, defaultSystemPrompt, r.last.SystemPrompt)
	require.Len(t, s.Interactions, 1)
	assert.Equal(t, user.ID, s.Interactions[0].UserID)
	assert.JSONEq(t, `{"provider":"stub","model":"","context":{"order":"ORD-1"}}`, string(s.Interactions[0].Metadata))
}

func TestProcess_ConAgente(t *testing.T) {
	uc, _, r := setup()
	a, err := uc.CreateAgent(context.Background(), admin, dto.AIAgentRequest{Name: "Sales", Description: "You sell things", Model: "claude-3-5-haiku"})
	require.NoError(t, err)

	out, err := uc.Process(context.Background(), user, dto.ProcessMessageRequest{Message: "price?", AgentID: a.ID})
	require.NoError(t, err)
	assert.Equal(t, "claude-3-5-haiku", r.last.Model)
	assert.Equal(t, "You sell things", r.last.SystemPrompt)
	assert.Equal(t, "claude-3-5-haiku", out.Model)
}

func TestProcess_Errores(t *testing.T) {
	uc, s, r := setup()
	_, err := uc.Process(context.Background(), user, dto.ProcessMessageRequest{Message: "x", AgentID: "missing"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	inactive := false
	a, err := uc.CreateAgent(context.Background(), admin, dto.AIAgentRequest{Name: "Off", IsActive: &inactive})
	require.NoError(t, err)
	_, err = uc.Process(context.Background(), user, dto.ProcessMessageRequest{Message: "x", AgentID: a.ID})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	r.err = errors.New("provider down")
	_, err = uc.Process(context.Background(), user, dto.ProcessMessageRequest{Message: "x"})
	assert.Error(t, err)
	assert.Empty(t, s.Interactions)
}

func TestAgentsCRUD(t *testing.T) {
	uc, _, _ := setup()
	a, err := uc.CreateAgent(context.Background(), admin, dto.AIAgentRequest{Name: "Support", Capabilities: []string{"faq"}})
	require.NoError(t, err)
	assert.True(t, a.IsActive)
	assert.JSONEq(t, `{}`, string(a.Settings))

	_, err = uc.CreateAgent(context.Background(), admin, dto.AIAgentRequest{Name: "Bad", Settings: json.RawMessage(`{nope`)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	up, err := uc.UpdateAgent(context.Background(), a.ID, dto.AIAgentRequest{Name: "Support v2", Model: "gemini-1.5-flash"})
	require.NoError(t, err)
	assert.Equal(t, "Support v2", up.Name)

	list, err := uc.ListAgents(context.Background(), dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	require.NoError(t, uc.DeleteAgent(context.Background(), a.ID))
	_, err = uc.GetAgent(context.Background(), a.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestInteractions_SoloPropias(t *testing.T) {
	uc, _, _ := setup()
	for _, m := range []string{"a", "b"} {
		_, err := uc.Process(context.Background(), user, dto.ProcessMessageRequest{Message: m})
		require.NoError(t, err)
	}
	_, err := uc.Process(context.Background(), admin, dto.ProcessMessageRequest{Message: "c"})
	require.NoError(t, err)

	page, err := uc.Interactions(context.Background(), user, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
}
