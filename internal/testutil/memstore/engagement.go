package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var (
	_ repository.AIAgentRepository       = (*AgentRepo)(nil)
	_ repository.AIInteractionRepository = (*InteractionRepo)(nil)
	_ repository.MessageRepository       = (*MessageRepo)(nil)
	_ repository.IntegrationRepository   = (*IntegrationRepo)(nil)
)

// AgentRepo agentes en memoria.
type AgentRepo struct{ s *Store }

// AgentRepo repositorio de agentes.
func (s *Store) AgentRepo() *AgentRepo { return &AgentRepo{s: s} }

func (r *AgentRepo) Create(_ context.Context, a *entity.AIAgent) error {
	r.s.Agents[a.ID] = *a
	return nil
}

func (r *AgentRepo) GetByID(_ context.Context, id string) (*entity.AIAgent, error) {
	a, ok := r.s.Agents[id]
	if !ok {
		return nil, nil
	}
	return &a, nil
}

func (r *AgentRepo) Update(_ context.Context, a *entity.AIAgent) error {
	if _, ok := r.s.Agents[a.ID]; !ok {
		return notFound()
	}
	r.s.Agents[a.ID] = *a
	return nil
}

func (r *AgentRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.Agents[id]; !ok {
		return notFound()
	}
	delete(r.s.Agents, id)
	return nil
}

func (r *AgentRepo) List(_ context.Context, p repository.Page) ([]*entity.AIAgent, int, error) {
	var out []*entity.AIAgent
	for _, a := range r.s.Agents {
		a := a
		out = append(out, &a)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return paginate(out, p), len(out), nil
}

// InteractionRepo interacciones en memoria.
type InteractionRepo struct{ s *Store }

// InteractionRepo repositorio de interacciones.
func (s *Store) InteractionRepo() *InteractionRepo { return &InteractionRepo{s: s} }

func (r *InteractionRepo) Create(_ context.Context, i *entity.AIInteraction) error {
	r.s.Interactions = append(r.s.Interactions, *i)
	return nil
}

func (r *InteractionRepo) ListByUser(_ context.Context, userID string, p repository.Page) ([]*entity.AIInteraction, int, error) {
	var out []*entity.AIInteraction
	for _, i := range r.s.Interactions {
		i := i
		if i.UserID == userID {
			out = append(out, &i)
		}
	}
	newestFirst(out, func(i *entity.AIInteraction) time.Time { return i.CreatedAt })
	return paginate(out, p), len(out), nil
}

// MessageRepo comunicaciones en memoria.
type MessageRepo struct{ s *Store }

// MessageRepo repositorio de comunicaciones.
func (s *Store) MessageRepo() *MessageRepo { return &MessageRepo{s: s} }

func (r *MessageRepo) Create(_ context.Context, m *entity.Message) error {
	r.s.Messages = append(r.s.Messages, *m)
	return nil
}

func (r *MessageRepo) GetByID(_ context.Context, id string) (*entity.Message, error) {
	for _, m := range r.s.Messages {
		if m.ID == id {
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MessageRepo) List(_ context.Context, f repository.MessageFilter, p repository.Page) ([]*entity.Message, int, error) {
	var out []*entity.Message
	for _, m := range r.s.Messages {
		m := m
		if len(f.Channels) > 0 && !inSlice(f.Channels, m.Channel) {
			continue
		}
		if f.Direction != "" && m.Direction != f.Direction {
			continue
		}
		out = append(out, &m)
	}
	newestFirst(out, func(m *entity.Message) time.Time { return m.CreatedAt })
	return paginate(out, p), len(out), nil
}

func inSlice(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

// IntegrationRepo integraciones en memoria.
type IntegrationRepo struct{ s *Store }

// IntegrationRepo repositorio de integraciones.
func (s *Store) IntegrationRepo() *IntegrationRepo { return &IntegrationRepo{s: s} }

func (r *IntegrationRepo) Create(_ context.Context, i *entity.Integration) error {
	r.s.Integrations[i.ID] = *i
	return nil
}

func (r *IntegrationRepo) GetByID(_ context.Context, id string) (*entity.Integration, error) {
	i, ok := r.s.Integrations[id]
	if !ok {
		return nil, nil
	}
	return &i, nil
}

func (r *IntegrationRepo) Update(_ context.Context, i *entity.Integration) error {
	if _, ok := r.s.Integrations[i.ID]; !ok {
		return notFound()
	}
	r.s.Integrations[i.ID] = *i
	return nil
}

func (r *IntegrationRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.Integrations[id]; !ok {
		return notFound()
	}
	delete(r.s.Integrations, id)
	return nil
}

func (r *IntegrationRepo) List(_ context.Context, p repository.Page) ([]*entity.Integration, int, error) {
	var out []*entity.Integration
	for _, i := range r.s.Integrations {
		i := i
		out = append(out, &i)
	}
	sort.Slice(out, func(a, b int) bool { return out[a].Name < out[b].Name })
	return paginate(out, p), len(out), nil
}

func (r *IntegrationRepo) MarkTested(_ context.Context, id string, at time.Time) error {
	i, ok := r.s.Integrations[id]
	if !ok {
		return notFound()
	}
	i.LastTestAt = &at
	r.s.Integrations[id] = i
	return nil
}

func (r *IntegrationRepo) AddLog(_ context.Context, l *entity.IntegrationLog) error {
	r.s.IntLogs = append(r.s.IntLogs, *l)
	return nil
}

func (r *IntegrationRepo) ListLogs(_ context.Context, integrationID string, p repository.Page) ([]*entity.IntegrationLog, int, error) {
	var out []*entity.IntegrationLog
	for _, l := range r.s.IntLogs {
		l := l
		if l.IntegrationID == integrationID {
			out = append(out, &l)
		}
	}
	newestFirst(out, func(l *entity.IntegrationLog) time.Time { return l.CreatedAt })
	return paginate(out, p), len(out), nil
}
