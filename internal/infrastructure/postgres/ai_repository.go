package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var (
	_ repository.AIAgentRepository       = (*AIAgentRepo)(nil)
	_ repository.AIInteractionRepository = (*AIInteractionRepo)(nil)
)

const agentColumns = `id, name, description, type, model, capabilities, settings, is_active, created_by, created_at, updated_at`

// AIAgentRepo metadatos de agentes.
type AIAgentRepo struct {
	q Querier
}

func NewAIAgentRepository(q Querier) *AIAgentRepo {
	return &AIAgentRepo{q: q}
}

func (r *AIAgentRepo) Create(ctx context.Context, a *entity.AIAgent) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ai_agents (`+agentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		a.ID, a.Name, a.Description, a.Type, a.Model, capabilities(a.Capabilities), jsonOrEmpty(a.Settings),
		a.IsActive, nullIfEmpty(a.CreatedBy), a.CreatedAt, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ai agent: %w", err)
	}
	return nil
}

func (r *AIAgentRepo) GetByID(ctx context.Context, id string) (*entity.AIAgent, error) {
	a, err := scanAgent(r.q.QueryRow(ctx, `SELECT `+agentColumns+` FROM ai_agents WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ai agent: %w", err)
	}
	return a, nil
}

func (r *AIAgentRepo) Update(ctx context.Context, a *entity.AIAgent) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE ai_agents SET name = $2, description = $3, type = $4, model = $5, capabilities = $6,
		       settings = $7, is_active = $8, updated_at = $9
		WHERE id = $1`,
		a.ID, a.Name, a.Description, a.Type, a.Model, capabilities(a.Capabilities), jsonOrEmpty(a.Settings),
		a.IsActive, a.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ai agent: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete las interacciones conservan el historial con agent_id NULL.
func (r *AIAgentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM ai_agents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ai agent: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *AIAgentRepo) List(ctx context.Context, p repository.Page) ([]*entity.AIAgent, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ai_agents`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ai agents: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+agentColumns+` FROM ai_agents ORDER BY name LIMIT $1 OFFSET $2`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list ai agents: %w", err)
	}
	defer rows.Close()
	var out []*entity.AIAgent
	for rows.Next() {
		a, err := scanAgent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ai agent: %w", err)
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

func scanAgent(row rowScanner) (*entity.AIAgent, error) {
	var (
		a         entity.AIAgent
		createdBy *string
	)
	if err := row.Scan(
		&a.ID, &a.Name, &a.Description, &a.Type, &a.Model, &a.Capabilities, &a.Settings,
		&a.IsActive, &createdBy, &a.CreatedAt, &a.UpdatedAt,
	); err != nil {
		return nil, err
	}
	a.CreatedBy = deref(createdBy)
	return &a, nil
}

// capabilities evita NULL en la columna TEXT[] NOT NULL.
func capabilities(c []string) []string {
	if c == nil {
		return []string{}
	}
	return c
}

// AIInteractionRepo historial de consultas procesadas.
type AIInteractionRepo struct {
	q Querier
}

func NewAIInteractionRepository(q Querier) *AIInteractionRepo {
	return &AIInteractionRepo{q: q}
}

func (r *AIInteractionRepo) Create(ctx context.Context, i *entity.AIInteraction) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO ai_interactions (id, agent_id, user_id, input, response, confidence, metadata, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		i.ID, nullIfEmpty(i.AgentID), i.UserID, i.Input, i.Response, i.Confidence, jsonOrEmpty(i.Metadata), i.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ai interaction: %w", err)
	}
	return nil
}

// ListByUser interacciones del usuario, más recientes primero.
func (r *AIInteractionRepo) ListByUser(ctx context.Context, userID string, p repository.Page) ([]*entity.AIInteraction, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM ai_interactions WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count ai interactions: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, agent_id, user_id, input, response, confidence, metadata, created_at
		FROM ai_interactions WHERE user_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list ai interactions: %w", err)
	}
	defer rows.Close()
	var out []*entity.AIInteraction
	for rows.Next() {
		var (
			i       entity.AIInteraction
			agentID *string
		)
		if err := rows.Scan(&i.ID, &agentID, &i.UserID, &i.Input, &i.Response, &i.Confidence, &i.Metadata, &i.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan ai interaction: %w", err)
		}
		i.AgentID = deref(agentID)
		out = append(out, &i)
	}
	return out, total, rows.Err()
}
