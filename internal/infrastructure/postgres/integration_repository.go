package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.IntegrationRepository = (*IntegrationRepo)(nil)

const integrationColumns = `id, name, type, config, is_active, last_test_at, created_by, created_at, updated_at`

// IntegrationRepo integraciones y su log de operaciones.
type IntegrationRepo struct {
	q Querier
}

func NewIntegrationRepository(q Querier) *IntegrationRepo {
	return &IntegrationRepo{q: q}
}

func (r *IntegrationRepo) Create(ctx context.Context, i *entity.Integration) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO integrations (`+integrationColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		i.ID, i.Name, i.Type, jsonOrEmpty(i.Config), i.IsActive, i.LastTestAt, nullIfEmpty(i.CreatedBy),
		i.CreatedAt, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert integration: %w", err)
	}
	return nil
}

func (r *IntegrationRepo) GetByID(ctx context.Context, id string) (*entity.Integration, error) {
	i, err := scanIntegration(r.q.QueryRow(ctx, `SELECT `+integrationColumns+` FROM integrations WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get integration: %w", err)
	}
	return i, nil
}

func (r *IntegrationRepo) Update(ctx context.Context, i *entity.Integration) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE integrations SET name = $2, type = $3, config = $4, is_active = $5, updated_at = $6 WHERE id = $1`,
		i.ID, i.Name, i.Type, jsonOrEmpty(i.Config), i.IsActive, i.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update integration: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *IntegrationRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM integrations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete integration: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *IntegrationRepo) List(ctx context.Context, p repository.Page) ([]*entity.Integration, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM integrations`).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count integrations: %w", err)
	}
	rows, err := r.q.Query(ctx, `SELECT `+integrationColumns+` FROM integrations ORDER BY name LIMIT $1 OFFSET $2`, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list integrations: %w", err)
	}
	defer rows.Close()
	var out []*entity.Integration
	for rows.Next() {
		i, err := scanIntegration(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan integration: %w", err)
		}
		out = append(out, i)
	}
	return out, total, rows.Err()
}

func (r *IntegrationRepo) MarkTested(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE integrations SET last_test_at = $2 WHERE id = $1`, id, at)
	if err != nil {
		return fmt.Errorf("mark integration tested: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *IntegrationRepo) AddLog(ctx context.Context, l *entity.IntegrationLog) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO integration_logs (id, integration_id, action, status, message, details, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		l.ID, l.IntegrationID, l.Action, l.Status, l.Message, jsonOrEmpty(l.Details), l.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert integration log: %w", err)
	}
	return nil
}

// ListLogs log de la integración, más reciente primero.
func (r *IntegrationRepo) ListLogs(ctx context.Context, integrationID string, p repository.Page) ([]*entity.IntegrationLog, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM integration_logs WHERE integration_id = $1`, integrationID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count integration logs: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, integration_id, action, status, message, details, created_at
		FROM integration_logs WHERE integration_id = $1
		ORDER BY created_at DESC LIMIT $2 OFFSET $3`, integrationID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list integration logs: %w", err)
	}
	defer rows.Close()
	var out []*entity.IntegrationLog
	for rows.Next() {
		var l entity.IntegrationLog
		if err := rows.Scan(&l.ID, &l.IntegrationID, &l.Action, &l.Status, &l.Message, &l.Details, &l.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan integration log: %w", err)
		}
		out = append(out, &l)
	}
	return out, total, rows.Err()
}

func scanIntegration(row rowScanner) (*entity.Integration, error) {
	var (
		i         entity.Integration
		createdBy *string
	)
	if err := row.Scan(&i.ID, &i.Name, &i.Type, &i.Config, &i.IsActive, &i.LastTestAt, &createdBy, &i.CreatedAt, &i.UpdatedAt); err != nil {
		return nil, err
	}
	i.CreatedBy = deref(createdBy)
	return &i, nil
}
