package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.MessageRepository = (*MessageRepo)(nil)

const messageColumns = `id, customer_id, channel, direction, recipient, subject, content, status, priority,
	is_ai_handled, response_time, metadata, created_by, created_at`

// MessageRepo log de comunicaciones multicanal.
type MessageRepo struct {
	q Querier
}

func NewMessageRepository(q Querier) *MessageRepo {
	return &MessageRepo{q: q}
}

func (r *MessageRepo) Create(ctx context.Context, m *entity.Message) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO messages (`+messageColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		m.ID, nullIfEmpty(m.CustomerID), m.Channel, m.Direction, m.Recipient, m.Subject, m.Content,
		m.Status, m.Priority, m.IsAIHandled, m.ResponseTime, jsonOrEmpty(m.Metadata),
		nullIfEmpty(m.CreatedBy), m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert message: %w", err)
	}
	return nil
}

func (r *MessageRepo) GetByID(ctx context.Context, id string) (*entity.Message, error) {
	m, err := scanMessage(r.q.QueryRow(ctx, `SELECT `+messageColumns+` FROM messages WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get message: %w", err)
	}
	return m, nil
}

// List mensajes de los canales indicados, más recientes primero.
func (r *MessageRepo) List(ctx context.Context, f repository.MessageFilter, p repository.Page) ([]*entity.Message, int, error) {
	var b filterBuilder
	b.AddIf(len(f.Channels) > 0, "channel = ANY(?)", f.Channels)
	b.AddIf(f.Direction != "", "direction = ?", f.Direction)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM messages`+b.Where(), b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count messages: %w", err)
	}
	page, args := b.Page(p.Limit, p.Offset())
	rows, err := r.q.Query(ctx, `SELECT `+messageColumns+` FROM messages`+b.Where()+` ORDER BY created_at DESC`+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list messages: %w", err)
	}
	defer rows.Close()
	var out []*entity.Message
	for rows.Next() {
		m, err := scanMessage(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan message: %w", err)
		}
		out = append(out, m)
	}
	return out, total, rows.Err()
}

func scanMessage(row rowScanner) (*entity.Message, error) {
	var (
		m                     entity.Message
		customerID, createdBy *string
	)
	if err := row.Scan(
		&m.ID, &customerID, &m.Channel, &m.Direction, &m.Recipient, &m.Subject, &m.Content, &m.Status,
		&m.Priority, &m.IsAIHandled, &m.ResponseTime, &m.Metadata, &createdBy, &m.CreatedAt,
	); err != nil {
		return nil, err
	}
	m.CustomerID, m.CreatedBy = deref(customerID), deref(createdBy)
	return &m, nil
}
