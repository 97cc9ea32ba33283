package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var (
	_ repository.TicketRepository = (*TicketRepo)(nil)
	_ repository.FAQRepository    = (*FAQRepo)(nil)
)

const ticketSelect = `
	SELECT t.id, t.user_id, COALESCE(u.email, ''), t.subject, t.description, t.category, t.priority, t.status,
	       (SELECT COUNT(*) FROM support_messages m WHERE m.ticket_id = t.id),
	       t.created_at, t.updated_at
	FROM support_tickets t
	LEFT JOIN users u ON u.id = t.user_id`

// TicketRepo tickets de soporte y sus mensajes.
type TicketRepo struct {
	q Querier
}

func NewTicketRepository(q Querier) *TicketRepo {
	return &TicketRepo{q: q}
}

func (r *TicketRepo) Create(ctx context.Context, t *entity.SupportTicket) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO support_tickets (id, user_id, subject, description, category, priority, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		t.ID, t.UserID, t.Subject, t.Description, t.Category, t.Priority, t.Status, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket: %w", err)
	}
	return nil
}

func (r *TicketRepo) GetByID(ctx context.Context, id string) (*entity.SupportTicket, error) {
	t, err := scanTicket(r.q.QueryRow(ctx, ticketSelect+` WHERE t.id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ticket: %w", err)
	}
	return t, nil
}

// List ordenado por prioridad (high, medium, low) y luego más reciente.
func (r *TicketRepo) List(ctx context.Context, f repository.TicketFilter, p repository.Page) ([]*entity.SupportTicket, int, error) {
	var b filterBuilder
	b.AddIf(f.UserID != "", "t.user_id = ?", f.UserID)
	b.AddIf(f.Status != "", "t.status = ?", f.Status)
	b.AddIf(f.Priority != "", "t.priority = ?", f.Priority)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM support_tickets t`+b.Where(), b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count tickets: %w", err)
	}
	page, args := b.Page(p.Limit, p.Offset())
	rows, err := r.q.Query(ctx, ticketSelect+b.Where()+`
		ORDER BY CASE t.priority WHEN 'high' THEN 1 WHEN 'medium' THEN 2 ELSE 3 END, t.created_at DESC`+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list tickets: %w", err)
	}
	defer rows.Close()
	var out []*entity.SupportTicket
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan ticket: %w", err)
		}
		out = append(out, t)
	}
	return out, total, rows.Err()
}

func (r *TicketRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE support_tickets SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update ticket status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *TicketRepo) AddMessage(ctx context.Context, m *entity.SupportMessage) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO support_messages (id, ticket_id, sender_id, message, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		m.ID, m.TicketID, m.SenderID, m.Message, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert ticket message: %w", err)
	}
	return nil
}

func (r *TicketRepo) ListMessages(ctx context.Context, ticketID string) ([]entity.SupportMessage, error) {
	rows, err := r.q.Query(ctx, `
		SELECT m.id, m.ticket_id, m.sender_id, COALESCE(TRIM(u.first_name || ' ' || u.last_name), ''), m.message, m.created_at
		FROM support_messages m
		LEFT JOIN users u ON u.id = m.sender_id
		WHERE m.ticket_id = $1
		ORDER BY m.created_at ASC`, ticketID)
	if err != nil {
		return nil, fmt.Errorf("list ticket messages: %w", err)
	}
	defer rows.Close()
	var out []entity.SupportMessage
	for rows.Next() {
		var m entity.SupportMessage
		if err := rows.Scan(&m.ID, &m.TicketID, &m.SenderID, &m.SenderName, &m.Message, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan ticket message: %w", err)
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func scanTicket(row rowScanner) (*entity.SupportTicket, error) {
	var t entity.SupportTicket
	if err := row.Scan(
		&t.ID, &t.UserID, &t.UserEmail, &t.Subject, &t.Description, &t.Category, &t.Priority, &t.Status,
		&t.MessageCount, &t.CreatedAt, &t.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}

// FAQRepo preguntas frecuentes.
type FAQRepo struct {
	q Querier
}

func NewFAQRepository(q Querier) *FAQRepo {
	return &FAQRepo{q: q}
}

func (r *FAQRepo) Create(ctx context.Context, f *entity.FAQ) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO faqs (id, question, answer, category, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		f.ID, f.Question, f.Answer, f.Category, f.IsActive, f.CreatedAt, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert faq: %w", err)
	}
	return nil
}

func (r *FAQRepo) GetByID(ctx context.Context, id string) (*entity.FAQ, error) {
	var f entity.FAQ
	err := r.q.QueryRow(ctx, `
		SELECT id, question, answer, category, is_active, created_at, updated_at FROM faqs WHERE id = $1`, id,
	).Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get faq: %w", err)
	}
	return &f, nil
}

func (r *FAQRepo) Update(ctx context.Context, f *entity.FAQ) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE faqs SET question = $2, answer = $3, category = $4, is_active = $5, updated_at = $6 WHERE id = $1`,
		f.ID, f.Question, f.Answer, f.Category, f.IsActive, f.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update faq: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *FAQRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM faqs WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete faq: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List solo FAQ activas, por categoría y pregunta.
func (r *FAQRepo) List(ctx context.Context, category string, p repository.Page) ([]*entity.FAQ, int, error) {
	var b filterBuilder
	b.Add("is_active = TRUE")
	b.AddIf(category != "", "category = ?", category)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM faqs`+b.Where(), b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count faqs: %w", err)
	}
	page, args := b.Page(p.Limit, p.Offset())
	rows, err := r.q.Query(ctx, `
		SELECT id, question, answer, category, is_active, created_at, updated_at FROM faqs`+b.Where()+`
		ORDER BY category, question`+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list faqs: %w", err)
	}
	defer rows.Close()
	var out []*entity.FAQ
	for rows.Next() {
		var f entity.FAQ
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.Category, &f.IsActive, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan faq: %w", err)
		}
		out = append(out, &f)
	}
	return out, total, rows.Err()
}

// Categories categorías distintas de las FAQ activas.
func (r *FAQRepo) Categories(ctx context.Context) ([]string, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT category FROM faqs WHERE is_active = TRUE AND category <> '' ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list faq categories: %w", err)
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var c string
		if err := rows.Scan(&c); err != nil {
			return nil, fmt.Errorf("scan faq category: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
