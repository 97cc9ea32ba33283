package support

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
	"github.com/jhoicas/engage-api/internal/domain/ticket"
)

// UseCase tickets de soporte (máquina open/closed con visibilidad por dueño) y FAQ.
type UseCase struct {
	tickets repository.TicketRepository
	faqs    repository.FAQRepository
	tx      repository.TxRunner
	now     func() time.Time
}

// NewUseCase construye el caso de uso de soporte.
func NewUseCase(tickets repository.TicketRepository, faqs repository.FAQRepository, tx repository.TxRunner) *UseCase {
	return &UseCase{tickets: tickets, faqs: faqs, tx: tx, now: time.Now}
}

// CreateTicket abre un ticket a nombre del actor.
func (uc *UseCase) CreateTicket(ctx context.Context, actor authz.Actor, in dto.CreateTicketRequest) (*dto.TicketResponse, error) {
	priority, err := ticket.NormalizePriority(in.Priority)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	t := &entity.SupportTicket{
		ID:          uuid.New().String(),
		UserID:      actor.ID,
		Subject:     strings.TrimSpace(in.Subject),
		Description: in.Description,
		Category:    in.Category,
		Priority:    priority,
		Status:      entity.TicketStatusOpen,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.tickets.Create(ctx, t); err != nil {
		return nil, err
	}
	return uc.GetTicket(ctx, actor, t.ID)
}

// ListTickets propios del actor salvo admin/support, que ven todos.
// Orden: prioridad high → low y luego más reciente.
func (uc *UseCase) ListTickets(ctx context.Context, actor authz.Actor, q dto.TicketListQuery) (*dto.PageResponse[dto.TicketResponse], error) {
	f := repository.TicketFilter{Status: q.Status, Priority: q.Priority}
	if f.Status != "" && !ticket.ValidStatus(f.Status) {
		return nil, fmt.Errorf("%w: status must be open or closed", domain.ErrInvalidInput)
	}
	if f.Priority != "" {
		if _, err := ticket.NormalizePriority(f.Priority); err != nil {
			return nil, err
		}
	}
	if !ticket.SeesAll(actor.Role) {
		f.UserID = actor.ID
	}
	page := q.Normalize()
	list, total, err := uc.tickets.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TicketResponse, 0, len(list))
	for _, t := range list {
		out = append(out, toTicketResponse(t))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

// GetTicket ticket con sus mensajes en orden ascendente.
func (uc *UseCase) GetTicket(ctx context.Context, actor authz.Actor, id string) (*dto.TicketResponse, error) {
	t, err := accessible(ctx, uc.tickets, actor, id)
	if err != nil {
		return nil, err
	}
	if t.Messages, err = uc.tickets.ListMessages(ctx, t.ID); err != nil {
		return nil, err
	}
	out := toTicketResponse(t)
	return &out, nil
}

// UpdateTicketStatus fija el estado (open | closed).
func (uc *UseCase) UpdateTicketStatus(ctx context.Context, actor authz.Actor, id string, in dto.UpdateTicketStatusRequest) (*dto.TicketResponse, error) {
	if !ticket.ValidStatus(in.Status) {
		return nil, fmt.Errorf("%w: status must be open or closed", domain.ErrInvalidInput)
	}
	if _, err := accessible(ctx, uc.tickets, actor, id); err != nil {
		return nil, err
	}
	if err := uc.tickets.UpdateStatus(ctx, id, in.Status); err != nil {
		return nil, err
	}
	return uc.GetTicket(ctx, actor, id)
}

// AddMessage agrega un mensaje; si el ticket estaba cerrado se reabre en la misma transacción.
func (uc *UseCase) AddMessage(ctx context.Context, actor authz.Actor, id string, in dto.AddTicketMessageRequest) (*dto.TicketMessageResponse, error) {
	body := strings.TrimSpace(in.Message)
	if body == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrInvalidInput)
	}
	msg := &entity.SupportMessage{
		ID:        uuid.New().String(),
		TicketID:  id,
		SenderID:  actor.ID,
		Message:   body,
		CreatedAt: uc.now(),
	}
	err := uc.tx.Run(ctx, func(tx repository.TxRepos) error {
		t, err := accessible(ctx, tx.Tickets, actor, id)
		if err != nil {
			return err
		}
		if err := tx.Tickets.AddMessage(ctx, msg); err != nil {
			return err
		}
		if next := ticket.StatusAfterMessage(t.Status); next != t.Status {
			return tx.Tickets.UpdateStatus(ctx, t.ID, next)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := toMessageResponse(*msg)
	return &out, nil
}

// ── FAQ ───────────────────────────────────────────────────────────────────────

// ListFAQ preguntas activas, opcionalmente de una categoría.
func (uc *UseCase) ListFAQ(ctx context.Context, q dto.FAQListQuery) (*dto.PageResponse[dto.FAQResponse], error) {
	page := q.Normalize()
	list, total, err := uc.faqs.List(ctx, strings.TrimSpace(q.Category), page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.FAQResponse, 0, len(list))
	for _, f := range list {
		out = append(out, toFAQResponse(f))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

// FAQCategories categorías con al menos una pregunta activa.
func (uc *UseCase) FAQCategories(ctx context.Context) ([]string, error) {
	cats, err := uc.faqs.Categories(ctx)
	if err != nil {
		return nil, err
	}
	if cats == nil {
		cats = []string{}
	}
	return cats, nil
}

// CreateFAQ alta de pregunta frecuente.
func (uc *UseCase) CreateFAQ(ctx context.Context, in dto.FAQRequest) (*dto.FAQResponse, error) {
	now := uc.now()
	f := &entity.FAQ{
		ID:        uuid.New().String(),
		Question:  strings.TrimSpace(in.Question),
		Answer:    in.Answer,
		Category:  strings.TrimSpace(in.Category),
		IsActive:  true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.IsActive != nil {
		f.IsActive = *in.IsActive
	}
	if err := uc.faqs.Create(ctx, f); err != nil {
		return nil, err
	}
	out := toFAQResponse(f)
	return &out, nil
}

// UpdateFAQ reemplaza pregunta, respuesta y categoría.
func (uc *UseCase) UpdateFAQ(ctx context.Context, id string, in dto.FAQRequest) (*dto.FAQResponse, error) {
	f, err := uc.faqs.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if f == nil {
		return nil, fmt.Errorf("%w: faq not found", domain.ErrNotFound)
	}
	f.Question = strings.TrimSpace(in.Question)
	f.Answer = in.Answer
	f.Category = strings.TrimSpace(in.Category)
	if in.IsActive != nil {
		f.IsActive = *in.IsActive
	}
	f.UpdatedAt = uc.now()
	if err := uc.faqs.Update(ctx, f); err != nil {
		return nil, err
	}
	out := toFAQResponse(f)
	return &out, nil
}

// DeleteFAQ elimina la pregunta.
func (uc *UseCase) DeleteFAQ(ctx context.Context, id string) error {
	return uc.faqs.Delete(ctx, id)
}

func accessible(ctx context.Context, repo repository.TicketRepository, actor authz.Actor, id string) (*entity.SupportTicket, error) {
	t, err := repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, fmt.Errorf("%w: ticket not found", domain.ErrNotFound)
	}
	if !ticket.CanAccess(t, actor.ID, actor.Role) {
		return nil, domain.ErrForbidden
	}
	return t, nil
}

func toTicketResponse(t *entity.SupportTicket) dto.TicketResponse {
	out := dto.TicketResponse{
		ID:           t.ID,
		UserID:       t.UserID,
		UserEmail:    t.UserEmail,
		Subject:      t.Subject,
		Description:  t.Description,
		Category:     t.Category,
		Priority:     t.Priority,
		Status:       t.Status,
		MessageCount: t.MessageCount,
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	for _, m := range t.Messages {
		out.Messages = append(out.Messages, toMessageResponse(m))
	}
	return out
}

func toMessageResponse(m entity.SupportMessage) dto.TicketMessageResponse {
	return dto.TicketMessageResponse{
		ID:         m.ID,
		TicketID:   m.TicketID,
		SenderID:   m.SenderID,
		SenderName: m.SenderName,
		Message:    m.Message,
		CreatedAt:  m.CreatedAt,
	}
}

func toFAQResponse(f *entity.FAQ) dto.FAQResponse {
	return dto.FAQResponse{
		ID:        f.ID,
		Question:  f.Question,
		Answer:    f.Answer,
		Category:  f.Category,
		IsActive:  f.IsActive,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}
