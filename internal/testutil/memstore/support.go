package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var (
	_ repository.TicketRepository = (*TicketRepo)(nil)
	_ repository.FAQRepository    = (*FAQRepo)(nil)
)

var priorityRank = map[string]int{
	entity.TicketPriorityHigh:   0,
	entity.TicketPriorityMedium: 1,
	entity.TicketPriorityLow:    2,
}

// TicketRepo tickets en memoria.
type TicketRepo struct{ s *Store }

// TicketRepo repositorio de tickets.
func (s *Store) TicketRepo() *TicketRepo { return &TicketRepo{s: s} }

func (r *TicketRepo) Create(_ context.Context, t *entity.SupportTicket) error {
	c := *t
	c.Messages = nil
	r.s.Tickets[t.ID] = c
	return nil
}

func (r *TicketRepo) GetByID(_ context.Context, id string) (*entity.SupportTicket, error) {
	t, ok := r.s.Tickets[id]
	if !ok {
		return nil, nil
	}
	r.decorate(&t)
	return &t, nil
}

func (r *TicketRepo) List(_ context.Context, f repository.TicketFilter, p repository.Page) ([]*entity.SupportTicket, int, error) {
	var out []*entity.SupportTicket
	for _, t := range r.s.Tickets {
		t := t
		if f.UserID != "" && t.UserID != f.UserID {
			continue
		}
		if f.Status != "" && t.Status != f.Status {
			continue
		}
		if f.Priority != "" && t.Priority != f.Priority {
			continue
		}
		r.decorate(&t)
		out = append(out, &t)
	}
	sort.Slice(out, func(i, j int) bool {
		pi, pj := priorityRank[out[i].Priority], priorityRank[out[j].Priority]
		if pi != pj {
			return pi < pj
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return paginate(out, p), len(out), nil
}

func (r *TicketRepo) UpdateStatus(_ context.Context, id, status string) error {
	t, ok := r.s.Tickets[id]
	if !ok {
		return notFound()
	}
	t.Status = status
	r.s.Tickets[id] = t
	return nil
}

func (r *TicketRepo) AddMessage(_ context.Context, m *entity.SupportMessage) error {
	if _, ok := r.s.Tickets[m.TicketID]; !ok {
		return notFound()
	}
	r.s.TicketMsgs[m.TicketID] = append(r.s.TicketMsgs[m.TicketID], *m)
	return nil
}

func (r *TicketRepo) ListMessages(_ context.Context, ticketID string) ([]entity.SupportMessage, error) {
	msgs := append([]entity.SupportMessage(nil), r.s.TicketMsgs[ticketID]...)
	sort.SliceStable(msgs, func(i, j int) bool { return msgs[i].CreatedAt.Before(msgs[j].CreatedAt) })
	for i := range msgs {
		if u, ok := r.s.Users[msgs[i].SenderID]; ok {
			msgs[i].SenderName = u.FullName()
		}
	}
	return msgs, nil
}

func (r *TicketRepo) decorate(t *entity.SupportTicket) {
	t.MessageCount = len(r.s.TicketMsgs[t.ID])
	if u, ok := r.s.Users[t.UserID]; ok {
		t.UserEmail = u.Email
	}
}

// FAQRepo preguntas frecuentes en memoria.
type FAQRepo struct{ s *Store }

// FAQRepo repositorio de FAQs.
func (s *Store) FAQRepo() *FAQRepo { return &FAQRepo{s: s} }

func (r *FAQRepo) Create(_ context.Context, f *entity.FAQ) error {
	r.s.FAQs[f.ID] = *f
	return nil
}

func (r *FAQRepo) GetByID(_ context.Context, id string) (*entity.FAQ, error) {
	f, ok := r.s.FAQs[id]
	if !ok {
		return nil, nil
	}
	return &f, nil
}

func (r *FAQRepo) Update(_ context.Context, f *entity.FAQ) error {
	if _, ok := r.s.FAQs[f.ID]; !ok {
		return notFound()
	}
	r.s.FAQs[f.ID] = *f
	return nil
}

func (r *FAQRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.FAQs[id]; !ok {
		return notFound()
	}
	delete(r.s.FAQs, id)
	return nil
}

func (r *FAQRepo) List(_ context.Context, category string, p repository.Page) ([]*entity.FAQ, int, error) {
	var out []*entity.FAQ
	for _, f := range r.s.FAQs {
		f := f
		if !f.IsActive || (category != "" && f.Category != category) {
			continue
		}
		out = append(out, &f)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Category != out[j].Category {
			return out[i].Category < out[j].Category
		}
		return out[i].Question < out[j].Question
	})
	return paginate(out, p), len(out), nil
}

func (r *FAQRepo) Categories(_ context.Context) ([]string, error) {
	seen := map[string]bool{}
	var out []string
	for _, f := range r.s.FAQs {
		if f.IsActive && f.Category != "" && !seen[f.Category] {
			seen[f.Category] = true
			out = append(out, f.Category)
		}
	}
	sort.Strings(out)
	return out, nil
}
