// Package memstore implementa los puertos de repositorio en memoria para tests de casos
// de uso y de handlers. No es seguro para uso concurrente.
package memstore

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

// Store estado compartido por todos los repositorios en memoria.
type Store struct {
	Users        map[string]entity.User
	Categories   map[string]entity.Category
	Products     map[string]entity.Product
	Movements    []entity.InventoryMovement
	Orders       map[string]entity.Order
	OrderItems   map[string][]entity.OrderItem
	Offers       map[string]entity.Offer
	Redemptions  []entity.UserOffer
	Tickets      map[string]entity.SupportTicket
	TicketMsgs   map[string][]entity.SupportMessage
	FAQs         map[string]entity.FAQ
	Agents       map[string]entity.AIAgent
	Interactions []entity.AIInteraction
	Messages     []entity.Message
	Integrations map[string]entity.Integration
	IntLogs      []entity.IntegrationLog

	// Commits / Rollbacks contadores del TxRunner.
	Commits   int
	Rollbacks int
	// Locks ids de producto en el orden en que se pidió GetForUpdate.
	Locks []string
}

// New store vacío.
func New() *Store {
	return &Store{
		Users:        map[string]entity.User{},
		Categories:   map[string]entity.Category{},
		Products:     map[string]entity.Product{},
		Orders:       map[string]entity.Order{},
		OrderItems:   map[string][]entity.OrderItem{},
		Offers:       map[string]entity.Offer{},
		Tickets:      map[string]entity.SupportTicket{},
		TicketMsgs:   map[string][]entity.SupportMessage{},
		FAQs:         map[string]entity.FAQ{},
		Agents:       map[string]entity.AIAgent{},
		Integrations: map[string]entity.Integration{},
	}
}

// snapshot copia profunda suficiente para restaurar tras un rollback.
func (s *Store) snapshot() *Store {
	c := New()
	for k, v := range s.Users {
		c.Users[k] = v
	}
	for k, v := range s.Categories {
		c.Categories[k] = v
	}
	for k, v := range s.Products {
		c.Products[k] = v
	}
	c.Movements = append([]entity.InventoryMovement(nil), s.Movements...)
	for k, v := range s.Orders {
		c.Orders[k] = v
	}
	for k, v := range s.OrderItems {
		c.OrderItems[k] = append([]entity.OrderItem(nil), v...)
	}
	for k, v := range s.Offers {
		c.Offers[k] = v
	}
	c.Redemptions = append([]entity.UserOffer(nil), s.Redemptions...)
	for k, v := range s.Tickets {
		c.Tickets[k] = v
	}
	for k, v := range s.TicketMsgs {
		c.TicketMsgs[k] = append([]entity.SupportMessage(nil), v...)
	}
	for k, v := range s.FAQs {
		c.FAQs[k] = v
	}
	for k, v := range s.Agents {
		c.Agents[k] = v
	}
	c.Interactions = append([]entity.AIInteraction(nil), s.Interactions...)
	c.Messages = append([]entity.Message(nil), s.Messages...)
	for k, v := range s.Integrations {
		c.Integrations[k] = v
	}
	c.IntLogs = append([]entity.IntegrationLog(nil), s.IntLogs...)
	return c
}

func (s *Store) restore(c *Store) {
	commits, rollbacks, locks := s.Commits, s.Rollbacks, s.Locks
	*s = *c
	s.Commits, s.Rollbacks, s.Locks = commits, rollbacks, locks
}

// ── TxRunner ──────────────────────────────────────────────────────────────────

var _ repository.TxRunner = (*TxRunner)(nil)

// TxRunner emula una transacción: restaura el snapshot si fn falla o entra en pánico.
type TxRunner struct {
	s *Store
}

// NewTxRunner runner sobre el store.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// Run ejecuta fn con los repositorios del store.
func (r *TxRunner) Run(ctx context.Context, fn func(tx repository.TxRepos) error) (err error) {
	snap := r.s.snapshot()
	committed := false
	defer func() {
		if !committed {
			r.s.restore(snap)
			r.s.Rollbacks++
		}
	}()
	if err := fn(r.s.TxRepos()); err != nil {
		return err
	}
	committed = true
	r.s.Commits++
	return nil
}

// TxRepos repositorios que usa el TxRunner.
func (s *Store) TxRepos() repository.TxRepos {
	return repository.TxRepos{
		Products:  s.ProductRepo(),
		Movements: s.MovementRepo(),
		Orders:    s.OrderRepo(),
		Offers:    s.OfferRepo(),
		Tickets:   s.TicketRepo(),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

func paginate[T any](items []T, p repository.Page) []T {
	start := p.Offset()
	if start >= len(items) {
		return []T{}
	}
	end := start + p.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}

func contains(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func newestFirst[T any](items []T, at func(T) time.Time) {
	sort.SliceStable(items, func(i, j int) bool { return at(items[i]).After(at(items[j])) })
}

func notFound() error { return domain.ErrNotFound }
