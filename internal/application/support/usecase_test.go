package support

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/testutil/memstore"
)

var (
	owner    = authz.Actor{ID: "cust-1", Role: entity.RoleCustomer}
	stranger = authz.Actor{ID: "cust-2", Role: entity.RoleCustomer}
	agent    = authz.Actor{ID: "sup-1", Role: entity.RoleSupport}
	analyst  = authz.Actor{ID: "ana-1", Role: entity.RoleAnalyst}
)

func setup(t *testing.T) (*UseCase, *memstore.Store) {
	t.Helper()
	s := memstore.New()
	uc := NewUseCase(s.TicketRepo(), s.FAQRepo(), memstore.NewTxRunner(s))
	// reloj monotónico para que el orden de los mensajes sea determinista
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	tick := 0
	uc.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Minute)
	}
	return uc, s
}

func openTicket(t *testing.T, uc *UseCase, priority string) *dto.TicketResponse {
	t.Helper()
	tk, err := uc.CreateTicket(context.Background(), owner, dto.CreateTicketRequest{
		Subject: "Broken item", Description: "Arrived broken", Priority: priority,
	})
	require.NoError(t, err)
	return tk
}

func TestCreateTicket_PrioridadPorDefecto(t *testing.T) {
	uc, _ := setup(t)
	tk := openTicket(t, uc, "")
	assert.Equal(t, entity.TicketPriorityMedium, tk.Priority)
	assert.Equal(t, entity.TicketStatusOpen, tk.Status)
	assert.Equal(t, owner.ID, tk.UserID)

	_, err := uc.CreateTicket(context.Background(), owner, dto.CreateTicketRequest{Subject: "x", Description: "y", Priority: "urgent"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAddMessage_ReabreTicketCerrado(t *testing.T) {
	uc, s := setup(t)
	tk := openTicket(t, uc, "high")

	_, err := uc.UpdateTicketStatus(context.Background(), agent, tk.ID, dto.UpdateTicketStatusRequest{Status: entity.TicketStatusClosed})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketStatusClosed, s.Tickets[tk.ID].Status)

	_, err = uc.AddMessage(context.Background(), owner, tk.ID, dto.AddTicketMessageRequest{Message: "still broken"})
	require.NoError(t, err)
	assert.Equal(t, entity.TicketStatusOpen, s.Tickets[tk.ID].Status)
}

func TestGetTicket_MensajesAscendentes(t *testing.T) {
	uc, _ := setup(t)
	tk := openTicket(t, uc, "")
	for _, m := range []string{"first", "second", "third"} {
		actor := owner
		if m == "second" {
			actor = agent
		}
		_, err := uc.AddMessage(context.Background(), actor, tk.ID, dto.AddTicketMessageRequest{Message: m})
		require.NoError(t, err)
	}

	got, err := uc.GetTicket(context.Background(), owner, tk.ID)
	require.NoError(t, err)
	require.Len(t, got.Messages, 3)
	assert.Equal(t, "first", got.Messages[0].Message)
	assert.Equal(t, "second", got.Messages[1].Message)
	assert.Equal(t, "third", got.Messages[2].Message)
	assert.Equal(t, 3, got.MessageCount)
}

func TestVisibilidad(t *testing.T) {
	uc, s := setup(t)
	tk := openTicket(t, uc, "")

	_, err := uc.GetTicket(context.Background(), stranger, tk.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.GetTicket(context.Background(), analyst, tk.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.AddMessage(context.Background(), stranger, tk.ID, dto.AddTicketMessageRequest{Message: "hi"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Empty(t, s.TicketMsgs[tk.ID])

	_, err = uc.GetTicket(context.Background(), agent, tk.ID)
	assert.NoError(t, err)

	_, err = uc.GetTicket(context.Background(), agent, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListTickets_PropiosYOrden(t *testing.T) {
	uc, _ := setup(t)
	low := openTicket(t, uc, "low")
	high := openTicket(t, uc, "high")
	_, err := uc.CreateTicket(context.Background(), stranger, dto.CreateTicketRequest{Subject: "other", Description: "d"})
	require.NoError(t, err)

	mine, err := uc.ListTickets(context.Background(), owner, dto.TicketListQuery{})
	require.NoError(t, err)
	require.Equal(t, 2, mine.Total)
	assert.Equal(t, high.ID, mine.Items[0].ID)
	assert.Equal(t, low.ID, mine.Items[1].ID)

	all, err := uc.ListTickets(context.Background(), agent, dto.TicketListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, all.Total)

	_, err = uc.ListTickets(context.Background(), agent, dto.TicketListQuery{Status: "pending"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFAQ(t *testing.T) {
	uc, _ := setup(t)
	inactive := false
	_, err := uc.CreateFAQ(context.Background(), dto.FAQRequest{Question: "How to pay?", Answer: "Card", Category: "billing"})
	require.NoError(t, err)
	ship, err := uc.CreateFAQ(context.Background(), dto.FAQRequest{Question: "Shipping time?", Answer: "3 days", Category: "shipping"})
	require.NoError(t, err)
	_, err = uc.CreateFAQ(context.Background(), dto.FAQRequest{Question: "Old", Answer: "x", Category: "legacy", IsActive: &inactive})
	require.NoError(t, err)

	cats, err := uc.FAQCategories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"billing", "shipping"}, cats)

	list, err := uc.ListFAQ(context.Background(), dto.FAQListQuery{Category: "shipping"})
	require.NoError(t, err)
	assert.Equal(t, 1, list.Total)

	up, err := uc.UpdateFAQ(context.Background(), ship.ID, dto.FAQRequest{Question: "Shipping time?", Answer: "2 days", Category: "shipping"})
	require.NoError(t, err)
	assert.Equal(t, "2 days", up.Answer)

	require.NoError(t, uc.DeleteFAQ(context.Background(), ship.ID))
	assert.ErrorIs(t, uc.DeleteFAQ(context.Background(), ship.ID), domain.ErrNotFound)
	_, err = uc.UpdateFAQ(context.Background(), ship.ID, dto.FAQRequest{Question: "q", Answer: "a"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
