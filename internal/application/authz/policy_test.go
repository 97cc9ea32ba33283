package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
)

func TestCheck_AdminOnly(t *testing.T) {
	adminOps := []authz.Operation{
		authz.ProductCreate, authz.StockAdjust, authz.OrderUpdateStatus,
		authz.OfferCreate, authz.OfferDelete, authz.FAQCreate, authz.AgentCreate,
		authz.IntegrationManage, authz.AuthUpdateUser,
	}
	for _, op := range adminOps {
		assert.NoError(t, authz.Check(op, entity.RoleAdmin), op)
		for _, role := range []string{entity.RoleViewer, entity.RoleCustomer, entity.RoleAnalyst} {
			assert.ErrorIs(t, authz.Check(op, role), domain.ErrForbidden, "%s con rol %s", op, role)
		}
	}
}

func TestCheck_Analytics(t *testing.T) {
	assert.NoError(t, authz.Check(authz.AnalyticsRead, entity.RoleAnalyst))
	assert.NoError(t, authz.Check(authz.AnalyticsRead, entity.RoleAdmin))
	assert.ErrorIs(t, authz.Check(authz.AnalyticsRead, entity.RoleSupport), domain.ErrForbidden)
}

func TestCheck_TicketStatus(t *testing.T) {
	assert.NoError(t, authz.Check(authz.TicketUpdateStatus, entity.RoleSupport))
	assert.ErrorIs(t, authz.Check(authz.TicketUpdateStatus, entity.RoleCustomer), domain.ErrForbidden)
}

func TestCheck_OperacionDesconocida(t *testing.T) {
	assert.ErrorIs(t, authz.Check("nope", entity.RoleAdmin), domain.ErrForbidden)
}

func TestPolicy_TodasLasOperacionesTienenRoles(t *testing.T) {
	for _, op := range authz.Operations() {
		roles := authz.Roles(op)
		assert.NotEmpty(t, roles, op)
		for _, r := range roles {
			assert.True(t, entity.ValidRole(r), "%s: rol desconocido %s", op, r)
		}
	}
}

func TestCanActFor(t *testing.T) {
	assert.True(t, authz.CanActFor("u1", entity.RoleCustomer, "u1"))
	assert.False(t, authz.CanActFor("u1", entity.RoleCustomer, "u2"))
	assert.False(t, authz.CanActFor("u1", entity.RoleViewer, "u2"))
	assert.True(t, authz.CanActFor("u1", entity.RoleSupport, "u2"))
}
