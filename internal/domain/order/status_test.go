package order_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/order"
)

func TestCheckTransition(t *testing.T) {
	assert.NoError(t, order.CheckTransition(entity.OrderStatusPending, entity.OrderStatusProcessing))
	assert.NoError(t, order.CheckTransition(entity.OrderStatusPending, entity.OrderStatusCompleted))
	assert.NoError(t, order.CheckTransition(entity.OrderStatusPending, entity.OrderStatusCancelled))
	assert.NoError(t, order.CheckTransition(entity.OrderStatusProcessing, entity.OrderStatusCompleted))
	assert.NoError(t, order.CheckTransition(entity.OrderStatusProcessing, entity.OrderStatusCancelled))

	assert.ErrorIs(t, order.CheckTransition(entity.OrderStatusProcessing, entity.OrderStatusPending), domain.ErrInvalidTransition)
	assert.ErrorIs(t, order.CheckTransition(entity.OrderStatusCompleted, entity.OrderStatusCancelled), domain.ErrInvalidTransition)
	assert.ErrorIs(t, order.CheckTransition(entity.OrderStatusCancelled, entity.OrderStatusCancelled), domain.ErrInvalidTransition)
	assert.ErrorIs(t, order.CheckTransition(entity.OrderStatusPending, "shipped"), domain.ErrInvalidInput)
}

func TestTotal(t *testing.T) {
	items := []entity.OrderItem{
		{Quantity: 2, UnitPrice: decimal.RequireFromString("10.50")},
		{Quantity: 3, UnitPrice: decimal.RequireFromString("1.10")},
	}
	assert.True(t, decimal.RequireFromString("24.30").Equal(order.Total(items)))
	assert.True(t, order.Total(nil).IsZero())
}
