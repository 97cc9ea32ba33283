package orders

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/testutil/memstore"
)

var (
	admin    = authz.Actor{ID: "admin-1", Role: entity.RoleAdmin}
	customer = authz.Actor{ID: "cust-1", Role: entity.RoleCustomer}
	other    = authz.Actor{ID: "cust-2", Role: entity.RoleCustomer}
)

type fakeReceipts struct{ err error }

func (f fakeReceipts) Generate(o *entity.Order) ([]byte, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []byte("%PDF-" + o.OrderNumber), nil
}

func setup(t *testing.T) (*UseCase, *memstore.Store) {
	t.Helper()
	s := memstore.New()
	for _, a := range []authz.Actor{admin, customer, other} {
		s.Users[a.ID] = entity.User{ID: a.ID, Email: a.ID + "@example.com", FirstName: a.ID, Role: a.Role, IsActive: true}
	}
	s.Products["p1"] = entity.Product{ID: "p1", Name: "Mouse", Price: decimal.NewFromInt(20), StockQuantity: 10, IsActive: true}
	s.Products["p2"] = entity.Product{ID: "p2", Name: "Keyboard", Price: decimal.RequireFromString("45.50"), StockQuantity: 5, IsActive: true}
	s.Products["p3"] = entity.Product{ID: "p3", Name: "Retired", Price: decimal.NewFromInt(1), StockQuantity: 5, IsActive: false}
	uc := NewUseCase(s.OrderRepo(), s.UserRepo(), memstore.NewTxRunner(s), fakeReceipts{})
	uc.now = func() time.Time { return time.Date(2024, 5, 17, 10, 0, 0, 0, time.UTC) }
	return uc, s
}

func items(pairs ...any) []dto.OrderItemRequest {
	var out []dto.OrderItemRequest
	for i := 0; i < len(pairs); i += 2 {
		out = append(out, dto.OrderItemRequest{ProductID: pairs[i].(string), Quantity: pairs[i+1].(int)})
	}
	return out
}

func TestCreate_TotalYSnapshot(t *testing.T) {
	uc, s := setup(t)

	o, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p1", 2, "p2", 1)})
	require.NoError(t, err)

	assert.Equal(t, entity.OrderStatusPending, o.Status)
	assert.Equal(t, customer.ID, o.CustomerID)
	assert.Regexp(t, `^ORD-20240517-[0-9A-F]{8}$`, o.OrderNumber)
	assert.True(t, o.TotalAmount.Equal(decimal.RequireFromString("85.50")), o.TotalAmount.String())
	require.Len(t, o.Items, 2)

	assert.Equal(t, 8, s.Products["p1"].StockQuantity)
	assert.Equal(t, 4, s.Products["p2"].StockQuantity)

	movs := s.MovementsFor("p1")
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeStockOut, movs[0].Type)
	assert.Equal(t, entity.MovementReasonOrder, movs[0].Reason)
	assert.Equal(t, o.ID, movs[0].ReferenceID)

	// el precio vivo cambia, el snapshot no
	p := s.Products["p1"]
	p.Price = decimal.NewFromInt(99)
	s.Products["p1"] = p
	again, err := uc.Get(context.Background(), customer, o.ID)
	require.NoError(t, err)
	assert.True(t, again.Items[0].UnitPrice.Equal(decimal.NewFromInt(20)))
	assert.True(t, again.TotalAmount.Equal(decimal.RequireFromString("85.50")))
}

func TestCreate_TodoONada(t *testing.T) {
	tests := []struct {
		name    string
		items   []dto.OrderItemRequest
		wantErr error
	}{
		{"producto inexistente", items("p1", 2, "p2", 1, "nope", 1), domain.ErrNotFound},
		{"producto inactivo", items("p1", 2, "p2", 1, "p3", 1), domain.ErrNotFound},
		{"stock insuficiente", items("p1", 2, "p2", 6), domain.ErrInsufficientStock},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, s := setup(t)
			_, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: tt.items})
			assert.ErrorIs(t, err, tt.wantErr)

			assert.Empty(t, s.Orders)
			assert.Empty(t, s.OrderItems)
			assert.Empty(t, s.Movements)
			assert.Equal(t, 10, s.Products["p1"].StockQuantity)
			assert.Equal(t, 5, s.Products["p2"].StockQuantity)
			assert.Equal(t, 1, s.Rollbacks)
		})
	}
}

func TestCreate_CantidadInvalida(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p1", 0)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Create(context.Background(), customer, dto.CreateOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_CustomerSiempreParaSiMismo(t *testing.T) {
	uc, _ := setup(t)
	o, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{CustomerID: other.ID, Items: items("p1", 1)})
	require.NoError(t, err)
	assert.Equal(t, customer.ID, o.CustomerID)

	o, err = uc.Create(context.Background(), admin, dto.CreateOrderRequest{CustomerID: other.ID, Items: items("p1", 1)})
	require.NoError(t, err)
	assert.Equal(t, other.ID, o.CustomerID)

	_, err = uc.Create(context.Background(), admin, dto.CreateOrderRequest{CustomerID: "ghost", Items: items("p1", 1)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCancel_ReponeStock(t *testing.T) {
	uc, s := setup(t)
	o, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p1", 3, "p2", 2)})
	require.NoError(t, err)

	out, err := uc.Cancel(context.Background(), customer, o.ID, dto.CancelOrderRequest{Reason: "changed my mind"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, out.Status)
	assert.Equal(t, "changed my mind", out.CancellationReason)
	assert.Equal(t, 10, s.Products["p1"].StockQuantity)
	assert.Equal(t, 5, s.Products["p2"].StockQuantity)

	movs := s.MovementsFor("p2")
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeStockIn, movs[1].Type)
	assert.Equal(t, entity.MovementReasonOrderCancellation, movs[1].Reason)
}

func TestCreate_FusionaLineasYBloqueaEnOrden(t *testing.T) {
	uc, s := setup(t)

	o, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p2", 1, "p1", 2, "p2", 1)})
	require.NoError(t, err)

	assert.Equal(t, []string{"p1", "p2"}, s.Locks)
	require.Len(t, o.Items, 2)
	assert.Equal(t, "p1", o.Items[0].ProductID)
	assert.Equal(t, "p2", o.Items[1].ProductID)
	assert.Equal(t, 2, o.Items[1].Quantity)
	assert.True(t, o.TotalAmount.Equal(decimal.NewFromInt(131)), o.TotalAmount.String())
	assert.Equal(t, 3, s.Products["p2"].StockQuantity)

	movs := s.MovementsFor("p2")
	require.Len(t, movs, 1)
	assert.Equal(t, 2, movs[0].Quantity)
}

func TestCreate_LineasRepetidasCuentanContraElStock(t *testing.T) {
	uc, s := setup(t)
	_, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p2", 3, "p2", 3)})
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, 5, s.Products["p2"].StockQuantity)
}

func TestCancel_BloqueaEnOrdenDeProducto(t *testing.T) {
	uc, s := setup(t)
	o, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p1", 1, "p2", 1)})
	require.NoError(t, err)

	lines := s.OrderItems[o.ID]
	lines[0], lines[1] = lines[1], lines[0]
	s.Locks = nil

	_, err = uc.Cancel(context.Background(), customer, o.ID, dto.CancelOrderRequest{})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p2"}, s.Locks)
}

func TestCancel_SegundaVezFallaSinTocarStock(t *testing.T) {
	uc, s := setup(t)
	o, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p1", 3)})
	require.NoError(t, err)
	_, err = uc.Cancel(context.Background(), customer, o.ID, dto.CancelOrderRequest{})
	require.NoError(t, err)

	_, err = uc.Cancel(context.Background(), customer, o.ID, dto.CancelOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, 10, s.Products["p1"].StockQuantity)
	assert.Len(t, s.MovementsFor("p1"), 2)
}

func TestCancel_Errores(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Cancel(context.Background(), admin, "missing", dto.CancelOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	o, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p1", 1)})
	require.NoError(t, err)
	_, err = uc.Cancel(context.Background(), other, o.ID, dto.CancelOrderRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestUpdateStatus_Transiciones(t *testing.T) {
	uc, s := setup(t)
	o, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p1", 2)})
	require.NoError(t, err)

	out, err := uc.UpdateStatus(context.Background(), admin, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusProcessing})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusProcessing, out.Status)

	_, err = uc.UpdateStatus(context.Background(), admin, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusPending})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)

	_, err = uc.UpdateStatus(context.Background(), admin, o.ID, dto.UpdateOrderStatusRequest{Status: "shipped"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	// cancelar por updateStatus también repone stock
	out, err = uc.UpdateStatus(context.Background(), admin, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusCancelled, Reason: "fraud"})
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusCancelled, out.Status)
	assert.Equal(t, 10, s.Products["p1"].StockQuantity)

	_, err = uc.UpdateStatus(context.Background(), admin, o.ID, dto.UpdateOrderStatusRequest{Status: entity.OrderStatusCompleted})
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
}

func TestList_CustomerSoloVeLasPropias(t *testing.T) {
	uc, _ := setup(t)
	_, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p1", 1)})
	require.NoError(t, err)
	theirs, err := uc.Create(context.Background(), other, dto.CreateOrderRequest{Items: items("p1", 1)})
	require.NoError(t, err)

	mine, err := uc.List(context.Background(), customer, dto.OrderListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, mine.Total)

	all, err := uc.List(context.Background(), admin, dto.OrderListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2, all.Total)

	_, err = uc.Get(context.Background(), customer, theirs.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.List(context.Background(), admin, dto.OrderListQuery{Status: "bogus"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestReceipt(t *testing.T) {
	uc, _ := setup(t)
	o, err := uc.Create(context.Background(), customer, dto.CreateOrderRequest{Items: items("p1", 1)})
	require.NoError(t, err)

	pdf, name, err := uc.Receipt(context.Background(), customer, o.ID)
	require.NoError(t, err)
	assert.Equal(t, o.OrderNumber+".pdf", name)
	assert.Contains(t, string(pdf), o.OrderNumber)

	uc.receipts = fakeReceipts{err: errors.New("boom")}
	_, _, err = uc.Receipt(context.Background(), customer, o.ID)
	assert.Error(t, err)
}
