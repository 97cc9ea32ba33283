package inventory

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/testutil/memstore"
)

var admin = authz.Actor{ID: "admin-1", Role: entity.RoleAdmin}

func newUseCase() (*UseCase, *memstore.Store) {
	s := memstore.New()
	return NewUseCase(s.ProductRepo(), s.CategoryRepo(), s.MovementRepo(), memstore.NewTxRunner(s)), s
}

func intPtr(v int) *int { return &v }

func createProduct(t *testing.T, uc *UseCase, stock int) *dto.ProductResponse {
	t.Helper()
	p, err := uc.CreateProduct(context.Background(), admin, dto.CreateProductRequest{
		Name:          "Widget",
		Price:         decimal.NewFromInt(25),
		StockQuantity: stock,
		MinStockLevel: 3,
	})
	require.NoError(t, err)
	return p
}

func TestCreateProduct_RegistraStockInicial(t *testing.T) {
	uc, s := newUseCase()
	p := createProduct(t, uc, 10)

	assert.Equal(t, 10, p.StockQuantity)
	movs := s.MovementsFor(p.ID)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementTypeStockIn, movs[0].Type)
	assert.Equal(t, entity.MovementReasonInitial, movs[0].Reason)
	assert.Equal(t, 10, movs[0].Quantity)
	assert.Equal(t, admin.ID, movs[0].CreatedBy)
}

func TestCreateProduct_SinStockNoGeneraMovimiento(t *testing.T) {
	uc, s := newUseCase()
	p := createProduct(t, uc, 0)
	assert.Empty(t, s.MovementsFor(p.ID))
}

func TestCreateProduct_CategoriaInexistente(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.CreateProduct(context.Background(), admin, dto.CreateProductRequest{
		Name:       "Widget",
		Price:      decimal.NewFromInt(1),
		CategoryID: "00000000-0000-0000-0000-000000000099",
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCreateProduct_PrecioNegativo(t *testing.T) {
	uc, _ := newUseCase()
	_, err := uc.CreateProduct(context.Background(), admin, dto.CreateProductRequest{Name: "X", Price: decimal.NewFromInt(-1)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestAdjustStock_Operaciones(t *testing.T) {
	tests := []struct {
		name     string
		op       string
		qty      int
		wantNew  int
		wantType string
		wantQty  int
	}{
		{"increment", "increment", 5, 15, entity.MovementTypeStockIn, 5},
		{"decrement", "decrement", 4, 6, entity.MovementTypeStockOut, 4},
		{"decrement limitado en cero", "decrement", 50, 0, entity.MovementTypeStockOut, 10},
		{"set por defecto", "", 3, 3, entity.MovementTypeStockOut, 7},
		{"set hacia arriba", "set", 12, 12, entity.MovementTypeStockIn, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc, s := newUseCase()
			p := createProduct(t, uc, 10)

			res, err := uc.AdjustStock(context.Background(), admin, p.ID, dto.StockAdjustRequest{Quantity: intPtr(tt.qty), Operation: tt.op})
			require.NoError(t, err)
			assert.Equal(t, 10, res.PreviousQuantity)
			assert.Equal(t, tt.wantNew, res.NewQuantity)
			assert.Equal(t, tt.wantType, res.Movement.Type)
			assert.Equal(t, tt.wantQty, res.Movement.Quantity)
			assert.Equal(t, entity.MovementReasonManual, res.Movement.Reason)

			assert.Equal(t, tt.wantNew, s.Products[p.ID].StockQuantity)
			// stock inicial + el ajuste: exactamente un movimiento por ajuste
			assert.Len(t, s.MovementsFor(p.ID), 2)
		})
	}
}

func TestMovimientos_HistorialCuadra(t *testing.T) {
	uc, s := newUseCase()
	p := createProduct(t, uc, 10)
	for _, adj := range []dto.StockAdjustRequest{
		{Quantity: intPtr(25), Operation: "decrement"},
		{Quantity: intPtr(8), Operation: "set"},
		{Quantity: intPtr(3), Operation: "set"},
		{Quantity: intPtr(4), Operation: "increment"},
	} {
		_, err := uc.AdjustStock(context.Background(), admin, p.ID, adj)
		require.NoError(t, err)
	}

	movs := s.MovementsFor(p.ID)
	require.Len(t, movs, 5)
	for _, m := range movs {
		delta := m.Quantity
		if m.Type == entity.MovementTypeStockOut {
			delta = -delta
		}
		assert.Equal(t, m.NewQuantity, m.PreviousQuantity+delta, "%+v", m)
	}
	assert.Equal(t, 7, s.Products[p.ID].StockQuantity)
}

func TestAdjustStock_ProductoInexistente(t *testing.T) {
	uc, s := newUseCase()
	_, err := uc.AdjustStock(context.Background(), admin, "missing", dto.StockAdjustRequest{Quantity: intPtr(1), Operation: "increment"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, s.Movements)
	assert.Equal(t, 1, s.Rollbacks)
}

func TestAdjustStock_OperacionInvalida(t *testing.T) {
	uc, _ := newUseCase()
	p := createProduct(t, uc, 1)
	_, err := uc.AdjustStock(context.Background(), admin, p.ID, dto.StockAdjustRequest{Quantity: intPtr(1), Operation: "double"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateProduct_StockPorLedger(t *testing.T) {
	uc, s := newUseCase()
	p := createProduct(t, uc, 10)
	name := "Widget Pro"
	price := decimal.NewFromInt(30)

	out, err := uc.UpdateProduct(context.Background(), admin, p.ID, dto.UpdateProductRequest{
		Name:          &name,
		Price:         &price,
		StockQuantity: intPtr(4),
	})
	require.NoError(t, err)
	assert.Equal(t, "Widget Pro", out.Name)
	assert.True(t, out.Price.Equal(price))
	assert.Equal(t, 4, out.StockQuantity)

	movs := s.MovementsFor(p.ID)
	require.Len(t, movs, 2)
	assert.Equal(t, entity.MovementTypeStockOut, movs[1].Type)
	assert.Equal(t, 6, movs[1].Quantity)
}

func TestDeleteProduct_BajaLogica(t *testing.T) {
	uc, s := newUseCase()
	p := createProduct(t, uc, 1)

	require.NoError(t, uc.DeleteProduct(context.Background(), p.ID))
	assert.False(t, s.Products[p.ID].IsActive)

	list, err := uc.ListProducts(context.Background(), dto.ProductSearchQuery{})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)
}

func TestGetStock_Reservado(t *testing.T) {
	uc, s := newUseCase()
	p := createProduct(t, uc, 2)
	s.Orders["o1"] = entity.Order{ID: "o1", Status: entity.OrderStatusPending}
	s.OrderItems["o1"] = []entity.OrderItem{{ID: "i1", OrderID: "o1", ProductID: p.ID, Quantity: 3}}

	st, err := uc.GetStock(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, st.Quantity)
	assert.Equal(t, 2, st.Available)
	assert.Equal(t, 3, st.Reserved)
	assert.True(t, st.LowStock)
}

func TestListMovements_Paginado(t *testing.T) {
	uc, _ := newUseCase()
	p := createProduct(t, uc, 0)
	for i := 0; i < 25; i++ {
		_, err := uc.AdjustStock(context.Background(), admin, p.ID, dto.StockAdjustRequest{Quantity: intPtr(1), Operation: "increment"})
		require.NoError(t, err)
	}

	page, err := uc.ListMovements(context.Background(), p.ID, dto.PageRequest{Page: 2, Limit: 10})
	require.NoError(t, err)
	assert.Equal(t, 25, page.Total)
	assert.Len(t, page.Items, 10)
	// más reciente primero: la página 2 empieza en el movimiento 15
	assert.Equal(t, 15, page.Items[0].NewQuantity)
}

func TestCategories(t *testing.T) {
	uc, _ := newUseCase()
	c, err := uc.CreateCategory(context.Background(), dto.CreateCategoryRequest{Name: "Tools"})
	require.NoError(t, err)

	p, err := uc.CreateProduct(context.Background(), admin, dto.CreateProductRequest{Name: "Hammer", Price: decimal.NewFromInt(9), CategoryID: c.ID})
	require.NoError(t, err)
	assert.Equal(t, "Tools", p.CategoryName)

	list, err := uc.ListCategories(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Tools", list[0].Name)
}

func TestProductFilter_PrecioInvalido(t *testing.T) {
	_, err := ProductFilter(dto.ProductSearchQuery{MinPrice: "abc"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	f, err := ProductFilter(dto.ProductSearchQuery{MinPrice: "10", MaxPrice: "20.5", Query: " wid "})
	require.NoError(t, err)
	assert.Equal(t, "wid", f.Query)
	assert.True(t, f.MaxPrice.Equal(decimal.RequireFromString("20.5")))
}
