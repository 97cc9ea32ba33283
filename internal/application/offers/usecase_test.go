package offers

import (
	"context"
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
	now      = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	admin    = authz.Actor{ID: "admin-1", Role: entity.RoleAdmin}
	customer = authz.Actor{ID: "cust-1", Role: entity.RoleCustomer}
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }
func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}
func intPtr(v int) *int { return &v }
func strPtr(v string) *string { return &v }

func setup(t *testing.T) (*UseCase, *memstore.Store) {
	t.Helper()
	s := memstore.New()
	uc := NewUseCase(s.OfferRepo(), memstore.NewTxRunner(s))
	uc.now = func() time.Time { return now }
	return uc, s
}

func save10(t *testing.T, uc *UseCase, limit *int) *dto.OfferResponse {
	t.Helper()
	o, err := uc.Create(context.Background(), admin, dto.CreateOfferRequest{
		Code:        "save10",
		Name:        "Save 10%",
		Type:        entity.OfferTypePercentage,
		Value:       dec("10"),
		MaxDiscount: decPtr("20"),
		MinPurchase: decPtr("50"),
		UsageLimit:  limit,
		StartDate:   now.AddDate(0, -1, 0),
		EndDate:     now.AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	return o
}

func TestValidate_DescuentoPorcentualConTope(t *testing.T) {
	uc, _ := setup(t)
	save10(t, uc, nil)

	res, err := uc.Validate(context.Background(), dto.ValidateOfferRequest{Code: "SAVE10", Amount: dec("300")})
	require.NoError(t, err)
	assert.True(t, res.Offer.Discount.Equal(dec("20")))
	assert.True(t, res.Offer.FinalAmount.Equal(dec("280")))

	res, err = uc.Validate(context.Background(), dto.ValidateOfferRequest{Code: "save10", Amount: dec("100")})
	require.NoError(t, err)
	assert.True(t, res.Offer.Discount.Equal(dec("10")))
	assert.True(t, res.Offer.FinalAmount.Equal(dec("90")))
}

func TestValidate_NoRegistraRedencion(t *testing.T) {
	uc, s := setup(t)
	save10(t, uc, intPtr(1))
	for i := 0; i < 3; i++ {
		_, err := uc.Validate(context.Background(), dto.ValidateOfferRequest{Code: "SAVE10", Amount: dec("100")})
		require.NoError(t, err)
	}
	assert.Empty(t, s.Redemptions)
}

func TestValidate_Errores(t *testing.T) {
	uc, _ := setup(t)
	save10(t, uc, nil)

	_, err := uc.Validate(context.Background(), dto.ValidateOfferRequest{Code: "NOPE", Amount: dec("100")})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Validate(context.Background(), dto.ValidateOfferRequest{Code: "SAVE10", Amount: dec("49.99")})
	assert.ErrorIs(t, err, domain.ErrMinPurchaseRequired)
	assert.Contains(t, err.Error(), "50.00")

	uc.now = func() time.Time { return now.AddDate(0, 2, 0) }
	_, err = uc.Validate(context.Background(), dto.ValidateOfferRequest{Code: "SAVE10", Amount: dec("100")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedeem_RespetaLimite(t *testing.T) {
	uc, s := setup(t)
	o := save10(t, uc, intPtr(2))

	for i := 0; i < 2; i++ {
		red, err := uc.Redeem(context.Background(), customer, dto.RedeemOfferRequest{Code: "SAVE10", Amount: dec("100")})
		require.NoError(t, err)
		assert.Equal(t, o.ID, red.OfferID)
		assert.True(t, red.Discount.Equal(dec("10")))
	}
	_, err := uc.Redeem(context.Background(), customer, dto.RedeemOfferRequest{Code: "SAVE10", Amount: dec("100")})
	assert.ErrorIs(t, err, domain.ErrOfferLimitReached)
	assert.Len(t, s.Redemptions, 2)

	// una vez alcanzado el límite, validar falla sin importar el monto
	_, err = uc.Validate(context.Background(), dto.ValidateOfferRequest{Code: "SAVE10", Amount: dec("1000")})
	assert.ErrorIs(t, err, domain.ErrOfferLimitReached)

	got, err := uc.Get(context.Background(), o.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, got.TotalUses)
}

func TestUserHistory(t *testing.T) {
	uc, _ := setup(t)
	save10(t, uc, nil)
	_, err := uc.Redeem(context.Background(), customer, dto.RedeemOfferRequest{Code: "SAVE10", Amount: dec("100")})
	require.NoError(t, err)

	page, err := uc.UserHistory(context.Background(), customer, customer.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Equal(t, 1, page.Total)
	assert.Equal(t, "SAVE10", page.Items[0].OfferCode)

	_, err = uc.UserHistory(context.Background(), authz.Actor{ID: "cust-2", Role: entity.RoleCustomer}, customer.ID, dto.PageRequest{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = uc.UserHistory(context.Background(), admin, customer.ID, dto.PageRequest{})
	assert.NoError(t, err)
}

func TestCreate_Validaciones(t *testing.T) {
	uc, _ := setup(t)
	save10(t, uc, nil)

	base := dto.CreateOfferRequest{
		Code: "X", Name: "X", Type: entity.OfferTypeFixed, Value: dec("5"),
		StartDate: now, EndDate: now.AddDate(0, 0, 7),
	}
	dup := base
	dup.Code = " Save10 "
	_, err := uc.Create(context.Background(), admin, dup)
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	bad := base
	bad.EndDate = now.AddDate(0, 0, -1)
	_, err = uc.Create(context.Background(), admin, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	bad = base
	bad.Type = entity.OfferTypePercentage
	bad.Value = dec("150")
	_, err = uc.Create(context.Background(), admin, bad)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdateListDelete(t *testing.T) {
	uc, s := setup(t)
	o := save10(t, uc, nil)
	inactive := false

	up, err := uc.Update(context.Background(), o.ID, dto.UpdateOfferRequest{IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, up.IsActive)

	list, err := uc.List(context.Background(), dto.OfferListQuery{Active: "true"})
	require.NoError(t, err)
	assert.Equal(t, 0, list.Total)

	_, err = uc.List(context.Background(), dto.OfferListQuery{Active: "maybe"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.Delete(context.Background(), o.ID))
	assert.Empty(t, s.Offers)
	assert.ErrorIs(t, uc.Delete(context.Background(), o.ID), domain.ErrNotFound)
}

func TestUpdate_ClearVuelveANull(t *testing.T) {
	uc, s := setup(t)
	o := save10(t, uc, intPtr(5))

	up, err := uc.Update(context.Background(), o.ID, dto.UpdateOfferRequest{
		Clear: []string{dto.OfferFieldMinPurchase, dto.OfferFieldMaxDiscount, dto.OfferFieldUsageLimit},
	})
	require.NoError(t, err)
	assert.Nil(t, up.MinPurchase)
	assert.Nil(t, up.MaxDiscount)
	assert.Nil(t, up.UsageLimit)
	stored := s.Offers[o.ID]
	assert.Nil(t, stored.MinPurchase)
	assert.Nil(t, stored.UsageLimit)

	// sin Clear, un pointer nil no toca el valor
	up, err = uc.Update(context.Background(), o.ID, dto.UpdateOfferRequest{MaxDiscount: decPtr("15")})
	require.NoError(t, err)
	require.NotNil(t, up.MaxDiscount)
	assert.True(t, up.MaxDiscount.Equal(dec("15")))
	up, err = uc.Update(context.Background(), o.ID, dto.UpdateOfferRequest{Name: strPtr("Save more")})
	require.NoError(t, err)
	require.NotNil(t, up.MaxDiscount)
}

func TestUpdate_ClearConflictos(t *testing.T) {
	uc, s := setup(t)
	o := save10(t, uc, nil)

	_, err := uc.Update(context.Background(), o.ID, dto.UpdateOfferRequest{
		MinPurchase: decPtr("10"),
		Clear:       []string{dto.OfferFieldMinPurchase},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Update(context.Background(), o.ID, dto.UpdateOfferRequest{Clear: []string{"value"}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NotNil(t, s.Offers[o.ID].MinPurchase)
	assert.True(t, s.Offers[o.ID].MinPurchase.Equal(dec("50")))
}

func TestCreate_CodigoEnMayusculas(t *testing.T) {
	uc, _ := setup(t)
	o := save10(t, uc, nil)
	assert.Equal(t, "SAVE10", o.Code)

	_, err := uc.Validate(context.Background(), dto.ValidateOfferRequest{Code: " Save10 ", Amount: dec("100")})
	assert.NoError(t, err)
}
