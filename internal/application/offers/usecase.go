package offers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/offer"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

// UseCase ofertas promocionales: CRUD, validación sin efectos y redención confirmada.
type UseCase struct {
	offers repository.OfferRepository
	tx     repository.TxRunner
	now    func() time.Time
}

// NewUseCase construye el caso de uso de ofertas.
func NewUseCase(offers repository.OfferRepository, tx repository.TxRunner) *UseCase {
	return &UseCase{offers: offers, tx: tx, now: time.Now}
}

// List ofertas con total_uses. active acepta "true" o "false".
func (uc *UseCase) List(ctx context.Context, q dto.OfferListQuery) (*dto.PageResponse[dto.OfferResponse], error) {
	var f repository.OfferFilter
	if q.Active != "" {
		active, err := strconv.ParseBool(q.Active)
		if err != nil {
			return nil, fmt.Errorf("%w: active must be true or false", domain.ErrInvalidInput)
		}
		f.Active = &active
	}
	if q.Type != "" {
		if !offer.ValidType(q.Type) {
			return nil, fmt.Errorf("%w: type must be percentage or fixed", domain.ErrInvalidInput)
		}
		f.Type = q.Type
	}
	page := q.Normalize()
	list, total, err := uc.offers.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.OfferResponse, 0, len(list))
	for _, o := range list {
		out = append(out, toOfferResponse(o))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

// Get detalle de una oferta.
func (uc *UseCase) Get(ctx context.Context, id string) (*dto.OfferResponse, error) {
	o, err := uc.mustOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	out := toOfferResponse(o)
	return &out, nil
}

// Create alta de oferta. El código se normaliza a mayúsculas y es único.
func (uc *UseCase) Create(ctx context.Context, actor authz.Actor, in dto.CreateOfferRequest) (*dto.OfferResponse, error) {
	now := uc.now()
	o := &entity.Offer{
		ID:          uuid.New().String(),
		Code:        normalizeCode(in.Code),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		Type:        in.Type,
		Value:       in.Value,
		MinPurchase: in.MinPurchase,
		MaxDiscount: in.MaxDiscount,
		UsageLimit:  in.UsageLimit,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		IsActive:    true,
		CreatedBy:   actor.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	if err := validateOffer(o); err != nil {
		return nil, err
	}
	existing, err := uc.offers.GetByCode(ctx, o.Code)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("%w: offer code %s already exists", domain.ErrDuplicate, o.Code)
	}
	if err := uc.offers.Create(ctx, o); err != nil {
		return nil, err
	}
	out := toOfferResponse(o)
	return &out, nil
}

// Update actualización parcial; el código no cambia.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateOfferRequest) (*dto.OfferResponse, error) {
	o, err := uc.mustOffer(ctx, id)
	if err != nil {
		return nil, err
	}
	if in.Name != nil {
		o.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		o.Description = *in.Description
	}
	if in.Type != nil {
		o.Type = *in.Type
	}
	if in.Value != nil {
		o.Value = *in.Value
	}
	if in.MinPurchase != nil {
		o.MinPurchase = in.MinPurchase
	}
	if in.MaxDiscount != nil {
		o.MaxDiscount = in.MaxDiscount
	}
	if in.UsageLimit != nil {
		o.UsageLimit = in.UsageLimit
	}
	if in.StartDate != nil {
		o.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		o.EndDate = *in.EndDate
	}
	if in.IsActive != nil {
		o.IsActive = *in.IsActive
	}
	if err := applyClear(o, in); err != nil {
		return nil, err
	}
	if err := validateOffer(o); err != nil {
		return nil, err
	}
	o.UpdatedAt = uc.now()
	if err := uc.offers.Update(ctx, o); err != nil {
		return nil, err
	}
	out := toOfferResponse(o)
	return &out, nil
}

// applyClear anula los opcionales pedidos en in.Clear. Un pointer nil en la request
// significa "sin cambios", por eso borrar a null necesita nombrarse aparte.
func applyClear(o *entity.Offer, in dto.UpdateOfferRequest) error {
	for _, field := range in.Clear {
		var conflict bool
		switch field {
		case dto.OfferFieldMinPurchase:
			conflict = in.MinPurchase != nil
			o.MinPurchase = nil
		case dto.OfferFieldMaxDiscount:
			conflict = in.MaxDiscount != nil
			o.MaxDiscount = nil
		case dto.OfferFieldUsageLimit:
			conflict = in.UsageLimit != nil
			o.UsageLimit = nil
		default:
			return fmt.Errorf("%w: field %q cannot be cleared", domain.ErrInvalidInput, field)
		}
		if conflict {
			return fmt.Errorf("%w: %s is both set and cleared", domain.ErrInvalidInput, field)
		}
	}
	return nil
}

// Delete elimina la oferta y sus redenciones.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.mustOffer(ctx, id); err != nil {
		return err
	}
	return uc.offers.Delete(ctx, id)
}

// Validate cotiza el descuento de un código para un monto. No registra redención.
func (uc *UseCase) Validate(ctx context.Context, in dto.ValidateOfferRequest) (*dto.ValidateOfferResponse, error) {
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must be >= 0", domain.ErrInvalidInput)
	}
	o, err := uc.offers.GetByCode(ctx, normalizeCode(in.Code))
	if err != nil {
		return nil, err
	}
	q, err := uc.evaluate(ctx, uc.offers, o, in)
	if err != nil {
		return nil, err
	}
	return &dto.ValidateOfferResponse{Offer: toQuote(o, q)}, nil
}

// Redeem confirma el uso: bloquea la oferta, re-valida con el conteo actual e inserta
// una única redención. Dos redenciones concurrentes del mismo código se serializan.
func (uc *UseCase) Redeem(ctx context.Context, actor authz.Actor, in dto.RedeemOfferRequest) (*dto.RedemptionResponse, error) {
	if in.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: amount must be >= 0", domain.ErrInvalidInput)
	}
	var red *entity.UserOffer
	err := uc.tx.Run(ctx, func(tx repository.TxRepos) error {
		o, err := tx.Offers.GetByCodeForUpdate(ctx, normalizeCode(in.Code))
		if err != nil {
			return err
		}
		q, err := uc.evaluate(ctx, tx.Offers, o, dto.ValidateOfferRequest{Code: in.Code, Amount: in.Amount})
		if err != nil {
			return err
		}
		red = &entity.UserOffer{
			ID:         uuid.New().String(),
			UserID:     actor.ID,
			OfferID:    o.ID,
			OrderID:    in.OrderID,
			Discount:   q.Discount,
			UsedAt:     uc.now(),
			OfferCode:  o.Code,
			OfferName:  o.Name,
			OfferType:  o.Type,
			OfferValue: o.Value,
		}
		return tx.Offers.AddRedemption(ctx, red)
	})
	if err != nil {
		return nil, err
	}
	out := toRedemptionResponse(red)
	return &out, nil
}

// UserHistory redenciones de un usuario, más recientes primero (él mismo o staff de servicio).
func (uc *UseCase) UserHistory(ctx context.Context, actor authz.Actor, userID string, q dto.PageRequest) (*dto.PageResponse[dto.RedemptionResponse], error) {
	if !authz.CanActFor(actor.ID, actor.Role, userID) {
		return nil, domain.ErrForbidden
	}
	page := q.Normalize()
	list, total, err := uc.offers.ListRedemptionsByUser(ctx, userID, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.RedemptionResponse, 0, len(list))
	for _, r := range list {
		out = append(out, toRedemptionResponse(r))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

func (uc *UseCase) evaluate(ctx context.Context, repo repository.OfferRepository, o *entity.Offer, in dto.ValidateOfferRequest) (offer.Quote, error) {
	uses := 0
	if o != nil {
		var err error
		if uses, err = repo.CountUses(ctx, o.ID); err != nil {
			return offer.Quote{}, err
		}
	}
	return offer.Evaluate(o, uses, in.Amount, uc.now())
}

func (uc *UseCase) mustOffer(ctx context.Context, id string) (*entity.Offer, error) {
	o, err := uc.offers.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, fmt.Errorf("%w: offer not found", domain.ErrNotFound)
	}
	return o, nil
}

func validateOffer(o *entity.Offer) error {
	switch {
	case o.Code == "":
		return fmt.Errorf("%w: code is required", domain.ErrInvalidInput)
	case !offer.ValidType(o.Type):
		return fmt.Errorf("%w: type must be percentage or fixed", domain.ErrInvalidInput)
	case !o.Value.IsPositive():
		return fmt.Errorf("%w: value must be greater than 0", domain.ErrInvalidInput)
	case o.Type == entity.OfferTypePercentage && o.Value.GreaterThan(decimalHundred):
		return fmt.Errorf("%w: percentage value must be <= 100", domain.ErrInvalidInput)
	case o.MinPurchase != nil && o.MinPurchase.IsNegative():
		return fmt.Errorf("%w: min_purchase must be >= 0", domain.ErrInvalidInput)
	case o.MaxDiscount != nil && o.MaxDiscount.IsNegative():
		return fmt.Errorf("%w: max_discount must be >= 0", domain.ErrInvalidInput)
	case !o.EndDate.After(o.StartDate):
		return fmt.Errorf("%w: end_date must be after start_date", domain.ErrInvalidInput)
	}
	return nil
}

var decimalHundred = decimal.NewFromInt(100)

func normalizeCode(c string) string {
	return strings.ToUpper(strings.TrimSpace(c))
}

func toOfferResponse(o *entity.Offer) dto.OfferResponse {
	return dto.OfferResponse{
		ID:          o.ID,
		Code:        o.Code,
		Name:        o.Name,
		Description: o.Description,
		Type:        o.Type,
		Value:       o.Value,
		MinPurchase: o.MinPurchase,
		MaxDiscount: o.MaxDiscount,
		UsageLimit:  o.UsageLimit,
		TotalUses:   o.TotalUses,
		StartDate:   o.StartDate,
		EndDate:     o.EndDate,
		IsActive:    o.IsActive,
		CreatedAt:   o.CreatedAt,
		UpdatedAt:   o.UpdatedAt,
	}
}

func toQuote(o *entity.Offer, q offer.Quote) dto.OfferQuote {
	return dto.OfferQuote{
		ID:          o.ID,
		Code:        o.Code,
		Type:        o.Type,
		Value:       o.Value,
		Discount:    q.Discount,
		FinalAmount: q.FinalAmount,
	}
}

func toRedemptionResponse(r *entity.UserOffer) dto.RedemptionResponse {
	return dto.RedemptionResponse{
		ID:         r.ID,
		OfferID:    r.OfferID,
		OfferCode:  r.OfferCode,
		OfferName:  r.OfferName,
		OfferType:  r.OfferType,
		OfferValue: r.OfferValue,
		OrderID:    r.OrderID,
		Discount:   r.Discount,
		UsedAt:     r.UsedAt,
	}
}
