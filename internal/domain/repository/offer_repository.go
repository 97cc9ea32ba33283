package repository

import (
	"context"

	"github.com/jhoicas/engage-api/internal/domain/entity"
)

// OfferRepository define el puerto de persistencia para Offer y sus redenciones.
type OfferRepository interface {
	Create(ctx context.Context, offer *entity.Offer) error
	GetByID(ctx context.Context, id string) (*entity.Offer, error)
	GetByCode(ctx context.Context, code string) (*entity.Offer, error)
	// GetByCodeForUpdate serializa redenciones concurrentes del mismo código.
	GetByCodeForUpdate(ctx context.Context, code string) (*entity.Offer, error)
	Update(ctx context.Context, offer *entity.Offer) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, f OfferFilter, p Page) ([]*entity.Offer, int, error)
	CountUses(ctx context.Context, offerID string) (int, error)
	AddRedemption(ctx context.Context, r *entity.UserOffer) error
	ListRedemptionsByUser(ctx context.Context, userID string, p Page) ([]*entity.UserOffer, int, error)
}
