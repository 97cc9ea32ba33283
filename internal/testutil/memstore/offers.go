package memstore

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.OfferRepository = (*OfferRepo)(nil)

// OfferRepo ofertas en memoria.
type OfferRepo struct{ s *Store }

// OfferRepo repositorio de ofertas.
func (s *Store) OfferRepo() *OfferRepo { return &OfferRepo{s: s} }

func (r *OfferRepo) Create(_ context.Context, o *entity.Offer) error {
	for _, existing := range r.s.Offers {
		if existing.Code == o.Code {
			return domain.ErrDuplicate
		}
	}
	r.s.Offers[o.ID] = *o
	return nil
}

func (r *OfferRepo) GetByID(_ context.Context, id string) (*entity.Offer, error) {
	o, ok := r.s.Offers[id]
	if !ok {
		return nil, nil
	}
	o.TotalUses = r.uses(id)
	return &o, nil
}

func (r *OfferRepo) GetByCode(_ context.Context, code string) (*entity.Offer, error) {
	for _, o := range r.s.Offers {
		if o.Code == code {
			o.TotalUses = r.uses(o.ID)
			return &o, nil
		}
	}
	return nil, nil
}

func (r *OfferRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Offer, error) {
	return r.GetByCode(ctx, code)
}

func (r *OfferRepo) Update(_ context.Context, o *entity.Offer) error {
	if _, ok := r.s.Offers[o.ID]; !ok {
		return notFound()
	}
	r.s.Offers[o.ID] = *o
	return nil
}

func (r *OfferRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.s.Offers[id]; !ok {
		return notFound()
	}
	delete(r.s.Offers, id)
	kept := r.s.Redemptions[:0]
	for _, red := range r.s.Redemptions {
		if red.OfferID != id {
			kept = append(kept, red)
		}
	}
	r.s.Redemptions = kept
	return nil
}

func (r *OfferRepo) List(_ context.Context, f repository.OfferFilter, p repository.Page) ([]*entity.Offer, int, error) {
	var out []*entity.Offer
	for _, o := range r.s.Offers {
		o := o
		if f.Active != nil && o.IsActive != *f.Active {
			continue
		}
		if f.Type != "" && o.Type != f.Type {
			continue
		}
		o.TotalUses = r.uses(o.ID)
		out = append(out, &o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return paginate(out, p), len(out), nil
}

func (r *OfferRepo) CountUses(_ context.Context, offerID string) (int, error) {
	return r.uses(offerID), nil
}

func (r *OfferRepo) AddRedemption(_ context.Context, red *entity.UserOffer) error {
	r.s.Redemptions = append(r.s.Redemptions, *red)
	return nil
}

func (r *OfferRepo) ListRedemptionsByUser(_ context.Context, userID string, p repository.Page) ([]*entity.UserOffer, int, error) {
	var out []*entity.UserOffer
	for _, red := range r.s.Redemptions {
		red := red
		if red.UserID != userID {
			continue
		}
		o := r.s.Offers[red.OfferID]
		red.OfferCode, red.OfferName, red.OfferType, red.OfferValue = o.Code, o.Name, o.Type, o.Value
		out = append(out, &red)
	}
	newestFirst(out, func(u *entity.UserOffer) time.Time { return u.UsedAt })
	return paginate(out, p), len(out), nil
}

func (r *OfferRepo) uses(offerID string) int {
	n := 0
	for _, red := range r.s.Redemptions {
		if red.OfferID == offerID {
			n++
		}
	}
	return n
}
