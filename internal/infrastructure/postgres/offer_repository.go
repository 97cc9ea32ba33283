package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.OfferRepository = (*OfferRepo)(nil)

const offerSelect = `
	SELECT o.id, o.code, o.name, o.description, o.type, o.value, o.min_purchase, o.max_discount,
	       o.usage_limit, o.start_date, o.end_date, o.is_active,
	       (SELECT COUNT(*) FROM user_offers uo WHERE uo.offer_id = o.id),
	       o.created_by, o.created_at, o.updated_at
	FROM offers o`

// OfferRepo ofertas y redenciones sobre PostgreSQL (usable con pool o tx).
type OfferRepo struct {
	q Querier
}

func NewOfferRepository(q Querier) *OfferRepo {
	return &OfferRepo{q: q}
}

// Create código duplicado → ErrDuplicate.
func (r *OfferRepo) Create(ctx context.Context, o *entity.Offer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO offers (id, code, name, description, type, value, min_purchase, max_discount, usage_limit, start_date, end_date, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`,
		o.ID, o.Code, o.Name, o.Description, o.Type, o.Value, o.MinPurchase, o.MaxDiscount, o.UsageLimit,
		o.StartDate, o.EndDate, o.IsActive, nullIfEmpty(o.CreatedBy), o.CreatedAt, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: offer code already exists", domain.ErrDuplicate)
		}
		return fmt.Errorf("insert offer: %w", err)
	}
	return nil
}

func (r *OfferRepo) GetByID(ctx context.Context, id string) (*entity.Offer, error) {
	return r.findOne(ctx, offerSelect+` WHERE o.id = $1`, id)
}

func (r *OfferRepo) GetByCode(ctx context.Context, code string) (*entity.Offer, error) {
	return r.findOne(ctx, offerSelect+` WHERE o.code = $1`, code)
}

// GetByCodeForUpdate bloquea la oferta: las redenciones del mismo código se serializan.
func (r *OfferRepo) GetByCodeForUpdate(ctx context.Context, code string) (*entity.Offer, error) {
	return r.findOne(ctx, offerSelect+` WHERE o.code = $1 FOR UPDATE OF o`, code)
}

func (r *OfferRepo) findOne(ctx context.Context, query, arg string) (*entity.Offer, error) {
	o, err := scanOffer(r.q.QueryRow(ctx, query, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get offer: %w", err)
	}
	return o, nil
}

func (r *OfferRepo) Update(ctx context.Context, o *entity.Offer) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE offers SET code = $2, name = $3, description = $4, type = $5, value = $6, min_purchase = $7,
		       max_discount = $8, usage_limit = $9, start_date = $10, end_date = $11, is_active = $12, updated_at = $13
		WHERE id = $1`,
		o.ID, o.Code, o.Name, o.Description, o.Type, o.Value, o.MinPurchase, o.MaxDiscount, o.UsageLimit,
		o.StartDate, o.EndDate, o.IsActive, o.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: offer code already exists", domain.ErrDuplicate)
		}
		return fmt.Errorf("update offer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete borra la oferta; las redenciones caen por ON DELETE CASCADE.
func (r *OfferRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM offers WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete offer: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *OfferRepo) List(ctx context.Context, f repository.OfferFilter, p repository.Page) ([]*entity.Offer, int, error) {
	var b filterBuilder
	if f.Active != nil {
		b.Add("o.is_active = ?", *f.Active)
	}
	b.AddIf(f.Type != "", "o.type = ?", f.Type)

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM offers o`+b.Where(), b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count offers: %w", err)
	}
	page, args := b.Page(p.Limit, p.Offset())
	rows, err := r.q.Query(ctx, offerSelect+b.Where()+` ORDER BY o.created_at DESC`+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list offers: %w", err)
	}
	defer rows.Close()
	var out []*entity.Offer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan offer: %w", err)
		}
		out = append(out, o)
	}
	return out, total, rows.Err()
}

func (r *OfferRepo) CountUses(ctx context.Context, offerID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM user_offers WHERE offer_id = $1`, offerID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count offer uses: %w", err)
	}
	return n, nil
}

func (r *OfferRepo) AddRedemption(ctx context.Context, u *entity.UserOffer) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO user_offers (id, user_id, offer_id, order_id, discount, used_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.UserID, u.OfferID, nullIfEmpty(u.OrderID), u.Discount, u.UsedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: order not found", domain.ErrNotFound)
		}
		return fmt.Errorf("insert redemption: %w", err)
	}
	return nil
}

// ListRedemptionsByUser historial con datos de la oferta, más reciente primero.
func (r *OfferRepo) ListRedemptionsByUser(ctx context.Context, userID string, p repository.Page) ([]*entity.UserOffer, int, error) {
	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM user_offers WHERE user_id = $1`, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count redemptions: %w", err)
	}
	rows, err := r.q.Query(ctx, `
		SELECT uo.id, uo.user_id, uo.offer_id, uo.order_id, uo.discount, uo.used_at,
		       o.code, o.name, o.type, o.value
		FROM user_offers uo
		JOIN offers o ON o.id = uo.offer_id
		WHERE uo.user_id = $1
		ORDER BY uo.used_at DESC
		LIMIT $2 OFFSET $3`, userID, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("list redemptions: %w", err)
	}
	defer rows.Close()
	var out []*entity.UserOffer
	for rows.Next() {
		var (
			u       entity.UserOffer
			orderID *string
		)
		if err := rows.Scan(&u.ID, &u.UserID, &u.OfferID, &orderID, &u.Discount, &u.UsedAt,
			&u.OfferCode, &u.OfferName, &u.OfferType, &u.OfferValue); err != nil {
			return nil, 0, fmt.Errorf("scan redemption: %w", err)
		}
		u.OrderID = deref(orderID)
		out = append(out, &u)
	}
	return out, total, rows.Err()
}

func scanOffer(row rowScanner) (*entity.Offer, error) {
	var (
		o         entity.Offer
		createdBy *string
	)
	if err := row.Scan(
		&o.ID, &o.Code, &o.Name, &o.Description, &o.Type, &o.Value, &o.MinPurchase, &o.MaxDiscount,
		&o.UsageLimit, &o.StartDate, &o.EndDate, &o.IsActive, &o.TotalUses,
		&createdBy, &o.CreatedAt, &o.UpdatedAt,
	); err != nil {
		return nil, err
	}
	o.CreatedBy = deref(createdBy)
	return &o, nil
}
