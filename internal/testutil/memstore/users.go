package memstore

import (
	"context"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo usuarios en memoria.
type UserRepo struct{ s *Store }

// UserRepo repositorio de usuarios.
func (s *Store) UserRepo() *UserRepo { return &UserRepo{s: s} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range r.s.Users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	r.s.Users[u.ID] = *u
	return nil
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	u, ok := r.s.Users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *UserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range r.s.Users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	if _, ok := r.s.Users[u.ID]; !ok {
		return notFound()
	}
	r.s.Users[u.ID] = *u
	return nil
}

func (r *UserRepo) SearchCustomers(_ context.Context, f repository.CustomerFilter, p repository.Page) ([]*repository.CustomerSummary, int, error) {
	var out []*repository.CustomerSummary
	for _, u := range r.s.Users {
		if u.Role != entity.RoleCustomer {
			continue
		}
		if f.Query != "" && !(contains(u.Email, f.Query) || contains(u.FirstName, f.Query) || contains(u.LastName, f.Query) || contains(u.Phone, f.Query)) {
			continue
		}
		sum := &repository.CustomerSummary{User: u, TotalSpent: decimal.Zero}
		for _, o := range r.s.Orders {
			if o.CustomerID == u.ID {
				sum.TotalOrders++
				if o.Status == entity.OrderStatusCompleted {
					sum.TotalSpent = sum.TotalSpent.Add(o.TotalAmount)
				}
			}
		}
		out = append(out, sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].User.CreatedAt.After(out[j].User.CreatedAt) })
	return paginate(out, p), len(out), nil
}
