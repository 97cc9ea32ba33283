package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, email, password_hash, first_name, last_name, phone, role, is_active, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. Email duplicado → ErrEmailAlreadyExists.
func (r *UserRepo) Create(ctx context.Context, u *entity.User) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.Phone, u.Role, u.IsActive,
		u.CreatedAt, u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID; (nil, nil) si no existe.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)
}

// GetByEmail búsqueda exacta sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.findOne(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
}

func (r *UserRepo) findOne(ctx context.Context, query string, arg any) (*entity.User, error) {
	var u entity.User
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.IsActive,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get user: %w", err)
	}
	return &u, nil
}

// Update persiste datos de perfil, rol y estado.
func (r *UserRepo) Update(ctx context.Context, u *entity.User) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE users SET first_name = $2, last_name = $3, phone = $4, role = $5, is_active = $6,
		       password_hash = $7, updated_at = $8
		WHERE id = $1`,
		u.ID, u.FirstName, u.LastName, u.Phone, u.Role, u.IsActive, u.PasswordHash, u.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update user: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SearchCustomers clientes por nombre, email o teléfono con total de órdenes y gasto
// (solo órdenes completadas), más recientes primero.
func (r *UserRepo) SearchCustomers(ctx context.Context, f repository.CustomerFilter, p repository.Page) ([]*repository.CustomerSummary, int, error) {
	var b filterBuilder
	b.Add("u.role = ?", entity.RoleCustomer)
	if f.Query != "" {
		like := likePattern(f.Query)
		b.Add("(u.email ILIKE ? OR u.first_name ILIKE ? OR u.last_name ILIKE ? OR u.phone ILIKE ?)", like, like, like, like)
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM users u`+b.Where(), b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count customers: %w", err)
	}

	page, args := b.Page(p.Limit, p.Offset())
	rows, err := r.q.Query(ctx, `
		SELECT u.id, u.email, u.password_hash, u.first_name, u.last_name, u.phone, u.role, u.is_active,
		       u.created_at, u.updated_at,
		       COUNT(o.id),
		       COALESCE(SUM(o.total_amount) FILTER (WHERE o.status = 'completed'), 0)
		FROM users u
		LEFT JOIN orders o ON o.customer_id = u.id`+b.Where()+`
		GROUP BY u.id
		ORDER BY u.created_at DESC`+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("search customers: %w", err)
	}
	defer rows.Close()

	var out []*repository.CustomerSummary
	for rows.Next() {
		var c repository.CustomerSummary
		u := &c.User
		if err := rows.Scan(
			&u.ID, &u.Email, &u.PasswordHash, &u.FirstName, &u.LastName, &u.Phone, &u.Role, &u.IsActive,
			&u.CreatedAt, &u.UpdatedAt, &c.TotalOrders, &c.TotalSpent,
		); err != nil {
			return nil, 0, fmt.Errorf("scan customer: %w", err)
		}
		u.PasswordHash = ""
		out = append(out, &c)
	}
	return out, total, rows.Err()
}
