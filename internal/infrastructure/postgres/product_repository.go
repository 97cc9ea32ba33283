package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
	SELECT p.id, p.sku, p.name, p.description, p.price, p.stock_quantity, p.min_stock_level,
	       p.category_id, COALESCE(c.name, ''), p.is_active, p.created_by, p.created_at, p.updated_at
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto. El stock inicial lo escribe el ledger después.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO products (id, sku, name, description, price, stock_quantity, min_stock_level, category_id, is_active, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		p.ID, nullIfEmpty(p.SKU), p.Name, p.Description, p.Price, p.StockQuantity, p.MinStockLevel,
		nullIfEmpty(p.CategoryID), p.IsActive, nullIfEmpty(p.CreatedBy), p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku already exists", domain.ErrDuplicate)
		}
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: category not found", domain.ErrNotFound)
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID (activo o no).
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	return r.findOne(ctx, productSelect+` WHERE p.id = $1`, id)
}

// GetForUpdate bloquea la fila del producto hasta el fin de la transacción.
func (r *ProductRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.findOne(ctx, productSelect+` WHERE p.id = $1 FOR UPDATE OF p`, id)
}

func (r *ProductRepo) findOne(ctx context.Context, query, id string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

// Update actualiza los datos del producto. No toca stock_quantity (solo el ledger).
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	cmd, err := r.q.Exec(ctx, `
		UPDATE products SET sku = $2, name = $3, description = $4, price = $5, min_stock_level = $6,
		       category_id = $7, is_active = $8, updated_at = $9
		WHERE id = $1`,
		p.ID, nullIfEmpty(p.SKU), p.Name, p.Description, p.Price, p.MinStockLevel,
		nullIfEmpty(p.CategoryID), p.IsActive, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: sku already exists", domain.ErrDuplicate)
		}
		return fmt.Errorf("update product: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// UpdateStock fija la cantidad en stock (llamado por el ledger con la fila bloqueada).
func (r *ProductRepo) UpdateStock(ctx context.Context, id string, quantity int) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE products SET stock_quantity = $2, updated_at = now() WHERE id = $1`, id, quantity)
	if err != nil {
		return fmt.Errorf("update product stock: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List productos filtrados, más recientes primero.
func (r *ProductRepo) List(ctx context.Context, f repository.ProductFilter, pg repository.Page) ([]*entity.Product, int, error) {
	var b filterBuilder
	b.AddIf(!f.IncludeInactive, "p.is_active = TRUE")
	if f.Query != "" {
		like := likePattern(f.Query)
		b.Add("(p.name ILIKE ? OR p.description ILIKE ?)", like, like)
	}
	b.AddIf(f.CategoryID != "", "p.category_id = ?", f.CategoryID)
	if f.MinPrice != nil {
		b.Add("p.price >= ?", *f.MinPrice)
	}
	if f.MaxPrice != nil {
		b.Add("p.price <= ?", *f.MaxPrice)
	}
	b.AddIf(f.InStock, "p.stock_quantity > 0")

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM products p`+b.Where(), b.Args()...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count products: %w", err)
	}

	page, args := b.Page(pg.Limit, pg.Offset())
	rows, err := r.q.Query(ctx, productSelect+b.Where()+` ORDER BY p.created_at DESC, p.name`+page, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, total, rows.Err()
}

// ReservedQuantity unidades comprometidas en órdenes pending/processing.
func (r *ProductRepo) ReservedQuantity(ctx context.Context, id string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(oi.quantity), 0)
		FROM order_items oi
		JOIN orders o ON o.id = oi.order_id
		WHERE oi.product_id = $1 AND o.status IN ('pending', 'processing')`, id).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("reserved quantity: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (*entity.Product, error) {
	var (
		p                          entity.Product
		sku, categoryID, createdBy *string
	)
	if err := row.Scan(
		&p.ID, &sku, &p.Name, &p.Description, &p.Price, &p.StockQuantity, &p.MinStockLevel,
		&categoryID, &p.CategoryName, &p.IsActive, &createdBy, &p.CreatedAt, &p.UpdatedAt,
	); err != nil {
		return nil, err
	}
	p.SKU, p.CategoryID, p.CreatedBy = deref(sku), deref(categoryID), deref(createdBy)
	return &p, nil
}
