package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	domaininv "github.com/jhoicas/engage-api/internal/domain/inventory"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

// UseCase catálogo de productos, categorías y ajustes de stock auditados.
type UseCase struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	movements  repository.InventoryMovementRepository
	tx         repository.TxRunner
}

// NewUseCase construye el caso de uso de inventario.
func NewUseCase(
	products repository.ProductRepository,
	categories repository.CategoryRepository,
	movements repository.InventoryMovementRepository,
	tx repository.TxRunner,
) *UseCase {
	return &UseCase{products: products, categories: categories, movements: movements, tx: tx}
}

// ListProducts productos activos con nombre de categoría.
func (uc *UseCase) ListProducts(ctx context.Context, q dto.ProductSearchQuery) (*dto.PageResponse[dto.ProductResponse], error) {
	f, err := ProductFilter(q)
	if err != nil {
		return nil, err
	}
	page := q.Normalize()
	list, total, err := uc.products.List(ctx, f, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, ToProductResponse(p))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

// GetProduct detalle de un producto.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.mustProduct(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(p)
	return &out, nil
}

// CreateProduct da de alta el producto con stock 0 y registra el stock inicial en el ledger.
func (uc *UseCase) CreateProduct(ctx context.Context, actor authz.Actor, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", domain.ErrInvalidInput)
	}
	if err := uc.ensureCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	now := time.Now()
	p := &entity.Product{
		ID:            uuid.New().String(),
		SKU:           strings.TrimSpace(in.SKU),
		Name:          strings.TrimSpace(in.Name),
		Description:   in.Description,
		Price:         in.Price,
		MinStockLevel: in.MinStockLevel,
		CategoryID:    in.CategoryID,
		IsActive:      true,
		CreatedBy:     actor.ID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	err := uc.tx.Run(ctx, func(tx repository.TxRepos) error {
		if err := tx.Products.Create(ctx, p); err != nil {
			return err
		}
		if in.StockQuantity == 0 {
			return nil
		}
		_, err := RecordLocked(ctx, tx, p, Entry{
			ProductID: p.ID,
			Quantity:  in.StockQuantity,
			Operation: domaininv.OpIncrement,
			Reason:    entity.MovementReasonInitial,
			ActorID:   actor.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.GetProduct(ctx, p.ID)
}

// UpdateProduct actualización parcial. stock_quantity se aplica como "set" en el ledger
// dentro de la misma transacción.
func (uc *UseCase) UpdateProduct(ctx context.Context, actor authz.Actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	if in.Price != nil && in.Price.IsNegative() {
		return nil, fmt.Errorf("%w: price must be >= 0", domain.ErrInvalidInput)
	}
	if in.CategoryID != nil {
		if err := uc.ensureCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
	}
	err := uc.tx.Run(ctx, func(tx repository.TxRepos) error {
		p, err := tx.Products.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("%w: product not found", domain.ErrNotFound)
		}
		applyProductUpdate(p, in)
		p.UpdatedAt = time.Now()
		if err := tx.Products.Update(ctx, p); err != nil {
			return err
		}
		if in.StockQuantity == nil {
			return nil
		}
		_, err = RecordLocked(ctx, tx, p, Entry{
			ProductID: p.ID,
			Quantity:  *in.StockQuantity,
			Operation: domaininv.OpSet,
			Reason:    entity.MovementReasonManual,
			ActorID:   actor.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return uc.GetProduct(ctx, id)
}

// DeleteProduct baja lógica (is_active = false).
func (uc *UseCase) DeleteProduct(ctx context.Context, id string) error {
	p, err := uc.mustProduct(ctx, id)
	if err != nil {
		return err
	}
	p.IsActive = false
	p.UpdatedAt = time.Now()
	return uc.products.Update(ctx, p)
}

// ListCategories todas las categorías por nombre.
func (uc *UseCase) ListCategories(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt})
	}
	return out, nil
}

// CreateCategory alta de categoría.
func (uc *UseCase) CreateCategory(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	c := &entity.Category{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Description: in.Description,
		CreatedAt:   time.Now(),
	}
	if err := uc.categories.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}, nil
}

// GetStock nivel de stock. available = stock_quantity (las órdenes ya descontaron);
// reserved informa las unidades en órdenes abiertas.
func (uc *UseCase) GetStock(ctx context.Context, productID string) (*dto.StockResponse, error) {
	p, err := uc.mustProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	reserved, err := uc.products.ReservedQuantity(ctx, productID)
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ProductID:     p.ID,
		Quantity:      p.StockQuantity,
		Reserved:      reserved,
		Available:     p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		LowStock:      p.LowStock(),
	}, nil
}

// AdjustStock ajuste manual (increment | decrement | set, por defecto set).
// Los decrementos se limitan en cero.
func (uc *UseCase) AdjustStock(ctx context.Context, actor authz.Actor, productID string, in dto.StockAdjustRequest) (*dto.StockAdjustResponse, error) {
	if in.Quantity == nil {
		return nil, fmt.Errorf("%w: quantity is required", domain.ErrInvalidInput)
	}
	op := in.Operation
	if op == "" {
		op = domaininv.OpSet
	}
	if !domaininv.ValidOperation(op) {
		return nil, fmt.Errorf("%w: operation must be increment, decrement or set", domain.ErrInvalidInput)
	}
	var mov *entity.InventoryMovement
	err := uc.tx.Run(ctx, func(tx repository.TxRepos) error {
		var err error
		_, mov, err = Record(ctx, tx, Entry{
			ProductID: productID,
			Quantity:  *in.Quantity,
			Operation: op,
			Reason:    entity.MovementReasonManual,
			ActorID:   actor.ID,
		})
		return err
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockAdjustResponse{
		ProductID:        productID,
		PreviousQuantity: mov.PreviousQuantity,
		NewQuantity:      mov.NewQuantity,
		Movement:         ToMovementResponse(mov),
	}, nil
}

// ListMovements historial de movimientos del producto, más reciente primero.
func (uc *UseCase) ListMovements(ctx context.Context, productID string, q dto.PageRequest) (*dto.PageResponse[dto.MovementResponse], error) {
	if _, err := uc.mustProduct(ctx, productID); err != nil {
		return nil, err
	}
	page := q.Normalize()
	list, total, err := uc.movements.ListByProduct(ctx, productID, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		out = append(out, ToMovementResponse(m))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

func (uc *UseCase) mustProduct(ctx context.Context, id string) (*entity.Product, error) {
	p, err := uc.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: product not found", domain.ErrNotFound)
	}
	return p, nil
}

func (uc *UseCase) ensureCategory(ctx context.Context, id string) error {
	if id == "" {
		return nil
	}
	c, err := uc.categories.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return fmt.Errorf("%w: category not found", domain.ErrNotFound)
	}
	return nil
}

func applyProductUpdate(p *entity.Product, in dto.UpdateProductRequest) {
	if in.SKU != nil {
		p.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Name != nil {
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Price != nil {
		p.Price = *in.Price
	}
	if in.MinStockLevel != nil {
		p.MinStockLevel = *in.MinStockLevel
	}
	if in.CategoryID != nil {
		p.CategoryID = *in.CategoryID
	}
	if in.IsActive != nil {
		p.IsActive = *in.IsActive
	}
}

// ProductFilter convierte la query de búsqueda en filtro de repositorio.
func ProductFilter(q dto.ProductSearchQuery) (repository.ProductFilter, error) {
	f := repository.ProductFilter{
		Query:      strings.TrimSpace(q.Query),
		CategoryID: q.CategoryID,
		InStock:    q.InStock,
	}
	var err error
	if f.MinPrice, err = parsePrice(q.MinPrice, "min_price"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = parsePrice(q.MaxPrice, "max_price"); err != nil {
		return f, err
	}
	return f, nil
}

func parsePrice(s, field string) (*decimal.Decimal, error) {
	if s == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %s must be a number", domain.ErrInvalidInput, field)
	}
	return &d, nil
}

// ToProductResponse mapea la entidad a la respuesta de la API.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	return dto.ProductResponse{
		ID:            p.ID,
		SKU:           p.SKU,
		Name:          p.Name,
		Description:   p.Description,
		Price:         p.Price,
		StockQuantity: p.StockQuantity,
		MinStockLevel: p.MinStockLevel,
		CategoryID:    p.CategoryID,
		CategoryName:  p.CategoryName,
		IsActive:      p.IsActive,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

// ToMovementResponse mapea un movimiento a la respuesta de la API.
func ToMovementResponse(m *entity.InventoryMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:               m.ID,
		ProductID:        m.ProductID,
		Type:             m.Type,
		Quantity:         m.Quantity,
		PreviousQuantity: m.PreviousQuantity,
		NewQuantity:      m.NewQuantity,
		Reason:           m.Reason,
		ReferenceID:      m.ReferenceID,
		CreatedBy:        m.CreatedBy,
		CreatedAt:        m.CreatedAt,
	}
}
