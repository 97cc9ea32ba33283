package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest alta de producto. StockQuantity inicial se registra en el ledger.
type CreateProductRequest struct {
	SKU           string          `json:"sku" validate:"max=64"`
	Name          string          `json:"name" validate:"required,max=255"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity" validate:"min=0"`
	MinStockLevel int             `json:"min_stock_level" validate:"min=0"`
	CategoryID    string          `json:"category_id" validate:"omitempty,uuid"`
}

// UpdateProductRequest actualización parcial (campos nil no cambian).
// StockQuantity, si viene, se aplica como ajuste "set" en el ledger.
type UpdateProductRequest struct {
	SKU           *string          `json:"sku" validate:"omitempty,max=64"`
	Name          *string          `json:"name" validate:"omitempty,max=255"`
	Description   *string          `json:"description"`
	Price         *decimal.Decimal `json:"price"`
	StockQuantity *int             `json:"stock_quantity" validate:"omitempty,min=0"`
	MinStockLevel *int             `json:"min_stock_level" validate:"omitempty,min=0"`
	CategoryID    *string          `json:"category_id" validate:"omitempty,uuid"`
	IsActive      *bool            `json:"is_active"`
}

// ProductResponse producto para la API.
type ProductResponse struct {
	ID            string          `json:"id"`
	SKU           string          `json:"sku"`
	Name          string          `json:"name"`
	Description   string          `json:"description"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStockLevel int             `json:"min_stock_level"`
	CategoryID    string          `json:"category_id,omitempty"`
	CategoryName  string          `json:"category_name,omitempty"`
	IsActive      bool            `json:"is_active"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ProductSearchQuery filtros de búsqueda de productos (query string).
type ProductSearchQuery struct {
	PageRequest
	Query      string `query:"query"`
	CategoryID string `query:"category_id"`
	MinPrice   string `query:"min_price"`
	MaxPrice   string `query:"max_price"`
	InStock    bool   `query:"in_stock"`
}

// CreateCategoryRequest alta de categoría.
type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description"`
}

// CategoryResponse categoría para la API.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

// StockAdjustRequest ajuste manual de stock. Operation por defecto "set".
type StockAdjustRequest struct {
	Quantity  *int   `json:"quantity" validate:"required,min=0"`
	Operation string `json:"operation" validate:"omitempty,oneof=increment decrement set"`
}

// StockResponse nivel de stock de un producto.
// Reserved son unidades de órdenes pending/processing (ya descontadas de Quantity).
type StockResponse struct {
	ProductID     string `json:"product_id"`
	Quantity      int    `json:"quantity"`
	Reserved      int    `json:"reserved"`
	Available     int    `json:"available"`
	MinStockLevel int    `json:"min_stock_level"`
	LowStock      bool   `json:"low_stock"`
}

// StockAdjustResponse resultado del ajuste con el movimiento registrado.
type StockAdjustResponse struct {
	ProductID        string           `json:"product_id"`
	PreviousQuantity int              `json:"previous_quantity"`
	NewQuantity      int              `json:"new_quantity"`
	Movement         MovementResponse `json:"movement"`
}

// MovementResponse movimiento de inventario.
type MovementResponse struct {
	ID               string    `json:"id"`
	ProductID        string    `json:"product_id"`
	Type             string    `json:"type"`
	Quantity         int       `json:"quantity"`
	PreviousQuantity int       `json:"previous_quantity"`
	NewQuantity      int       `json:"new_quantity"`
	Reason           string    `json:"reason"`
	ReferenceID      string    `json:"reference_id,omitempty"`
	CreatedBy        string    `json:"created_by"`
	CreatedAt        time.Time `json:"created_at"`
}
