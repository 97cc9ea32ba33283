package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/inventory"
)

// InventoryHandler productos, categorías y stock.
type InventoryHandler struct {
	uc *inventory.UseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.UseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// ListProducts godoc
// @Summary      Listar productos activos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        page         query  int     false  "Página"  default(1)
// @Param        limit        query  int     false  "Límite (máx 100)"  default(20)
// @Param        query        query  string  false  "Texto en nombre, descripción o SKU"
// @Param        category_id  query  string  false  "Categoría"
// @Success      200  {object}  dto.PageResponse[dto.ProductResponse]
// @Router       /v1/inventory/products [get]
func (h *InventoryHandler) ListProducts(c *fiber.Ctx) error {
	var q dto.ProductSearchQuery
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.ListProducts(c.UserContext(), q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateProduct godoc
// @Summary      Crear producto
// @Description  El stock inicial se registra como movimiento con motivo initial_stock.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /v1/inventory/products [post]
func (h *InventoryHandler) CreateProduct(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateProduct(c.UserContext(), actor(c), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetProduct godoc
// @Summary      Obtener producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/inventory/products/{productId} [get]
func (h *InventoryHandler) GetProduct(c *fiber.Ctx) error {
	id, err := paramUUID(c, "productId")
	if err != nil {
		return err
	}
	out, err := h.uc.GetProduct(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// UpdateProduct godoc
// @Summary      Actualizar producto (parcial)
// @Description  Un stock_quantity en el cuerpo se aplica como ajuste "set" en el ledger.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                    true  "ID del producto"
// @Param        body       body  dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200  {object}  dto.ProductResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/inventory/products/{productId} [put]
func (h *InventoryHandler) UpdateProduct(c *fiber.Ctx) error {
	id, err := paramUUID(c, "productId")
	if err != nil {
		return err
	}
	var in dto.UpdateProductRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.UpdateProduct(c.UserContext(), actor(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// DeleteProduct godoc
// @Summary      Desactivar producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.SuccessResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/inventory/products/{productId} [delete]
func (h *InventoryHandler) DeleteProduct(c *fiber.Ctx) error {
	id, err := paramUUID(c, "productId")
	if err != nil {
		return err
	}
	if err := h.uc.DeleteProduct(c.UserContext(), id); err != nil {
		return err
	}
	return c.JSON(dto.Success("Product deleted successfully", nil))
}

// ListCategories godoc
// @Summary      Listar categorías
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CategoryResponse
// @Router       /v1/inventory/categories [get]
func (h *InventoryHandler) ListCategories(c *fiber.Ctx) error {
	out, err := h.uc.ListCategories(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// CreateCategory godoc
// @Summary      Crear categoría
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /v1/inventory/categories [post]
func (h *InventoryHandler) CreateCategory(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.CreateCategory(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetStock godoc
// @Summary      Nivel de stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/inventory/stock/{productId} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	id, err := paramUUID(c, "productId")
	if err != nil {
		return err
	}
	out, err := h.uc.GetStock(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar stock
// @Description  operation: increment, decrement o set (default). Un decremento no baja de cero.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        productId  path  string                  true  "ID del producto"
// @Param        body       body  dto.StockAdjustRequest  true  "quantity, operation"
// @Success      200  {object}  dto.StockAdjustResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/inventory/stock/{productId} [put]
func (h *InventoryHandler) AdjustStock(c *fiber.Ctx) error {
	id, err := paramUUID(c, "productId")
	if err != nil {
		return err
	}
	var in dto.StockAdjustRequest
	if err := bindJSON(c, &in); err != nil {
		return err
	}
	out, err := h.uc.AdjustStock(c.UserContext(), actor(c), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// ListMovements godoc
// @Summary      Movimientos de stock de un producto
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        productId  path   string  true   "ID del producto"
// @Param        page       query  int     false  "Página"
// @Param        limit      query  int     false  "Límite"
// @Success      200  {object}  dto.PageResponse[dto.MovementResponse]
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /v1/inventory/stock/{productId}/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	id, err := paramUUID(c, "productId")
	if err != nil {
		return err
	}
	var q dto.PageRequest
	if err := bindQuery(c, &q); err != nil {
		return err
	}
	out, err := h.uc.ListMovements(c.UserContext(), id, q)
	if err != nil {
		return err
	}
	return c.JSON(out)
}
