// seed_catalog importa un catálogo de productos desde un CSV (UTF-8 o Windows-1252).
// Cada producto se crea a través del caso de uso de inventario, así el stock inicial
// queda en el ledger como movimiento initial_stock. Las categorías faltantes se crean.
//
// Uso: go run ./cmd/seed_catalog <catalogo.csv> <email-admin>
package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/inventory"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/infrastructure/postgres"
	"github.com/jhoicas/engage-api/pkg/config"
	"github.com/jhoicas/engage-api/pkg/logger"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Fprintln(os.Stderr, "uso: seed_catalog <catalogo.csv> <email-admin>")
		os.Exit(2)
	}
	csvPath, adminEmail := os.Args[1], os.Args[2]

	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel}).Component("seed_catalog")

	data, err := os.ReadFile(csvPath)
	if err != nil {
		log.Fatal().Err(err).Str("file", csvPath).Msg("leer CSV")
	}
	rows, err := parseCatalog(data)
	if err != nil {
		log.Fatal().Err(err).Str("file", csvPath).Msg("CSV inválido")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	admin, err := postgres.NewUserRepository(pool).GetByEmail(ctx, strings.ToLower(adminEmail))
	if err != nil || admin == nil || admin.Role != entity.RoleAdmin {
		log.Fatal().Err(err).Str("email", adminEmail).Msg("se requiere un usuario admin existente")
	}
	actor := authz.Actor{ID: admin.ID, Role: admin.Role}

	uc := inventory.NewUseCase(
		postgres.NewProductRepository(pool),
		postgres.NewCategoryRepository(pool),
		postgres.NewInventoryMovementRepository(pool),
		postgres.NewTxRunner(pool),
	)
	categories, err := categoryIndex(ctx, uc)
	if err != nil {
		log.Fatal().Err(err).Msg("listar categorías")
	}

	var created, skipped int
	for _, r := range rows {
		in, err := toRequest(ctx, uc, categories, r)
		if err == nil {
			_, err = uc.CreateProduct(ctx, actor, in)
		}
		if err != nil {
			if errors.Is(err, domain.ErrDuplicate) {
				skipped++
				log.Warn().Int("line", r.Line).Str("sku", r.SKU).Msg("SKU existente, se omite")
				continue
			}
			log.Fatal().Err(err).Int("line", r.Line).Msg("crear producto")
		}
		created++
	}
	log.Info().Int("created", created).Int("skipped", skipped).Msg("catálogo importado")
}

func categoryIndex(ctx context.Context, uc *inventory.UseCase) (map[string]string, error) {
	list, err := uc.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	idx := make(map[string]string, len(list))
	for _, c := range list {
		idx[strings.ToLower(c.Name)] = c.ID
	}
	return idx, nil
}

func toRequest(ctx context.Context, uc *inventory.UseCase, categories map[string]string, r row) (dto.CreateProductRequest, error) {
	in := dto.CreateProductRequest{
		SKU:           r.SKU,
		Name:          r.Name,
		Description:   r.Description,
		Price:         r.Price,
		StockQuantity: r.StockQuantity,
		MinStockLevel: r.MinStockLevel,
	}
	if r.Category == "" {
		return in, nil
	}
	key := strings.ToLower(r.Category)
	if id, ok := categories[key]; ok {
		in.CategoryID = id
		return in, nil
	}
	c, err := uc.CreateCategory(ctx, dto.CreateCategoryRequest{Name: r.Category})
	if err != nil {
		return in, fmt.Errorf("crear categoría %q: %w", r.Category, err)
	}
	categories[key] = c.ID
	in.CategoryID = c.ID
	return in, nil
}
