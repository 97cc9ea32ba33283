// Package integrations administra los descriptores de integración con terceros:
// CRUD, test de conectividad con log y el feed XML de productos.
package integrations

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

// Acciones registradas en el log de la integración.
const (
	ActionTest = "test"
	ActionFeed = "feed"

	logSuccess = "success"
	logFailure = "failure"
)

type UseCase struct {
	integrations repository.IntegrationRepository
	products     repository.ProductRepository
	checker      ports.ConnectivityChecker
	feeds        ports.FeedBuilder
	now          func() time.Time
}

func NewUseCase(
	integrations repository.IntegrationRepository,
	products repository.ProductRepository,
	checker ports.ConnectivityChecker,
	feeds ports.FeedBuilder,
) *UseCase {
	return &UseCase{integrations: integrations, products: products, checker: checker, feeds: feeds, now: time.Now}
}

func (uc *UseCase) List(ctx context.Context, q dto.PageRequest) (*dto.PageResponse[dto.IntegrationResponse], error) {
	page := q.Normalize()
	list, total, err := uc.integrations.List(ctx, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IntegrationResponse, 0, len(list))
	for _, i := range list {
		out = append(out, ToIntegrationResponse(i))
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

func (uc *UseCase) Get(ctx context.Context, id string) (*dto.IntegrationResponse, error) {
	i, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	out := ToIntegrationResponse(i)
	return &out, nil
}

// Create registra la integración; config debe ser un objeto JSON (vacío por defecto).
func (uc *UseCase) Create(ctx context.Context, actor authz.Actor, in dto.IntegrationRequest) (*dto.IntegrationResponse, error) {
	cfg, err := normalizeConfig(in.Config)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	i := &entity.Integration{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		Type:      strings.TrimSpace(in.Type),
		Config:    cfg,
		IsActive:  true,
		CreatedBy: actor.ID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if in.IsActive != nil {
		i.IsActive = *in.IsActive
	}
	if err := uc.integrations.Create(ctx, i); err != nil {
		return nil, err
	}
	out := ToIntegrationResponse(i)
	return &out, nil
}

// Update reemplaza nombre, tipo y config. Sin config se conserva la actual.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.IntegrationRequest) (*dto.IntegrationResponse, error) {
	i, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(in.Config) > 0 {
		if i.Config, err = normalizeConfig(in.Config); err != nil {
			return nil, err
		}
	}
	i.Name = strings.TrimSpace(in.Name)
	i.Type = strings.TrimSpace(in.Type)
	if in.IsActive != nil {
		i.IsActive = *in.IsActive
	}
	i.UpdatedAt = uc.now()
	if err := uc.integrations.Update(ctx, i); err != nil {
		return nil, err
	}
	out := ToIntegrationResponse(i)
	return &out, nil
}

func (uc *UseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return err
	}
	return uc.integrations.Delete(ctx, id)
}

// Test prueba la conectividad contra config.url si existe. El resultado, exitoso o no,
// queda en el log de la integración y actualiza last_test_at.
func (uc *UseCase) Test(ctx context.Context, id string) (*dto.IntegrationTestResponse, error) {
	i, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	resp := &dto.IntegrationTestResponse{
		Success: true,
		Message: "Integration configuration is valid",
		Details: dto.IntegrationTestDetails{Type: i.Type, Timestamp: now},
	}

	var cfg struct {
		URL string `json:"url"`
	}
	_ = json.Unmarshal(i.Config, &cfg)

	switch {
	case !i.IsActive:
		resp.Success = false
		resp.Message = "Integration is inactive"
	case cfg.URL != "" && uc.checker != nil:
		resp.Details.Endpoint = cfg.URL
		code, err := uc.checker.Check(ctx, cfg.URL)
		resp.Details.StatusCode = code
		switch {
		case err != nil:
			resp.Success = false
			resp.Message = fmt.Sprintf("Connection failed: %v", err)
		case code >= 400:
			resp.Success = false
			resp.Message = fmt.Sprintf("Endpoint responded with status %d", code)
		default:
			resp.Message = "Connection successful"
		}
	}

	status := logSuccess
	if !resp.Success {
		status = logFailure
	}
	details, _ := json.Marshal(resp.Details)
	if err := uc.integrations.AddLog(ctx, &entity.IntegrationLog{
		ID:            uuid.New().String(),
		IntegrationID: i.ID,
		Action:        ActionTest,
		Status:        status,
		Message:       resp.Message,
		Details:       details,
		CreatedAt:     now,
	}); err != nil {
		return nil, err
	}
	if err := uc.integrations.MarkTested(ctx, i.ID, now); err != nil {
		return nil, err
	}
	return resp, nil
}

// Logs historial de la integración, más reciente primero.
func (uc *UseCase) Logs(ctx context.Context, id string, q dto.PageRequest) (*dto.PageResponse[dto.IntegrationLogResponse], error) {
	if _, err := uc.mustGet(ctx, id); err != nil {
		return nil, err
	}
	page := q.Normalize()
	list, total, err := uc.integrations.ListLogs(ctx, id, page)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IntegrationLogResponse, 0, len(list))
	for _, l := range list {
		out = append(out, dto.IntegrationLogResponse{
			ID:        l.ID,
			Action:    l.Action,
			Status:    l.Status,
			Message:   l.Message,
			Details:   l.Details,
			CreatedAt: l.CreatedAt,
		})
	}
	resp := dto.NewPageResponse(out, total, page)
	return &resp, nil
}

// Feed catálogo activo en XML para integraciones product_feed activas.
func (uc *UseCase) Feed(ctx context.Context, id string) (*ports.Feed, error) {
	if uc.feeds == nil {
		return nil, fmt.Errorf("feed builder not configured")
	}
	i, err := uc.mustGet(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.Type != entity.IntegrationTypeProductFeed {
		return nil, fmt.Errorf("%w: integration type %q has no product feed", domain.ErrInvalidInput, i.Type)
	}
	if !i.IsActive {
		return nil, fmt.Errorf("%w: integration is inactive", domain.ErrInvalidInput)
	}
	products, err := uc.allProducts(ctx)
	if err != nil {
		return nil, err
	}
	feed, err := uc.feeds.Build(i, products)
	if err != nil {
		return nil, fmt.Errorf("build feed: %w", err)
	}
	details, _ := json.Marshal(map[string]any{"products": len(products), "digest": feed.Digest})
	if err := uc.integrations.AddLog(ctx, &entity.IntegrationLog{
		ID:            uuid.New().String(),
		IntegrationID: i.ID,
		Action:        ActionFeed,
		Status:        logSuccess,
		Message:       "Product feed generated",
		Details:       details,
		CreatedAt:     uc.now(),
	}); err != nil {
		return nil, err
	}
	return feed, nil
}

// allProducts recorre todas las páginas del catálogo activo.
func (uc *UseCase) allProducts(ctx context.Context) ([]*entity.Product, error) {
	var all []*entity.Product
	for page := 1; ; page++ {
		p := repository.NewPage(page, repository.MaxPageSize)
		list, total, err := uc.products.List(ctx, repository.ProductFilter{}, p)
		if err != nil {
			return nil, err
		}
		all = append(all, list...)
		if len(list) == 0 || len(all) >= total {
			return all, nil
		}
	}
}

func (uc *UseCase) mustGet(ctx context.Context, id string) (*entity.Integration, error) {
	i, err := uc.integrations.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i == nil {
		return nil, fmt.Errorf("%w: integration not found", domain.ErrNotFound)
	}
	return i, nil
}

func normalizeConfig(raw json.RawMessage) (json.RawMessage, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return json.RawMessage(`{}`), nil
	}
	var obj map[string]any
	if err := json.Unmarshal(raw, &obj); err != nil {
		return nil, fmt.Errorf("%w: config must be a JSON object", domain.ErrInvalidInput)
	}
	return raw, nil
}

// ToIntegrationResponse mapea la entidad a la respuesta de la API.
func ToIntegrationResponse(i *entity.Integration) dto.IntegrationResponse {
	return dto.IntegrationResponse{
		ID:         i.ID,
		Name:       i.Name,
		Type:       i.Type,
		Config:     i.Config,
		IsActive:   i.IsActive,
		LastTestAt: i.LastTestAt,
		CreatedAt:  i.CreatedAt,
		UpdatedAt:  i.UpdatedAt,
	}
}
