package http_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/engage-api/internal/application/ai"
	appanalytics "github.com/jhoicas/engage-api/internal/application/analytics"
	"github.com/jhoicas/engage-api/internal/application/auth"
	"github.com/jhoicas/engage-api/internal/application/communication"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/integrations"
	"github.com/jhoicas/engage-api/internal/application/inventory"
	"github.com/jhoicas/engage-api/internal/application/offers"
	"github.com/jhoicas/engage-api/internal/application/orders"
	"github.com/jhoicas/engage-api/internal/application/search"
	"github.com/jhoicas/engage-api/internal/application/support"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	aiinfra "github.com/jhoicas/engage-api/internal/infrastructure/ai"
	"github.com/jhoicas/engage-api/internal/infrastructure/feed"
	"github.com/jhoicas/engage-api/internal/infrastructure/notify"
	"github.com/jhoicas/engage-api/internal/infrastructure/pdf"
	"github.com/jhoicas/engage-api/internal/infrastructure/redis"
	apihttp "github.com/jhoicas/engage-api/internal/interfaces/http"
	"github.com/jhoicas/engage-api/internal/testutil/memstore"
	"github.com/jhoicas/engage-api/pkg/logger"
)

const (
	testPassword = "s3cret-pass"
	// id bien formado que no existe en el store
	absentID = "6f1c2a9e-3b7d-4c1e-9a55-0d2b7e8f4a10"
)

type testEnv struct {
	app    *fiber.App
	store  *memstore.Store
	authUC *auth.AuthUseCase
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	s := memstore.New()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	for _, u := range []entity.User{
		{ID: "u-admin", Email: "admin@example.com", FirstName: "Ada", Role: entity.RoleAdmin},
		{ID: "u-viewer", Email: "viewer@example.com", FirstName: "Vic", Role: entity.RoleViewer},
		{ID: "u-customer", Email: "customer@example.com", FirstName: "Cam", Role: entity.RoleCustomer},
	} {
		u.PasswordHash = string(hash)
		u.IsActive = true
		s.Users[u.ID] = u
	}

	log := logger.Nop()
	tx := memstore.NewTxRunner(s)
	authUC := auth.NewAuthUseCase(s.UserRepo(), redis.NewMemoryRevoker(), auth.JWTConfig{
		Secret:            "access-secret",
		RefreshSecret:     "refresh-secret",
		ExpMinutes:        15,
		RefreshExpMinutes: 60,
		Issuer:            "engage-test",
	})
	notifier := notify.NewLogNotifier("test", "sent", log)

	app := fiber.New(fiber.Config{ErrorHandler: apihttp.ErrorHandler(false, log)})
	app.Get("/health", apihttp.Health("test"))
	apihttp.Router(app, apihttp.RouterDeps{
		AuthUC:      authUC,
		InventoryUC: inventory.NewUseCase(s.ProductRepo(), s.CategoryRepo(), s.MovementRepo(), tx),
		OrdersUC:    orders.NewUseCase(s.OrderRepo(), s.UserRepo(), tx, pdf.NewReceiptGenerator("")),
		OffersUC:    offers.NewUseCase(s.OfferRepo(), tx),
		SupportUC:   support.NewUseCase(s.TicketRepo(), s.FAQRepo(), tx),
		AIUC:        ai.NewUseCase(s.AgentRepo(), s.InteractionRepo(), aiinfra.NewRouter(nil, nil)),
		CommunicationUC: communication.NewUseCase(s.MessageRepo(), s.UserRepo(), communication.Notifiers{
			Call: notifier, SMS: notifier, Email: notifier, Social: notifier,
		}, log),
		AnalyticsUC:    appanalytics.NewAnalyticsUseCase(nil),
		DashboardUC:    appanalytics.NewDashboardUseCase(nil),
		SearchUC:       search.NewUseCase(s.ProductRepo(), s.UserRepo(), s.OrderRepo()),
		IntegrationsUC: integrations.NewUseCase(s.IntegrationRepo(), s.ProductRepo(), nil, feed.NewBuilder()),
	})
	return &testEnv{app: app, store: s, authUC: authUC}
}

func (e *testEnv) token(t *testing.T, email string) string {
	t.Helper()
	res, err := e.authUC.Login(context.Background(), dto.LoginRequest{Email: email, Password: testPassword})
	require.NoError(t, err)
	return res.AccessToken
}

func (e *testEnv) do(t *testing.T, method, path, token, body string, headers ...string) (int, []byte) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	for i := 0; i+1 < len(headers); i += 2 {
		req.Header.Set(headers[i], headers[i+1])
	}
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, data
}

func decodeError(t *testing.T, data []byte) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.Unmarshal(data, &out), string(data))
	return out
}

func TestHealth(t *testing.T) {
	e := newTestEnv(t)
	status, body := e.do(t, fiber.MethodGet, "/health", "", "")
	assert.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `{"status":"ok","version":"test"}`, string(body))
}

func TestHealth_DependenciaCaida503(t *testing.T) {
	app := fiber.New()
	up := apihttp.HealthCheck{Name: "postgres", Ping: func(context.Context) error { return nil }}
	down := apihttp.HealthCheck{Name: "redis", Ping: func(context.Context) error { return errors.New("connection refused") }}
	app.Get("/ok", apihttp.Health("test", up))
	app.Get("/down", apihttp.Health("test", up, down))

	resp, err := app.Test(httptest.NewRequest(fiber.MethodGet, "/ok", nil), -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok","version":"test","checks":{"postgres":"ok"}}`, string(body))

	resp, err = app.Test(httptest.NewRequest(fiber.MethodGet, "/down", nil), -1)
	require.NoError(t, err)
	body, _ = io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{"status":"degraded","version":"test","checks":{"postgres":"ok","redis":"connection refused"}}`, string(body))
}

func TestProtected_SinToken401(t *testing.T) {
	e := newTestEnv(t)
	for _, path := range []string{"/v1/orders", "/v1/inventory/products", "/v1/ai/agents"} {
		status, body := e.do(t, fiber.MethodGet, path, "", "")
		assert.Equal(t, fiber.StatusUnauthorized, status, path)
		assert.Equal(t, apihttp.CodeUnauthorized, decodeError(t, body).Code, path)
	}

	status, _ := e.do(t, fiber.MethodGet, "/v1/orders", "not-a-jwt", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestAuthorize_RolAntesQueRecurso(t *testing.T) {
	e := newTestEnv(t)
	viewer := e.token(t, "viewer@example.com")

	// El producto no existe, pero el rol se evalúa primero.
	status, body := e.do(t, fiber.MethodDelete, "/v1/inventory/products/"+absentID, viewer, "")
	assert.Equal(t, fiber.StatusForbidden, status)
	assert.Equal(t, apihttp.CodeForbidden, decodeError(t, body).Code)

	customer := e.token(t, "customer@example.com")
	status, _ = e.do(t, fiber.MethodGet, "/v1/analytics/sales", customer, "")
	assert.Equal(t, fiber.StatusForbidden, status)
	status, _ = e.do(t, fiber.MethodGet, "/v1/integrations", viewer, "")
	assert.Equal(t, fiber.StatusForbidden, status)
}

func TestNotFound(t *testing.T) {
	e := newTestEnv(t)
	admin := e.token(t, "admin@example.com")
	status, body := e.do(t, fiber.MethodGet, "/v1/inventory/products/"+absentID, admin, "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, apihttp.CodeNotFound, decodeError(t, body).Code)
}

func TestIDMalFormado404(t *testing.T) {
	e := newTestEnv(t)
	admin := e.token(t, "admin@example.com")
	cases := []struct {
		method string
		path   string
		body   string
	}{
		{fiber.MethodGet, "/v1/orders/not-a-uuid", ""},
		{fiber.MethodPost, "/v1/orders/not-a-uuid/cancel", `{}`},
		{fiber.MethodGet, "/v1/inventory/products/123", ""},
		{fiber.MethodPut, "/v1/inventory/stock/x", `{}`},
		{fiber.MethodGet, "/v1/offers/abc", ""},
		{fiber.MethodGet, "/v1/support/tickets/abc", ""},
		{fiber.MethodGet, "/v1/ai/agents/abc", ""},
		{fiber.MethodGet, "/v1/communication/calls/abc", ""},
		{fiber.MethodGet, "/v1/integrations/abc/feed", ""},
	}
	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			status, body := e.do(t, tc.method, tc.path, admin, tc.body)
			assert.Equal(t, fiber.StatusNotFound, status, string(body))
			assert.Equal(t, apihttp.CodeNotFound, decodeError(t, body).Code)
		})
	}
}

func TestValidation_DetallesPorCampo(t *testing.T) {
	e := newTestEnv(t)
	admin := e.token(t, "admin@example.com")
	status, body := e.do(t, fiber.MethodPost, "/v1/inventory/products", admin, `{"price":"10","stock_quantity":-1}`)
	require.Equal(t, fiber.StatusBadRequest, status, string(body))

	var out struct {
		Code    string               `json:"code"`
		Details []apihttp.FieldError `json:"details"`
	}
	require.NoError(t, json.Unmarshal(body, &out))
	assert.Equal(t, apihttp.CodeBadRequest, out.Code)
	fields := map[string]string{}
	for _, f := range out.Details {
		fields[f.Field] = f.Rule
	}
	assert.Equal(t, "required", fields["name"])
	assert.Equal(t, "min", fields["stock_quantity"])
}

func TestCreateProduct_YListado(t *testing.T) {
	e := newTestEnv(t)
	admin := e.token(t, "admin@example.com")
	status, body := e.do(t, fiber.MethodPost, "/v1/inventory/products", admin, `{"name":"Mug","price":"12.50","stock_quantity":5}`)
	require.Equal(t, fiber.StatusCreated, status, string(body))

	viewer := e.token(t, "viewer@example.com")
	status, body = e.do(t, fiber.MethodGet, "/v1/inventory/products", viewer, "")
	require.Equal(t, fiber.StatusOK, status)
	var page dto.PageResponse[dto.ProductResponse]
	require.NoError(t, json.Unmarshal(body, &page))
	require.Len(t, page.Items, 1)
	assert.Equal(t, "Mug", page.Items[0].Name)
	assert.Equal(t, 5, page.Items[0].StockQuantity)
}

func TestLoginLogout(t *testing.T) {
	e := newTestEnv(t)
	status, body := e.do(t, fiber.MethodPost, "/v1/auth/login", "", `{"email":"admin@example.com","password":"wrong"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, apihttp.CodeUnauthorized, decodeError(t, body).Code)

	status, body = e.do(t, fiber.MethodPost, "/v1/auth/login", "", `{"email":"admin@example.com","password":"`+testPassword+`"}`)
	require.Equal(t, fiber.StatusOK, status, string(body))
	var login dto.LoginResponse
	require.NoError(t, json.Unmarshal(body, &login))
	require.NotEmpty(t, login.AccessToken)

	status, _ = e.do(t, fiber.MethodGet, "/v1/orders", login.AccessToken, "")
	assert.Equal(t, fiber.StatusOK, status)

	status, _ = e.do(t, fiber.MethodPost, "/v1/auth/logout", login.AccessToken, "")
	require.Equal(t, fiber.StatusOK, status)

	status, _ = e.do(t, fiber.MethodGet, "/v1/orders", login.AccessToken, "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestFAQ_Publico(t *testing.T) {
	e := newTestEnv(t)
	e.store.FAQs["f1"] = entity.FAQ{ID: "f1", Question: "¿Envíos?", Answer: "Sí", Category: "shipping", IsActive: true, CreatedAt: time.Now()}

	status, body := e.do(t, fiber.MethodGet, "/v1/support/faq/categories", "", "")
	require.Equal(t, fiber.StatusOK, status)
	assert.JSONEq(t, `["shipping"]`, string(body))

	status, _ = e.do(t, fiber.MethodGet, "/v1/support/faq", "", "")
	assert.Equal(t, fiber.StatusOK, status)

	// Escritura sigue protegida.
	status, _ = e.do(t, fiber.MethodPost, "/v1/support/faq", "", `{"question":"q","answer":"a"}`)
	assert.Equal(t, fiber.StatusUnauthorized, status)
}

func TestIntegrationFeed_ETag(t *testing.T) {
	e := newTestEnv(t)
	const integrationID = "0b6c5d4e-8f7a-4b3c-a2d1-e9f8a7b6c5d4"
	e.store.Products["p1"] = entity.Product{ID: "p1", SKU: "MUG-1", Name: "Mug", Price: decimal.RequireFromString("12.50"), StockQuantity: 3, IsActive: true, CreatedAt: time.Now()}
	e.store.Integrations[integrationID] = entity.Integration{ID: integrationID, Name: "Shop", Type: entity.IntegrationTypeProductFeed, Config: json.RawMessage(`{}`), IsActive: true, CreatedAt: time.Now()}
	admin := e.token(t, "admin@example.com")

	req := httptest.NewRequest(fiber.MethodGet, "/v1/integrations/"+integrationID+"/feed", nil)
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+admin)
	resp, err := e.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Contains(t, resp.Header.Get(fiber.HeaderContentType), "application/xml")
	etag := resp.Header.Get(fiber.HeaderETag)
	require.NotEmpty(t, etag)
	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "MUG-1")

	status, _ := e.do(t, fiber.MethodGet, "/v1/integrations/"+integrationID+"/feed", admin, "", fiber.HeaderIfNoneMatch, etag)
	assert.Equal(t, fiber.StatusNotModified, status)
}

func TestSocialAlias_BajoCommunication(t *testing.T) {
	e := newTestEnv(t)
	admin := e.token(t, "admin@example.com")

	status, body := e.do(t, fiber.MethodPost, "/v1/communication/socials/message", admin,
		`{"platform":"instagram","recipient":"@cam","message":"hola"}`)
	require.Equal(t, fiber.StatusCreated, status, string(body))

	status, body = e.do(t, fiber.MethodGet, "/v1/communication/socials/message", admin, "")
	require.Equal(t, fiber.StatusOK, status, string(body))
	var page dto.PageResponse[dto.MessageResponse]
	require.NoError(t, json.Unmarshal(body, &page))
	assert.Equal(t, 1, page.Total)

	status, _ = e.do(t, fiber.MethodPost, "/v1/socials/message", admin, `{}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}
