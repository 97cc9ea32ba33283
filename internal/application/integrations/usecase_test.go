package integrations

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/engage-api/internal/application/authz"
	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/entity"
	"github.com/jhoicas/engage-api/internal/testutil/memstore"
)

var admin = authz.Actor{ID: "admin-1", Role: entity.RoleAdmin}

type stubChecker struct {
	code int
	err  error
	urls []string
}

func (c *stubChecker) Check(_ context.Context, url string) (int, error) {
	c.urls = append(c.urls, url)
	return c.code, c.err
}

type stubFeeds struct{ count int }

func (f *stubFeeds) Build(_ *entity.Integration, products []*entity.Product) (*ports.Feed, error) {
	f.count = len(products)
	return &ports.Feed{XML: []byte("<feed/>"), Digest: "abc"}, nil
}

var fixedNow = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func setup(t *testing.T, checker *stubChecker) (*UseCase, *memstore.Store, *stubFeeds) {
	t.Helper()
	s := memstore.New()
	feeds := &stubFeeds{}
	var c ports.ConnectivityChecker
	if checker != nil {
		c = checker
	}
	uc := NewUseCase(s.IntegrationRepo(), s.ProductRepo(), c, feeds)
	uc.now = func() time.Time { return fixedNow }
	return uc, s, feeds
}

func create(t *testing.T, uc *UseCase, typ, config string) *dto.IntegrationResponse {
	t.Helper()
	var raw json.RawMessage
	if config != "" {
		raw = json.RawMessage(config)
	}
	out, err := uc.Create(context.Background(), admin, dto.IntegrationRequest{Name: " Shop ", Type: typ, Config: raw})
	require.NoError(t, err)
	return out
}

func TestCreate_ConfigPorDefectoYValidacion(t *testing.T) {
	uc, _, _ := setup(t, nil)

	out := create(t, uc, "webhook", "")
	assert.Equal(t, "Shop", out.Name)
	assert.JSONEq(t, `{}`, string(out.Config))
	assert.True(t, out.IsActive)

	_, err := uc.Create(context.Background(), admin, dto.IntegrationRequest{Name: "x", Type: "webhook", Config: json.RawMessage(`[1,2]`)})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUpdate_ConservaConfig(t *testing.T) {
	uc, _, _ := setup(t, nil)
	in := create(t, uc, "webhook", `{"url":"https://hooks.example.com"}`)

	off := false
	out, err := uc.Update(context.Background(), in.ID, dto.IntegrationRequest{Name: "Renamed", Type: "webhook", IsActive: &off})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", out.Name)
	assert.False(t, out.IsActive)
	assert.JSONEq(t, `{"url":"https://hooks.example.com"}`, string(out.Config))

	_, err = uc.Update(context.Background(), "missing", dto.IntegrationRequest{Name: "x", Type: "y"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTest_SinURLRegistraLog(t *testing.T) {
	checker := &stubChecker{}
	uc, s, _ := setup(t, checker)
	in := create(t, uc, "crm", `{"token":"x"}`)

	res, err := uc.Test(context.Background(), in.ID)
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Empty(t, checker.urls)

	require.Len(t, s.IntLogs, 1)
	assert.Equal(t, ActionTest, s.IntLogs[0].Action)
	assert.Equal(t, "success", s.IntLogs[0].Status)
	require.NotNil(t, s.Integrations[in.ID].LastTestAt)
	assert.Equal(t, fixedNow, *s.Integrations[in.ID].LastTestAt)
}

func TestTest_EndpointCaido(t *testing.T) {
	checker := &stubChecker{err: errors.New("connection refused")}
	uc, s, _ := setup(t, checker)
	in := create(t, uc, "webhook", `{"url":"https://hooks.example.com"}`)

	res, err := uc.Test(context.Background(), in.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Contains(t, res.Message, "connection refused")
	assert.Equal(t, []string{"https://hooks.example.com"}, checker.urls)
	require.Len(t, s.IntLogs, 1)
	assert.Equal(t, "failure", s.IntLogs[0].Status)
}

func TestTest_Status5xxEsFallo(t *testing.T) {
	uc, _, _ := setup(t, &stubChecker{code: 503})
	in := create(t, uc, "webhook", `{"url":"https://hooks.example.com"}`)

	res, err := uc.Test(context.Background(), in.ID)
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, 503, res.Details.StatusCode)

	logs, err := uc.Logs(context.Background(), in.ID, dto.PageRequest{})
	require.NoError(t, err)
	assert.Equal(t, 1, logs.Total)
}

func TestFeed(t *testing.T) {
	uc, s, feeds := setup(t, nil)
	s.Products["p1"] = entity.Product{ID: "p1", Name: "Mouse", Price: decimal.NewFromInt(20), IsActive: true}
	s.Products["p2"] = entity.Product{ID: "p2", Name: "Retired", Price: decimal.NewFromInt(1), IsActive: false}

	hook := create(t, uc, "webhook", "")
	_, err := uc.Feed(context.Background(), hook.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	in := create(t, uc, entity.IntegrationTypeProductFeed, "")
	feed, err := uc.Feed(context.Background(), in.ID)
	require.NoError(t, err)
	assert.Equal(t, "abc", feed.Digest)
	assert.Equal(t, 1, feeds.count)
	require.Len(t, s.IntLogs, 1)
	assert.Equal(t, ActionFeed, s.IntLogs[0].Action)
}

func TestDelete(t *testing.T) {
	uc, s, _ := setup(t, nil)
	in := create(t, uc, "webhook", "")

	require.NoError(t, uc.Delete(context.Background(), in.ID))
	assert.Empty(t, s.Integrations)
	assert.ErrorIs(t, uc.Delete(context.Background(), in.ID), domain.ErrNotFound)
}
