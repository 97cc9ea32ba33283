package analytics

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/engage-api/internal/application/dto"
	"github.com/jhoicas/engage-api/internal/domain"
	"github.com/jhoicas/engage-api/internal/domain/repository"
)

// fakeAnalytics devuelve datos fijos y registra los argumentos recibidos.
type fakeAnalytics struct {
	from, to time.Time
	groupBy  string
	limit    int
	calls    atomic.Int32
	failOn   string
}

func (f *fakeAnalytics) fail(name string) error {
	f.calls.Add(1)
	if f.failOn == name {
		return errors.New("db down")
	}
	return nil
}

func (f *fakeAnalytics) SalesSeries(_ context.Context, from, to time.Time, groupBy string) ([]repository.SalesPoint, error) {
	f.from, f.to, f.groupBy = from, to, groupBy
	return []repository.SalesPoint{
		{Period: from, OrderCount: 2, Revenue: decimal.RequireFromString("100.005"), AverageTicket: decimal.RequireFromString("50.0025")},
		{Period: from.Add(24 * time.Hour), OrderCount: 1, Revenue: decimal.NewFromInt(40), AverageTicket: decimal.NewFromInt(40)},
	}, f.fail("sales")
}

func (f *fakeAnalytics) InventoryByCategory(context.Context) ([]repository.CategoryStock, error) {
	return []repository.CategoryStock{
		{Category: "Tools", ProductCount: 2, TotalUnits: 10, StockValue: decimal.NewFromInt(150), LowStockCount: 1},
		{Category: "Uncategorized", ProductCount: 1, TotalUnits: 0, StockValue: decimal.Zero, LowStockCount: 1},
	}, f.fail("inventory")
}

func (f *fakeAnalytics) CustomerOverview(_ context.Context, from, to time.Time) (*repository.CustomerOverview, error) {
	return &repository.CustomerOverview{TotalCustomers: 10, ActiveCustomers: 4, NewCustomers: 2}, f.fail("overview")
}

func (f *fakeAnalytics) CustomerSegments(context.Context) ([]repository.CustomerSegment, error) {
	return []repository.CustomerSegment{{Segment: "Loyal", CustomerCount: 1, Revenue: decimal.NewFromInt(900)}}, f.fail("segments")
}

func (f *fakeAnalytics) ProductPerformance(_ context.Context, from, to time.Time, limit int) ([]repository.ProductPerformance, error) {
	f.limit = limit
	return []repository.ProductPerformance{{ProductID: "p1", Name: "Mouse", UnitsSold: 3, Revenue: decimal.NewFromInt(60), Orders: 2}}, f.fail("products")
}

func (f *fakeAnalytics) CommunicationStats(context.Context, time.Time, time.Time) ([]repository.ChannelStats, error) {
	return []repository.ChannelStats{{Channel: "sms", Direction: "outbound", Total: 5}}, f.fail("comms")
}

func (f *fakeAnalytics) CountOrders(context.Context) (int, error) { return 12, f.fail("orders") }
func (f *fakeAnalytics) CompletedRevenue(context.Context) (decimal.Decimal, error) {
	return decimal.RequireFromString("1234.567"), f.fail("revenue")
}
func (f *fakeAnalytics) CountCustomers(context.Context) (int, error) { return 7, f.fail("customers") }
func (f *fakeAnalytics) CountLowStock(context.Context) (int, error)  { return 3, f.fail("lowstock") }
func (f *fakeAnalytics) RecentActivity(_ context.Context, limit int) ([]repository.ActivityEvent, error) {
	f.limit = limit
	return []repository.ActivityEvent{{Type: "order", ReferenceID: "o1", Description: "ORD-1"}}, f.fail("activity")
}

var fixedNow = time.Date(2024, 7, 31, 12, 0, 0, 0, time.UTC)

func newAnalytics(f *fakeAnalytics) *AnalyticsUseCase {
	uc := NewAnalyticsUseCase(f)
	uc.now = func() time.Time { return fixedNow }
	return uc
}

func TestSales_RangoPorDefectoYTotales(t *testing.T) {
	f := &fakeAnalytics{}
	res, err := newAnalytics(f).Sales(context.Background(), dto.AnalyticsQuery{})
	require.NoError(t, err)

	assert.Equal(t, fixedNow, f.to)
	assert.Equal(t, fixedNow.AddDate(0, 0, -30), f.from)
	assert.Equal(t, repository.GroupByDay, f.groupBy)
	assert.Equal(t, 3, res.TotalOrders)
	assert.Equal(t, "140.01", res.TotalRevenue.StringFixed(2))
	require.Len(t, res.Series, 2)
	assert.Equal(t, "50.00", res.Series[0].AverageTicket.StringFixed(2))
}

func TestSales_GroupByInvalido(t *testing.T) {
	_, err := newAnalytics(&fakeAnalytics{}).Sales(context.Background(), dto.AnalyticsQuery{GroupBy: "year"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSales_RangoExplicito(t *testing.T) {
	f := &fakeAnalytics{}
	_, err := newAnalytics(f).Sales(context.Background(), dto.AnalyticsQuery{
		DateRangeQuery: dto.DateRangeQuery{StartDate: "2024-01-01", EndDate: "2024-01-31"},
		GroupBy:        repository.GroupByWeek,
	})
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), f.from)
	assert.Equal(t, repository.GroupByWeek, f.groupBy)
}

func TestInventory_Totales(t *testing.T) {
	res, err := newAnalytics(&fakeAnalytics{}).Inventory(context.Background())
	require.NoError(t, err)
	assert.True(t, res.TotalStockValue.Equal(decimal.NewFromInt(150)))
	assert.Equal(t, 2, res.TotalLowStock)
	assert.Len(t, res.Categories, 2)
}

func TestCustomers_Paralelo(t *testing.T) {
	f := &fakeAnalytics{}
	res, err := newAnalytics(f).Customers(context.Background(), dto.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, 10, res.TotalCustomers)
	assert.Equal(t, 4, res.ActiveCustomers)
	require.Len(t, res.Segments, 1)

	f.failOn = "segments"
	_, err = newAnalytics(f).Customers(context.Background(), dto.AnalyticsQuery{})
	assert.Error(t, err)
}

func TestProducts_LimiteAcotado(t *testing.T) {
	f := &fakeAnalytics{}
	_, err := newAnalytics(f).Products(context.Background(), dto.AnalyticsQuery{})
	require.NoError(t, err)
	assert.Equal(t, defaultTopN, f.limit)

	_, err = newAnalytics(f).Products(context.Background(), dto.AnalyticsQuery{Limit: 5000})
	require.NoError(t, err)
	assert.Equal(t, maxTopN, f.limit)
}

func TestDashboardOverview(t *testing.T) {
	f := &fakeAnalytics{}
	res, err := NewDashboardUseCase(f).Overview(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 12, res.TotalOrders)
	assert.Equal(t, "1234.57", res.TotalRevenue.StringFixed(2))
	assert.Equal(t, 7, res.TotalCustomers)
	assert.Equal(t, 3, res.LowStockProducts)
	assert.EqualValues(t, 4, f.calls.Load())

	f.failOn = "revenue"
	_, err = NewDashboardUseCase(f).Overview(context.Background())
	assert.ErrorContains(t, err, "revenue")
}

func TestDashboardRecentActivity(t *testing.T) {
	f := &fakeAnalytics{}
	events, err := NewDashboardUseCase(f).RecentActivity(context.Background())
	require.NoError(t, err)
	assert.Equal(t, recentActivityLimit, f.limit)
	require.Len(t, events, 1)
	assert.Equal(t, "order", events[0].Type)
}
