package analytics

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/memory"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// ── Canales ──────────────────────────────────────────────────────────────────

func TestChannels_RentabilidadRangoCompleto(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	uc := NewChannelUseCase(repos.Channels, repos.Customers)

	_, err := uc.Create(ctx, "c1", dto.ChannelConfigRequest{
		ID: "BOUTIQUE", Name: "Boutiques", Type: entity.ChannelB2B,
		FixedCost: dec("1000"), VariableCostPercent: dec("5"), MarketingBudget: dec("200"),
	})
	require.NoError(t, err)
	require.NoError(t, repos.Customers.Create(ctx, &entity.Customer{
		ID: "x", CompanyID: "c1", Name: "Cliente", Channel: "BOUTIQUE", TotalSpend: dec("10000"),
	}))

	res, err := uc.Profitability(ctx, "c1", "all")
	require.NoError(t, err)
	assert.Equal(t, "ALL", res.Range)
	require.Len(t, res.Channels, 1)
	ch := res.Channels[0]
	assert.True(t, ch.Revenue.Equal(dec("10000")))
	assert.True(t, ch.COGS.Equal(dec("6000")))
	assert.True(t, ch.VariableCosts.Equal(dec("500")))
	assert.True(t, ch.FixedCosts.Equal(dec("12000")))
	assert.True(t, ch.Marketing.Equal(dec("2400")))
	assert.True(t, ch.TotalCosts.Equal(dec("20900")))
	assert.True(t, ch.NetProfit.Equal(dec("-10900")))
	assert.Equal(t, 1, res.Totals.Customers)
	assert.True(t, res.Totals.NetProfit.Equal(dec("-10900")))
}

func TestChannels_RangoPorDefectoYInvalido(t *testing.T) {
	repos := memory.NewStore().Repos()
	uc := NewChannelUseCase(repos.Channels, repos.Customers)

	res, err := uc.Profitability(context.Background(), "c1", "")
	require.NoError(t, err)
	assert.Equal(t, "YEAR", res.Range)
	assert.Empty(t, res.Channels)

	_, err = uc.Profitability(context.Background(), "c1", "DECADE")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestChannels_CRUD(t *testing.T) {
	ctx := context.Background()
	repos := memory.NewStore().Repos()
	uc := NewChannelUseCase(repos.Channels, repos.Customers)

	_, err := uc.Create(ctx, "c1", dto.ChannelConfigRequest{Name: "Sin tipo", Type: "RETAIL"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Create(ctx, "c1", dto.ChannelConfigRequest{Name: "Caro", Type: entity.ChannelB2C, VariableCostPercent: dec("150")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	created, err := uc.Create(ctx, "c1", dto.ChannelConfigRequest{Name: "Tienda Física", Type: entity.ChannelB2C})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)

	_, err = uc.Create(ctx, "c1", dto.ChannelConfigRequest{ID: created.ID, Name: "Duplicado", Type: entity.ChannelB2C})
	assert.ErrorIs(t, err, domain.ErrDuplicate)

	updated, err := uc.Update(ctx, "c1", created.ID, dto.ChannelConfigRequest{
		Name: "Tienda Centro", Type: entity.ChannelB2C, FixedCost: dec("800"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Tienda Centro", updated.Name)
	assert.True(t, updated.FixedCost.Equal(dec("800")))

	_, err = uc.Update(ctx, "c1", "nope", dto.ChannelConfigRequest{Name: "X", Type: entity.ChannelB2C})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	require.NoError(t, uc.Delete(ctx, "c1", created.ID))
	assert.ErrorIs(t, uc.Delete(ctx, "c1", created.ID), domain.ErrNotFound)

	list, err := uc.List(ctx, "c1")
	require.NoError(t, err)
	assert.Empty(t, list)
}

// ── Dashboard ────────────────────────────────────────────────────────────────

type stubCounter struct{ overdue, upcoming int }

func (s stubCounter) CollectionCounts(context.Context, string) (int, int, error) {
	return s.overdue, s.upcoming, nil
}

func newDashboard(t *testing.T) *DashboardUseCase {
	t.Helper()
	store, err := memory.NewSeededStore(context.Background())
	require.NoError(t, err)
	r := store.Repos()
	return NewDashboardUseCase(r.Orders, r.Products, r.Companies, r.Notifications, stubCounter{overdue: 1, upcoming: 2})
}

func TestDashboard_ModoManufactureroPorTipoDeEmpresa(t *testing.T) {
	uc := newDashboard(t)

	d, err := uc.Get(context.Background(), "1", "")
	require.NoError(t, err)
	assert.Equal(t, dto.ModeManufacturer, d.Mode)
	require.Len(t, d.Series, 2)
	assert.Equal(t, "2024-02", d.Series[0].Month)
	assert.True(t, d.Series[0].Revenue.Equal(dec("4500")))
	assert.True(t, d.Series[0].Profit.Equal(dec("3300")))
	assert.Equal(t, "2024-03", d.Series[1].Month)
	assert.True(t, d.Series[1].Revenue.Equal(dec("999.5")))
	assert.True(t, d.Series[1].Profit.Equal(dec("724.5")))

	assert.True(t, d.Stats.TotalRevenue.Equal(dec("5499.5")))
	assert.True(t, d.Stats.GrossProfit.Equal(dec("4024.5")))
	assert.True(t, d.Stats.FixedCostsYTD.Equal(dec("10000")))
	assert.True(t, d.Stats.NetProfit.Equal(dec("-5975.5")))
	assert.True(t, d.Stats.MarginPercent.Equal(dec("-108.66")))
	assert.True(t, d.MonthlyFixed.Equal(dec("5000")))

	assert.Equal(t, 3, d.LowStockCount)
	assert.Equal(t, 1, d.PendingOrders)
	assert.Equal(t, 1, d.OverdueInvoices)
	assert.Equal(t, 2, d.UpcomingDue)
}

func TestDashboard_ModoImportadorYGeneral(t *testing.T) {
	uc := newDashboard(t)

	d, err := uc.Get(context.Background(), "1", "trader")
	require.NoError(t, err)
	require.Len(t, d.Series, 1)
	assert.True(t, d.Series[0].Revenue.Equal(dec("3599.6")))
	assert.True(t, d.Series[0].Profit.Equal(dec("2301.85")))

	d, err = uc.Get(context.Background(), "1", dto.ModeGeneral)
	require.NoError(t, err)
	require.Len(t, d.Series, 2)
	assert.True(t, d.Series[1].Revenue.Equal(dec("4599.1")))

	_, err = uc.Get(context.Background(), "1", "RETAIL")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.Get(context.Background(), "99", "")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDashboard_SinFinanzasNoConsultaCobranza(t *testing.T) {
	uc := newDashboard(t)

	d, err := uc.Get(context.Background(), "3", "")
	require.NoError(t, err)
	assert.Equal(t, dto.ModeGeneral, d.Mode)
	assert.Zero(t, d.OverdueInvoices)
	assert.Zero(t, d.UpcomingDue)
}

func TestMonthlySeries_IgnoraCancelados(t *testing.T) {
	products := map[string]*entity.Product{
		"p": {ID: "p", OriginType: entity.OriginImported, CostPrice: dec("10")},
	}
	orders := []*entity.Order{
		{Date: time.Date(2025, 1, 5, 0, 0, 0, 0, time.UTC), Status: entity.OrderStatusCancelled,
			Items: []entity.OrderItem{{ProductID: "p", Quantity: 1, Total: dec("50")}}},
		{Date: time.Date(2025, 1, 9, 0, 0, 0, 0, time.UTC), Status: entity.OrderStatusPending,
			Items: []entity.OrderItem{{ProductID: "p", Quantity: 2, Total: dec("40")}, {ProductID: "x", Quantity: 1, Total: dec("5")}}},
	}
	series := MonthlySeries(orders, products, dto.ModeGeneral)
	require.Len(t, series, 1)
	assert.True(t, series[0].Revenue.Equal(dec("45")))
	assert.True(t, series[0].Profit.Equal(dec("25")))

	stats := NetStats(nil, dec("100"))
	assert.True(t, stats.MarginPercent.IsZero())
}

// ── Histórico ────────────────────────────────────────────────────────────────

type stubTrend struct{ got int }

func (s *stubTrend) HistoricalTrend(_ context.Context, points []dto.HistoricalPointDTO) string {
	s.got = len(points)
	return "Tendencia al alza."
}

func TestHistory_DeterministaPorEmpresa(t *testing.T) {
	a := Generate("1", 2025)
	b := Generate("1", 2025)
	c := Generate("2", 2025)
	require.Len(t, a, 60)
	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Equal(t, 2021, a[0].Year)
	assert.Equal(t, "2025-12", a[59].Date)
}

func TestHistory_EstacionalidadYCostos(t *testing.T) {
	for _, p := range Generate("1", 2025) {
		rev := p.Revenue.InexactFloat64()
		cost := p.Cost.InexactFloat64()
		assert.GreaterOrEqual(t, cost, rev*0.65-1, p.Date)
		assert.LessOrEqual(t, cost, rev*0.70+1, p.Date)
		assert.InDelta(t, rev/25, float64(p.UnitsSold), 0.5+1e-9, p.Date)
		assert.True(t, p.Profit.Equal(p.Revenue.Sub(p.Cost)))
	}
	dec1 := Generate("1", 2025)[11]
	assert.Equal(t, 12, dec1.Month)
	// 15000 × 1.15 × 1.4 ± 10 %
	assert.GreaterOrEqual(t, dec1.Revenue.InexactFloat64(), 21734.0)
	assert.LessOrEqual(t, dec1.Revenue.InexactFloat64(), 26566.0)
}

func TestHistory_FiltroPorAnioYTendencia(t *testing.T) {
	trend := &stubTrend{}
	uc := NewHistoryUseCase(trend)
	uc.now = func() time.Time { return time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) }

	all, err := uc.Get(context.Background(), "1", 0)
	require.NoError(t, err)
	assert.Equal(t, []int{2021, 2022, 2023, 2024, 2025}, all.Years)
	assert.Len(t, all.Points, 60)

	y, err := uc.Get(context.Background(), "1", 2023)
	require.NoError(t, err)
	require.Len(t, y.Points, 12)
	sum := decimal.Zero
	for _, p := range y.Points {
		assert.Equal(t, 2023, p.Year)
		sum = sum.Add(p.Revenue)
	}
	assert.True(t, y.TotalRevenue.Equal(sum))

	_, err = uc.Get(context.Background(), "1", 2019)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	res, err := uc.Trend(context.Background(), "1", 2024)
	require.NoError(t, err)
	assert.Equal(t, "Tendencia al alza.", res.Analysis)
	assert.Equal(t, 12, trend.got)
}
