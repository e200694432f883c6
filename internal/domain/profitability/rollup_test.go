package profitability_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/profitability"
)

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func TestRollup_CanalRangoTotal(t *testing.T) {
	cfg := entity.ChannelConfig{
		ID: "TEST", Name: "Canal Test", Type: entity.ChannelB2B,
		FixedCost: dec(1000), VariableCostPercent: dec(5), MarketingBudget: dec(200),
	}
	customers := []*entity.Customer{{ID: "c1", Channel: "TEST", TotalSpend: dec(10000)}}

	results, totals := profitability.Rollup([]entity.ChannelConfig{cfg}, customers, profitability.RangeAll)
	require.Len(t, results, 1)
	r := results[0]

	assert.True(t, r.Revenue.Equal(dec(10000)), "revenue %s", r.Revenue)
	assert.True(t, r.COGS.Equal(dec(6000)), "cogs %s", r.COGS)
	assert.True(t, r.VariableCosts.Equal(dec(500)))
	assert.True(t, r.FixedCosts.Equal(dec(12000)))
	assert.True(t, r.Marketing.Equal(dec(2400)))
	assert.True(t, r.TotalCosts.Equal(dec(20900)), "total %s", r.TotalCosts)
	assert.True(t, r.NetProfit.Equal(dec(-10900)))
	assert.True(t, totals.NetProfit.Equal(dec(-10900)))
	assert.Equal(t, 1, r.Customers)
}

func TestRollup_CoincidenciaPorNombreYMesSinIngresos(t *testing.T) {
	cfgs := []entity.ChannelConfig{
		{ID: "A", Name: "Boutiques", FixedCost: dec(100), VariableCostPercent: dec(2), MarketingBudget: dec(10)},
		{ID: "B", Name: "Marketplaces", FixedCost: dec(50), VariableCostPercent: dec(15), MarketingBudget: dec(5)},
	}
	customers := []*entity.Customer{{ID: "c1", Channel: "Boutiques", TotalSpend: dec(1000)}}

	results, totals := profitability.Rollup(cfgs, customers, profitability.RangeMonth)
	require.Len(t, results, 2)
	assert.True(t, results[0].Revenue.Equal(dec(80)))
	assert.True(t, results[0].FixedCosts.Equal(dec(100)))
	assert.True(t, results[1].Revenue.IsZero())
	assert.True(t, results[1].MarginPercent.IsZero())
	assert.True(t, totals.Revenue.Equal(dec(80)))
}

func TestRangeFactor(t *testing.T) {
	assert.True(t, profitability.RangeFactor("QUARTER").Equal(decimal.NewFromFloat(0.25)))
	assert.True(t, profitability.RangeFactor("desconocido").Equal(dec(1)))
	assert.False(t, profitability.IsValidRange("WEEK"))
}

func TestRollup_ClienteCuentaEnUnSoloCanalConNombresDuplicados(t *testing.T) {
	cfgs := []entity.ChannelConfig{
		{ID: "BOUTIQUE", Name: "Boutiques", FixedCost: dec(0), VariableCostPercent: dec(0), MarketingBudget: dec(0)},
		{ID: "x-2", Name: "Boutiques", FixedCost: dec(0), VariableCostPercent: dec(0), MarketingBudget: dec(0)},
	}
	customers := []*entity.Customer{{ID: "c1", Channel: "Boutiques", TotalSpend: dec(10000)}}

	results, totals := profitability.Rollup(cfgs, customers, profitability.RangeAll)
	require.Len(t, results, 2)
	assert.True(t, results[0].Revenue.Equal(dec(10000)), "primer canal %s", results[0].Revenue)
	assert.True(t, results[1].Revenue.IsZero(), "segundo canal %s", results[1].Revenue)
	assert.Equal(t, 0, results[1].Customers)
	assert.True(t, totals.Revenue.Equal(dec(10000)), "totales %s", totals.Revenue)
}

func TestRollup_CoincidenciaPorIDTienePrioridadSobreNombre(t *testing.T) {
	cfgs := []entity.ChannelConfig{
		{ID: "A", Name: "WHOLESALE"},
		{ID: "WHOLESALE", Name: "Mayoristas"},
	}
	customers := []*entity.Customer{{ID: "c1", Channel: "WHOLESALE", TotalSpend: dec(500)}}

	results, _ := profitability.Rollup(cfgs, customers, profitability.RangeAll)
	assert.True(t, results[0].Revenue.IsZero())
	assert.True(t, results[1].Revenue.Equal(dec(500)))
}

func TestRollup_RedondeoDeMediosHaciaArriba(t *testing.T) {
	cfgs := []entity.ChannelConfig{{ID: "A", Name: "A"}}
	customers := []*entity.Customer{
		{ID: "c1", Channel: "A", TotalSpend: decimal.RequireFromString("-31.25")}, // × 0.08 = -2.5 → -2
		{ID: "c2", Channel: "A", TotalSpend: decimal.RequireFromString("31.25")},  // × 0.08 = 2.5 → 3
	}
	results, _ := profitability.Rollup(cfgs, customers, profitability.RangeMonth)
	assert.True(t, results[0].Revenue.Equal(dec(1)), "revenue %s", results[0].Revenue)
}
