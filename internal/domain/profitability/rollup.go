// Package profitability calcula la rentabilidad por canal de venta.
package profitability

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// Rangos de tiempo soportados.
const (
	RangeMonth   = "MONTH"
	RangeQuarter = "QUARTER"
	RangeYear    = "YEAR"
	RangeAll     = "ALL"
)

var (
	hundred  = decimal.NewFromInt(100)
	half     = decimal.NewFromFloat(0.5)
	cogsRate = decimal.NewFromFloat(0.6)
)

// IsValidRange valida el rango.
func IsValidRange(r string) bool {
	switch r {
	case RangeMonth, RangeQuarter, RangeYear, RangeAll:
		return true
	}
	return false
}

// RangeFactor fracción del gasto total del cliente atribuida al rango.
func RangeFactor(r string) decimal.Decimal {
	switch r {
	case RangeMonth:
		return decimal.NewFromFloat(0.08)
	case RangeQuarter:
		return decimal.NewFromFloat(0.25)
	case RangeYear:
		return decimal.NewFromFloat(0.85)
	}
	return decimal.NewFromInt(1)
}

// periodMultiplier meses de costo fijo y marketing que cubre el rango.
func periodMultiplier(r string) decimal.Decimal {
	switch r {
	case RangeMonth:
		return decimal.NewFromInt(1)
	case RangeQuarter:
		return decimal.NewFromInt(3)
	}
	return decimal.NewFromInt(12)
}

// ChannelResult rentabilidad de un canal.
type ChannelResult struct {
	ChannelID     string
	ChannelName   string
	ChannelType   string
	Revenue       decimal.Decimal
	COGS          decimal.Decimal
	VariableCosts decimal.Decimal
	FixedCosts    decimal.Decimal
	Marketing     decimal.Decimal
	OpCosts       decimal.Decimal
	TotalCosts    decimal.Decimal
	NetProfit     decimal.Decimal
	MarginPercent decimal.Decimal
	Customers     int
}

// Totals suma de todos los canales.
type Totals struct {
	Revenue       decimal.Decimal
	COGS          decimal.Decimal
	VariableCosts decimal.Decimal
	FixedCosts    decimal.Decimal
	Marketing     decimal.Decimal
	OpCosts       decimal.Decimal
	TotalCosts    decimal.Decimal
	NetProfit     decimal.Decimal
	MarginPercent decimal.Decimal
}

// resolveChannel índice de la configuración del cliente: primera coincidencia por ID y, si no hay, primera por nombre.
// -1 si el cliente no pertenece a ningún canal.
func resolveChannel(configs []entity.ChannelConfig, channel string) int {
	for i, cfg := range configs {
		if cfg.ID == channel {
			return i
		}
	}
	for i, cfg := range configs {
		if cfg.Name == channel {
			return i
		}
	}
	return -1
}

// roundHalfUp redondea al entero con los medios hacia +∞ (-2.5 → -2).
func roundHalfUp(v decimal.Decimal) decimal.Decimal {
	return v.Add(half).Floor()
}

// Rollup calcula la rentabilidad por canal y los totales.
// Cada cliente suma en un único canal (ver resolveChannel).
func Rollup(configs []entity.ChannelConfig, customers []*entity.Customer, timeRange string) ([]ChannelResult, Totals) {
	factor := RangeFactor(timeRange)
	months := periodMultiplier(timeRange)

	revenue := make([]decimal.Decimal, len(configs))
	count := make([]int, len(configs))
	for _, c := range customers {
		i := resolveChannel(configs, c.Channel)
		if i < 0 {
			continue
		}
		revenue[i] = revenue[i].Add(roundHalfUp(c.TotalSpend.Mul(factor)))
		count[i]++
	}

	results := make([]ChannelResult, 0, len(configs))
	totals := Totals{}
	for i, cfg := range configs {
		r := ChannelResult{ChannelID: cfg.ID, ChannelName: cfg.Name, ChannelType: cfg.Type, Revenue: revenue[i], Customers: count[i]}
		r.COGS = r.Revenue.Mul(cogsRate)
		r.VariableCosts = r.Revenue.Mul(cfg.VariableCostPercent).Div(hundred)
		r.FixedCosts = cfg.FixedCost.Mul(months)
		r.Marketing = cfg.MarketingBudget.Mul(months)
		r.OpCosts = r.FixedCosts.Add(r.Marketing).Add(r.VariableCosts)
		r.TotalCosts = r.COGS.Add(r.OpCosts)
		r.NetProfit = r.Revenue.Sub(r.TotalCosts)
		r.MarginPercent = marginPercent(r.NetProfit, r.Revenue)

		totals.Revenue = totals.Revenue.Add(r.Revenue)
		totals.COGS = totals.COGS.Add(r.COGS)
		totals.VariableCosts = totals.VariableCosts.Add(r.VariableCosts)
		totals.FixedCosts = totals.FixedCosts.Add(r.FixedCosts)
		totals.Marketing = totals.Marketing.Add(r.Marketing)
		totals.OpCosts = totals.OpCosts.Add(r.OpCosts)
		totals.TotalCosts = totals.TotalCosts.Add(r.TotalCosts)
		totals.NetProfit = totals.NetProfit.Add(r.NetProfit)
		results = append(results, r)
	}
	totals.MarginPercent = marginPercent(totals.NetProfit, totals.Revenue)
	return results, totals
}

func marginPercent(net, revenue decimal.Decimal) decimal.Decimal {
	if revenue.IsZero() {
		return decimal.Zero
	}
	return net.Div(revenue).Mul(hundred).Round(2)
}
