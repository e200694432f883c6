package entity

import "github.com/shopspring/decimal"

// Tipos de canal de venta.
const (
	ChannelB2B     = "B2B"
	ChannelB2C     = "B2C"
	ChannelDigital = "DIGITAL"
)

// ChannelConfig estructura de costos de un canal de venta.
// FixedCost y MarketingBudget son mensuales; VariableCostPercent está en 0-100.
type ChannelConfig struct {
	ID                  string
	CompanyID           string
	Name                string
	Type                string
	FixedCost           decimal.Decimal
	VariableCostPercent decimal.Decimal
	MarketingBudget     decimal.Decimal
}

// DefaultChannels canales iniciales de cada empresa.
func DefaultChannels(companyID string) []ChannelConfig {
	mk := func(id, name, typ string, fixed, pct, mkt int64) ChannelConfig {
		return ChannelConfig{
			ID: id, CompanyID: companyID, Name: name, Type: typ,
			FixedCost:           decimal.NewFromInt(fixed),
			VariableCostPercent: decimal.NewFromInt(pct),
			MarketingBudget:     decimal.NewFromInt(mkt),
		}
	}
	return []ChannelConfig{
		mk("WHOLESALE", "Mayoristas", ChannelB2B, 2000, 5, 500),
		mk("DEPARTMENT_STORE", "Grandes Almacenes", ChannelB2B, 5000, 8, 1500),
		mk("BOUTIQUE", "Boutiques", ChannelB2B, 1000, 2, 200),
		mk("ECOMMERCE", "E-commerce Propio", ChannelDigital, 300, 3, 3000),
		mk("MARKETPLACE", "Marketplaces", ChannelDigital, 100, 15, 500),
	}
}
