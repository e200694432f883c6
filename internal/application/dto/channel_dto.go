package dto

import "github.com/shopspring/decimal"

// ChannelConfigRequest entrada para crear o actualizar un canal.
type ChannelConfigRequest struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name" validate:"required"`
	Type                string          `json:"type" validate:"required,oneof=B2B B2C DIGITAL"`
	FixedCost           decimal.Decimal `json:"fixed_cost"`
	VariableCostPercent decimal.Decimal `json:"variable_cost_percent"`
	MarketingBudget     decimal.Decimal `json:"marketing_budget"`
}

// ChannelConfigResponse salida de un canal.
type ChannelConfigResponse struct {
	ID                  string          `json:"id"`
	Name                string          `json:"name"`
	Type                string          `json:"type"`
	FixedCost           decimal.Decimal `json:"fixed_cost"`
	VariableCostPercent decimal.Decimal `json:"variable_cost_percent"`
	MarketingBudget     decimal.Decimal `json:"marketing_budget"`
}

// ChannelProfitDTO rentabilidad de un canal en el rango pedido.
type ChannelProfitDTO struct {
	ChannelID     string          `json:"channel_id"`
	ChannelName   string          `json:"channel_name"`
	ChannelType   string          `json:"channel_type"`
	Customers     int             `json:"customers"`
	Revenue       decimal.Decimal `json:"revenue"`
	COGS          decimal.Decimal `json:"cogs"`
	VariableCosts decimal.Decimal `json:"variable_costs"`
	FixedCosts    decimal.Decimal `json:"fixed_costs"`
	Marketing     decimal.Decimal `json:"marketing"`
	OpCosts       decimal.Decimal `json:"op_costs"`
	TotalCosts    decimal.Decimal `json:"total_costs"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// ChannelProfitabilityResponse respuesta de GET /api/channels/profitability.
type ChannelProfitabilityResponse struct {
	Range    string             `json:"range"`
	Channels []ChannelProfitDTO `json:"channels"`
	Totals   ChannelProfitDTO   `json:"totals"`
}
