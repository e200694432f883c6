package dto

import "github.com/shopspring/decimal"

// Modos del dashboard.
const (
	ModeGeneral      = "GENERAL"
	ModeManufacturer = "MANUFACTURER"
	ModeTrader       = "TRADER"
)

// MonthlyPointDTO ingresos y utilidad de un mes.
type MonthlyPointDTO struct {
	Month   string          `json:"month"` // YYYY-MM
	Revenue decimal.Decimal `json:"revenue"`
	Profit  decimal.Decimal `json:"profit"`
}

// NetStatsDTO estado de resultados resumido.
type NetStatsDTO struct {
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	FixedCostsYTD decimal.Decimal `json:"fixed_costs_ytd"`
	NetProfit     decimal.Decimal `json:"net_profit"`
	MarginPercent decimal.Decimal `json:"margin_percent"`
}

// DashboardResponse respuesta de GET /api/dashboard.
type DashboardResponse struct {
	Mode            string            `json:"mode"`
	Series          []MonthlyPointDTO `json:"series"`
	Stats           NetStatsDTO       `json:"stats"`
	MonthlyFixed    decimal.Decimal   `json:"monthly_fixed_costs"`
	LowStockCount   int               `json:"low_stock_count"`
	PendingOrders   int               `json:"pending_orders"`
	OverdueInvoices int               `json:"overdue_invoices"`
	UpcomingDue     int               `json:"upcoming_due"`
	UnreadAlerts    int               `json:"unread_alerts"`
}

// FixedCostItemDTO costo fijo mensual.
type FixedCostItemDTO struct {
	ID     string          `json:"id"`
	Name   string          `json:"name" validate:"required"`
	Amount decimal.Decimal `json:"amount"`
}

// FixedCostsRequest reemplaza la lista de costos fijos.
type FixedCostsRequest struct {
	Items []FixedCostItemDTO `json:"items"`
}
