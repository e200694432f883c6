package dto

import "github.com/shopspring/decimal"

// HistoricalPointDTO punto mensual de la serie histórica.
type HistoricalPointDTO struct {
	Date              string          `json:"date"`
	Year              int             `json:"year"`
	Month             int             `json:"month"`
	Revenue           decimal.Decimal `json:"revenue"`
	Cost              decimal.Decimal `json:"cost"`
	Profit            decimal.Decimal `json:"profit"`
	UnitsSold         int             `json:"units_sold"`
	UnitsManufactured int             `json:"units_manufactured"`
	UnitsImported     int             `json:"units_imported"`
}

// HistoryResponse serie histórica con totales.
type HistoryResponse struct {
	Years        []int                `json:"years"`
	Points       []HistoricalPointDTO `json:"points"`
	TotalRevenue decimal.Decimal      `json:"total_revenue"`
	TotalUnits   int                  `json:"total_units"`
}

// TrendAnalysisResponse análisis de tendencia generado por IA.
type TrendAnalysisResponse struct {
	Analysis string `json:"analysis"`
}
