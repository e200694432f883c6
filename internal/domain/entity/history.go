package entity

import "github.com/shopspring/decimal"

// HistoricalDataPoint punto mensual de la serie histórica de operaciones.
type HistoricalDataPoint struct {
	Date              string // YYYY-MM
	Year              int
	Month             int // 1-12
	Revenue           decimal.Decimal
	Cost              decimal.Decimal
	Profit            decimal.Decimal
	UnitsSold         int
	UnitsManufactured int
	UnitsImported     int
}
