package analytics

import (
	"context"
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

const (
	historyYears       = 5
	historyBaseRevenue = 15000.0
	historyGrowth      = 1.15
	historyAvgPrice    = 25.0
)

// HistoryUseCase serie histórica mensual de cinco años y su análisis de tendencia.
type HistoryUseCase struct {
	analyzer TrendAnalyzer
	now      func() time.Time
}

// NewHistoryUseCase construye el caso de uso.
func NewHistoryUseCase(analyzer TrendAnalyzer) *HistoryUseCase {
	return &HistoryUseCase{analyzer: analyzer, now: time.Now}
}

// seasonality estacionalidad del mes: fiestas 1.4, verano 1.2, enero-febrero 0.8.
func seasonality(m int) float64 {
	switch m {
	case 11, 12:
		return 1.4
	case 6, 7:
		return 1.2
	case 1, 2:
		return 0.8
	}
	return 1.0
}

// nextMonthSeasonality demanda del mes siguiente (la manufactura va un mes adelantada).
func nextMonthSeasonality(m int) float64 {
	if m == 12 {
		return 0.8
	}
	if m+1 == 11 || m+1 == 12 {
		return 1.4
	}
	return 1.0
}

// futureSeasonality demanda a tres meses (la importación va tres meses adelantada).
func futureSeasonality(m int) float64 {
	if m+3 > 12 {
		return 1.0
	}
	if m+3 == 11 || m+3 == 12 {
		return 1.4
	}
	return 1.0
}

func round(v float64) float64 { return math.Floor(v + 0.5) }

// seedFor semilla estable por empresa: la misma empresa siempre ve la misma serie.
func seedFor(companyID string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(companyID))
	return int64(h.Sum64())
}

// Generate serie mensual de lastYear-4 a lastYear.
func Generate(companyID string, lastYear int) []entity.HistoricalDataPoint {
	rng := rand.New(rand.NewSource(seedFor(companyID)))
	out := make([]entity.HistoricalDataPoint, 0, historyYears*12)
	base := historyBaseRevenue
	for y := lastYear - historyYears + 1; y <= lastYear; y++ {
		base *= historyGrowth
		for m := 1; m <= 12; m++ {
			variation := 0.9 + rng.Float64()*0.2
			revenue := round(base * seasonality(m) * variation)
			cost := round(revenue * (0.65 + rng.Float64()*0.05))
			units := round(revenue / historyAvgPrice)
			out = append(out, entity.HistoricalDataPoint{
				Date:              fmt.Sprintf("%04d-%02d", y, m),
				Year:              y,
				Month:             m,
				Revenue:           decimal.NewFromFloat(revenue),
				Cost:              decimal.NewFromFloat(cost),
				Profit:            decimal.NewFromFloat(revenue - cost),
				UnitsSold:         int(units),
				UnitsManufactured: int(round(units * nextMonthSeasonality(m) * 0.6)),
				UnitsImported:     int(round(units * futureSeasonality(m) * 0.4)),
			})
		}
	}
	return out
}

// points serie filtrada por año (0 = todos).
func (uc *HistoryUseCase) points(companyID string, year int) ([]dto.HistoricalPointDTO, []int, error) {
	last := uc.now().Year()
	years := make([]int, 0, historyYears)
	for y := last - historyYears + 1; y <= last; y++ {
		years = append(years, y)
	}
	if year != 0 && (year < years[0] || year > last) {
		return nil, nil, fmt.Errorf("año %d fuera de la serie: %w", year, domain.ErrInvalidInput)
	}
	all := Generate(companyID, last)
	out := make([]dto.HistoricalPointDTO, 0, len(all))
	for _, p := range all {
		if year != 0 && p.Year != year {
			continue
		}
		out = append(out, dto.HistoricalPointDTO{
			Date:              p.Date,
			Year:              p.Year,
			Month:             p.Month,
			Revenue:           p.Revenue,
			Cost:              p.Cost,
			Profit:            p.Profit,
			UnitsSold:         p.UnitsSold,
			UnitsManufactured: p.UnitsManufactured,
			UnitsImported:     p.UnitsImported,
		})
	}
	return out, years, nil
}

// Get serie histórica con totales; year = 0 devuelve los cinco años.
func (uc *HistoryUseCase) Get(_ context.Context, companyID string, year int) (*dto.HistoryResponse, error) {
	pts, years, err := uc.points(companyID, year)
	if err != nil {
		return nil, err
	}
	out := &dto.HistoryResponse{Years: years, Points: pts, TotalRevenue: decimal.Zero}
	for _, p := range pts {
		out.TotalRevenue = out.TotalRevenue.Add(p.Revenue)
		out.TotalUnits += p.UnitsSold
	}
	return out, nil
}

// Trend análisis de tendencia con IA sobre la serie (filtrada por año si se indica).
func (uc *HistoryUseCase) Trend(ctx context.Context, companyID string, year int) (*dto.TrendAnalysisResponse, error) {
	pts, _, err := uc.points(companyID, year)
	if err != nil {
		return nil, err
	}
	return &dto.TrendAnalysisResponse{Analysis: uc.analyzer.HistoricalTrend(ctx, pts)}, nil
}
