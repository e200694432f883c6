package analytics

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
)

// CollectionsCounter cantidad de facturas vencidas y próximas a vencer de la empresa.
type CollectionsCounter interface {
	CollectionCounts(ctx context.Context, companyID string) (overdue, upcoming int, err error)
}

// TrendAnalyzer análisis de tendencia de la serie histórica. Nunca falla.
type TrendAnalyzer interface {
	HistoricalTrend(ctx context.Context, points []dto.HistoricalPointDTO) string
}
