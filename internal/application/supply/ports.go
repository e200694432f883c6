package supply

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con la orden de abastecimiento, el stock y las notificaciones.
type TxRunner interface {
	RunSupply(ctx context.Context, fn func(
		supplyRepo repository.SupplyOrderRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}

// Analyzer funciones de IA que usa el abastecimiento. Nunca fallan: devuelven valores por defecto.
type Analyzer interface {
	AnalyzeQuality(ctx context.Context, image, standards string) entity.QualityResult
	ExtractInvoice(ctx context.Context, image string) dto.InvoiceDataDTO
	ForecastDemand(ctx context.Context, products []*entity.Product) []dto.DemandForecastDTO
}
