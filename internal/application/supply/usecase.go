// Package supply implementa el ciclo de abastecimiento: órdenes de compra a proveedores y órdenes
// de producción internas, con la guarda de completitud que acredita el inventario una sola vez.
package supply

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/inventory"
	"github.com/jhoicas/Operaciones-api/internal/application/notification"
	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
	domainsupply "github.com/jhoicas/Operaciones-api/internal/domain/supply"
)

// UseCase casos de uso de abastecimiento.
type UseCase struct {
	supplyRepo  repository.SupplyOrderRepository
	productRepo repository.ProductRepository
	txRunner    TxRunner
	ledger      *inventory.Ledger
	notifier    *notification.UseCase
	ai          Analyzer
	metrics     ports.MetricsRecorder
	now         func() time.Time
}

// NewUseCase construye el caso de uso. metrics puede ser nil.
func NewUseCase(
	supplyRepo repository.SupplyOrderRepository,
	productRepo repository.ProductRepository,
	txRunner TxRunner,
	ledger *inventory.Ledger,
	notifier *notification.UseCase,
	ai Analyzer,
	metrics ports.MetricsRecorder,
) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	return &UseCase{
		supplyRepo:  supplyRepo,
		productRepo: productRepo,
		txRunner:    txRunner,
		ledger:      ledger,
		notifier:    notifier,
		ai:          ai,
		metrics:     metrics,
		now:         time.Now,
	}
}

// ── Alta y consulta ─────────────────────────────────────────────────────────

// Create registra la orden en su estado inicial y avisa a los departamentos según el tipo.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreateSupplyOrderRequest) (*dto.SupplyOrderResponse, error) {
	if !domainsupply.IsValidType(in.Type) || in.Quantity <= 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.CostPerUnit.IsNegative() || in.ShippingCost.IsNegative() || in.InsuranceCost.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := uc.now()
	atts := make([]entity.SupplyAttachment, 0, len(in.Attachments))
	for _, a := range in.Attachments {
		att, err := uc.newAttachment(a, now)
		if err != nil {
			return nil, err
		}
		atts = append(atts, att)
	}

	var created *entity.SupplyOrder
	var notif *entity.Notification
	err := uc.txRunner.RunSupply(ctx, func(supplyRepo repository.SupplyOrderRepository, productRepo repository.ProductRepository, notifRepo repository.NotificationRepository) error {
		p, err := productRepo.GetByID(ctx, companyID, in.ProductID)
		if err != nil {
			return err
		}
		if p == nil {
			return fmt.Errorf("producto %q no existe: %w", in.ProductID, domain.ErrInvalidInput)
		}
		supplier := strings.TrimSpace(in.SupplierOrFacility)
		if supplier == "" {
			supplier = p.Supplier
		}
		total := in.CostPerUnit.Mul(decimal.NewFromInt(int64(in.Quantity))).Add(in.ShippingCost).Add(in.InsuranceCost)
		created = &entity.SupplyOrder{
			ID:                  "SUP-" + strings.ToUpper(uuid.New().String()[:8]),
			CompanyID:           companyID,
			Type:                in.Type,
			ProductID:           p.ID,
			ProductName:         p.Name,
			Quantity:            in.Quantity,
			CostPerUnit:         in.CostPerUnit,
			ShippingCost:        in.ShippingCost,
			InsuranceCost:       in.InsuranceCost,
			TotalCost:           total,
			SupplierOrFacility:  supplier,
			OrderDate:           now,
			ExpectedArrivalDate: in.ExpectedArrivalDate,
			Status:              domainsupply.InitialStatus(in.Type),
			TrackingNumber:      strings.TrimSpace(in.TrackingNumber),
			Notes:               in.Notes,
			Attachments:         atts,
			CreatedAt:           now,
			UpdatedAt:           now,
		}
		if err := supplyRepo.Create(ctx, created); err != nil {
			return err
		}
		notif = uc.creationNotice(created)
		return uc.notifier.Record(ctx, notifRepo, notif)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Dispatch(ctx, notif)
	out := ToSupplyOrderResponse(created)
	return &out, nil
}

func (uc *UseCase) creationNotice(o *entity.SupplyOrder) *entity.Notification {
	if o.Type == entity.SupplyProductionOrder {
		extra := ""
		if o.HasAttachmentType(entity.SupplyAttachmentDesign) {
			extra = " Se adjuntaron especificaciones de diseño."
		}
		return uc.notifier.New(o.CompanyID, "Nueva Orden de Manufactura",
			fmt.Sprintf("Orden #%s creada para %du de %s.%s", o.ID, o.Quantity, o.ProductName, extra),
			entity.NotificationInfo, notification.RoleProduction, notification.RolePurchasing, notification.RoleCEO)
	}
	return uc.notifier.New(o.CompanyID, "Nueva Orden de Compra",
		fmt.Sprintf("Orden #%s al proveedor %s.", o.ID, o.SupplierOrFacility),
		entity.NotificationInfo, notification.RolePurchasing, notification.RoleCEO)
}

func (uc *UseCase) newAttachment(in dto.SupplyAttachmentInput, now time.Time) (entity.SupplyAttachment, error) {
	if !domainsupply.IsValidAttachmentType(in.Type) || strings.TrimSpace(in.URL) == "" {
		return entity.SupplyAttachment{}, domain.ErrInvalidInput
	}
	return entity.SupplyAttachment{
		ID:   uuid.New().String(),
		URL:  in.URL,
		Type: in.Type,
		Date: now,
		Note: strings.TrimSpace(in.Note),
	}, nil
}

// Get devuelve una orden.
func (uc *UseCase) Get(ctx context.Context, companyID, id string) (*dto.SupplyOrderResponse, error) {
	o, err := uc.supplyRepo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if o == nil {
		return nil, domain.ErrNotFound
	}
	out := ToSupplyOrderResponse(o)
	return &out, nil
}

// List órdenes filtradas por tipo y estado.
func (uc *UseCase) List(ctx context.Context, companyID string, f dto.SupplyFilter) ([]dto.SupplyOrderResponse, error) {
	list, err := uc.supplyRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SupplyOrderResponse, 0, len(list))
	for _, o := range list {
		if f.Type != "" && o.Type != f.Type {
			continue
		}
		if f.Status != "" && o.Status != f.Status {
			continue
		}
		out = append(out, ToSupplyOrderResponse(o))
	}
	return out, nil
}

// ── Guarda de completitud ───────────────────────────────────────────────────

// UpdateStatus cambia el estado leyendo el anterior con bloqueo dentro de la transacción.
// Solo la transición de no-completo a RECEIVED/FINISHED acredita el stock.
func (uc *UseCase) UpdateStatus(ctx context.Context, companyID, id, status string) (*dto.SupplyOrderResponse, error) {
	if !domainsupply.IsValidStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	var updated *entity.SupplyOrder
	var notif *entity.Notification
	credited := false
	err := uc.txRunner.RunSupply(ctx, func(supplyRepo repository.SupplyOrderRepository, productRepo repository.ProductRepository, notifRepo repository.NotificationRepository) error {
		o, err := supplyRepo.GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		prev := o.Status
		o.Status = status
		o.UpdatedAt = uc.now()
		if err := supplyRepo.Update(ctx, o); err != nil {
			return err
		}
		updated = o

		if domainsupply.ShouldCredit(prev, status) {
			if err := uc.ledger.Credit(ctx, productRepo, o); err != nil {
				return err
			}
			credited = true
			title := "Mercancía Recibida"
			if o.Type == entity.SupplyProductionOrder {
				title = "Producción Finalizada"
			}
			notif = uc.notifier.New(companyID, title,
				fmt.Sprintf("Orden #%s completada. %d unidades ingresadas a inventario.", o.ID, o.Quantity),
				entity.NotificationSuccess, notification.RoleWarehouse, notification.RoleSales, notification.RoleCEO)
		} else {
			notif = uc.notifier.New(companyID, "Actualización de Estado",
				fmt.Sprintf("Orden #%s cambió a %s.", o.ID, status),
				entity.NotificationInfo, notification.RoleCEO, notification.RolePurchasing)
		}
		return uc.notifier.Record(ctx, notifRepo, notif)
	})
	if err != nil {
		return nil, err
	}
	uc.notifier.Dispatch(ctx, notif)
	if credited {
		uc.metrics.SupplyCompleted(companyID, updated.Type, updated.Quantity)
	}
	out := ToSupplyOrderResponse(updated)
	return &out, nil
}

// ── Asistencia IA ───────────────────────────────────────────────────────────

// SmartScan lee la factura del proveedor y sugiere proveedor, costo unitario y fecha estimada.
// Sin cantidad conocida el costo unitario sugerido es el total (el cliente asume cantidad 1).
func (uc *UseCase) SmartScan(ctx context.Context, in dto.SmartScanRequest) (*dto.SmartScanResponse, error) {
	if strings.TrimSpace(in.Image) == "" || in.Quantity < 0 {
		return nil, domain.ErrInvalidInput
	}
	inv := uc.ai.ExtractInvoice(ctx, in.Image)
	out := &dto.SmartScanResponse{
		Invoice:              inv,
		SuggestedSupplier:    inv.SupplierName,
		SuggestedCostPerUnit: decimal.Zero,
		SuggestedETA:         inv.Date,
	}
	if inv.TotalAmount.IsPositive() {
		if in.Quantity > 0 {
			out.SuggestedCostPerUnit = inv.TotalAmount.Div(decimal.NewFromInt(int64(in.Quantity))).Round(2)
		} else {
			out.SuggestedCostPerUnit = inv.TotalAmount
		}
	}
	return out, nil
}

// Forecast pronóstico de demanda sobre el stock actual de la empresa.
func (uc *UseCase) Forecast(ctx context.Context, companyID string) ([]dto.DemandForecastDTO, error) {
	products, err := uc.productRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return uc.ai.ForecastDemand(ctx, products), nil
}
