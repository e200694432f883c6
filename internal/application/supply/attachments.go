package supply

import (
	"context"
	"fmt"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/notification"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
	domainsupply "github.com/jhoicas/Operaciones-api/internal/domain/supply"
)

// AddAttachment agrega un archivo a la orden. Los avances de producción y alertas de calidad se
// analizan al momento; un FAIL o WARNING genera la alerta de control de calidad.
func (uc *UseCase) AddAttachment(ctx context.Context, companyID, id string, in dto.SupplyAttachmentInput) (*dto.SupplyAttachmentResponse, error) {
	att, err := uc.newAttachment(in, uc.now())
	if err != nil {
		return nil, err
	}
	analyze := domainsupply.TriggersQualityCheck(att.Type)
	if analyze {
		att.AnalysisEpoch = 1
	}
	var productID string
	err = uc.txRunner.RunSupply(ctx, func(supplyRepo repository.SupplyOrderRepository, _ repository.ProductRepository, _ repository.NotificationRepository) error {
		o, err := supplyRepo.GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		productID = o.ProductID
		o.Attachments = append(o.Attachments, att)
		o.UpdatedAt = uc.now()
		return supplyRepo.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	if !analyze {
		out := toAttachmentResponse(att)
		return &out, nil
	}
	return uc.runAnalysis(ctx, companyID, id, productID, att, true)
}

// Analyze repite el análisis de calidad de un adjunto. Guarda el resultado sin notificar.
func (uc *UseCase) Analyze(ctx context.Context, companyID, id, attachmentID string) (*dto.SupplyAttachmentResponse, error) {
	var att entity.SupplyAttachment
	var productID string
	err := uc.txRunner.RunSupply(ctx, func(supplyRepo repository.SupplyOrderRepository, _ repository.ProductRepository, _ repository.NotificationRepository) error {
		o, err := supplyRepo.GetForUpdate(ctx, companyID, id)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		a := o.Attachment(attachmentID)
		if a == nil {
			return domain.ErrNotFound
		}
		a.AnalysisEpoch++
		att = *a
		productID = o.ProductID
		return supplyRepo.Update(ctx, o)
	})
	if err != nil {
		return nil, err
	}
	return uc.runAnalysis(ctx, companyID, id, productID, att, false)
}

// runAnalysis llama a la IA fuera de la transacción y guarda el veredicto solo si la época del
// adjunto no cambió mientras tanto: una respuesta vieja nunca pisa una más nueva.
func (uc *UseCase) runAnalysis(ctx context.Context, companyID, orderID, productID string, att entity.SupplyAttachment, alert bool) (*dto.SupplyAttachmentResponse, error) {
	standards := ""
	if p, err := uc.productRepo.GetByID(ctx, companyID, productID); err == nil && p != nil {
		standards = p.QualityStandards
	}
	result := uc.ai.AnalyzeQuality(ctx, att.URL, standards)

	var notif *entity.Notification
	current := att
	err := uc.txRunner.RunSupply(ctx, func(supplyRepo repository.SupplyOrderRepository, _ repository.ProductRepository, notifRepo repository.NotificationRepository) error {
		o, err := supplyRepo.GetForUpdate(ctx, companyID, orderID)
		if err != nil {
			return err
		}
		if o == nil {
			return domain.ErrNotFound
		}
		a := o.Attachment(att.ID)
		if a == nil {
			return domain.ErrNotFound
		}
		if a.AnalysisEpoch != att.AnalysisEpoch {
			current = *a
			return nil
		}
		r := result
		a.Quality = &r
		current = *a
		o.UpdatedAt = uc.now()
		if err := supplyRepo.Update(ctx, o); err != nil {
			return err
		}
		if alert && (result.Status == entity.QualityFail || result.Status == entity.QualityWarning) {
			notif = uc.notifier.New(companyID, "Alerta de Control de Calidad",
				fmt.Sprintf("La IA detectó un posible defecto en la orden #%s: \"%s\". Se requiere inspección humana inmediata.", orderID, result.Reason),
				entity.NotificationAlert, notification.RoleQuality, notification.RoleProduction, notification.RoleCEO)
			return uc.notifier.Record(ctx, notifRepo, notif)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if notif != nil {
		uc.notifier.Dispatch(ctx, notif)
	}
	out := toAttachmentResponse(current)
	return &out, nil
}
