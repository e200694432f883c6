// Package notification emite y consulta las notificaciones internas por departamento.
package notification

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
	"github.com/jhoicas/Operaciones-api/pkg/logger"
)

// Roles (departamentos) usados como destinatarios.
const (
	RoleWarehouse  = "Almacén"
	RoleSales      = "Ventas"
	RoleCEO        = "CEO"
	RoleProduction = "Producción"
	RolePurchasing = "Compras"
	RoleQuality    = "Calidad"
	RoleFinance    = "Finanzas"
)

// UseCase emite notificaciones y despacha el correo simulado.
type UseCase struct {
	repo    repository.NotificationRepository
	mailer  ports.EmailDispatcher
	metrics ports.MetricsRecorder
	log     *logger.Logger
	now     func() time.Time
}

// NewUseCase construye el emisor. metrics y log pueden ser nil.
func NewUseCase(repo repository.NotificationRepository, mailer ports.EmailDispatcher, metrics ports.MetricsRecorder, log *logger.Logger) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{repo: repo, mailer: mailer, metrics: metrics, log: log, now: time.Now}
}

// New arma la notificación sin persistirla.
func (uc *UseCase) New(companyID, title, message, notifType string, roles ...string) *entity.Notification {
	return &entity.Notification{
		ID:          uuid.New().String(),
		CompanyID:   companyID,
		Title:       title,
		Message:     message,
		Type:        notifType,
		TargetRoles: append([]string(nil), roles...),
		Date:        uc.now(),
	}
}

// Record persiste la notificación con el repositorio indicado (normalmente atado a una transacción).
func (uc *UseCase) Record(ctx context.Context, repo repository.NotificationRepository, n *entity.Notification) error {
	if err := repo.Create(ctx, n); err != nil {
		return fmt.Errorf("notificación: guardar: %w", err)
	}
	return nil
}

// Dispatch envía el correo simulado. Los fallos se registran y no se propagan.
func (uc *UseCase) Dispatch(ctx context.Context, n *entity.Notification) {
	uc.metrics.NotificationEmitted(n.Type)
	if uc.mailer == nil {
		return
	}
	err := uc.mailer.Dispatch(ctx, ports.Email{
		CompanyID:   n.CompanyID,
		Subject:     n.Title,
		Departments: n.TargetRoles,
		Body:        n.Message,
	})
	if err != nil {
		uc.log.Warn().Err(err).Str("notification_id", n.ID).Msg("despacho de correo fallido")
	}
}

// Notify persiste y despacha fuera de una transacción.
func (uc *UseCase) Notify(ctx context.Context, companyID, title, message, notifType string, roles ...string) (*entity.Notification, error) {
	n := uc.New(companyID, title, message, notifType, roles...)
	if err := uc.Record(ctx, uc.repo, n); err != nil {
		return nil, err
	}
	uc.Dispatch(ctx, n)
	return n, nil
}

// List devuelve las notificaciones más recientes primero con el contador de no leídas.
func (uc *UseCase) List(ctx context.Context, companyID string, unreadOnly bool) (*dto.NotificationListResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID, unreadOnly)
	if err != nil {
		return nil, err
	}
	unread, err := uc.repo.CountUnread(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := &dto.NotificationListResponse{Items: make([]dto.NotificationResponse, 0, len(list)), Unread: unread}
	for _, n := range list {
		out.Items = append(out.Items, toNotificationResponse(n))
	}
	return out, nil
}

// UnreadCount cantidad de notificaciones sin leer.
func (uc *UseCase) UnreadCount(ctx context.Context, companyID string) (int, error) {
	return uc.repo.CountUnread(ctx, companyID)
}

// MarkRead marca una notificación como leída.
func (uc *UseCase) MarkRead(ctx context.Context, companyID, id string) error {
	ok, err := uc.repo.MarkRead(ctx, companyID, id)
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrNotFound
	}
	return nil
}

// MarkAllRead marca todas como leídas.
func (uc *UseCase) MarkAllRead(ctx context.Context, companyID string) error {
	return uc.repo.MarkAllRead(ctx, companyID)
}

// Clear elimina todas las notificaciones de la empresa.
func (uc *UseCase) Clear(ctx context.Context, companyID string) error {
	return uc.repo.DeleteAll(ctx, companyID)
}

func toNotificationResponse(n *entity.Notification) dto.NotificationResponse {
	roles := n.TargetRoles
	if roles == nil {
		roles = []string{}
	}
	return dto.NotificationResponse{
		ID:          n.ID,
		Title:       n.Title,
		Message:     n.Message,
		Type:        n.Type,
		TargetRoles: roles,
		Date:        n.Date,
		Read:        n.Read,
	}
}
