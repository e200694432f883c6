package repository

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// NotificationRepository puerto de persistencia de notificaciones internas.
type NotificationRepository interface {
	Create(ctx context.Context, n *entity.Notification) error
	// ListByCompany más recientes primero; unreadOnly filtra las no leídas.
	ListByCompany(ctx context.Context, companyID string, unreadOnly bool) ([]*entity.Notification, error)
	CountUnread(ctx context.Context, companyID string) (int, error)
	// MarkRead devuelve false si la notificación no existe.
	MarkRead(ctx context.Context, companyID, id string) (bool, error)
	MarkAllRead(ctx context.Context, companyID string) error
	DeleteAll(ctx context.Context, companyID string) error
}
