package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones internas sobre PostgreSQL.
type NotificationRepo struct {
	q Querier
}

// NewNotificationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewNotificationRepository(q Querier) *NotificationRepo {
	return &NotificationRepo{q: q}
}

func (r *NotificationRepo) Create(ctx context.Context, n *entity.Notification) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO notifications (id, company_id, title, message, type, target_roles, date, read)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		n.ID, n.CompanyID, n.Title, n.Message, n.Type, n.TargetRoles, n.Date, n.Read)
	if err != nil {
		return fmt.Errorf("insert notification: %w", err)
	}
	return nil
}

// ListByCompany más recientes primero (orden de inserción descendente).
func (r *NotificationRepo) ListByCompany(ctx context.Context, companyID string, unreadOnly bool) ([]*entity.Notification, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, title, message, type, target_roles, date, read
		FROM notifications
		WHERE company_id = $1 AND (NOT $2 OR NOT read)
		ORDER BY seq DESC`, companyID, unreadOnly)
	if err != nil {
		return nil, fmt.Errorf("list notifications: %w", err)
	}
	defer rows.Close()
	list := make([]*entity.Notification, 0)
	for rows.Next() {
		var n entity.Notification
		if err := rows.Scan(&n.ID, &n.CompanyID, &n.Title, &n.Message, &n.Type, &n.TargetRoles, &n.Date, &n.Read); err != nil {
			return nil, fmt.Errorf("scan notification: %w", err)
		}
		list = append(list, &n)
	}
	return list, rows.Err()
}

func (r *NotificationRepo) CountUnread(ctx context.Context, companyID string) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx,
		`SELECT count(*) FROM notifications WHERE company_id = $1 AND NOT read`, companyID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count notifications: %w", err)
	}
	return n, nil
}

func (r *NotificationRepo) MarkRead(ctx context.Context, companyID, id string) (bool, error) {
	cmd, err := r.q.Exec(ctx, `UPDATE notifications SET read = true WHERE company_id = $1 AND id = $2`, companyID, id)
	if err != nil {
		return false, fmt.Errorf("mark notification: %w", err)
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *NotificationRepo) MarkAllRead(ctx context.Context, companyID string) error {
	if _, err := r.q.Exec(ctx, `UPDATE notifications SET read = true WHERE company_id = $1 AND NOT read`, companyID); err != nil {
		return fmt.Errorf("mark all notifications: %w", err)
	}
	return nil
}

func (r *NotificationRepo) DeleteAll(ctx context.Context, companyID string) error {
	if _, err := r.q.Exec(ctx, `DELETE FROM notifications WHERE company_id = $1`, companyID); err != nil {
		return fmt.Errorf("delete notifications: %w", err)
	}
	return nil
}
