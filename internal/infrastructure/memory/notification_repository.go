package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.NotificationRepository = (*NotificationRepo)(nil)

// NotificationRepo notificaciones en memoria; se pierden al reiniciar el proceso.
type NotificationRepo struct {
	s    *Store
	inTx bool
}

func (r *NotificationRepo) Create(_ context.Context, n *entity.Notification) error {
	defer r.s.guard(r.inTx)()
	r.s.d.notifications[key(n.CompanyID, n.ID)] = row[*entity.Notification]{seq: r.s.d.next(), v: cloneNotification(n)}
	return nil
}

// ListByCompany más recientes primero.
func (r *NotificationRepo) ListByCompany(_ context.Context, companyID string, unreadOnly bool) ([]*entity.Notification, error) {
	defer r.s.guard(r.inTx)()
	rows := make([]row[*entity.Notification], 0)
	for _, rw := range r.s.d.notifications {
		if rw.v.CompanyID != companyID || (unreadOnly && rw.v.Read) {
			continue
		}
		rows = append(rows, rw)
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].seq > rows[j].seq })
	out := make([]*entity.Notification, 0, len(rows))
	for _, rw := range rows {
		out = append(out, cloneNotification(rw.v))
	}
	return out, nil
}

func (r *NotificationRepo) CountUnread(_ context.Context, companyID string) (int, error) {
	defer r.s.guard(r.inTx)()
	n := 0
	for _, rw := range r.s.d.notifications {
		if rw.v.CompanyID == companyID && !rw.v.Read {
			n++
		}
	}
	return n, nil
}

func (r *NotificationRepo) MarkRead(_ context.Context, companyID, id string) (bool, error) {
	defer r.s.guard(r.inTx)()
	rw, ok := r.s.d.notifications[key(companyID, id)]
	if !ok {
		return false, nil
	}
	rw.v.Read = true
	return true, nil
}

func (r *NotificationRepo) MarkAllRead(_ context.Context, companyID string) error {
	defer r.s.guard(r.inTx)()
	for _, rw := range r.s.d.notifications {
		if rw.v.CompanyID == companyID {
			rw.v.Read = true
		}
	}
	return nil
}

func (r *NotificationRepo) DeleteAll(_ context.Context, companyID string) error {
	defer r.s.guard(r.inTx)()
	for k, rw := range r.s.d.notifications {
		if rw.v.CompanyID == companyID {
			delete(r.s.d.notifications, k)
		}
	}
	return nil
}
