package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.OrderRepository = (*OrderRepo)(nil)

// OrderRepo pedidos en memoria.
type OrderRepo struct {
	s    *Store
	inTx bool
}

func (r *OrderRepo) Create(_ context.Context, o *entity.Order) error {
	defer r.s.guard(r.inTx)()
	k := key(o.CompanyID, o.ID)
	if _, ok := r.s.d.orders[k]; ok {
		return domain.ErrDuplicate
	}
	r.s.d.orders[k] = row[*entity.Order]{seq: r.s.d.next(), v: o.Clone()}
	return nil
}

func (r *OrderRepo) GetByID(_ context.Context, companyID, id string) (*entity.Order, error) {
	defer r.s.guard(r.inTx)()
	if rw, ok := r.s.d.orders[key(companyID, id)]; ok {
		return rw.v.Clone(), nil
	}
	return nil, nil
}

func (r *OrderRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Order, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *OrderRepo) Update(_ context.Context, o *entity.Order) error {
	defer r.s.guard(r.inTx)()
	k := key(o.CompanyID, o.ID)
	cur, ok := r.s.d.orders[k]
	if !ok {
		return domain.ErrNotFound
	}
	cur.v = o.Clone()
	r.s.d.orders[k] = cur
	return nil
}

// ListByCompany más recientes primero (fecha descendente, luego inserción descendente).
func (r *OrderRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Order, error) {
	defer r.s.guard(r.inTx)()
	rows := make([]row[*entity.Order], 0)
	for _, rw := range r.s.d.orders {
		if rw.v.CompanyID == companyID {
			rows = append(rows, rw)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].v.Date.Equal(rows[j].v.Date) {
			return rows[i].v.Date.After(rows[j].v.Date)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]*entity.Order, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.v.Clone())
	}
	return out, nil
}

func (r *OrderRepo) CountByCompany(_ context.Context, companyID string) (int, error) {
	defer r.s.guard(r.inTx)()
	n := 0
	for _, rw := range r.s.d.orders {
		if rw.v.CompanyID == companyID {
			n++
		}
	}
	return n, nil
}
