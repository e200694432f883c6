package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.SupplyOrderRepository = (*SupplyOrderRepo)(nil)

// SupplyOrderRepo órdenes de abastecimiento en memoria.
type SupplyOrderRepo struct {
	s    *Store
	inTx bool
}

func (r *SupplyOrderRepo) Create(_ context.Context, o *entity.SupplyOrder) error {
	defer r.s.guard(r.inTx)()
	k := key(o.CompanyID, o.ID)
	if _, ok := r.s.d.supplyOrders[k]; ok {
		return domain.ErrDuplicate
	}
	r.s.d.supplyOrders[k] = row[*entity.SupplyOrder]{seq: r.s.d.next(), v: o.Clone()}
	return nil
}

func (r *SupplyOrderRepo) GetByID(_ context.Context, companyID, id string) (*entity.SupplyOrder, error) {
	defer r.s.guard(r.inTx)()
	if rw, ok := r.s.d.supplyOrders[key(companyID, id)]; ok {
		return rw.v.Clone(), nil
	}
	return nil, nil
}

func (r *SupplyOrderRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.SupplyOrder, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *SupplyOrderRepo) Update(_ context.Context, o *entity.SupplyOrder) error {
	defer r.s.guard(r.inTx)()
	k := key(o.CompanyID, o.ID)
	cur, ok := r.s.d.supplyOrders[k]
	if !ok {
		return domain.ErrNotFound
	}
	cur.v = o.Clone()
	r.s.d.supplyOrders[k] = cur
	return nil
}

// ListByCompany más recientes primero.
func (r *SupplyOrderRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.SupplyOrder, error) {
	defer r.s.guard(r.inTx)()
	rows := make([]row[*entity.SupplyOrder], 0)
	for _, rw := range r.s.d.supplyOrders {
		if rw.v.CompanyID == companyID {
			rows = append(rows, rw)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if !rows[i].v.OrderDate.Equal(rows[j].v.OrderDate) {
			return rows[i].v.OrderDate.After(rows[j].v.OrderDate)
		}
		return rows[i].seq > rows[j].seq
	})
	out := make([]*entity.SupplyOrder, 0, len(rows))
	for _, rw := range rows {
		out = append(out, rw.v.Clone())
	}
	return out, nil
}
