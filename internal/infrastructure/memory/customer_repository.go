package memory

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo clientes en memoria.
type CustomerRepo struct {
	s    *Store
	inTx bool
}

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	defer r.s.guard(r.inTx)()
	k := key(c.CompanyID, c.ID)
	if _, ok := r.s.d.customers[k]; ok {
		return domain.ErrDuplicate
	}
	r.s.d.customers[k] = row[*entity.Customer]{seq: r.s.d.next(), v: cloneCustomer(c)}
	return nil
}

func (r *CustomerRepo) GetByID(_ context.Context, companyID, id string) (*entity.Customer, error) {
	defer r.s.guard(r.inTx)()
	if rw, ok := r.s.d.customers[key(companyID, id)]; ok {
		return cloneCustomer(rw.v), nil
	}
	return nil, nil
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	defer r.s.guard(r.inTx)()
	k := key(c.CompanyID, c.ID)
	cur, ok := r.s.d.customers[k]
	if !ok {
		return domain.ErrNotFound
	}
	cur.v = cloneCustomer(c)
	r.s.d.customers[k] = cur
	return nil
}

func (r *CustomerRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Customer, error) {
	defer r.s.guard(r.inTx)()
	list := r.s.d.customers.sorted(func(c *entity.Customer) bool { return c.CompanyID == companyID })
	for i, c := range list {
		list[i] = cloneCustomer(c)
	}
	return list, nil
}
