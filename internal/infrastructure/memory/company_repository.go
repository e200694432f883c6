package memory

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.CompanyRepository = (*CompanyRepo)(nil)

// CompanyRepo empresas en memoria.
type CompanyRepo struct {
	s    *Store
	inTx bool
}

func (r *CompanyRepo) Create(_ context.Context, c *entity.Company) error {
	defer r.s.guard(r.inTx)()
	if _, ok := r.s.d.companies[c.ID]; ok {
		return domain.ErrDuplicate
	}
	r.s.d.companies[c.ID] = row[*entity.Company]{seq: r.s.d.next(), v: c.Clone()}
	return nil
}

func (r *CompanyRepo) GetByID(_ context.Context, id string) (*entity.Company, error) {
	defer r.s.guard(r.inTx)()
	if rw, ok := r.s.d.companies[id]; ok {
		return rw.v.Clone(), nil
	}
	return nil, nil
}

func (r *CompanyRepo) Update(_ context.Context, c *entity.Company) error {
	defer r.s.guard(r.inTx)()
	cur, ok := r.s.d.companies[c.ID]
	if !ok {
		return domain.ErrNotFound
	}
	cur.v = c.Clone()
	r.s.d.companies[c.ID] = cur
	return nil
}

func (r *CompanyRepo) List(_ context.Context) ([]*entity.Company, error) {
	defer r.s.guard(r.inTx)()
	list := r.s.d.companies.sorted(func(*entity.Company) bool { return true })
	for i, c := range list {
		list[i] = c.Clone()
	}
	return list, nil
}
