package memory

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo productos en memoria.
type ProductRepo struct {
	s    *Store
	inTx bool
}

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	defer r.s.guard(r.inTx)()
	d := r.s.d
	k := key(p.CompanyID, p.ID)
	if _, ok := d.products[k]; ok {
		return domain.ErrDuplicate
	}
	for _, rw := range d.products {
		if rw.v.CompanyID == p.CompanyID && rw.v.SKU == p.SKU {
			return domain.ErrDuplicate
		}
	}
	d.products[k] = row[*entity.Product]{seq: d.next(), v: p.Clone()}
	return nil
}

func (r *ProductRepo) GetByID(_ context.Context, companyID, id string) (*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	if rw, ok := r.s.d.products[key(companyID, id)]; ok {
		return rw.v.Clone(), nil
	}
	return nil, nil
}

// GetForUpdate en memoria equivale a GetByID: la transacción ya tiene el mutex del store.
func (r *ProductRepo) GetForUpdate(ctx context.Context, companyID, id string) (*entity.Product, error) {
	return r.GetByID(ctx, companyID, id)
}

func (r *ProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	for _, rw := range r.s.d.products {
		if rw.v.CompanyID == companyID && rw.v.SKU == sku {
			return rw.v.Clone(), nil
		}
	}
	return nil, nil
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	defer r.s.guard(r.inTx)()
	k := key(p.CompanyID, p.ID)
	cur, ok := r.s.d.products[k]
	if !ok {
		return domain.ErrNotFound
	}
	cur.v = p.Clone()
	r.s.d.products[k] = cur
	return nil
}

func (r *ProductRepo) UpdateStock(_ context.Context, companyID, id string, stock int) error {
	defer r.s.guard(r.inTx)()
	k := key(companyID, id)
	cur, ok := r.s.d.products[k]
	if !ok {
		return domain.ErrNotFound
	}
	cur.v.Stock = stock
	return nil
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Product, error) {
	defer r.s.guard(r.inTx)()
	list := r.s.d.products.sorted(func(p *entity.Product) bool { return p.CompanyID == companyID })
	for i, p := range list {
		list[i] = p.Clone()
	}
	return list, nil
}
