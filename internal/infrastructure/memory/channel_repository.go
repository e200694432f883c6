package memory

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var _ repository.ChannelRepository = (*ChannelRepo)(nil)

// ChannelRepo configuración de canales en memoria.
type ChannelRepo struct {
	s    *Store
	inTx bool
}

func (r *ChannelRepo) Create(_ context.Context, ch *entity.ChannelConfig) error {
	defer r.s.guard(r.inTx)()
	k := key(ch.CompanyID, ch.ID)
	if _, ok := r.s.d.channels[k]; ok {
		return domain.ErrDuplicate
	}
	r.s.d.channels[k] = row[entity.ChannelConfig]{seq: r.s.d.next(), v: *ch}
	return nil
}

func (r *ChannelRepo) GetByID(_ context.Context, companyID, id string) (*entity.ChannelConfig, error) {
	defer r.s.guard(r.inTx)()
	if rw, ok := r.s.d.channels[key(companyID, id)]; ok {
		ch := rw.v
		return &ch, nil
	}
	return nil, nil
}

func (r *ChannelRepo) Update(_ context.Context, ch *entity.ChannelConfig) error {
	defer r.s.guard(r.inTx)()
	k := key(ch.CompanyID, ch.ID)
	cur, ok := r.s.d.channels[k]
	if !ok {
		return domain.ErrNotFound
	}
	cur.v = *ch
	r.s.d.channels[k] = cur
	return nil
}

func (r *ChannelRepo) Delete(_ context.Context, companyID, id string) (bool, error) {
	defer r.s.guard(r.inTx)()
	k := key(companyID, id)
	if _, ok := r.s.d.channels[k]; !ok {
		return false, nil
	}
	delete(r.s.d.channels, k)
	return true, nil
}

func (r *ChannelRepo) ListByCompany(_ context.Context, companyID string) ([]entity.ChannelConfig, error) {
	defer r.s.guard(r.inTx)()
	return r.s.d.channels.sorted(func(c entity.ChannelConfig) bool { return c.CompanyID == companyID }), nil
}
