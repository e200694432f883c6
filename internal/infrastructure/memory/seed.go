package memory

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/infrastructure/seed"
)

// SeedRepos adapta los repositorios del store a la carga inicial.
func (s *Store) SeedRepos() seed.Repos {
	r := s.Repos()
	return seed.Repos{
		Companies:    r.Companies,
		Products:     r.Products,
		Customers:    r.Customers,
		Orders:       r.Orders,
		SupplyOrders: r.SupplyOrders,
		Channels:     r.Channels,
	}
}

// NewSeededStore crea un store con el catálogo de demostración cargado.
func NewSeededStore(ctx context.Context) (*Store, error) {
	s := NewStore()
	if err := seed.Apply(ctx, s.SeedRepos()); err != nil {
		return nil, err
	}
	return s, nil
}
