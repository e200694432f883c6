package repository

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer (CRM).
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Customer, error)
}
