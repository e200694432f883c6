package repository

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// SupplyOrderRepository puerto de persistencia de órdenes de compra y producción.
type SupplyOrderRepository interface {
	Create(ctx context.Context, order *entity.SupplyOrder) error
	GetByID(ctx context.Context, companyID, id string) (*entity.SupplyOrder, error)
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.SupplyOrder, error)
	Update(ctx context.Context, order *entity.SupplyOrder) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.SupplyOrder, error)
}
