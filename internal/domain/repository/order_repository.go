package repository

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// OrderRepository puerto de persistencia de pedidos de venta. Los pedidos nunca se eliminan.
type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, companyID, id string) (*entity.Order, error)
	GetForUpdate(ctx context.Context, companyID, id string) (*entity.Order, error)
	Update(ctx context.Context, order *entity.Order) error
	// ListByCompany devuelve los pedidos más recientes primero.
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Order, error)
	CountByCompany(ctx context.Context, companyID string) (int, error)
}
