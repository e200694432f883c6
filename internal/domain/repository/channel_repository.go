package repository

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// ChannelRepository puerto de persistencia de la configuración de canales de venta.
type ChannelRepository interface {
	Create(ctx context.Context, ch *entity.ChannelConfig) error
	GetByID(ctx context.Context, companyID, id string) (*entity.ChannelConfig, error)
	Update(ctx context.Context, ch *entity.ChannelConfig) error
	// Delete devuelve false si el canal no existe.
	Delete(ctx context.Context, companyID, id string) (bool, error)
	ListByCompany(ctx context.Context, companyID string) ([]entity.ChannelConfig, error)
}
