package orders

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// TxRunner ejecuta fn en una transacción con los repositorios del ciclo de pedidos atados a ella.
// El cambio de estado, el descuento de stock y la notificación se confirman juntos.
type TxRunner interface {
	RunOrders(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		productRepo repository.ProductRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}
