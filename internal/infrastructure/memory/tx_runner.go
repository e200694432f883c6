package memory

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/application/billing"
	"github.com/jhoicas/Operaciones-api/internal/application/inventory"
	"github.com/jhoicas/Operaciones-api/internal/application/orders"
	"github.com/jhoicas/Operaciones-api/internal/application/supply"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ orders.TxRunner    = (*TxRunner)(nil)
	_ supply.TxRunner    = (*TxRunner)(nil)
	_ billing.TxRunner   = (*TxRunner)(nil)
)

// TxRunner serializa las transacciones con el mutex del store y restaura una foto del estado si fn falla.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre el store.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{s: s}
}

func (r *TxRunner) run(ctx context.Context, fn func() error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	snapshot := r.s.d.clone()
	if err := fn(); err != nil {
		r.s.d = snapshot
		return err
	}
	return nil
}

// Run transacción del libro de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return r.run(ctx, func() error {
		return fn(&ProductRepo{s: r.s, inTx: true})
	})
}

// RunOrders transacción de pedidos: estado del pedido, stock y notificación.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	return r.run(ctx, func() error {
		return fn(&OrderRepo{s: r.s, inTx: true}, &ProductRepo{s: r.s, inTx: true}, &NotificationRepo{s: r.s, inTx: true})
	})
}

// RunSupply transacción de abastecimiento: estado de la orden, stock y notificación.
func (r *TxRunner) RunSupply(ctx context.Context, fn func(
	supplyRepo repository.SupplyOrderRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	return r.run(ctx, func() error {
		return fn(&SupplyOrderRepo{s: r.s, inTx: true}, &ProductRepo{s: r.s, inTx: true}, &NotificationRepo{s: r.s, inTx: true})
	})
}

// RunBilling transacción de cartera: estado de pago de los pedidos y notificación.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	return r.run(ctx, func() error {
		return fn(&OrderRepo{s: r.s, inTx: true}, &NotificationRepo{s: r.s, inTx: true})
	})
}
