package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Operaciones-api/internal/application/billing"
	"github.com/jhoicas/Operaciones-api/internal/application/inventory"
	"github.com/jhoicas/Operaciones-api/internal/application/orders"
	"github.com/jhoicas/Operaciones-api/internal/application/supply"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/seed"
)

var (
	_ inventory.TxRunner = (*TxRunner)(nil)
	_ orders.TxRunner    = (*TxRunner)(nil)
	_ supply.TxRunner    = (*TxRunner)(nil)
	_ billing.TxRunner   = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// inTx inicia una transacción, ejecuta fn y hace Commit o Rollback.
func (r *TxRunner) inTx(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Run transacción del libro de inventario.
func (r *TxRunner) Run(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewProductRepository(tx))
	})
}

// RunOrders transacción de pedidos: estado del pedido, stock y notificación.
func (r *TxRunner) RunOrders(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewOrderRepository(tx), NewProductRepository(tx), NewNotificationRepository(tx))
	})
}

// RunSupply transacción de abastecimiento: estado de la orden, stock y notificación.
func (r *TxRunner) RunSupply(ctx context.Context, fn func(
	supplyRepo repository.SupplyOrderRepository,
	productRepo repository.ProductRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewSupplyOrderRepository(tx), NewProductRepository(tx), NewNotificationRepository(tx))
	})
}

// RunBilling transacción de cartera: estado de pago de los pedidos y notificación.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	orderRepo repository.OrderRepository,
	notifRepo repository.NotificationRepository,
) error) error {
	return r.inTx(ctx, func(tx pgx.Tx) error {
		return fn(NewOrderRepository(tx), NewNotificationRepository(tx))
	})
}

// Repos repositorios atados al pool (lecturas y escrituras fuera de transacción).
type Repos struct {
	Products      *ProductRepo
	Orders        *OrderRepo
	SupplyOrders  *SupplyOrderRepo
	Customers     *CustomerRepo
	Companies     *CompanyRepo
	Channels      *ChannelRepo
	Notifications *NotificationRepo
}

// NewRepos construye todos los repositorios sobre el pool.
func NewRepos(pool *pgxpool.Pool) Repos {
	return Repos{
		Products:      NewProductRepository(pool),
		Orders:        NewOrderRepository(pool),
		SupplyOrders:  NewSupplyOrderRepository(pool),
		Customers:     NewCustomerRepository(pool),
		Companies:     NewCompanyRepository(pool),
		Channels:      NewChannelRepository(pool),
		Notifications: NewNotificationRepository(pool),
	}
}

// SeedRepos adapta los repositorios a la carga inicial. Es idempotente: omite empresas existentes.
func (r Repos) SeedRepos() seed.Repos {
	return seed.Repos{
		Companies:    r.Companies,
		Products:     r.Products,
		Customers:    r.Customers,
		Orders:       r.Orders,
		SupplyOrders: r.SupplyOrders,
		Channels:     r.Channels,
	}
}
