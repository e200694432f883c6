// Package bootstrap arma los casos de uso sobre un juego de repositorios (memoria o PostgreSQL).
package bootstrap

import (
	"context"
	"fmt"

	"github.com/jhoicas/Operaciones-api/internal/application/analytics"
	"github.com/jhoicas/Operaciones-api/internal/application/billing"
	"github.com/jhoicas/Operaciones-api/internal/application/inventory"
	"github.com/jhoicas/Operaciones-api/internal/application/notification"
	"github.com/jhoicas/Operaciones-api/internal/application/orders"
	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/internal/application/supply"
	"github.com/jhoicas/Operaciones-api/internal/application/usecase"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/excel"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/mailer"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/memory"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/seed"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/xmldoc"
	apphttp "github.com/jhoicas/Operaciones-api/internal/interfaces/http"
	"github.com/jhoicas/Operaciones-api/pkg/config"
	"github.com/jhoicas/Operaciones-api/pkg/logger"
)

// TxRunner reúne las cuatro formas de transacción que usan los casos de uso.
type TxRunner interface {
	inventory.TxRunner
	orders.TxRunner
	supply.TxRunner
	billing.TxRunner
}

// Stores repositorios y transacciones de un driver.
type Stores struct {
	Products      repository.ProductRepository
	Orders        repository.OrderRepository
	SupplyOrders  repository.SupplyOrderRepository
	Customers     repository.CustomerRepository
	Companies     repository.CompanyRepository
	Channels      repository.ChannelRepository
	Notifications repository.NotificationRepository
	Tx            TxRunner
	Seed          seed.Repos

	close func()
}

// Close libera el pool cuando el driver es postgres.
func (s *Stores) Close() {
	if s.close != nil {
		s.close()
	}
}

// MemoryStores store en proceso con el catálogo de demostración cargado.
func MemoryStores(ctx context.Context) (*Stores, error) {
	st, err := memory.NewSeededStore(ctx)
	if err != nil {
		return nil, fmt.Errorf("memoria: carga inicial: %w", err)
	}
	r := st.Repos()
	return &Stores{
		Products:      r.Products,
		Orders:        r.Orders,
		SupplyOrders:  r.SupplyOrders,
		Customers:     r.Customers,
		Companies:     r.Companies,
		Channels:      r.Channels,
		Notifications: r.Notifications,
		Tx:            memory.NewTxRunner(st),
		Seed:          st.SeedRepos(),
	}, nil
}

// PostgresStores abre el pool (y migra si DB_AUTO_MIGRATE). No siembra datos.
func PostgresStores(ctx context.Context, cfg config.DBConfig) (*Stores, error) {
	if cfg.AutoMigrate {
		if err := postgres.Migrate(ctx, cfg.ConnectionString()); err != nil {
			return nil, err
		}
	}
	pool, err := postgres.NewPool(ctx, cfg)
	if err != nil {
		return nil, err
	}
	r := postgres.NewRepos(pool)
	return &Stores{
		Products:      r.Products,
		Orders:        r.Orders,
		SupplyOrders:  r.SupplyOrders,
		Customers:     r.Customers,
		Companies:     r.Companies,
		Channels:      r.Channels,
		Notifications: r.Notifications,
		Tx:            postgres.NewTxRunner(pool),
		Seed:          r.SeedRepos(),
		close:         pool.Close,
	}, nil
}

// OpenStores elige el driver según la configuración.
func OpenStores(ctx context.Context, cfg config.DBConfig) (*Stores, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return PostgresStores(ctx, cfg)
	case config.DriverMemory, "":
		return MemoryStores(ctx)
	default:
		return nil, fmt.Errorf("DB_DRIVER %q no soportado", cfg.Driver)
	}
}

// Container casos de uso ya cableados.
type Container struct {
	Products      *inventory.ProductUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Export        *inventory.ExportUseCase
	Orders        *orders.UseCase
	Supply        *supply.UseCase
	Notifications *notification.UseCase
	Customers     *usecase.CustomerUseCase
	Companies     *usecase.CompanyUseCase
	Modules       *usecase.ModuleService
	AI            *usecase.AIUseCase
	Channels      *analytics.ChannelUseCase
	Dashboard     *analytics.DashboardUseCase
	History       *analytics.HistoryUseCase
	Finance       *billing.UseCase
	Documents     *billing.DocumentsUseCase
}

// Build cablea los casos de uso. metrics nil usa ports.NopMetrics.
func Build(cfg *config.Config, s *Stores, llm ports.LLMService, metrics ports.MetricsRecorder, log *logger.Logger) *Container {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}

	ledger := inventory.NewLedger()
	notifier := notification.NewUseCase(s.Notifications, mailer.NewLogMailer(log.Named("mailer")), metrics, log.Named("notificaciones"))
	aiUC := usecase.NewAIUseCase(llm, s.Products, metrics, log.Named("ai"), cfg.AI.Timeout())

	productUC := inventory.NewProductUseCase(s.Products, s.Companies, s.Tx, ledger)
	finance := billing.NewUseCase(s.Orders, s.Customers, s.Companies, s.Tx, notifier, aiUC, mailer.NewLogMailer(log.Named("cobranza")), metrics, log.Named("finanzas"))

	return &Container{
		Products:      productUC,
		Replenishment: inventory.NewReplenishmentUseCase(s.Products),
		Export:        inventory.NewExportUseCase(productUC, s.Companies, excel.NewProductExporter()),
		Orders: orders.NewUseCase(s.Orders, s.Products, s.Customers, s.Tx, ledger, notifier, metrics, orders.NewSessions(), orders.Options{
			RequireFullVerification: cfg.Orders.RequireFullVerification,
			DefaultPaymentTerms:     cfg.Finance.DefaultPaymentTerms,
		}),
		Supply:        supply.NewUseCase(s.SupplyOrders, s.Products, s.Tx, ledger, notifier, aiUC, metrics),
		Notifications: notifier,
		Customers:     usecase.NewCustomerUseCase(s.Customers),
		Companies:     usecase.NewCompanyUseCase(s.Companies, s.Channels),
		Modules:       usecase.NewModuleService(s.Companies),
		AI:            aiUC,
		Channels:      analytics.NewChannelUseCase(s.Channels, s.Customers),
		Dashboard:     analytics.NewDashboardUseCase(s.Orders, s.Products, s.Companies, s.Notifications, finance),
		History:       analytics.NewHistoryUseCase(aiUC),
		Finance:       finance,
		Documents:     billing.NewDocumentsUseCase(finance, s.Companies, s.Customers, pdf.NewMarotoPDFGenerator(), xmldoc.NewGenerator()),
	}
}

// RouterDeps dependencias del router HTTP.
func (c *Container) RouterDeps(jwtSecret string) apphttp.RouterDeps {
	return apphttp.RouterDeps{
		ProductUC:       c.Products,
		ReplenishmentUC: c.Replenishment,
		ExportUC:        c.Export,
		OrdersUC:        c.Orders,
		SupplyUC:        c.Supply,
		NotificationUC:  c.Notifications,
		CustomerUC:      c.Customers,
		CompanyUC:       c.Companies,
		ModuleService:   c.Modules,
		AIUC:            c.AI,
		ChannelUC:       c.Channels,
		DashboardUC:     c.Dashboard,
		HistoryUC:       c.History,
		FinanceUC:       c.Finance,
		DocumentsUC:     c.Documents,
		JWTSecret:       jwtSecret,
	}
}
