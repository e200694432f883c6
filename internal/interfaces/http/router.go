package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/analytics"
	"github.com/jhoicas/Operaciones-api/internal/application/billing"
	"github.com/jhoicas/Operaciones-api/internal/application/inventory"
	"github.com/jhoicas/Operaciones-api/internal/application/notification"
	"github.com/jhoicas/Operaciones-api/internal/application/orders"
	"github.com/jhoicas/Operaciones-api/internal/application/supply"
	"github.com/jhoicas/Operaciones-api/internal/application/usecase"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC       *inventory.ProductUseCase
	ReplenishmentUC *inventory.ReplenishmentUseCase
	ExportUC        *inventory.ExportUseCase
	OrdersUC        *orders.UseCase
	SupplyUC        *supply.UseCase
	NotificationUC  *notification.UseCase
	CustomerUC      *usecase.CustomerUseCase
	CompanyUC       *usecase.CompanyUseCase
	ModuleService   *usecase.ModuleService
	AIUC            *usecase.AIUseCase
	ChannelUC       *analytics.ChannelUseCase
	DashboardUC     *analytics.DashboardUseCase
	HistoryUC       *analytics.HistoryUseCase
	FinanceUC       *billing.UseCase
	DocumentsUC     *billing.DocumentsUseCase
	JWTSecret       string
}

// Router registra las rutas de la API. Todo /api exige Bearer Token; cada grupo
// funcional exige además su módulo activo en la empresa del token.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))
	module := func(name string) fiber.Handler { return RequireModule(name, deps.ModuleService) }

	// Dashboard y notificaciones (siempre disponibles)
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	api.Get("/dashboard", dashboardHandler.GetSummary)

	notifications := api.Group("/notifications")
	notificationHandler := NewNotificationHandler(deps.NotificationUC)
	notifications.Get("/", notificationHandler.List)
	notifications.Get("/unread-count", notificationHandler.UnreadCount)
	notifications.Put("/read-all", notificationHandler.MarkAllRead)
	notifications.Put("/:id/read", notificationHandler.MarkRead)
	notifications.Delete("/", notificationHandler.Clear)

	// Empresa del token. Los módulos solo los cambia un ADMIN.
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	company := api.Group("/company")
	company.Get("/", companyHandler.Me)
	company.Put("/modules", RequireRole(RoleAdmin), companyHandler.UpdateModules)
	company.Get("/fixed-costs", companyHandler.FixedCosts)
	company.Put("/fixed-costs", companyHandler.ReplaceFixedCosts)
	company.Get("/collection-settings", companyHandler.CollectionSettings)
	company.Put("/collection-settings", companyHandler.UpdateCollectionSettings)

	// Administración de empresas (rol ADMIN)
	companies := api.Group("/companies")
	companies.Get("/", RequireRole(RoleAdmin), companyHandler.List)
	companies.Post("/", RequireRole(RoleAdmin), companyHandler.Create)

	// Inventario
	productHandler := NewProductHandler(deps.ProductUC, deps.ReplenishmentUC, deps.ExportUC)
	products := api.Group("/products", module(entity.ModuleInventory))
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Post("/packs", productHandler.CreatePack)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Put("/:id/stock", productHandler.AdjustStock)
	products.Get("/:id/qr", productHandler.QRLabel)

	inv := api.Group("/inventory", module(entity.ModuleInventory))
	inv.Post("/audit", productHandler.Audit)
	inv.Get("/replenishment", productHandler.Replenishment)
	inv.Get("/export", productHandler.Export)

	// Pedidos
	orderHandler := NewOrderHandler(deps.OrdersUC)
	ord := api.Group("/orders", module(entity.ModuleOrders))
	ord.Get("/", orderHandler.List)
	ord.Post("/", orderHandler.Create)
	ord.Get("/:id", orderHandler.Get)
	ord.Put("/:id/status", orderHandler.ChangeStatus)
	ord.Get("/:id/verification", orderHandler.Verification)
	ord.Delete("/:id/verification", orderHandler.CancelVerification)
	ord.Post("/:id/verification/scan", orderHandler.Scan)
	ord.Post("/:id/verification/confirm", orderHandler.ConfirmShipment)
	ord.Put("/:id/tracking", orderHandler.UpdateTracking)
	ord.Put("/:id/payment", orderHandler.UpdatePayment)
	ord.Get("/:id/attachments", orderHandler.ListAttachments)
	ord.Post("/:id/attachments", orderHandler.AddAttachment)

	// Abastecimiento
	supplyHandler := NewSupplyHandler(deps.SupplyUC)
	sup := api.Group("/supply-orders", module(entity.ModuleSupplyChain))
	sup.Get("/", supplyHandler.List)
	sup.Post("/", supplyHandler.Create)
	sup.Get("/forecast", supplyHandler.Forecast)
	sup.Post("/smart-scan", supplyHandler.SmartScan)
	sup.Get("/:id", supplyHandler.Get)
	sup.Put("/:id/status", supplyHandler.UpdateStatus)
	sup.Post("/:id/attachments", supplyHandler.AddAttachment)
	sup.Post("/:id/attachments/:attachmentId/analyze", supplyHandler.Analyze)

	// CRM
	customerHandler := NewCustomerHandler(deps.CustomerUC)
	customers := api.Group("/customers", module(entity.ModuleCRM))
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.Get)
	customers.Put("/:id", customerHandler.Update)

	// Canales
	channelHandler := NewChannelHandler(deps.ChannelUC)
	channels := api.Group("/channels", module(entity.ModuleChannels))
	channels.Get("/", channelHandler.List)
	channels.Post("/", channelHandler.Create)
	channels.Get("/profitability", channelHandler.Profitability)
	channels.Put("/:id", channelHandler.Update)
	channels.Delete("/:id", channelHandler.Delete)

	// Finanzas
	financeHandler := NewFinanceHandler(deps.FinanceUC, deps.DocumentsUC)
	fin := api.Group("/finance", module(entity.ModuleFinance))
	fin.Get("/summary", financeHandler.Summary)
	fin.Get("/collections", financeHandler.Collections)
	fin.Post("/run-overdue", financeHandler.RunOverdue)
	fin.Get("/invoices", financeHandler.Invoices)
	fin.Get("/invoices/:orderId", financeHandler.Invoice)
	fin.Post("/invoices/:orderId/reminder", financeHandler.Reminder)
	fin.Get("/invoices/:orderId/pdf", financeHandler.InvoicePDF)
	fin.Get("/invoices/:orderId/xml", financeHandler.InvoiceXML)

	// Histórico
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	hist := api.Group("/history", module(entity.ModuleHistory))
	hist.Get("/", historyHandler.Get)
	hist.Get("/trend", historyHandler.Trend)

	// Estudio de IA
	aiHandler := NewAIHandler(deps.AIUC)
	ai := api.Group("/ai", module(entity.ModuleAIStudio))
	ai.Post("/marketing-copy", aiHandler.MarketingCopy)
	ai.Post("/quality-check", aiHandler.QualityCheck)
}
