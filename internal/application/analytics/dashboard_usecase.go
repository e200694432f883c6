// Package analytics contiene los casos de uso de reportes de negocio: dashboard,
// rentabilidad por canal y la serie histórica de operaciones.
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/inventory"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

var hundred = decimal.NewFromInt(100)

// DashboardUseCase genera el estado de resultados mensual y los contadores operativos.
type DashboardUseCase struct {
	orderRepo   repository.OrderRepository
	productRepo repository.ProductRepository
	companyRepo repository.CompanyRepository
	notifRepo   repository.NotificationRepository
	collections CollectionsCounter
}

// NewDashboardUseCase construye el caso de uso. collections puede ser nil (módulo de finanzas ausente).
func NewDashboardUseCase(
	orderRepo repository.OrderRepository,
	productRepo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	notifRepo repository.NotificationRepository,
	collections CollectionsCounter,
) *DashboardUseCase {
	return &DashboardUseCase{
		orderRepo:   orderRepo,
		productRepo: productRepo,
		companyRepo: companyRepo,
		notifRepo:   notifRepo,
		collections: collections,
	}
}

// modeFor modo por defecto según el tipo de empresa; HYBRID ve el consolidado.
func modeFor(companyType string) string {
	switch companyType {
	case entity.CompanyManufacturer:
		return dto.ModeManufacturer
	case entity.CompanyTrader:
		return dto.ModeTrader
	}
	return dto.ModeGeneral
}

// Get construye el dashboard. mode vacío toma el modo del tipo de empresa.
//
// Cuatro lecturas en paralelo: pedidos, productos, no leídas y cobranza.
func (uc *DashboardUseCase) Get(ctx context.Context, companyID, mode string) (*dto.DashboardResponse, error) {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("dashboard: leer empresa: %w", err)
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	mode = strings.ToUpper(strings.TrimSpace(mode))
	if mode == "" {
		mode = modeFor(company.Type)
	}
	if mode != dto.ModeGeneral && mode != dto.ModeManufacturer && mode != dto.ModeTrader {
		return nil, fmt.Errorf("modo %q: %w", mode, domain.ErrInvalidInput)
	}

	type ordersResult struct {
		list []*entity.Order
		err  error
	}
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type countResult struct {
		n   int
		err error
	}
	type collectionsResult struct {
		overdue, upcoming int
		err               error
	}

	ordersCh := make(chan ordersResult, 1)
	productsCh := make(chan productsResult, 1)
	unreadCh := make(chan countResult, 1)
	collCh := make(chan collectionsResult, 1)

	go func() {
		list, err := uc.orderRepo.ListByCompany(ctx, companyID)
		ordersCh <- ordersResult{list, err}
	}()
	go func() {
		list, err := uc.productRepo.ListByCompany(ctx, companyID)
		productsCh <- productsResult{list, err}
	}()
	go func() {
		n, err := uc.notifRepo.CountUnread(ctx, companyID)
		unreadCh <- countResult{n, err}
	}()
	go func() {
		if uc.collections == nil || !company.HasModule(entity.ModuleFinance) {
			collCh <- collectionsResult{}
			return
		}
		o, u, err := uc.collections.CollectionCounts(ctx, companyID)
		collCh <- collectionsResult{o, u, err}
	}()

	orders := <-ordersCh
	products := <-productsCh
	unread := <-unreadCh
	coll := <-collCh

	if orders.err != nil {
		return nil, fmt.Errorf("dashboard: pedidos: %w", orders.err)
	}
	if products.err != nil {
		return nil, fmt.Errorf("dashboard: productos: %w", products.err)
	}
	if unread.err != nil {
		return nil, fmt.Errorf("dashboard: notificaciones: %w", unread.err)
	}
	if coll.err != nil {
		return nil, fmt.Errorf("dashboard: cobranza: %w", coll.err)
	}

	byID := make(map[string]*entity.Product, len(products.list))
	lowStock := 0
	for _, p := range products.list {
		byID[p.ID] = p
		if p.IsLowStock() {
			lowStock++
		}
	}
	pending := 0
	for _, o := range orders.list {
		if o.Status == entity.OrderStatusPending || o.Status == entity.OrderStatusProcessing {
			pending++
		}
	}

	series := MonthlySeries(orders.list, byID, mode)
	monthly := company.MonthlyFixedCost()
	return &dto.DashboardResponse{
		Mode:            mode,
		Series:          series,
		Stats:           NetStats(series, monthly),
		MonthlyFixed:    monthly,
		LowStockCount:   lowStock,
		PendingOrders:   pending,
		OverdueInvoices: coll.overdue,
		UpcomingDue:     coll.upcoming,
		UnreadAlerts:    unread.n,
	}, nil
}

// keepLine filtra las líneas por origen del producto según el modo.
func keepLine(p *entity.Product, mode string) bool {
	switch mode {
	case dto.ModeManufacturer:
		return p != nil && p.OriginType == entity.OriginManufactured
	case dto.ModeTrader:
		return p != nil && p.OriginType == entity.OriginImported
	}
	return true
}

// MonthlySeries ingresos y utilidad bruta por mes (YYYY-MM ascendente) de los pedidos no cancelados.
// La utilidad usa el costo unitario actual del producto; un producto desconocido aporta costo cero.
func MonthlySeries(orders []*entity.Order, products map[string]*entity.Product, mode string) []dto.MonthlyPointDTO {
	type acc struct{ revenue, cost decimal.Decimal }
	months := map[string]*acc{}
	for _, o := range orders {
		if o.Status == entity.OrderStatusCancelled {
			continue
		}
		for _, it := range o.Items {
			p := products[it.ProductID]
			if !keepLine(p, mode) {
				continue
			}
			k := o.Date.Format("2006-01")
			a, ok := months[k]
			if !ok {
				a = &acc{revenue: decimal.Zero, cost: decimal.Zero}
				months[k] = a
			}
			a.revenue = a.revenue.Add(it.Total)
			a.cost = a.cost.Add(inventory.UnitCost(p).Mul(decimal.NewFromInt(int64(it.Quantity))))
		}
	}
	keys := make([]string, 0, len(months))
	for k := range months {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]dto.MonthlyPointDTO, 0, len(keys))
	for _, k := range keys {
		a := months[k]
		out = append(out, dto.MonthlyPointDTO{
			Month:   k,
			Revenue: a.revenue.Round(2),
			Profit:  a.revenue.Sub(a.cost).Round(2),
		})
	}
	return out
}

// NetStats estado de resultados: los costos fijos mensuales se cargan una vez por mes de la serie.
func NetStats(series []dto.MonthlyPointDTO, monthlyFixed decimal.Decimal) dto.NetStatsDTO {
	rev, gross := decimal.Zero, decimal.Zero
	for _, p := range series {
		rev = rev.Add(p.Revenue)
		gross = gross.Add(p.Profit)
	}
	fixed := monthlyFixed.Mul(decimal.NewFromInt(int64(len(series))))
	net := gross.Sub(fixed)
	margin := decimal.Zero
	if rev.IsPositive() {
		margin = net.Div(rev).Mul(hundred).Round(2)
	}
	return dto.NetStatsDTO{
		TotalRevenue:  rev,
		GrossProfit:   gross,
		FixedCostsYTD: fixed,
		NetProfit:     net,
		MarginPercent: margin,
	}
}
