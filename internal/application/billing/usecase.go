// Package billing implementa la cartera: facturas derivadas de pedidos, cobranza,
// recordatorios y el job diario de facturas vencidas.
package billing

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/notification"
	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
	"github.com/jhoicas/Operaciones-api/pkg/logger"
)

// UseCase casos de uso de finanzas y cobranza.
type UseCase struct {
	orderRepo    repository.OrderRepository
	customerRepo repository.CustomerRepository
	companyRepo  repository.CompanyRepository
	txRunner     TxRunner
	notifier     *notification.UseCase
	writer       CollectionsWriter
	mailer       ports.EmailDispatcher
	metrics      ports.MetricsRecorder
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso. mailer, metrics y log pueden ser nil.
func NewUseCase(
	orderRepo repository.OrderRepository,
	customerRepo repository.CustomerRepository,
	companyRepo repository.CompanyRepository,
	txRunner TxRunner,
	notifier *notification.UseCase,
	writer CollectionsWriter,
	mailer ports.EmailDispatcher,
	metrics ports.MetricsRecorder,
	log *logger.Logger,
) *UseCase {
	if metrics == nil {
		metrics = ports.NopMetrics{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &UseCase{
		orderRepo:    orderRepo,
		customerRepo: customerRepo,
		companyRepo:  companyRepo,
		txRunner:     txRunner,
		notifier:     notifier,
		writer:       writer,
		mailer:       mailer,
		metrics:      metrics,
		log:          log,
		now:          time.Now,
	}
}

// SetClock reemplaza el reloj (tests y corridas programadas con fecha fija).
func (uc *UseCase) SetClock(now func() time.Time) { uc.now = now }

// daysBetween días redondeados hacia arriba de from a to (negativo si to es anterior).
func daysBetween(from, to time.Time) int {
	return int(math.Ceil(to.Sub(from).Hours() / 24))
}

// ── Facturas ─────────────────────────────────────────────────────────────────

func (uc *UseCase) invoices(ctx context.Context, companyID string) ([]*entity.Invoice, []*entity.Order, error) {
	list, err := uc.orderRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, nil, fmt.Errorf("finanzas: listar pedidos: %w", err)
	}
	out := make([]*entity.Invoice, 0, len(list))
	for i, o := range list {
		out = append(out, entity.InvoiceFromOrder(o, i))
	}
	return out, list, nil
}

// invoiceFor busca la factura del pedido. Devuelve ErrNotFound si el pedido no existe.
func (uc *UseCase) invoiceFor(ctx context.Context, companyID, orderID string) (*entity.Invoice, *entity.Order, error) {
	invs, list, err := uc.invoices(ctx, companyID)
	if err != nil {
		return nil, nil, err
	}
	for i, inv := range invs {
		if inv.OrderID == orderID {
			return inv, list[i], nil
		}
	}
	return nil, nil, domain.ErrNotFound
}

// Invoices lista las facturas de la empresa; status filtra por estado de pago.
func (uc *UseCase) Invoices(ctx context.Context, companyID, status string) ([]dto.InvoiceResponse, error) {
	if status != "" && !entity.IsValidPaymentStatus(status) {
		return nil, domain.ErrInvalidStatus
	}
	invs, list, err := uc.invoices(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := make([]dto.InvoiceResponse, 0, len(invs))
	for i, inv := range invs {
		if status != "" && inv.Status != status {
			continue
		}
		out = append(out, toInvoiceResponse(inv, list[i], now, false))
	}
	return out, nil
}

// Invoice detalle de la factura de un pedido, con sus líneas.
func (uc *UseCase) Invoice(ctx context.Context, companyID, orderID string) (*dto.InvoiceResponse, error) {
	inv, o, err := uc.invoiceFor(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	resp := toInvoiceResponse(inv, o, uc.now(), true)
	return &resp, nil
}

// Summary facturación total, por cobrar (PENDING) y vencida (OVERDUE).
func (uc *UseCase) Summary(ctx context.Context, companyID string) (*dto.FinanceSummaryResponse, error) {
	invs, list, err := uc.invoices(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	out := &dto.FinanceSummaryResponse{
		TotalRevenue:  decimal.Zero,
		PendingAmount: decimal.Zero,
		OverdueAmount: decimal.Zero,
		Overdue:       []dto.InvoiceResponse{},
	}
	for i, inv := range invs {
		out.TotalRevenue = out.TotalRevenue.Add(inv.Amount)
		switch inv.Status {
		case entity.PaymentPending:
			out.PendingAmount = out.PendingAmount.Add(inv.Amount)
		case entity.PaymentOverdue:
			out.OverdueAmount = out.OverdueAmount.Add(inv.Amount)
			out.Overdue = append(out.Overdue, toInvoiceResponse(inv, list[i], now, false))
		}
	}
	out.OverdueCount = len(out.Overdue)
	return out, nil
}

// ── Cobranza ─────────────────────────────────────────────────────────────────

func (uc *UseCase) company(ctx context.Context, companyID string) (*entity.Company, error) {
	c, err := uc.companyRepo.GetByID(ctx, companyID)
	if err != nil {
		return nil, fmt.Errorf("finanzas: leer empresa: %w", err)
	}
	if c == nil {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

// split separa las facturas no pagadas en vencidas (OVERDUE o fecha pasada) y próximas
// (PENDING con 1..daysBeforeDue días por delante).
func split(invs []*entity.Invoice, now time.Time, daysBeforeDue int) (overdue, upcoming []int) {
	for i, inv := range invs {
		switch {
		case inv.Status == entity.PaymentPaid:
		case inv.Status == entity.PaymentOverdue || inv.DueDate.Before(now):
			overdue = append(overdue, i)
		case inv.Status == entity.PaymentPending:
			if d := daysBetween(now, inv.DueDate); d > 0 && d <= daysBeforeDue {
				upcoming = append(upcoming, i)
			}
		}
	}
	return overdue, upcoming
}

// Collections vista de cobranza: vencidas y próximas a vencer según la configuración de la empresa.
func (uc *UseCase) Collections(ctx context.Context, companyID string) (*dto.CollectionsResponse, error) {
	c, err := uc.company(ctx, companyID)
	if err != nil {
		return nil, err
	}
	invs, list, err := uc.invoices(ctx, companyID)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	overdue, upcoming := split(invs, now, c.Collections.DaysBeforeDue)
	out := &dto.CollectionsResponse{
		Overdue:  make([]dto.InvoiceResponse, 0, len(overdue)),
		Upcoming: make([]dto.InvoiceResponse, 0, len(upcoming)),
	}
	for _, i := range overdue {
		out.Overdue = append(out.Overdue, toInvoiceResponse(invs[i], list[i], now, false))
	}
	for _, i := range upcoming {
		out.Upcoming = append(out.Upcoming, toInvoiceResponse(invs[i], list[i], now, false))
	}
	return out, nil
}

// CollectionCounts cantidad de vencidas y próximas (para el dashboard).
func (uc *UseCase) CollectionCounts(ctx context.Context, companyID string) (overdue, upcoming int, err error) {
	res, err := uc.Collections(ctx, companyID)
	if err != nil {
		return 0, 0, err
	}
	return len(res.Overdue), len(res.Upcoming), nil
}

// Reminder genera el mensaje de cobro del pedido e incrementa su contador de recordatorios.
// La llamada a la IA ocurre fuera de la transacción.
func (uc *UseCase) Reminder(ctx context.Context, companyID, orderID string) (*dto.ReminderResponse, error) {
	inv, o, err := uc.invoiceFor(ctx, companyID, orderID)
	if err != nil {
		return nil, err
	}
	if o.PaymentStatus == entity.PaymentPaid {
		return nil, fmt.Errorf("pedido %s ya pagado: %w", orderID, domain.ErrConflict)
	}
	customer, err := uc.customerRepo.GetByID(ctx, companyID, o.CustomerID)
	if err != nil {
		return nil, fmt.Errorf("finanzas: leer cliente: %w", err)
	}

	daysOverdue := daysBetween(inv.DueDate, uc.now())
	msg := uc.writer.CollectionsMessage(ctx, inv.CustomerName, inv.Amount, daysOverdue, inv.ID)

	sent := 0
	err = uc.txRunner.RunBilling(ctx, func(orderRepo repository.OrderRepository, _ repository.NotificationRepository) error {
		cur, err := orderRepo.GetForUpdate(ctx, companyID, orderID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		cur.RemindersSent++
		cur.UpdatedAt = uc.now()
		sent = cur.RemindersSent
		return orderRepo.Update(ctx, cur)
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.ReminderGenerated(companyID)

	out := &dto.ReminderResponse{
		OrderID:       orderID,
		InvoiceID:     inv.ID,
		CustomerName:  inv.CustomerName,
		Message:       msg,
		DaysOverdue:   daysOverdue,
		RemindersSent: sent,
	}
	if customer != nil {
		out.CanEmail = customer.CanEmail()
		out.CanWhatsApp = customer.CanWhatsApp()
		if out.CanEmail {
			out.Email = customer.Email
		}
		if out.CanWhatsApp {
			out.Phone = customer.Phone
		}
	}
	return out, nil
}

// ── Job de cartera vencida ───────────────────────────────────────────────────

// RunOverdue marca como OVERDUE los pedidos PENDING con vencimiento pasado y emite una alerta
// "Facturas Vencidas" si alguno cambió. Con recordatorios automáticos activos, genera y despacha
// un recordatorio por cada factura próxima a vencer.
func (uc *UseCase) RunOverdue(ctx context.Context, companyID string) (dto.OverdueRunResult, error) {
	res := dto.OverdueRunResult{CompanyID: companyID}
	c, err := uc.company(ctx, companyID)
	if err != nil {
		return res, err
	}
	now := uc.now()

	var notif *entity.Notification
	err = uc.txRunner.RunBilling(ctx, func(orderRepo repository.OrderRepository, notifRepo repository.NotificationRepository) error {
		list, err := orderRepo.ListByCompany(ctx, companyID)
		if err != nil {
			return err
		}
		total := decimal.Zero
		for _, o := range list {
			if o.PaymentStatus != entity.PaymentPending || !o.DueDate.Before(now) {
				continue
			}
			o.PaymentStatus = entity.PaymentOverdue
			o.UpdatedAt = now
			if err := orderRepo.Update(ctx, o); err != nil {
				return err
			}
			res.MarkedOverdue++
			total = total.Add(o.TotalAmount)
		}
		if res.MarkedOverdue == 0 {
			return nil
		}
		notif = uc.notifier.New(companyID, "Facturas Vencidas",
			fmt.Sprintf("%d factura(s) pasaron a vencidas por un total de $%s.", res.MarkedOverdue, total.StringFixed(2)),
			entity.NotificationAlert, notification.RoleFinance, notification.RoleCEO)
		return uc.notifier.Record(ctx, notifRepo, notif)
	})
	if err != nil {
		return res, err
	}
	if notif != nil {
		uc.notifier.Dispatch(ctx, notif)
	}

	if !c.Collections.AutoAIReminders {
		return res, nil
	}
	invs, _, err := uc.invoices(ctx, companyID)
	if err != nil {
		return res, err
	}
	_, upcoming := split(invs, now, c.Collections.DaysBeforeDue)
	for _, i := range upcoming {
		r, err := uc.Reminder(ctx, companyID, invs[i].OrderID)
		if err != nil {
			uc.log.Warn().Err(err).Str("order_id", invs[i].OrderID).Msg("recordatorio automático fallido")
			continue
		}
		res.RemindersCreated++
		uc.deliver(ctx, companyID, c.Collections.Channels, invs[i].ID, r)
	}
	return res, nil
}

// deliver despacha el recordatorio por los medios habilitados en la empresa y aceptados por el cliente.
func (uc *UseCase) deliver(ctx context.Context, companyID string, channels []string, invoiceID string, r *dto.ReminderResponse) {
	if uc.mailer == nil {
		return
	}
	for _, ch := range channels {
		to := ""
		switch {
		case ch == entity.ContactEmail && r.CanEmail:
			to = r.Email
		case ch == entity.ContactWhatsApp && r.CanWhatsApp:
			to = r.Phone
		default:
			continue
		}
		err := uc.mailer.Dispatch(ctx, ports.Email{
			CompanyID: companyID,
			Subject:   "Recordatorio de Pago - Factura " + invoiceID,
			To:        to,
			Channel:   ch,
			Body:      r.Message,
		})
		if err != nil {
			uc.log.Warn().Err(err).Str("order_id", r.OrderID).Str("channel", ch).Msg("despacho de recordatorio fallido")
		}
	}
}

// RunAll ejecuta RunOverdue en cada empresa con el módulo FINANCE activo.
// Un fallo en una empresa se registra y no detiene a las demás.
func (uc *UseCase) RunAll(ctx context.Context) []dto.OverdueRunResult {
	companies, err := uc.companyRepo.List(ctx)
	if err != nil {
		uc.log.Error().Err(err).Msg("cartera: listar empresas")
		return nil
	}
	out := make([]dto.OverdueRunResult, 0, len(companies))
	for _, c := range companies {
		if !c.HasModule(entity.ModuleFinance) {
			continue
		}
		res, err := uc.RunOverdue(ctx, c.ID)
		if err != nil {
			uc.log.Error().Err(err).Str("company_id", c.ID).Msg("cartera: corrida fallida")
			continue
		}
		uc.log.Info().
			Str("company_id", c.ID).
			Int("marked_overdue", res.MarkedOverdue).
			Int("reminders", res.RemindersCreated).
			Msg("cartera: corrida completada")
		out = append(out, res)
	}
	return out
}

// ── Mapper ───────────────────────────────────────────────────────────────────

func toInvoiceResponse(inv *entity.Invoice, o *entity.Order, now time.Time, withItems bool) dto.InvoiceResponse {
	out := dto.InvoiceResponse{
		ID:            inv.ID,
		OrderID:       inv.OrderID,
		CustomerID:    inv.CustomerID,
		CustomerName:  inv.CustomerName,
		Amount:        inv.Amount,
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		Status:        inv.Status,
		DaysToDue:     daysBetween(now, inv.DueDate),
		RemindersSent: o.RemindersSent,
	}
	if withItems {
		out.Items = make([]dto.OrderItemResponse, 0, len(inv.Items))
		for _, it := range inv.Items {
			out.Items = append(out.Items, dto.OrderItemResponse{
				ProductID:     it.ProductID,
				ProductName:   it.ProductName,
				Quantity:      it.Quantity,
				UnitPrice:     it.UnitPrice,
				Total:         it.Total,
				SelectedSize:  it.SelectedSize,
				SelectedColor: it.SelectedColor,
			})
		}
	}
	return out
}
