package billing_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/application/billing"
	"github.com/jhoicas/Operaciones-api/internal/application/notification"
	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/infrastructure/memory"
)

const company = "1"

type stubWriter struct {
	days    []int
	invoice []string
}

func (s *stubWriter) CollectionsMessage(_ context.Context, name string, _ decimal.Decimal, daysOverdue int, invoiceID string) string {
	s.days = append(s.days, daysOverdue)
	s.invoice = append(s.invoice, invoiceID)
	return "Hola " + name + ", su factura " + invoiceID + " está pendiente."
}

type stubMailer struct {
	mu   sync.Mutex
	sent []ports.Email
}

func (m *stubMailer) Dispatch(_ context.Context, e ports.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	return nil
}

type fixture struct {
	uc     *billing.UseCase
	repos  memory.Repos
	writer *stubWriter
	mailer *stubMailer
}

func at(s string) time.Time {
	t, err := time.Parse("2006-01-02 15:04", s)
	if err != nil {
		panic(err)
	}
	return t
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	store, err := memory.NewSeededStore(context.Background())
	require.NoError(t, err)
	repos := store.Repos()
	notifier := notification.NewUseCase(repos.Notifications, nil, nil, nil)
	writer := &stubWriter{}
	mailer := &stubMailer{}
	uc := billing.NewUseCase(repos.Orders, repos.Customers, repos.Companies, memory.NewTxRunner(store),
		notifier, writer, mailer, nil, nil)
	uc.SetClock(func() time.Time { return now })
	return &fixture{uc: uc, repos: repos, writer: writer, mailer: mailer}
}

func (f *fixture) order(t *testing.T, id string) *entity.Order {
	t.Helper()
	o, err := f.repos.Orders.GetByID(context.Background(), company, id)
	require.NoError(t, err)
	require.NotNil(t, o)
	return o
}

func (f *fixture) notifications(t *testing.T) []*entity.Notification {
	t.Helper()
	list, err := f.repos.Notifications.ListByCompany(context.Background(), company, false)
	require.NoError(t, err)
	return list
}

func TestInvoices_DerivadasDePedidos(t *testing.T) {
	f := newFixture(t, at("2024-04-01 12:00"))

	list, err := f.uc.Invoices(context.Background(), company, "")
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "INV-001-0", list[0].ID)
	assert.Equal(t, "ORD-2024-001", list[0].OrderID)
	assert.Equal(t, "INV-002-1", list[1].ID)
	assert.Equal(t, "INV-003-2", list[2].ID)
	assert.Equal(t, entity.PaymentOverdue, list[2].Status)
	assert.Equal(t, 1, list[2].RemindersSent)

	pending, err := f.uc.Invoices(context.Background(), company, entity.PaymentPending)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "ORD-2024-001", pending[0].OrderID)

	_, err = f.uc.Invoices(context.Background(), company, "PARCIAL")
	assert.ErrorIs(t, err, domain.ErrInvalidStatus)
}

func TestInvoice_DetalleConLineas(t *testing.T) {
	f := newFixture(t, at("2024-04-01 12:00"))

	inv, err := f.uc.Invoice(context.Background(), company, "ORD-2024-003")
	require.NoError(t, err)
	assert.Equal(t, "INV-003-2", inv.ID)
	require.Len(t, inv.Items, 1)
	assert.Equal(t, 100, inv.Items[0].Quantity)
	assert.True(t, inv.Amount.Equal(decimal.NewFromInt(4600)))

	_, err = f.uc.Invoice(context.Background(), company, "ORD-9999-999")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestSummary_TotalesPorEstado(t *testing.T) {
	f := newFixture(t, at("2024-04-01 12:00"))

	s, err := f.uc.Summary(context.Background(), company)
	require.NoError(t, err)
	assert.Equal(t, "9299.4", s.TotalRevenue.String())
	assert.Equal(t, "1949.4", s.PendingAmount.String())
	assert.Equal(t, "4600", s.OverdueAmount.String())
	assert.Equal(t, 1, s.OverdueCount)
	require.Len(t, s.Overdue, 1)
	assert.Equal(t, "ORD-2024-003", s.Overdue[0].OrderID)
}

func TestCollections_VencidasYProximas(t *testing.T) {
	f := newFixture(t, at("2024-04-01 12:00"))

	res, err := f.uc.Collections(context.Background(), company)
	require.NoError(t, err)
	require.Len(t, res.Overdue, 1)
	assert.Equal(t, "ORD-2024-003", res.Overdue[0].OrderID)
	assert.Empty(t, res.Upcoming, "vence en 8 días, fuera de la ventana de 5")

	f.uc.SetClock(func() time.Time { return at("2024-04-05 12:00") })
	res, err = f.uc.Collections(context.Background(), company)
	require.NoError(t, err)
	require.Len(t, res.Upcoming, 1)
	assert.Equal(t, "ORD-2024-001", res.Upcoming[0].OrderID)
	assert.Equal(t, 4, res.Upcoming[0].DaysToDue)

	overdue, upcoming, err := f.uc.CollectionCounts(context.Background(), company)
	require.NoError(t, err)
	assert.Equal(t, 1, overdue)
	assert.Equal(t, 1, upcoming)
}

func TestCollections_RecienVencidaNoCuentaComoProxima(t *testing.T) {
	// ORD-2024-001 vence el 2024-04-09; dos horas después.
	f := newFixture(t, at("2024-04-09 02:00"))
	ctx := context.Background()

	res, err := f.uc.Collections(ctx, company)
	require.NoError(t, err)
	assert.Empty(t, res.Upcoming)
	require.Len(t, res.Overdue, 2)

	c, err := f.repos.Companies.GetByID(ctx, company)
	require.NoError(t, err)
	c.Collections.AutoAIReminders = true
	require.NoError(t, f.repos.Companies.Update(ctx, c))

	run, err := f.uc.RunOverdue(ctx, company)
	require.NoError(t, err)
	assert.Equal(t, 1, run.MarkedOverdue)
	assert.Equal(t, 0, run.RemindersCreated)
	assert.Empty(t, f.writer.invoice)
	assert.Empty(t, f.mailer.sent)

	res, err = f.uc.Collections(ctx, company)
	require.NoError(t, err)
	assert.Empty(t, res.Upcoming)
	ids := []string{res.Overdue[0].OrderID, res.Overdue[1].OrderID}
	assert.ElementsMatch(t, []string{"ORD-2024-001", "ORD-2024-003"}, ids)
}

func TestCollections_EmpresaInexistente(t *testing.T) {
	f := newFixture(t, at("2024-04-01 12:00"))
	_, err := f.uc.Collections(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestReminder_IncrementaContadorYDevuelveMedios(t *testing.T) {
	f := newFixture(t, at("2024-04-01 12:00"))

	r, err := f.uc.Reminder(context.Background(), company, "ORD-2024-003")
	require.NoError(t, err)
	assert.Equal(t, "INV-003-2", r.InvoiceID)
	assert.Equal(t, 19, r.DaysOverdue)
	assert.Equal(t, 2, r.RemindersSent)
	assert.Contains(t, r.Message, "INV-003-2")
	assert.True(t, r.CanEmail)
	assert.True(t, r.CanWhatsApp)
	assert.Equal(t, "alice@modaurbana.com", r.Email)
	assert.Equal(t, []int{19}, f.writer.days)

	assert.Equal(t, 2, f.order(t, "ORD-2024-003").RemindersSent)
}

func TestReminder_PedidoPagadoOInexistente(t *testing.T) {
	f := newFixture(t, at("2024-04-01 12:00"))

	_, err := f.uc.Reminder(context.Background(), company, "ORD-2024-002")
	assert.ErrorIs(t, err, domain.ErrConflict)

	_, err = f.uc.Reminder(context.Background(), company, "ORD-0000-000")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, f.writer.days)
}

func TestRunOverdue_MarcaVencidasYAlertaUnaVez(t *testing.T) {
	f := newFixture(t, at("2024-04-10 12:00"))
	before := len(f.notifications(t))

	res, err := f.uc.RunOverdue(context.Background(), company)
	require.NoError(t, err)
	assert.Equal(t, 1, res.MarkedOverdue)
	assert.Equal(t, 0, res.RemindersCreated)
	assert.Equal(t, entity.PaymentOverdue, f.order(t, "ORD-2024-001").PaymentStatus)
	assert.Equal(t, entity.PaymentPaid, f.order(t, "ORD-2024-002").PaymentStatus)

	list := f.notifications(t)
	require.Len(t, list, before+1)
	assert.Equal(t, "Facturas Vencidas", list[0].Title)
	assert.Equal(t, entity.NotificationAlert, list[0].Type)
	assert.Equal(t, "1 factura(s) pasaron a vencidas por un total de $1949.40.", list[0].Message)
	assert.Equal(t, []string{notification.RoleFinance, notification.RoleCEO}, list[0].TargetRoles)

	res, err = f.uc.RunOverdue(context.Background(), company)
	require.NoError(t, err)
	assert.Equal(t, 0, res.MarkedOverdue)
	assert.Len(t, f.notifications(t), before+1)
}

func TestRunOverdue_RecordatoriosAutomaticos(t *testing.T) {
	f := newFixture(t, at("2024-04-05 12:00"))
	ctx := context.Background()
	c, err := f.repos.Companies.GetByID(ctx, company)
	require.NoError(t, err)
	c.Collections.AutoAIReminders = true
	require.NoError(t, f.repos.Companies.Update(ctx, c))

	res, err := f.uc.RunOverdue(ctx, company)
	require.NoError(t, err)
	assert.Equal(t, 0, res.MarkedOverdue)
	assert.Equal(t, 1, res.RemindersCreated)
	assert.Equal(t, []string{"INV-001-0"}, f.writer.invoice)
	assert.Equal(t, 1, f.order(t, "ORD-2024-001").RemindersSent)

	require.Len(t, f.mailer.sent, 2)
	assert.Equal(t, entity.ContactEmail, f.mailer.sent[0].Channel)
	assert.Equal(t, "alice@modaurbana.com", f.mailer.sent[0].To)
	assert.Equal(t, entity.ContactWhatsApp, f.mailer.sent[1].Channel)
	assert.Equal(t, "Recordatorio de Pago - Factura INV-001-0", f.mailer.sent[1].Subject)
}

func TestRunAll_SoloEmpresasConFinanzas(t *testing.T) {
	f := newFixture(t, at("2024-04-10 12:00"))

	results := f.uc.RunAll(context.Background())
	require.Len(t, results, 2)
	ids := []string{results[0].CompanyID, results[1].CompanyID}
	assert.ElementsMatch(t, []string{"1", "2"}, ids)
	for _, r := range results {
		assert.Equal(t, 1, r.MarkedOverdue)
	}
}

// ── Documentos ───────────────────────────────────────────────────────────────

type stubDocs struct {
	invoice  *entity.Invoice
	customer *entity.Customer
	fail     bool
}

func (s *stubDocs) GenerateInvoicePDF(_ context.Context, inv *entity.Invoice, _ *entity.Company, c *entity.Customer) ([]byte, error) {
	s.invoice, s.customer = inv, c
	if s.fail {
		return nil, errors.New("sin fuente")
	}
	return []byte("%PDF"), nil
}

func (s *stubDocs) GenerateInvoiceXML(_ context.Context, inv *entity.Invoice, _ *entity.Company, c *entity.Customer) ([]byte, error) {
	s.invoice, s.customer = inv, c
	return []byte("<Invoice/>"), nil
}

func TestDocuments_PDFyXML(t *testing.T) {
	f := newFixture(t, at("2024-04-01 12:00"))
	docs := &stubDocs{}
	uc := billing.NewDocumentsUseCase(f.uc, f.repos.Companies, f.repos.Customers, docs, docs)

	out, name, err := uc.InvoicePDF(context.Background(), company, "ORD-2024-003")
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(out))
	assert.Equal(t, "factura_INV-003-2.pdf", name)
	assert.Equal(t, "Alice Johnson", docs.customer.Name)
	assert.Equal(t, "alice@modaurbana.com", docs.customer.Email)

	_, name, err = uc.InvoiceXML(context.Background(), company, "ORD-2024-002")
	require.NoError(t, err)
	assert.Equal(t, "factura_INV-002-1.xml", name)
	assert.Equal(t, "ORD-2024-002", docs.invoice.OrderID)

	_, _, err = uc.InvoicePDF(context.Background(), company, "ORD-1999-001")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	docs.fail = true
	_, _, err = uc.InvoicePDF(context.Background(), company, "ORD-2024-001")
	assert.Error(t, err)
}
