package billing

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción con los repos de cartera.
type TxRunner interface {
	RunBilling(ctx context.Context, fn func(
		orderRepo repository.OrderRepository,
		notifRepo repository.NotificationRepository,
	) error) error
}

// CollectionsWriter redacta el mensaje de cobro. Nunca falla: ante error devuelve un texto genérico.
type CollectionsWriter interface {
	CollectionsMessage(ctx context.Context, customerName string, amount decimal.Decimal, daysOverdue int, invoiceID string) string
}

// InvoicePDFGenerator puerto de salida para la representación gráfica de la factura.
type InvoicePDFGenerator interface {
	GenerateInvoicePDF(ctx context.Context, invoice *entity.Invoice, company *entity.Company, customer *entity.Customer) ([]byte, error)
}

// InvoiceXMLGenerator puerto de salida para el documento XML de la factura.
type InvoiceXMLGenerator interface {
	GenerateInvoiceXML(ctx context.Context, invoice *entity.Invoice, company *entity.Company, customer *entity.Customer) ([]byte, error)
}
