package entity

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Invoice factura derivada de un pedido. No se persiste: se recalcula desde el pedido.
type Invoice struct {
	ID           string
	OrderID      string
	CompanyID    string
	CustomerID   string
	CustomerName string
	Amount       decimal.Decimal
	IssueDate    time.Time
	DueDate      time.Time
	Status       string // PAID | PENDING | OVERDUE
	Items        []OrderItem
}

// InvoiceFromOrder deriva la factura de un pedido. idx es la posición del pedido en el listado.
// El vencimiento es el del pedido o, si falta, la fecha del pedido + 30 días.
func InvoiceFromOrder(o *Order, idx int) *Invoice {
	due := o.DueDate
	if due.IsZero() {
		due = o.Date.AddDate(0, 0, 30)
	}
	return &Invoice{
		ID:           fmt.Sprintf("INV-%s-%d", orderSequence(o.ID), idx),
		OrderID:      o.ID,
		CompanyID:    o.CompanyID,
		CustomerID:   o.CustomerID,
		CustomerName: o.CustomerName,
		Amount:       o.TotalAmount,
		IssueDate:    o.Date,
		DueDate:      due,
		Status:       o.PaymentStatus,
		Items:        append([]OrderItem(nil), o.Items...),
	}
}

// orderSequence toma el tercer segmento de ORD-<año>-<seq>; si no existe, el ID completo.
func orderSequence(orderID string) string {
	parts := strings.Split(orderID, "-")
	if len(parts) >= 3 {
		return parts[2]
	}
	return orderID
}
