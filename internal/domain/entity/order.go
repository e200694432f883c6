package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados del pedido de venta.
const (
	OrderStatusPending    = "Pendiente"
	OrderStatusProcessing = "Procesando"
	OrderStatusShipped    = "Enviado"
	OrderStatusDelivered  = "Entregado"
	OrderStatusCancelled  = "Cancelado"
)

// Estados de pago.
const (
	PaymentPaid    = "PAID"
	PaymentPending = "PENDING"
	PaymentOverdue = "OVERDUE"
)

// Tipos de adjunto de pedido.
const (
	OrderAttachmentInvoice  = "INVOICE"
	OrderAttachmentImage    = "IMAGE"
	OrderAttachmentDocument = "DOCUMENT"
)

// IsValidOrderStatus valida contra la enumeración de estados.
func IsValidOrderStatus(s string) bool {
	switch s {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// IsValidPaymentStatus valida contra la enumeración de estados de pago.
func IsValidPaymentStatus(s string) bool {
	return s == PaymentPaid || s == PaymentPending || s == PaymentOverdue
}

// OrderItem línea del pedido. Total = Quantity * UnitPrice.
type OrderItem struct {
	ProductID     string
	ProductName   string
	Quantity      int
	UnitPrice     decimal.Decimal
	Total         decimal.Decimal
	SelectedSize  string
	SelectedColor string
}

// OrderAttachment documento asociado a un pedido (factura, foto, guía).
type OrderAttachment struct {
	ID         string
	Name       string
	Type       string
	URL        string // data URL o enlace
	Date       time.Time
	UploadedBy string
}

// Order pedido de venta de un cliente. Se crea completo en estado Pendiente y nunca se elimina.
type Order struct {
	ID                string
	CompanyID         string
	CustomerID        string
	CustomerName      string
	Date              time.Time
	Status            string
	Items             []OrderItem
	ShippingCost      decimal.Decimal
	InsuranceCost     decimal.Decimal
	TotalAmount       decimal.Decimal
	TrackingNumber    string
	LogisticsProvider string
	EstimatedDelivery *time.Time
	Attachments       []OrderAttachment

	PaymentTerms  int // días: 0, 15, 30, 60
	DueDate       time.Time
	PaymentStatus string
	RemindersSent int

	CreatedAt time.Time
	UpdatedAt time.Time
}

// RequiredUnits suma las cantidades de todas las líneas.
func (o *Order) RequiredUnits() int {
	total := 0
	for _, it := range o.Items {
		total += it.Quantity
	}
	return total
}

// Clone devuelve una copia profunda.
func (o *Order) Clone() *Order {
	c := *o
	c.Items = append([]OrderItem(nil), o.Items...)
	c.Attachments = append([]OrderAttachment(nil), o.Attachments...)
	if o.EstimatedDelivery != nil {
		d := *o.EstimatedDelivery
		c.EstimatedDelivery = &d
	}
	return &c
}
