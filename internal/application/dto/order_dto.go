package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderItemRequest línea de un pedido nuevo. Sin unit_price se usa el precio de venta del producto.
type OrderItemRequest struct {
	ProductID     string           `json:"product_id" validate:"required"`
	Quantity      int              `json:"quantity" validate:"required,min=1"`
	UnitPrice     *decimal.Decimal `json:"unit_price"`
	SelectedSize  string           `json:"selected_size"`
	SelectedColor string           `json:"selected_color"`
}

// CreateOrderRequest entrada para crear un pedido.
type CreateOrderRequest struct {
	CustomerID    string             `json:"customer_id" validate:"required"`
	Items         []OrderItemRequest `json:"items" validate:"required,min=1"`
	ShippingCost  decimal.Decimal    `json:"shipping_cost"`
	InsuranceCost decimal.Decimal    `json:"insurance_cost"`
	PaymentTerms  *int               `json:"payment_terms"`
	Date          *time.Time         `json:"date"`
}

// OrderItemResponse línea de pedido.
type OrderItemResponse struct {
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	UnitPrice     decimal.Decimal `json:"unit_price"`
	Total         decimal.Decimal `json:"total"`
	SelectedSize  string          `json:"selected_size,omitempty"`
	SelectedColor string          `json:"selected_color,omitempty"`
}

// AttachmentRequest adjunto nuevo (data URL o enlace).
type AttachmentRequest struct {
	Name string `json:"name" validate:"required"`
	Type string `json:"type" validate:"required"`
	URL  string `json:"url" validate:"required"`
	Note string `json:"note"`
}

// OrderAttachmentResponse adjunto de pedido.
type OrderAttachmentResponse struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Type       string    `json:"type"`
	URL        string    `json:"url"`
	Date       time.Time `json:"date"`
	UploadedBy string    `json:"uploaded_by"`
}

// OrderResponse salida de un pedido.
type OrderResponse struct {
	ID                string                    `json:"id"`
	CustomerID        string                    `json:"customer_id"`
	CustomerName      string                    `json:"customer_name"`
	Date              time.Time                 `json:"date"`
	Status            string                    `json:"status"`
	Items             []OrderItemResponse       `json:"items"`
	ShippingCost      decimal.Decimal           `json:"shipping_cost"`
	InsuranceCost     decimal.Decimal           `json:"insurance_cost"`
	TotalAmount       decimal.Decimal           `json:"total_amount"`
	TrackingNumber    string                    `json:"tracking_number,omitempty"`
	LogisticsProvider string                    `json:"logistics_provider,omitempty"`
	EstimatedDelivery *time.Time                `json:"estimated_delivery,omitempty"`
	Attachments       []OrderAttachmentResponse `json:"attachments"`
	PaymentTerms      int                       `json:"payment_terms"`
	DueDate           time.Time                 `json:"due_date"`
	PaymentStatus     string                    `json:"payment_status"`
	RemindersSent     int                       `json:"reminders_sent"`
}

// OrderFilter filtros del listado de pedidos.
type OrderFilter struct {
	Search string `query:"search"`
	Status string `query:"status"`
}

// StatusChangeRequest solicitud de cambio de estado.
type StatusChangeRequest struct {
	Status string `json:"status" validate:"required"`
}

// StatusChangeResponse resultado de la solicitud. Si verification_required es true el estado no cambió.
type StatusChangeResponse struct {
	VerificationRequired bool                  `json:"verification_required"`
	Order                *OrderResponse        `json:"order,omitempty"`
	Verification         *VerificationResponse `json:"verification,omitempty"`
}

// VerificationItem avance de un producto en la verificación.
type VerificationItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Scanned     int    `json:"scanned"`
	Required    int    `json:"required"`
	Complete    bool   `json:"complete"`
}

// VerificationResponse estado de la sesión de verificación.
type VerificationResponse struct {
	OrderID   string             `json:"order_id"`
	StartedAt time.Time          `json:"started_at"`
	Scanned   int                `json:"scanned"`
	Required  int                `json:"required"`
	Percent   int                `json:"percent"`
	Complete  bool               `json:"complete"`
	Items     []VerificationItem `json:"items"`
}

// ScanRequest lectura del escáner: el texto crudo del QR.
type ScanRequest struct {
	Payload string `json:"payload" validate:"required"`
}

// ScanResponse resultado de una lectura aceptada.
type ScanResponse struct {
	ProductID    string               `json:"product_id"`
	Verification VerificationResponse `json:"verification"`
}

// TrackingRequest actualización de datos logísticos.
type TrackingRequest struct {
	TrackingNumber    *string    `json:"tracking_number"`
	LogisticsProvider *string    `json:"logistics_provider"`
	EstimatedDelivery *time.Time `json:"estimated_delivery"`
}

// PaymentStatusRequest cambio manual del estado de pago.
type PaymentStatusRequest struct {
	PaymentStatus string `json:"payment_status" validate:"required,oneof=PAID PENDING OVERDUE"`
}
