package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceResponse factura derivada de un pedido.
type InvoiceResponse struct {
	ID            string              `json:"id"`
	OrderID       string              `json:"order_id"`
	CustomerID    string              `json:"customer_id"`
	CustomerName  string              `json:"customer_name"`
	Amount        decimal.Decimal     `json:"amount"`
	IssueDate     time.Time           `json:"issue_date"`
	DueDate       time.Time           `json:"due_date"`
	Status        string              `json:"status"`
	DaysToDue     int                 `json:"days_to_due"`
	RemindersSent int                 `json:"reminders_sent"`
	Items         []OrderItemResponse `json:"items,omitempty"`
}

// FinanceSummaryResponse resumen de cartera.
type FinanceSummaryResponse struct {
	TotalRevenue  decimal.Decimal   `json:"total_revenue"`
	PendingAmount decimal.Decimal   `json:"pending_amount"`
	OverdueAmount decimal.Decimal   `json:"overdue_amount"`
	OverdueCount  int               `json:"overdue_count"`
	Overdue       []InvoiceResponse `json:"overdue"`
}

// CollectionsResponse facturas vencidas y próximas a vencer.
type CollectionsResponse struct {
	Overdue  []InvoiceResponse `json:"overdue"`
	Upcoming []InvoiceResponse `json:"upcoming"`
}

// ReminderResponse mensaje de cobro generado y medios disponibles.
type ReminderResponse struct {
	OrderID       string `json:"order_id"`
	InvoiceID     string `json:"invoice_id"`
	CustomerName  string `json:"customer_name"`
	Message       string `json:"message"`
	DaysOverdue   int    `json:"days_overdue"`
	CanEmail      bool   `json:"can_email"`
	CanWhatsApp   bool   `json:"can_whatsapp"`
	Email         string `json:"email,omitempty"`
	Phone         string `json:"phone,omitempty"`
	RemindersSent int    `json:"reminders_sent"`
}

// CollectionSettingsDTO parámetros de cobranza de la empresa.
type CollectionSettingsDTO struct {
	DaysBeforeDue   int      `json:"days_before_due" validate:"min=0"`
	AutoAIReminders bool     `json:"auto_ai_reminders"`
	Channels        []string `json:"channels"`
}

// OverdueRunResult resultado de una corrida del job de cartera vencida.
type OverdueRunResult struct {
	CompanyID        string `json:"company_id"`
	MarkedOverdue    int    `json:"marked_overdue"`
	RemindersCreated int    `json:"reminders_created"`
}
