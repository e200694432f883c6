package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCustomerRequest entrada para crear un cliente.
type CreateCustomerRequest struct {
	Name               string          `json:"name" validate:"required"`
	Company            string          `json:"company"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	ContactMethods     []string        `json:"contact_methods"`
	Status             string          `json:"status"`
	Channel            string          `json:"channel"`
	TotalSpend         decimal.Decimal `json:"total_spend"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

// UpdateCustomerRequest entrada para actualizar un cliente (campos opcionales).
type UpdateCustomerRequest struct {
	Name               *string          `json:"name"`
	Company            *string          `json:"company"`
	Email              *string          `json:"email"`
	Phone              *string          `json:"phone"`
	ContactMethods     []string         `json:"contact_methods"`
	Status             *string          `json:"status"`
	Channel            *string          `json:"channel"`
	TotalSpend         *decimal.Decimal `json:"total_spend"`
	OutstandingBalance *decimal.Decimal `json:"outstanding_balance"`
}

// CustomerResponse salida de un cliente.
type CustomerResponse struct {
	ID                 string          `json:"id"`
	Name               string          `json:"name"`
	Company            string          `json:"company"`
	Email              string          `json:"email"`
	Phone              string          `json:"phone"`
	ContactMethods     []string        `json:"contact_methods"`
	Status             string          `json:"status"`
	Channel            string          `json:"channel"`
	LastOrderDate      *time.Time      `json:"last_order_date,omitempty"`
	TotalSpend         decimal.Decimal `json:"total_spend"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
}

// CustomerFilter filtros del listado de clientes.
type CustomerFilter struct {
	Search  string `query:"search"`
	Channel string `query:"channel"`
	Status  string `query:"status"`
}
