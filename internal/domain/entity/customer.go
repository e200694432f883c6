package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Medios de contacto.
const (
	ContactEmail    = "EMAIL"
	ContactWhatsApp = "WHATSAPP"
)

// Estados del cliente en el CRM.
const (
	CustomerActive   = "Active"
	CustomerProspect = "Prospect"
	CustomerInactive = "Inactive"
)

// Customer cliente de la empresa (CRM). Channel referencia un ChannelConfig por ID o por nombre.
type Customer struct {
	ID                 string
	CompanyID          string
	Name               string
	Company            string
	Email              string
	Phone              string
	ContactMethods     []string
	Status             string
	Channel            string
	LastOrderDate      *time.Time
	TotalSpend         decimal.Decimal
	OutstandingBalance decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// HasContactMethod indica si el cliente aceptó el medio indicado.
func (c *Customer) HasContactMethod(method string) bool {
	for _, m := range c.ContactMethods {
		if m == method {
			return true
		}
	}
	return false
}

// CanEmail requiere el medio EMAIL y un correo registrado.
func (c *Customer) CanEmail() bool {
	return c.HasContactMethod(ContactEmail) && c.Email != ""
}

// CanWhatsApp requiere el medio WHATSAPP y un teléfono registrado.
func (c *Customer) CanWhatsApp() bool {
	return c.HasContactMethod(ContactWhatsApp) && c.Phone != ""
}
