package ports

import "context"

// Email correo simulado. Departments para avisos internos; To y Channel para recordatorios a clientes.
type Email struct {
	CompanyID   string
	Subject     string
	Departments []string
	To          string
	Channel     string // EMAIL | WHATSAPP; vacío = interno
	Body        string
}

// EmailDispatcher despacho de correos. Sin garantía de entrega ni reintentos.
type EmailDispatcher interface {
	Dispatch(ctx context.Context, email Email) error
}
