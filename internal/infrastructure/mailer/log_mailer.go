// Package mailer despacha correos simulados: el envío se registra en el log estructurado.
package mailer

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Operaciones-api/internal/application/ports"
	"github.com/jhoicas/Operaciones-api/pkg/logger"
)

var _ ports.EmailDispatcher = (*LogMailer)(nil)

// LogMailer implementa ports.EmailDispatcher escribiendo cada envío en el log.
type LogMailer struct {
	log *logger.Logger
}

// NewLogMailer construye el despachador.
func NewLogMailer(log *logger.Logger) *LogMailer {
	if log == nil {
		log = logger.Nop()
	}
	return &LogMailer{log: log.Named("mailer")}
}

// Dispatch valida que haya destinatario y registra el envío.
func (m *LogMailer) Dispatch(_ context.Context, e ports.Email) error {
	if e.To == "" && len(e.Departments) == 0 {
		return fmt.Errorf("mailer: correo %q sin destinatarios", e.Subject)
	}
	channel := e.Channel
	if channel == "" {
		channel = "INTERNAL"
	}
	m.log.Info().
		Str("company_id", e.CompanyID).
		Str("subject", e.Subject).
		Str("to_departments", strings.Join(e.Departments, ",")).
		Str("to", e.To).
		Str("channel", channel).
		Str("body", e.Body).
		Msg("correo simulado despachado")
	return nil
}
