package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound      = errors.New("recurso no encontrado")
	ErrInvalidInput  = errors.New("entrada inválida")
	ErrDuplicate     = errors.New("recurso duplicado")
	ErrUnauthorized  = errors.New("no autorizado")
	ErrForbidden     = errors.New("acceso denegado")
	ErrConflict      = errors.New("conflicto con el estado actual")
	ErrInvalidStatus = errors.New("estado no válido")

	// Verificación de despacho por escaneo.
	ErrInvalidScan            = errors.New("Código QR inválido")
	ErrForeignProduct         = errors.New("¡ALERTA! Este producto no pertenece a esta orden.")
	ErrItemAlreadyComplete    = errors.New("Orden completa para este ítem. No es necesario escanear más.")
	ErrVerificationNotActive  = errors.New("no hay una verificación activa para este pedido")
	ErrVerificationIncomplete = errors.New("la verificación de despacho no está completa")
)
