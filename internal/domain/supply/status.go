// Package supply reglas de estado de las órdenes de abastecimiento.
package supply

import "github.com/jhoicas/Operaciones-api/internal/domain/entity"

// IsValidStatus valida contra la enumeración compartida.
func IsValidStatus(s string) bool {
	switch s {
	case entity.SupplyStatusDraft, entity.SupplyStatusOrdered, entity.SupplyStatusInTransit,
		entity.SupplyStatusInProduction, entity.SupplyStatusReceived, entity.SupplyStatusFinished,
		entity.SupplyStatusCancelled:
		return true
	}
	return false
}

// IsValidType valida el tipo de orden.
func IsValidType(t string) bool {
	return t == entity.SupplyPurchaseOrder || t == entity.SupplyProductionOrder
}

// IsCompleting indica si el estado representa mercancía disponible (recibida o terminada).
func IsCompleting(s string) bool {
	return s == entity.SupplyStatusReceived || s == entity.SupplyStatusFinished
}

// ShouldCredit guarda de completitud: solo acredita al pasar de no-completo a completo.
// Re-emitir RECEIVED sobre RECEIVED no acredita; RECEIVED → IN_TRANSIT → RECEIVED sí vuelve a acreditar.
func ShouldCredit(previous, next string) bool {
	return IsCompleting(next) && !IsCompleting(previous)
}

// InitialStatus producción arranca en IN_PRODUCTION, compra en ORDERED.
func InitialStatus(orderType string) string {
	if orderType == entity.SupplyProductionOrder {
		return entity.SupplyStatusInProduction
	}
	return entity.SupplyStatusOrdered
}

// IsValidAttachmentType valida el tipo de adjunto.
func IsValidAttachmentType(t string) bool {
	switch t {
	case entity.SupplyAttachmentDesign, entity.SupplyAttachmentProductionProgress,
		entity.SupplyAttachmentQualityAlert, entity.SupplyAttachmentInvoice:
		return true
	}
	return false
}

// TriggersQualityCheck los avances de producción y alertas de calidad se analizan automáticamente.
func TriggersQualityCheck(t string) bool {
	return t == entity.SupplyAttachmentProductionProgress || t == entity.SupplyAttachmentQualityAlert
}
