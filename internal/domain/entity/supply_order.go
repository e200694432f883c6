package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de orden de abastecimiento.
const (
	SupplyPurchaseOrder   = "PURCHASE_ORDER"
	SupplyProductionOrder = "PRODUCTION_ORDER"
)

// Estados de abastecimiento (enumeración compartida por compra y producción).
const (
	SupplyStatusDraft        = "DRAFT"
	SupplyStatusOrdered      = "ORDERED"
	SupplyStatusInTransit    = "IN_TRANSIT"
	SupplyStatusInProduction = "IN_PRODUCTION"
	SupplyStatusReceived     = "RECEIVED"
	SupplyStatusFinished     = "FINISHED"
	SupplyStatusCancelled    = "CANCELLED"
)

// Tipos de adjunto de abastecimiento.
const (
	SupplyAttachmentDesign             = "DESIGN"
	SupplyAttachmentProductionProgress = "PRODUCTION_PROGRESS"
	SupplyAttachmentQualityAlert       = "QUALITY_ALERT"
	SupplyAttachmentInvoice            = "INVOICE"
)

// Resultados del control de calidad.
const (
	QualityPass    = "PASS"
	QualityFail    = "FAIL"
	QualityWarning = "WARNING"
)

// QualityResult veredicto del control de calidad sobre una foto.
type QualityResult struct {
	Status string
	Reason string
}

// SupplyAttachment archivo de una orden de abastecimiento.
// AnalysisEpoch crece con cada solicitud de análisis; solo se guarda la respuesta de la última.
type SupplyAttachment struct {
	ID            string
	URL           string // data URL base64
	Type          string
	Date          time.Time
	Note          string
	Quality       *QualityResult
	AnalysisEpoch int64
}

// SupplyOrder orden de compra a proveedor u orden de producción interna.
type SupplyOrder struct {
	ID                  string
	CompanyID           string
	Type                string
	ProductID           string
	ProductName         string
	Quantity            int
	CostPerUnit         decimal.Decimal
	ShippingCost        decimal.Decimal
	InsuranceCost       decimal.Decimal
	TotalCost           decimal.Decimal
	SupplierOrFacility  string
	OrderDate           time.Time
	ExpectedArrivalDate *time.Time
	Status              string
	TrackingNumber      string
	Notes               string
	Attachments         []SupplyAttachment
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

// HasAttachmentType indica si existe al menos un adjunto del tipo dado.
func (s *SupplyOrder) HasAttachmentType(t string) bool {
	for _, a := range s.Attachments {
		if a.Type == t {
			return true
		}
	}
	return false
}

// Attachment busca un adjunto por ID.
func (s *SupplyOrder) Attachment(id string) *SupplyAttachment {
	for i := range s.Attachments {
		if s.Attachments[i].ID == id {
			return &s.Attachments[i]
		}
	}
	return nil
}

// Clone devuelve una copia profunda.
func (s *SupplyOrder) Clone() *SupplyOrder {
	c := *s
	c.Attachments = make([]SupplyAttachment, len(s.Attachments))
	for i, a := range s.Attachments {
		if a.Quality != nil {
			q := *a.Quality
			a.Quality = &q
		}
		c.Attachments[i] = a
	}
	if s.ExpectedArrivalDate != nil {
		d := *s.ExpectedArrivalDate
		c.ExpectedArrivalDate = &d
	}
	return &c
}
