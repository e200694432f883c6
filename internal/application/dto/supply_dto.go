package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SupplyAttachmentInput adjunto enviado al crear una orden o agregar archivos.
type SupplyAttachmentInput struct {
	URL  string `json:"url" validate:"required"`
	Type string `json:"type" validate:"required"`
	Note string `json:"note"`
}

// CreateSupplyOrderRequest entrada para crear una orden de compra o producción.
type CreateSupplyOrderRequest struct {
	Type                string                  `json:"type" validate:"required,oneof=PURCHASE_ORDER PRODUCTION_ORDER"`
	ProductID           string                  `json:"product_id" validate:"required"`
	Quantity            int                     `json:"quantity" validate:"required,min=1"`
	CostPerUnit         decimal.Decimal         `json:"cost_per_unit"`
	ShippingCost        decimal.Decimal         `json:"shipping_cost"`
	InsuranceCost       decimal.Decimal         `json:"insurance_cost"`
	SupplierOrFacility  string                  `json:"supplier_or_facility"`
	ExpectedArrivalDate *time.Time              `json:"expected_arrival_date"`
	TrackingNumber      string                  `json:"tracking_number"`
	Notes               string                  `json:"notes"`
	Attachments         []SupplyAttachmentInput `json:"attachments"`
}

// QualityResultDTO veredicto del control de calidad.
type QualityResultDTO struct {
	Status string `json:"status"`
	Reason string `json:"reason"`
}

// SupplyAttachmentResponse adjunto de abastecimiento.
type SupplyAttachmentResponse struct {
	ID            string            `json:"id"`
	URL           string            `json:"url"`
	Type          string            `json:"type"`
	Date          time.Time         `json:"date"`
	Note          string            `json:"note,omitempty"`
	AIAnalysis    *QualityResultDTO `json:"ai_analysis,omitempty"`
	AnalysisEpoch int64             `json:"analysis_epoch"`
}

// SupplyOrderResponse salida de una orden de abastecimiento.
type SupplyOrderResponse struct {
	ID                  string                     `json:"id"`
	Type                string                     `json:"type"`
	ProductID           string                     `json:"product_id"`
	ProductName         string                     `json:"product_name"`
	Quantity            int                        `json:"quantity"`
	CostPerUnit         decimal.Decimal            `json:"cost_per_unit"`
	ShippingCost        decimal.Decimal            `json:"shipping_cost"`
	InsuranceCost       decimal.Decimal            `json:"insurance_cost"`
	TotalCost           decimal.Decimal            `json:"total_cost"`
	SupplierOrFacility  string                     `json:"supplier_or_facility"`
	OrderDate           time.Time                  `json:"order_date"`
	ExpectedArrivalDate *time.Time                 `json:"expected_arrival_date,omitempty"`
	Status              string                     `json:"status"`
	TrackingNumber      string                     `json:"tracking_number,omitempty"`
	Notes               string                     `json:"notes,omitempty"`
	Attachments         []SupplyAttachmentResponse `json:"attachments"`
}

// SupplyFilter filtros del listado de órdenes.
type SupplyFilter struct {
	Type   string `query:"type"`
	Status string `query:"status"`
}

// SupplyStatusRequest cambio de estado de una orden de abastecimiento.
type SupplyStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

// SmartScanRequest foto de la factura del proveedor y cantidad esperada.
type SmartScanRequest struct {
	Image    string `json:"image" validate:"required"`
	Quantity int    `json:"quantity"`
}

// InvoiceDataDTO datos extraídos de una factura por IA. Campos vacíos si no se encontraron.
type InvoiceDataDTO struct {
	SupplierName string          `json:"supplier_name,omitempty"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Date         string          `json:"date,omitempty"`
	ItemsSummary string          `json:"items_summary,omitempty"`
}

// SmartScanResponse sugerencias para prellenar la orden de compra.
type SmartScanResponse struct {
	Invoice              InvoiceDataDTO  `json:"invoice"`
	SuggestedSupplier    string          `json:"suggested_supplier,omitempty"`
	SuggestedCostPerUnit decimal.Decimal `json:"suggested_cost_per_unit"`
	SuggestedETA         string          `json:"suggested_eta,omitempty"`
}

// DemandForecastDTO predicción de demanda por producto.
type DemandForecastDTO struct {
	ProductID        string `json:"product_id"`
	ProductName      string `json:"product_name"`
	PredictedDemand  int    `json:"predicted_demand"`
	SuggestedReorder int    `json:"suggested_reorder"`
	Reasoning        string `json:"reasoning"`
}
