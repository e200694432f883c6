package dto

// Tipos de contenido de marketing.
const (
	CopySalesPitch = "sales_pitch"
	CopyEmailDraft = "email_draft"
)

// MarketingCopyRequest solicitud de contenido comercial para un producto.
type MarketingCopyRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Type      string `json:"type" validate:"required,oneof=sales_pitch email_draft"`
}

// MarketingCopyResponse contenido generado ("" si la IA no está disponible).
type MarketingCopyResponse struct {
	ProductID string `json:"product_id"`
	Type      string `json:"type"`
	Content   string `json:"content"`
}

// QualityCheckRequest análisis de calidad ad hoc de una imagen.
type QualityCheckRequest struct {
	Image     string `json:"image" validate:"required"`
	Standards string `json:"standards"`
}
