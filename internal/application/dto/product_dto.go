package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU               string          `json:"sku" validate:"required"`
	Name              string          `json:"name" validate:"required"`
	Category          string          `json:"category"`
	SalePrice         decimal.Decimal `json:"sale_price"`
	Stock             int             `json:"stock"`
	LowStockThreshold *int            `json:"low_stock_threshold"`
	PackSize          int             `json:"pack_size"`
	OriginType        string          `json:"origin_type" validate:"omitempty,oneof=MANUFACTURED IMPORTED"`

	CostPrice         decimal.Decimal `json:"cost_price"`
	Supplier          string          `json:"supplier"`
	ImportDutyPercent decimal.Decimal `json:"import_duty_percent"`

	RawMaterialCost    decimal.Decimal `json:"raw_material_cost"`
	LaborCost          decimal.Decimal `json:"labor_cost"`
	ProductionTimeDays int             `json:"production_time_days"`

	Description      string   `json:"description"`
	Features         []string `json:"features"`
	QualityStandards string   `json:"quality_standards"`
	Sizes            []string `json:"sizes"`
	Colors           []string `json:"colors"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock no se edita por aquí).
type UpdateProductRequest struct {
	Name              *string          `json:"name"`
	Category          *string          `json:"category"`
	SalePrice         *decimal.Decimal `json:"sale_price"`
	LowStockThreshold *int             `json:"low_stock_threshold"`
	OriginType        *string          `json:"origin_type"`

	CostPrice         *decimal.Decimal `json:"cost_price"`
	Supplier          *string          `json:"supplier"`
	ImportDutyPercent *decimal.Decimal `json:"import_duty_percent"`

	RawMaterialCost    *decimal.Decimal `json:"raw_material_cost"`
	LaborCost          *decimal.Decimal `json:"labor_cost"`
	ProductionTimeDays *int             `json:"production_time_days"`

	Description      *string  `json:"description"`
	Features         []string `json:"features"`
	QualityStandards *string  `json:"quality_standards"`
	Sizes            []string `json:"sizes"`
	Colors           []string `json:"colors"`
}

// ProductResponse salida de un producto con costo y margen calculados.
type ProductResponse struct {
	ID                 string          `json:"id"`
	CompanyID          string          `json:"company_id"`
	SKU                string          `json:"sku"`
	Name               string          `json:"name"`
	Category           string          `json:"category"`
	SalePrice          decimal.Decimal `json:"sale_price"`
	Stock              int             `json:"stock"`
	LowStockThreshold  int             `json:"low_stock_threshold"`
	PackSize           int             `json:"pack_size"`
	OriginType         string          `json:"origin_type"`
	CostPrice          decimal.Decimal `json:"cost_price"`
	Supplier           string          `json:"supplier,omitempty"`
	ImportDutyPercent  decimal.Decimal `json:"import_duty_percent"`
	RawMaterialCost    decimal.Decimal `json:"raw_material_cost"`
	LaborCost          decimal.Decimal `json:"labor_cost"`
	ProductionTimeDays int             `json:"production_time_days"`
	Description        string          `json:"description"`
	Features           []string        `json:"features"`
	QualityStandards   string          `json:"quality_standards,omitempty"`
	Sizes              []string        `json:"sizes,omitempty"`
	Colors             []string        `json:"colors,omitempty"`
	UnitCost           decimal.Decimal `json:"unit_cost"`
	Margin             decimal.Decimal `json:"margin"`
	MarginPercent      decimal.Decimal `json:"margin_percent"`
	IsLowStock         bool            `json:"is_low_stock"`
	IsBundle           bool            `json:"is_bundle"`
	CreatedAt          time.Time       `json:"created_at"`
	UpdatedAt          time.Time       `json:"updated_at"`
}

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	Search     string `query:"search"`
	OriginType string `query:"origin"`
	Category   string `query:"category"`
	LowStock   bool   `query:"low_stock"`
}

// AdjustStockRequest ajuste manual del stock (sobrescribe el valor).
type AdjustStockRequest struct {
	Stock *int `json:"stock" validate:"required,min=0"`
}

// AuditCount conteo físico de un producto.
type AuditCount struct {
	ProductID string `json:"product_id"`
	Counted   int    `json:"counted"`
}

// AuditRequest lote de conteos de una auditoría física.
type AuditRequest struct {
	Counts []AuditCount `json:"counts" validate:"required,min=1"`
}

// AuditResultItem resultado por producto de la auditoría.
type AuditResultItem struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	Previous    int    `json:"previous"`
	Counted     int    `json:"counted"`
	Difference  int    `json:"difference"`
}

// CreatePackRequest crea un pack desde un producto base.
// Units para talla única; Distribution (talla → unidades) para surtido.
type CreatePackRequest struct {
	BaseProductID string         `json:"base_product_id" validate:"required"`
	Name          string         `json:"name"`
	Units         int            `json:"units"`
	Distribution  map[string]int `json:"distribution"`
}

// ReplenishmentItem producto bajo el umbral con la cantidad sugerida.
type ReplenishmentItem struct {
	ProductID         string `json:"product_id"`
	SKU               string `json:"sku"`
	ProductName       string `json:"product_name"`
	OriginType        string `json:"origin_type"`
	Stock             int    `json:"stock"`
	LowStockThreshold int    `json:"low_stock_threshold"`
	Deficit           int    `json:"deficit"`
	SuggestedQuantity int    `json:"suggested_quantity"`
}

// QRLabelResponse contenido de la etiqueta QR de un producto.
type QRLabelResponse struct {
	ProductID string `json:"product_id"`
	SKU       string `json:"sku"`
	Name      string `json:"name"`
	Payload   string `json:"payload"`
}
