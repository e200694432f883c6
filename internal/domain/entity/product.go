package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Origen del producto: define qué campos de costo aplican.
const (
	OriginManufactured = "MANUFACTURED"
	OriginImported     = "IMPORTED"
)

// Product representa un producto o SKU vendible/almacenable de una empresa.
// Stock es un entero >= 0; solo lo mutan el ajuste manual, el despacho de pedidos y la recepción de abastecimiento.
type Product struct {
	ID                string
	CompanyID         string
	SKU               string
	Name              string
	Category          string
	SalePrice         decimal.Decimal
	Stock             int
	LowStockThreshold int
	PackSize          int // > 1 marca un pack/bulto

	OriginType string // MANUFACTURED | IMPORTED

	// Importado
	CostPrice         decimal.Decimal
	Supplier          string
	ImportDutyPercent decimal.Decimal

	// Manufacturado
	RawMaterialCost    decimal.Decimal
	LaborCost          decimal.Decimal
	ProductionTimeDays int

	Description      string
	Features         []string
	QualityStandards string // contexto para el control de calidad con IA
	Sizes            []string
	Colors           []string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsBundle indica si el producto es un pack.
func (p *Product) IsBundle() bool {
	return p.PackSize > 1
}

// IsLowStock indica si el stock está en o por debajo del umbral.
func (p *Product) IsLowStock() bool {
	return p.Stock <= p.LowStockThreshold
}

// Clone devuelve una copia profunda (slices incluidos).
func (p *Product) Clone() *Product {
	c := *p
	c.Features = append([]string(nil), p.Features...)
	c.Sizes = append([]string(nil), p.Sizes...)
	c.Colors = append([]string(nil), p.Colors...)
	return &c
}
