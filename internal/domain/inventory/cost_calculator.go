package inventory

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

var hundred = decimal.NewFromInt(100)

// UnitCost calcula el costo unitario según el origen (servicio de dominio).
// Manufacturado = materia prima + mano de obra; importado = costo × (1 + arancel/100).
func UnitCost(p *entity.Product) decimal.Decimal {
	if p == nil {
		return decimal.Zero
	}
	if p.OriginType == entity.OriginManufactured {
		return p.RawMaterialCost.Add(p.LaborCost)
	}
	duty := decimal.NewFromInt(1).Add(p.ImportDutyPercent.Div(hundred))
	return p.CostPrice.Mul(duty)
}

// Margin = precio de venta - costo unitario.
func Margin(p *entity.Product) decimal.Decimal {
	return p.SalePrice.Sub(UnitCost(p))
}

// MarginPercent margen sobre el precio de venta; 0 si el precio es 0.
func MarginPercent(p *entity.Product) decimal.Decimal {
	if p.SalePrice.IsZero() {
		return decimal.Zero
	}
	return Margin(p).Div(p.SalePrice).Mul(hundred).Round(2)
}

// ClampStock aplica una deducción sin permitir stock negativo.
func ClampStock(current, deduct int) int {
	if next := current - deduct; next > 0 {
		return next
	}
	return 0
}

// ReplenishmentQuantity cantidad sugerida para reponer: max(umbral×2 - stock, tamaño de pack).
func ReplenishmentQuantity(p *entity.Product) int {
	q := p.LowStockThreshold*2 - p.Stock
	pack := p.PackSize
	if pack < 1 {
		pack = 1
	}
	if q < pack {
		return pack
	}
	return q
}
