package inventory

import (
	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	domaininv "github.com/jhoicas/Operaciones-api/internal/domain/inventory"
)

// ToProductResponse convierte la entidad en DTO con costo y margen calculados.
func ToProductResponse(p *entity.Product) dto.ProductResponse {
	features := p.Features
	if features == nil {
		features = []string{}
	}
	return dto.ProductResponse{
		ID:                 p.ID,
		CompanyID:          p.CompanyID,
		SKU:                p.SKU,
		Name:               p.Name,
		Category:           p.Category,
		SalePrice:          p.SalePrice,
		Stock:              p.Stock,
		LowStockThreshold:  p.LowStockThreshold,
		PackSize:           p.PackSize,
		OriginType:         p.OriginType,
		CostPrice:          p.CostPrice,
		Supplier:           p.Supplier,
		ImportDutyPercent:  p.ImportDutyPercent,
		RawMaterialCost:    p.RawMaterialCost,
		LaborCost:          p.LaborCost,
		ProductionTimeDays: p.ProductionTimeDays,
		Description:        p.Description,
		Features:           features,
		QualityStandards:   p.QualityStandards,
		Sizes:              p.Sizes,
		Colors:             p.Colors,
		UnitCost:           domaininv.UnitCost(p),
		Margin:             domaininv.Margin(p),
		MarginPercent:      domaininv.MarginPercent(p),
		IsLowStock:         p.IsLowStock(),
		IsBundle:           p.IsBundle(),
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}
