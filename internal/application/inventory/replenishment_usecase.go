package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	domaininv "github.com/jhoicas/Operaciones-api/internal/domain/inventory"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos en o bajo el umbral,
// priorizados por déficit.
type ReplenishmentUseCase struct {
	productRepo repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(productRepo repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{productRepo: productRepo}
}

// GenerateReplenishmentList devuelve los productos con stock <= umbral y la cantidad sugerida.
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context, companyID string) ([]dto.ReplenishmentItem, error) {
	products, err := uc.productRepo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReplenishmentItem, 0)
	for _, p := range products {
		if !p.IsLowStock() {
			continue
		}
		out = append(out, dto.ReplenishmentItem{
			ProductID:         p.ID,
			SKU:               p.SKU,
			ProductName:       p.Name,
			OriginType:        p.OriginType,
			Stock:             p.Stock,
			LowStockThreshold: p.LowStockThreshold,
			Deficit:           p.LowStockThreshold - p.Stock,
			SuggestedQuantity: domaininv.ReplenishmentQuantity(p),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Deficit > out[j].Deficit })
	return out, nil
}
