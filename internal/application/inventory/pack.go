package inventory

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

var packDiscount = decimal.NewFromFloat(0.9)

// CreatePack crea un SKU que representa un bulto del producto base.
// Talla única: Units; surtido: Distribution (talla → unidades). El pack arranca con stock 0.
func (uc *ProductUseCase) CreatePack(ctx context.Context, companyID string, in dto.CreatePackRequest) (*dto.ProductResponse, error) {
	base, err := uc.repo.GetByID(ctx, companyID, in.BaseProductID)
	if err != nil {
		return nil, err
	}
	if base == nil {
		return nil, domain.ErrNotFound
	}

	total, desc := packComposition(base, in)
	if total <= 0 {
		return nil, domain.ErrInvalidInput
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = base.Name + " (Pack)"
	}
	now := uc.now()
	pack := base.Clone()
	pack.ID = uuid.New().String()
	pack.Name = name
	pack.SKU = fmt.Sprintf("%s-PK%d", base.SKU, total)
	pack.SalePrice = base.SalePrice.Mul(decimal.NewFromInt(int64(total))).Mul(packDiscount)
	pack.Stock = 0
	pack.PackSize = total
	pack.Features = append(pack.Features, desc)
	pack.CreatedAt = now
	pack.UpdatedAt = now

	if err := uc.repo.Create(ctx, pack); err != nil {
		return nil, err
	}
	out := ToProductResponse(pack)
	return &out, nil
}

// packComposition total de unidades y descripción ("Pack x12 (Estándar/Surtido)" o "Pack x6: 2 S, 4 M").
func packComposition(base *entity.Product, in dto.CreatePackRequest) (int, string) {
	if len(in.Distribution) == 0 {
		return in.Units, fmt.Sprintf("Pack x%d (Estándar/Surtido)", in.Units)
	}
	sizes := orderedSizes(base.Sizes, in.Distribution)
	total := 0
	parts := make([]string, 0, len(sizes))
	for _, size := range sizes {
		qty := in.Distribution[size]
		if qty <= 0 {
			continue
		}
		total += qty
		parts = append(parts, fmt.Sprintf("%d %s", qty, size))
	}
	return total, fmt.Sprintf("Pack x%d: %s", total, strings.Join(parts, ", "))
}

// orderedSizes respeta el orden de tallas del producto; las tallas nuevas van al final en orden alfabético.
func orderedSizes(known []string, dist map[string]int) []string {
	seen := make(map[string]bool, len(dist))
	out := make([]string, 0, len(dist))
	for _, s := range known {
		if _, ok := dist[s]; ok && !seen[s] {
			out = append(out, s)
			seen[s] = true
		}
	}
	var extra []string
	for s := range dist {
		if !seen[s] {
			extra = append(extra, s)
		}
	}
	sort.Strings(extra)
	return append(out, extra...)
}
