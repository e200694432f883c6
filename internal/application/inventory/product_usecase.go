package inventory

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
	"github.com/jhoicas/Operaciones-api/pkg/textfold"
)

const (
	defaultCategory  = "General"
	defaultThreshold = 10
)

// ProductUseCase casos de uso de productos. El stock solo cambia vía Ledger (ajuste, auditoría, despacho, recepción).
type ProductUseCase struct {
	repo        repository.ProductRepository
	companyRepo repository.CompanyRepository
	txRunner    TxRunner
	ledger      *Ledger
	now         func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	companyRepo repository.CompanyRepository,
	txRunner TxRunner,
	ledger *Ledger,
) *ProductUseCase {
	return &ProductUseCase{
		repo:        repo,
		companyRepo: companyRepo,
		txRunner:    txRunner,
		ledger:      ledger,
		now:         time.Now,
	}
}

// Create crea un producto. El origen por defecto depende del tipo de empresa.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.SKU = strings.TrimSpace(in.SKU)
	in.Name = strings.TrimSpace(in.Name)
	if in.SKU == "" || in.Name == "" || in.Stock < 0 || in.PackSize < 0 || in.SalePrice.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.repo.GetByCompanyAndSKU(ctx, companyID, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	origin := in.OriginType
	if origin == "" {
		origin = uc.defaultOrigin(ctx, companyID)
	}
	if origin != entity.OriginManufactured && origin != entity.OriginImported {
		return nil, domain.ErrInvalidInput
	}
	threshold := defaultThreshold
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		threshold = *in.LowStockThreshold
	}
	category := strings.TrimSpace(in.Category)
	if category == "" {
		category = defaultCategory
	}
	pack := in.PackSize
	if pack == 0 {
		pack = 1
	}

	now := uc.now()
	p := &entity.Product{
		ID:                 uuid.New().String(),
		CompanyID:          companyID,
		SKU:                in.SKU,
		Name:               in.Name,
		Category:           category,
		SalePrice:          in.SalePrice,
		Stock:              in.Stock,
		LowStockThreshold:  threshold,
		PackSize:           pack,
		OriginType:         origin,
		CostPrice:          in.CostPrice,
		Supplier:           in.Supplier,
		ImportDutyPercent:  in.ImportDutyPercent,
		RawMaterialCost:    in.RawMaterialCost,
		LaborCost:          in.LaborCost,
		ProductionTimeDays: in.ProductionTimeDays,
		Description:        in.Description,
		Features:           in.Features,
		QualityStandards:   in.QualityStandards,
		Sizes:              in.Sizes,
		Colors:             in.Colors,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		return nil, err
	}
	out := ToProductResponse(p)
	return &out, nil
}

// defaultOrigin fabricantes e híbridos producen; comercializadoras importan.
func (uc *ProductUseCase) defaultOrigin(ctx context.Context, companyID string) string {
	company, err := uc.companyRepo.GetByID(ctx, companyID)
	if err == nil && company != nil && company.Type == entity.CompanyTrader {
		return entity.OriginImported
	}
	return entity.OriginManufactured
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, companyID, id string) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	out := ToProductResponse(p)
	return &out, nil
}

// List lista los productos de la empresa aplicando búsqueda (sin tildes) y filtros.
func (uc *ProductUseCase) List(ctx context.Context, companyID string, f dto.ProductFilter) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		if f.OriginType != "" && p.OriginType != f.OriginType {
			continue
		}
		if f.Category != "" && !strings.EqualFold(p.Category, f.Category) {
			continue
		}
		if f.LowStock && !p.IsLowStock() {
			continue
		}
		if !textfold.Match(f.Search, p.Name, p.SKU, p.Category) {
			continue
		}
		out = append(out, ToProductResponse(p))
	}
	return out, nil
}

// Update actualiza un producto. El stock no se modifica por aquí.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	p, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		if strings.TrimSpace(*in.Name) == "" {
			return nil, domain.ErrInvalidInput
		}
		p.Name = strings.TrimSpace(*in.Name)
	}
	if in.Category != nil {
		p.Category = *in.Category
	}
	if in.SalePrice != nil {
		if in.SalePrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		p.SalePrice = *in.SalePrice
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.ErrInvalidInput
		}
		p.LowStockThreshold = *in.LowStockThreshold
	}
	if in.OriginType != nil {
		if *in.OriginType != entity.OriginManufactured && *in.OriginType != entity.OriginImported {
			return nil, domain.ErrInvalidInput
		}
		p.OriginType = *in.OriginType
	}
	setDecimal(&p.CostPrice, in.CostPrice)
	setDecimal(&p.ImportDutyPercent, in.ImportDutyPercent)
	setDecimal(&p.RawMaterialCost, in.RawMaterialCost)
	setDecimal(&p.LaborCost, in.LaborCost)
	if in.Supplier != nil {
		p.Supplier = *in.Supplier
	}
	if in.ProductionTimeDays != nil {
		p.ProductionTimeDays = *in.ProductionTimeDays
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.QualityStandards != nil {
		p.QualityStandards = *in.QualityStandards
	}
	if in.Features != nil {
		p.Features = in.Features
	}
	if in.Sizes != nil {
		p.Sizes = in.Sizes
	}
	if in.Colors != nil {
		p.Colors = in.Colors
	}
	p.UpdatedAt = uc.now()
	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	out := ToProductResponse(p)
	return &out, nil
}

func setDecimal(dst *decimal.Decimal, v *decimal.Decimal) {
	if v != nil {
		*dst = *v
	}
}

// AdjustStock ajuste manual: sobrescribe el stock dentro de una transacción. No notifica.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, companyID, id string, value int) (*dto.ProductResponse, error) {
	var updated *entity.Product
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository) error {
		prev, err := uc.ledger.AdjustManual(ctx, productRepo, companyID, id, value)
		if err != nil {
			return err
		}
		prev.Stock = value
		updated = prev
		return nil
	})
	if err != nil {
		return nil, err
	}
	out := ToProductResponse(updated)
	return &out, nil
}

// Audit aplica un conteo físico completo en una sola transacción.
func (uc *ProductUseCase) Audit(ctx context.Context, companyID string, in dto.AuditRequest) ([]dto.AuditResultItem, error) {
	if len(in.Counts) == 0 {
		return nil, domain.ErrInvalidInput
	}
	results := make([]dto.AuditResultItem, 0, len(in.Counts))
	err := uc.txRunner.Run(ctx, func(productRepo repository.ProductRepository) error {
		results = results[:0]
		for _, c := range in.Counts {
			prev, err := uc.ledger.AdjustManual(ctx, productRepo, companyID, c.ProductID, c.Counted)
			if err != nil {
				return fmt.Errorf("auditoría %s: %w", c.ProductID, err)
			}
			results = append(results, dto.AuditResultItem{
				ProductID:   prev.ID,
				ProductName: prev.Name,
				Previous:    prev.Stock,
				Counted:     c.Counted,
				Difference:  c.Counted - prev.Stock,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return results, nil
}

// QRLabel devuelve el contenido de la etiqueta QR que decodifica el escáner de despacho.
func (uc *ProductUseCase) QRLabel(ctx context.Context, companyID, id string) (*dto.QRLabelResponse, error) {
	p, err := uc.repo.GetByID(ctx, companyID, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, domain.ErrNotFound
	}
	payload, err := json.Marshal(map[string]string{"id": p.ID})
	if err != nil {
		return nil, err
	}
	return &dto.QRLabelResponse{ProductID: p.ID, SKU: p.SKU, Name: p.Name, Payload: string(payload)}, nil
}
