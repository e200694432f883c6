package inventory

import (
	"context"
	"fmt"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// ExportUseCase exporta el inventario de la empresa a XLSX.
type ExportUseCase struct {
	products    *ProductUseCase
	companyRepo repository.CompanyRepository
	exporter    Exporter
}

// NewExportUseCase construye el caso de uso de exportación.
func NewExportUseCase(products *ProductUseCase, companyRepo repository.CompanyRepository, exporter Exporter) *ExportUseCase {
	return &ExportUseCase{products: products, companyRepo: companyRepo, exporter: exporter}
}

// Export devuelve el archivo y su nombre sugerido.
func (uc *ExportUseCase) Export(ctx context.Context, companyID string, f dto.ProductFilter) ([]byte, string, error) {
	list, err := uc.products.List(ctx, companyID, f)
	if err != nil {
		return nil, "", err
	}
	name := companyID
	if company, err := uc.companyRepo.GetByID(ctx, companyID); err == nil && company != nil {
		name = company.Name
	}
	data, err := uc.exporter.ExportProducts(ctx, name, list)
	if err != nil {
		return nil, "", fmt.Errorf("exportar inventario: %w", err)
	}
	return data, fmt.Sprintf("inventario-%s.xlsx", companyID), nil
}
