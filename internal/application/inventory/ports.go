package inventory

import (
	"context"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Garantiza atomicidad para el libro de inventario.
type TxRunner interface {
	Run(ctx context.Context, fn func(productRepo repository.ProductRepository) error) error
}

// Exporter genera el archivo de exportación del inventario (XLSX).
type Exporter interface {
	ExportProducts(ctx context.Context, companyName string, products []dto.ProductResponse) ([]byte, error)
}
