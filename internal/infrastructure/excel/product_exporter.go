// Package excel exporta el catálogo de productos a una hoja de cálculo.
package excel

import (
	"bytes"
	"context"
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
	"github.com/jhoicas/Operaciones-api/internal/application/inventory"
)

// SheetName nombre de la hoja con el inventario.
const SheetName = "Inventario"

var header = []interface{}{
	"SKU", "Producto", "Categoría", "Origen", "Stock", "Umbral", "Stock bajo",
	"Costo unitario", "Precio de venta", "Margen", "Margen %", "Proveedor",
}

var _ inventory.Exporter = (*ProductExporter)(nil)

// ProductExporter implementa inventory.Exporter con excelize.
type ProductExporter struct{}

// NewProductExporter construye el exportador.
func NewProductExporter() *ProductExporter { return &ProductExporter{} }

// ExportProducts escribe un título con la empresa, la cabecera y una fila por producto.
func (e *ProductExporter) ExportProducts(_ context.Context, companyName string, products []dto.ProductResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(f.GetActiveSheetIndex()), SheetName); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	if err := f.SetCellValue(SheetName, "A1", "Inventario - "+companyName); err != nil {
		return nil, fmt.Errorf("excel: título: %w", err)
	}
	if err := f.SetSheetRow(SheetName, "A3", &header); err != nil {
		return nil, fmt.Errorf("excel: cabecera: %w", err)
	}
	if bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}}); err == nil {
		_ = f.SetCellStyle(SheetName, "A1", "A1", bold)
		_ = f.SetCellStyle(SheetName, "A3", "L3", bold)
	}

	row := 4
	for _, p := range products {
		low := "No"
		if p.IsLowStock {
			low = "Sí"
		}
		values := []interface{}{
			p.SKU,
			p.Name,
			p.Category,
			p.OriginType,
			p.Stock,
			p.LowStockThreshold,
			low,
			p.UnitCost.InexactFloat64(),
			p.SalePrice.InexactFloat64(),
			p.Margin.InexactFloat64(),
			p.MarginPercent.InexactFloat64(),
			p.Supplier,
		}
		cell, err := excelize.CoordinatesToCellName(1, row)
		if err != nil {
			return nil, fmt.Errorf("excel: celda: %w", err)
		}
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return nil, fmt.Errorf("excel: fila %d: %w", row, err)
		}
		row++
	}
	_ = f.SetColWidth(SheetName, "B", "B", 32)
	_ = f.AutoFilter(SheetName, fmt.Sprintf("A3:L%d", row-1), nil)

	buf := &bytes.Buffer{}
	if err := f.Write(buf); err != nil {
		return nil, fmt.Errorf("excel: escribir archivo: %w", err)
	}
	return buf.Bytes(), nil
}
