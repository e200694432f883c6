package excel

import (
	"bytes"
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/Operaciones-api/internal/application/dto"
)

func TestExportProducts(t *testing.T) {
	products := []dto.ProductResponse{
		{SKU: "TSH-001", Name: "Camiseta", Category: "Camisetas", OriginType: "MANUFACTURED", Stock: 12,
			LowStockThreshold: 50, IsLowStock: true, UnitCost: decimal.NewFromInt(6),
			SalePrice: decimal.RequireFromString("19.99"), Margin: decimal.RequireFromString("13.99"),
			MarginPercent: decimal.RequireFromString("69.98")},
		{SKU: "IMP-1", Name: "Audífonos", OriginType: "IMPORTED", Stock: 80, Supplier: "Shenzhen Audio"},
	}

	data, err := NewProductExporter().ExportProducts(context.Background(), "Textiles Andinos", products)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	rows, err := f.GetRows(SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	assert.Equal(t, "Inventario - Textiles Andinos", rows[0][0])
	assert.Equal(t, "SKU", rows[2][0])
	assert.Equal(t, "TSH-001", rows[3][0])
	assert.Equal(t, "Sí", rows[3][6])
	assert.Equal(t, "19.99", rows[3][8])
	assert.Equal(t, "Shenzhen Audio", rows[4][11])
}

func TestExportProducts_SinProductos(t *testing.T) {
	data, err := NewProductExporter().ExportProducts(context.Background(), "Vacía", nil)
	require.NoError(t, err)
	assert.NotEmpty(t, data)
}
