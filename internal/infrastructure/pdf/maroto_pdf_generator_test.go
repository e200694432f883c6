package pdf

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	cases := map[string]string{
		"0":          "0",
		"999.6":      "1.000",
		"25000":      "25.000",
		"1000000":    "1.000.000",
		"-1234567.4": "-1.234.567",
	}
	for in, want := range cases {
		assert.Equal(t, want, formatMoney(decimal.RequireFromString(in)), in)
	}
}

func TestGenerateInvoicePDF(t *testing.T) {
	due := time.Date(2024, 4, 5, 0, 0, 0, 0, time.UTC)
	inv := &entity.Invoice{
		ID: "INV-001-0", OrderID: "ORD-2024-001", CompanyID: "1",
		CustomerName: "Boutique Central",
		Amount:       decimal.RequireFromString("1049.4"),
		IssueDate:    due.AddDate(0, 0, -30),
		DueDate:      due,
		Status:       entity.PaymentPending,
		Items: []entity.OrderItem{
			{ProductName: "Camiseta", Quantity: 50, UnitPrice: decimal.RequireFromString("19.99"), Total: decimal.RequireFromString("999.5"), SelectedSize: "M"},
		},
	}
	company := &entity.Company{ID: "1", Name: "Textiles Andinos", Type: entity.CompanyManufacturer}
	customer := &entity.Customer{Name: "Boutique Central", Email: "compras@boutique.test"}

	out, err := NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), inv, company, customer)
	require.NoError(t, err)
	require.Greater(t, len(out), 4)
	assert.Equal(t, "%PDF", string(out[:4]))

	assert.Equal(t, "1|INV-001-0|1049.40|2024-04-05", PaymentReference(inv, company))
	assert.Equal(t, "M", variant(inv.Items[0]))
	assert.Equal(t, "-", variant(entity.OrderItem{}))

	_, err = NewMarotoPDFGenerator().GenerateInvoicePDF(context.Background(), inv, nil, customer)
	assert.Error(t, err)
}
