// Package pdf genera la representación imprimible de una factura de cartera.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa + industria │  N° Factura + Emisión        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: Nombre + contacto  │  Vencimiento + Estado        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | Variante | P.Unit | Total         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Productos / Envío y seguro / TOTAL                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con la referencia de pago + leyenda             │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Operaciones-api/internal/application/billing"
	"github.com/jhoicas/Operaciones-api/internal/domain/entity"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorAlert   = &props.Color{Red: 190, Green: 30, Blue: 45}
)

var _ billing.InvoicePDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct{}

// NewMarotoPDFGenerator construye el generador.
func NewMarotoPDFGenerator() *MarotoPDFGenerator { return &MarotoPDFGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	company *entity.Company,
	customer *entity.Customer,
) ([]byte, error) {
	if invoice == nil || company == nil || customer == nil {
		return nil, fmt.Errorf("pdf: factura, empresa y cliente son obligatorios")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Factura "+invoice.ID, true).
		WithAuthor(company.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice, company))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRow(invoice, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableDetailRows(invoice.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRows(invoice, company)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(invoice *entity.Invoice, company *entity.Company) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(company.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(company.Industry, "GENERIC")+" · "+company.Type, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("FACTURA DE VENTA", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.ID, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Emisión: "+invoice.IssueDate.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

// customerRow: cliente (izq) y condiciones de pago (der).
func customerRow(invoice *entity.Invoice, customer *entity.Customer) core.Row {
	statusColor := colorGray
	if invoice.Status == entity.PaymentOverdue {
		statusColor = colorAlert
	}
	return row.New(16).Add(
		col.New(7).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(customer.Name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New(fmt.Sprintf("Email: %s   |   Tel: %s",
				nonEmpty(customer.Email, "-"),
				nonEmpty(customer.Phone, "-"),
			), props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(5).Add(
			text.New("Pedido: "+invoice.OrderID, props.Text{
				Size: 8, Align: align.Right, Top: 1, Color: colorGray,
			}),
			text.New("Vence: "+invoice.DueDate.Format("02/01/2006"), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 6,
			}),
			text.New("Estado: "+invoice.Status, props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 12, Color: statusColor,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 5, align.Left),
		h("Variante", 2, align.Center),
		h("Precio Unit.", 2, align.Right),
		h("Total", 2, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por línea del pedido.
func tableDetailRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(5).Add(text.New(
				it.ProductName,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				variant(it),
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: colorGray},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(2).Add(text.New(
				"$"+formatMoney(it.Total),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: productos, cargos de envío y seguro (diferencia contra el monto) y total.
func totalsRow(invoice *entity.Invoice) core.Row {
	items := decimal.Zero
	for _, it := range invoice.Items {
		items = items.Add(it.Total)
	}
	extras := invoice.Amount.Sub(items)
	if extras.IsNegative() {
		extras = decimal.Zero
	}

	label := func(s string) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Productos:"),
			text.New("Envío y seguro:", props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 12, Color: colorPrimary}),
		),
		col.New(3).Add(
			value("$"+formatMoney(items), 0),
			value("$"+formatMoney(extras), 6),
			grand("$"+formatMoney(invoice.Amount), 12),
		),
	)
}

// footerRows: QR con la referencia de pago y leyenda.
func footerRows(invoice *entity.Invoice, company *entity.Company) []core.Row {
	return []core.Row{
		row.New(40).Add(
			col.New(4).Add(code.NewQr(PaymentReference(invoice, company), props.Rect{
				Percent: 95,
				Center:  true,
			})),
			col.New(8).Add(
				text.New("Referencia de pago", props.Text{
					Style: fontstyle.Bold, Size: 9, Top: 4, Left: 3, Color: colorPrimary,
				}),
				text.New(PaymentReference(invoice, company), props.Text{
					Size: 8, Top: 10, Left: 3, Color: colorGray,
				}),
				text.New("Conserve este documento como soporte de pago.", props.Text{
					Size: 7, Top: 22, Left: 3, Color: colorGray,
				}),
			),
		),
	}
}

// ── helpers ───────────────────────────────────────────────────────────────────

// PaymentReference texto codificado en el QR: empresa|factura|monto|vencimiento.
func PaymentReference(invoice *entity.Invoice, company *entity.Company) string {
	return strings.Join([]string{
		company.ID,
		invoice.ID,
		invoice.Amount.StringFixed(2),
		invoice.DueDate.Format("2006-01-02"),
	}, "|")
}

func variant(it entity.OrderItem) string {
	parts := make([]string, 0, 2)
	if it.SelectedSize != "" {
		parts = append(parts, it.SelectedSize)
	}
	if it.SelectedColor != "" {
		parts = append(parts, it.SelectedColor)
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " / ")
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney redondea a enteros e inserta puntos de miles.
// Ej: 25000 → "25.000", -1000000 → "-1.000.000"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(0)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	n := len(s)
	if n <= 3 {
		return sign + s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return sign + string(buf)
}
