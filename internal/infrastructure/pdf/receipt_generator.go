// Package pdf genera el comprobante PDF de una orden.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: marca                │  N° Orden + Fecha + Estado  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE: nombre + email / envío / facturación              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Cant | Producto | P.Unit | Total                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTAL + método de pago                                     │
//	│  FOOTER: QR con el número de orden                          │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
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

	"github.com/jhoicas/engage-api/internal/application/ports"
	"github.com/jhoicas/engage-api/internal/domain/entity"
)

var _ ports.ReceiptGenerator = (*ReceiptGenerator)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ReceiptGenerator comprobante de orden con Maroto v2.
type ReceiptGenerator struct {
	brand string
}

// NewReceiptGenerator brand aparece en el encabezado y como autor del documento.
func NewReceiptGenerator(brand string) *ReceiptGenerator {
	return &ReceiptGenerator{brand: nonEmpty(brand, "Engage")}
}

// Generate genera el PDF y devuelve sus bytes. La orden debe venir con sus ítems.
func (g *ReceiptGenerator) Generate(order *entity.Order) ([]byte, error) {
	if order == nil {
		return nil, fmt.Errorf("pdf: orden nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante "+order.OrderNumber, true).
		WithAuthor(g.brand, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(order))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(customerRows(order)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(itemRows(order.Items)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(order))

	m.AddRows(line.NewRow(3))
	m.AddRows(footerRow(order))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *ReceiptGenerator) headerRow(order *entity.Order) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(g.brand, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Comprobante de pedido", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(order.OrderNumber, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 1,
			}),
			text.New("Fecha: "+order.CreatedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Estado: "+strings.ToUpper(order.Status), props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Top: 13, Color: colorPrimary,
			}),
		),
	)
}

func customerRows(order *entity.Order) []core.Row {
	rows := []core.Row{
		row.New(14).Add(col.New(12).Add(
			text.New("CLIENTE", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(order.CustomerName, order.CustomerID), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
			text.New("Email: "+nonEmpty(order.CustomerEmail, "-"), props.Text{
				Size: 8, Top: 11, Color: colorGray,
			}),
		)),
	}
	rows = append(rows, row.New(12).Add(
		col.New(6).Add(
			text.New("Envío", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
			text.New(nonEmpty(order.ShippingAddress, "-"), props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Facturación", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1}),
			text.New(nonEmpty(order.BillingAddress, nonEmpty(order.ShippingAddress, "-")), props.Text{Size: 8, Top: 6, Color: colorGray}),
		),
	))
	return rows
}

// tableHeaderRow cabecera de la tabla de ítems.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Cant.", 1, align.Center),
		h("Producto", 6, align.Left),
		h("Precio Unit.", 2, align.Right),
		h("Total", 3, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

func itemRows(items []entity.OrderItem) []core.Row {
	result := make([]core.Row, 0, len(items))
	for _, it := range items {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				fmt.Sprintf("%d", it.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				nonEmpty(it.ProductName, it.ProductID),
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatMoney(it.UnitPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				formatMoney(it.TotalPrice),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

func totalsRow(order *entity.Order) core.Row {
	return row.New(16).Add(
		col.New(6).Add(
			text.New("Método de pago: "+nonEmpty(order.PaymentMethod, "-"), props.Text{
				Size: 8, Top: 2, Color: colorGray,
			}),
		),
		col.New(3).Add(text.New("TOTAL:", props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 2, Top: 2,
		})),
		col.New(3).Add(text.New(formatMoney(order.TotalAmount), props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: 2,
		})),
	)
}

func footerRow(order *entity.Order) core.Row {
	note := "Gracias por su compra."
	if order.Status == entity.OrderStatusCancelled {
		note = "Orden cancelada. Motivo: " + nonEmpty(order.CancellationReason, "-")
	}
	return row.New(40).Add(
		col.New(3).Add(code.NewQr(order.OrderNumber, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New(note, props.Text{Size: 9, Top: 4, Left: 3, Color: colorGray}),
			text.New("Conserve este comprobante como soporte de su pedido.", props.Text{
				Size: 7, Top: 14, Left: 3, Color: colorGray,
			}),
		),
	)
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatMoney "$1,234,567.50": separador de miles con coma y dos decimales.
func formatMoney(d decimal.Decimal) string {
	sign := ""
	if d.IsNegative() {
		sign = "-"
		d = d.Neg()
	}
	s := d.StringFixed(2)
	intPart, frac := s[:len(s)-3], s[len(s)-2:]
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return sign + "$" + string(buf) + "." + frac
}
