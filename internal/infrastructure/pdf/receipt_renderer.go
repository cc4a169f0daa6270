// Package pdf genera la representación gráfica (A4) de los comprobantes de venta.
//
// Layout de la página:
//
//	┌──────────────────────────────────────────────────────┐
//	│  LOGO │ Razón social + RUC       │ Título + Serie-N°  │
//	│  Datos del comprador: doc / razón social / fecha      │
//	│  Detalle: Producto | Cant. | P. Unit | Total          │
//	│  ──────────────────────────────────────────────────── │
//	│                                    TOTAL:  S/ 0.00    │
//	│  QR (factura / boleta) │ Gracias por su preferencia   │
//	└──────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/image"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/extension"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/sistema-facturador/internal/application/billing"
	"github.com/jhoicas/sistema-facturador/internal/domain/entity"
)

var _ billing.ReceiptRenderer = (*MarotoRenderer)(nil)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoRenderer implementa billing.ReceiptRenderer usando Maroto v2.
type MarotoRenderer struct{}

// NewMarotoRenderer construye el renderer.
func NewMarotoRenderer() *MarotoRenderer { return &MarotoRenderer{} }

// Render genera el PDF y devuelve sus bytes. La fecha de creación del documento
// se fija a CreatedAt de la venta para que dos renders coincidan.
func (g *MarotoRenderer) Render(sale *entity.Sale, logo *billing.Logo) ([]byte, error) {
	if sale == nil {
		return nil, fmt.Errorf("pdf: venta nula")
	}
	rc := Layout(sale)

	b := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(14).WithRightMargin(14).
		WithTopMargin(17).WithBottomMargin(14).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 10}).
		WithTitle(rc.Title+" "+rc.Number, true).
		WithAuthor(rc.IssuerName, true)
	if !sale.CreatedAt.IsZero() {
		b = b.WithCreationDate(sale.CreatedAt)
	}
	m := maroto.New(b.Build())

	m.AddRows(headerRow(rc, logo))
	m.AddRows(row.New(6))
	m.AddRows(buyerRows(rc)...)
	m.AddRows(row.New(4))
	m.AddRows(text.NewRow(6, "Detalle", props.Text{Style: fontstyle.Bold, Size: 11}))
	m.AddRows(tableHeaderRow())
	m.AddRows(line.NewRow(2, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(detailRows(rc.Lines)...)
	m.AddRows(line.NewRow(3, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalRow(rc))
	m.AddRows(row.New(10))
	m.AddRows(footerRow(rc))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: logo opcional, emisor (centro) y título + número (derecha).
func headerRow(rc Receipt, logo *billing.Logo) core.Row {
	logoCol := col.New(2)
	if logo != nil && len(logo.Data) > 0 {
		logoCol.Add(image.NewFromBytes(logo.Data, logoExtension(logo.Ext), props.Rect{
			Percent: 95, Center: true,
		}))
	}
	return row.New(22).Add(
		logoCol,
		col.New(6).Add(
			text.New(rc.IssuerName, props.Text{Style: fontstyle.Bold, Size: 16, Top: 2, Left: 2}),
			text.New(rc.IssuerRUC, props.Text{Size: 11, Top: 11, Left: 2}),
		),
		col.New(4).Add(
			text.New(rc.Title, props.Text{Style: fontstyle.Bold, Size: 14, Top: 2, Color: colorPrimary}),
			text.New(rc.Number, props.Text{Size: 11, Top: 11}),
		),
	)
}

func buyerRows(rc Receipt) []core.Row {
	return []core.Row{
		text.NewRow(6, "Datos del comprador", props.Text{Style: fontstyle.Bold}),
		text.NewRow(5, rc.BuyerDoc),
		text.NewRow(5, rc.BuyerName),
		text.NewRow(5, rc.Fecha),
	}
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{Style: fontstyle.Bold, Align: a, Top: 1}))
	}
	return row.New(6).Add(
		h("Producto", 6, align.Left),
		h("Cant.", 2, align.Right),
		h("P. Unit", 2, align.Right),
		h("Total", 2, align.Right),
	)
}

func detailRows(lines []ReceiptLine) []core.Row {
	rows := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		rows = append(rows, row.New(5).Add(
			col.New(6).Add(text.New(l.Name, props.Text{Align: align.Left})),
			col.New(2).Add(text.New(l.Qty, props.Text{Align: align.Right})),
			col.New(2).Add(text.New(l.PU, props.Text{Align: align.Right})),
			col.New(2).Add(text.New(l.Total, props.Text{Align: align.Right})),
		))
	}
	return rows
}

func totalRow(rc Receipt) core.Row {
	return row.New(7).Add(
		col.New(6),
		col.New(4).Add(text.New("TOTAL:", props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right})),
		col.New(2).Add(text.New(rc.Total, props.Text{Style: fontstyle.Bold, Size: 11, Align: align.Right})),
	)
}

// footerRow: QR con los datos del comprobante (si corresponde) y agradecimiento.
func footerRow(rc Receipt) core.Row {
	thanks := text.New("Gracias por su preferencia", props.Text{Size: 10, Color: colorGray, Top: 2})
	if rc.QRData == "" {
		return row.New(8).Add(col.New(12).Add(thanks))
	}
	return row.New(30).Add(
		col.New(3).Add(code.NewQr(rc.QRData, props.Rect{Percent: 90, Center: true})),
		col.New(9).Add(
			thanks,
			text.New("Representación impresa del comprobante electrónico.", props.Text{Size: 8, Color: colorGray, Top: 9}),
		),
	)
}

func logoExtension(ext string) extension.Type {
	if ext == "jpg" || ext == "jpeg" {
		return extension.Jpg
	}
	return extension.Png
}
