// Package pdf genera la representación gráfica de una factura de
// embellecimiento de vehículos.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: "Rechnung" + número  │  Fecha + estado             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  ABSENDER (emisor)  │  EMPFÄNGER (cliente)                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Pos | Prog | VIN/Kennz. | Einzel | Extras | Gesamt  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Gesamtnetto / MwSt / Gesamtbrutto                 │
//	│  LEYENDA: número de programa → servicio                     │
//	└─────────────────────────────────────────────────────────────┘
//
// Solo presentación: todos los importes vienen ya calculados en la factura,
// aquí no se recalcula nada.
package pdf

import (
	"context"
	"fmt"
	"sort"

	maroto "github.com/johnfercher/maroto/v2"
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
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/jhoicas/Taller-api/internal/domain/entity"
	"github.com/jhoicas/Taller-api/internal/domain/invoicing"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 20, Green: 20, Blue: 20}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// Formato alemán de importes: separador de miles "." y decimal ",".
var deFormat = message.NewPrinter(language.German)

func formatEUR(d decimal.Decimal) string {
	f, _ := d.Float64()
	return deFormat.Sprintf("%.2f EUR", f)
}

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoInvoiceGenerator implementa billing.InvoicePDFGenerator usando Maroto v2.
type MarotoInvoiceGenerator struct{}

// NewMarotoInvoiceGenerator construye el generador.
func NewMarotoInvoiceGenerator() *MarotoInvoiceGenerator { return &MarotoInvoiceGenerator{} }

// GenerateInvoicePDF genera el PDF y devuelve sus bytes. customer puede ser
// nil (referencia colgante): la factura lleva su propia instantánea del
// nombre, el cliente solo aporta la dirección.
func (g *MarotoInvoiceGenerator) GenerateInvoicePDF(
	_ context.Context,
	invoice *entity.Invoice,
	customer *entity.Customer,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(15).WithRightMargin(15).
		WithTopMargin(15).WithBottomMargin(15).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Rechnung "+invoice.InvoiceNumber, true).
		WithAuthor(invoice.Issuer.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(invoice))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(partiesRow(invoice, customer))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	for _, r := range tableDetailRows(invoice.LineItems) {
		m.AddRows(r)
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(invoice))

	m.AddRows(line.NewRow(3))
	for _, r := range legendRows(invoice.LineItems) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + número de factura (izq), fecha y estado (der).
func headerRow(invoice *entity.Invoice) core.Row {
	stage := invoicing.Stage(invoice, invoice.CreatedAt)
	return row.New(16).Add(
		col.New(7).Add(
			text.New("Rechnung", props.Text{
				Style: fontstyle.Bold, Size: 18, Color: colorPrimary, Top: 1,
			}),
			text.New(invoice.InvoiceNumber, props.Text{
				Style: fontstyle.Bold, Size: 11, Top: 10,
			}),
		),
		col.New(5).Add(
			text.New("Datum: "+invoice.CreatedAt.Format("02.01.2006"), props.Text{
				Size: 9, Align: align.Right, Top: 3, Color: colorGray,
			}),
			text.New("Status: "+invoicing.StageLabel(stage), props.Text{
				Size: 9, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

// partiesRow: emisor (Absender) y receptor (Empfänger) lado a lado.
func partiesRow(invoice *entity.Invoice, customer *entity.Customer) core.Row {
	recipientAddress := ""
	if customer != nil {
		recipientAddress = customer.Address
	}
	return row.New(20).Add(
		col.New(6).Add(
			text.New("Absender", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray}),
			text.New(invoice.Issuer.Name, props.Text{Size: 10, Top: 6}),
			text.New(invoice.Issuer.Address, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
		col.New(6).Add(
			text.New("Empfänger", props.Text{Style: fontstyle.Bold, Size: 8, Top: 1, Color: colorGray}),
			text.New(invoice.CustomerName, props.Text{Size: 10, Top: 6}),
			text.New(recipientAddress, props.Text{Size: 8, Top: 12, Color: colorGray}),
		),
	)
}

// tableHeaderRow cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Pos", 1, align.Left),
		h("Prog", 1, align.Center),
		h("VIN / Kennzeichen", 4, align.Left),
		h("Einzelpreis netto", 2, align.Right),
		h("Extras netto", 2, align.Right),
		h("Gesamt netto", 2, align.Right),
	)
}

// tableDetailRows una fila por línea de factura, en orden de posición.
func tableDetailRows(items []entity.InvoiceLineItem) []core.Row {
	out := make([]core.Row, 0, len(items))
	for _, item := range items {
		vin := item.VIN
		if vin == "" {
			vin = "-"
		}
		plate := item.LicensePlate
		if plate == "" {
			plate = "-"
		}
		out = append(out, row.New(7).Add(
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.Position), props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(fmt.Sprintf("%d", item.ProgramNumber), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(4).Add(text.New(vin+" / "+plate, props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(formatEUR(item.UnitNet), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(formatEUR(item.ExtrasNet), props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(formatEUR(item.TotalNet), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return out
}

// totalsRow bloque de totales alineado a la derecha.
func totalsRow(invoice *entity.Invoice) core.Row {
	taxLabel := fmt.Sprintf("MwSt (%s%%):", invoice.TaxRate.Mul(decimal.NewFromInt(100)).Round(0))
	label := func(s string, size float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: size, Align: align.Right, Right: 2})
	}
	value := func(s string, size float64) core.Component {
		return text.New(s, props.Text{Size: size, Align: align.Right})
	}
	return row.New(22).Add(
		col.New(6),
		col.New(3).Add(
			label("Gesamtnetto:", 9),
			text.New(taxLabel, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: 6}),
			text.New("Gesamtbrutto:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Right: 2, Top: 13}),
		),
		col.New(3).Add(
			value(formatEUR(invoice.SubtotalNet), 9),
			text.New(formatEUR(invoice.TaxAmount), props.Text{Size: 9, Align: align.Right, Top: 6}),
			text.New(formatEUR(invoice.TotalGross), props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 13}),
		),
	)
}

// legendRows leyenda de programas: número → servicio, ordenada y sin
// duplicados.
func legendRows(items []entity.InvoiceLineItem) []core.Row {
	labels := make(map[int]string, len(items))
	for _, item := range items {
		if _, seen := labels[item.ProgramNumber]; !seen {
			labels[item.ProgramNumber] = item.ProgramLabel
		}
	}
	numbers := make([]int, 0, len(labels))
	for n := range labels {
		numbers = append(numbers, n)
	}
	sort.Ints(numbers)

	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(
			text.New("Legende Programme", props.Text{Style: fontstyle.Bold, Size: 9, Top: 1}),
		)),
	}
	for _, n := range numbers {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%d: %s", n, labels[n]), props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	return rows
}
