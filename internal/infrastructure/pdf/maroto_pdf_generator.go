// Package pdf genera la hoja de costos de una operación de producción.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa              │  Operación + Fecha          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  SALIDA: Producto / Cantidad / Responsable                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Material | Cant | Costo unit. | Costo               │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Materiales / Adicionales / TOTAL / Costo unitario │
//	│  ─────────────────────────────────────────────────────────  │
//	│  NOTAS                                                      │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strings"

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

	"github.com/jhoicas/Produccion-api/internal/application/report"
)

var _ report.ProductionSheetRenderer = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa report.ProductionSheetRenderer usando Maroto v2.
type MarotoPDFGenerator struct {
	p *message.Printer
}

// NewMarotoPDFGenerator construye el generador. Los números se formatean en español (1.234,56).
func NewMarotoPDFGenerator() *MarotoPDFGenerator {
	return &MarotoPDFGenerator{p: message.NewPrinter(language.Spanish)}
}

// RenderProductionSheet genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) RenderProductionSheet(_ context.Context, s *report.ProductionSheet) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Hoja de costos de producción", true).
		WithAuthor(nonEmpty(s.CompanyName, "Produccion-api"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(g.outputRow(s))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(g.materialRows(s.Materials)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(s))

	if s.Notes != "" {
		m.AddRows(line.NewRow(3))
		m.AddRows(notesRow(s.Notes))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: empresa (izq) y nombre de la operación + fecha (der).
func headerRow(s *report.ProductionSheet) core.Row {
	return row.New(18).Add(
		col.New(7).Add(
			text.New(nonEmpty(s.CompanyName, "-"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Operación "+s.OperationID, props.Text{
				Size: 7, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("HOJA DE COSTOS DE PRODUCCIÓN", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New(s.Name, props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right, Top: 7,
			}),
			text.New("Fecha: "+s.Date.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 14, Color: colorGray,
			}),
		),
	)
}

func (g *MarotoPDFGenerator) outputRow(s *report.ProductionSheet) core.Row {
	return row.New(14).Add(
		col.New(12).Add(
			text.New("PRODUCTO DE SALIDA", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("%s   |   Cantidad: %s %s", s.OutputProduct, g.Quantity(s.OutputQuantity), s.OutputUnit),
				props.Text{Style: fontstyle.Bold, Size: 10, Top: 6}),
			text.New("Responsable: "+nonEmpty(s.EmployeeName, "-"), props.Text{
				Size: 8, Top: 12, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de materiales.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("Material", 5, align.Left),
		h("Cantidad", 2, align.Right),
		h("Costo unit.", 2, align.Right),
		h("Costo", 3, align.Right),
	)
}

// materialRows: una fila por material consumido.
func (g *MarotoPDFGenerator) materialRows(materials []report.SheetMaterial) []core.Row {
	result := make([]core.Row, 0, len(materials))
	for _, m := range materials {
		result = append(result, row.New(7).Add(
			col.New(5).Add(text.New(m.Product, props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1})),
			col.New(2).Add(text.New(g.Quantity(m.Quantity)+" "+m.Unit, props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(g.Money(m.CostPerUnit), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(3).Add(text.New(g.Money(m.Cost), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *MarotoPDFGenerator) totalsRow(s *report.ProductionSheet) core.Row {
	label := func(v string, top float64) core.Component {
		return text.New(v, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(v string, top float64) core.Component {
		return text.New(v, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(v string, top float64) core.Component {
		return text.New(v, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(28).Add(
		col.New(4),
		col.New(4).Add(
			label("Materiales:", 1),
			label("Costos adicionales:", 7),
			grand("COSTO TOTAL:", 13),
			label("Costo por unidad:", 20),
		),
		col.New(4).Add(
			value(g.Money(s.MaterialsCost), 1),
			value(g.Money(s.AdditionalCosts), 7),
			grand(g.Money(s.TotalCost), 13),
			value(g.Money(s.CostPerUnit), 20),
		),
	)
}

func notesRow(notes string) core.Row {
	return row.New(14).Add(col.New(12).Add(
		text.New("NOTAS", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
		text.New(notes, props.Text{Size: 8, Top: 6, Color: colorGray}),
	))
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// Money formatea un importe con dos decimales y separador de miles. Ej: 12345.5 → "$12.345,50".
func (g *MarotoPDFGenerator) Money(d decimal.Decimal) string {
	return g.p.Sprintf("$%.2f", d.Round(2).InexactFloat64())
}

// Quantity formatea una cantidad sin ceros decimales sobrantes (hasta 3 decimales).
func (g *MarotoPDFGenerator) Quantity(d decimal.Decimal) string {
	str := d.Round(3).String()
	places := 0
	if i := strings.IndexByte(str, '.'); i >= 0 {
		places = len(str) - i - 1
	}
	return g.p.Sprintf(fmt.Sprintf("%%.%df", places), d.Round(3).InexactFloat64())
}
