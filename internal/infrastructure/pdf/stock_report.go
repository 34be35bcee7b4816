// Package pdf genera el reporte de stock en PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + fecha de generación + filtros              │
//	│  ─────────────────────────────────────────────────────────  │
//	│  KPIs: productos / críticos / próximos / vencidos / valores  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Código | Producto | Estado | Stock | Mín | Días ...  │
//	│  (una sección por pestaña: críticos, vencidos, próximos)     │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"
	"strconv"
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

	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/stock"
)

const ContentType = "application/pdf"

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorDanger  = &props.Color{Red: 176, Green: 0, Blue: 32}
	colorWarning = &props.Color{Red: 191, Green: 120, Blue: 0}
	colorHeader  = &props.Color{Red: 221, Green: 235, Blue: 247}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// StockReportPDF renderiza stock.Report como PDF.
type StockReportPDF struct {
	// Title encabezado del documento, ej. nombre de la botica.
	Title string
}

// NewStockReportPDF construye el generador.
func NewStockReportPDF(title string) *StockReportPDF {
	if strings.TrimSpace(title) == "" {
		title = "Resumen de stock"
	}
	return &StockReportPDF{Title: title}
}

// Render genera el PDF. La tabla general lista todos los productos; luego
// vienen las secciones de críticos, vencidos y próximos a vencer.
func (g *StockReportPDF) Render(r stock.Report) (*entity.Download, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(g.Title, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(g.Title, r))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(kpiRows(r)...)
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(section("Todos los productos", r.Summaries)...)
	m.AddRows(section("Stock crítico", r.Tabs.Critical)...)
	m.AddRows(section("Con unidades vencidas", r.Tabs.Expired)...)
	m.AddRows(section(fmt.Sprintf("Próximos a vencer (hasta %d días)", r.RiskWindowDays), r.Tabs.NearExpiry)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return &entity.Download{
		Filename:    "resumen_stock_" + r.GeneratedAt.Format("20060102") + ".pdf",
		ContentType: ContentType,
		Body:        doc.GetBytes(),
	}, nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(title string, r stock.Report) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(filterLabel(r.Filter), props.Text{
				Size: 8, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("Generado: "+r.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

func kpiRows(r stock.Report) []core.Row {
	k := r.KPIs
	cell := func(label, value string, color *props.Color) core.Col {
		return col.New(3).Add(
			text.New(label, props.Text{Size: 7, Color: colorGray, Top: 1}),
			text.New(value, props.Text{Style: fontstyle.Bold, Size: 11, Color: color, Top: 5}),
		)
	}
	return []core.Row{
		row.New(13).Add(
			cell("Productos", strconv.Itoa(k.TotalProducts), colorPrimary),
			cell("Stock crítico", strconv.Itoa(k.CriticalProducts), colorDanger),
			cell("Próximos a vencer", strconv.Itoa(k.NearExpiryProducts), colorWarning),
			cell("Con vencidos", strconv.Itoa(k.ExpiredProducts), colorDanger),
		),
		row.New(13).Add(
			cell("Valor costo", formatSoles(k.InventoryCostValue), colorPrimary),
			cell("Valor venta", formatSoles(k.InventorySaleValue), colorPrimary),
			cell("Margen potencial", formatSoles(k.PotentialMargin), colorPrimary),
			cell("% stock en riesgo", k.PctStockAtRisk.StringFixed(2)+"%", colorWarning),
		),
	}
}

// section título + cabecera + filas. Una lista vacía se informa con una línea.
func section(title string, items []entity.ProductSummary) []core.Row {
	rows := []core.Row{
		row.New(4),
		row.New(7).Add(col.New(12).Add(
			text.New(fmt.Sprintf("%s (%d)", title, len(items)), props.Text{
				Style: fontstyle.Bold, Size: 9, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if len(items) == 0 {
		return append(rows, row.New(6).Add(col.New(12).Add(
			text.New("Sin productos.", props.Text{Size: 8, Color: colorGray, Top: 1}),
		)))
	}
	rows = append(rows, tableHeaderRow())
	for _, p := range items {
		rows = append(rows, tableDetailRow(p))
	}
	return rows
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 7, Align: a, Top: 1.5, Left: 1, Right: 1,
		}))
	}
	return row.New(6).Add(
		h("Código", 2, align.Left),
		h("Producto", 3, align.Left),
		h("Estado", 1, align.Center),
		h("Stock", 1, align.Right),
		h("Mín.", 1, align.Right),
		h("Días", 1, align.Right),
		h("Costo total", 2, align.Right),
		h("% riesgo", 1, align.Right),
	).WithStyle(&props.Cell{BackgroundColor: colorHeader})
}

func tableDetailRow(p entity.ProductSummary) core.Row {
	status := stock.StatusOf(p)
	statusColor := colorGray
	switch status {
	case entity.StockOutOfStock, entity.StockCritical:
		statusColor = colorDanger
	case entity.StockLow:
		statusColor = colorWarning
	}
	cell := func(v string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(v, props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	name := p.Name
	if p.Concentration != "" {
		name += " " + p.Concentration
	}
	return row.New(5.5).Add(
		cell(p.ProductCode, 2, align.Left),
		cell(name, 3, align.Left),
		col.New(1).Add(text.New(string(status), props.Text{
			Size: 6.5, Align: align.Center, Top: 1, Style: fontstyle.Bold, Color: statusColor,
		})),
		cell(strconv.FormatInt(p.TotalUnits, 10), 1, align.Right),
		cell(strconv.FormatInt(p.MinimumThreshold, 10), 1, align.Right),
		cell(daysLabel(p.MinDaysToExpiry), 1, align.Right),
		cell(formatSoles(p.TotalCost), 2, align.Right),
		cell(p.PctAtRisk.StringFixed(1)+"%", 1, align.Right),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func filterLabel(f entity.LotFilter) string {
	parts := []string{}
	if f.Query != "" {
		parts = append(parts, "Búsqueda: "+f.Query)
	}
	if f.Lab != "" {
		parts = append(parts, "Laboratorio: "+f.Lab)
	}
	if f.Category != "" {
		parts = append(parts, "Categoría: "+f.Category)
	}
	if len(parts) == 0 {
		return "Todos los productos"
	}
	return strings.Join(parts, "   |   ")
}

func daysLabel(d *int) string {
	if d == nil {
		return "-"
	}
	return strconv.Itoa(*d)
}

// formatSoles monto con separador de miles y dos decimales.
// Ej: 1234567.5 → "S/ 1,234,567.50"
func formatSoles(d decimal.Decimal) string {
	s := d.Abs().StringFixed(2)
	intPart, frac, _ := strings.Cut(s, ".")
	sign := ""
	if d.IsNegative() && !d.Round(2).IsZero() {
		sign = "-"
	}
	return "S/ " + sign + groupThousands(intPart) + "." + frac
}

// groupThousands inserta comas de miles en un string de dígitos.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
