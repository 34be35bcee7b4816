// Package excel genera el libro de resumen de stock con excelize.
package excel

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/stock"
)

const (
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

	sheetSummary  = "Resumen"
	sheetCritical = "Críticos"
	sheetExpired  = "Vencidos"
	sheetNear     = "Próximos"
	sheetKPIs     = "Indicadores"

	fmtMoney = 4 // #,##0.00
)

var productHeader = []any{
	"Código", "Producto", "Concentración", "Laboratorio", "Categoría", "Estado",
	"Stock total", "Mínimo", "Vencidas", "En riesgo", "Vigentes", "Días al vencimiento", "Lotes",
	"Costo total", "Costo promedio", "Precio venta", "Margen unitario", "Margen %",
	"Valor venta teórico", "% en riesgo",
}

// StockWorkbook renderiza stock.Report como .xlsx.
type StockWorkbook struct{}

func NewStockWorkbook() *StockWorkbook { return &StockWorkbook{} }

// Render devuelve el archivo listo para descargar.
func (w *StockWorkbook) Render(r stock.Report) (*entity.Download, error) {
	f := excelize.NewFile()
	defer f.Close()

	styles, err := newStyles(f)
	if err != nil {
		return nil, err
	}

	if err := f.SetSheetName("Sheet1", sheetSummary); err != nil {
		return nil, fmt.Errorf("excel: renombrar hoja: %w", err)
	}
	sheets := []struct {
		name string
		rows []entity.ProductSummary
	}{
		{sheetSummary, r.Summaries},
		{sheetCritical, r.Tabs.Critical},
		{sheetExpired, r.Tabs.Expired},
		{sheetNear, r.Tabs.NearExpiry},
	}
	for i, s := range sheets {
		if i > 0 {
			if _, err := f.NewSheet(s.name); err != nil {
				return nil, fmt.Errorf("excel: crear hoja %s: %w", s.name, err)
			}
		}
		if err := writeProducts(f, s.name, s.rows, styles); err != nil {
			return nil, err
		}
	}
	if _, err := f.NewSheet(sheetKPIs); err != nil {
		return nil, fmt.Errorf("excel: crear hoja %s: %w", sheetKPIs, err)
	}
	if err := writeKPIs(f, r, styles); err != nil {
		return nil, err
	}
	f.SetActiveSheet(0)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("excel: escribir libro: %w", err)
	}
	return &entity.Download{
		Filename:    "resumen_stock_" + r.GeneratedAt.Format("20060102") + ".xlsx",
		ContentType: ContentType,
		Body:        buf.Bytes(),
	}, nil
}

type styleSet struct {
	header int
	money  int
}

func newStyles(f *excelize.File) (styleSet, error) {
	header, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "#FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#1F4E78"}},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center", WrapText: true},
	})
	if err != nil {
		return styleSet{}, fmt.Errorf("excel: estilo de cabecera: %w", err)
	}
	money, err := f.NewStyle(&excelize.Style{NumFmt: fmtMoney})
	if err != nil {
		return styleSet{}, fmt.Errorf("excel: estilo de moneda: %w", err)
	}
	return styleSet{header: header, money: money}, nil
}

func writeProducts(f *excelize.File, sheet string, rows []entity.ProductSummary, st styleSet) error {
	if err := f.SetSheetRow(sheet, "A1", &productHeader); err != nil {
		return fmt.Errorf("excel: cabecera %s: %w", sheet, err)
	}
	last, _ := excelize.ColumnNumberToName(len(productHeader))
	if err := f.SetCellStyle(sheet, "A1", last+"1", st.header); err != nil {
		return fmt.Errorf("excel: estilo cabecera %s: %w", sheet, err)
	}

	for i, p := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		row := []any{
			p.ProductCode, p.Name, p.Concentration, p.Lab, p.Category, string(stock.StatusOf(p)),
			p.TotalUnits, p.MinimumThreshold, p.UnitsExpired, p.UnitsAtRisk, p.UnitsCurrent,
			daysCell(p.MinDaysToExpiry), p.LotCount,
			money(p.TotalCost), money(p.AvgUnitCost), money(p.SalePrice), money(p.UnitMargin),
			money(p.MarginPct), money(p.TheoreticalSaleValue), money(p.PctAtRisk),
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("excel: fila %d de %s: %w", i+2, sheet, err)
		}
	}
	if len(rows) > 0 {
		end, _ := excelize.CoordinatesToCellName(len(productHeader), len(rows)+1)
		if err := f.SetCellStyle(sheet, "N2", end, st.money); err != nil {
			return fmt.Errorf("excel: estilo moneda %s: %w", sheet, err)
		}
	}

	_ = f.SetColWidth(sheet, "A", "A", 16)
	_ = f.SetColWidth(sheet, "B", "B", 36)
	_ = f.SetColWidth(sheet, "C", "F", 16)
	_ = f.SetColWidth(sheet, "G", last, 14)
	return f.SetPanes(sheet, &excelize.Panes{
		Freeze:      true,
		YSplit:      1,
		TopLeftCell: "A2",
		ActivePane:  "bottomLeft",
	})
}

func writeKPIs(f *excelize.File, r stock.Report, st styleSet) error {
	k := r.KPIs
	rows := [][]any{
		{"Indicador", "Valor"},
		{"Generado", r.GeneratedAt.Format("2006-01-02 15:04")},
		{"Ventana de riesgo (días)", r.RiskWindowDays},
		{"Productos", k.TotalProducts},
		{"Productos críticos", k.CriticalProducts},
		{"Próximos a vencer", k.NearExpiryProducts},
		{"Con unidades vencidas", k.ExpiredProducts},
		{"Unidades totales", k.TotalUnits},
		{"Unidades vencidas o en riesgo", k.UnitsExpiredOrAtRisk},
		{"Valor de inventario (costo)", money(k.InventoryCostValue)},
		{"Valor de inventario (venta)", money(k.InventorySaleValue)},
		{"Margen potencial", money(k.PotentialMargin)},
		{"% stock en riesgo", money(k.PctStockAtRisk)},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		if err := f.SetSheetRow(sheetKPIs, cell, &row); err != nil {
			return fmt.Errorf("excel: indicadores: %w", err)
		}
	}
	_ = f.SetCellStyle(sheetKPIs, "A1", "B1", st.header)
	_ = f.SetCellStyle(sheetKPIs, "B10", "B13", st.money)
	return f.SetColWidth(sheetKPIs, "A", "A", 34)
}

// money redondea a 2 decimales antes de pasar a float (la celda es numérica).
func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}

func daysCell(d *int) any {
	if d == nil {
		return ""
	}
	return *d
}
