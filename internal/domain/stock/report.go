package stock

import (
	"time"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// Report todo lo que necesita un exportador para renderizar el resumen de stock.
type Report struct {
	GeneratedAt    time.Time
	RiskWindowDays int
	Filter         entity.LotFilter
	KPIs           entity.StockKPIs
	Summaries      []entity.ProductSummary
	Tabs           Tabs
}

// NewReport arma el reporte a partir de resúmenes ya agregados.
func NewReport(summaries []entity.ProductSummary, filter entity.LotFilter, riskWindowDays int, generatedAt time.Time) Report {
	return Report{
		GeneratedAt:    generatedAt,
		RiskWindowDays: riskWindowDays,
		Filter:         filter,
		KPIs:           ComputeKPIs(summaries, riskWindowDays),
		Summaries:      summaries,
		Tabs:           BuildTabs(summaries, riskWindowDays),
	}
}
