// Package stock contiene el agregador de lotes del tablero de stock y las derivaciones
// que la vista calcula sobre los resúmenes (estado, pestañas, KPIs, paginación).
//
// Todo el paquete es puro: no hace I/O, no guarda estado entre llamadas y recibe la
// fecha de referencia como parámetro.
package stock

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// DefaultRiskWindowDays días hasta el vencimiento que cuentan como "en riesgo".
const DefaultRiskWindowDays = 30

var hundred = decimal.NewFromInt(100)

// Aggregator agrupa lotes en resúmenes por producto.
type Aggregator struct {
	RiskWindowDays int
	Language       language.Tag // idioma para ordenar por nombre
}

// NewAggregator construye el agregador; una ventana <= 0 usa DefaultRiskWindowDays.
func NewAggregator(riskWindowDays int, lang language.Tag) Aggregator {
	if riskWindowDays <= 0 {
		riskWindowDays = DefaultRiskWindowDays
	}
	return Aggregator{RiskWindowDays: riskWindowDays, Language: lang}
}

// BuildSummaries agrega con la ventana de 30 días y orden en español.
func BuildSummaries(lots []entity.Lot, today time.Time) []entity.ProductSummary {
	return NewAggregator(DefaultRiskWindowDays, language.Spanish).Summarize(lots, today)
}

// Summarize convierte la lista plana de lotes en un resumen por código de producto,
// ordenado por nombre con comparación según el idioma configurado.
func (a Aggregator) Summarize(lots []entity.Lot, today time.Time) []entity.ProductSummary {
	order := make([]string, 0)
	groups := make(map[string][]entity.Lot)
	for _, l := range lots {
		if _, ok := groups[l.ProductCode]; !ok {
			order = append(order, l.ProductCode)
		}
		groups[l.ProductCode] = append(groups[l.ProductCode], l)
	}

	summaries := make([]entity.ProductSummary, 0, len(order))
	for _, code := range order {
		summaries = append(summaries, a.summarizeGroup(groups[code], today))
	}

	// collate.Collator no es seguro para uso concurrente: uno por llamada.
	col := collate.New(a.Language)
	sort.SliceStable(summaries, func(i, j int) bool {
		if c := col.CompareString(summaries[i].Name, summaries[j].Name); c != 0 {
			return c < 0
		}
		return summaries[i].ProductCode < summaries[j].ProductCode
	})
	return summaries
}

func (a Aggregator) summarizeGroup(group []entity.Lot, today time.Time) entity.ProductSummary {
	base := group[0]

	var totalUnits int64
	totalCost := decimal.Zero
	salePriceVaries := false
	for _, l := range group {
		totalUnits += l.Units
		totalCost = totalCost.Add(decimal.NewFromInt(l.Units).Mul(l.PurchasePrice))
		if !l.SalePrice.Equal(base.SalePrice) {
			salePriceVaries = true
		}
	}

	avgUnitCost := decimal.Zero
	if totalUnits > 0 {
		avgUnitCost = totalCost.Div(decimal.NewFromInt(totalUnits))
	}
	salePrice := base.SalePrice
	unitMargin := salePrice.Sub(avgUnitCost)
	marginPct := decimal.Zero
	if avgUnitCost.GreaterThan(decimal.Zero) {
		marginPct = unitMargin.Div(avgUnitCost).Mul(hundred)
	}

	var unitsExpired, unitsAtRisk int64
	var minDays *int
	for _, l := range group {
		d := DaysUntil(l.ExpiryDate, today)
		if d == nil {
			continue
		}
		if minDays == nil || *d < *minDays {
			v := *d
			minDays = &v
		}
		switch {
		case *d <= 0:
			unitsExpired += l.Units
		case *d <= a.RiskWindowDays:
			unitsAtRisk += l.Units
		}
	}

	pctAtRisk := decimal.Zero
	if totalUnits > 0 {
		pctAtRisk = decimal.NewFromInt(unitsExpired + unitsAtRisk).
			Div(decimal.NewFromInt(totalUnits)).
			Mul(hundred)
	}

	lots := make([]entity.Lot, len(group))
	copy(lots, group)

	return entity.ProductSummary{
		ProductCode:          base.ProductCode,
		Name:                 base.Name,
		Concentration:        base.Concentration,
		Lab:                  base.Lab,
		Category:             base.Category,
		MinimumThreshold:     base.MinimumThreshold,
		TotalUnits:           totalUnits,
		UnitsExpired:         unitsExpired,
		UnitsAtRisk:          unitsAtRisk,
		UnitsCurrent:         totalUnits - unitsExpired - unitsAtRisk,
		MinDaysToExpiry:      minDays,
		LotCount:             len(group),
		TotalCost:            totalCost,
		AvgUnitCost:          avgUnitCost,
		SalePrice:            salePrice,
		SalePriceVaries:      salePriceVaries,
		UnitMargin:           unitMargin,
		MarginPct:            marginPct,
		TheoreticalSaleValue: decimal.NewFromInt(totalUnits).Mul(salePrice),
		PctAtRisk:            pctAtRisk,
		Lots:                 lots,
	}
}
