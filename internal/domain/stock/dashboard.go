package stock

import (
	"math"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// StatusOf clasifica el stock del producto respecto a su cantidad mínima.
// Con mínimo 0 nunca es CRITICO: o está AGOTADO o es NORMAL.
func StatusOf(p entity.ProductSummary) entity.StockStatus {
	switch {
	case p.TotalUnits == 0:
		return entity.StockOutOfStock
	case p.TotalUnits <= p.MinimumThreshold:
		return entity.StockCritical
	case p.TotalUnits <= p.MinimumThreshold*2:
		return entity.StockLow
	default:
		return entity.StockNormal
	}
}

// LevelPercent porcentaje de llenado de la barra de stock (100 = dos veces el mínimo).
func LevelPercent(p entity.ProductSummary) int {
	if p.MinimumThreshold <= 0 {
		return 100
	}
	pct := math.Round(float64(p.TotalUnits) / float64(p.MinimumThreshold*2) * 100)
	return int(math.Min(100, pct))
}

// IsCritical stock total en o por debajo del mínimo.
func IsCritical(p entity.ProductSummary) bool {
	return p.TotalUnits <= p.MinimumThreshold
}

// Tabs listas especiales del tablero de stock.
type Tabs struct {
	Critical   []entity.ProductSummary
	NearExpiry []entity.ProductSummary
	Expired    []entity.ProductSummary
	AtRisk     []entity.ProductSummary // ordenada por porcentaje en riesgo descendente
}

// BuildTabs reparte los resúmenes en las pestañas del tablero. riskWindowDays
// define "próximo a vencer" igual que en el agregador.
func BuildTabs(summaries []entity.ProductSummary, riskWindowDays int) Tabs {
	tabs := Tabs{
		Critical:   []entity.ProductSummary{},
		NearExpiry: []entity.ProductSummary{},
		Expired:    []entity.ProductSummary{},
		AtRisk:     []entity.ProductSummary{},
	}
	for _, p := range summaries {
		if IsCritical(p) {
			tabs.Critical = append(tabs.Critical, p)
		}
		if d := p.MinDaysToExpiry; d != nil && *d > 0 && *d <= riskWindowDays {
			tabs.NearExpiry = append(tabs.NearExpiry, p)
		}
		if p.UnitsExpired > 0 {
			tabs.Expired = append(tabs.Expired, p)
		}
		if p.PctAtRisk.GreaterThan(decimal.Zero) {
			tabs.AtRisk = append(tabs.AtRisk, p)
		}
	}
	sort.SliceStable(tabs.AtRisk, func(i, j int) bool {
		return tabs.AtRisk[i].PctAtRisk.GreaterThan(tabs.AtRisk[j].PctAtRisk)
	})
	return tabs
}

// ComputeKPIs indicadores agregados del tablero.
func ComputeKPIs(summaries []entity.ProductSummary, riskWindowDays int) entity.StockKPIs {
	k := entity.StockKPIs{
		TotalProducts:      len(summaries),
		InventoryCostValue: decimal.Zero,
		InventorySaleValue: decimal.Zero,
		PctStockAtRisk:     decimal.Zero,
	}
	for _, p := range summaries {
		if IsCritical(p) {
			k.CriticalProducts++
		}
		if d := p.MinDaysToExpiry; d != nil && *d > 0 && *d <= riskWindowDays {
			k.NearExpiryProducts++
		}
		if p.UnitsExpired > 0 {
			k.ExpiredProducts++
		}
		k.InventoryCostValue = k.InventoryCostValue.Add(p.TotalCost)
		k.InventorySaleValue = k.InventorySaleValue.Add(p.TheoreticalSaleValue)
		k.TotalUnits += p.TotalUnits
		k.UnitsExpiredOrAtRisk += p.UnitsExpired + p.UnitsAtRisk
	}
	k.PotentialMargin = k.InventorySaleValue.Sub(k.InventoryCostValue)
	if k.TotalUnits > 0 {
		k.PctStockAtRisk = decimal.NewFromInt(k.UnitsExpiredOrAtRisk).
			Div(decimal.NewFromInt(k.TotalUnits)).
			Mul(hundred)
	}
	return k
}

// FilterOptions laboratorios y categorías distintos (no vacíos) en orden de aparición.
func FilterOptions(summaries []entity.ProductSummary) (labs, categories []string) {
	labs, categories = []string{}, []string{}
	seenLab := map[string]bool{}
	seenCat := map[string]bool{}
	for _, p := range summaries {
		if p.Lab != "" && !seenLab[p.Lab] {
			seenLab[p.Lab] = true
			labs = append(labs, p.Lab)
		}
		if p.Category != "" && !seenCat[p.Category] {
			seenCat[p.Category] = true
			categories = append(categories, p.Category)
		}
	}
	return labs, categories
}

// PageInfo metadatos de una página calculada en memoria.
type PageInfo struct {
	Page       int // 1-based
	Size       int
	Total      int
	TotalPages int
}

// Paginate corta items en la página indicada (1-based). Una página fuera de rango
// vuelve a la primera; size <= 0 usa 10.
func Paginate[T any](items []T, page, size int) ([]T, PageInfo) {
	if size <= 0 {
		size = 10
	}
	total := len(items)
	totalPages := int(math.Max(1, math.Ceil(float64(total)/float64(size))))
	if page < 1 || page > totalPages {
		page = 1
	}
	start := (page - 1) * size
	end := start + size
	if start > total {
		start = total
	}
	if end > total {
		end = total
	}
	return items[start:end], PageInfo{Page: page, Size: size, Total: total, TotalPages: totalPages}
}
