package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/stock"
)

// StockQuery parámetros de GET /api/stock (página 1-based).
type StockQuery struct {
	Q    string `query:"q" validate:"max=100"`
	Lab  string `query:"lab" validate:"max=100"`
	Cat  string `query:"cat" validate:"max=100"`
	Page int    `query:"page" validate:"min=0"`
	Size int    `query:"size" validate:"min=0,max=500"`
}

// Filter filtro de lotes correspondiente.
func (q StockQuery) Filter() entity.LotFilter {
	return entity.LotFilter{Query: q.Q, Lab: q.Lab, Category: q.Cat}
}

// OverviewQuery parámetros de GET /api/stock/overview: filtros + página de cada pestaña.
type OverviewQuery struct {
	Q              string `query:"q" validate:"max=100"`
	Lab            string `query:"lab" validate:"max=100"`
	Cat            string `query:"cat" validate:"max=100"`
	Size           int    `query:"size" validate:"min=0,max=100"`
	CriticalPage   int    `query:"critical_page" validate:"min=0"`
	NearExpiryPage int    `query:"near_expiry_page" validate:"min=0"`
	ExpiredPage    int    `query:"expired_page" validate:"min=0"`
	AtRiskPage     int    `query:"at_risk_page" validate:"min=0"`
}

// Filter filtro de lotes correspondiente.
func (q OverviewQuery) Filter() entity.LotFilter {
	return entity.LotFilter{Query: q.Q, Lab: q.Lab, Category: q.Cat}
}

// LotDTO lote dentro del detalle de un producto.
type LotDTO struct {
	ID            int64           `json:"id"`
	StockCode     string          `json:"stock_code,omitempty"`
	Units         int64           `json:"units"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	ExpiryDate    *string         `json:"expiry_date"`
	DaysToExpiry  *int            `json:"days_to_expiry"`
}

// ProductSummaryDTO fila de la tabla de stock. Montos redondeados a 2 decimales.
type ProductSummaryDTO struct {
	ProductCode      string             `json:"product_code"`
	Name             string             `json:"name"`
	Concentration    string             `json:"concentration"`
	Lab              string             `json:"lab"`
	Category         string             `json:"category"`
	MinimumThreshold int64              `json:"minimum_threshold"`
	Status           entity.StockStatus `json:"status"`
	LevelPercent     int                `json:"level_percent"`

	TotalUnits      int64 `json:"total_units"`
	UnitsExpired    int64 `json:"units_expired"`
	UnitsAtRisk     int64 `json:"units_at_risk"`
	UnitsCurrent    int64 `json:"units_current"`
	MinDaysToExpiry *int  `json:"min_days_to_expiry"`
	LotCount        int   `json:"lot_count"`

	TotalCost            decimal.Decimal `json:"total_cost"`
	AvgUnitCost          decimal.Decimal `json:"avg_unit_cost"`
	SalePrice            decimal.Decimal `json:"sale_price"`
	SalePriceVaries      bool            `json:"sale_price_varies"`
	UnitMargin           decimal.Decimal `json:"unit_margin"`
	MarginPct            decimal.Decimal `json:"margin_pct"`
	TheoreticalSaleValue decimal.Decimal `json:"theoretical_sale_value"`
	PctAtRisk            decimal.Decimal `json:"pct_at_risk"`
}

// StockKPIsDTO indicadores del tablero.
type StockKPIsDTO struct {
	TotalProducts        int             `json:"total_products"`
	CriticalProducts     int             `json:"critical_products"`
	NearExpiryProducts   int             `json:"near_expiry_products"`
	ExpiredProducts      int             `json:"expired_products"`
	InventoryCostValue   decimal.Decimal `json:"inventory_cost_value"`
	InventorySaleValue   decimal.Decimal `json:"inventory_sale_value"`
	PotentialMargin      decimal.Decimal `json:"potential_margin"`
	PctStockAtRisk       decimal.Decimal `json:"pct_stock_at_risk"`
	TotalUnits           int64           `json:"total_units"`
	UnitsExpiredOrAtRisk int64           `json:"units_expired_or_at_risk"`
}

// StockPageDTO respuesta de GET /api/stock.
type StockPageDTO struct {
	Items          []ProductSummaryDTO `json:"items"`
	KPIs           StockKPIsDTO        `json:"kpis"`
	Page           PageResponse        `json:"page"`
	RiskWindowDays int                 `json:"risk_window_days"`
}

// TabDTO una pestaña paginada del tablero.
type TabDTO struct {
	Items []ProductSummaryDTO `json:"items"`
	Page  PageResponse        `json:"page"`
}

// StockOverviewDTO respuesta de GET /api/stock/overview (dataset completo).
type StockOverviewDTO struct {
	KPIs           StockKPIsDTO `json:"kpis"`
	Labs           []string     `json:"labs"`
	Categories     []string     `json:"categories"`
	Critical       TabDTO       `json:"critical"`
	NearExpiry     TabDTO       `json:"near_expiry"`
	Expired        TabDTO       `json:"expired"`
	AtRisk         TabDTO       `json:"at_risk"`
	RiskWindowDays int          `json:"risk_window_days"`
	GeneratedAt    time.Time    `json:"generated_at"`
}

// ProductDetailDTO respuesta de GET /api/stock/products/:code.
type ProductDetailDTO struct {
	Summary ProductSummaryDTO `json:"summary"`
	Lots    []LotDTO          `json:"lots"`
}

// SnapshotDTO fila del historial de KPIs.
type SnapshotDTO struct {
	ID        int64        `json:"id"`
	TakenOn   string       `json:"taken_on"`
	KPIs      StockKPIsDTO `json:"kpis"`
	CreatedAt time.Time    `json:"created_at"`
}

// SnapshotQuery rango de GET /api/stock/snapshots (YYYY-MM-DD).
type SnapshotQuery struct {
	From string `query:"from" validate:"omitempty,datetime=2006-01-02"`
	To   string `query:"to" validate:"omitempty,datetime=2006-01-02"`
}

// ── Mapeos ────────────────────────────────────────────────────────────────────

// FromSummary convierte el resumen de dominio a su forma de respuesta.
func FromSummary(p entity.ProductSummary) ProductSummaryDTO {
	return ProductSummaryDTO{
		ProductCode:          p.ProductCode,
		Name:                 p.Name,
		Concentration:        p.Concentration,
		Lab:                  p.Lab,
		Category:             p.Category,
		MinimumThreshold:     p.MinimumThreshold,
		Status:               stock.StatusOf(p),
		LevelPercent:         stock.LevelPercent(p),
		TotalUnits:           p.TotalUnits,
		UnitsExpired:         p.UnitsExpired,
		UnitsAtRisk:          p.UnitsAtRisk,
		UnitsCurrent:         p.UnitsCurrent,
		MinDaysToExpiry:      p.MinDaysToExpiry,
		LotCount:             p.LotCount,
		TotalCost:            p.TotalCost.Round(2),
		AvgUnitCost:          p.AvgUnitCost.Round(2),
		SalePrice:            p.SalePrice.Round(2),
		SalePriceVaries:      p.SalePriceVaries,
		UnitMargin:           p.UnitMargin.Round(2),
		MarginPct:            p.MarginPct.Round(2),
		TheoreticalSaleValue: p.TheoreticalSaleValue.Round(2),
		PctAtRisk:            p.PctAtRisk.Round(2),
	}
}

// FromSummaries mapea una lista; nunca devuelve nil.
func FromSummaries(items []entity.ProductSummary) []ProductSummaryDTO {
	out := make([]ProductSummaryDTO, 0, len(items))
	for _, p := range items {
		out = append(out, FromSummary(p))
	}
	return out
}

// FromKPIs convierte los indicadores redondeando montos.
func FromKPIs(k entity.StockKPIs) StockKPIsDTO {
	return StockKPIsDTO{
		TotalProducts:        k.TotalProducts,
		CriticalProducts:     k.CriticalProducts,
		NearExpiryProducts:   k.NearExpiryProducts,
		ExpiredProducts:      k.ExpiredProducts,
		InventoryCostValue:   k.InventoryCostValue.Round(2),
		InventorySaleValue:   k.InventorySaleValue.Round(2),
		PotentialMargin:      k.PotentialMargin.Round(2),
		PctStockAtRisk:       k.PctStockAtRisk.Round(2),
		TotalUnits:           k.TotalUnits,
		UnitsExpiredOrAtRisk: k.UnitsExpiredOrAtRisk,
	}
}

// FromLot convierte un lote; today fija los días al vencimiento.
func FromLot(l entity.Lot, today time.Time) LotDTO {
	out := LotDTO{
		ID:            l.ID,
		StockCode:     l.StockCode,
		Units:         l.Units,
		PurchasePrice: l.PurchasePrice,
		SalePrice:     l.SalePrice,
		DaysToExpiry:  stock.DaysUntil(l.ExpiryDate, today),
	}
	if l.ExpiryDate != nil {
		s := l.ExpiryDate.Format("2006-01-02")
		out.ExpiryDate = &s
	}
	return out
}

// FromPageInfo página calculada en memoria.
func FromPageInfo(p stock.PageInfo) PageResponse {
	return PageResponse{Page: p.Page, Size: p.Size, Total: p.Total, TotalPages: p.TotalPages}
}

// FromSnapshot fila del historial.
func FromSnapshot(s entity.StockSnapshot) SnapshotDTO {
	return SnapshotDTO{
		ID:        s.ID,
		TakenOn:   s.TakenOn.Format("2006-01-02"),
		KPIs:      FromKPIs(s.KPIs),
		CreatedAt: s.CreatedAt,
	}
}
