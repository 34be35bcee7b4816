package entity

import "github.com/shopspring/decimal"

// StockStatus estado de stock de un producto respecto a su cantidad mínima.
type StockStatus string

const (
	StockOutOfStock StockStatus = "AGOTADO"
	StockCritical   StockStatus = "CRITICO"
	StockLow        StockStatus = "BAJO"
	StockNormal     StockStatus = "NORMAL"
)

// ProductSummary vista agregada de todos los lotes con el mismo código de producto.
// Se deriva en cada carga; nunca se persiste.
//
// Invariante: UnitsExpired + UnitsAtRisk + UnitsCurrent == TotalUnits.
type ProductSummary struct {
	ProductCode      string
	Name             string
	Concentration    string
	Lab              string
	Category         string
	MinimumThreshold int64

	TotalUnits   int64
	UnitsExpired int64
	UnitsAtRisk  int64 // vencen dentro de la ventana de riesgo
	UnitsCurrent int64

	MinDaysToExpiry *int // nil si ningún lote tiene fecha de vencimiento
	LotCount        int

	TotalCost            decimal.Decimal
	AvgUnitCost          decimal.Decimal
	SalePrice            decimal.Decimal // precio del primer lote del grupo
	SalePriceVaries      bool            // algún lote del grupo tiene otro precio de venta
	UnitMargin           decimal.Decimal
	MarginPct            decimal.Decimal
	TheoreticalSaleValue decimal.Decimal
	PctAtRisk            decimal.Decimal

	Lots []Lot
}

// StockKPIs indicadores del tablero de stock sobre un conjunto de resúmenes.
type StockKPIs struct {
	TotalProducts        int
	CriticalProducts     int
	NearExpiryProducts   int
	ExpiredProducts      int
	InventoryCostValue   decimal.Decimal
	InventorySaleValue   decimal.Decimal
	PotentialMargin      decimal.Decimal
	PctStockAtRisk       decimal.Decimal
	TotalUnits           int64
	UnitsExpiredOrAtRisk int64
}
