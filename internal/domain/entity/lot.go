package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot representa un lote de un producto tal como lo devuelve el backend (snapshot inmutable).
// MinimumThreshold es un dato del producto que el backend repite en cada lote.
type Lot struct {
	ID               int64
	StockCode        string
	ProductCode      string // código de barras, clave de agrupación
	Name             string
	Concentration    string
	Units            int64
	MinimumThreshold int64
	PurchasePrice    decimal.Decimal // precio de compra por unidad
	SalePrice        decimal.Decimal // precio de venta por unidad
	ExpiryDate       *time.Time      // nil = sin fecha de vencimiento
	Lab              string
	Category         string
}

// LotFilter filtros que el backend aplica al listado de lotes.
type LotFilter struct {
	Query    string
	Lab      string
	Category string
}

// Key devuelve una clave estable para cachear el resultado del filtro.
func (f LotFilter) Key() string {
	return "q=" + f.Query + "|lab=" + f.Lab + "|cat=" + f.Category
}

// LotPage una página del listado de lotes.
type LotPage struct {
	Lots          []Lot
	TotalElements int
	Page          int // 0-based, como el backend
	Size          int
	TotalPages    int
}
