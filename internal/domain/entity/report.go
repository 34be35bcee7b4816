package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de los reportes que calcula el backend. El BFF solo los transporta.

// SalesSummary totales de ventas del período.
type SalesSummary struct {
	Sales          decimal.Decimal `json:"ventas"`
	Tickets        int64           `json:"tickets"`
	Units          int64           `json:"unidades"`
	AverageTicket  decimal.Decimal `json:"ticket_promedio"`
	UnitsPerTicket decimal.Decimal `json:"upt"`
}

// SalesByDay ventas agrupadas por día.
type SalesByDay struct {
	Date           string          `json:"fecha"`
	Tickets        int64           `json:"tickets"`
	Units          int64           `json:"unidades"`
	Sales          decimal.Decimal `json:"ventas"`
	AverageTicket  decimal.Decimal `json:"ticket_promedio"`
	UnitsPerTicket decimal.Decimal `json:"upt"`
}

// SalesByHour tickets y ventas por hora del día.
type SalesByHour struct {
	Hour    int             `json:"hora"`
	Tickets int64           `json:"tickets"`
	Sales   decimal.Decimal `json:"ventas"`
}

// TopProduct producto más vendido del período.
type TopProduct struct {
	ProductCode string          `json:"codigo_barras"`
	Name        string          `json:"nombre"`
	Category    *string         `json:"categoria"`
	Units       int64           `json:"unidades"`
	Sales       decimal.Decimal `json:"ventas"`
}

// PaymentMix tickets y total por método de pago.
type PaymentMix struct {
	Method  string          `json:"metodo_pago"`
	Tickets int64           `json:"tickets"`
	Total   decimal.Decimal `json:"total"`
}

// TopCustomer cliente con más compras.
type TopCustomer struct {
	DNI          *string         `json:"dni"`
	Name         *string         `json:"nombre"`
	Tickets      int64           `json:"tickets"`
	Units        int64           `json:"unidades"`
	Sales        decimal.Decimal `json:"ventas"`
	LastPurchase *string         `json:"ultima_compra"`
}

// CashSummary ingresos, egresos y neto de caja.
type CashSummary struct {
	Income  decimal.Decimal `json:"ingresos"`
	Expense decimal.Decimal `json:"egresos"`
	Net     decimal.Decimal `json:"neto"`
}

// InventoryProductFull fila del reporte de inventario completo.
type InventoryProductFull struct {
	ProductCode        string           `json:"codigo_barras"`
	UnitsPerBlister    *int64           `json:"cantidad_unidades_blister"`
	Active             *bool            `json:"activo"`
	GeneralQuantity    *int64           `json:"cantidad_general"`
	Category           *string          `json:"categoria"`
	Concentration      *string          `json:"concentracion"`
	Discount           *decimal.Decimal `json:"descuento"`
	UpdatedAt          *string          `json:"fecha_actualizacion"`
	CreatedAt          *string          `json:"fecha_creacion"`
	Lab                *string          `json:"laboratorio"`
	Name               string           `json:"nombre"`
	BlisterSalePrice   *decimal.Decimal `json:"precio_venta_blister"`
	UnitSalePrice      *decimal.Decimal `json:"precio_venta_und"`
	MinimumQuantity    *int64           `json:"cantidad_minima"`
	ActiveIngredient   *string          `json:"principio_activo"`
	MedicineType       *string          `json:"tipo_medicamento"`
	Presentation       *string          `json:"presentacion"`
	StockTotal         int64            `json:"stock_total"`
	Lots               int64            `json:"lotes"`
	ExpiredLots        int64            `json:"lotes_vencidos"`
	NextExpiry         *string          `json:"proximo_vencimiento"`
	TotalPurchaseValue *decimal.Decimal `json:"valor_compra_total"`
	AverageCost        *decimal.Decimal `json:"costo_promedio"`
}

// InventoryLot lote del reporte de inventario (detalle por producto).
type InventoryLot struct {
	LotID         int64            `json:"lote_id"`
	ProductCode   string           `json:"codigo_barras"`
	Units         int64            `json:"cantidad_unidades"`
	ExpiryDate    *string          `json:"fecha_vencimiento"`
	PurchasePrice *decimal.Decimal `json:"precio_compra"`
	Status        string           `json:"estado"`
}

// SaleItem línea de una boleta.
type SaleItem struct {
	ProductCode string          `json:"codBarras"`
	Name        string          `json:"nombre"`
	Quantity    int64           `json:"cantidad"`
	Price       decimal.Decimal `json:"precio"`
}

// Boleta comprobante de venta.
type Boleta struct {
	ID            int64            `json:"id"`
	Number        string           `json:"numero"`
	Date          string           `json:"fecha"`
	Customer      *string          `json:"cliente"`
	PaymentMethod *string          `json:"metodoPago"`
	PurchaseTotal *decimal.Decimal `json:"totalCompra,omitempty"`
	Total         *decimal.Decimal `json:"total,omitempty"`
	Change        *decimal.Decimal `json:"vuelto,omitempty"`
	User          *string          `json:"usuario"`
	Products      []SaleItem       `json:"productos"`
}

// Page página genérica normalizada.
type Page[T any] struct {
	Content       []T `json:"content"`
	TotalElements int `json:"totalElements"`
	Page          int `json:"page"`
	Size          int `json:"size"`
	TotalPages    int `json:"totalPages"`
}

// StockSnapshot KPIs de stock registrados en una fecha (historial).
type StockSnapshot struct {
	ID        int64
	TakenOn   time.Time // fecha calendario del snapshot
	KPIs      StockKPIs
	CreatedAt time.Time
}
