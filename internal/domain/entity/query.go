package entity

import "time"

// DateRange rango de fechas de un reporte (inclusivo).
type DateRange struct {
	From time.Time
	To   time.Time
}

// DefaultDateRange últimos 7 días: desde hace 6 días a las 00:00 hasta hoy 23:59:59.999.
func DefaultDateRange(now time.Time) DateRange {
	y, m, d := now.Date()
	start := time.Date(y, m, d, 0, 0, 0, 0, now.Location()).AddDate(0, 0, -6)
	end := time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), now.Location())
	return DateRange{From: start, To: end}
}

// InventoryQuery parámetros del reporte de inventario completo.
type InventoryQuery struct {
	Search   string
	Category string
	Active   *bool
	Page     int // 0-based
	Size     int
	Sort     string
	Dir      string // asc | desc
}

// CustomerQuery parámetros del ranking de clientes.
type CustomerQuery struct {
	Range  *DateRange
	Limit  int
	SortBy string // ventas | tickets
}

// BoletaQuery parámetros del listado de boletas (página 1-based como la vista).
type BoletaQuery struct {
	Page   int
	Size   int
	Search string
	From   string
	To     string
}

// InventoryExportScope alcance del export de inventario del backend.
type InventoryExportScope string

const (
	ExportScopeAll        InventoryExportScope = "all"
	ExportScopeLow        InventoryExportScope = "low"
	ExportScopeNearExpiry InventoryExportScope = "near-expiry"
	ExportScopeOutOfStock InventoryExportScope = "out-of-stock"
)

// Valid indica si el alcance es uno de los conocidos.
func (s InventoryExportScope) Valid() bool {
	switch s {
	case ExportScopeAll, ExportScopeLow, ExportScopeNearExpiry, ExportScopeOutOfStock:
		return true
	}
	return false
}

// Download archivo binario devuelto por el backend o generado por el BFF.
type Download struct {
	Filename    string
	ContentType string
	Body        []byte
}
