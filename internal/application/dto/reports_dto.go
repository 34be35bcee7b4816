package dto

import (
	"time"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// RangeQuery rango de fechas opcional en query string (RFC 3339 o YYYY-MM-DD).
type RangeQuery struct {
	From string `query:"from" validate:"omitempty,max=40"`
	To   string `query:"to" validate:"omitempty,max=40"`
}

// DashboardDTO respuesta de GET /api/reports/dashboard.
// Una consulta fallida deja su sección en cero y agrega un aviso en Warnings.
type DashboardDTO struct {
	From        time.Time            `json:"from"`
	To          time.Time            `json:"to"`
	Summary     entity.SalesSummary  `json:"summary"`
	ByDay       []entity.SalesByDay  `json:"by_day"`
	TopProducts []entity.TopProduct  `json:"top_products"`
	PaymentMix  []entity.PaymentMix  `json:"payment_mix"`
	ByHour      []entity.SalesByHour `json:"by_hour"`
	Cash        entity.CashSummary   `json:"cash"`
	Warnings    []string             `json:"warnings"`
}

// CustomersQuery parámetros de GET /api/reports/customers/top.
type CustomersQuery struct {
	From   string `query:"from" validate:"omitempty,max=40"`
	To     string `query:"to" validate:"omitempty,max=40"`
	Limit  int    `query:"limit" validate:"min=0,max=200"`
	SortBy string `query:"sortBy" validate:"omitempty,oneof=ventas tickets"`
}

// InventoryFullQuery parámetros de GET /api/reports/inventory/full (page 0-based).
type InventoryFullQuery struct {
	Search    string `query:"search" validate:"max=100"`
	Categoria string `query:"categoria" validate:"max=100"`
	Activo    string `query:"activo" validate:"omitempty,oneof=true false"`
	Page      int    `query:"page" validate:"min=0"`
	Size      int    `query:"size" validate:"min=0,max=500"`
	Sort      string `query:"sort" validate:"max=50"`
	Dir       string `query:"dir" validate:"omitempty,oneof=asc desc"`
}

// BoletasQuery parámetros de GET /api/boletas (page 1-based).
type BoletasQuery struct {
	Page   int    `query:"page" validate:"min=0"`
	Limit  int    `query:"limit" validate:"min=0,max=200"`
	Search string `query:"search" validate:"max=100"`
	From   string `query:"from" validate:"omitempty,max=40"`
	To     string `query:"to" validate:"omitempty,max=40"`
}

// InventoryExportQuery parámetros de GET /api/reports/exports/inventory.
type InventoryExportQuery struct {
	Scope string `query:"scope" validate:"omitempty,oneof=all low near-expiry out-of-stock"`
	Days  int    `query:"days" validate:"min=0,max=3650"`
}

// SalesExportQuery parámetros de GET /api/reports/exports/sales.
type SalesExportQuery struct {
	From    string `query:"from" validate:"omitempty,max=40"`
	To      string `query:"to" validate:"omitempty,max=40"`
	GroupBy string `query:"group_by" validate:"omitempty,oneof=day product"`
}
