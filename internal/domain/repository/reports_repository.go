package repository

import (
	"context"
	"encoding/json"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// ReportsRepository consultas de reportes que calcula el backend (solo lectura).
type ReportsRepository interface {
	SalesSummary(ctx context.Context, token string, r entity.DateRange) (*entity.SalesSummary, error)
	SalesByDay(ctx context.Context, token string, r entity.DateRange) ([]entity.SalesByDay, error)
	SalesByHour(ctx context.Context, token string, r entity.DateRange) ([]entity.SalesByHour, error)
	TopProducts(ctx context.Context, token string, r entity.DateRange, limit int) ([]entity.TopProduct, error)
	PaymentMix(ctx context.Context, token string, r entity.DateRange) ([]entity.PaymentMix, error)
	CashSummary(ctx context.Context, token string, r entity.DateRange) (*entity.CashSummary, error)
	TopCustomers(ctx context.Context, token string, q entity.CustomerQuery) ([]entity.TopCustomer, error)

	InventoryFull(ctx context.Context, token string, q entity.InventoryQuery) (*entity.Page[entity.InventoryProductFull], error)
	InventoryLots(ctx context.Context, token, productCode string) ([]entity.InventoryLot, error)

	Boletas(ctx context.Context, token string, q entity.BoletaQuery) (*entity.Page[entity.Boleta], error)
	BoletaByID(ctx context.Context, token string, id int64) (*entity.Boleta, error)
}

// ExportRepository descargas de archivos que genera el backend.
type ExportRepository interface {
	ExportInventoryFull(ctx context.Context, token string, q entity.InventoryQuery) (*entity.Download, error)
	ExportInventory(ctx context.Context, token string, scope entity.InventoryExportScope, days int) (*entity.Download, error)
	ExportInventoryProfessional(ctx context.Context, token string, q entity.InventoryQuery) (*entity.Download, error)
	ExportCustomers(ctx context.Context, token string, r *entity.DateRange) (*entity.Download, error)
	ExportSales(ctx context.Context, token string, r entity.DateRange, groupBy string) (*entity.Download, error)
}

// SessionVerifier confirma con el backend que el token sigue vigente.
type SessionVerifier interface {
	VerifySession(ctx context.Context, token string) error
}

// SessionRepository inicio de sesión contra el backend. La respuesta se reenvía tal cual.
type SessionRepository interface {
	Login(ctx context.Context, dni, password string) (json.RawMessage, error)
}
