package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/botica-stock/internal/application/auth"
	"github.com/jhoicas/botica-stock/internal/application/reports"
	appstock "github.com/jhoicas/botica-stock/internal/application/stock"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	StockUC   *appstock.UseCase
	ReportsUC *reports.UseCase
	JWTSecret string
	AdminRole string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Stock
	stockGroup := protected.Group("/stock")
	stockHandler := NewStockHandler(deps.StockUC)
	stockGroup.Get("/", stockHandler.List)
	stockGroup.Get("/overview", stockHandler.Overview)
	stockGroup.Get("/products/:code", stockHandler.Product)
	stockGroup.Get("/export", stockHandler.Export)
	stockGroup.Post("/refresh", stockHandler.Refresh)
	stockGroup.Post("/snapshots", stockHandler.RecordSnapshot)
	stockGroup.Get("/snapshots", stockHandler.ListSnapshots)

	// Reportes (solo administradores)
	adminRole := deps.AdminRole
	if adminRole == "" {
		adminRole = "ADMIN"
	}
	reportsGroup := protected.Group("/reports", RequireRole(adminRole))
	reportsHandler := NewReportsHandler(deps.ReportsUC)
	reportsGroup.Get("/dashboard", reportsHandler.Dashboard)
	reportsGroup.Get("/sales/summary", reportsHandler.SalesSummary)
	reportsGroup.Get("/caja/summary", reportsHandler.CashSummary)
	reportsGroup.Get("/customers/top", reportsHandler.TopCustomers)
	reportsGroup.Get("/inventory/full", reportsHandler.InventoryFull)
	reportsGroup.Get("/inventory/lots", reportsHandler.InventoryLots)

	exports := reportsGroup.Group("/exports")
	exports.Get("/inventory-full", reportsHandler.ExportInventoryFull)
	exports.Get("/inventory", reportsHandler.ExportInventory)
	exports.Get("/inventory-professional", reportsHandler.ExportInventoryProfessional)
	exports.Get("/customers", reportsHandler.ExportCustomers)
	exports.Get("/sales", reportsHandler.ExportSales)

	// Boletas
	boletas := protected.Group("/boletas")
	boletasHandler := NewBoletasHandler(deps.ReportsUC)
	boletas.Get("/", boletasHandler.List)
	boletas.Get("/:id", boletasHandler.GetByID)
}
