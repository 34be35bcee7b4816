package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/botica-stock/internal/application/dto"
	"github.com/jhoicas/botica-stock/internal/application/reports"
)

// ReportsHandler endpoints de reportes y exportaciones del backend.
type ReportsHandler struct {
	uc *reports.UseCase
}

// NewReportsHandler construye el handler.
func NewReportsHandler(uc *reports.UseCase) *ReportsHandler {
	return &ReportsHandler{uc: uc}
}

// Dashboard godoc
// @Summary      Tablero de ventas del período
// @Description  Combina resumen, ventas por día y hora, top productos, métodos de pago y caja.
// @Description  Una sección que falla queda vacía y se informa en warnings.
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "RFC 3339 o YYYY-MM-DD (por defecto hace 6 días)"
// @Param        to    query  string  false  "RFC 3339 o YYYY-MM-DD (por defecto hoy)"
// @Success      200   {object}  dto.DashboardDTO
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/dashboard [get]
func (h *ReportsHandler) Dashboard(c *fiber.Ctx) error {
	var q dto.RangeQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	r, err := h.uc.ResolveRange(q.From, q.To)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Dashboard(c.Context(), GetToken(c), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// SalesSummary godoc
// @Summary      Totales de ventas
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "inicio"
// @Param        to    query  string  false  "fin"
// @Success      200   {object}  entity.SalesSummary
// @Security     BearerAuth
// @Router       /api/reports/sales/summary [get]
func (h *ReportsHandler) SalesSummary(c *fiber.Ctx) error {
	var q dto.RangeQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	r, err := h.uc.ResolveRange(q.From, q.To)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.SalesSummary(c.Context(), GetToken(c), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// CashSummary godoc
// @Summary      Ingresos y egresos de caja
// @Tags         reports
// @Produce      json
// @Param        from  query  string  false  "inicio"
// @Param        to    query  string  false  "fin"
// @Success      200   {object}  entity.CashSummary
// @Security     BearerAuth
// @Router       /api/reports/caja/summary [get]
func (h *ReportsHandler) CashSummary(c *fiber.Ctx) error {
	var q dto.RangeQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	r, err := h.uc.ResolveRange(q.From, q.To)
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CashSummary(c.Context(), GetToken(c), r)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// TopCustomers godoc
// @Summary      Ranking de clientes
// @Tags         reports
// @Produce      json
// @Param        from    query  string  false  "inicio (sin fechas: histórico)"
// @Param        to      query  string  false  "fin"
// @Param        limit   query  int     false  "por defecto 20"
// @Param        sortBy  query  string  false  "ventas | tickets"
// @Success      200     {array}  entity.TopCustomer
// @Security     BearerAuth
// @Router       /api/reports/customers/top [get]
func (h *ReportsHandler) TopCustomers(c *fiber.Ctx) error {
	var q dto.CustomersQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.TopCustomers(c.Context(), GetToken(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// InventoryFull godoc
// @Summary      Inventario completo paginado
// @Tags         reports
// @Produce      json
// @Param        search     query  string  false  "búsqueda"
// @Param        categoria  query  string  false  "categoría"
// @Param        activo     query  string  false  "true | false"
// @Param        page       query  int     false  "página (0-based)"
// @Param        size       query  int     false  "por defecto 50"
// @Param        sort       query  string  false  "campo de orden"
// @Param        dir        query  string  false  "asc | desc"
// @Success      200  {object}  entity.Page[entity.InventoryProductFull]
// @Security     BearerAuth
// @Router       /api/reports/inventory/full [get]
func (h *ReportsHandler) InventoryFull(c *fiber.Ctx) error {
	var q dto.InventoryFullQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.InventoryFull(c.Context(), GetToken(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// InventoryLots godoc
// @Summary      Lotes de un producto
// @Tags         reports
// @Produce      json
// @Param        codigo_barras  query  string  true  "código de barras"
// @Success      200  {array}   entity.InventoryLot
// @Failure      400  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/inventory/lots [get]
func (h *ReportsHandler) InventoryLots(c *fiber.Ctx) error {
	out, err := h.uc.InventoryLots(c.Context(), GetToken(c), utils.CopyString(c.Query("codigo_barras")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ── Exportaciones ─────────────────────────────────────────────────────────────

// ExportInventoryFull godoc
// @Summary      Excel del inventario completo
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search     query  string  false  "búsqueda"
// @Param        categoria  query  string  false  "categoría"
// @Param        activo     query  string  false  "true | false"
// @Success      200
// @Security     BearerAuth
// @Router       /api/reports/exports/inventory-full [get]
func (h *ReportsHandler) ExportInventoryFull(c *fiber.Ctx) error {
	var q dto.InventoryFullQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	file, err := h.uc.ExportInventoryFull(c.Context(), GetToken(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, file)
}

// ExportInventory godoc
// @Summary      Excel de inventario por alcance
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        scope  query  string  false  "all | low | near-expiry | out-of-stock"
// @Param        days   query  int     false  "solo near-expiry; por defecto 30"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/exports/inventory [get]
func (h *ReportsHandler) ExportInventory(c *fiber.Ctx) error {
	var q dto.InventoryExportQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	file, err := h.uc.ExportInventory(c.Context(), GetToken(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, file)
}

// ExportInventoryProfessional godoc
// @Summary      Excel profesional de inventario
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        search     query  string  false  "búsqueda"
// @Param        categoria  query  string  false  "categoría"
// @Param        activo     query  string  false  "true | false"
// @Success      200
// @Security     BearerAuth
// @Router       /api/reports/exports/inventory-professional [get]
func (h *ReportsHandler) ExportInventoryProfessional(c *fiber.Ctx) error {
	var q dto.InventoryFullQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	file, err := h.uc.ExportInventoryProfessional(c.Context(), GetToken(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, file)
}

// ExportCustomers godoc
// @Summary      Excel del ranking de clientes
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from  query  string  false  "inicio (sin fechas: histórico)"
// @Param        to    query  string  false  "fin"
// @Success      200
// @Security     BearerAuth
// @Router       /api/reports/exports/customers [get]
func (h *ReportsHandler) ExportCustomers(c *fiber.Ctx) error {
	var q dto.RangeQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	file, err := h.uc.ExportCustomers(c.Context(), GetToken(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, file)
}

// ExportSales godoc
// @Summary      Excel de ventas
// @Tags         exports
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        from      query  string  false  "inicio"
// @Param        to        query  string  false  "fin"
// @Param        group_by  query  string  false  "day | product"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/reports/exports/sales [get]
func (h *ReportsHandler) ExportSales(c *fiber.Ctx) error {
	var q dto.SalesExportQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	file, err := h.uc.ExportSales(c.Context(), GetToken(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, file)
}
