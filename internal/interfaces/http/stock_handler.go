package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/botica-stock/internal/application/dto"
	appstock "github.com/jhoicas/botica-stock/internal/application/stock"
	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// StockHandler endpoints del tablero de stock.
type StockHandler struct {
	uc *appstock.UseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *appstock.UseCase) *StockHandler {
	return &StockHandler{uc: uc}
}

// List godoc
// @Summary      Página de stock agrupada por producto
// @Tags         stock
// @Produce      json
// @Param        q     query  string  false  "búsqueda por nombre o código"
// @Param        lab   query  string  false  "laboratorio"
// @Param        cat   query  string  false  "categoría"
// @Param        page  query  int     false  "página (1-based)"
// @Param        size  query  int     false  "lotes por página"
// @Success      200   {object}  dto.StockPageDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock [get]
func (h *StockHandler) List(c *fiber.Ctx) error {
	var q dto.StockQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.ListPage(c.Context(), GetToken(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Overview godoc
// @Summary      Indicadores y pestañas sobre el inventario completo
// @Tags         stock
// @Produce      json
// @Param        q                 query  string  false  "búsqueda"
// @Param        lab               query  string  false  "laboratorio"
// @Param        cat               query  string  false  "categoría"
// @Param        size              query  int     false  "filas por pestaña"
// @Param        critical_page     query  int     false  "página de críticos"
// @Param        near_expiry_page  query  int     false  "página de próximos a vencer"
// @Param        expired_page      query  int     false  "página de vencidos"
// @Param        at_risk_page      query  int     false  "página en riesgo"
// @Success      200   {object}  dto.StockOverviewDTO
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      502   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock/overview [get]
func (h *StockHandler) Overview(c *fiber.Ctx) error {
	var q dto.OverviewQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.Overview(c.Context(), GetToken(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Product godoc
// @Summary      Detalle de un producto con sus lotes
// @Tags         stock
// @Produce      json
// @Param        code  path  string  true  "código de barras"
// @Success      200   {object}  dto.ProductDetailDTO
// @Failure      404   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock/products/{code} [get]
func (h *StockHandler) Product(c *fiber.Ctx) error {
	out, err := h.uc.ProductDetail(c.Context(), GetToken(c), utils.CopyString(c.Params("code")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Descargar el resumen de stock
// @Tags         stock
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Produce      application/pdf
// @Param        format  query  string  false  "xlsx (por defecto) o pdf"
// @Param        q       query  string  false  "búsqueda"
// @Param        lab     query  string  false  "laboratorio"
// @Param        cat     query  string  false  "categoría"
// @Success      200
// @Failure      400   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock/export [get]
func (h *StockHandler) Export(c *fiber.Ctx) error {
	var q dto.StockQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	file, err := h.uc.Export(c.Context(), GetToken(c), q.Filter(), utils.CopyString(c.Query("format")))
	if err != nil {
		return writeError(c, err)
	}
	return sendDownload(c, file)
}

// Refresh godoc
// @Summary      Vaciar la caché de lotes
// @Tags         stock
// @Success      204
// @Failure      401   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock/refresh [post]
func (h *StockHandler) Refresh(c *fiber.Ctx) error {
	if err := h.uc.Invalidate(c.Context(), GetToken(c)); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// RecordSnapshot godoc
// @Summary      Guardar los indicadores de hoy
// @Tags         stock
// @Produce      json
// @Success      201   {object}  dto.SnapshotDTO
// @Failure      501   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock/snapshots [post]
func (h *StockHandler) RecordSnapshot(c *fiber.Ctx) error {
	out, err := h.uc.RecordSnapshot(c.Context(), GetToken(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSnapshots godoc
// @Summary      Historial de indicadores
// @Tags         stock
// @Produce      json
// @Param        from  query  string  false  "YYYY-MM-DD"
// @Param        to    query  string  false  "YYYY-MM-DD"
// @Success      200   {array}   dto.SnapshotDTO
// @Failure      501   {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/stock/snapshots [get]
func (h *StockHandler) ListSnapshots(c *fiber.Ctx) error {
	var q dto.SnapshotQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.ListSnapshots(c.Context(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// sendDownload responde un archivo como adjunto.
func sendDownload(c *fiber.Ctx, file *entity.Download) error {
	c.Attachment(file.Filename)
	if file.ContentType != "" {
		c.Set(fiber.HeaderContentType, file.ContentType)
	}
	return c.Send(file.Body)
}
