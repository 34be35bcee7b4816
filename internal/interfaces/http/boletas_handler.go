package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/botica-stock/internal/application/dto"
	"github.com/jhoicas/botica-stock/internal/application/reports"
)

// BoletasHandler consulta de boletas emitidas.
type BoletasHandler struct {
	uc *reports.UseCase
}

// NewBoletasHandler construye el handler.
func NewBoletasHandler(uc *reports.UseCase) *BoletasHandler {
	return &BoletasHandler{uc: uc}
}

// List godoc
// @Summary      Listar boletas
// @Tags         boletas
// @Produce      json
// @Param        page    query  int     false  "página (1-based)"
// @Param        limit   query  int     false  "por defecto 10"
// @Param        search  query  string  false  "número o cliente"
// @Param        from    query  string  false  "inicio"
// @Param        to      query  string  false  "fin"
// @Success      200     {object}  entity.Page[entity.Boleta]
// @Failure      401     {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/boletas [get]
func (h *BoletasHandler) List(c *fiber.Ctx) error {
	var q dto.BoletasQuery
	if ok, err := bindQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.Boletas(c.Context(), GetToken(c), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de una boleta
// @Tags         boletas
// @Produce      json
// @Param        id   path  int  true  "id de la boleta"
// @Success      200  {object}  entity.Boleta
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Security     BearerAuth
// @Router       /api/boletas/{id} [get]
func (h *BoletasHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.BoletaByID(c.Context(), GetToken(c), utils.CopyString(c.Params("id")))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
