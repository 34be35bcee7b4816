package repository

import (
	"context"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// LotRepository define el puerto para listar lotes del backend.
// token es el Bearer del usuario; el backend decide si tiene acceso.
type LotRepository interface {
	// ListLots devuelve una página (page 0-based) filtrada por el backend.
	ListLots(ctx context.Context, token string, filter entity.LotFilter, page, size int) (*entity.LotPage, error)
}
