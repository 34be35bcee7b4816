package cache

import (
	"context"
	"time"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
)

var _ repository.LotCache = Noop{}

// Noop caché deshabilitada (CACHE_DRIVER=none): nunca acierta.
type Noop struct{}

func (Noop) GetLots(context.Context, string) ([]entity.Lot, bool, error) { return nil, false, nil }
func (Noop) SetLots(context.Context, string, []entity.Lot, time.Duration) error {
	return nil
}
func (Noop) GetProductLots(context.Context, string) ([]entity.InventoryLot, bool, error) {
	return nil, false, nil
}
func (Noop) SetProductLots(context.Context, string, []entity.InventoryLot, time.Duration) error {
	return nil
}
func (Noop) Invalidate(context.Context) error { return nil }
