package repository

import (
	"context"
	"time"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// LotCache caché explícita de lotes ya descargados. Se inyecta en el caso de uso;
// nunca es un estado global del paquete.
//
// Un fallo de la caché no debe impedir responder: los llamadores lo registran y siguen.
type LotCache interface {
	// GetLots devuelve el conjunto completo de lotes de un filtro, si está vigente.
	GetLots(ctx context.Context, filterKey string) ([]entity.Lot, bool, error)
	SetLots(ctx context.Context, filterKey string, lots []entity.Lot, ttl time.Duration) error

	// GetProductLots devuelve los lotes del reporte de inventario de un producto.
	GetProductLots(ctx context.Context, productCode string) ([]entity.InventoryLot, bool, error)
	SetProductLots(ctx context.Context, productCode string, lots []entity.InventoryLot, ttl time.Duration) error

	// Invalidate borra todas las entradas.
	Invalidate(ctx context.Context) error
}
