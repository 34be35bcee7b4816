package repository

import (
	"context"
	"time"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// SnapshotRepository historial de KPIs de stock (uno por día calendario).
type SnapshotRepository interface {
	// Upsert guarda el snapshot del día; si ya existe lo reemplaza.
	Upsert(ctx context.Context, snap *entity.StockSnapshot) error
	// ListBetween devuelve los snapshots con TakenOn en [from, to], ordenados por fecha.
	ListBetween(ctx context.Context, from, to time.Time) ([]entity.StockSnapshot, error)
}
