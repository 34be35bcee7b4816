package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/botica-stock/internal/domain"
	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
)

var _ repository.SnapshotRepository = (*SnapshotRepo)(nil)

// SnapshotRepo historial de KPIs de stock sobre PostgreSQL.
type SnapshotRepo struct {
	q Querier
}

// NewSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSnapshotRepository(q Querier) *SnapshotRepo {
	return &SnapshotRepo{q: q}
}

// Upsert guarda el snapshot del día; un segundo registro el mismo día lo reemplaza.
// Completa ID y CreatedAt en snap.
func (r *SnapshotRepo) Upsert(ctx context.Context, snap *entity.StockSnapshot) error {
	if snap == nil {
		return fmt.Errorf("%w: snapshot nil", domain.ErrInvalidInput)
	}
	k := snap.KPIs
	query := `
		INSERT INTO stock_snapshots (
			taken_on, total_products, critical_products, near_expiry_products, expired_products,
			inventory_cost_value, inventory_sale_value, potential_margin, pct_stock_at_risk,
			total_units, units_expired_or_at_risk, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, now())
		ON CONFLICT (taken_on) DO UPDATE SET
			total_products = EXCLUDED.total_products,
			critical_products = EXCLUDED.critical_products,
			near_expiry_products = EXCLUDED.near_expiry_products,
			expired_products = EXCLUDED.expired_products,
			inventory_cost_value = EXCLUDED.inventory_cost_value,
			inventory_sale_value = EXCLUDED.inventory_sale_value,
			potential_margin = EXCLUDED.potential_margin,
			pct_stock_at_risk = EXCLUDED.pct_stock_at_risk,
			total_units = EXCLUDED.total_units,
			units_expired_or_at_risk = EXCLUDED.units_expired_or_at_risk,
			created_at = now()
		RETURNING id, created_at`
	err := r.q.QueryRow(ctx, query,
		dateOnly(snap.TakenOn), k.TotalProducts, k.CriticalProducts, k.NearExpiryProducts, k.ExpiredProducts,
		k.InventoryCostValue, k.InventorySaleValue, k.PotentialMargin, k.PctStockAtRisk,
		k.TotalUnits, k.UnitsExpiredOrAtRisk,
	).Scan(&snap.ID, &snap.CreatedAt)
	if err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// ListBetween snapshots con taken_on en [from, to] ordenados por fecha.
func (r *SnapshotRepo) ListBetween(ctx context.Context, from, to time.Time) ([]entity.StockSnapshot, error) {
	query := `
		SELECT id, taken_on, total_products, critical_products, near_expiry_products, expired_products,
		       inventory_cost_value, inventory_sale_value, potential_margin, pct_stock_at_risk,
		       total_units, units_expired_or_at_risk, created_at
		FROM stock_snapshots
		WHERE taken_on BETWEEN $1 AND $2
		ORDER BY taken_on`
	rows, err := r.q.Query(ctx, query, dateOnly(from), dateOnly(to))
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	out := []entity.StockSnapshot{}
	for rows.Next() {
		var s entity.StockSnapshot
		var cost, sale, margin, pct decimal.Decimal
		if err := rows.Scan(
			&s.ID, &s.TakenOn,
			&s.KPIs.TotalProducts, &s.KPIs.CriticalProducts, &s.KPIs.NearExpiryProducts, &s.KPIs.ExpiredProducts,
			&cost, &sale, &margin, &pct,
			&s.KPIs.TotalUnits, &s.KPIs.UnitsExpiredOrAtRisk, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		s.KPIs.InventoryCostValue = cost
		s.KPIs.InventorySaleValue = sale
		s.KPIs.PotentialMargin = margin
		s.KPIs.PctStockAtRisk = pct
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterar snapshots: %w", err)
	}
	return out, nil
}

// dateOnly la fecha calendario en su propia zona, como medianoche UTC para la columna DATE.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
