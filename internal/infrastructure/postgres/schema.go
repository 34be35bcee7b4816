package postgres

import (
	"context"
	"fmt"
)

// snapshotSchema tabla del historial de KPIs. Idempotente.
const snapshotSchema = `
CREATE TABLE IF NOT EXISTS stock_snapshots (
	id                       BIGSERIAL PRIMARY KEY,
	taken_on                 DATE           NOT NULL UNIQUE,
	total_products           INTEGER        NOT NULL,
	critical_products        INTEGER        NOT NULL,
	near_expiry_products     INTEGER        NOT NULL,
	expired_products         INTEGER        NOT NULL,
	inventory_cost_value     NUMERIC(16, 4) NOT NULL,
	inventory_sale_value     NUMERIC(16, 4) NOT NULL,
	potential_margin         NUMERIC(16, 4) NOT NULL,
	pct_stock_at_risk        NUMERIC(9, 4)  NOT NULL,
	total_units              BIGINT         NOT NULL,
	units_expired_or_at_risk BIGINT         NOT NULL,
	created_at               TIMESTAMPTZ    NOT NULL DEFAULT now()
)`

// EnsureSchema crea las tablas que necesita el servicio si no existen.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, snapshotSchema); err != nil {
		return fmt.Errorf("crear tabla stock_snapshots: %w", err)
	}
	return nil
}
