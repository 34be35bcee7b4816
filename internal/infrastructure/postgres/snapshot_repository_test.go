package postgres

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/pkg/config"
)

func TestDateOnly(t *testing.T) {
	lima := time.FixedZone("PET", -5*3600)
	late := time.Date(2026, 10, 18, 23, 30, 0, 0, lima)
	assert.Equal(t, time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC), dateOnly(late))
}

// Requiere TEST_DATABASE_URL; sin ella se omite.
func TestSnapshotRepo_UpsertYListBetween(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definida")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer func() { _ = tx.Rollback(ctx) }()

	require.NoError(t, EnsureSchema(ctx, tx))
	repo := NewSnapshotRepository(tx)

	day := time.Date(2031, 1, 15, 0, 0, 0, 0, time.UTC)
	snap := &entity.StockSnapshot{TakenOn: day, KPIs: entity.StockKPIs{
		TotalProducts:      3,
		InventoryCostValue: decimal.RequireFromString("242.50"),
		PctStockAtRisk:     decimal.RequireFromString("36.6197"),
		TotalUnits:         71,
	}}
	require.NoError(t, repo.Upsert(ctx, snap))
	firstID := snap.ID
	assert.NotZero(t, firstID)

	snap.KPIs.TotalProducts = 4
	require.NoError(t, repo.Upsert(ctx, snap))
	assert.Equal(t, firstID, snap.ID, "mismo día reemplaza la fila")

	got, err := repo.ListBetween(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, 4, got[0].KPIs.TotalProducts)
	assert.True(t, got[0].KPIs.InventoryCostValue.Equal(decimal.RequireFromString("242.5")))
	assert.Equal(t, int64(71), got[0].KPIs.TotalUnits)
}
