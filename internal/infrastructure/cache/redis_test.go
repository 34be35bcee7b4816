package cache

import (
	"context"
	"os"
	"testing"
	"time"

	redis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// Requiere un Redis real: TEST_REDIS_ADDR=localhost:6379 go test ./internal/infrastructure/cache/...
func newTestRedis(t *testing.T) *RedisCache {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR no definido")
	}
	client := redis.NewClient(&redis.Options{Addr: addr, DB: 15})
	require.NoError(t, client.Ping(context.Background()).Err())
	c := NewRedisCacheWithClient(client)
	t.Cleanup(func() {
		_ = c.Invalidate(context.Background())
		_ = c.Close()
	})
	return c
}

func TestRedisCache_LotesIdaYVuelta(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	_, ok, err := c.GetLots(ctx, "q=|lab=|cat=")
	require.NoError(t, err)
	assert.False(t, ok)

	exp := time.Date(2027, 1, 31, 0, 0, 0, 0, time.UTC)
	lots := []entity.Lot{
		{ID: 1, ProductCode: "7751", Units: 5, PurchasePrice: decimal.RequireFromString("2.50"), ExpiryDate: &exp},
		{ID: 2, ProductCode: "7751", Units: 10},
	}
	require.NoError(t, c.SetLots(ctx, "q=|lab=|cat=", lots, time.Minute))

	got, ok, err := c.GetLots(ctx, "q=|lab=|cat=")
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 2)
	assert.True(t, got[0].PurchasePrice.Equal(decimal.RequireFromString("2.5")))
	require.NotNil(t, got[0].ExpiryDate)
	assert.True(t, got[0].ExpiryDate.Equal(exp))
	assert.Nil(t, got[1].ExpiryDate)
}

func TestRedisCache_InvalidateSoloBorraPrefijoPropio(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.client.Set(ctx, "otra-app:clave", "x", time.Minute).Err())
	t.Cleanup(func() { c.client.Del(context.Background(), "otra-app:clave") })

	require.NoError(t, c.SetProductLots(ctx, "7751", []entity.InventoryLot{{LotID: 1, ProductCode: "7751"}}, time.Minute))
	require.NoError(t, c.Invalidate(ctx))

	_, ok, err := c.GetProductLots(ctx, "7751")
	require.NoError(t, err)
	assert.False(t, ok)

	v, err := c.client.Get(ctx, "otra-app:clave").Result()
	require.NoError(t, err)
	assert.Equal(t, "x", v)
}

func TestRedisCache_TTLCeroNoGuarda(t *testing.T) {
	c := newTestRedis(t)
	ctx := context.Background()

	require.NoError(t, c.SetLots(ctx, "k", []entity.Lot{{ID: 1}}, 0))
	_, ok, err := c.GetLots(ctx, "k")
	require.NoError(t, err)
	assert.False(t, ok)
}
