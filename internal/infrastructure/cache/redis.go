package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
	"github.com/jhoicas/botica-stock/pkg/config"
)

var _ repository.LotCache = (*RedisCache)(nil)

const (
	keyPrefix     = "botica:stock:"
	lotsPrefix    = keyPrefix + "lots:"
	productPrefix = keyPrefix + "product:"
	scanBatchSize = 100
)

// RedisCache caché compartida entre instancias; los valores se guardan como JSON.
type RedisCache struct {
	client *redis.Client
}

// NewRedisCache conecta y verifica con PING.
func NewRedisCache(ctx context.Context, cfg config.CacheConfig) (*RedisCache, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis: ping %s: %w", cfg.RedisAddr, err)
	}
	return &RedisCache{client: client}, nil
}

// NewRedisCacheWithClient usa un cliente existente (tests, cliente compartido).
func NewRedisCacheWithClient(client *redis.Client) *RedisCache {
	return &RedisCache{client: client}
}

func (c *RedisCache) Close() error {
	return c.client.Close()
}

func (c *RedisCache) GetLots(ctx context.Context, filterKey string) ([]entity.Lot, bool, error) {
	var out []entity.Lot
	ok, err := c.get(ctx, lotsPrefix+filterKey, &out)
	return out, ok, err
}

func (c *RedisCache) SetLots(ctx context.Context, filterKey string, lots []entity.Lot, ttl time.Duration) error {
	return c.set(ctx, lotsPrefix+filterKey, lots, ttl)
}

func (c *RedisCache) GetProductLots(ctx context.Context, productCode string) ([]entity.InventoryLot, bool, error) {
	var out []entity.InventoryLot
	ok, err := c.get(ctx, productPrefix+productCode, &out)
	return out, ok, err
}

func (c *RedisCache) SetProductLots(ctx context.Context, productCode string, lots []entity.InventoryLot, ttl time.Duration) error {
	return c.set(ctx, productPrefix+productCode, lots, ttl)
}

// Invalidate borra solo las claves con el prefijo de este servicio.
func (c *RedisCache) Invalidate(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := c.client.Scan(ctx, cursor, keyPrefix+"*", scanBatchSize).Result()
		if err != nil {
			return fmt.Errorf("redis: scan: %w", err)
		}
		if len(keys) > 0 {
			if err := c.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("redis: del: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}

func (c *RedisCache) get(ctx context.Context, key string, out any) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("redis: get %s: %w", key, err)
	}
	if err := json.Unmarshal(val, out); err != nil {
		return false, fmt.Errorf("redis: decodificar %s: %w", key, err)
	}
	return true, nil
}

func (c *RedisCache) set(ctx context.Context, key string, value any, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	payload, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("redis: serializar %s: %w", key, err)
	}
	return c.client.Set(ctx, key, payload, ttl).Err()
}
