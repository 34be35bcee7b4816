// Package cache implementaciones de repository.LotCache (memoria, Redis y nula).
package cache

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
)

var _ repository.LotCache = (*MemoryCache)(nil)

type entry[T any] struct {
	value     []T
	expiresAt time.Time
}

func (e entry[T]) expired(now time.Time) bool {
	return !now.Before(e.expiresAt)
}

// MemoryCache caché en proceso con TTL por entrada. Seguro para uso concurrente.
type MemoryCache struct {
	mu       sync.RWMutex
	lots     map[string]entry[entity.Lot]
	products map[string]entry[entity.InventoryLot]
	now      func() time.Time
}

// NewMemoryCache crea una caché vacía.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		lots:     make(map[string]entry[entity.Lot]),
		products: make(map[string]entry[entity.InventoryLot]),
		now:      time.Now,
	}
}

func (c *MemoryCache) GetLots(_ context.Context, filterKey string) ([]entity.Lot, bool, error) {
	v, ok := getEntry(c, c.lots, filterKey)
	return v, ok, nil
}

func (c *MemoryCache) SetLots(_ context.Context, filterKey string, lots []entity.Lot, ttl time.Duration) error {
	setEntry(c, c.lots, filterKey, lots, ttl)
	return nil
}

func (c *MemoryCache) GetProductLots(_ context.Context, productCode string) ([]entity.InventoryLot, bool, error) {
	v, ok := getEntry(c, c.products, productCode)
	return v, ok, nil
}

func (c *MemoryCache) SetProductLots(_ context.Context, productCode string, lots []entity.InventoryLot, ttl time.Duration) error {
	setEntry(c, c.products, productCode, lots, ttl)
	return nil
}

func (c *MemoryCache) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	clear(c.lots)
	clear(c.products)
	return nil
}

// getEntry devuelve una copia; quien llama puede modificarla sin afectar la caché.
func getEntry[T any](c *MemoryCache, m map[string]entry[T], key string) ([]T, bool) {
	c.mu.RLock()
	e, ok := m[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(c.now()) {
		c.mu.Lock()
		if cur, still := m[key]; still && cur.expired(c.now()) {
			delete(m, key)
		}
		c.mu.Unlock()
		return nil, false
	}
	return append([]T(nil), e.value...), true
}

// setEntry con ttl <= 0 no guarda nada. Cada escritura barre las entradas vencidas
// del mapa, así las claves que nadie vuelve a leer no se acumulan.
func setEntry[T any](c *MemoryCache, m map[string]entry[T], key string, value []T, ttl time.Duration) {
	if ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	now := c.now()
	for k, e := range m {
		if e.expired(now) {
			delete(m, k)
		}
	}
	m[strings.Clone(key)] = entry[T]{value: append([]T(nil), value...), expiresAt: now.Add(ttl)}
}
