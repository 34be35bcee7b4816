package cache

import (
	"context"
	"fmt"

	"github.com/jhoicas/botica-stock/internal/domain/repository"
	"github.com/jhoicas/botica-stock/pkg/config"
)

// New elige la implementación según CACHE_DRIVER. closeFn libera recursos (no-op si no hay).
func New(ctx context.Context, cfg config.CacheConfig) (repository.LotCache, func() error, error) {
	switch cfg.Driver {
	case "", config.CacheDriverMemory:
		return NewMemoryCache(), func() error { return nil }, nil
	case config.CacheDriverNone:
		return Noop{}, func() error { return nil }, nil
	case config.CacheDriverRedis:
		rc, err := NewRedisCache(ctx, cfg)
		if err != nil {
			return nil, nil, err
		}
		return rc, rc.Close, nil
	default:
		return nil, nil, fmt.Errorf("cache: driver desconocido %q", cfg.Driver)
	}
}
