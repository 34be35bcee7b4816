package stock

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
)

// DefaultFetchPageSize tamaño de página para descargar el dataset completo.
const DefaultFetchPageSize = 500

// LotLoader descarga todos los lotes de un filtro página por página.
type LotLoader struct {
	repo        repository.LotRepository
	pageSize    int
	concurrency int
	log         zerolog.Logger
}

// NewLotLoader pageSize <= 0 usa 500; concurrency <= 0 usa 1.
func NewLotLoader(repo repository.LotRepository, pageSize, concurrency int, log zerolog.Logger) *LotLoader {
	if pageSize <= 0 {
		pageSize = DefaultFetchPageSize
	}
	if concurrency <= 0 {
		concurrency = 1
	}
	return &LotLoader{repo: repo, pageSize: pageSize, concurrency: concurrency, log: log}
}

// LoadAll pide primero una página de tamaño 1 para conocer el total y después
// ceil(total/pageSize) páginas en paralelo. El resultado conserva el orden de las páginas.
// Si una página falla, falla toda la carga.
func (l *LotLoader) LoadAll(ctx context.Context, token string, filter entity.LotFilter) ([]entity.Lot, error) {
	first, err := l.repo.ListLots(ctx, token, filter, 0, 1)
	if err != nil {
		return nil, fmt.Errorf("contar lotes: %w", err)
	}
	total := first.TotalElements
	if total <= 0 {
		return []entity.Lot{}, nil
	}

	pages := (total + l.pageSize - 1) / l.pageSize
	results := make([][]entity.Lot, pages)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(l.concurrency)
	for i := 0; i < pages; i++ {
		page := i
		g.Go(func() error {
			p, err := l.repo.ListLots(gctx, token, filter, page, l.pageSize)
			if err != nil {
				return fmt.Errorf("página %d de %d: %w", page+1, pages, err)
			}
			results[page] = p.Lots
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	all := make([]entity.Lot, 0, total)
	for _, lots := range results {
		all = append(all, lots...)
	}
	l.log.Debug().
		Str("filter", filter.Key()).
		Int("total", total).
		Int("pages", pages).
		Int("loaded", len(all)).
		Msg("dataset de lotes descargado")
	return all, nil
}
