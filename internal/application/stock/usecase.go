// Package stock contiene los casos de uso del tablero de stock: página actual,
// vista general sobre el dataset completo, detalle de producto, exportaciones e
// historial de indicadores.
package stock

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/text/language"

	"github.com/jhoicas/botica-stock/internal/application/dto"
	"github.com/jhoicas/botica-stock/internal/domain"
	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
	domstock "github.com/jhoicas/botica-stock/internal/domain/stock"
)

const (
	defaultPageSize = 10
	maxPageSize     = 500
)

// Renderer genera un archivo a partir del reporte de stock (xlsx, pdf).
type Renderer interface {
	Render(r domstock.Report) (*entity.Download, error)
}

// Formatos de exportación.
const (
	FormatXLSX = "xlsx"
	FormatPDF  = "pdf"
)

// Deps dependencias del caso de uso. Snapshots puede ser nil (sin base de datos).
type Deps struct {
	Lots      repository.LotRepository
	Loader    *LotLoader
	Cache     repository.LotCache
	Snapshots repository.SnapshotRepository
	XLSX      Renderer
	PDF       Renderer
	Log       zerolog.Logger
}

// Options parámetros de cálculo.
type Options struct {
	RiskWindowDays int
	Language       language.Tag
	Location       *time.Location
	CacheTTL       time.Duration
}

// UseCase casos de uso del tablero de stock.
type UseCase struct {
	deps   Deps
	agg    domstock.Aggregator
	window int
	loc    *time.Location
	ttl    time.Duration
	now    func() time.Time
}

// NewUseCase construye el caso de uso.
func NewUseCase(deps Deps, opts Options) *UseCase {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	agg := domstock.NewAggregator(opts.RiskWindowDays, opts.Language)
	return &UseCase{
		deps:   deps,
		agg:    agg,
		window: agg.RiskWindowDays,
		loc:    loc,
		ttl:    opts.CacheTTL,
		now:    time.Now,
	}
}

// today hora actual en la zona de la botica.
func (uc *UseCase) today() time.Time {
	return uc.now().In(uc.loc)
}

// ListPage una página del backend (page 1-based) convertida en resúmenes.
// Los KPIs se calculan sobre la página; el total es el de lotes del backend.
func (uc *UseCase) ListPage(ctx context.Context, token string, q dto.StockQuery) (*dto.StockPageDTO, error) {
	page, size := q.Page, q.Size
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = defaultPageSize
	}
	if size > maxPageSize {
		size = maxPageSize
	}

	lp, err := uc.deps.Lots.ListLots(ctx, token, q.Filter(), page-1, size)
	if err != nil {
		return nil, fmt.Errorf("stock: página %d: %w", page, err)
	}
	summaries := uc.agg.Summarize(lp.Lots, uc.today())

	totalPages := (lp.TotalElements + size - 1) / size
	if totalPages < 1 {
		totalPages = 1
	}
	return &dto.StockPageDTO{
		Items: dto.FromSummaries(summaries),
		KPIs:  dto.FromKPIs(domstock.ComputeKPIs(summaries, uc.window)),
		Page: dto.PageResponse{
			Page:       page,
			Size:       size,
			Total:      lp.TotalElements,
			TotalPages: totalPages,
		},
		RiskWindowDays: uc.window,
	}, nil
}

// Overview KPIs, opciones de filtro y las cuatro pestañas paginadas sobre el dataset completo.
func (uc *UseCase) Overview(ctx context.Context, token string, q dto.OverviewQuery) (*dto.StockOverviewDTO, error) {
	filter := q.Filter()
	lots, err := uc.allLots(ctx, token, filter)
	if err != nil {
		return nil, err
	}
	now := uc.today()
	summaries := uc.agg.Summarize(lots, now)
	tabs := domstock.BuildTabs(summaries, uc.window)
	labs, cats := domstock.FilterOptions(summaries)

	tab := func(items []entity.ProductSummary, page int) dto.TabDTO {
		slice, info := domstock.Paginate(items, page, q.Size)
		return dto.TabDTO{Items: dto.FromSummaries(slice), Page: dto.FromPageInfo(info)}
	}
	return &dto.StockOverviewDTO{
		KPIs:           dto.FromKPIs(domstock.ComputeKPIs(summaries, uc.window)),
		Labs:           labs,
		Categories:     cats,
		Critical:       tab(tabs.Critical, q.CriticalPage),
		NearExpiry:     tab(tabs.NearExpiry, q.NearExpiryPage),
		Expired:        tab(tabs.Expired, q.ExpiredPage),
		AtRisk:         tab(tabs.AtRisk, q.AtRiskPage),
		RiskWindowDays: uc.window,
		GeneratedAt:    now,
	}, nil
}

// ProductDetail resumen y lotes de un producto. El backend filtra por q (nombre o código);
// del resultado se toma solo el grupo con el código exacto.
func (uc *UseCase) ProductDetail(ctx context.Context, token, productCode string) (*dto.ProductDetailDTO, error) {
	code := strings.TrimSpace(productCode)
	if code == "" {
		return nil, fmt.Errorf("%w: código de producto vacío", domain.ErrInvalidInput)
	}
	lots, err := uc.allLots(ctx, token, entity.LotFilter{Query: code})
	if err != nil {
		return nil, err
	}
	now := uc.today()
	for _, s := range uc.agg.Summarize(lots, now) {
		if s.ProductCode != code {
			continue
		}
		out := &dto.ProductDetailDTO{Summary: dto.FromSummary(s), Lots: make([]dto.LotDTO, 0, len(s.Lots))}
		for _, l := range s.Lots {
			out.Lots = append(out.Lots, dto.FromLot(l, now))
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: producto %s", domain.ErrNotFound, code)
}

// Export genera el resumen de stock del filtro en xlsx o pdf.
func (uc *UseCase) Export(ctx context.Context, token string, filter entity.LotFilter, format string) (*entity.Download, error) {
	var r Renderer
	switch strings.ToLower(format) {
	case "", FormatXLSX:
		r = uc.deps.XLSX
	case FormatPDF:
		r = uc.deps.PDF
	default:
		return nil, fmt.Errorf("%w: formato %q", domain.ErrInvalidInput, format)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: exportación %s", domain.ErrNotConfigured, format)
	}
	report, err := uc.report(ctx, token, filter)
	if err != nil {
		return nil, err
	}
	d, err := r.Render(report)
	if err != nil {
		return nil, fmt.Errorf("stock: exportar %s: %w", format, err)
	}
	return d, nil
}

// RecordSnapshot guarda los KPIs de hoy sobre el dataset completo sin filtros.
func (uc *UseCase) RecordSnapshot(ctx context.Context, token string) (*dto.SnapshotDTO, error) {
	if uc.deps.Snapshots == nil {
		return nil, fmt.Errorf("%w: historial de snapshots", domain.ErrNotConfigured)
	}
	report, err := uc.report(ctx, token, entity.LotFilter{})
	if err != nil {
		return nil, err
	}
	snap := &entity.StockSnapshot{TakenOn: report.GeneratedAt, KPIs: report.KPIs}
	if err := uc.deps.Snapshots.Upsert(ctx, snap); err != nil {
		return nil, fmt.Errorf("stock: guardar snapshot: %w", err)
	}
	uc.deps.Log.Info().
		Str("taken_on", snap.TakenOn.Format("2006-01-02")).
		Int("products", snap.KPIs.TotalProducts).
		Msg("snapshot de stock registrado")
	out := dto.FromSnapshot(*snap)
	return &out, nil
}

// ListSnapshots historial entre from y to (inclusive). Sin fechas: últimos 30 días.
func (uc *UseCase) ListSnapshots(ctx context.Context, q dto.SnapshotQuery) ([]dto.SnapshotDTO, error) {
	if uc.deps.Snapshots == nil {
		return nil, fmt.Errorf("%w: historial de snapshots", domain.ErrNotConfigured)
	}
	now := uc.today()
	to := now
	from := now.AddDate(0, 0, -29)
	var err error
	if q.To != "" {
		if to, err = time.ParseInLocation("2006-01-02", q.To, uc.loc); err != nil {
			return nil, fmt.Errorf("%w: to=%q", domain.ErrInvalidInput, q.To)
		}
		if q.From == "" {
			from = to.AddDate(0, 0, -29)
		}
	}
	if q.From != "" {
		if from, err = time.ParseInLocation("2006-01-02", q.From, uc.loc); err != nil {
			return nil, fmt.Errorf("%w: from=%q", domain.ErrInvalidInput, q.From)
		}
	}
	if from.After(to) {
		return nil, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	snaps, err := uc.deps.Snapshots.ListBetween(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("stock: listar snapshots: %w", err)
	}
	out := make([]dto.SnapshotDTO, 0, len(snaps))
	for _, s := range snaps {
		out = append(out, dto.FromSnapshot(s))
	}
	return out, nil
}

// Invalidate descarta los datasets en caché (tras registrar una venta o un ingreso).
// Solo una sesión aceptada por el backend puede vaciarla.
func (uc *UseCase) Invalidate(ctx context.Context, token string) error {
	if err := uc.verifySession(ctx, token); err != nil {
		return err
	}
	if err := uc.deps.Cache.Invalidate(ctx); err != nil {
		return fmt.Errorf("stock: invalidar caché: %w", err)
	}
	return nil
}

func (uc *UseCase) report(ctx context.Context, token string, filter entity.LotFilter) (domstock.Report, error) {
	lots, err := uc.allLots(ctx, token, filter)
	if err != nil {
		return domstock.Report{}, err
	}
	now := uc.today()
	return domstock.NewReport(uc.agg.Summarize(lots, now), filter, uc.window, now), nil
}

// allLots dataset completo del filtro: caché primero, backend después.
// La caché no guarda tokens: antes de servirla se confirma la sesión con el backend.
// Un error de caché se registra y no impide responder.
func (uc *UseCase) allLots(ctx context.Context, token string, filter entity.LotFilter) ([]entity.Lot, error) {
	key := filter.Key()
	lots, ok, err := uc.deps.Cache.GetLots(ctx, key)
	if err != nil {
		uc.deps.Log.Warn().Err(err).Str("filter", key).Msg("caché de lotes no disponible")
	}
	if ok {
		if err := uc.verifySession(ctx, token); err != nil {
			return nil, err
		}
		return lots, nil
	}

	lots, err = uc.deps.Loader.LoadAll(ctx, token, filter)
	if err != nil {
		return nil, fmt.Errorf("stock: cargar dataset: %w", err)
	}
	if err := uc.deps.Cache.SetLots(ctx, key, lots, uc.ttl); err != nil {
		uc.deps.Log.Warn().Err(err).Str("filter", key).Msg("no se pudo guardar en caché")
	}
	return lots, nil
}

// verifySession pide una página de tamaño 1 con el token del usuario.
// Los errores de sesión del backend (401/403) se devuelven tal cual.
func (uc *UseCase) verifySession(ctx context.Context, token string) error {
	if _, err := uc.deps.Lots.ListLots(ctx, token, entity.LotFilter{}, 0, 1); err != nil {
		return fmt.Errorf("stock: verificar sesión: %w", err)
	}
	return nil
}
