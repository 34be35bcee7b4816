// Package reports contiene los casos de uso de reportes de ventas, clientes, caja,
// inventario y boletas. Los cálculos los hace el backend; aquí se validan
// parámetros, se aplican valores por defecto y se combinan respuestas.
package reports

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/botica-stock/internal/application/dto"
	"github.com/jhoicas/botica-stock/internal/domain"
	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
)

const (
	dashboardTopProducts = 10
	defaultTopCustomers  = 20
	defaultInventorySize = 50
	defaultBoletasSize   = 10
	defaultNearExpiry    = 30
)

// UseCase casos de uso de reportes.
type UseCase struct {
	reports  repository.ReportsRepository
	exports  repository.ExportRepository
	session  repository.SessionVerifier
	cache    repository.LotCache
	cacheTTL time.Duration
	loc      *time.Location
	now      func() time.Time
	log      zerolog.Logger
}

// NewUseCase construye el caso de uso. loc es la zona de la botica para los rangos por defecto.
func NewUseCase(
	reports repository.ReportsRepository,
	exports repository.ExportRepository,
	session repository.SessionVerifier,
	cache repository.LotCache,
	cacheTTL time.Duration,
	loc *time.Location,
	log zerolog.Logger,
) *UseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &UseCase{
		reports:  reports,
		exports:  exports,
		session:  session,
		cache:    cache,
		cacheTTL: cacheTTL,
		loc:      loc,
		now:      time.Now,
		log:      log,
	}
}

// ResolveRange interpreta from/to (RFC 3339 o YYYY-MM-DD). Sin valores usa los últimos 7 días;
// una fecha sin hora en "to" cubre el día completo.
func (uc *UseCase) ResolveRange(from, to string) (entity.DateRange, error) {
	r := entity.DefaultDateRange(uc.now().In(uc.loc))
	if strings.TrimSpace(from) != "" {
		t, _, err := uc.parseInstant(from)
		if err != nil {
			return r, fmt.Errorf("%w: from=%q", domain.ErrInvalidInput, from)
		}
		r.From = t
	}
	if strings.TrimSpace(to) != "" {
		t, dateOnly, err := uc.parseInstant(to)
		if err != nil {
			return r, fmt.Errorf("%w: to=%q", domain.ErrInvalidInput, to)
		}
		if dateOnly {
			t = t.AddDate(0, 0, 1).Add(-time.Millisecond)
		}
		r.To = t
	}
	if r.From.After(r.To) {
		return r, fmt.Errorf("%w: from posterior a to", domain.ErrInvalidInput)
	}
	return r, nil
}

func (uc *UseCase) parseInstant(s string) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if t, err := time.ParseInLocation("2006-01-02", s, uc.loc); err == nil {
		return t, true, nil
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	return t, false, err
}

// ── Dashboard ─────────────────────────────────────────────────────────────────

// Dashboard seis consultas en paralelo: resumen, ventas por día, top productos,
// mix de pagos, ventas por hora y caja. Cada consulta que falle deja su sección
// vacía y agrega un aviso; el dashboard nunca falla por una sección.
// La sesión expirada sí se propaga: sin sesión no hay nada que mostrar.
func (uc *UseCase) Dashboard(ctx context.Context, token string, r entity.DateRange) (*dto.DashboardDTO, error) {
	if strings.TrimSpace(token) == "" {
		return nil, domain.ErrMissingToken
	}

	summaryCh := make(chan result[*entity.SalesSummary], 1)
	byDayCh := make(chan result[[]entity.SalesByDay], 1)
	topCh := make(chan result[[]entity.TopProduct], 1)
	mixCh := make(chan result[[]entity.PaymentMix], 1)
	byHourCh := make(chan result[[]entity.SalesByHour], 1)
	cashCh := make(chan result[*entity.CashSummary], 1)

	go func() {
		v, err := uc.reports.SalesSummary(ctx, token, r)
		summaryCh <- result[*entity.SalesSummary]{v, err}
	}()
	go func() {
		v, err := uc.reports.SalesByDay(ctx, token, r)
		byDayCh <- result[[]entity.SalesByDay]{v, err}
	}()
	go func() {
		v, err := uc.reports.TopProducts(ctx, token, r, dashboardTopProducts)
		topCh <- result[[]entity.TopProduct]{v, err}
	}()
	go func() {
		v, err := uc.reports.PaymentMix(ctx, token, r)
		mixCh <- result[[]entity.PaymentMix]{v, err}
	}()
	go func() {
		v, err := uc.reports.SalesByHour(ctx, token, r)
		byHourCh <- result[[]entity.SalesByHour]{v, err}
	}()
	go func() {
		v, err := uc.reports.CashSummary(ctx, token, r)
		cashCh <- result[*entity.CashSummary]{v, err}
	}()

	summary := <-summaryCh
	byDay := <-byDayCh
	top := <-topCh
	mix := <-mixCh
	byHour := <-byHourCh
	cash := <-cashCh

	out := &dto.DashboardDTO{
		From:        r.From,
		To:          r.To,
		ByDay:       []entity.SalesByDay{},
		TopProducts: []entity.TopProduct{},
		PaymentMix:  []entity.PaymentMix{},
		ByHour:      []entity.SalesByHour{},
		Warnings:    []string{},
	}
	sections := []struct {
		name string
		err  error
	}{
		{"resumen", summary.err},
		{"ventas por día", byDay.err},
		{"top productos", top.err},
		{"métodos de pago", mix.err},
		{"ventas por hora", byHour.err},
		{"caja", cash.err},
	}
	for _, s := range sections {
		if s.err == nil {
			continue
		}
		if isSessionError(s.err) {
			return nil, s.err
		}
		uc.log.Warn().Err(s.err).Str("section", s.name).Msg("dashboard: sección sin datos")
		out.Warnings = append(out.Warnings, s.name+": "+s.err.Error())
	}

	if summary.err == nil && summary.value != nil {
		out.Summary = *summary.value
	}
	if byDay.err == nil && byDay.value != nil {
		out.ByDay = byDay.value
	}
	if top.err == nil && top.value != nil {
		out.TopProducts = top.value
	}
	if mix.err == nil && mix.value != nil {
		out.PaymentMix = mix.value
	}
	if byHour.err == nil && byHour.value != nil {
		out.ByHour = byHour.value
	}
	if cash.err == nil && cash.value != nil {
		out.Cash = *cash.value
	}
	return out, nil
}

// result respuesta de una consulta del dashboard.
type result[T any] struct {
	value T
	err   error
}

func isSessionError(err error) bool {
	return errors.Is(err, domain.ErrSessionExpired) || errors.Is(err, domain.ErrMissingToken)
}

// ── Consultas ─────────────────────────────────────────────────────────────────

// SalesSummary totales del período; sin ventas devuelve ceros.
func (uc *UseCase) SalesSummary(ctx context.Context, token string, r entity.DateRange) (*entity.SalesSummary, error) {
	s, err := uc.reports.SalesSummary(ctx, token, r)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.SalesSummary{}
	}
	return s, nil
}

// CashSummary ingresos y egresos de caja; sin movimientos devuelve ceros.
func (uc *UseCase) CashSummary(ctx context.Context, token string, r entity.DateRange) (*entity.CashSummary, error) {
	s, err := uc.reports.CashSummary(ctx, token, r)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &entity.CashSummary{}
	}
	return s, nil
}

// TopCustomers ranking de clientes; por defecto 20 ordenados por ventas.
func (uc *UseCase) TopCustomers(ctx context.Context, token string, q dto.CustomersQuery) ([]entity.TopCustomer, error) {
	cq := entity.CustomerQuery{Limit: q.Limit, SortBy: q.SortBy}
	if cq.Limit <= 0 {
		cq.Limit = defaultTopCustomers
	}
	if cq.SortBy == "" {
		cq.SortBy = "ventas"
	}
	if q.From != "" || q.To != "" {
		r, err := uc.ResolveRange(q.From, q.To)
		if err != nil {
			return nil, err
		}
		cq.Range = &r
	}
	return uc.reports.TopCustomers(ctx, token, cq)
}

// InventoryFull reporte de inventario paginado por el backend.
func (uc *UseCase) InventoryFull(ctx context.Context, token string, q dto.InventoryFullQuery) (*entity.Page[entity.InventoryProductFull], error) {
	iq, err := inventoryQuery(q)
	if err != nil {
		return nil, err
	}
	return uc.reports.InventoryFull(ctx, token, iq)
}

// InventoryLots lotes de un producto; se cachean por código.
// Un acierto de caché se sirve solo si el backend acepta el token.
func (uc *UseCase) InventoryLots(ctx context.Context, token, productCode string) ([]entity.InventoryLot, error) {
	code := strings.TrimSpace(productCode)
	if code == "" {
		return nil, fmt.Errorf("%w: codigo_barras requerido", domain.ErrInvalidInput)
	}
	if lots, ok, err := uc.cache.GetProductLots(ctx, code); err != nil {
		uc.log.Warn().Err(err).Str("codigo_barras", code).Msg("caché de lotes por producto no disponible")
	} else if ok {
		if err := uc.session.VerifySession(ctx, token); err != nil {
			return nil, err
		}
		return lots, nil
	}
	lots, err := uc.reports.InventoryLots(ctx, token, code)
	if err != nil {
		return nil, err
	}
	if err := uc.cache.SetProductLots(ctx, code, lots, uc.cacheTTL); err != nil {
		uc.log.Warn().Err(err).Str("codigo_barras", code).Msg("no se pudo guardar en caché")
	}
	return lots, nil
}

// Boletas listado paginado (page 1-based, 10 por defecto).
func (uc *UseCase) Boletas(ctx context.Context, token string, q dto.BoletasQuery) (*entity.Page[entity.Boleta], error) {
	bq := entity.BoletaQuery{Page: q.Page, Size: q.Limit, Search: q.Search, From: q.From, To: q.To}
	if bq.Page < 1 {
		bq.Page = 1
	}
	if bq.Size <= 0 {
		bq.Size = defaultBoletasSize
	}
	return uc.reports.Boletas(ctx, token, bq)
}

// BoletaByID detalle de una boleta.
func (uc *UseCase) BoletaByID(ctx context.Context, token, rawID string) (*entity.Boleta, error) {
	id, err := strconv.ParseInt(strings.TrimSpace(rawID), 10, 64)
	if err != nil || id <= 0 {
		return nil, fmt.Errorf("%w: id de boleta %q", domain.ErrInvalidInput, rawID)
	}
	return uc.reports.BoletaByID(ctx, token, id)
}

// ── Exportaciones ─────────────────────────────────────────────────────────────

func (uc *UseCase) ExportInventoryFull(ctx context.Context, token string, q dto.InventoryFullQuery) (*entity.Download, error) {
	iq, err := inventoryQuery(q)
	if err != nil {
		return nil, err
	}
	return uc.exports.ExportInventoryFull(ctx, token, iq)
}

// ExportInventory alcance "all" por defecto; near-expiry usa 30 días si no se indican.
func (uc *UseCase) ExportInventory(ctx context.Context, token string, q dto.InventoryExportQuery) (*entity.Download, error) {
	scope := entity.InventoryExportScope(q.Scope)
	if scope == "" {
		scope = entity.ExportScopeAll
	}
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: scope %q", domain.ErrInvalidInput, q.Scope)
	}
	days := q.Days
	if days <= 0 {
		days = defaultNearExpiry
	}
	return uc.exports.ExportInventory(ctx, token, scope, days)
}

func (uc *UseCase) ExportInventoryProfessional(ctx context.Context, token string, q dto.InventoryFullQuery) (*entity.Download, error) {
	iq, err := inventoryQuery(q)
	if err != nil {
		return nil, err
	}
	return uc.exports.ExportInventoryProfessional(ctx, token, iq)
}

// ExportCustomers sin fechas exporta el histórico completo.
func (uc *UseCase) ExportCustomers(ctx context.Context, token string, q dto.RangeQuery) (*entity.Download, error) {
	var rp *entity.DateRange
	if q.From != "" || q.To != "" {
		r, err := uc.ResolveRange(q.From, q.To)
		if err != nil {
			return nil, err
		}
		rp = &r
	}
	return uc.exports.ExportCustomers(ctx, token, rp)
}

// ExportSales agrupado por día (por defecto) o por producto.
func (uc *UseCase) ExportSales(ctx context.Context, token string, q dto.SalesExportQuery) (*entity.Download, error) {
	r, err := uc.ResolveRange(q.From, q.To)
	if err != nil {
		return nil, err
	}
	groupBy := q.GroupBy
	if groupBy == "" {
		groupBy = "day"
	}
	return uc.exports.ExportSales(ctx, token, r, groupBy)
}

func inventoryQuery(q dto.InventoryFullQuery) (entity.InventoryQuery, error) {
	iq := entity.InventoryQuery{
		Search:   q.Search,
		Category: q.Categoria,
		Page:     q.Page,
		Size:     q.Size,
		Sort:     q.Sort,
		Dir:      q.Dir,
	}
	if iq.Page < 0 {
		iq.Page = 0
	}
	if iq.Size <= 0 {
		iq.Size = defaultInventorySize
	}
	if iq.Sort == "" {
		iq.Sort = "nombre"
	}
	if iq.Dir == "" {
		iq.Dir = "asc"
	}
	if q.Activo != "" {
		b, err := strconv.ParseBool(q.Activo)
		if err != nil {
			return iq, fmt.Errorf("%w: activo=%q", domain.ErrInvalidInput, q.Activo)
		}
		iq.Active = &b
	}
	return iq, nil
}
