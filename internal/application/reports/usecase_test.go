package reports

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/botica-stock/internal/application/dto"
	"github.com/jhoicas/botica-stock/internal/domain"
	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/infrastructure/cache"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes
// ──────────────────────────────────────────────────────────────────────────────

type fakeReports struct {
	failing      map[string]error
	lotsCalls    int32
	lastCustomer entity.CustomerQuery
	lastInv      entity.InventoryQuery
	lastBoletas  entity.BoletaQuery
	lastBoletaID int64
	lastTopLimit int
}

func (f *fakeReports) fail(name string) error {
	if f.failing == nil {
		return nil
	}
	return f.failing[name]
}

func (f *fakeReports) SalesSummary(context.Context, string, entity.DateRange) (*entity.SalesSummary, error) {
	if err := f.fail("summary"); err != nil {
		return nil, err
	}
	return &entity.SalesSummary{Sales: decimal.NewFromInt(1500), Tickets: 30}, nil
}

func (f *fakeReports) SalesByDay(context.Context, string, entity.DateRange) ([]entity.SalesByDay, error) {
	if err := f.fail("byDay"); err != nil {
		return nil, err
	}
	return []entity.SalesByDay{{Date: "2026-10-18", Tickets: 30}}, nil
}

func (f *fakeReports) SalesByHour(context.Context, string, entity.DateRange) ([]entity.SalesByHour, error) {
	if err := f.fail("byHour"); err != nil {
		return nil, err
	}
	return []entity.SalesByHour{{Hour: 9, Tickets: 4}}, nil
}

func (f *fakeReports) TopProducts(_ context.Context, _ string, _ entity.DateRange, limit int) ([]entity.TopProduct, error) {
	f.lastTopLimit = limit
	if err := f.fail("top"); err != nil {
		return nil, err
	}
	return []entity.TopProduct{{ProductCode: "775001", Units: 12}}, nil
}

func (f *fakeReports) PaymentMix(context.Context, string, entity.DateRange) ([]entity.PaymentMix, error) {
	if err := f.fail("mix"); err != nil {
		return nil, err
	}
	return []entity.PaymentMix{{Method: "EFECTIVO", Tickets: 20}}, nil
}

func (f *fakeReports) CashSummary(context.Context, string, entity.DateRange) (*entity.CashSummary, error) {
	if err := f.fail("cash"); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeReports) TopCustomers(_ context.Context, _ string, q entity.CustomerQuery) ([]entity.TopCustomer, error) {
	f.lastCustomer = q
	return []entity.TopCustomer{}, nil
}

func (f *fakeReports) InventoryFull(_ context.Context, _ string, q entity.InventoryQuery) (*entity.Page[entity.InventoryProductFull], error) {
	f.lastInv = q
	return &entity.Page[entity.InventoryProductFull]{Content: []entity.InventoryProductFull{}}, nil
}

func (f *fakeReports) InventoryLots(context.Context, string, string) ([]entity.InventoryLot, error) {
	atomic.AddInt32(&f.lotsCalls, 1)
	return []entity.InventoryLot{{LotID: 1, Units: 4}}, nil
}

func (f *fakeReports) Boletas(_ context.Context, _ string, q entity.BoletaQuery) (*entity.Page[entity.Boleta], error) {
	f.lastBoletas = q
	return &entity.Page[entity.Boleta]{Content: []entity.Boleta{}}, nil
}

func (f *fakeReports) BoletaByID(_ context.Context, _ string, id int64) (*entity.Boleta, error) {
	f.lastBoletaID = id
	return &entity.Boleta{ID: id}, nil
}

// fakeSession acepta cualquier token salvo los marcados como vencidos.
type fakeSession struct {
	expired map[string]bool
	calls   int32
}

func (f *fakeSession) VerifySession(_ context.Context, token string) error {
	atomic.AddInt32(&f.calls, 1)
	if f.expired[token] {
		return domain.ErrSessionExpired
	}
	return nil
}

type fakeExports struct {
	scope   entity.InventoryExportScope
	days    int
	groupBy string
	rng     *entity.DateRange
	inv     entity.InventoryQuery
}

func (f *fakeExports) ExportInventoryFull(_ context.Context, _ string, q entity.InventoryQuery) (*entity.Download, error) {
	f.inv = q
	return &entity.Download{Filename: "inventario_full.xlsx"}, nil
}

func (f *fakeExports) ExportInventory(_ context.Context, _ string, s entity.InventoryExportScope, days int) (*entity.Download, error) {
	f.scope, f.days = s, days
	return &entity.Download{Filename: "inventario_" + string(s) + ".xlsx"}, nil
}

func (f *fakeExports) ExportInventoryProfessional(_ context.Context, _ string, q entity.InventoryQuery) (*entity.Download, error) {
	f.inv = q
	return &entity.Download{Filename: "Inventario_Botica.xlsx"}, nil
}

func (f *fakeExports) ExportCustomers(_ context.Context, _ string, r *entity.DateRange) (*entity.Download, error) {
	f.rng = r
	return &entity.Download{Filename: "clientes_top.xlsx"}, nil
}

func (f *fakeExports) ExportSales(_ context.Context, _ string, r entity.DateRange, groupBy string) (*entity.Download, error) {
	f.rng, f.groupBy = &r, groupBy
	return &entity.Download{Filename: "ventas.xlsx"}, nil
}

var lima = func() *time.Location {
	loc, err := time.LoadLocation("America/Lima")
	if err != nil {
		panic(err)
	}
	return loc
}()

func newUseCase(rep *fakeReports, exp *fakeExports) *UseCase {
	return newUseCaseWithSession(rep, exp, &fakeSession{})
}

func newUseCaseWithSession(rep *fakeReports, exp *fakeExports, session *fakeSession) *UseCase {
	uc := NewUseCase(rep, exp, session, cache.NewMemoryCache(), time.Minute, lima, zerolog.Nop())
	uc.now = func() time.Time { return time.Date(2026, 10, 18, 15, 0, 0, 0, lima) }
	return uc
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard
// ──────────────────────────────────────────────────────────────────────────────

func TestDashboard_TodasLasSecciones(t *testing.T) {
	rep := &fakeReports{}
	uc := newUseCase(rep, &fakeExports{})
	r, err := uc.ResolveRange("", "")
	require.NoError(t, err)

	out, err := uc.Dashboard(context.Background(), "tok", r)
	require.NoError(t, err)
	assert.Empty(t, out.Warnings)
	assert.Equal(t, int64(30), out.Summary.Tickets)
	assert.Len(t, out.ByDay, 1)
	assert.Len(t, out.TopProducts, 1)
	assert.Len(t, out.PaymentMix, 1)
	assert.Len(t, out.ByHour, 1)
	assert.True(t, out.Cash.Net.IsZero(), "caja sin contenido queda en cero")
	assert.Equal(t, 10, rep.lastTopLimit)
}

func TestDashboard_SeccionFallidaNoRompeElResto(t *testing.T) {
	rep := &fakeReports{failing: map[string]error{
		"top":  errors.New("timeout"),
		"cash": domain.ErrOutsideShift,
	}}
	uc := newUseCase(rep, &fakeExports{})
	r, _ := uc.ResolveRange("", "")

	out, err := uc.Dashboard(context.Background(), "tok", r)
	require.NoError(t, err)
	require.Len(t, out.Warnings, 2)
	assert.Contains(t, out.Warnings[0], "top productos")
	assert.Contains(t, out.Warnings[1], "caja")
	assert.NotNil(t, out.TopProducts)
	assert.Empty(t, out.TopProducts)
	assert.Len(t, out.ByDay, 1)
}

func TestDashboard_SesionExpiradaSePropaga(t *testing.T) {
	rep := &fakeReports{failing: map[string]error{"summary": domain.ErrSessionExpired}}
	uc := newUseCase(rep, &fakeExports{})
	r, _ := uc.ResolveRange("", "")

	_, err := uc.Dashboard(context.Background(), "tok", r)
	assert.ErrorIs(t, err, domain.ErrSessionExpired)

	_, err = uc.Dashboard(context.Background(), " ", r)
	assert.ErrorIs(t, err, domain.ErrMissingToken)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rangos
// ──────────────────────────────────────────────────────────────────────────────

func TestResolveRange(t *testing.T) {
	uc := newUseCase(&fakeReports{}, &fakeExports{})

	r, err := uc.ResolveRange("", "")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2026, 10, 12, 0, 0, 0, 0, lima), r.From, 0)
	assert.WithinDuration(t, time.Date(2026, 10, 18, 23, 59, 59, int(999*time.Millisecond), lima), r.To, 0)

	r, err = uc.ResolveRange("2026-10-01", "2026-10-05")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Date(2026, 10, 1, 0, 0, 0, 0, lima), r.From, 0)
	assert.WithinDuration(t, time.Date(2026, 10, 5, 23, 59, 59, int(999*time.Millisecond), lima), r.To, 0)

	r, err = uc.ResolveRange("2026-10-01T05:00:00Z", "2026-10-02T04:59:59.999Z")
	require.NoError(t, err)
	assert.True(t, r.From.Equal(time.Date(2026, 10, 1, 0, 0, 0, 0, lima)))

	_, err = uc.ResolveRange("ayer", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.ResolveRange("2026-10-05", "2026-10-01")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// Un "to" en el día del cambio de hora termina a las 23:59:59.999 locales.
func TestResolveRange_DiaConCambioDeHora(t *testing.T) {
	ny, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)
	uc := NewUseCase(&fakeReports{}, &fakeExports{}, &fakeSession{}, cache.NewMemoryCache(), time.Minute, ny, zerolog.Nop())

	// 2026-11-01 termina el horario de verano: el día dura 25 horas.
	r, err := uc.ResolveRange("2026-11-01", "2026-11-01")
	require.NoError(t, err)
	to := r.To.In(ny)
	assert.Equal(t, 1, to.Day())
	assert.Equal(t, 23, to.Hour())
	assert.Equal(t, 59, to.Minute())
	assert.Equal(t, 59, to.Second())
	assert.Equal(t, 999*int(time.Millisecond), to.Nanosecond())
	assert.Equal(t, 25*time.Hour-time.Millisecond, r.To.Sub(r.From))
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestTopCustomers_ValoresPorDefecto(t *testing.T) {
	rep := &fakeReports{}
	uc := newUseCase(rep, &fakeExports{})

	_, err := uc.TopCustomers(context.Background(), "tok", dto.CustomersQuery{})
	require.NoError(t, err)
	assert.Equal(t, 20, rep.lastCustomer.Limit)
	assert.Equal(t, "ventas", rep.lastCustomer.SortBy)
	assert.Nil(t, rep.lastCustomer.Range)

	_, err = uc.TopCustomers(context.Background(), "tok", dto.CustomersQuery{From: "2026-10-01", Limit: 5, SortBy: "tickets"})
	require.NoError(t, err)
	require.NotNil(t, rep.lastCustomer.Range)
	assert.Equal(t, 5, rep.lastCustomer.Limit)
}

func TestInventoryFull_ValoresPorDefectoYActivo(t *testing.T) {
	rep := &fakeReports{}
	uc := newUseCase(rep, &fakeExports{})

	_, err := uc.InventoryFull(context.Background(), "tok", dto.InventoryFullQuery{Activo: "true"})
	require.NoError(t, err)
	assert.Equal(t, 50, rep.lastInv.Size)
	assert.Equal(t, "nombre", rep.lastInv.Sort)
	assert.Equal(t, "asc", rep.lastInv.Dir)
	require.NotNil(t, rep.lastInv.Active)
	assert.True(t, *rep.lastInv.Active)

	_, err = uc.InventoryFull(context.Background(), "tok", dto.InventoryFullQuery{Activo: "quizá"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInventoryLots_CacheaPorCodigo(t *testing.T) {
	rep := &fakeReports{}
	uc := newUseCase(rep, &fakeExports{})
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		lots, err := uc.InventoryLots(ctx, "tok", "775001")
		require.NoError(t, err)
		assert.Len(t, lots, 1)
	}
	assert.Equal(t, int32(1), atomic.LoadInt32(&rep.lotsCalls))

	_, err := uc.InventoryLots(ctx, "tok", "")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestInventoryLots_CacheExigeSesionVigente(t *testing.T) {
	rep := &fakeReports{}
	session := &fakeSession{expired: map[string]bool{"vencido": true}}
	uc := newUseCaseWithSession(rep, &fakeExports{}, session)
	ctx := context.Background()

	_, err := uc.InventoryLots(ctx, "tok", "775001")
	require.NoError(t, err)
	assert.Equal(t, int32(0), atomic.LoadInt32(&session.calls), "sin caché la sesión la valida el propio backend")

	lots, err := uc.InventoryLots(ctx, "vencido", "775001")
	assert.ErrorIs(t, err, domain.ErrSessionExpired)
	assert.Nil(t, lots)
	assert.Equal(t, int32(1), atomic.LoadInt32(&rep.lotsCalls))

	_, err = uc.InventoryLots(ctx, "tok", "775001")
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&session.calls))
}

func TestBoletas(t *testing.T) {
	rep := &fakeReports{}
	uc := newUseCase(rep, &fakeExports{})

	_, err := uc.Boletas(context.Background(), "tok", dto.BoletasQuery{})
	require.NoError(t, err)
	assert.Equal(t, 1, rep.lastBoletas.Page)
	assert.Equal(t, 10, rep.lastBoletas.Size)

	b, err := uc.BoletaByID(context.Background(), "tok", "42")
	require.NoError(t, err)
	assert.Equal(t, int64(42), b.ID)

	_, err = uc.BoletaByID(context.Background(), "tok", "abc")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	_, err = uc.BoletaByID(context.Background(), "tok", "0")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSummaries_SinContenidoDevuelveCeros(t *testing.T) {
	uc := newUseCase(&fakeReports{}, &fakeExports{})
	r, _ := uc.ResolveRange("", "")

	cash, err := uc.CashSummary(context.Background(), "tok", r)
	require.NoError(t, err)
	assert.True(t, cash.Income.IsZero())
}

// ──────────────────────────────────────────────────────────────────────────────
// Exportaciones
// ──────────────────────────────────────────────────────────────────────────────

func TestExportInventory_ValoresPorDefecto(t *testing.T) {
	exp := &fakeExports{}
	uc := newUseCase(&fakeReports{}, exp)

	d, err := uc.ExportInventory(context.Background(), "tok", dto.InventoryExportQuery{})
	require.NoError(t, err)
	assert.Equal(t, entity.ExportScopeAll, exp.scope)
	assert.Equal(t, "inventario_all.xlsx", d.Filename)

	_, err = uc.ExportInventory(context.Background(), "tok", dto.InventoryExportQuery{Scope: "near-expiry"})
	require.NoError(t, err)
	assert.Equal(t, 30, exp.days)

	_, err = uc.ExportInventory(context.Background(), "tok", dto.InventoryExportQuery{Scope: "todo"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestExportSales_AgrupaPorDiaPorDefecto(t *testing.T) {
	exp := &fakeExports{}
	uc := newUseCase(&fakeReports{}, exp)

	_, err := uc.ExportSales(context.Background(), "tok", dto.SalesExportQuery{})
	require.NoError(t, err)
	assert.Equal(t, "day", exp.groupBy)
	require.NotNil(t, exp.rng)
}

func TestExportCustomers_SinRangoEsHistorico(t *testing.T) {
	exp := &fakeExports{}
	uc := newUseCase(&fakeReports{}, exp)

	_, err := uc.ExportCustomers(context.Background(), "tok", dto.RangeQuery{})
	require.NoError(t, err)
	assert.Nil(t, exp.rng)
}
