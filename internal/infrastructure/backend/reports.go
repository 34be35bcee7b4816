package backend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/jhoicas/botica-stock/internal/domain"
	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
)

var (
	_ repository.ReportsRepository = (*Client)(nil)
	_ repository.ExportRepository  = (*Client)(nil)
	_ repository.SessionRepository = (*Client)(nil)
)

// isoMillis formato de fechas en query string (UTC con milisegundos).
const isoMillis = "2006-01-02T15:04:05.000Z"

func formatInstant(t time.Time) string {
	return t.UTC().Format(isoMillis)
}

func rangeQuery(r entity.DateRange) url.Values {
	q := url.Values{}
	q.Set("from", formatInstant(r.From))
	q.Set("to", formatInstant(r.To))
	return q
}

func inventoryQuery(q entity.InventoryQuery, paged bool) url.Values {
	v := url.Values{}
	if paged {
		v.Set("page", strconv.Itoa(q.Page))
		v.Set("size", strconv.Itoa(q.Size))
		v.Set("sort", q.Sort)
		v.Set("dir", q.Dir)
	}
	setIfNotEmpty(v, "search", q.Search)
	setIfNotEmpty(v, "categoria", q.Category)
	if q.Active != nil {
		v.Set("activo", strconv.FormatBool(*q.Active))
	}
	return v
}

// ── Ventas ────────────────────────────────────────────────────────────────────

func (c *Client) SalesSummary(ctx context.Context, token string, r entity.DateRange) (*entity.SalesSummary, error) {
	var out entity.SalesSummary
	ok, err := c.getJSON(ctx, token, "/api/reports/sales/summary", rangeQuery(r), &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

func (c *Client) SalesByDay(ctx context.Context, token string, r entity.DateRange) ([]entity.SalesByDay, error) {
	out := []entity.SalesByDay{}
	if _, err := c.getJSON(ctx, token, "/api/reports/sales/by-day", rangeQuery(r), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) SalesByHour(ctx context.Context, token string, r entity.DateRange) ([]entity.SalesByHour, error) {
	out := []entity.SalesByHour{}
	if _, err := c.getJSON(ctx, token, "/api/reports/sales/by-hour", rangeQuery(r), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) TopProducts(ctx context.Context, token string, r entity.DateRange, limit int) ([]entity.TopProduct, error) {
	q := rangeQuery(r)
	q.Set("limit", strconv.Itoa(limit))
	out := []entity.TopProduct{}
	if _, err := c.getJSON(ctx, token, "/api/reports/sales/top-products", q, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) PaymentMix(ctx context.Context, token string, r entity.DateRange) ([]entity.PaymentMix, error) {
	out := []entity.PaymentMix{}
	if _, err := c.getJSON(ctx, token, "/api/reports/sales/payment-mix", rangeQuery(r), &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

func (c *Client) CashSummary(ctx context.Context, token string, r entity.DateRange) (*entity.CashSummary, error) {
	var out entity.CashSummary
	ok, err := c.getJSON(ctx, token, "/api/reports/caja/summary", rangeQuery(r), &out)
	if err != nil || !ok {
		return nil, err
	}
	return &out, nil
}

// ── Clientes ──────────────────────────────────────────────────────────────────

func (c *Client) TopCustomers(ctx context.Context, token string, cq entity.CustomerQuery) ([]entity.TopCustomer, error) {
	q := url.Values{}
	if cq.Range != nil {
		q = rangeQuery(*cq.Range)
	}
	q.Set("limit", strconv.Itoa(cq.Limit))
	q.Set("sortBy", cq.SortBy)
	out := []entity.TopCustomer{}
	if _, err := c.getJSON(ctx, token, "/api/reports/customers/top", q, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// ── Inventario ────────────────────────────────────────────────────────────────

func (c *Client) InventoryFull(ctx context.Context, token string, iq entity.InventoryQuery) (*entity.Page[entity.InventoryProductFull], error) {
	body, err := c.getBody(ctx, token, "/api/reports/inventory/full", inventoryQuery(iq, true))
	if err != nil {
		return nil, err
	}
	p, _, err := DecodePage[entity.InventoryProductFull](body, iq.Page, iq.Size)
	if err != nil {
		return nil, fmt.Errorf("inventario completo: %w", err)
	}
	return &p, nil
}

func (c *Client) InventoryLots(ctx context.Context, token, productCode string) ([]entity.InventoryLot, error) {
	q := url.Values{}
	q.Set("codigo_barras", productCode)
	out := []entity.InventoryLot{}
	if _, err := c.getJSON(ctx, token, "/api/reports/inventory/lots", q, &out); err != nil {
		return nil, err
	}
	return nonNil(out), nil
}

// ── Boletas ───────────────────────────────────────────────────────────────────

// Boletas lista boletas aceptando las tres formas de respuesta del backend.
// La página de la vista es 1-based; la devuelta es 0-based como el resto.
func (c *Client) Boletas(ctx context.Context, token string, bq entity.BoletaQuery) (*entity.Page[entity.Boleta], error) {
	if bq.Page < 1 {
		bq.Page = 1
	}
	if bq.Size <= 0 {
		bq.Size = 10
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(bq.Page))
	q.Set("limit", strconv.Itoa(bq.Size))
	setIfNotEmpty(q, "search", bq.Search)
	setIfNotEmpty(q, "from", bq.From)
	setIfNotEmpty(q, "to", bq.To)

	body, err := c.getBody(ctx, token, "/api/boletas", q)
	if err != nil {
		return nil, err
	}
	p, kind, err := DecodePage[entity.Boleta](body, bq.Page-1, bq.Size)
	if err != nil {
		return nil, fmt.Errorf("boletas: %w", err)
	}
	c.log.Debug().Str("kind", kind.String()).Int("total", p.TotalElements).Msg("boletas")
	return &p, nil
}

func (c *Client) BoletaByID(ctx context.Context, token string, id int64) (*entity.Boleta, error) {
	var out entity.Boleta
	ok, err := c.getJSON(ctx, token, "/api/boletas/"+strconv.FormatInt(id, 10), nil, &out)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &out, nil
}

// ── Exportaciones ─────────────────────────────────────────────────────────────

func (c *Client) ExportInventoryFull(ctx context.Context, token string, iq entity.InventoryQuery) (*entity.Download, error) {
	return c.download(ctx, token, "/api/reports/inventory/export-full", inventoryQuery(iq, false), "inventario_full.xlsx")
}

// ExportInventory days solo se envía para near-expiry.
func (c *Client) ExportInventory(ctx context.Context, token string, scope entity.InventoryExportScope, days int) (*entity.Download, error) {
	if !scope.Valid() {
		return nil, fmt.Errorf("%w: alcance %q", domain.ErrInvalidInput, scope)
	}
	q := url.Values{}
	q.Set("scope", string(scope))
	if scope == entity.ExportScopeNearExpiry {
		q.Set("days", strconv.Itoa(days))
	}
	q.Set("format", "xlsx")
	return c.download(ctx, token, "/api/reports/inventory/export", q, "inventario_"+string(scope)+".xlsx")
}

func (c *Client) ExportInventoryProfessional(ctx context.Context, token string, iq entity.InventoryQuery) (*entity.Download, error) {
	return c.download(ctx, token, "/api/reports/inventory/export-professional", inventoryQuery(iq, false), "Inventario_Botica.xlsx")
}

func (c *Client) ExportCustomers(ctx context.Context, token string, r *entity.DateRange) (*entity.Download, error) {
	q := url.Values{}
	if r != nil {
		q = rangeQuery(*r)
	}
	q.Set("format", "xlsx")
	return c.download(ctx, token, "/api/reports/customers/export", q, "clientes_top.xlsx")
}

// ExportSales groupBy: "day" o "product".
func (c *Client) ExportSales(ctx context.Context, token string, r entity.DateRange, groupBy string) (*entity.Download, error) {
	var name string
	switch groupBy {
	case "day":
		name = "ventas_por_dia.xlsx"
	case "product":
		name = "ventas_por_producto.xlsx"
	default:
		return nil, fmt.Errorf("%w: group_by %q", domain.ErrInvalidInput, groupBy)
	}
	q := rangeQuery(r)
	q.Set("group_by", groupBy)
	q.Set("format", "xlsx")
	return c.download(ctx, token, "/api/reports/sales/export", q, name)
}

// ── Sesión ────────────────────────────────────────────────────────────────────

// Login reenvía las credenciales; la respuesta (token + usuario) se devuelve sin tocar.
func (c *Client) Login(ctx context.Context, dni, password string) (json.RawMessage, error) {
	resp, err := c.send(ctx, request{
		method: http.MethodPost,
		path:   "/api/auth/login",
		body:   map[string]string{"dni": dni, "password": password},
		public: true,
	})
	if err != nil {
		return nil, err
	}
	if resp.isEmpty() || !json.Valid(resp.body) {
		return nil, fmt.Errorf("%w: respuesta de login inválida", domain.ErrBackend)
	}
	return json.RawMessage(resp.body), nil
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
