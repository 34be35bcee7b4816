package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/botica-stock/internal/domain"
	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
	"github.com/jhoicas/botica-stock/internal/domain/stock"
)

var (
	_ repository.LotRepository   = (*Client)(nil)
	_ repository.SessionVerifier = (*Client)(nil)
)

const stockPath = "/api/stock"

// lotRecord lote tal como viaja en GET /api/stock.
type lotRecord struct {
	ID               int64           `json:"id"`
	CodigoStock      *string         `json:"codigoStock"`
	CodigoBarras     string          `json:"codigoBarras"`
	Nombre           string          `json:"nombre"`
	Concentracion    string          `json:"concentracion"`
	CantidadUnidades int64           `json:"cantidadUnidades"`
	CantidadMinima   int64           `json:"cantidadMinima"`
	PrecioCompra     decimal.Decimal `json:"precioCompra"`
	PrecioVenta      decimal.Decimal `json:"precioVenta"`
	FechaVencimiento *string         `json:"fechaVencimiento"`
	Laboratorio      string          `json:"laboratorio"`
	Categoria        string          `json:"categoria"`
}

// VerifySession pide una página de tamaño 1 del stock. Un 401 llega como domain.ErrSessionExpired.
func (c *Client) VerifySession(ctx context.Context, token string) error {
	_, err := c.getBody(ctx, token, stockPath, url.Values{"page": {"0"}, "size": {"1"}})
	return err
}

// ListLots pide una página de lotes (page 0-based) con los filtros q, lab y cat.
func (c *Client) ListLots(ctx context.Context, token string, filter entity.LotFilter, page, size int) (*entity.LotPage, error) {
	if page < 0 || size <= 0 {
		return nil, fmt.Errorf("%w: page=%d size=%d", domain.ErrInvalidInput, page, size)
	}
	q := url.Values{}
	q.Set("page", strconv.Itoa(page))
	q.Set("size", strconv.Itoa(size))
	setIfNotEmpty(q, "q", filter.Query)
	setIfNotEmpty(q, "lab", filter.Lab)
	setIfNotEmpty(q, "cat", filter.Category)

	body, err := c.getBody(ctx, token, stockPath, q)
	if err != nil {
		return nil, err
	}
	p, kind, err := DecodePage[lotRecord](body, page, size)
	if err != nil {
		return nil, fmt.Errorf("listar lotes: %w", err)
	}
	if kind != PageKindSpring {
		c.log.Debug().Str("kind", kind.String()).Msg("forma de página de lotes no estándar")
	}

	lots := make([]entity.Lot, 0, len(p.Content))
	for _, rec := range p.Content {
		lots = append(lots, c.toLot(rec))
	}
	return &entity.LotPage{
		Lots:          lots,
		TotalElements: p.TotalElements,
		Page:          p.Page,
		Size:          p.Size,
		TotalPages:    p.TotalPages,
	}, nil
}

// toLot convierte el registro; una fecha de vencimiento ilegible se trata como ausente.
func (c *Client) toLot(rec lotRecord) entity.Lot {
	l := entity.Lot{
		ID:               rec.ID,
		ProductCode:      rec.CodigoBarras,
		Name:             rec.Nombre,
		Concentration:    rec.Concentracion,
		Units:            rec.CantidadUnidades,
		MinimumThreshold: rec.CantidadMinima,
		PurchasePrice:    rec.PrecioCompra,
		SalePrice:        rec.PrecioVenta,
		Lab:              rec.Laboratorio,
		Category:         rec.Categoria,
	}
	if rec.CodigoStock != nil {
		l.StockCode = *rec.CodigoStock
	}
	if rec.FechaVencimiento != nil {
		exp, err := stock.ParseExpiry(*rec.FechaVencimiento, c.loc)
		if err != nil {
			c.log.Warn().
				Int64("lote_id", rec.ID).
				Str("codigo_barras", rec.CodigoBarras).
				Str("fecha_vencimiento", *rec.FechaVencimiento).
				Msg("fecha de vencimiento inválida, se trata como sin vencimiento")
		}
		l.ExpiryDate = exp
	}
	return l
}

// getBody devuelve el cuerpo JSON crudo (nil si vino vacío).
func (c *Client) getBody(ctx context.Context, token, path string, query url.Values) ([]byte, error) {
	resp, err := c.send(ctx, request{method: http.MethodGet, path: path, query: query, token: token})
	if err != nil {
		return nil, err
	}
	if resp.isEmpty() {
		return nil, nil
	}
	if resp.isBinary() {
		return nil, fmt.Errorf("%w: %s devolvió un archivo y se esperaba JSON", domain.ErrBackend, path)
	}
	return resp.body, nil
}

func setIfNotEmpty(q url.Values, key, value string) {
	if v := strings.TrimSpace(value); v != "" {
		q.Set(key, v)
	}
}
