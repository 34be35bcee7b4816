// Package backend implementa los puertos de lectura contra la API REST de la farmacia.
//
// Cada llamada reenvía el Bearer token del usuario. El cliente no guarda sesión:
// si el backend responde 401 el error sube como domain.ErrSessionExpired y es la
// vista la que vuelve a pedir login.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jhoicas/botica-stock/internal/domain"
	"github.com/jhoicas/botica-stock/internal/domain/entity"
	"github.com/jhoicas/botica-stock/pkg/config"
)

const (
	maxJSONBody     = 16 << 20
	maxDownloadBody = 64 << 20

	headerRequestID = "X-Request-ID"
)

// Client cliente HTTP del backend. Seguro para uso concurrente.
type Client struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	loc        *time.Location
	log        zerolog.Logger

	// Tope de bytes por respuesta; uno mayor es error, nunca un cuerpo truncado.
	maxJSONBytes     int64
	maxDownloadBytes int64
}

// NewClient construye el cliente. loc es la zona usada para interpretar fechas de vencimiento.
func NewClient(cfg config.BackendConfig, loc *time.Location, log zerolog.Logger) *Client {
	limit := rate.Inf
	if cfg.RatePerSecond > 0 {
		limit = rate.Limit(cfg.RatePerSecond)
	}
	burst := cfg.FetchConcurrency
	if burst <= 0 {
		burst = 1
	}
	timeout := cfg.Timeout()
	if timeout <= 0 {
		timeout = 20 * time.Second
	}
	if loc == nil {
		loc = time.UTC
	}
	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(limit, burst),
		loc:        loc,
		log:        log,

		maxJSONBytes:     maxJSONBody,
		maxDownloadBytes: maxDownloadBody,
	}
}

// request descripción de una llamada al backend.
type request struct {
	method string
	path   string
	query  url.Values
	token  string
	body   any
	public bool // no exige token (login)
}

type response struct {
	status      int
	contentType string
	disposition string
	body        []byte
}

func (r *response) isBinary() bool {
	ct := strings.ToLower(r.contentType)
	return strings.Contains(ct, "application/octet-stream") ||
		strings.Contains(ct, "application/vnd.openxmlformats")
}

func (r *response) isEmpty() bool {
	return r.status == http.StatusNoContent || len(bytes.TrimSpace(r.body)) == 0
}

// send ejecuta la llamada y convierte las respuestas no-2xx en errores de dominio.
func (c *Client) send(ctx context.Context, in request) (*response, error) {
	if !in.public && strings.TrimSpace(in.token) == "" {
		return nil, domain.ErrMissingToken
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("backend: esperar turno: %w", err)
	}

	target := c.baseURL + in.path
	if len(in.query) > 0 {
		target += "?" + in.query.Encode()
	}

	var reqBody io.Reader
	if in.body != nil {
		payload, err := json.Marshal(in.body)
		if err != nil {
			return nil, fmt.Errorf("backend: serializar request: %w", err)
		}
		reqBody = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, in.method, target, reqBody)
	if err != nil {
		return nil, fmt.Errorf("backend: crear request: %w", err)
	}
	if in.token != "" {
		req.Header.Set("Authorization", "Bearer "+in.token)
	}
	if in.body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := uuid.NewString()
	req.Header.Set(headerRequestID, reqID)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("backend: timeout o cancelación: %w", ctx.Err())
		}
		return nil, fmt.Errorf("%w: llamada HTTP fallida: %v", domain.ErrBackend, err)
	}
	defer resp.Body.Close()

	out := &response{
		status:      resp.StatusCode,
		contentType: resp.Header.Get("Content-Type"),
		disposition: resp.Header.Get("Content-Disposition"),
	}
	limit := c.maxJSONBytes
	if out.isBinary() {
		limit = c.maxDownloadBytes
	}
	out.body, err = io.ReadAll(io.LimitReader(resp.Body, limit+1))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %v", domain.ErrBackend, err)
	}
	if int64(len(out.body)) > limit {
		c.log.Warn().
			Str("request_id", reqID).
			Str("path", in.path).
			Int64("limit", limit).
			Msg("respuesta del backend demasiado grande")
		return nil, fmt.Errorf("%w: respuesta supera %d bytes", domain.ErrBackend, limit)
	}

	c.log.Debug().
		Str("request_id", reqID).
		Str("method", in.method).
		Str("path", in.path).
		Int("status", out.status).
		Dur("elapsed", time.Since(start)).
		Msg("backend")

	if out.status < 200 || out.status > 299 {
		return nil, classifyStatus(out.status, backendMessage(out.body))
	}
	return out, nil
}

// getJSON decodifica la respuesta en out. Devuelve false si el backend no envió contenido.
func (c *Client) getJSON(ctx context.Context, token, path string, query url.Values, out any) (bool, error) {
	resp, err := c.send(ctx, request{method: http.MethodGet, path: path, query: query, token: token})
	if err != nil {
		return false, err
	}
	return decodeJSON(resp, path, out)
}

func decodeJSON(resp *response, path string, out any) (bool, error) {
	if resp.isEmpty() {
		return false, nil
	}
	if resp.isBinary() {
		return false, fmt.Errorf("%w: %s devolvió un archivo y se esperaba JSON", domain.ErrBackend, path)
	}
	if err := json.Unmarshal(resp.body, out); err != nil {
		return false, fmt.Errorf("%w: JSON inválido en %s: %v", domain.ErrBackend, path, err)
	}
	return true, nil
}

// download descarga un archivo. El nombre sale de Content-Disposition o de fallbackName.
func (c *Client) download(ctx context.Context, token, path string, query url.Values, fallbackName string) (*entity.Download, error) {
	resp, err := c.send(ctx, request{method: http.MethodGet, path: path, query: query, token: token})
	if err != nil {
		return nil, err
	}
	if resp.isEmpty() {
		return nil, fmt.Errorf("%w: %s devolvió un archivo vacío", domain.ErrBackend, path)
	}
	ct := resp.contentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	return &entity.Download{
		Filename:    filenameFrom(resp.disposition, fallbackName),
		ContentType: ct,
		Body:        resp.body,
	}, nil
}

func filenameFrom(disposition, fallback string) string {
	if disposition == "" {
		return fallback
	}
	_, params, err := mime.ParseMediaType(disposition)
	if err != nil {
		return fallback
	}
	if name := params["filename"]; name != "" {
		return name
	}
	return fallback
}
