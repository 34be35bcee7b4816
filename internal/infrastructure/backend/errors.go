package backend

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/jhoicas/botica-stock/internal/domain"
)

// StatusError respuesta no-2xx del backend que no tiene un error de dominio propio.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("error en la petición: %d", e.Status)
	}
	return e.Message
}

// Unwrap permite errors.Is(err, domain.ErrBackend).
func (e *StatusError) Unwrap() error { return domain.ErrBackend }

// backendMessage usa el campo "message" del JSON de error; si no hay, el texto crudo.
func backendMessage(body []byte) string {
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Message != "" {
		return payload.Message
	}
	return strings.TrimSpace(string(body))
}

// classifyStatus traduce el status y mensaje del backend a errores de dominio.
func classifyStatus(status int, msg string) error {
	lower := strings.ToLower(msg)
	switch {
	case status == http.StatusUnauthorized:
		return domain.ErrSessionExpired
	case status == http.StatusForbidden && strings.Contains(lower, "cerrar tu caja"):
		return fmt.Errorf("%w: %s", domain.ErrCashRegisterOpen, msg)
	case status == http.StatusForbidden &&
		(strings.Contains(lower, "fuera de tu horario") || strings.Contains(lower, "fuera de horario")):
		return fmt.Errorf("%w: %s", domain.ErrOutsideShift, msg)
	case status == http.StatusNotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, msg)
	default:
		return &StatusError{Status: status, Message: msg}
	}
}
