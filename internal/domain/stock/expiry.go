package stock

import (
	"fmt"
	"strings"
	"time"
)

// expiryLayouts formatos de fecha de vencimiento que envía el backend.
var expiryLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"02/01/2006",
}

// ParseExpiry interpreta la fecha de vencimiento de un lote en la zona loc.
// Cadena vacía → (nil, nil). Formato no reconocido → (nil, error); el llamador decide registrar.
func ParseExpiry(raw string, loc *time.Location) (*time.Time, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, nil
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range expiryLayouts {
		t, err := time.ParseInLocation(layout, s, loc)
		if err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("fecha de vencimiento no reconocida: %q", raw)
}

// DaysUntil días calendario entre today y expiry, ambos tomados en la zona de today.
// Equivale a ceil((expiry - hoy) / 1 día) con las dos fechas a medianoche, sin el
// desfase de una hora que introducen los cambios de horario.
// Devuelve nil si expiry es nil.
func DaysUntil(expiry *time.Time, today time.Time) *int {
	if expiry == nil {
		return nil
	}
	loc := today.Location()
	d := int(civilDay(*expiry, loc) - civilDay(today, loc))
	return &d
}

// civilDay número de día calendario (días desde 1970-01-01) de t en loc.
func civilDay(t time.Time, loc *time.Location) int64 {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400
}
