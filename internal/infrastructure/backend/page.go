package backend

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/jhoicas/botica-stock/internal/domain"
	"github.com/jhoicas/botica-stock/internal/domain/entity"
)

// PageKind forma de la respuesta paginada que envió el backend.
type PageKind int

const (
	// PageKindEmpty null, cuerpo vacío u objeto sin lista.
	PageKindEmpty PageKind = iota
	// PageKindSpring {content, totalElements|total, page, size, totalPages}.
	PageKindSpring
	// PageKindBoletas {boletas, total}.
	PageKindBoletas
	// PageKindArray arreglo sin envoltorio.
	PageKindArray
)

func (k PageKind) String() string {
	switch k {
	case PageKindSpring:
		return "spring"
	case PageKindBoletas:
		return "boletas"
	case PageKindArray:
		return "array"
	default:
		return "empty"
	}
}

type rawPage struct {
	Content       json.RawMessage `json:"content"`
	Boletas       json.RawMessage `json:"boletas"`
	TotalElements *int            `json:"totalElements"`
	Total         *int            `json:"total"`
	Page          *int            `json:"page"`
	Size          *int            `json:"size"`
	TotalPages    *int            `json:"totalPages"`
}

func isJSONArray(raw []byte) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// classifyPage identifica la forma del cuerpo. El orden de prueba sigue al de la vista:
// boletas, content, arreglo.
func classifyPage(body []byte) (PageKind, rawPage, error) {
	var rp rawPage
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return PageKindEmpty, rp, nil
	}
	switch trimmed[0] {
	case '[':
		return PageKindArray, rp, nil
	case '{':
		if err := json.Unmarshal(trimmed, &rp); err != nil {
			return PageKindEmpty, rp, fmt.Errorf("%w: página inválida: %v", domain.ErrBackend, err)
		}
		if isJSONArray(rp.Boletas) {
			return PageKindBoletas, rp, nil
		}
		if isJSONArray(rp.Content) {
			return PageKindSpring, rp, nil
		}
		return PageKindEmpty, rp, nil
	default:
		return PageKindEmpty, rp, nil
	}
}

// DecodePage normaliza cualquiera de las formas paginadas a entity.Page.
// fallbackPage (0-based) y fallbackSize completan lo que el backend no envía.
func DecodePage[T any](body []byte, fallbackPage, fallbackSize int) (entity.Page[T], PageKind, error) {
	kind, rp, err := classifyPage(body)
	if err != nil {
		return entity.Page[T]{}, kind, err
	}

	out := entity.Page[T]{Content: []T{}, Page: fallbackPage, Size: fallbackSize}

	var list []byte
	switch kind {
	case PageKindEmpty:
		return out, kind, nil
	case PageKindArray:
		list = body
	case PageKindBoletas:
		list = rp.Boletas
	case PageKindSpring:
		list = rp.Content
	default:
		return out, kind, fmt.Errorf("%w: forma de página desconocida %d", domain.ErrBackend, kind)
	}

	if err := json.Unmarshal(list, &out.Content); err != nil {
		return entity.Page[T]{}, kind, fmt.Errorf("%w: elementos de la página: %v", domain.ErrBackend, err)
	}
	if out.Content == nil {
		out.Content = []T{}
	}

	out.TotalElements = len(out.Content)
	switch kind {
	case PageKindSpring:
		if rp.TotalElements != nil {
			out.TotalElements = *rp.TotalElements
		} else if rp.Total != nil {
			out.TotalElements = *rp.Total
		}
		if rp.Size != nil {
			out.Size = *rp.Size
		}
		if rp.Page != nil {
			out.Page = *rp.Page
		}
	case PageKindBoletas:
		if rp.Total != nil {
			out.TotalElements = *rp.Total
		}
	}

	if kind == PageKindSpring && rp.TotalPages != nil {
		out.TotalPages = *rp.TotalPages
	} else {
		out.TotalPages = totalPages(out.TotalElements, out.Size)
	}
	return out, kind, nil
}

func totalPages(total, size int) int {
	if size <= 0 {
		return 1
	}
	return int(math.Max(1, math.Ceil(float64(total)/float64(size))))
}
