package dto

// PageResponse metadatos de una página (1-based).
type PageResponse struct {
	Page       int `json:"page"`
	Size       int `json:"size"`
	Total      int `json:"total"`
	TotalPages int `json:"total_pages"`
}

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	// Redirect ruta sugerida a la vista (ej. cerrar caja).
	Redirect string `json:"redirect,omitempty"`
}
