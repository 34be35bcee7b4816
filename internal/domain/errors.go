package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrMissingToken       = errors.New("token de sesión ausente")
	ErrSessionExpired     = errors.New("sesión expirada")
	ErrInvalidCredentials = errors.New("credenciales inválidas")
	ErrForbidden          = errors.New("acceso denegado")
	ErrCashRegisterOpen   = errors.New("debe cerrar su caja antes de continuar")
	ErrOutsideShift       = errors.New("acceso fuera de horario")
	ErrBackend            = errors.New("error del backend")
	ErrNotConfigured      = errors.New("funcionalidad no configurada")
)
