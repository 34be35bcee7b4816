package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/botica-stock/internal/application/dto"
	"github.com/jhoicas/botica-stock/internal/domain"
	"github.com/jhoicas/botica-stock/internal/infrastructure/backend"
)

// RedirectCashRegister vista donde se cierra la caja.
const RedirectCashRegister = "/dashboard/caja"

// writeError traduce un error de dominio a la respuesta HTTP.
func writeError(c *fiber.Ctx, err error) error {
	status, body := errorResponse(err)
	return c.Status(status).JSON(body)
}

func errorResponse(err error) (int, dto.ErrorResponse) {
	switch {
	case errors.Is(err, domain.ErrMissingToken):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "sesión requerida", Redirect: "/login"}
	case errors.Is(err, domain.ErrSessionExpired):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "SESSION_EXPIRED", Message: "su sesión expiró, vuelva a iniciar sesión", Redirect: "/login"}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return fiber.StatusUnauthorized, dto.ErrorResponse{Code: "INVALID_CREDENTIALS", Message: "DNI o contraseña incorrectos"}
	case errors.Is(err, domain.ErrCashRegisterOpen):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "CASH_REGISTER_OPEN", Message: "debe cerrar su caja antes de continuar", Redirect: RedirectCashRegister}
	case errors.Is(err, domain.ErrOutsideShift):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "OUTSIDE_SHIFT", Message: "acceso fuera de su horario de turno"}
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, dto.ErrorResponse{Code: "FORBIDDEN", Message: "no tiene permisos para este recurso"}
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()}
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound, dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()}
	case errors.Is(err, domain.ErrNotConfigured):
		return fiber.StatusNotImplemented, dto.ErrorResponse{Code: "NOT_CONFIGURED", Message: err.Error()}
	}

	var se *backend.StatusError
	if errors.As(err, &se) {
		// Los 4xx del backend (validaciones, conflictos) se reenvían con su estado.
		status := fiber.StatusBadGateway
		if se.Status >= 400 && se.Status < 500 {
			status = se.Status
		}
		return status, dto.ErrorResponse{Code: "BACKEND_ERROR", Message: se.Error()}
	}
	if errors.Is(err, domain.ErrBackend) {
		return fiber.StatusBadGateway, dto.ErrorResponse{Code: "BACKEND_ERROR", Message: err.Error()}
	}
	return fiber.StatusInternalServerError, dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()}
}
