package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/jhoicas/botica-stock/internal/application/dto"
	"github.com/jhoicas/botica-stock/internal/domain"
	"github.com/jhoicas/botica-stock/internal/domain/repository"
)

// AuthUseCase inicio de sesión. Las credenciales las verifica el backend; el BFF
// solo valida la forma y reenvía la respuesta (token + usuario) sin modificarla.
type AuthUseCase struct {
	sessions repository.SessionRepository
	log      zerolog.Logger
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(sessions repository.SessionRepository, log zerolog.Logger) *AuthUseCase {
	return &AuthUseCase{sessions: sessions, log: log}
}

// Login reenvía dni/password al backend. Un 401 del backend llega como
// domain.ErrSessionExpired y aquí se traduce a credenciales inválidas.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (json.RawMessage, error) {
	dni := strings.TrimSpace(in.DNI)
	if dni == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: dni y password son requeridos", domain.ErrInvalidInput)
	}
	raw, err := uc.sessions.Login(ctx, dni, in.Password)
	if err != nil {
		if errors.Is(err, domain.ErrSessionExpired) {
			uc.log.Info().Str("dni", maskDNI(dni)).Msg("login rechazado")
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	uc.log.Info().Str("dni", maskDNI(dni)).Msg("login correcto")
	return raw, nil
}

// maskDNI deja visibles los dos últimos dígitos.
func maskDNI(dni string) string {
	if len(dni) <= 2 {
		return "**"
	}
	return strings.Repeat("*", len(dni)-2) + dni[len(dni)-2:]
}
