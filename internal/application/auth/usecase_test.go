package auth

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/botica-stock/internal/application/dto"
	"github.com/jhoicas/botica-stock/internal/domain"
)

type fakeSessions struct {
	err     error
	gotDNI  string
	gotPass string
}

func (f *fakeSessions) Login(_ context.Context, dni, password string) (json.RawMessage, error) {
	f.gotDNI, f.gotPass = dni, password
	if f.err != nil {
		return nil, f.err
	}
	return json.RawMessage(`{"token":"abc"}`), nil
}

func TestLogin_ReenviaCredenciales(t *testing.T) {
	s := &fakeSessions{}
	uc := NewAuthUseCase(s, zerolog.Nop())

	raw, err := uc.Login(context.Background(), dto.LoginRequest{DNI: " 12345678 ", Password: "x"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"token":"abc"}`, string(raw))
	assert.Equal(t, "12345678", s.gotDNI)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	uc := NewAuthUseCase(&fakeSessions{err: domain.ErrSessionExpired}, zerolog.Nop())

	_, err := uc.Login(context.Background(), dto.LoginRequest{DNI: "12345678", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLogin_CamposVacios(t *testing.T) {
	uc := NewAuthUseCase(&fakeSessions{}, zerolog.Nop())

	_, err := uc.Login(context.Background(), dto.LoginRequest{DNI: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMaskDNI(t *testing.T) {
	assert.Equal(t, "******78", maskDNI("12345678"))
	assert.Equal(t, "**", maskDNI("1"))
}
