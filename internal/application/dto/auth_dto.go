package dto

// LoginRequest credenciales para POST /api/auth/login.
type LoginRequest struct {
	DNI      string `json:"dni" validate:"required,min=6,max=20"`
	Password string `json:"password" validate:"required"`
}
