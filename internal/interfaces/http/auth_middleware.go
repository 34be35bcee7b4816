package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"github.com/jhoicas/botica-stock/internal/application/dto"
	"github.com/jhoicas/botica-stock/pkg/jwt"
)

const (
	LocalToken  = "token"
	LocalUserID = "user_id"
	LocalRole   = "role"
)

// AuthMiddleware exige Authorization: Bearer <token> y guarda una copia del token
// en Locals para reenviarlo al backend. Si jwtSecret no está vacío además verifica firma y
// expiración y guarda subject y rol; si está vacío el backend es quien decide.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		auth := c.Get("Authorization")
		if auth == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "MISSING_TOKEN", Message: "header Authorization requerido",
			})
		}
		const prefix = "Bearer "
		if !strings.HasPrefix(auth, prefix) {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "INVALID_TOKEN", Message: "formato: Bearer <token>",
			})
		}
		tokenString := strings.TrimSpace(strings.TrimPrefix(auth, prefix))
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code: "MISSING_TOKEN", Message: "token vacío",
			})
		}
		if jwtSecret != "" {
			subject, role, err := jwt.Parse(jwtSecret, tokenString)
			if err != nil {
				return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
					Code: "SESSION_EXPIRED", Message: "token inválido o expirado", Redirect: "/login",
				})
			}
			c.Locals(LocalUserID, subject)
			c.Locals(LocalRole, role)
		}
		c.Locals(LocalToken, utils.CopyString(tokenString))
		return c.Next()
	}
}

// RequireRole restringe la ruta a los roles indicados (sin distinguir mayúsculas).
// Solo actúa cuando AuthMiddleware verificó el token; sin claims locales la
// autorización queda en manos del backend.
func RequireRole(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if GetUserID(c) == "" {
			return c.Next()
		}
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code: "MISSING_ROLE", Message: "el token no incluye rol",
			})
		}
		for _, r := range roles {
			if strings.EqualFold(r, role) {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
			Code: "FORBIDDEN", Message: "no tiene permisos para este recurso",
		})
	}
}

// GetToken devuelve el token Bearer de la petición (vacío si no pasó por AuthMiddleware).
func GetToken(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalToken).(string)
	return v
}

// GetUserID devuelve el subject del token verificado.
func GetUserID(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalUserID).(string)
	return v
}

// GetRole devuelve el rol del token verificado.
func GetRole(c *fiber.Ctx) string {
	v, _ := c.Locals(LocalRole).(string)
	return v
}
