package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/hamzahalilovic/social-network-developers/internal/pkg/jwt"
)

// Clients send the token in a custom header rather than the Authorization
// bearer scheme; that is the wire contract this API has always had.
const HeaderAuthToken = "x-auth-token"

const CtxUserIDKey = "user_id"

type AuthMiddleware struct {
	jwt jwt.Service
}

func NewAuthMiddleware(jwtSvc jwt.Service) *AuthMiddleware {
	return &AuthMiddleware{jwt: jwtSvc}
}

func (m *AuthMiddleware) Middleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		token := strings.TrimSpace(c.Get(HeaderAuthToken))
		if token == "" {
			return NewAppError(fiber.StatusUnauthorized, "No token, authorization denied", nil)
		}

		claims, err := m.jwt.Validate(token)
		if err != nil {
			return NewAppError(fiber.StatusUnauthorized, "Token is not valid", err)
		}

		c.Locals(CtxUserIDKey, claims.User.ID)

		return c.Next()
	}
}
