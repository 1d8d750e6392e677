package middleware

import (
	"strings"

	deliverycontext "expensegst/internal/delivery/context"
	"expensegst/internal/delivery/http/response"
	"expensegst/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware verifies bearer session tokens and attaches the asserted
// user identity to the request context. Handlers behind it never touch the
// raw token.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate is the core middleware function that validates the session token.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return response.Unauthorized(c, "Invalid or expired token")
		}

		deliverycontext.SetUserID(c, claims.UserID)

		return next(c)
	}
}
