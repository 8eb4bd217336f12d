// Package middleware provides HTTP middleware components for the application.
// It includes authentication, authorization, and request metrics middleware
// for the fiber web framework.
package middleware

import (
	"log/slog"
	"strings"

	apperrors "bankcards/internal/errors"
	"bankcards/internal/models"
	"bankcards/internal/services/auth"
	"bankcards/internal/utils/response"

	"github.com/gofiber/fiber/v2"
)

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the bearer token from the Authorization header, validates it,
// and stores the user claims in the request context.
type AuthMiddleware struct {
	authService auth.Service
}

func NewAuthMiddleware(authService auth.Service) *AuthMiddleware {
	return &AuthMiddleware{
		authService: authService,
	}
}

// Handler rejects requests without a valid, unrevoked access token.
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return response.Unauthorized(c, "missing authorization header")
	}

	tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
	if !ok || strings.TrimSpace(tokenString) == "" {
		return response.Unauthorized(c, "invalid authorization format")
	}

	claims, err := m.authService.Authenticate(c.UserContext(), strings.TrimSpace(tokenString))
	if err != nil {
		if de, ok := apperrors.As(err); ok && de.Kind == apperrors.KindUnauthorized {
			return response.Error(c, fiber.StatusUnauthorized, de.Code, de.Message)
		}
		slog.ErrorContext(c.UserContext(), "token verification failed", "error", err)
		return response.ServerError(c)
	}

	c.Locals("claims", claims)
	c.Locals("userID", claims.UserID)

	return c.Next()
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, ok := c.Locals("claims").(*models.UserClaims)
	if !ok {
		return response.Unauthorized(c, "invalid claims")
	}

	if claims.Role != models.RoleAdmin {
		slog.WarnContext(c.UserContext(), "admin access denied", "user_id", claims.UserID, "role", claims.Role, "path", c.Path())
		return response.Forbidden(c, "insufficient permissions")
	}

	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, ok := c.Locals("claims").(*models.UserClaims)
		if !ok {
			return response.Unauthorized(c, "unauthorized")
		}

		if claims.HasPermission(permission) {
			return c.Next()
		}

		return response.Forbidden(c, "insufficient permissions")
	}
}
