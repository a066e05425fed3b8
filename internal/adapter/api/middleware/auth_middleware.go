package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"alumnihub/internal/domain/repository"
)

// TokenVerifier verifies a session credential and returns the user id it was
// issued for.
type TokenVerifier interface {
	VerifyToken(ctx context.Context, idToken string) (string, error)
}

type AuthMiddleware struct {
	verifier TokenVerifier
	userRepo repository.UserRepository
}

func NewAuthMiddleware(verifier TokenVerifier, userRepo repository.UserRepository) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		userRepo: userRepo,
	}
}

// Authenticate verifies the bearer token, resolves the account and stores
// uid and role on the request context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Authorization header is required")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid authorization format")
		}

		uid, err := m.verifier.VerifyToken(c.Request().Context(), parts[1])
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired token")
		}

		user, err := m.userRepo.GetByID(c.Request().Context(), uid)
		if err != nil {
			return echo.NewHTTPError(http.StatusUnauthorized, "Account not found")
		}
		if !user.IsActive {
			return echo.NewHTTPError(http.StatusForbidden, "Account is deactivated")
		}

		c.Set("uid", user.ID)
		c.Set("role", user.Role)

		return next(c)
	}
}
