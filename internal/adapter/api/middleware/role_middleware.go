package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"alumnihub/internal/domain/entity"
)

// RequireRoles rejects requests whose authenticated role is not in the
// allowed set. Must run after Authenticate.
func RequireRoles(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(entity.Role)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
			}

			for _, allowed := range roles {
				if role == allowed {
					return next(c)
				}
			}

			return echo.NewHTTPError(http.StatusForbidden, "Insufficient privileges")
		}
	}
}
