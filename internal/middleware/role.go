package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireRole rejects requests whose "role" context value, stored by
// JWTAuth, is not one of roles. Like JWTAuth it is a no-op when enforce is
// false, which is how the open write path is kept when no secret is set.
func RequireRole(enforce bool, roles ...string) echo.MiddlewareFunc {
	if !enforce {
		return func(next echo.HandlerFunc) echo.HandlerFunc { return next }
	}
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("role").(string)
			if !ok || !allowed[role] {
				return c.JSON(http.StatusForbidden, map[string]string{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
