package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// RequireOrganizer aborts with 403 unless the authenticated principal
// carries the organizer capability.  It assumes JWTAuth ran earlier in the
// chain; an anonymous principal never passes.
func RequireOrganizer() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !CurrentPrincipal(c).CanManageEvents() {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
			}
			return next(c)
		}
	}
}
