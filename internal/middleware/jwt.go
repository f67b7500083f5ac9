package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-rsvp/internal/auth"
)

// principalKey is the echo context key under which JWTAuth stores the
// verified caller.  Handlers read it through CurrentPrincipal.
const principalKey = "principal"

// JWTAuth validates a Bearer access token signed with the given secret and
// stores the resulting auth.Principal in the request context.  Requests
// without a valid token are rejected with 401 before any handler runs.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing bearer token"})
			}
			raw := strings.TrimPrefix(header, "Bearer ")

			tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, echo.ErrUnauthorized
				}
				return []byte(secret), nil
			})
			if err != nil || !tok.Valid {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid token"})
			}
			claims, ok := tok.Claims.(jwt.MapClaims)
			if !ok {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid claims"})
			}

			p := auth.Principal{}
			if sub, ok := claims["sub"].(string); ok {
				p.UserID = sub
			}
			if role, ok := claims["role"].(string); ok {
				p.Role = role
			}
			c.Set(principalKey, p)
			return next(c)
		}
	}
}

// CurrentPrincipal returns the principal stored by JWTAuth.  Outside a
// protected route it returns the zero (anonymous) principal.
func CurrentPrincipal(c echo.Context) auth.Principal {
	if p, ok := c.Get(principalKey).(auth.Principal); ok {
		return p
	}
	return auth.Principal{}
}
