// Package handler contains the echo HTTP handlers.  Handlers decode
// requests, call the service layer and translate its error taxonomy onto
// HTTP status codes; no business rules live here.
package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/iliyamo/event-rsvp/internal/service"
)

// writeServiceError maps the service error taxonomy onto HTTP responses:
// validation 400, not found 404, conflict and capacity 409, permission 403,
// everything else 500.  Internal causes are logged, never surfaced.
func writeServiceError(c echo.Context, err error) error {
	if errors.Is(err, service.ErrPermissionDenied) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	var se *service.Error
	if !errors.As(err, &se) {
		log.Error().Err(err).Str("path", c.Path()).Msg("unclassified handler error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
	switch se.Kind {
	case service.KindValidation:
		return c.JSON(http.StatusBadRequest, echo.Map{"error": se.Message})
	case service.KindNotFound:
		return c.JSON(http.StatusNotFound, echo.Map{"error": se.Message})
	case service.KindConflict, service.KindCapacity:
		return c.JSON(http.StatusConflict, echo.Map{"error": se.Message})
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("internal service error")
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "internal error"})
	}
}
