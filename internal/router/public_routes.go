package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-rsvp/internal/handler"
)

// RegisterPublic registers the attendee-facing endpoints: event browsing
// and admission.  The event reads sit behind the response cache; the
// admission endpoint is rate-limited and never cached.
func RegisterPublic(e *echo.Echo, events *handler.PublicEventHandler, rsvps *handler.RSVPHandler,
	cache echo.MiddlewareFunc, limit echo.MiddlewareFunc) {
	e.GET("/v1/events", events.List, cache)
	e.GET("/v1/events/:slug", events.Detail, cache)
	e.POST("/v1/rsvps", rsvps.Create, limit)
}
