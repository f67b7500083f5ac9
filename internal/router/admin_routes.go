package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-rsvp/internal/handler"
	"github.com/iliyamo/event-rsvp/internal/middleware"
)

// RegisterAdmin registers the organizer endpoints under /v1/admin.  Every
// route requires a valid access token carrying the ORGANIZER role.
func RegisterAdmin(e *echo.Echo, jwtSecret string,
	events *handler.AdminEventHandler, rsvps *handler.AdminRSVPHandler, templates *handler.AdminTemplateHandler) {
	g := e.Group("/v1/admin")
	g.Use(middleware.JWTAuth(jwtSecret))
	g.Use(middleware.RequireOrganizer())

	g.GET("/events", events.List)
	g.POST("/events", events.Create)
	g.GET("/events/:id", events.Get)
	g.PUT("/events/:id", events.Update)
	g.DELETE("/events/:id", events.Delete)
	g.GET("/events/:id/rsvps", events.ListRSVPs)

	g.PUT("/rsvps/:id", rsvps.Transition)

	g.GET("/templates", templates.List)
	g.POST("/templates", templates.Create)
	g.GET("/templates/:id", templates.Get)
	g.PUT("/templates/:id", templates.Update)
	g.DELETE("/templates/:id", templates.Delete)
	g.POST("/templates/:id/use", templates.Materialize)
}
