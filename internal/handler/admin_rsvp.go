package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-rsvp/internal/middleware"
	"github.com/iliyamo/event-rsvp/internal/queue"
	"github.com/iliyamo/event-rsvp/internal/service"
)

// AdminRSVPHandler serves reservation lifecycle transitions.
type AdminRSVPHandler struct {
	Lifecycle *service.Lifecycle
}

func NewAdminRSVPHandler(l *service.Lifecycle) *AdminRSVPHandler {
	return &AdminRSVPHandler{Lifecycle: l}
}

type transitionReq struct {
	Status string `json:"status"`
}

// Transition moves one reservation to the requested status.  Invalid
// labels and disallowed edges are rejected before any write.
func (h *AdminRSVPHandler) Transition(c echo.Context) error {
	var req transitionReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	principal := middleware.CurrentPrincipal(c)
	id := c.Param("id")

	rec, from, err := h.Lifecycle.Transition(c.Request().Context(), principal, id, req.Status)
	if err != nil {
		return writeServiceError(c, err)
	}

	ev := queue.RSVPStatusChangedEvent{
		RSVPID:     rec.ID,
		EventID:    rec.EventID,
		FromStatus: string(from),
		ToStatus:   string(rec.Status),
		ChangedBy:  principal.UserID,
		ChangedAt:  time.Now().UTC().Format(time.RFC3339),
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishRSVPStatusChanged(ctx, ev)
	}()

	return c.JSON(http.StatusOK, toRSVPJSON(rec))
}
