package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-rsvp/internal/queue"
	"github.com/iliyamo/event-rsvp/internal/service"
	"github.com/iliyamo/event-rsvp/internal/utils"
)

// RSVPHandler serves the public admission endpoint.
type RSVPHandler struct {
	Admission *service.Admission
}

func NewRSVPHandler(a *service.Admission) *RSVPHandler {
	return &RSVPHandler{Admission: a}
}

type rsvpReq struct {
	Slug    string `json:"slug"`
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Notes   string `json:"notes"`
}

type rsvpResp struct {
	RSVPID    string    `json:"rsvp_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	WAURL     string    `json:"wa_url,omitempty"`
}

// Create admits a reservation.  On success the response carries the
// waitlisted record plus, when the event has a support phone, a pre-filled
// WhatsApp link.  The broker notification is fire-and-forget.
func (h *RSVPHandler) Create(c echo.Context) error {
	var req rsvpReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	rec, event, err := h.Admission.Admit(c.Request().Context(), service.AdmissionRequest{
		Slug:    req.Slug,
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Company: req.Company,
		Notes:   req.Notes,
	})
	if err != nil {
		return writeServiceError(c, err)
	}

	resp := rsvpResp{
		RSVPID:    rec.ID,
		Status:    string(rec.Status),
		CreatedAt: rec.CreatedAt,
	}
	if event.WAPhone != nil {
		resp.WAURL = utils.WALink(*event.WAPhone, rec.FullName, event.Title, event.VenueName, event.DateStart)
	}

	ev := queue.RSVPAdmittedEvent{
		RSVPID:     rec.ID,
		EventID:    event.ID,
		EventSlug:  event.Slug,
		EventTitle: event.Title,
		FullName:   rec.FullName,
		Status:     string(rec.Status),
		AdmittedAt: rec.CreatedAt.UTC().Format(time.RFC3339),
	}
	if rec.Email != nil {
		ev.Email = *rec.Email
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = queue.PublishRSVPAdmitted(ctx, ev)
	}()

	return c.JSON(http.StatusCreated, resp)
}
