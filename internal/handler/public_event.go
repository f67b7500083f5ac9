package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-rsvp/internal/model"
	"github.com/iliyamo/event-rsvp/internal/repository"
)

// PublicEventHandler serves the attendee-facing read endpoints.  Only
// published events are visible here; drafts answer 404 just like events
// that never existed.
type PublicEventHandler struct {
	Events *repository.EventRepo
	RSVPs  *repository.RSVPRepo
}

func NewPublicEventHandler(events *repository.EventRepo, rsvps *repository.RSVPRepo) *PublicEventHandler {
	return &PublicEventHandler{Events: events, RSVPs: rsvps}
}

type eventJSON struct {
	ID          string     `json:"id"`
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	VenueName   string     `json:"venue_name"`
	VenueCode   string     `json:"venue_code"`
	Address     string     `json:"address"`
	MapURL      *string    `json:"map_url,omitempty"`
	WAPhone     *string    `json:"wa_phone,omitempty"`
	CoverImage  *string    `json:"cover_image,omitempty"`
	DateStart   time.Time  `json:"date_start"`
	DateEnd     *time.Time `json:"date_end,omitempty"`
	Capacity    uint32     `json:"capacity"` // 0 = unlimited
	IsPublished bool       `json:"is_published"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func toEventJSON(e *model.Event) eventJSON {
	return eventJSON{
		ID:          e.ID,
		Slug:        e.Slug,
		Title:       e.Title,
		Description: e.Description,
		VenueName:   e.VenueName,
		VenueCode:   string(e.VenueCode),
		Address:     e.Address,
		MapURL:      e.MapURL,
		WAPhone:     e.WAPhone,
		CoverImage:  e.CoverImage,
		DateStart:   e.DateStart,
		DateEnd:     e.DateEnd,
		Capacity:    e.Capacity,
		IsPublished: e.IsPublished,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
}

// List returns published upcoming events, soonest first.
func (h *PublicEventHandler) List(c echo.Context) error {
	events, err := h.Events.ListPublishedUpcoming(c.Request().Context(), time.Now())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]eventJSON, 0, len(events))
	for i := range events {
		out = append(out, toEventJSON(&events[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out})
}

type publicDetailResp struct {
	eventJSON
	Full bool `json:"full"`
}

// Detail returns one published event by slug plus an advisory fullness
// flag.  The flag can be stale the moment it is computed; admission is the
// only authority on remaining seats.
func (h *PublicEventHandler) Detail(c echo.Context) error {
	ctx := c.Request().Context()
	event, err := h.Events.GetBySlug(ctx, c.Param("slug"))
	if errors.Is(err, repository.ErrEventNotFound) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	if !event.IsPublished {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
	}

	full := false
	if !event.Unlimited() {
		occupied, err := h.RSVPs.CountOccupying(ctx, event.ID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
		}
		full = occupied >= int64(event.Capacity)
	}
	return c.JSON(http.StatusOK, publicDetailResp{eventJSON: toEventJSON(event), Full: full})
}
