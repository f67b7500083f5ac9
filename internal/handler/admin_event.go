package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-rsvp/internal/middleware"
	"github.com/iliyamo/event-rsvp/internal/model"
	"github.com/iliyamo/event-rsvp/internal/repository"
	"github.com/iliyamo/event-rsvp/internal/service"
)

// AdminEventHandler serves the organizer event CRUD and the per-event
// reservation triage listing.
type AdminEventHandler struct {
	Events  *service.EventService
	Catalog *repository.EventRepo
	RSVPs   *repository.RSVPRepo
}

func NewAdminEventHandler(events *service.EventService, catalog *repository.EventRepo, rsvps *repository.RSVPRepo) *AdminEventHandler {
	return &AdminEventHandler{Events: events, Catalog: catalog, RSVPs: rsvps}
}

type eventReq struct {
	Slug        string     `json:"slug"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	VenueName   string     `json:"venue_name"`
	VenueCode   string     `json:"venue_code"`
	Address     string     `json:"address"`
	MapURL      *string    `json:"map_url"`
	WAPhone     *string    `json:"wa_phone"`
	CoverImage  *string    `json:"cover_image"`
	DateStart   time.Time  `json:"date_start"`
	DateEnd     *time.Time `json:"date_end"`
	Capacity    uint32     `json:"capacity"`
	IsPublished bool       `json:"is_published"`
}

func (r eventReq) toInput() service.EventInput {
	return service.EventInput{
		Slug:        r.Slug,
		Title:       r.Title,
		Description: r.Description,
		VenueName:   r.VenueName,
		VenueCode:   r.VenueCode,
		Address:     r.Address,
		MapURL:      r.MapURL,
		WAPhone:     r.WAPhone,
		CoverImage:  r.CoverImage,
		DateStart:   r.DateStart,
		DateEnd:     r.DateEnd,
		Capacity:    r.Capacity,
		IsPublished: r.IsPublished,
	}
}

// List returns every event, drafts included, newest schedule first.
func (h *AdminEventHandler) List(c echo.Context) error {
	events, err := h.Catalog.ListAll(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]eventJSON, 0, len(events))
	for i := range events {
		out = append(out, toEventJSON(&events[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"events": out})
}

// Get returns one event by id, draft or published.
func (h *AdminEventHandler) Get(c echo.Context) error {
	event, err := h.Catalog.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toEventJSON(event))
}

// Create makes a new event from scratch.
func (h *AdminEventHandler) Create(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	event, err := h.Events.Create(c.Request().Context(), middleware.CurrentPrincipal(c), req.toInput())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toEventJSON(event))
}

// Update replaces every field of an existing event.
func (h *AdminEventHandler) Update(c echo.Context) error {
	var req eventReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	event, err := h.Events.Update(c.Request().Context(), middleware.CurrentPrincipal(c), c.Param("id"), req.toInput())
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusOK, toEventJSON(event))
}

// Delete removes an event and cascades its reservations.
func (h *AdminEventHandler) Delete(c echo.Context) error {
	if err := h.Events.Delete(c.Request().Context(), middleware.CurrentPrincipal(c), c.Param("id")); err != nil {
		return writeServiceError(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

type rsvpJSON struct {
	ID        string    `json:"id"`
	EventID   string    `json:"event_id"`
	FullName  string    `json:"full_name"`
	Phone     string    `json:"phone"`
	Email     *string   `json:"email,omitempty"`
	Company   *string   `json:"company,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func toRSVPJSON(r *model.RSVP) rsvpJSON {
	return rsvpJSON{
		ID:        r.ID,
		EventID:   r.EventID,
		FullName:  r.FullName,
		Phone:     r.Phone,
		Email:     r.Email,
		Company:   r.Company,
		Notes:     r.Notes,
		Status:    string(r.Status),
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

// ListRSVPs returns the triage view for one event: every reservation,
// newest first, with per-status counts.
func (h *AdminEventHandler) ListRSVPs(c echo.Context) error {
	ctx := c.Request().Context()
	eventID := c.Param("id")
	if _, err := h.Catalog.GetByID(ctx, eventID); err != nil {
		if err == repository.ErrEventNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "event not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}

	records, err := h.RSVPs.ListByEvent(ctx, eventID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]rsvpJSON, 0, len(records))
	counts := map[string]int{}
	for i := range records {
		out = append(out, toRSVPJSON(&records[i]))
		counts[string(records[i].Status)]++
	}
	return c.JSON(http.StatusOK, echo.Map{"rsvps": out, "counts": counts})
}
