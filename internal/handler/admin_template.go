package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/event-rsvp/internal/middleware"
	"github.com/iliyamo/event-rsvp/internal/model"
	"github.com/iliyamo/event-rsvp/internal/repository"
	"github.com/iliyamo/event-rsvp/internal/service"
)

// AdminTemplateHandler serves template CRUD and the materialize operation
// that turns a template into a real event.
type AdminTemplateHandler struct {
	Templates    *repository.TemplateRepo
	Materializer *service.Materializer
}

func NewAdminTemplateHandler(t *repository.TemplateRepo, m *service.Materializer) *AdminTemplateHandler {
	return &AdminTemplateHandler{Templates: t, Materializer: m}
}

type templateReq struct {
	Name        string  `json:"name"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	VenueName   string  `json:"venue_name"`
	VenueCode   string  `json:"venue_code"`
	Address     string  `json:"address"`
	MapURL      *string `json:"map_url"`
	WAPhone     *string `json:"wa_phone"`
	CoverImage  *string `json:"cover_image"`
	Capacity    uint32  `json:"capacity"`
}

func (r templateReq) validate() string {
	switch {
	case r.Name == "":
		return "name required"
	case r.Title == "":
		return "title required"
	case r.VenueName == "":
		return "venue_name required"
	case !model.VenueCode(r.VenueCode).Valid():
		return "invalid venue code"
	}
	return ""
}

type templateJSON struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	VenueName   string    `json:"venue_name"`
	VenueCode   string    `json:"venue_code"`
	Address     string    `json:"address"`
	MapURL      *string   `json:"map_url,omitempty"`
	WAPhone     *string   `json:"wa_phone,omitempty"`
	CoverImage  *string   `json:"cover_image,omitempty"`
	Capacity    uint32    `json:"capacity"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func toTemplateJSON(t *model.EventTemplate) templateJSON {
	return templateJSON{
		ID:          t.ID,
		Name:        t.Name,
		Title:       t.Title,
		Description: t.Description,
		VenueName:   t.VenueName,
		VenueCode:   string(t.VenueCode),
		Address:     t.Address,
		MapURL:      t.MapURL,
		WAPhone:     t.WAPhone,
		CoverImage:  t.CoverImage,
		Capacity:    t.Capacity,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

// List returns all templates, most recently updated first.
func (h *AdminTemplateHandler) List(c echo.Context) error {
	templates, err := h.Templates.List(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	out := make([]templateJSON, 0, len(templates))
	for i := range templates {
		out = append(out, toTemplateJSON(&templates[i]))
	}
	return c.JSON(http.StatusOK, echo.Map{"templates": out})
}

// Get returns one template by id.
func (h *AdminTemplateHandler) Get(c echo.Context) error {
	tpl, err := h.Templates.GetByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		if err == repository.ErrTemplateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toTemplateJSON(tpl))
}

// Create stores a new template.
func (h *AdminTemplateHandler) Create(c echo.Context) error {
	var req templateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	tpl := &model.EventTemplate{
		ID:          uuid.NewString(),
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		VenueName:   req.VenueName,
		VenueCode:   model.VenueCode(req.VenueCode),
		Address:     req.Address,
		MapURL:      req.MapURL,
		WAPhone:     req.WAPhone,
		CoverImage:  req.CoverImage,
		Capacity:    req.Capacity,
	}
	if err := h.Templates.Create(c.Request().Context(), tpl); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "create failed"})
	}
	return c.JSON(http.StatusCreated, toTemplateJSON(tpl))
}

// Update overwrites an existing template.
func (h *AdminTemplateHandler) Update(c echo.Context) error {
	var req templateReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if msg := req.validate(); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": msg})
	}

	tpl := &model.EventTemplate{
		ID:          c.Param("id"),
		Name:        req.Name,
		Title:       req.Title,
		Description: req.Description,
		VenueName:   req.VenueName,
		VenueCode:   model.VenueCode(req.VenueCode),
		Address:     req.Address,
		MapURL:      req.MapURL,
		WAPhone:     req.WAPhone,
		CoverImage:  req.CoverImage,
		Capacity:    req.Capacity,
	}
	if err := h.Templates.Update(c.Request().Context(), tpl); err != nil {
		if err == repository.ErrTemplateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "update failed"})
	}

	stored, err := h.Templates.GetByID(c.Request().Context(), tpl.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "query failed"})
	}
	return c.JSON(http.StatusOK, toTemplateJSON(stored))
}

// Delete removes a template.  Events already materialized from it are
// untouched.
func (h *AdminTemplateHandler) Delete(c echo.Context) error {
	if err := h.Templates.Delete(c.Request().Context(), c.Param("id")); err != nil {
		if err == repository.ErrTemplateNotFound {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "template not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "delete failed"})
	}
	return c.NoContent(http.StatusNoContent)
}

type materializeReq struct {
	DateStart   time.Time  `json:"date_start"`
	DateEnd     *time.Time `json:"date_end"`
	Slug        string     `json:"slug"`
	IsPublished bool       `json:"is_published"`
	Overrides   struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		VenueName   *string `json:"venue_name"`
		VenueCode   *string `json:"venue_code"`
		Address     *string `json:"address"`
		MapURL      *string `json:"map_url"`
		WAPhone     *string `json:"wa_phone"`
		CoverImage  *string `json:"cover_image"`
		Capacity    *uint32 `json:"capacity"`
	} `json:"overrides"`
}

// Materialize produces a new event from the template in the path.
func (h *AdminTemplateHandler) Materialize(c echo.Context) error {
	var req materializeReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}

	event, err := h.Materializer.Materialize(c.Request().Context(), middleware.CurrentPrincipal(c), service.MaterializeRequest{
		TemplateID:  c.Param("id"),
		DateStart:   req.DateStart,
		DateEnd:     req.DateEnd,
		Slug:        req.Slug,
		IsPublished: req.IsPublished,
		Overrides: service.Overrides{
			Title:       req.Overrides.Title,
			Description: req.Overrides.Description,
			VenueName:   req.Overrides.VenueName,
			VenueCode:   req.Overrides.VenueCode,
			Address:     req.Overrides.Address,
			MapURL:      req.Overrides.MapURL,
			WAPhone:     req.Overrides.WAPhone,
			CoverImage:  req.Overrides.CoverImage,
			Capacity:    req.Overrides.Capacity,
		},
	})
	if err != nil {
		return writeServiceError(c, err)
	}
	return c.JSON(http.StatusCreated, toEventJSON(event))
}
