package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/iliyamo/event-rsvp/internal/auth"
	"github.com/iliyamo/event-rsvp/internal/model"
	"github.com/iliyamo/event-rsvp/internal/repository"
	"github.com/iliyamo/event-rsvp/internal/utils"
)

// Overrides is the sparse set of template fields a materialization request
// may replace.  A nil field keeps the template's value; a present field
// wins, including present-but-empty strings.
type Overrides struct {
	Title       *string
	Description *string
	VenueName   *string
	VenueCode   *string
	Address     *string
	MapURL      *string
	WAPhone     *string
	CoverImage  *string
	Capacity    *uint32
}

// MaterializeRequest carries everything needed to produce an event from a
// template.  DateStart is mandatory input; templates have no schedule to
// inherit.
type MaterializeRequest struct {
	TemplateID  string
	DateStart   time.Time
	DateEnd     *time.Time
	Slug        string
	IsPublished bool
	Overrides   Overrides
}

// Materializer copies a template into a brand-new event, field by field,
// with overrides applied on top.  The template is never mutated and the
// produced event keeps no reference to it.
type Materializer struct {
	templates TemplateStore
	events    EventStore
	newID     func() string
}

// NewMaterializer constructs the materializer.
func NewMaterializer(templates TemplateStore, events EventStore) *Materializer {
	return &Materializer{templates: templates, events: events, newID: uuid.NewString}
}

// Materialize builds and persists the event.  The slug comes from the
// explicit request field when given, otherwise it is synthesized from the
// effective title and the start date.  A collision with an existing slug
// is a recoverable KindConflict.
func (m *Materializer) Materialize(ctx context.Context, p auth.Principal, req MaterializeRequest) (*model.Event, error) {
	if !p.CanManageEvents() {
		return nil, ErrPermissionDenied
	}
	if req.TemplateID == "" {
		return nil, errValidation("missing template id")
	}
	if req.DateStart.IsZero() {
		return nil, errValidation("missing date_start")
	}
	if req.DateEnd != nil && req.DateEnd.Before(req.DateStart) {
		return nil, errValidation("date_end before date_start")
	}

	tpl, err := m.templates.GetByID(ctx, req.TemplateID)
	if errors.Is(err, repository.ErrTemplateNotFound) {
		return nil, errNotFound("template not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}

	event := &model.Event{
		ID:          m.newID(),
		Title:       tpl.Title,
		Description: tpl.Description,
		VenueName:   tpl.VenueName,
		VenueCode:   tpl.VenueCode,
		Address:     tpl.Address,
		MapURL:      tpl.MapURL,
		WAPhone:     tpl.WAPhone,
		CoverImage:  tpl.CoverImage,
		Capacity:    tpl.Capacity,
		DateStart:   req.DateStart.UTC(),
		IsPublished: req.IsPublished,
	}
	if req.DateEnd != nil {
		de := req.DateEnd.UTC()
		event.DateEnd = &de
	}
	applyOverrides(event, req.Overrides)
	if !event.VenueCode.Valid() {
		return nil, errValidation("invalid venue code")
	}

	if req.Slug != "" {
		event.Slug = utils.Slugify(req.Slug)
	} else {
		event.Slug = utils.EventSlug(event.Title, event.DateStart)
	}
	if event.Slug == "" {
		return nil, errValidation("cannot derive slug")
	}

	switch err := m.events.Create(ctx, event); {
	case err == nil:
		return event, nil
	case errors.Is(err, repository.ErrSlugExists):
		return nil, errConflict("slug already exists")
	default:
		return nil, errInternal(err)
	}
}

func applyOverrides(e *model.Event, o Overrides) {
	if o.Title != nil {
		e.Title = *o.Title
	}
	if o.Description != nil {
		e.Description = *o.Description
	}
	if o.VenueName != nil {
		e.VenueName = *o.VenueName
	}
	if o.VenueCode != nil {
		e.VenueCode = model.VenueCode(*o.VenueCode)
	}
	if o.Address != nil {
		e.Address = *o.Address
	}
	if o.MapURL != nil {
		e.MapURL = o.MapURL
	}
	if o.WAPhone != nil {
		e.WAPhone = o.WAPhone
	}
	if o.CoverImage != nil {
		e.CoverImage = o.CoverImage
	}
	if o.Capacity != nil {
		e.Capacity = *o.Capacity
	}
}
