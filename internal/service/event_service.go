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

// EventInput carries the organizer-provided fields for creating or fully
// replacing an event.  Slug may be left empty to have one derived from the
// title; Capacity 0 means unlimited.
type EventInput struct {
	Slug        string
	Title       string
	Description string
	VenueName   string
	VenueCode   string
	Address     string
	MapURL      *string
	WAPhone     *string
	CoverImage  *string
	DateStart   time.Time
	DateEnd     *time.Time
	Capacity    uint32
	IsPublished bool
}

// EventService covers the organizer-facing event operations.  Reads for
// the public surface go straight to the repository; writes come through
// here so validation and slug handling live in one place.
type EventService struct {
	events EventStore
	newID  func() string
}

// NewEventService constructs the service.
func NewEventService(events EventStore) *EventService {
	return &EventService{events: events, newID: uuid.NewString}
}

func validateEventInput(in EventInput) error {
	if in.Title == "" || in.VenueName == "" || in.VenueCode == "" {
		return errValidation("missing required fields")
	}
	if in.DateStart.IsZero() {
		return errValidation("missing date_start")
	}
	if in.DateEnd != nil && in.DateEnd.Before(in.DateStart) {
		return errValidation("date_end before date_start")
	}
	if !model.VenueCode(in.VenueCode).Valid() {
		return errValidation("invalid venue code")
	}
	return nil
}

func buildEvent(id string, in EventInput) *model.Event {
	e := &model.Event{
		ID:          id,
		Title:       in.Title,
		Description: in.Description,
		VenueName:   in.VenueName,
		VenueCode:   model.VenueCode(in.VenueCode),
		Address:     in.Address,
		MapURL:      in.MapURL,
		WAPhone:     in.WAPhone,
		CoverImage:  in.CoverImage,
		DateStart:   in.DateStart.UTC(),
		Capacity:    in.Capacity,
		IsPublished: in.IsPublished,
	}
	if in.DateEnd != nil {
		de := in.DateEnd.UTC()
		e.DateEnd = &de
	}
	if in.Slug != "" {
		e.Slug = utils.Slugify(in.Slug)
	} else {
		e.Slug = utils.EventSlug(in.Title, in.DateStart)
	}
	return e
}

// Create validates the input and inserts a new event.  A slug collision is
// a KindConflict so the organizer can pick another.
func (s *EventService) Create(ctx context.Context, p auth.Principal, in EventInput) (*model.Event, error) {
	if !p.CanManageEvents() {
		return nil, ErrPermissionDenied
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}
	e := buildEvent(s.newID(), in)
	if e.Slug == "" {
		return nil, errValidation("cannot derive slug")
	}
	switch err := s.events.Create(ctx, e); {
	case err == nil:
		return e, nil
	case errors.Is(err, repository.ErrSlugExists):
		return nil, errConflict("slug already exists")
	default:
		return nil, errInternal(err)
	}
}

// Update fully replaces the stored event with the given input.  Existing
// reservations are untouched; shrinking capacity below the current count
// is allowed and only affects future admissions.
func (s *EventService) Update(ctx context.Context, p auth.Principal, id string, in EventInput) (*model.Event, error) {
	if !p.CanManageEvents() {
		return nil, ErrPermissionDenied
	}
	if id == "" {
		return nil, errValidation("missing event id")
	}
	if err := validateEventInput(in); err != nil {
		return nil, err
	}

	current, err := s.events.GetByID(ctx, id)
	if errors.Is(err, repository.ErrEventNotFound) {
		return nil, errNotFound("event not found")
	}
	if err != nil {
		return nil, errInternal(err)
	}

	e := buildEvent(id, in)
	e.CreatedAt = current.CreatedAt
	switch err := s.events.Update(ctx, e); {
	case err == nil:
		return e, nil
	case errors.Is(err, repository.ErrSlugExists):
		return nil, errConflict("slug already exists")
	case errors.Is(err, repository.ErrEventNotFound):
		return nil, errNotFound("event not found")
	default:
		return nil, errInternal(err)
	}
}

// Delete removes the event and, through the schema, its reservations.
func (s *EventService) Delete(ctx context.Context, p auth.Principal, id string) error {
	if !p.CanManageEvents() {
		return ErrPermissionDenied
	}
	if id == "" {
		return errValidation("missing event id")
	}
	switch err := s.events.Delete(ctx, id); {
	case err == nil:
		return nil
	case errors.Is(err, repository.ErrEventNotFound):
		return errNotFound("event not found")
	default:
		return errInternal(err)
	}
}
