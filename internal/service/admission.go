package service

import (
	"context"
	"errors"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/iliyamo/event-rsvp/internal/model"
	"github.com/iliyamo/event-rsvp/internal/repository"
)

// emailShape matches the local@domain shape the RSVP form accepts.  It is
// deliberately loose; deliverability is not this system's problem.
var emailShape = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// AdmissionRequest is the attendee-facing input to Admit.  Slug, Name and
// Phone are required; the rest are optional.
type AdmissionRequest struct {
	Slug    string
	Name    string
	Phone   string
	Email   string
	Company string
	Notes   string
}

// Admission decides whether a prospective reservation is accepted and, if
// so, creates it.  Every accepted reservation starts at WAITLIST; nothing
// is ever admitted directly into CONFIRMED or CANCELLED.
type Admission struct {
	events EventStore
	rsvps  RSVPStore
	newID  func() string
}

// NewAdmission constructs the admission engine.
func NewAdmission(events EventStore, rsvps RSVPStore) *Admission {
	return &Admission{events: events, rsvps: rsvps, newID: uuid.NewString}
}

// Admit runs the admission checks in order, each with its own failure
// classification:
//
//  1. required fields        -> KindValidation
//  2. email shape            -> KindValidation
//  3. published event lookup -> KindNotFound (unpublished and nonexistent
//     events are indistinguishable to the caller)
//  4. capacity               -> KindCapacity
//  5. duplicate email        -> KindConflict
//
// Steps 4 and 5 execute inside the store's serialized admission write, so
// two concurrent requests cannot both pass the checks and over-book.  On
// success exactly one reservation row exists; on any failure, none.  The
// resolved event is returned alongside the reservation so callers can
// format follow-up links without a second lookup.
func (a *Admission) Admit(ctx context.Context, req AdmissionRequest) (*model.RSVP, *model.Event, error) {
	slug := strings.TrimSpace(req.Slug)
	name := strings.TrimSpace(req.Name)
	phone := strings.TrimSpace(req.Phone)
	if slug == "" || name == "" || phone == "" {
		return nil, nil, errValidation("missing required fields")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email != "" && !emailShape.MatchString(email) {
		return nil, nil, errValidation("invalid email")
	}

	event, err := a.events.GetBySlug(ctx, slug)
	if errors.Is(err, repository.ErrEventNotFound) {
		return nil, nil, errNotFound("event not found")
	}
	if err != nil {
		return nil, nil, errInternal(err)
	}
	if !event.IsPublished {
		// Deliberate information hiding: a draft event must look exactly
		// like a missing one from the outside.
		return nil, nil, errNotFound("event not found")
	}

	rec := &model.RSVP{
		ID:       a.newID(),
		EventID:  event.ID,
		FullName: name,
		Phone:    phone,
		Status:   model.StatusWaitlist,
	}
	if email != "" {
		rec.Email = &email
	}
	if company := strings.TrimSpace(req.Company); company != "" {
		rec.Company = &company
	}
	if notes := strings.TrimSpace(req.Notes); notes != "" {
		rec.Notes = &notes
	}

	switch err := a.rsvps.Admit(ctx, rec); {
	case err == nil:
		return rec, event, nil
	case errors.Is(err, repository.ErrEventFull):
		return nil, nil, errCapacity("event is fully booked")
	case errors.Is(err, repository.ErrDuplicateRSVP):
		return nil, nil, errConflict("already registered")
	case errors.Is(err, repository.ErrEventNotFound):
		// The event vanished between the slug lookup and the write.
		return nil, nil, errNotFound("event not found")
	default:
		return nil, nil, errInternal(err)
	}
}
