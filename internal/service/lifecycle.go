package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/iliyamo/event-rsvp/internal/auth"
	"github.com/iliyamo/event-rsvp/internal/model"
	"github.com/iliyamo/event-rsvp/internal/repository"
)

// ErrPermissionDenied is returned when a caller without the organizer
// capability reaches a management operation.  The HTTP layer maps it to
// 403; it sits outside the request-error taxonomy on purpose.
var ErrPermissionDenied = errors.New("permission denied")

// Lifecycle applies organizer-triggered status transitions to
// reservations.  The status set is closed and the allowed edges are
// enumerated on model.RSVPStatus; anything else is rejected before any
// write happens.
type Lifecycle struct {
	rsvps RSVPStore
}

// NewLifecycle constructs the transition engine.
func NewLifecycle(rsvps RSVPStore) *Lifecycle {
	return &Lifecycle{rsvps: rsvps}
}

// Transition validates and applies a state change:
//
//   - unknown target label        -> KindValidation (never persisted)
//   - missing reservation         -> KindNotFound
//   - edge outside the state machine -> KindConflict
//
// Confirming a waitlisted reservation does not re-check capacity: the
// organizer override is not a new admission.  Exactly one row's status
// field is updated on success.  The status the reservation held before the
// change is returned for audit trails.
func (l *Lifecycle) Transition(ctx context.Context, p auth.Principal, id, target string) (*model.RSVP, model.RSVPStatus, error) {
	if !p.CanManageEvents() {
		return nil, "", ErrPermissionDenied
	}
	if id == "" {
		return nil, "", errValidation("missing rsvp id")
	}
	status, ok := model.ParseRSVPStatus(target)
	if !ok {
		return nil, "", errValidation("invalid status")
	}

	rec, err := l.rsvps.GetByID(ctx, id)
	if errors.Is(err, repository.ErrRSVPNotFound) {
		return nil, "", errNotFound("rsvp not found")
	}
	if err != nil {
		return nil, "", errInternal(err)
	}

	from := rec.Status
	if !from.CanTransitionTo(status) {
		return nil, "", errConflict(fmt.Sprintf("cannot transition %s to %s", from, status))
	}

	if err := l.rsvps.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repository.ErrRSVPNotFound) {
			return nil, "", errNotFound("rsvp not found")
		}
		return nil, "", errInternal(err)
	}
	rec.Status = status
	return rec, from, nil
}
