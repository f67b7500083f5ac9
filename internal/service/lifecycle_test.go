package service

import (
	"context"
	"errors"
	"testing"

	"github.com/iliyamo/event-rsvp/internal/auth"
	"github.com/iliyamo/event-rsvp/internal/model"
)

func organizer() auth.Principal {
	return auth.Principal{UserID: "org-1", Role: auth.RoleOrganizer}
}

func seedRSVP(t *testing.T, status model.RSVPStatus) (*Lifecycle, *fakeRSVPStore, string) {
	t.Helper()
	events := newFakeEventStore(testEvent(10, true))
	rsvps := newFakeRSVPStore(events)
	adm := NewAdmission(events, rsvps)
	rec, _, err := adm.Admit(context.Background(), AdmissionRequest{
		Slug: "tech-meetup-2026-10-01", Name: "Attendee", Phone: "0123456789",
	})
	if err != nil {
		t.Fatalf("seed admit: %v", err)
	}
	if status != model.StatusWaitlist {
		if err := rsvps.UpdateStatus(context.Background(), rec.ID, status); err != nil {
			t.Fatalf("seed status: %v", err)
		}
	}
	return NewLifecycle(rsvps), rsvps, rec.ID
}

func TestTransitionConfirmAndCancelRoundTrip(t *testing.T) {
	lc, rsvps, id := seedRSVP(t, model.StatusWaitlist)
	ctx := context.Background()

	rec, from, err := lc.Transition(ctx, organizer(), id, "CONFIRMED")
	if err != nil {
		t.Fatalf("confirm: %v", err)
	}
	if rec.Status != model.StatusConfirmed {
		t.Errorf("status = %s, want CONFIRMED", rec.Status)
	}
	if from != model.StatusWaitlist {
		t.Errorf("previous status = %s, want WAITLIST", from)
	}

	if _, _, err := lc.Transition(ctx, organizer(), id, "CANCELLED"); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, _, err := lc.Transition(ctx, organizer(), id, "CONFIRMED"); err != nil {
		t.Fatalf("re-confirm: %v", err)
	}

	stored, err := rsvps.GetByID(ctx, id)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != model.StatusConfirmed {
		t.Errorf("stored status = %s, want CONFIRMED", stored.Status)
	}
}

func TestTransitionRejectsUnknownLabel(t *testing.T) {
	lc, rsvps, id := seedRSVP(t, model.StatusWaitlist)

	for _, label := range []string{"", "confirmed", "APPROVED", "WAITLIST "} {
		_, _, err := lc.Transition(context.Background(), organizer(), id, label)
		if KindOf(err) != KindValidation {
			t.Errorf("label %q: kind = %v, want KindValidation", label, KindOf(err))
		}
	}

	stored, _ := rsvps.GetByID(context.Background(), id)
	if stored.Status != model.StatusWaitlist {
		t.Errorf("rejected label mutated status to %s", stored.Status)
	}
}

func TestTransitionDisallowedEdges(t *testing.T) {
	cases := []struct {
		name   string
		from   model.RSVPStatus
		target string
	}{
		{"confirmed back to waitlist", model.StatusConfirmed, "WAITLIST"},
		{"cancelled back to waitlist", model.StatusCancelled, "WAITLIST"},
		{"waitlist to waitlist", model.StatusWaitlist, "WAITLIST"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lc, rsvps, id := seedRSVP(t, tc.from)
			_, _, err := lc.Transition(context.Background(), organizer(), id, tc.target)
			if KindOf(err) != KindConflict {
				t.Fatalf("kind = %v, want KindConflict (err=%v)", KindOf(err), err)
			}
			stored, _ := rsvps.GetByID(context.Background(), id)
			if stored.Status != tc.from {
				t.Errorf("rejected edge mutated status to %s", stored.Status)
			}
		})
	}
}

func TestTransitionMissingReservation(t *testing.T) {
	lc, _, _ := seedRSVP(t, model.StatusWaitlist)
	_, _, err := lc.Transition(context.Background(), organizer(), "no-such-id", "CONFIRMED")
	if KindOf(err) != KindNotFound {
		t.Fatalf("kind = %v, want KindNotFound (err=%v)", KindOf(err), err)
	}
}

func TestTransitionRequiresOrganizer(t *testing.T) {
	lc, rsvps, id := seedRSVP(t, model.StatusWaitlist)
	_, _, err := lc.Transition(context.Background(), auth.Principal{}, id, "CONFIRMED")
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
	stored, _ := rsvps.GetByID(context.Background(), id)
	if stored.Status != model.StatusWaitlist {
		t.Errorf("denied caller mutated status to %s", stored.Status)
	}
}
