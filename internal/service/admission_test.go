package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/iliyamo/event-rsvp/internal/model"
)

func testEvent(capacity uint32, published bool) *model.Event {
	return &model.Event{
		ID:          "ev-1",
		Slug:        "tech-meetup-2026-10-01",
		Title:       "Tech Meetup",
		VenueName:   "Dewan Utama",
		VenueCode:   model.VenueCentral,
		DateStart:   time.Date(2026, 10, 1, 19, 0, 0, 0, time.UTC),
		Capacity:    capacity,
		IsPublished: published,
	}
}

func newTestAdmission(event *model.Event) (*Admission, *fakeRSVPStore) {
	events := newFakeEventStore(event)
	rsvps := newFakeRSVPStore(events)
	return NewAdmission(events, rsvps), rsvps
}

func TestAdmitCreatesWaitlistReservation(t *testing.T) {
	adm, rsvps := newTestAdmission(testEvent(10, true))

	rec, event, err := adm.Admit(context.Background(), AdmissionRequest{
		Slug:  "tech-meetup-2026-10-01",
		Name:  "Aisyah Rahman",
		Phone: "012-345 6789",
		Email: "Aisyah@Example.COM",
	})
	if err != nil {
		t.Fatalf("Admit: %v", err)
	}
	if rec.Status != model.StatusWaitlist {
		t.Errorf("status = %s, want WAITLIST", rec.Status)
	}
	if rec.Email == nil || *rec.Email != "aisyah@example.com" {
		t.Errorf("email not lowercased: %v", rec.Email)
	}
	if event == nil || event.ID != "ev-1" {
		t.Errorf("resolved event = %+v", event)
	}
	if got := rsvps.countForEvent("ev-1"); got != 1 {
		t.Errorf("stored reservations = %d, want 1", got)
	}
}

func TestAdmitValidation(t *testing.T) {
	adm, rsvps := newTestAdmission(testEvent(10, true))

	cases := []struct {
		name string
		req  AdmissionRequest
	}{
		{"missing slug", AdmissionRequest{Name: "A", Phone: "0123456789"}},
		{"missing name", AdmissionRequest{Slug: "tech-meetup-2026-10-01", Phone: "0123456789"}},
		{"missing phone", AdmissionRequest{Slug: "tech-meetup-2026-10-01", Name: "A"}},
		{"whitespace name", AdmissionRequest{Slug: "tech-meetup-2026-10-01", Name: "   ", Phone: "0123456789"}},
		{"bad email", AdmissionRequest{Slug: "tech-meetup-2026-10-01", Name: "A", Phone: "0123456789", Email: "not-an-email"}},
		{"email without dot", AdmissionRequest{Slug: "tech-meetup-2026-10-01", Name: "A", Phone: "0123456789", Email: "a@b"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := adm.Admit(context.Background(), tc.req)
			if KindOf(err) != KindValidation {
				t.Errorf("kind = %v, want KindValidation (err=%v)", KindOf(err), err)
			}
		})
	}
	if got := rsvps.countForEvent("ev-1"); got != 0 {
		t.Errorf("rejected requests persisted %d reservations", got)
	}
}

func TestAdmitMissingAndUnpublishedLookAlike(t *testing.T) {
	adm, _ := newTestAdmission(testEvent(10, false))

	for _, slug := range []string{"tech-meetup-2026-10-01", "no-such-event"} {
		_, _, err := adm.Admit(context.Background(), AdmissionRequest{
			Slug: slug, Name: "A", Phone: "0123456789",
		})
		if KindOf(err) != KindNotFound {
			t.Errorf("slug %q: kind = %v, want KindNotFound", slug, KindOf(err))
		}
		if err.Error() != "event not found" {
			t.Errorf("slug %q: message = %q, leaks draft state", slug, err.Error())
		}
	}
}

func TestAdmitCapacityFull(t *testing.T) {
	adm, rsvps := newTestAdmission(testEvent(2, true))
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if _, _, err := adm.Admit(ctx, AdmissionRequest{
			Slug: "tech-meetup-2026-10-01", Name: fmt.Sprintf("Guest %d", i), Phone: "0123456789",
		}); err != nil {
			t.Fatalf("admit %d: %v", i, err)
		}
	}
	_, _, err := adm.Admit(ctx, AdmissionRequest{
		Slug: "tech-meetup-2026-10-01", Name: "Late Guest", Phone: "0123456789",
	})
	if KindOf(err) != KindCapacity {
		t.Fatalf("kind = %v, want KindCapacity (err=%v)", KindOf(err), err)
	}
	if got := rsvps.countForEvent("ev-1"); got != 2 {
		t.Errorf("stored reservations = %d, want 2", got)
	}
}

func TestAdmitUnlimitedCapacity(t *testing.T) {
	adm, rsvps := newTestAdmission(testEvent(0, true))
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		if _, _, err := adm.Admit(ctx, AdmissionRequest{
			Slug: "tech-meetup-2026-10-01", Name: fmt.Sprintf("Guest %d", i), Phone: "0123456789",
		}); err != nil {
			t.Fatalf("admit %d: %v", i, err)
		}
	}
	if got := rsvps.countForEvent("ev-1"); got != 50 {
		t.Errorf("stored reservations = %d, want 50", got)
	}
}

func TestAdmitDuplicateEmail(t *testing.T) {
	adm, _ := newTestAdmission(testEvent(10, true))
	ctx := context.Background()

	if _, _, err := adm.Admit(ctx, AdmissionRequest{
		Slug: "tech-meetup-2026-10-01", Name: "First", Phone: "0123456789", Email: "dup@example.com",
	}); err != nil {
		t.Fatalf("first admit: %v", err)
	}
	_, _, err := adm.Admit(ctx, AdmissionRequest{
		Slug: "tech-meetup-2026-10-01", Name: "Second", Phone: "0198765432", Email: "DUP@example.com",
	})
	if KindOf(err) != KindConflict {
		t.Fatalf("kind = %v, want KindConflict (err=%v)", KindOf(err), err)
	}
}

func TestAdmitCancelledEmailMayRegisterAgain(t *testing.T) {
	event := testEvent(10, true)
	events := newFakeEventStore(event)
	rsvps := newFakeRSVPStore(events)
	adm := NewAdmission(events, rsvps)
	ctx := context.Background()

	first, _, err := adm.Admit(ctx, AdmissionRequest{
		Slug: "tech-meetup-2026-10-01", Name: "Comeback", Phone: "0123456789", Email: "again@example.com",
	})
	if err != nil {
		t.Fatalf("first admit: %v", err)
	}
	if err := rsvps.UpdateStatus(ctx, first.ID, model.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, _, err := adm.Admit(ctx, AdmissionRequest{
		Slug: "tech-meetup-2026-10-01", Name: "Comeback", Phone: "0123456789", Email: "again@example.com",
	}); err != nil {
		t.Fatalf("re-admit after cancel: %v", err)
	}
}

func TestAdmitCancelledSeatFreed(t *testing.T) {
	event := testEvent(1, true)
	events := newFakeEventStore(event)
	rsvps := newFakeRSVPStore(events)
	adm := NewAdmission(events, rsvps)
	ctx := context.Background()

	first, _, err := adm.Admit(ctx, AdmissionRequest{
		Slug: "tech-meetup-2026-10-01", Name: "First", Phone: "0123456789",
	})
	if err != nil {
		t.Fatalf("first admit: %v", err)
	}
	if _, _, err := adm.Admit(ctx, AdmissionRequest{
		Slug: "tech-meetup-2026-10-01", Name: "Second", Phone: "0198765432",
	}); KindOf(err) != KindCapacity {
		t.Fatalf("expected capacity rejection, got %v", err)
	}
	if err := rsvps.UpdateStatus(ctx, first.ID, model.StatusCancelled); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if _, _, err := adm.Admit(ctx, AdmissionRequest{
		Slug: "tech-meetup-2026-10-01", Name: "Second", Phone: "0198765432",
	}); err != nil {
		t.Fatalf("admit after seat freed: %v", err)
	}
}

func TestAdmitConcurrentLastSeat(t *testing.T) {
	adm, rsvps := newTestAdmission(testEvent(1, true))

	const n = 32
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		admitted int
		rejected int
	)
	start := make(chan struct{})
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			<-start
			_, _, err := adm.Admit(context.Background(), AdmissionRequest{
				Slug:  "tech-meetup-2026-10-01",
				Name:  fmt.Sprintf("Racer %d", i),
				Phone: "0123456789",
			})
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				admitted++
			case KindOf(err) == KindCapacity:
				rejected++
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}(i)
	}
	close(start)
	wg.Wait()

	if admitted != 1 {
		t.Errorf("admitted = %d, want exactly 1", admitted)
	}
	if rejected != n-1 {
		t.Errorf("capacity rejections = %d, want %d", rejected, n-1)
	}
	if got := rsvps.countForEvent("ev-1"); got != 1 {
		t.Errorf("stored reservations = %d, want 1", got)
	}
}
