package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/event-rsvp/internal/auth"
)

func validInput() EventInput {
	return EventInput{
		Title:     "Pasar Malam Tech Night",
		VenueName: "Medan Selera",
		VenueCode: "NORTH",
		Address:   "Jalan Besar, Alor Setar",
		DateStart: time.Date(2026, 12, 5, 18, 0, 0, 0, time.UTC),
		Capacity:  100,
	}
}

func TestEventCreateDerivesSlug(t *testing.T) {
	svc := NewEventService(newFakeEventStore())

	got, err := svc.Create(context.Background(), organizer(), validInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Slug != "pasar-malam-tech-night-2026-12-05" {
		t.Errorf("slug = %q", got.Slug)
	}
	if got.ID == "" {
		t.Error("no id assigned")
	}
}

func TestEventCreateExplicitSlug(t *testing.T) {
	svc := NewEventService(newFakeEventStore())
	in := validInput()
	in.Slug = "Tech Night 2026!"

	got, err := svc.Create(context.Background(), organizer(), in)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if got.Slug != "tech-night-2026" {
		t.Errorf("slug = %q", got.Slug)
	}
}

func TestEventCreateValidation(t *testing.T) {
	svc := NewEventService(newFakeEventStore())
	end := time.Date(2026, 12, 5, 12, 0, 0, 0, time.UTC)

	mutations := map[string]func(*EventInput){
		"missing title":      func(in *EventInput) { in.Title = "" },
		"missing venue name": func(in *EventInput) { in.VenueName = "" },
		"missing date_start": func(in *EventInput) { in.DateStart = time.Time{} },
		"bad venue code":     func(in *EventInput) { in.VenueCode = "WEST" },
		"end before start":   func(in *EventInput) { in.DateEnd = &end },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			in := validInput()
			mutate(&in)
			_, err := svc.Create(context.Background(), organizer(), in)
			if KindOf(err) != KindValidation {
				t.Errorf("kind = %v, want KindValidation (err=%v)", KindOf(err), err)
			}
		})
	}
}

func TestEventCreateSlugConflict(t *testing.T) {
	svc := NewEventService(newFakeEventStore())
	ctx := context.Background()

	if _, err := svc.Create(ctx, organizer(), validInput()); err != nil {
		t.Fatalf("first create: %v", err)
	}
	_, err := svc.Create(ctx, organizer(), validInput())
	if KindOf(err) != KindConflict {
		t.Fatalf("kind = %v, want KindConflict (err=%v)", KindOf(err), err)
	}
}

func TestEventUpdateReplacesFields(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, organizer(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	in := validInput()
	in.Title = "Renamed Night"
	in.Capacity = 0
	in.IsPublished = true
	got, err := svc.Update(ctx, organizer(), created.ID, in)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if got.Title != "Renamed Night" || !got.IsPublished {
		t.Errorf("update not applied: %+v", got)
	}
	if !got.Unlimited() {
		t.Errorf("capacity = %d, want unlimited", got.Capacity)
	}

	stored, _ := store.GetByID(ctx, created.ID)
	if stored.Title != "Renamed Night" {
		t.Errorf("stored title = %q", stored.Title)
	}
}

func TestEventUpdateMissing(t *testing.T) {
	svc := NewEventService(newFakeEventStore())
	_, err := svc.Update(context.Background(), organizer(), "ev-404", validInput())
	if KindOf(err) != KindNotFound {
		t.Fatalf("kind = %v, want KindNotFound (err=%v)", KindOf(err), err)
	}
}

func TestEventDelete(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	ctx := context.Background()

	created, err := svc.Create(ctx, organizer(), validInput())
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if err := svc.Delete(ctx, organizer(), created.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.GetByID(ctx, created.ID); err == nil {
		t.Error("event still present after delete")
	}
	if err := svc.Delete(ctx, organizer(), created.ID); KindOf(err) != KindNotFound {
		t.Errorf("second delete kind = %v, want KindNotFound", KindOf(err))
	}
}

func TestEventShrinkCapacityKeepsReservations(t *testing.T) {
	store := newFakeEventStore()
	svc := NewEventService(store)
	rsvps := newFakeRSVPStore(store)
	ctx := context.Background()

	in := validInput()
	in.Capacity = 3
	in.IsPublished = true
	created, err := svc.Create(ctx, organizer(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	adm := NewAdmission(store, rsvps)
	for i := 0; i < 3; i++ {
		if _, _, err := adm.Admit(ctx, AdmissionRequest{
			Slug: created.Slug, Name: "Guest", Phone: "0123456789",
		}); err != nil {
			t.Fatalf("admit %d: %v", i, err)
		}
	}

	in.Capacity = 1
	if _, err := svc.Update(ctx, organizer(), created.ID, in); err != nil {
		t.Fatalf("shrink: %v", err)
	}
	if got := rsvps.countForEvent(created.ID); got != 3 {
		t.Errorf("reservations after shrink = %d, want 3", got)
	}
	if _, _, err := adm.Admit(ctx, AdmissionRequest{
		Slug: created.Slug, Name: "Extra", Phone: "0123456789",
	}); KindOf(err) != KindCapacity {
		t.Errorf("admission after shrink: %v, want capacity rejection", err)
	}
}

func TestEventCreateRejectsNonOrganizer(t *testing.T) {
	svc := NewEventService(newFakeEventStore())
	_, err := svc.Create(context.Background(), auth.Principal{}, validInput())
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}
