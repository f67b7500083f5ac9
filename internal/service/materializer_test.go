package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/iliyamo/event-rsvp/internal/auth"
	"github.com/iliyamo/event-rsvp/internal/model"
)

func testTemplate() *model.EventTemplate {
	return &model.EventTemplate{
		ID:          "tpl-1",
		Name:        "Monthly meetup",
		Title:       "Komuniti Meetup",
		Description: "<p>Monthly gathering</p>",
		VenueName:   "Dewan Utama",
		VenueCode:   model.VenueCentral,
		Address:     "Jalan Ampang, KL",
		MapURL:      strptr("https://maps.example.com/dewan"),
		WAPhone:     strptr("0123456789"),
		Capacity:    40,
	}
}

func newTestMaterializer(tpls ...*model.EventTemplate) (*Materializer, *fakeEventStore) {
	events := newFakeEventStore()
	return NewMaterializer(newFakeTemplateStore(tpls...), events), events
}

func TestMaterializeCopiesTemplate(t *testing.T) {
	m, events := newTestMaterializer(testTemplate())
	start := time.Date(2026, 11, 7, 20, 0, 0, 0, time.UTC)

	got, err := m.Materialize(context.Background(), organizer(), MaterializeRequest{
		TemplateID: "tpl-1",
		DateStart:  start,
	})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if got.Title != "Komuniti Meetup" || got.VenueName != "Dewan Utama" ||
		got.VenueCode != model.VenueCentral || got.Address != "Jalan Ampang, KL" {
		t.Errorf("template fields not copied: %+v", got)
	}
	if got.Capacity != 40 {
		t.Errorf("capacity = %d, want 40", got.Capacity)
	}
	if got.MapURL == nil || *got.MapURL != "https://maps.example.com/dewan" {
		t.Errorf("map url not copied: %v", got.MapURL)
	}
	if !got.DateStart.Equal(start) {
		t.Errorf("date_start = %v, want %v", got.DateStart, start)
	}
	if got.Slug != "komuniti-meetup-2026-11-07" {
		t.Errorf("slug = %q", got.Slug)
	}
	if got.IsPublished {
		t.Error("materialized event published without being asked")
	}
	if _, err := events.GetBySlug(context.Background(), got.Slug); err != nil {
		t.Errorf("event not persisted: %v", err)
	}
}

func TestMaterializeAppliesOnlyPresentOverrides(t *testing.T) {
	m, _ := newTestMaterializer(testTemplate())
	start := time.Date(2026, 11, 7, 20, 0, 0, 0, time.UTC)

	var emptyDesc string
	var cap12 uint32 = 12
	got, err := m.Materialize(context.Background(), organizer(), MaterializeRequest{
		TemplateID: "tpl-1",
		DateStart:  start,
		Overrides: Overrides{
			Title:       strptr("Special Edition"),
			Description: &emptyDesc,
			Capacity:    &cap12,
		},
	})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if got.Title != "Special Edition" {
		t.Errorf("title override not applied: %q", got.Title)
	}
	if got.Description != "" {
		t.Errorf("explicit empty description not applied: %q", got.Description)
	}
	if got.Capacity != 12 {
		t.Errorf("capacity = %d, want 12", got.Capacity)
	}
	// untouched fields keep template values
	if got.VenueName != "Dewan Utama" || got.WAPhone == nil || *got.WAPhone != "0123456789" {
		t.Errorf("absent overrides mutated fields: %+v", got)
	}
	// overridden title drives the synthesized slug
	if got.Slug != "special-edition-2026-11-07" {
		t.Errorf("slug = %q", got.Slug)
	}
}

func TestMaterializeExplicitSlugWins(t *testing.T) {
	m, _ := newTestMaterializer(testTemplate())
	got, err := m.Materialize(context.Background(), organizer(), MaterializeRequest{
		TemplateID: "tpl-1",
		DateStart:  time.Date(2026, 11, 7, 20, 0, 0, 0, time.UTC),
		Slug:       "Meetup November!",
	})
	if err != nil {
		t.Fatalf("Materialize: %v", err)
	}
	if got.Slug != "meetup-november" {
		t.Errorf("slug = %q, want slugified explicit value", got.Slug)
	}
}

func TestMaterializeValidation(t *testing.T) {
	m, _ := newTestMaterializer(testTemplate())
	start := time.Date(2026, 11, 7, 20, 0, 0, 0, time.UTC)
	before := start.Add(-time.Hour)
	badCode := "EAST"

	cases := []struct {
		name string
		req  MaterializeRequest
	}{
		{"missing template id", MaterializeRequest{DateStart: start}},
		{"missing date_start", MaterializeRequest{TemplateID: "tpl-1"}},
		{"date_end before start", MaterializeRequest{TemplateID: "tpl-1", DateStart: start, DateEnd: &before}},
		{"bad venue override", MaterializeRequest{TemplateID: "tpl-1", DateStart: start,
			Overrides: Overrides{VenueCode: &badCode}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := m.Materialize(context.Background(), organizer(), tc.req)
			if KindOf(err) != KindValidation {
				t.Errorf("kind = %v, want KindValidation (err=%v)", KindOf(err), err)
			}
		})
	}
}

func TestMaterializeMissingTemplate(t *testing.T) {
	m, _ := newTestMaterializer()
	_, err := m.Materialize(context.Background(), organizer(), MaterializeRequest{
		TemplateID: "tpl-404",
		DateStart:  time.Date(2026, 11, 7, 20, 0, 0, 0, time.UTC),
	})
	if KindOf(err) != KindNotFound {
		t.Fatalf("kind = %v, want KindNotFound (err=%v)", KindOf(err), err)
	}
}

func TestMaterializeSlugCollision(t *testing.T) {
	m, events := newTestMaterializer(testTemplate())
	start := time.Date(2026, 11, 7, 20, 0, 0, 0, time.UTC)
	ctx := context.Background()

	if _, err := m.Materialize(ctx, organizer(), MaterializeRequest{
		TemplateID: "tpl-1", DateStart: start,
	}); err != nil {
		t.Fatalf("first materialize: %v", err)
	}
	_, err := m.Materialize(ctx, organizer(), MaterializeRequest{
		TemplateID: "tpl-1", DateStart: start,
	})
	if KindOf(err) != KindConflict {
		t.Fatalf("kind = %v, want KindConflict (err=%v)", KindOf(err), err)
	}

	events.mu.Lock()
	n := len(events.events)
	events.mu.Unlock()
	if n != 1 {
		t.Errorf("events stored = %d, want 1", n)
	}
}

func TestMaterializeRequiresOrganizer(t *testing.T) {
	m, _ := newTestMaterializer(testTemplate())
	_, err := m.Materialize(context.Background(), auth.Principal{}, MaterializeRequest{
		TemplateID: "tpl-1",
		DateStart:  time.Date(2026, 11, 7, 20, 0, 0, 0, time.UTC),
	})
	if !errors.Is(err, ErrPermissionDenied) {
		t.Fatalf("err = %v, want ErrPermissionDenied", err)
	}
}
