package service

import (
	"context"
	"strings"
	"sync"

	"github.com/iliyamo/event-rsvp/internal/model"
	"github.com/iliyamo/event-rsvp/internal/repository"
)

// fakeEventStore is an in-memory EventStore.  The mutex matters: the
// admission tests hammer it from many goroutines.
type fakeEventStore struct {
	mu     sync.Mutex
	events map[string]*model.Event // by id
}

func newFakeEventStore(events ...*model.Event) *fakeEventStore {
	s := &fakeEventStore{events: make(map[string]*model.Event)}
	for _, e := range events {
		cp := *e
		s.events[e.ID] = &cp
	}
	return s
}

func (s *fakeEventStore) GetBySlug(_ context.Context, slug string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, e := range s.events {
		if e.Slug == slug {
			cp := *e
			return &cp, nil
		}
	}
	return nil, repository.ErrEventNotFound
}

func (s *fakeEventStore) GetByID(_ context.Context, id string) (*model.Event, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.events[id]
	if !ok {
		return nil, repository.ErrEventNotFound
	}
	cp := *e
	return &cp, nil
}

func (s *fakeEventStore) Create(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, other := range s.events {
		if other.Slug == e.Slug {
			return repository.ErrSlugExists
		}
	}
	cp := *e
	s.events[e.ID] = &cp
	return nil
}

func (s *fakeEventStore) Update(_ context.Context, e *model.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[e.ID]; !ok {
		return repository.ErrEventNotFound
	}
	for id, other := range s.events {
		if id != e.ID && other.Slug == e.Slug {
			return repository.ErrSlugExists
		}
	}
	cp := *e
	s.events[e.ID] = &cp
	return nil
}

func (s *fakeEventStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.events[id]; !ok {
		return repository.ErrEventNotFound
	}
	delete(s.events, id)
	return nil
}

// fakeRSVPStore mirrors the serialized-admission contract of the real
// store: capacity and duplicate checks plus the insert happen under one
// lock, so concurrent Admit calls cannot both pass.
type fakeRSVPStore struct {
	mu     sync.Mutex
	events *fakeEventStore
	rsvps  map[string]*model.RSVP // by id
}

func newFakeRSVPStore(events *fakeEventStore) *fakeRSVPStore {
	return &fakeRSVPStore{events: events, rsvps: make(map[string]*model.RSVP)}
}

func (s *fakeRSVPStore) Admit(ctx context.Context, rec *model.RSVP) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	event, err := s.events.GetByID(ctx, rec.EventID)
	if err != nil {
		return err
	}
	if event.Capacity > 0 {
		var occupied uint32
		for _, r := range s.rsvps {
			if r.EventID == rec.EventID && r.Status.Occupying() {
				occupied++
			}
		}
		if occupied >= event.Capacity {
			return repository.ErrEventFull
		}
	}
	if rec.Email != nil {
		for _, r := range s.rsvps {
			if r.EventID == rec.EventID && r.Status.Occupying() &&
				r.Email != nil && strings.EqualFold(*r.Email, *rec.Email) {
				return repository.ErrDuplicateRSVP
			}
		}
	}
	cp := *rec
	s.rsvps[rec.ID] = &cp
	return nil
}

func (s *fakeRSVPStore) GetByID(_ context.Context, id string) (*model.RSVP, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rsvps[id]
	if !ok {
		return nil, repository.ErrRSVPNotFound
	}
	cp := *r
	return &cp, nil
}

func (s *fakeRSVPStore) UpdateStatus(_ context.Context, id string, status model.RSVPStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.rsvps[id]
	if !ok {
		return repository.ErrRSVPNotFound
	}
	r.Status = status
	return nil
}

func (s *fakeRSVPStore) countForEvent(eventID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for _, r := range s.rsvps {
		if r.EventID == eventID {
			n++
		}
	}
	return n
}

// fakeTemplateStore is an in-memory TemplateStore.
type fakeTemplateStore struct {
	templates map[string]*model.EventTemplate
}

func newFakeTemplateStore(tpls ...*model.EventTemplate) *fakeTemplateStore {
	s := &fakeTemplateStore{templates: make(map[string]*model.EventTemplate)}
	for _, t := range tpls {
		cp := *t
		s.templates[t.ID] = &cp
	}
	return s
}

func (s *fakeTemplateStore) GetByID(_ context.Context, id string) (*model.EventTemplate, error) {
	t, ok := s.templates[id]
	if !ok {
		return nil, repository.ErrTemplateNotFound
	}
	cp := *t
	return &cp, nil
}

func strptr(s string) *string { return &s }
