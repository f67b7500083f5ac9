// Package service implements the reservation admission and lifecycle core
// plus the organizer-facing event and template operations.  Persistence is
// reached only through the narrow store interfaces below; the repository
// package provides the MySQL implementations and tests substitute fakes.
package service

import (
	"context"

	"github.com/iliyamo/event-rsvp/internal/model"
)

// EventStore is the slice of event persistence the services need.
type EventStore interface {
	GetBySlug(ctx context.Context, slug string) (*model.Event, error)
	GetByID(ctx context.Context, id string) (*model.Event, error)
	Create(ctx context.Context, e *model.Event) error
	Update(ctx context.Context, e *model.Event) error
	Delete(ctx context.Context, id string) error
}

// RSVPStore persists reservations.  Admit must enforce the capacity and
// duplicate invariants atomically with respect to concurrent admissions
// for the same event; see repository.RSVPRepo.Admit for the locking
// contract.
type RSVPStore interface {
	Admit(ctx context.Context, rec *model.RSVP) error
	GetByID(ctx context.Context, id string) (*model.RSVP, error)
	UpdateStatus(ctx context.Context, id string, status model.RSVPStatus) error
}

// TemplateStore reads templates for materialization.
type TemplateStore interface {
	GetByID(ctx context.Context, id string) (*model.EventTemplate, error)
}
