// Package repository implements MySQL persistence for events, templates,
// reservations and organizer accounts.  This file defines the sentinel
// errors shared across repositories so higher layers can distinguish
// failure scenarios with errors.Is instead of string matching.
package repository

import "errors"

// ErrEventNotFound is returned when no event matches the given id or slug.
var ErrEventNotFound = errors.New("event not found")

// ErrSlugExists is returned when an insert or update would violate the
// unique slug index.  Slug collisions are recoverable conflicts, not
// fatal errors.
var ErrSlugExists = errors.New("slug already exists")

// ErrEventFull is returned by Admit when the event's non-cancelled
// reservation count has reached its capacity.
var ErrEventFull = errors.New("event is fully booked")

// ErrDuplicateRSVP is returned by Admit when a non-cancelled reservation
// already exists for the same event and email.
var ErrDuplicateRSVP = errors.New("already registered")

// ErrRSVPNotFound is returned when no reservation matches the given id.
var ErrRSVPNotFound = errors.New("rsvp not found")

// ErrTemplateNotFound is returned when no template matches the given id.
var ErrTemplateNotFound = errors.New("template not found")
