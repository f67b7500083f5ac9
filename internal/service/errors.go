package service

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure.  Every error returned by the admission,
// lifecycle and materialization operations carries exactly one kind so the
// HTTP layer can signal "bad input", "not found", "conflict", "no seats"
// and "internal" distinctly without inspecting messages.
type Kind int

const (
	// KindValidation marks malformed or missing input.  Caller-fixable.
	KindValidation Kind = iota + 1
	// KindNotFound marks a missing event or reservation.  Unpublished
	// events are deliberately reported as not found to the public.
	KindNotFound
	// KindConflict marks duplicate registrations, slug collisions and
	// disallowed state transitions.
	KindConflict
	// KindCapacity marks an event with no remaining seats.
	KindCapacity
	// KindInternal marks an unclassified store failure.  The message is
	// safe to surface; the wrapped cause is for logs only.
	KindInternal
)

// Error is the single error type crossing the service boundary.
type Error struct {
	Kind    Kind
	Message string
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.cause)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.cause }

func errValidation(msg string) error { return &Error{Kind: KindValidation, Message: msg} }
func errNotFound(msg string) error   { return &Error{Kind: KindNotFound, Message: msg} }
func errConflict(msg string) error   { return &Error{Kind: KindConflict, Message: msg} }
func errCapacity(msg string) error   { return &Error{Kind: KindCapacity, Message: msg} }

func errInternal(cause error) error {
	return &Error{Kind: KindInternal, Message: "internal error", cause: cause}
}

// KindOf extracts the classification from err, or KindInternal when err did
// not originate in this package.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
