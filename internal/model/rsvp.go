package model

import "time"

// RSVPStatus is the closed set of reservation states.  A reservation is
// always admitted as WAITLIST and only moves through the transitions
// enumerated by CanTransitionTo.
type RSVPStatus string

const (
	StatusWaitlist  RSVPStatus = "WAITLIST"
	StatusConfirmed RSVPStatus = "CONFIRMED"
	StatusCancelled RSVPStatus = "CANCELLED"
)

// ParseRSVPStatus maps a request-supplied label onto the closed status set.
// It returns false for anything outside the three known states so that
// arbitrary strings are never persisted.
func ParseRSVPStatus(s string) (RSVPStatus, bool) {
	switch RSVPStatus(s) {
	case StatusWaitlist, StatusConfirmed, StatusCancelled:
		return RSVPStatus(s), true
	}
	return "", false
}

// CanTransitionTo enumerates the allowed edges of the reservation state
// machine: WAITLIST -> CONFIRMED, WAITLIST -> CANCELLED and the organizer
// override CONFIRMED <-> CANCELLED.  Nothing transitions back to WAITLIST.
func (s RSVPStatus) CanTransitionTo(target RSVPStatus) bool {
	switch s {
	case StatusWaitlist:
		return target == StatusConfirmed || target == StatusCancelled
	case StatusConfirmed:
		return target == StatusCancelled
	case StatusCancelled:
		return target == StatusConfirmed
	}
	return false
}

// Occupying reports whether a reservation in this state holds a seat for
// capacity purposes.  Cancelled reservations free their seat.
func (s RSVPStatus) Occupying() bool { return s != StatusCancelled }

// RSVP records an attendee's reservation for an event.  Reservations are
// created only by the admission flow and always start at WAITLIST.  This
// struct corresponds to a row in the `rsvps` table.
//
// Fields:
//
//	ID        – primary key (UUID string).
//	EventID   – owning event; rows cascade-delete with the event.
//	FullName  – attendee name.
//	Phone     – attendee phone (required).
//	Email     – attendee email, lowercased; nil when not supplied.
//	Company   – attendee company (nullable).
//	Notes     – free-form notes (nullable).
//	Status    – current lifecycle state.
//	CreatedAt – admission timestamp.
//	UpdatedAt – last status change.
type RSVP struct {
	ID        string     // rsvps.id
	EventID   string     // rsvps.event_id
	FullName  string     // rsvps.full_name
	Phone     string     // rsvps.phone
	Email     *string    // rsvps.email (nullable, normalized lowercase)
	Company   *string    // rsvps.company (nullable)
	Notes     *string    // rsvps.notes (nullable)
	Status    RSVPStatus // rsvps.status
	CreatedAt time.Time  // rsvps.created_at
	UpdatedAt time.Time  // rsvps.updated_at
}
