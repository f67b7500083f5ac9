// Package queue defines the message payloads exchanged over the broker and
// the background consumer that turns them into an audit trail.
package queue

// RSVPAdmittedEvent is published after a reservation passes admission.
// It carries enough context for downstream consumers to log or notify
// without querying the primary database.
type RSVPAdmittedEvent struct {
	RSVPID     string `json:"rsvp_id"`
	EventID    string `json:"event_id"`
	EventSlug  string `json:"event_slug"`
	EventTitle string `json:"event_title"`
	FullName   string `json:"full_name"`
	Email      string `json:"email,omitempty"`
	Status     string `json:"status"`
	AdmittedAt string `json:"admitted_at"`
}

// RSVPStatusChangedEvent is published when an organizer moves a
// reservation through its lifecycle.
type RSVPStatusChangedEvent struct {
	RSVPID     string `json:"rsvp_id"`
	EventID    string `json:"event_id"`
	FromStatus string `json:"from_status"`
	ToStatus   string `json:"to_status"`
	ChangedBy  string `json:"changed_by"`
	ChangedAt  string `json:"changed_at"`
}
