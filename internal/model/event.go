package model

import "time"

// VenueCode is the enumerated region code attached to an event's venue.
type VenueCode string

const (
	VenueNorth   VenueCode = "NORTH"
	VenueCentral VenueCode = "CENTRAL"
	VenueSouth   VenueCode = "SOUTH"
)

// Valid reports whether the code is one of the known venue regions.
func (v VenueCode) Valid() bool {
	switch v {
	case VenueNorth, VenueCentral, VenueSouth:
		return true
	}
	return false
}

// Event represents a published or draft event created by an organizer,
// either directly or by materializing a template.  This struct corresponds
// to a row in the `events` table.
//
// Fields:
//
//	ID          – primary key (UUID string).
//	Slug        – globally unique URL-safe identifier derived from the title.
//	Title       – event title.
//	Description – rich-text description (HTML).
//	VenueName   – human-readable venue name.
//	VenueCode   – enumerated region code (NORTH, CENTRAL, SOUTH).
//	Address     – street address of the venue.
//	MapURL      – link to an online map (nullable).
//	WAPhone     – support contact phone for attendee messaging (nullable).
//	DateStart   – when the event begins.
//	DateEnd     – when the event ends; nil for open-ended events.
//	CoverImage  – URL of the cover image produced by the media service (nullable).
//	Capacity    – maximum number of seats; 0 means unlimited.
//	IsPublished – whether the event is publicly visible.
//	CreatedAt   – creation timestamp.
//	UpdatedAt   – last update timestamp.
type Event struct {
	ID          string     // events.id
	Slug        string     // events.slug
	Title       string     // events.title
	Description string     // events.description
	VenueName   string     // events.venue_name
	VenueCode   VenueCode  // events.venue_code
	Address     string     // events.address
	MapURL      *string    // events.map_url (nullable)
	WAPhone     *string    // events.wa_phone (nullable)
	DateStart   time.Time  // events.date_start
	DateEnd     *time.Time // events.date_end (nullable)
	CoverImage  *string    // events.cover_image (nullable)
	Capacity    uint32     // events.capacity (NULL reads as 0 = unlimited)
	IsPublished bool       // events.is_published
	CreatedAt   time.Time  // events.created_at
	UpdatedAt   time.Time  // events.updated_at
}

// Unlimited reports whether the event has no seat limit.
func (e *Event) Unlimited() bool { return e.Capacity == 0 }
