package model

import "time"

// EventTemplate is a reusable blueprint for events.  It carries the same
// descriptive fields as Event minus schedule, publication flag and slug.
// Materializing a template copies these fields into a brand-new event; the
// produced event keeps no reference back to the template.
//
// Fields:
//
//	ID         – primary key (UUID string).
//	Name       – admin-facing label for the template.
//	Title      – default event title.
//	Description– default rich-text description.
//	VenueName  – default venue name.
//	VenueCode  – default region code.
//	Address    – default venue address.
//	MapURL     – default map link (nullable).
//	WAPhone    – default support phone (nullable).
//	CoverImage – default cover image URL (nullable).
//	Capacity   – default seat limit; 0 means unlimited.
//	CreatedAt  – creation timestamp.
//	UpdatedAt  – last update timestamp.
type EventTemplate struct {
	ID          string    // event_templates.id
	Name        string    // event_templates.name
	Title       string    // event_templates.title
	Description string    // event_templates.description
	VenueName   string    // event_templates.venue_name
	VenueCode   VenueCode // event_templates.venue_code
	Address     string    // event_templates.address
	MapURL      *string   // event_templates.map_url (nullable)
	WAPhone     *string   // event_templates.wa_phone (nullable)
	CoverImage  *string   // event_templates.cover_image (nullable)
	Capacity    uint32    // event_templates.capacity (NULL reads as 0)
	CreatedAt   time.Time // event_templates.created_at
	UpdatedAt   time.Time // event_templates.updated_at
}
