package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/iliyamo/event-rsvp/internal/model"
)

// EventRepo provides CRUD operations for events.  All timestamp fields are
// stored in UTC.  Slug uniqueness is enforced by the database; violations
// surface as ErrSlugExists so callers can report a recoverable conflict.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo returns a new EventRepo bound to the given database.
func NewEventRepo(db *sql.DB) *EventRepo { return &EventRepo{db: db} }

// DB exposes the underlying handle for callers that need to open their own
// transactions.
func (r *EventRepo) DB() *sql.DB { return r.db }

const eventColumns = `id, slug, title, description, venue_name, venue_code, address,
       map_url, wa_phone, date_start, date_end, cover_image, capacity,
       is_published, created_at, updated_at`

// scanEvent reads one event row from any *sql.Row-like scanner.
func scanEvent(scan func(dest ...any) error) (*model.Event, error) {
	var (
		e        model.Event
		mapURL   sql.NullString
		waPhone  sql.NullString
		dateEnd  sql.NullTime
		cover    sql.NullString
		capacity sql.NullInt64
	)
	err := scan(
		&e.ID, &e.Slug, &e.Title, &e.Description, &e.VenueName, &e.VenueCode,
		&e.Address, &mapURL, &waPhone, &e.DateStart, &dateEnd, &cover,
		&capacity, &e.IsPublished, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if mapURL.Valid {
		v := mapURL.String
		e.MapURL = &v
	}
	if waPhone.Valid {
		v := waPhone.String
		e.WAPhone = &v
	}
	if dateEnd.Valid {
		t := dateEnd.Time.UTC()
		e.DateEnd = &t
	}
	if cover.Valid {
		v := cover.String
		e.CoverImage = &v
	}
	if capacity.Valid && capacity.Int64 > 0 {
		e.Capacity = uint32(capacity.Int64)
	}
	return &e, nil
}

// isDuplicateKey reports whether err is a MySQL unique-constraint violation
// (error 1062).
func isDuplicateKey(err error) bool {
	return err != nil && strings.Contains(err.Error(), "1062")
}

// nullStr converts an optional string to its SQL representation.
func nullStr(s *string) any {
	if s == nil {
		return nil
	}
	return *s
}

// nullTime converts an optional timestamp to its SQL representation in UTC.
func nullTime(t *time.Time) any {
	if t == nil {
		return nil
	}
	return t.UTC()
}

// nullCap stores capacity 0 (unlimited) as NULL.
func nullCap(c uint32) any {
	if c == 0 {
		return nil
	}
	return c
}

// Create inserts a new event.  The caller supplies the generated ID and
// slug; timestamps are read back after the insert.  A slug collision
// returns ErrSlugExists.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const q = `INSERT INTO events
	           (id, slug, title, description, venue_name, venue_code, address,
	            map_url, wa_phone, date_start, date_end, cover_image, capacity, is_published)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		e.ID, e.Slug, e.Title, e.Description, e.VenueName, string(e.VenueCode),
		e.Address, nullStr(e.MapURL), nullStr(e.WAPhone), e.DateStart.UTC(),
		nullTime(e.DateEnd), nullStr(e.CoverImage), nullCap(e.Capacity), e.IsPublished,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlugExists
		}
		return err
	}
	const sel = `SELECT created_at, updated_at FROM events WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, e.ID).Scan(&e.CreatedAt, &e.UpdatedAt)
}

// GetBySlug returns the event with the given slug, published or not.
// Publication filtering is a service-level decision.
func (r *EventRepo) GetBySlug(ctx context.Context, slug string) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE slug = ?`, slug)
	e, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	return e, err
}

// GetByID returns the event with the given id.
func (r *EventRepo) GetByID(ctx context.Context, id string) (*model.Event, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM events WHERE id = ?`, id)
	e, err := scanEvent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrEventNotFound
	}
	return e, err
}

// ListPublishedUpcoming returns published events starting at or after now,
// soonest first.  Used by the public listing endpoint.
func (r *EventRepo) ListPublishedUpcoming(ctx context.Context, now time.Time) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events
	           WHERE is_published = 1 AND date_start >= ?
	           ORDER BY date_start ASC`
	return r.list(ctx, q, now.UTC())
}

// ListAll returns every event, newest schedule first.  Used by the admin
// dashboard listing.
func (r *EventRepo) ListAll(ctx context.Context) ([]model.Event, error) {
	return r.list(ctx, `SELECT `+eventColumns+` FROM events ORDER BY date_start DESC`)
}

func (r *EventRepo) list(ctx context.Context, q string, args ...any) ([]model.Event, error) {
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	events := make([]model.Event, 0)
	for rows.Next() {
		e, err := scanEvent(rows.Scan)
		if err != nil {
			return nil, err
		}
		events = append(events, *e)
	}
	return events, rows.Err()
}

// Update overwrites every mutable field of the event.  A slug collision
// with another event returns ErrSlugExists; a missing row returns
// ErrEventNotFound.
func (r *EventRepo) Update(ctx context.Context, e *model.Event) error {
	const q = `UPDATE events SET
	             slug = ?, title = ?, description = ?, venue_name = ?, venue_code = ?,
	             address = ?, map_url = ?, wa_phone = ?, date_start = ?, date_end = ?,
	             cover_image = ?, capacity = ?, is_published = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		e.Slug, e.Title, e.Description, e.VenueName, string(e.VenueCode),
		e.Address, nullStr(e.MapURL), nullStr(e.WAPhone), e.DateStart.UTC(),
		nullTime(e.DateEnd), nullStr(e.CoverImage), nullCap(e.Capacity), e.IsPublished,
		e.ID,
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrSlugExists
		}
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		// Either the row is gone or nothing changed; distinguish cheaply.
		var one int
		if scanErr := r.db.QueryRowContext(ctx, `SELECT 1 FROM events WHERE id = ?`, e.ID).Scan(&one); scanErr == sql.ErrNoRows {
			return ErrEventNotFound
		}
	}
	return nil
}

// Delete removes the event.  Reservations cascade-delete through the
// foreign key.  A missing row returns ErrEventNotFound.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM events WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrEventNotFound
	}
	return nil
}
