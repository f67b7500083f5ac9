package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-rsvp/internal/model"
)

// TemplateRepo provides CRUD operations for event templates.  Templates are
// read-only inputs to materialization; nothing here touches events.
type TemplateRepo struct {
	db *sql.DB
}

// NewTemplateRepo returns a new TemplateRepo bound to the given database.
func NewTemplateRepo(db *sql.DB) *TemplateRepo { return &TemplateRepo{db: db} }

const templateColumns = `id, name, title, description, venue_name, venue_code, address,
       map_url, wa_phone, cover_image, capacity, created_at, updated_at`

func scanTemplate(scan func(dest ...any) error) (*model.EventTemplate, error) {
	var (
		t        model.EventTemplate
		mapURL   sql.NullString
		waPhone  sql.NullString
		cover    sql.NullString
		capacity sql.NullInt64
	)
	err := scan(
		&t.ID, &t.Name, &t.Title, &t.Description, &t.VenueName, &t.VenueCode,
		&t.Address, &mapURL, &waPhone, &cover, &capacity, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if mapURL.Valid {
		v := mapURL.String
		t.MapURL = &v
	}
	if waPhone.Valid {
		v := waPhone.String
		t.WAPhone = &v
	}
	if cover.Valid {
		v := cover.String
		t.CoverImage = &v
	}
	if capacity.Valid && capacity.Int64 > 0 {
		t.Capacity = uint32(capacity.Int64)
	}
	return &t, nil
}

// Create inserts a new template and reads back its timestamps.
func (r *TemplateRepo) Create(ctx context.Context, t *model.EventTemplate) error {
	const q = `INSERT INTO event_templates
	           (id, name, title, description, venue_name, venue_code, address,
	            map_url, wa_phone, cover_image, capacity)
	           VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, q,
		t.ID, t.Name, t.Title, t.Description, t.VenueName, string(t.VenueCode),
		t.Address, nullStr(t.MapURL), nullStr(t.WAPhone), nullStr(t.CoverImage),
		nullCap(t.Capacity),
	)
	if err != nil {
		return err
	}
	const sel = `SELECT created_at, updated_at FROM event_templates WHERE id = ?`
	return r.db.QueryRowContext(ctx, sel, t.ID).Scan(&t.CreatedAt, &t.UpdatedAt)
}

// GetByID returns a single template or ErrTemplateNotFound.
func (r *TemplateRepo) GetByID(ctx context.Context, id string) (*model.EventTemplate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+templateColumns+` FROM event_templates WHERE id = ?`, id)
	t, err := scanTemplate(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrTemplateNotFound
	}
	return t, err
}

// List returns all templates, most recently updated first.
func (r *TemplateRepo) List(ctx context.Context) ([]model.EventTemplate, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+templateColumns+` FROM event_templates ORDER BY updated_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.EventTemplate, 0)
	for rows.Next() {
		t, err := scanTemplate(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Update overwrites every mutable field of the template.
func (r *TemplateRepo) Update(ctx context.Context, t *model.EventTemplate) error {
	const q = `UPDATE event_templates SET
	             name = ?, title = ?, description = ?, venue_name = ?, venue_code = ?,
	             address = ?, map_url = ?, wa_phone = ?, cover_image = ?, capacity = ?
	           WHERE id = ?`
	res, err := r.db.ExecContext(ctx, q,
		t.Name, t.Title, t.Description, t.VenueName, string(t.VenueCode),
		t.Address, nullStr(t.MapURL), nullStr(t.WAPhone), nullStr(t.CoverImage),
		nullCap(t.Capacity), t.ID,
	)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		var one int
		if scanErr := r.db.QueryRowContext(ctx, `SELECT 1 FROM event_templates WHERE id = ?`, t.ID).Scan(&one); scanErr == sql.ErrNoRows {
			return ErrTemplateNotFound
		}
	}
	return nil
}

// Delete removes a template.  Events produced from it are untouched; no
// back-reference exists.
func (r *TemplateRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM event_templates WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrTemplateNotFound
	}
	return nil
}
