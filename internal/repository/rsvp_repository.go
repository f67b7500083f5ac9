package repository

import (
	"context"
	"database/sql"

	"github.com/iliyamo/event-rsvp/internal/model"
)

// RSVPRepo provides persistence for reservations.  The admission write is
// the only path that creates rows; it runs inside a transaction that holds
// a row lock on the owning event so that concurrent admissions for the
// same event serialize instead of racing the capacity and duplicate
// checks.  All timestamps are stored in UTC.
type RSVPRepo struct {
	db *sql.DB
}

// NewRSVPRepo returns a new RSVPRepo bound to the given database.
func NewRSVPRepo(db *sql.DB) *RSVPRepo { return &RSVPRepo{db: db} }

const rsvpColumns = `id, event_id, full_name, phone, email, company, notes, status,
       created_at, updated_at`

func scanRSVP(scan func(dest ...any) error) (*model.RSVP, error) {
	var (
		rec     model.RSVP
		status  string
		email   sql.NullString
		company sql.NullString
		notes   sql.NullString
	)
	err := scan(
		&rec.ID, &rec.EventID, &rec.FullName, &rec.Phone, &email, &company,
		&notes, &status, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	rec.Status = model.RSVPStatus(status)
	if email.Valid {
		v := email.String
		rec.Email = &v
	}
	if company.Valid {
		v := company.String
		rec.Company = &v
	}
	if notes.Valid {
		v := notes.String
		rec.Notes = &v
	}
	return &rec, nil
}

// Admit inserts a new WAITLIST reservation while enforcing the capacity and
// duplicate invariants atomically.  The sequence inside one transaction:
//
//  1. Lock the event row with SELECT ... FOR UPDATE.  Every admission for
//     the same event queues on this lock, so the checks below cannot
//     interleave with a concurrent insert.
//  2. Count non-cancelled reservations against the locked capacity.
//  3. Check for an existing non-cancelled reservation under the same email.
//  4. Insert and read back the generated timestamps.
//
// The unique index on (event_id, email_active) is the schema-level backstop
// for step 3.  Sentinels: ErrEventNotFound, ErrEventFull, ErrDuplicateRSVP.
func (r *RSVPRepo) Admit(ctx context.Context, rec *model.RSVP) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	var capacity sql.NullInt64
	err = tx.QueryRowContext(ctx,
		`SELECT capacity FROM events WHERE id = ? FOR UPDATE`, rec.EventID,
	).Scan(&capacity)
	if err == sql.ErrNoRows {
		return ErrEventNotFound
	}
	if err != nil {
		return err
	}

	if capacity.Valid && capacity.Int64 > 0 {
		var occupied int64
		err = tx.QueryRowContext(ctx,
			`SELECT COUNT(*) FROM rsvps WHERE event_id = ? AND status <> 'CANCELLED'`,
			rec.EventID,
		).Scan(&occupied)
		if err != nil {
			return err
		}
		if occupied >= capacity.Int64 {
			return ErrEventFull
		}
	}

	if rec.Email != nil {
		var one int
		err = tx.QueryRowContext(ctx,
			`SELECT 1 FROM rsvps WHERE event_id = ? AND email = ? AND status <> 'CANCELLED' LIMIT 1`,
			rec.EventID, *rec.Email,
		).Scan(&one)
		if err == nil {
			return ErrDuplicateRSVP
		}
		if err != sql.ErrNoRows {
			return err
		}
	}

	const ins = `INSERT INTO rsvps (id, event_id, full_name, phone, email, company, notes, status)
	             VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err = tx.ExecContext(ctx, ins,
		rec.ID, rec.EventID, rec.FullName, rec.Phone,
		nullStr(rec.Email), nullStr(rec.Company), nullStr(rec.Notes), string(rec.Status),
	)
	if err != nil {
		if isDuplicateKey(err) {
			return ErrDuplicateRSVP
		}
		return err
	}

	const sel = `SELECT created_at, updated_at FROM rsvps WHERE id = ?`
	if err := tx.QueryRowContext(ctx, sel, rec.ID).Scan(&rec.CreatedAt, &rec.UpdatedAt); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}

// GetByID returns a single reservation or ErrRSVPNotFound.
func (r *RSVPRepo) GetByID(ctx context.Context, id string) (*model.RSVP, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+rsvpColumns+` FROM rsvps WHERE id = ?`, id)
	rec, err := scanRSVP(row.Scan)
	if err == sql.ErrNoRows {
		return nil, ErrRSVPNotFound
	}
	return rec, err
}

// UpdateStatus overwrites the status of one reservation.  The caller has
// already validated the transition, so a zero-row update means the
// reservation is gone.
func (r *RSVPRepo) UpdateStatus(ctx context.Context, id string, status model.RSVPStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE rsvps SET status = ? WHERE id = ?`, string(status), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrRSVPNotFound
	}
	return nil
}

// CountOccupying returns the number of seat-holding (non-cancelled)
// reservations for an event.  Read outside the admission lock, so the value
// is advisory; the authoritative check lives in Admit.
func (r *RSVPRepo) CountOccupying(ctx context.Context, eventID string) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM rsvps WHERE event_id = ? AND status <> 'CANCELLED'`, eventID,
	).Scan(&n)
	return n, err
}

// ListByEvent returns all reservations for an event, newest first.  Used by
// the organizer triage view.
func (r *RSVPRepo) ListByEvent(ctx context.Context, eventID string) ([]model.RSVP, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+rsvpColumns+` FROM rsvps WHERE event_id = ? ORDER BY created_at DESC`, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := make([]model.RSVP, 0)
	for rows.Next() {
		rec, err := scanRSVP(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *rec)
	}
	return out, rows.Err()
}
