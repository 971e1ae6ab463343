package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
)

// EventRepo encapsulates database queries for class events.
type EventRepo struct {
	db *sql.DB
}

// NewEventRepo constructs an EventRepo with the provided DB handle.
func NewEventRepo(db *sql.DB) *EventRepo {
	return &EventRepo{db: db}
}

const eventColumns = `id, title, date, description, location, latitude, longitude,
	class_id, created_at, updated_at`

func scanEvent(row interface{ Scan(...any) error }, e *model.Event) error {
	var desc, loc sql.NullString
	if err := row.Scan(&e.ID, &e.Title, &e.Date, &desc, &loc,
		&e.Latitude, &e.Longitude, &e.ClassID, &e.CreatedAt, &e.UpdatedAt); err != nil {
		return err
	}
	e.Description = desc.String
	e.Location = loc.String
	return nil
}

// Create inserts a new event for a class. The class-existence check
// belongs to the caller.
func (r *EventRepo) Create(ctx context.Context, e *model.Event) error {
	const qInsert = `INSERT INTO events
		(title, date, description, location, latitude, longitude, class_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		e.Title, e.Date, nullStr(e.Description), nullStr(e.Location),
		e.Latitude, e.Longitude, e.ClassID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	e.ID = uint64(id)

	const qSelect = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	return scanEvent(r.db.QueryRowContext(ctx, qSelect, e.ID), e)
}

// GetByID fetches an event by id. Returns ErrEventNotFound when no row
// exists.
func (r *EventRepo) GetByID(ctx context.Context, id uint64) (*model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE id = ?`
	var e model.Event
	if err := scanEvent(r.db.QueryRowContext(ctx, q, id), &e); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return &e, nil
}

// ListByClass returns all events of a class ordered by date.
func (r *EventRepo) ListByClass(ctx context.Context, classID uint64) ([]model.Event, error) {
	const q = `SELECT ` + eventColumns + ` FROM events WHERE class_id = ? ORDER BY date, id`
	rows, err := r.db.QueryContext(ctx, q, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Event{}
	for rows.Next() {
		var e model.Event
		if err := scanEvent(rows, &e); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// EventUpdate carries the fields of a partial event update. Nil fields
// are left unchanged.
type EventUpdate struct {
	Title       *string
	Date        *string // "2006-01-02 15:04:05", validated by the handler
	Description *string
	Location    *string
	Latitude    *float64
	Longitude   *float64
}

// UpdatePartial applies the non-nil fields of u to the event row.
// Returns ErrEventNotFound when the id does not resolve.
func (r *EventRepo) UpdatePartial(ctx context.Context, id uint64, u EventUpdate) error {
	set := []string{}
	args := []any{}
	if u.Title != nil {
		set = append(set, "title = ?")
		args = append(args, *u.Title)
	}
	if u.Date != nil {
		set = append(set, "date = ?")
		args = append(args, *u.Date)
	}
	if u.Description != nil {
		set = append(set, "description = ?")
		args = append(args, *u.Description)
	}
	if u.Location != nil {
		set = append(set, "location = ?")
		args = append(args, *u.Location)
	}
	if u.Latitude != nil {
		set = append(set, "latitude = ?")
		args = append(args, *u.Latitude)
	}
	if u.Longitude != nil {
		set = append(set, "longitude = ?")
		args = append(args, *u.Longitude)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	q := "UPDATE events SET " + strings.Join(set, ", ") + " WHERE id = ?"
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var exists uint64
		if err := r.db.QueryRowContext(ctx, "SELECT id FROM events WHERE id = ?", id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrEventNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes an event and its membership rows in one transaction.
// Returns ErrEventNotFound when the id does not resolve.
func (r *EventRepo) Delete(ctx context.Context, id uint64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		} else {
			_ = tx.Commit()
		}
	}()

	var exists uint64
	if err = tx.QueryRowContext(ctx, "SELECT id FROM events WHERE id = ?", id).Scan(&exists); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrEventNotFound
		}
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM event_members WHERE event_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM events WHERE id = ?", id); err != nil {
		return err
	}
	return nil
}
