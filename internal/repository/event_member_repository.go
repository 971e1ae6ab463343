// This file defines the membership store for event joins. The table
// carries a composite unique key on (event_id, user_id); that key, not
// the existence pre-check, is what guarantees at most one membership
// row per pair under concurrent joins.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
)

// EventMemberRepo owns the event_members join table exclusively.
type EventMemberRepo struct {
	db *sql.DB
}

// NewEventMemberRepo constructs an EventMemberRepo with the provided DB
// handle.
func NewEventMemberRepo(db *sql.DB) *EventMemberRepo {
	return &EventMemberRepo{db: db}
}

// Exists reports whether a membership row exists for the pair.
func (r *EventMemberRepo) Exists(ctx context.Context, eventID, userID uint64) (bool, error) {
	var found uint64
	err := r.db.QueryRowContext(ctx,
		"SELECT 1 FROM event_members WHERE event_id = ? AND user_id = ?",
		eventID, userID).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Insert adds a membership row. A duplicate-key failure (error 1062,
// raised when a concurrent join won the race) is reported as
// ErrMemberExists so callers can fold it into the idempotent
// already-joined response.
func (r *EventMemberRepo) Insert(ctx context.Context, eventID, userID uint64) error {
	_, err := r.db.ExecContext(ctx,
		"INSERT INTO event_members (event_id, user_id) VALUES (?, ?)",
		eventID, userID)
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return ErrMemberExists
		}
		return err
	}
	return nil
}

// Delete removes a membership row. The bool result reports whether a
// row was actually removed.
func (r *EventMemberRepo) Delete(ctx context.Context, eventID, userID uint64) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		"DELETE FROM event_members WHERE event_id = ? AND user_id = ?",
		eventID, userID)
	if err != nil {
		return false, err
	}
	n, _ := res.RowsAffected()
	return n > 0, nil
}

// ListByEvent returns the roster of an event joined against the users
// table for display attributes, in join order. An event nobody joined
// yields an empty slice, not an error.
func (r *EventMemberRepo) ListByEvent(ctx context.Context, eventID uint64) ([]model.MemberSummary, error) {
	const q = `SELECT u.id, u.name, u.email, COALESCE(u.profile_image, '')
		FROM event_members em
		JOIN users u ON u.id = em.user_id
		WHERE em.event_id = ?
		ORDER BY em.joined_at, u.id`
	rows, err := r.db.QueryContext(ctx, q, eventID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.MemberSummary{}
	for rows.Next() {
		var m model.MemberSummary
		if err := rows.Scan(&m.UserID, &m.Name, &m.Email, &m.ProfileImage); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// CountByEvent returns the number of members of an event.
func (r *EventMemberRepo) CountByEvent(ctx context.Context, eventID uint64) (int64, error) {
	var n int64
	err := r.db.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM event_members WHERE event_id = ?", eventID).Scan(&n)
	return n, err
}
