// This file defines repository methods for class listings: CRUD with
// explicit cascade semantics, plus the filter-pushdown query that feeds
// the proximity search engine. Proximity itself is never pushed down;
// it needs per-record distance computation and runs in memory.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
)

// ClassRepo encapsulates all database queries related to classes. It
// depends on a sql.DB connection configured elsewhere.
type ClassRepo struct {
	db *sql.DB
}

// NewClassRepo constructs a ClassRepo with the provided DB handle.
func NewClassRepo(db *sql.DB) *ClassRepo {
	return &ClassRepo{db: db}
}

const classColumns = `id, name, description, location, latitude, longitude,
	price, rating, category_id, owner_id, created_at, updated_at`

func scanClass(row interface{ Scan(...any) error }, c *model.Class) error {
	var desc sql.NullString
	if err := row.Scan(&c.ID, &c.Name, &desc, &c.Location, &c.Latitude, &c.Longitude,
		&c.Price, &c.Rating, &c.CategoryID, &c.OwnerID, &c.CreatedAt, &c.UpdatedAt); err != nil {
		return err
	}
	c.Description = desc.String
	return nil
}

// Create inserts a new class. On success the ID and timestamp fields
// are populated via a follow-up SELECT so callers receive a fully
// populated record. The category-validity check belongs to the caller.
func (r *ClassRepo) Create(ctx context.Context, c *model.Class) error {
	const qInsert = `INSERT INTO classes
		(name, description, location, latitude, longitude, price, rating, category_id, owner_id)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, qInsert,
		c.Name, nullStr(c.Description), c.Location, c.Latitude, c.Longitude,
		c.Price, c.Rating, c.CategoryID, c.OwnerID)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)

	const qSelect = `SELECT ` + classColumns + ` FROM classes WHERE id = ?`
	return scanClass(r.db.QueryRowContext(ctx, qSelect, c.ID), c)
}

// GetByID fetches a class by id. Returns ErrClassNotFound when no row
// exists.
func (r *ClassRepo) GetByID(ctx context.Context, id uint64) (*model.Class, error) {
	const q = `SELECT ` + classColumns + ` FROM classes WHERE id = ?`
	var c model.Class
	if err := scanClass(r.db.QueryRowContext(ctx, q, id), &c); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClassNotFound
		}
		return nil, err
	}
	return &c, nil
}

// Query returns all classes matching the pushed-down filter, newest
// first. No pagination happens here: the query engine still has to
// apply the proximity filter before it can count and slice.
func (r *ClassRepo) Query(ctx context.Context, f model.ClassFilter) ([]model.Class, error) {
	where := []string{}
	args := []any{}

	if f.Text != "" {
		needle := "%" + strings.ToLower(f.Text) + "%"
		where = append(where, "(LOWER(name) LIKE ? OR LOWER(COALESCE(description,'')) LIKE ? OR LOWER(location) LIKE ?)")
		args = append(args, needle, needle, needle)
	}
	if f.MinPrice != nil {
		where = append(where, "price >= ?")
		args = append(args, *f.MinPrice)
	}
	if f.MaxPrice != nil {
		where = append(where, "price <= ?")
		args = append(args, *f.MaxPrice)
	}
	if f.CategoryID != 0 {
		where = append(where, "category_id = ?")
		args = append(args, f.CategoryID)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	q := `SELECT ` + classColumns + ` FROM classes WHERE ` + cond + ` ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Class{}
	for rows.Next() {
		var c model.Class
		if err := scanClass(rows, &c); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ClassUpdate carries the fields of a partial update. Nil fields are
// left unchanged, matching the original API's partial-update contract.
type ClassUpdate struct {
	Name        *string
	Description *string
	Location    *string
	Latitude    *float64
	Longitude   *float64
	Price       *float64
	Rating      *float64
	CategoryID  *uint64
}

// UpdatePartial applies the non-nil fields of u to the class row.
// Returns ErrClassNotFound when the id does not resolve. Ownership
// enforcement belongs to the handler, which already holds the record.
func (r *ClassRepo) UpdatePartial(ctx context.Context, id uint64, u ClassUpdate) error {
	set := []string{}
	args := []any{}
	if u.Name != nil {
		set = append(set, "name = ?")
		args = append(args, *u.Name)
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
	if u.Price != nil {
		set = append(set, "price = ?")
		args = append(args, *u.Price)
	}
	if u.Rating != nil {
		set = append(set, "rating = ?")
		args = append(args, *u.Rating)
	}
	if u.CategoryID != nil {
		set = append(set, "category_id = ?")
		args = append(args, *u.CategoryID)
	}
	if len(set) == 0 {
		return nil
	}
	set = append(set, "updated_at = CURRENT_TIMESTAMP")

	q := "UPDATE classes SET " + strings.Join(set, ", ") + " WHERE id = ?"
	args = append(args, id)
	res, err := r.db.ExecContext(ctx, q, args...)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		// RowsAffected is 0 both for a missing row and a no-op update,
		// so confirm existence before reporting not found.
		var exists uint64
		if err := r.db.QueryRowContext(ctx, "SELECT id FROM classes WHERE id = ?", id).Scan(&exists); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrClassNotFound
			}
			return err
		}
	}
	return nil
}

// Delete removes a class together with its dependent rows: media,
// ratings, and events with their memberships. Everything happens in one
// transaction so a partial cascade can never be observed. Returns
// ErrClassNotFound when the class does not exist and ErrForbidden when
// it exists but belongs to a different owner (ownerID 0 skips the
// ownership check, for admin callers).
func (r *ClassRepo) Delete(ctx context.Context, id, ownerID uint64) error {
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

	var dbOwnerID uint64
	if err = tx.QueryRowContext(ctx, "SELECT owner_id FROM classes WHERE id = ?", id).Scan(&dbOwnerID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			err = ErrClassNotFound
		}
		return err
	}
	if ownerID != 0 && dbOwnerID != ownerID {
		err = ErrForbidden
		return err
	}

	// Memberships of this class's events go first, then the events.
	if _, err = tx.ExecContext(ctx,
		`DELETE em FROM event_members em
		 JOIN events e ON e.id = em.event_id
		 WHERE e.class_id = ?`, id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM events WHERE class_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM media WHERE class_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM class_ratings WHERE class_id = ?", id); err != nil {
		return err
	}
	if _, err = tx.ExecContext(ctx, "DELETE FROM classes WHERE id = ?", id); err != nil {
		return err
	}
	return nil
}

func nullStr(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
