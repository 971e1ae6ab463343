package repository

import (
	"context"
	"database/sql"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
)

// RatingRepo encapsulates queries for per-user class ratings. A user
// rates a class at most once (unique key on class_id, user_id); the
// aggregate average is written back to the class row.
type RatingRepo struct {
	db *sql.DB
}

// NewRatingRepo constructs a RatingRepo with the provided DB handle.
func NewRatingRepo(db *sql.DB) *RatingRepo {
	return &RatingRepo{db: db}
}

// Upsert writes a user's rating of a class, replacing any previous one,
// then recomputes the class's aggregate average in the same
// transaction. The recomputed average is returned.
func (r *RatingRepo) Upsert(ctx context.Context, rating *model.ClassRating) (float64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	const qUpsert = `INSERT INTO class_ratings (class_id, user_id, rating, review)
		VALUES (?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE rating = VALUES(rating), review = VALUES(review),
			updated_at = CURRENT_TIMESTAMP`
	if _, err := tx.ExecContext(ctx, qUpsert,
		rating.ClassID, rating.UserID, rating.Rating, nullStr(rating.Review)); err != nil {
		return 0, err
	}

	var avg float64
	if err := tx.QueryRowContext(ctx,
		"SELECT COALESCE(AVG(rating), 0) FROM class_ratings WHERE class_id = ?",
		rating.ClassID).Scan(&avg); err != nil {
		return 0, err
	}
	if _, err := tx.ExecContext(ctx,
		"UPDATE classes SET rating = ?, updated_at = CURRENT_TIMESTAMP WHERE id = ?",
		avg, rating.ClassID); err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	committed = true
	return avg, nil
}

// ListByClass returns all ratings of a class, newest first.
func (r *RatingRepo) ListByClass(ctx context.Context, classID uint64) ([]model.ClassRating, error) {
	const q = `SELECT id, class_id, user_id, rating, COALESCE(review, ''), created_at, updated_at
		FROM class_ratings WHERE class_id = ? ORDER BY id DESC`
	rows, err := r.db.QueryContext(ctx, q, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.ClassRating{}
	for rows.Next() {
		var cr model.ClassRating
		if err := rows.Scan(&cr.ID, &cr.ClassID, &cr.UserID, &cr.Rating,
			&cr.Review, &cr.CreatedAt, &cr.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, cr)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
