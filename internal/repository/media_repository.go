package repository

import (
	"context"
	"database/sql"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
)

// MediaRepo encapsulates database queries for class media rows. Media
// lifecycle is tied to the owning class: updates bulk-replace, class
// deletion cascades.
type MediaRepo struct {
	db *sql.DB
}

// NewMediaRepo constructs a MediaRepo with the provided DB handle.
func NewMediaRepo(db *sql.DB) *MediaRepo {
	return &MediaRepo{db: db}
}

// ListByClass returns all media for a class ordered by upload date,
// cover image first.
func (r *MediaRepo) ListByClass(ctx context.Context, classID uint64) ([]model.Media, error) {
	const q = `SELECT id, type, url, title, description, tags, upload_date, class_id, is_cover_image
		FROM media WHERE class_id = ?
		ORDER BY is_cover_image DESC, upload_date, id`
	rows, err := r.db.QueryContext(ctx, q, classID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Media{}
	for rows.Next() {
		var m model.Media
		var desc, tags sql.NullString
		if err := rows.Scan(&m.ID, &m.Type, &m.URL, &m.Title, &desc, &tags,
			&m.UploadDate, &m.ClassID, &m.IsCoverImage); err != nil {
			return nil, err
		}
		m.Description = desc.String
		m.Tags = tags.String
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// ReplaceForClass deletes the class's existing media rows and inserts
// the new set inside one transaction, so readers never observe a
// half-replaced gallery. An empty slice simply clears the gallery.
func (r *MediaRepo) ReplaceForClass(ctx context.Context, classID uint64, media []model.Media) error {
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

	if _, err := tx.ExecContext(ctx, "DELETE FROM media WHERE class_id = ?", classID); err != nil {
		return err
	}
	const qInsert = `INSERT INTO media (type, url, title, description, tags, class_id, is_cover_image)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	for _, m := range media {
		if _, err := tx.ExecContext(ctx, qInsert,
			m.Type, m.URL, m.Title, nullStr(m.Description), nullStr(m.Tags),
			classID, m.IsCoverImage); err != nil {
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	committed = true
	return nil
}
