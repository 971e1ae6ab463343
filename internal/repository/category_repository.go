package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-sql-driver/mysql"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
)

// CategoryRepo encapsulates database queries for class categories.
type CategoryRepo struct {
	db *sql.DB
}

// NewCategoryRepo constructs a CategoryRepo with the provided DB handle.
func NewCategoryRepo(db *sql.DB) *CategoryRepo {
	return &CategoryRepo{db: db}
}

// ErrCategoryExists is returned when creating a category whose unique
// name is already taken.
var ErrCategoryExists = errors.New("category name already exists")

// Create inserts a new category. Names are unique; a duplicate insert
// returns ErrCategoryExists.
func (r *CategoryRepo) Create(ctx context.Context, c *model.Category) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO categories (name, logo) VALUES (?, ?)", c.Name, nullStr(c.Logo))
	if err != nil {
		var me *mysql.MySQLError
		if errors.As(err, &me) && me.Number == 1062 {
			return ErrCategoryExists
		}
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	c.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at, updated_at FROM categories WHERE id = ?", c.ID).
		Scan(&c.CreatedAt, &c.UpdatedAt)
}

// Exists reports whether a category id resolves. The class handlers
// use this as the category-validity check before accepting a listing.
func (r *CategoryRepo) Exists(ctx context.Context, id uint64) (bool, error) {
	var found uint64
	err := r.db.QueryRowContext(ctx, "SELECT id FROM categories WHERE id = ?", id).Scan(&found)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// GetByID fetches a category by id. Returns ErrCategoryNotFound when
// no row exists.
func (r *CategoryRepo) GetByID(ctx context.Context, id uint64) (*model.Category, error) {
	var c model.Category
	var logo sql.NullString
	err := r.db.QueryRowContext(ctx,
		"SELECT id, name, logo, created_at, updated_at FROM categories WHERE id = ?", id).
		Scan(&c.ID, &c.Name, &logo, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrCategoryNotFound
	}
	if err != nil {
		return nil, err
	}
	c.Logo = logo.String
	return &c, nil
}

// ListAll returns all categories ordered by id.
func (r *CategoryRepo) ListAll(ctx context.Context) ([]model.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, name, logo, created_at, updated_at FROM categories ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []model.Category{}
	for rows.Next() {
		var c model.Category
		var logo sql.NullString
		if err := rows.Scan(&c.ID, &c.Name, &logo, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, err
		}
		c.Logo = logo.String
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes a category. It refuses (via the FK constraint error)
// when classes still reference it; handlers surface that as a conflict.
func (r *CategoryRepo) Delete(ctx context.Context, id uint64) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM categories WHERE id = ?", id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrCategoryNotFound
	}
	return nil
}
