// Package search implements the class discovery engine: it combines
// the filters a data source can push down with the proximity filter,
// sorting and pagination that have to run in memory.
package search

import (
	"context"
	"errors"
	"sort"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/geo"
	"github.com/RaselHossen0/nearest-class-finder-backend/internal/model"
)

// ErrInvalidPagination is returned when page or pageSize is not a
// positive integer.
var ErrInvalidPagination = errors.New("invalid pagination: page and pageSize must be >= 1")

// Sort orders accepted by Criteria.SortBy.
const (
	SortDefault = ""       // data source's natural order (newest first)
	SortPrice   = "price"  // ascending price
	SortRating  = "rating" // descending rating
)

// Criteria is the full set of discovery parameters for one request. It
// is built once by the handler and passed by value; the engine never
// mutates it.
type Criteria struct {
	Search          string    // free text, matched against name/description/location
	MinPrice        *float64  // inclusive lower price bound
	MaxPrice        *float64  // inclusive upper price bound
	CategoryID      uint64    // exact category match, 0 = any
	UserCoordinates *geo.Point // reference position, nil = no proximity
	MaxDistanceKm   *float64  // proximity radius, nil = no distance filter
	SortBy          string    // SortDefault, SortPrice or SortRating
	Page            int       // 1-based
	PageSize        int
}

// Result is one page of discovery results. Total counts every record
// surviving all filters including proximity, so totalPages stays
// accurate even when the requested page is past the end.
type Result struct {
	Total      int           `json:"total"`
	Page       int           `json:"page"`
	TotalPages int           `json:"totalPages"`
	Classes    []model.Class `json:"classes"`
}

// ClassSource supplies candidate class records with the text, price and
// category filters already applied. Implemented by the class
// repository; tests substitute an in-memory source.
type ClassSource interface {
	Query(ctx context.Context, f model.ClassFilter) ([]model.Class, error)
}

// Engine runs discovery queries. It is stateless per call and safe for
// concurrent use.
type Engine struct {
	src ClassSource
}

// NewEngine constructs an Engine over the given data source.
func NewEngine(src ClassSource) *Engine {
	if src == nil {
		panic("nil ClassSource passed to NewEngine")
	}
	return &Engine{src: src}
}

// Search fetches candidates matching the pushed-down filters, applies
// the proximity filter, sorts and slices one page. A page beyond the
// end yields an empty Classes slice with Total still accurate.
func (e *Engine) Search(ctx context.Context, crit Criteria) (Result, error) {
	if crit.Page < 1 || crit.PageSize < 1 {
		return Result{}, ErrInvalidPagination
	}

	candidates, err := e.src.Query(ctx, model.ClassFilter{
		Text:       crit.Search,
		MinPrice:   crit.MinPrice,
		MaxPrice:   crit.MaxPrice,
		CategoryID: crit.CategoryID,
	})
	if err != nil {
		return Result{}, err
	}

	if crit.UserCoordinates != nil {
		candidates = applyProximity(candidates, *crit.UserCoordinates, crit.MaxDistanceKm)
	}

	sortClasses(candidates, crit.SortBy)

	total := len(candidates)
	totalPages := (total + crit.PageSize - 1) / crit.PageSize

	start := (crit.Page - 1) * crit.PageSize
	if start > total {
		start = total
	}
	end := start + crit.PageSize
	if end > total {
		end = total
	}

	return Result{
		Total:      total,
		Page:       crit.Page,
		TotalPages: totalPages,
		Classes:    candidates[start:end],
	}, nil
}

// applyProximity annotates each candidate with its distance from the
// user and, when a radius is given, drops candidates outside it.
// Candidates without coordinates cannot satisfy a distance filter and
// are dropped when one is active; without a radius they pass through
// unannotated.
func applyProximity(candidates []model.Class, user geo.Point, maxKm *float64) []model.Class {
	out := candidates[:0]
	for _, c := range candidates {
		pt := c.Coordinates()
		if pt == nil {
			if maxKm == nil {
				out = append(out, c)
			}
			continue
		}
		d := geo.DistanceMeters(user, *pt)
		if maxKm != nil && d > *maxKm*1000 {
			continue
		}
		c.DistanceMeters = &d
		out = append(out, c)
	}
	return out
}

// sortClasses orders the page candidates. Ties break by ascending id
// so pagination is deterministic across calls.
func sortClasses(cs []model.Class, sortBy string) {
	switch sortBy {
	case SortPrice:
		sort.Slice(cs, func(i, j int) bool {
			if cs[i].Price != cs[j].Price {
				return cs[i].Price < cs[j].Price
			}
			return cs[i].ID < cs[j].ID
		})
	case SortRating:
		sort.Slice(cs, func(i, j int) bool {
			if cs[i].Rating != cs[j].Rating {
				return cs[i].Rating > cs[j].Rating
			}
			return cs[i].ID < cs[j].ID
		})
	default:
		// Natural order from the data source (newest first).
	}
}
