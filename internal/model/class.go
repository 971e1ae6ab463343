// Package model defines the records shared by the repository, search
// and handler layers. Field names in json tags match the public API
// contract of the original backend.
package model

import (
	"time"

	"github.com/RaselHossen0/nearest-class-finder-backend/internal/geo"
)

// Class represents a listed activity with a physical location. A class
// belongs to one owner and one category. Latitude/Longitude are nil
// when the listing has no coordinates; such classes are skipped by
// proximity filtering.
//
// DistanceMeters is not persisted. The query engine fills it in when
// the caller supplied a reference position.
type Class struct {
	ID          uint64   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude,omitempty"`
	Longitude   *float64 `json:"longitude,omitempty"`
	Price       float64  `json:"price"`
	Rating      float64  `json:"rating"`
	CategoryID  uint64   `json:"categoryId"`
	OwnerID     uint64   `json:"ownerId"`

	DistanceMeters *float64 `json:"distanceMeters,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Coordinates returns the class position as a geo.Point, or nil when
// the listing has no coordinates.
func (c *Class) Coordinates() *geo.Point {
	if c.Latitude == nil || c.Longitude == nil {
		return nil
	}
	return &geo.Point{Lat: *c.Latitude, Lon: *c.Longitude}
}

// ClassFilter is the set of filters a class data source can push down
// to storage. Proximity is deliberately absent: it requires per-record
// distance computation and is applied in memory by the query engine.
// Zero values mean "no filter" (CategoryID 0, nil price bounds, empty
// text).
type ClassFilter struct {
	Text       string   // case-insensitive substring on name, description, location
	MinPrice   *float64 // inclusive lower price bound
	MaxPrice   *float64 // inclusive upper price bound
	CategoryID uint64   // exact category match
}
