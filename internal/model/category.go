package model

import "time"

// Category groups classes by activity type. Names are unique. A class
// may only reference a category that exists.
type Category struct {
	ID        uint64    `json:"id"`
	Name      string    `json:"name"`
	Logo      string    `json:"logo,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
