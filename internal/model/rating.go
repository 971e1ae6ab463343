package model

import "time"

// ClassRating is one user's rating of a class, 1.0 through 5.0. A user
// rates a class at most once; a second submission replaces the first.
// The class row carries the aggregate average, recomputed whenever a
// rating is written.
type ClassRating struct {
	ID        uint64    `json:"id"`
	ClassID   uint64    `json:"classId"`
	UserID    uint64    `json:"userId"`
	Rating    float64   `json:"rating"`
	Review    string    `json:"review,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
