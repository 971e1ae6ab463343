package model

import "time"

// Event is a class-associated happening users can join. Coordinates
// follow the same [latitude, longitude] invariant as Class and are
// optional.
type Event struct {
	ID          uint64    `json:"id"`
	Title       string    `json:"title"`
	Date        time.Time `json:"date"`
	Description string    `json:"description,omitempty"`
	Location    string    `json:"location,omitempty"`
	Latitude    *float64  `json:"latitude,omitempty"`
	Longitude   *float64  `json:"longitude,omitempty"`
	ClassID     uint64    `json:"classId"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// MemberSummary is one row of an event roster: the joined user plus
// the display attributes pulled from the users table.
type MemberSummary struct {
	UserID       uint64 `json:"userId"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	ProfileImage string `json:"profileImage,omitempty"`
}
