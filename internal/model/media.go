package model

import "time"

// Media types accepted for class listings.
const (
	MediaPhoto = "photo"
	MediaVideo = "video"
	MediaReel  = "reel"
)

// ValidMediaType reports whether t is one of the accepted media types.
func ValidMediaType(t string) bool {
	return t == MediaPhoto || t == MediaVideo || t == MediaReel
}

// Media is a photo, video or reel attached to a class listing. Media
// rows live and die with their class: a class update bulk-replaces
// them and a class delete removes them in the same transaction.
type Media struct {
	ID           uint64    `json:"id"`
	Type         string    `json:"type"`
	URL          string    `json:"url"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Tags         string    `json:"tags,omitempty"`
	UploadDate   time.Time `json:"upload_date"`
	ClassID      uint64    `json:"classId"`
	IsCoverImage bool      `json:"isCoverImage"`
}
