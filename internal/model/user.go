package model

import "time"

// User roles. Class owners may list classes once verified; admins may
// manage any resource.
const (
	RoleUser       = "user"
	RoleClassOwner = "class_owner"
	RoleAdmin      = "admin"
)

// User mirrors the `users` table. The password hash never leaves the
// repository/handler boundary; json tags omit it.
type User struct {
	ID            uint64    `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	PasswordHash  string    `json:"-"`
	Role          string    `json:"role"`
	ProfileImage  string    `json:"profileImage,omitempty"`
	AdminVerified bool      `json:"adminVerified"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
