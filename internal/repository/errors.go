// Package repository contains data access logic separated from HTTP
// handlers. This file defines sentinel errors reused across the
// repositories so higher layers can distinguish failure scenarios
// without inspecting driver errors. Handlers translate these into the
// appropriate HTTP status codes.
package repository

import "errors"

// ErrClassNotFound is returned when a class id does not resolve.
var ErrClassNotFound = errors.New("class not found")

// ErrCategoryNotFound is returned when a category id does not resolve.
// Creating or updating a class with an unknown category surfaces this
// as a validation failure, not a lookup 404.
var ErrCategoryNotFound = errors.New("category not found")

// ErrEventNotFound is returned when an event id does not resolve.
var ErrEventNotFound = errors.New("event not found")

// ErrUserNotFound is returned when a user id or email does not resolve.
var ErrUserNotFound = errors.New("user not found")

// ErrMemberExists is returned by the membership insert when the
// (event_id, user_id) pair is already present. The unique key on the
// table is the source of truth, so this also covers concurrent
// duplicate inserts that slipped past the existence pre-check.
var ErrMemberExists = errors.New("membership already exists")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they do not own. Handlers should translate this into an
// HTTP 403 response.
var ErrForbidden = errors.New("forbidden")

// ErrEmailExists is returned when registering with an email that is
// already taken.
var ErrEmailExists = errors.New("email already exists")
