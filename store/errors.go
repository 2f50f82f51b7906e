// Package store implements the MySQL persistence layer. Sentinel errors let
// handlers map failures to HTTP statuses without inspecting driver errors.
package store

import "errors"

// ErrNotFound is returned when no row matches, including rows the caller
// does not own. Handlers translate this into HTTP 404 (or 401 for session
// lookups).
var ErrNotFound = errors.New("not found")

// ErrDuplicate is returned when an insert violates a uniqueness constraint,
// such as registering an email twice. Handlers translate this into HTTP 409.
var ErrDuplicate = errors.New("duplicate")
