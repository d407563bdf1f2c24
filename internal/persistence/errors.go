package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested roster does not exist.
	ErrNotFound = errors.New("persistence: not found")
)
