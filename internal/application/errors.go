package application

import (
	"errors"
	"sort"
	"strings"
)

var (
	// ErrNotFound is returned when the addressed entity does not exist in the
	// snapshot.
	ErrNotFound = errors.New("application: not found")
	// ErrInUse is returned when a delete is blocked because another entity
	// still references the target.
	ErrInUse = errors.New("application: still referenced")
	// ErrOverlap is returned when a new segment placement would collide with
	// an existing segment. Interactive edits resolve collisions instead.
	ErrOverlap = errors.New("application: segment would overlap")
	// ErrImmutable is returned for attempts to edit or delete the built-in
	// pause category.
	ErrImmutable = errors.New("application: built-in entry cannot be changed")
)

// ValidationError captures field level validation issues that callers can
// surface to users.
type ValidationError struct {
	FieldErrors map[string]string
}

// Error implements the error interface.
func (v *ValidationError) Error() string {
	if v == nil || len(v.FieldErrors) == 0 {
		return "validation failed"
	}
	fields := make([]string, 0, len(v.FieldErrors))
	for field := range v.FieldErrors {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return "validation failed: " + strings.Join(fields, ", ")
}

// HasErrors reports whether any field level issues were recorded.
func (v *ValidationError) HasErrors() bool {
	return v != nil && len(v.FieldErrors) > 0
}

// add records a field level validation error.
func (v *ValidationError) add(field, message string) {
	if v.FieldErrors == nil {
		v.FieldErrors = make(map[string]string)
	}
	v.FieldErrors[field] = message
}

// ErrorKind maps sentinel and validation errors to a stable logging label.
func ErrorKind(err error) string {
	if err == nil {
		return ""
	}
	switch {
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrInUse):
		return "in_use"
	case errors.Is(err, ErrOverlap):
		return "overlap"
	case errors.Is(err, ErrImmutable):
		return "immutable"
	}

	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return "validation"
	}

	return "unexpected"
}
