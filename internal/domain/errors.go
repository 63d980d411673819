package domain

import "errors"

var (
	// ErrInvalidInput marks malformed or out-of-range caller input.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a referenced record does not exist.
	ErrNotFound = errors.New("not found")
	// ErrConflict marks a write that collides with existing state.
	ErrConflict = errors.New("conflict")
	// ErrUpstreamUnavailable wraps persistence failures.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrForbidden           = errors.New("forbidden")
)
