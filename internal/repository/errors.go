package repository

import "errors"

// Common repository errors. Services translate these into their own
// taxonomy before they reach the HTTP boundary.
var (
	// ErrNotFound indicates the record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicate indicates a unique constraint was violated.
	ErrDuplicate = errors.New("record already exists")
)
