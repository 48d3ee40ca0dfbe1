package store

import "errors"

var (
	// ErrStorage wraps any failure of the underlying database.
	ErrStorage = errors.New("storage error")
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("record not found")
)
