package repository

import "errors"

var (
	// ErrNotFound is wrapped by every Get* method when no row matches.
	ErrNotFound = errors.New("not found")

	// ErrConcurrentUpdate is returned when a compare-and-swap write finds
	// that another writer changed the row first.
	ErrConcurrentUpdate = errors.New("concurrent update")
)
