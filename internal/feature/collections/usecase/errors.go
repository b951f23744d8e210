package usecase

import "errors"

// Business-logic failures for collection operations. Upper layers translate
// these to HTTP status codes.
var (
	// ErrNameConflict is returned when the owner already has an active
	// collection with the requested display name.
	ErrNameConflict = errors.New("an active collection with the given name already exists")

	// ErrBothCursors is returned when a list request supplies both a next
	// and a prev cursor.
	ErrBothCursors = errors.New("only one of next_cursor and prev_cursor may be given")

	// ErrCollectionNotFound is returned when no collection matches the
	// requested id for the owner.
	ErrCollectionNotFound = errors.New("collection not found")
)
