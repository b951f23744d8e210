package usecase

import "errors"

// Business-logic failures for entry operations. Upper layers translate these
// to HTTP status codes.
var (
	// ErrEntryNotFound is returned when no entry matches the requested id
	// for the owner.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrCollectionNotFound is returned when the target collection of a new
	// entry does not exist for the owner.
	ErrCollectionNotFound = errors.New("collection not found")

	// ErrCollectionInactive is returned when the target collection exists
	// but is not active.
	ErrCollectionInactive = errors.New("collection is not active")

	// ErrBothCursors is returned when a list request supplies both a next
	// and a prev cursor.
	ErrBothCursors = errors.New("only one of next_cursor and prev_cursor may be given")
)
