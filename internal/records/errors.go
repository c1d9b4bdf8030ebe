package records

import "errors"

var (
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound covers both a missing record and a record owned by
	// someone else, so responses cannot confirm foreign record ids.
	ErrNotFound = errors.New("record not found")
)
