package storage

import "errors"

// Store errors. Model runs and their outcome rows are written once and never
// updated, so a duplicate key always indicates a caller bug.
var (
	// ErrNotFound is returned when the requested run or outcome rows do
	// not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateKey is returned when inserting a run id that already
	// exists. Runs are immutable; rerunning the model produces a new id.
	ErrDuplicateKey = errors.New("duplicate key: runs are immutable")

	// ErrInvalidInput is returned when input validation fails.
	ErrInvalidInput = errors.New("invalid input")
)
