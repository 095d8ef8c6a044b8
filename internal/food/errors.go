package food

import "errors"

var (
	// ErrNotFound is returned when a single-row lookup matches nothing.
	ErrNotFound = errors.New("food not found")

	// ErrAlreadyExists is returned when inserting a food whose description
	// is already in the store. Ingestion treats it as a skip, never an abort.
	ErrAlreadyExists = errors.New("food already exists")
)
