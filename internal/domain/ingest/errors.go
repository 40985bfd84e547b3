package ingest

import "errors"

// Sentinel kinds for row ingestion errors.
var (
	// ErrMissingRequiredField reports a row without a mandatory value.
	ErrMissingRequiredField = errors.New("missing required field")
	// ErrInvalidField reports a value that is present but unusable.
	ErrInvalidField = errors.New("invalid field")
)
