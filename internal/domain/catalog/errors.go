package catalog

import "errors"

// Sentinel kinds for catalog errors.
var (
	// ErrUnknownEvent reports an event code missing from the catalog.
	ErrUnknownEvent = errors.New("unknown event")
)
