package markup

import "errors"

// Sentinel kinds for markup errors.
var (
	// ErrMalformedMarkup reports a block that was opened but never closed.
	// Extract returns it together with the blocks recovered before the problem.
	ErrMalformedMarkup = errors.New("malformed markup")
)
