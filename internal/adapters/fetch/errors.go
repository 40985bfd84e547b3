package fetch

import "errors"

// Sentinel kinds for fetch errors.
var (
	// ErrHTTPStatus reports a non-200 response.
	ErrHTTPStatus = errors.New("unexpected http status")
	// ErrNoData reports a page without the expected results table or array.
	ErrNoData = errors.New("no ranking data found")
	// ErrUnknownSite reports a job for a site without a parser.
	ErrUnknownSite = errors.New("unknown site")
)
