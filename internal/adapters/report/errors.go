package report

import "errors"

var (
	// ErrRender wraps template execution failures.
	ErrRender = errors.New("report render failed")
	// ErrNoAggregator is returned when Write is given nothing to render.
	ErrNoAggregator = errors.New("report has no aggregator")
)
