package score

import "errors"

// Sentinel kinds for score errors.
var (
	// ErrUnparseableScore reports a performance string with no usable numeric prefix.
	ErrUnparseableScore = errors.New("unparseable score")

	errEmpty          = errors.New("no numeric prefix")
	errEmptyComponent = errors.New("empty sexagesimal component")
	errDecimalPoints  = errors.New("more than one decimal point")
)
