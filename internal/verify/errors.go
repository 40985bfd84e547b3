package verify

import "errors"

var (
	// ErrRequest is returned when the server cannot be read.
	ErrRequest = errors.New("request failed")
	// ErrViolation marks a leaderboard that breaks a ranking invariant.
	ErrViolation = errors.New("invariant violated")
)
