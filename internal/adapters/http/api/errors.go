package api

import (
	"errors"
	"fmt"
)

// Sentinel kinds for API errors.
var (
	ErrBadRequest = errors.New("bad request")
	ErrNotFound   = errors.New("leaderboard not found")
)

// opError prefixes err with the handler operation name.
func opError(op string, err error) error {
	return fmt.Errorf("%s: %w", op, err)
}
