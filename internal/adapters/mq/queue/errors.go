package queue

import "errors"

// Sentinel kinds for queue errors.
var (
	// ErrClosed reports an enqueue after Close.
	ErrClosed = errors.New("queue closed")
)
