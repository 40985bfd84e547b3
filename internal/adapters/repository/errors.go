package repository

import "errors"

// Sentinel kinds for cache errors.
var (
	// ErrCacheClosed reports use of a cache after Close.
	ErrCacheClosed = errors.New("cache closed")
	// ErrCorruptEntry reports a cached payload that cannot be decoded.
	ErrCorruptEntry = errors.New("corrupt cache entry")
)
