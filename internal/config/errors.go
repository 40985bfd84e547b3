package config

import "errors"

// Sentinel error kinds for this package, matched with errors.Is.
var (
	// ErrInvalidConfig wraps validation failures.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps unreadable files and undecodable values.
	ErrLoadConfig = errors.New("load config failed")
)
