package service

import "errors"

var (
	// ErrGradeTables is returned when the configured grade tables cannot be read.
	ErrGradeTables = errors.New("grade tables")
	// ErrFetch is returned when fetching is interrupted.
	ErrFetch = errors.New("fetch interrupted")
	// ErrReport is returned when the report cannot be written.
	ErrReport = errors.New("report")
)
