package grading

import "errors"

// Sentinel kinds for grade table errors.
var (
	// ErrLoadTables reports an unreadable or unparseable table file.
	ErrLoadTables = errors.New("load grade tables")
	// ErrInvalidTable reports a table entry that cannot be used for grading.
	ErrInvalidTable = errors.New("invalid grade table")
)
