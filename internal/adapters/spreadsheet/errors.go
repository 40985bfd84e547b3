package spreadsheet

import "errors"

var (
	// ErrUnsupportedFormat is returned for files that are not .xlsx workbooks.
	ErrUnsupportedFormat = errors.New("unsupported spreadsheet format")
	// ErrMissingHeadings marks a worksheet skipped for lacking required headings.
	ErrMissingHeadings = errors.New("missing required headings")
	ErrOpenWorkbook    = errors.New("failed to open workbook")
)
