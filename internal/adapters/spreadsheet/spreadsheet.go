// Package spreadsheet reads manually maintained club records from .xlsx
// workbooks into heading-keyed rows.
package spreadsheet

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/okian/clubrecords/internal/domain/ingest"
	"github.com/okian/clubrecords/internal/domain/model"
	"github.com/xuri/excelize/v2"
)

// headingMarker identifies the heading row; rows above it are titles or notes.
const headingMarker = ingest.ColPerformance

// renames maps legacy spreadsheet headings onto the ingest column names.
var renames = map[string]string{
	"year":          ingest.ColDate,
	"record holder": ingest.ColName,
	"po10 event":    ingest.ColEvent,
}

// Sheet is the rows of one worksheet and the source they are attributed to.
type Sheet struct {
	Source model.Source
	Rows   []ingest.Row
}

// Workbook is the readable content of one file. Warnings lists worksheets
// that were skipped.
type Workbook struct {
	Path     string
	Sheets   []Sheet
	Warnings []error
}

// Load opens the workbook at path and returns every worksheet that carries
// the required headings. Non-.xlsx paths return ErrUnsupportedFormat.
func Load(ctx context.Context, path string) (Workbook, error) {
	wb := Workbook{Path: path}
	if !strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return wb, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return wb, fmt.Errorf("%w: %s: %w", ErrOpenWorkbook, path, err)
	}
	defer f.Close()

	label := path
	for _, name := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return wb, err
		}
		cells, err := f.GetRows(name)
		if err != nil {
			wb.Warnings = append(wb.Warnings, fmt.Errorf("%s:%s: %w", label, name, err))
			continue
		}
		rows, err := toRows(cells)
		if err != nil {
			wb.Warnings = append(wb.Warnings, fmt.Errorf("%s:%s: %w", label, name, err))
			continue
		}
		wb.Sheets = append(wb.Sheets, Sheet{
			Source: model.File(label + ":" + name),
			Rows:   rows,
		})
	}
	return wb, nil
}

// toRows locates the heading row and maps every following row by heading.
func toRows(cells [][]string) ([]ingest.Row, error) {
	start := -1
	for i, r := range cells {
		for _, c := range r {
			if normalizeHeading(c) == headingMarker {
				start = i
				break
			}
		}
		if start >= 0 {
			break
		}
	}
	if start < 0 {
		return nil, fmt.Errorf("%w: no %q heading", ErrMissingHeadings, headingMarker)
	}

	headings := make([]string, len(cells[start]))
	present := map[string]bool{}
	for i, c := range cells[start] {
		h := normalizeHeading(c)
		if to, ok := renames[h]; ok {
			h = to
		}
		headings[i] = h
		present[h] = true
	}
	var missing []string
	for _, col := range ingest.RequiredColumns {
		if !present[col] {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: %s", ErrMissingHeadings, strings.Join(missing, ", "))
	}

	var rows []ingest.Row
	for _, r := range cells[start+1:] {
		row := ingest.Row{}
		for i, c := range r {
			if i < len(headings) && headings[i] != "" {
				row[headings[i]] = c
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

func normalizeHeading(s string) string {
	return strings.ToLower(strings.Join(strings.Fields(s), " "))
}
