// Package ingest turns spreadsheet rows into performances.
package ingest

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/okian/clubrecords/internal/domain/catalog"
	"github.com/okian/clubrecords/internal/domain/model"
)

// Column headings, lower-cased and trimmed.
const (
	ColPerformance = "performance"
	ColDate        = "date"
	ColName        = "name"
	ColEvent       = "event"
	ColGender      = "gender"
	ColAgeGroup    = "age group"
	ColNameURL     = "name url"
	ColFixture     = "fixture"
	ColFixtureURL  = "fixture url"
	ColAge         = "age"
	ColInvalid     = "invalid"
)

// RequiredColumns must all be present as headings for a sheet to be read.
var RequiredColumns = []string{ColPerformance, ColDate, ColName, ColEvent, ColGender, ColAgeGroup}

// Row maps column headings to cell text.
type Row map[string]string

func (r Row) get(col string) string {
	return strings.TrimSpace(r[col])
}

// FromRow builds a performance from row. A row with neither performance
// nor name is blank and yields (nil, nil). Missing mandatory values wrap
// ErrMissingRequiredField; a malformed performance wraps
// score.ErrUnparseableScore.
func FromRow(row Row, src model.Source) (*model.Performance, error) {
	perf, name := row.get(ColPerformance), row.get(ColName)
	if perf == "" && name == "" {
		return nil, nil
	}

	for _, col := range RequiredColumns {
		if row.get(col) == "" {
			return nil, fmt.Errorf("%w: %s", ErrMissingRequiredField, col)
		}
	}

	gender := strings.ToUpper(row.get(ColGender))
	if gender != "M" && gender != "W" {
		return nil, fmt.Errorf("%w: gender %q is not W or M", ErrInvalidField, row.get(ColGender))
	}

	category := row.get(ColAgeGroup)
	if strings.EqualFold(category, catalog.Open) {
		category = catalog.Open
	}

	var age int
	if s := row.get(ColAge); s != "" {
		n, err := strconv.Atoi(strings.TrimSuffix(s, ".0"))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: age %q", ErrInvalidField, s)
		}
		age = n
	}

	return model.NewPerformance(model.Fields{
		Event:       row.get(ColEvent),
		Category:    category,
		Gender:      gender,
		Performance: perf,
		Name:        name,
		NameURL:     row.get(ColNameURL),
		Date:        row.get(ColDate),
		Fixture:     row.get(ColFixture),
		FixtureURL:  row.get(ColFixtureURL),
		Source:      src,
		Invalid:     truthy(row.get(ColInvalid)),
		Age:         age,
	})
}

func truthy(s string) bool {
	switch strings.ToLower(s) {
	case "y", "yes", "true", "1", "x", "invalid":
		return true
	}
	return false
}
