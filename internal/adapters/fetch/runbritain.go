package fetch

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/okian/clubrecords/internal/domain/markup"
	"github.com/okian/clubrecords/internal/domain/model"
	"gopkg.in/yaml.v3"
)

// Column positions in a Runbritain runners row.
const (
	colChipTime = 1
	colGunTime  = 3
	colName     = 6
	colVenue    = 9
	colDate     = 10
	minColumns  = colDate + 1
)

var runnersArray = regexp.MustCompile(`(?s)runners =\s*(\[.*?\]);`)

// ParseRunbritain reads the runners array a Runbritain rankings page embeds
// in a script. Its string literals are requoted as YAML scalars and the array
// is decoded as a YAML flow sequence. Chip time is used when present, gun
// time otherwise.
func ParseRunbritain(page string, job Job) ([]model.Fields, []error) {
	m := runnersArray.FindStringSubmatch(page)
	if m == nil {
		return nil, []error{fmt.Errorf("%w: no runners array for %s %s %s %d", ErrNoData, job.Event, job.Gender, job.Category, job.Year)}
	}
	literal := requote(strings.NewReplacer("\n", " ", "\r", "").Replace(m[1]))

	var rows [][]any
	if err := yaml.Unmarshal([]byte(literal), &rows); err != nil {
		return nil, []error{fmt.Errorf("%w: runners array: %w", ErrNoData, err)}
	}

	var (
		out      []model.Fields
		warnings []error
	)
	for i, row := range rows {
		if len(row) < minColumns {
			warnings = append(warnings, fmt.Errorf("%w: runners row %d has %d columns", ErrNoData, i, len(row)))
			continue
		}
		col := func(idx int) string {
			if row[idx] == nil {
				return ""
			}
			return strings.TrimSpace(fmt.Sprint(row[idx]))
		}

		name, href := markup.Anchor(col(colName))
		if name == "" {
			continue
		}
		perf := col(colChipTime)
		if perf == "" {
			perf = col(colGunTime)
		}
		fixture, fixtureHref := markup.Anchor(col(colVenue))

		out = append(out, model.Fields{
			Event:       job.Event,
			Category:    job.Category,
			Gender:      job.Gender,
			Performance: perf,
			Name:        name,
			NameURL:     absolute(job.Root, href),
			Date:        col(colDate),
			Fixture:     fixture,
			FixtureURL:  absolute(job.Root, fixtureHref),
			Source:      model.Runbritain(job.Year),
		})
	}
	return out, warnings
}

// requote rewrites every single- or double-quoted script string in literal
// as a YAML single-quoted scalar, resolving backslash escapes. An
// unterminated string runs to the end of literal.
func requote(literal string) string {
	var b strings.Builder
	b.Grow(len(literal))
	for i := 0; i < len(literal); i++ {
		c := literal[i]
		if c != '\'' && c != '"' {
			b.WriteByte(c)
			continue
		}
		quote := c
		b.WriteByte('\'')
		for i++; i < len(literal) && literal[i] != quote; i++ {
			ch := literal[i]
			if ch == '\\' && i+1 < len(literal) {
				i++
				ch = literal[i]
				switch ch {
				case 'n', 'r', 't':
					ch = ' '
				}
			}
			if ch == '\'' {
				b.WriteByte('\'')
			}
			b.WriteByte(ch)
		}
		b.WriteByte('\'')
	}
	return b.String()
}
