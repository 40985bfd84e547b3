// Package model contains the performance record passed between layers.
package model

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/okian/clubrecords/internal/domain/score"
)

// Fields are the raw values a performance is built from. They are also the
// form in which performances are cached.
type Fields struct {
	Event       string `json:"event"`
	Category    string `json:"category"`
	Gender      string `json:"gender"`
	Performance string `json:"performance"`
	Name        string `json:"name"`
	NameURL     string `json:"name_url,omitempty"`
	Date        string `json:"date,omitempty"`
	Fixture     string `json:"fixture,omitempty"`
	FixtureURL  string `json:"fixture_url,omitempty"`
	Source      Source `json:"source"`
	// Invalid marks a manual retraction of a previously listed result.
	Invalid bool `json:"invalid,omitempty"`
	// Age in whole years at the time of the performance, zero when unknown.
	Age int `json:"age,omitempty"`
}

// Performance is a single recorded result. It is immutable once constructed.
type Performance struct {
	fields          Fields
	score           float64
	decimalPlaces   int
	originalSpecial string
	invalid         bool
	athlete         string
	year            int

	graded    float64
	hasGraded bool
}

// NewPerformance normalizes f.Performance and returns the resulting record.
// The error wraps score.ErrUnparseableScore when the performance string has
// no usable numeric prefix.
func NewPerformance(f Fields) (*Performance, error) {
	res, err := score.Normalize(f.Performance)
	if err != nil {
		return nil, err
	}
	return &Performance{
		fields:          f,
		score:           res.Value,
		decimalPlaces:   res.DecimalPlaces,
		originalSpecial: res.OriginalSpecial,
		invalid:         f.Invalid || res.Invalid,
		athlete:         Identity(f.Name),
		year:            yearOf(f.Date, f.Source.Year),
	}, nil
}

// WithGrade returns a copy of p carrying a graded score.
func (p *Performance) WithGrade(g float64) *Performance {
	cp := *p
	cp.graded = g
	cp.hasGraded = true
	return &cp
}

func (p *Performance) Fields() Fields          { return p.fields }
func (p *Performance) Event() string           { return p.fields.Event }
func (p *Performance) Category() string        { return p.fields.Category }
func (p *Performance) Gender() string          { return p.fields.Gender }
func (p *Performance) Score() float64          { return p.score }
func (p *Performance) DecimalPlaces() int      { return p.decimalPlaces }
func (p *Performance) OriginalSpecial() string { return p.originalSpecial }
func (p *Performance) Invalid() bool           { return p.invalid }
func (p *Performance) Name() string            { return p.fields.Name }
func (p *Performance) NameURL() string         { return p.fields.NameURL }
func (p *Performance) Date() string            { return p.fields.Date }
func (p *Performance) Fixture() string         { return p.fields.Fixture }
func (p *Performance) FixtureURL() string      { return p.fields.FixtureURL }
func (p *Performance) Source() Source          { return p.fields.Source }
func (p *Performance) Age() int                { return p.fields.Age }

// Athlete is the identity used to keep one rank per athlete.
func (p *Performance) Athlete() string { return p.athlete }

// Year is the calendar year of the performance, taken from its date when
// one can be read and from the source's ranking year otherwise.
func (p *Performance) Year() int { return p.year }

// Graded returns the age-grade percentage or club PB score, if one was set.
func (p *Performance) Graded() (float64, bool) { return p.graded, p.hasGraded }

// Identity folds case and collapses whitespace so "Ann  SMITH" and
// "ann smith" name the same athlete.
func Identity(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

var (
	fullYear  = regexp.MustCompile(`\b(1[89]\d\d|20\d\d)\b`)
	shortYear = regexp.MustCompile(`\b(\d\d)\s*$`)
)

// yearOf reads "2019", "12 Jun 19" or "2019-06-12".
func yearOf(date string, fallback int) int {
	if m := fullYear.FindStringSubmatch(date); m != nil {
		y, _ := strconv.Atoi(m[1])
		return y
	}
	if m := shortYear.FindStringSubmatch(date); m != nil {
		y, _ := strconv.Atoi(m[1])
		if y < 70 {
			return 2000 + y
		}
		return 1900 + y
	}
	return fallback
}
