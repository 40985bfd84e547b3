// Package report renders the final leaderboards as a single HTML document.
package report

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/okian/clubrecords/internal/domain/catalog"
	"github.com/okian/clubrecords/internal/domain/leaderboard"
	"github.com/okian/clubrecords/internal/domain/types"
)

//go:embed templates/report.html.tmpl
var templateFS embed.FS

var page = template.Must(template.New("report.html.tmpl").Funcs(template.FuncMap{
	"grade": func(v *float64) string {
		if v == nil {
			return ""
		}
		return strconv.FormatFloat(*v, 'f', 2, 64)
	},
}).ParseFS(templateFS, "templates/report.html.tmpl"))

// SourceCount is the number of performances ingested from one source.
type SourceCount struct {
	Source string
	Count  int
}

// Report is everything the document shows.
type Report struct {
	Title      string
	Generated  time.Time
	RunID      string
	Sources    []string
	Counts     []SourceCount
	Aggregator *leaderboard.Aggregator
}

type table struct {
	ID           string
	Title        string
	Graded       bool
	GradeHeading string
	Entries      []types.Entry
}

type section struct {
	ID     string
	Title  string
	Tables []table
}

type view struct {
	Title      string
	Generated  time.Time
	RunID      string
	Sources    []string
	Counts     []SourceCount
	Capacities leaderboard.Capacities
	Sections   []section
}

// Write renders r as HTML to w.
func Write(w io.Writer, r Report) error {
	if r.Aggregator == nil {
		return ErrNoAggregator
	}
	v := view{
		Title:      r.Title,
		Generated:  r.Generated,
		RunID:      r.RunID,
		Sources:    r.Sources,
		Counts:     r.Counts,
		Capacities: r.Aggregator.Capacities(),
		Sections:   sections(r.Aggregator),
	}
	if v.Title == "" {
		v.Title = "Club Records"
	}
	if err := page.Execute(w, v); err != nil {
		return fmt.Errorf("%w: %w", ErrRender, err)
	}
	return nil
}

// sections orders the boards for display: record sections per category and
// gender, then age grade and club PB sections, all time before each year.
func sections(a *leaderboard.Aggregator) []section {
	var out []section
	for _, cat := range recordCategories(a) {
		for _, g := range catalog.Genders {
			key := leaderboard.Key{Kind: leaderboard.KindRecord, Category: cat, Gender: g}
			if s, ok := build(a, key, cat+" "+genderName(g)); ok {
				out = append(out, s)
			}
		}
	}

	for _, kind := range []leaderboard.Kind{leaderboard.KindAgeGrade, leaderboard.KindClubPB} {
		years := append([]int{0}, a.Years(kind)...)
		for _, y := range years {
			period := "All time"
			if y != 0 {
				period = strconv.Itoa(y)
			}
			for _, g := range catalog.Genders {
				key := leaderboard.Key{Kind: kind, Category: catalog.Open, Gender: g, Year: y}
				title := fmt.Sprintf("%s %s %s", kindTitle(kind), genderName(g), period)
				if s, ok := build(a, key, title); ok {
					out = append(out, s)
				}
			}
		}
	}
	return out
}

// build collects the tables for every catalog event under key's kind,
// category, gender and year.
func build(a *leaderboard.Aggregator, key leaderboard.Key, title string) (section, bool) {
	s := section{ID: anchor(key), Title: title}
	graded := key.Kind != leaderboard.KindRecord
	for _, e := range a.Catalog().Events() {
		key.Event = e.Code
		b, ok := a.Board(key)
		if !ok {
			continue
		}
		t := table{
			ID:      anchor(key),
			Title:   e.Code,
			Graded:  graded,
			Entries: types.Entries(b, e.Components),
		}
		if graded {
			t.GradeHeading = kindTitle(key.Kind)
		}
		s.Tables = append(s.Tables, t)
	}
	return s, len(s.Tables) > 0
}

// recordCategories lists record categories in catalog order. Categories
// only seen in spreadsheets follow, alphabetically.
func recordCategories(a *leaderboard.Aggregator) []string {
	seen := map[string]bool{}
	for _, k := range a.Keys() {
		if k.Kind == leaderboard.KindRecord {
			seen[k.Category] = true
		}
	}
	var out []string
	for _, c := range a.Catalog().Categories() {
		if seen[c.Name] {
			out = append(out, c.Name)
			delete(seen, c.Name)
		}
	}
	var rest []string
	for c := range seen {
		rest = append(rest, c)
	}
	slices.Sort(rest)
	return append(out, rest...)
}

func anchor(k leaderboard.Key) string {
	parts := []string{k.Kind.String(), k.Category, k.Gender}
	if k.Event != "" {
		parts = append(parts, k.Event)
	}
	if k.Year != 0 {
		parts = append(parts, strconv.Itoa(k.Year))
	}
	return strings.Join(parts, "-")
}

func genderName(g string) string {
	switch g {
	case "W":
		return "Women"
	case "M":
		return "Men"
	}
	return g
}

func kindTitle(k leaderboard.Kind) string {
	switch k {
	case leaderboard.KindAgeGrade:
		return "Age grade %"
	case leaderboard.KindClubPB:
		return "Club PB"
	}
	return "Records"
}
