package fetch

import (
	"fmt"
	"strings"

	"github.com/okian/clubrecords/internal/domain/markup"
	"github.com/okian/clubrecords/internal/domain/model"
)

const (
	classTitle    = "rankinglisttitle"
	classHeadings = "rankinglistheadings"
	classResult   = "rlr"
)

type tableState int

const (
	seekingTitle tableState = iota
	seekingHeadings
	seekingResults
)

var requiredHeadings = []string{"Name", "Perf", "Date", "Venue"}

// ParsePowerOf10 reads a Po10 club rankings page. The rankings live in
// tables nested one level inside the page layout tables; each starts with a
// title row naming the event and a headings row, followed by result rows.
// Recoverable problems are returned as warnings alongside the fields found.
func ParsePowerOf10(page string, job Job) ([]model.Fields, []error) {
	var (
		out      []model.Fields
		warnings []error
	)

	tables, err := markup.Extract(page, "table")
	if err != nil {
		warnings = append(warnings, err)
	}
	for _, outer := range tables {
		nested, err := markup.Extract(outer.InnerText, "table")
		if err != nil {
			warnings = append(warnings, err)
		}
		for _, table := range nested {
			rows, err := markup.Extract(table.InnerText, "tr")
			if err != nil {
				warnings = append(warnings, err)
			}
			if len(rows) < 3 || !rows[0].HasClass(classTitle) || !rows[1].HasClass(classHeadings) {
				continue
			}
			fields, errs := parseRankingsTable(rows, job)
			out = append(out, fields...)
			warnings = append(warnings, errs...)
		}
	}
	return out, warnings
}

func parseRankingsTable(rows []markup.Block, job Job) ([]model.Fields, []error) {
	var (
		out      []model.Fields
		warnings []error
		state    = seekingTitle
		event    string
		headings map[string]int
	)

	for i := 0; i < len(rows); i++ {
		row := rows[i]
		cells, err := markup.Extract(row.InnerText, "td")
		if err != nil {
			warnings = append(warnings, err)
		}

		switch state {
		case seekingTitle:
			if !row.HasClass(classTitle) || len(cells) == 0 {
				continue
			}
			title := strings.TrimSpace(markup.StripTags(markup.Debold(cells[0].InnerText)))
			event, _, _ = strings.Cut(title, " ")
			state = seekingHeadings

		case seekingHeadings:
			if !row.HasClass(classHeadings) {
				continue
			}
			headings = make(map[string]int, len(cells))
			for idx, cell := range cells {
				headings[strings.TrimSpace(markup.StripTags(markup.Debold(cell.InnerText)))] = idx
			}
			if missing := missingHeading(headings); missing != "" {
				warnings = append(warnings, fmt.Errorf("%w: %s table has no %q heading", ErrNoData, event, missing))
				state = seekingTitle
				continue
			}
			state = seekingResults

		case seekingResults:
			if !strings.HasPrefix(row.Attr("class"), classResult) {
				// End of this event's results; the row may start the next event.
				state = seekingTitle
				i--
				continue
			}
			f, ok := resultRow(cells, headings, job)
			if ok {
				f.Event = event
				out = append(out, f)
			}
		}
	}
	return out, warnings
}

func missingHeading(headings map[string]int) string {
	for _, h := range requiredHeadings {
		if _, ok := headings[h]; !ok {
			return h
		}
	}
	return ""
}

func resultRow(cells []markup.Block, headings map[string]int, job Job) (model.Fields, bool) {
	cell := func(h string) string {
		idx := headings[h]
		if idx >= len(cells) {
			return ""
		}
		return cells[idx].InnerText
	}

	// Later performances by the same athlete leave the name cell empty.
	name, href := markup.Anchor(cell("Name"))
	if name == "" {
		return model.Fields{}, false
	}
	fixture, fixtureHref := markup.Anchor(cell("Venue"))

	return model.Fields{
		Category:    job.Category,
		Gender:      job.Gender,
		Performance: markup.StripTags(cell("Perf")),
		Name:        name,
		NameURL:     absolute(job.Root, href),
		Date:        markup.StripTags(cell("Date")),
		Fixture:     fixture,
		FixtureURL:  absolute(job.Root, fixtureHref),
		Source:      model.PowerOf10(job.Year),
	}, true
}

func absolute(root, href string) string {
	if href == "" || strings.HasPrefix(href, "http://") || strings.HasPrefix(href, "https://") {
		return href
	}
	if !strings.HasPrefix(href, "/") {
		href = "/" + href
	}
	return root + href
}
