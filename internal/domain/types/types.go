// Package types contains the rendered form of leaderboard rows shared by
// the report and the HTTP API.
package types

import (
	"github.com/okian/clubrecords/internal/domain/leaderboard"
	"github.com/okian/clubrecords/internal/domain/score"
)

// Entry is one row of a rendered leaderboard. Rank is zero for the second
// and later members of a tie group.
type Entry struct {
	Rank        int      `json:"rank,omitempty"`
	Performance string   `json:"performance"`
	Athlete     string   `json:"athlete"`
	AthleteURL  string   `json:"athlete_url,omitempty"`
	Date        string   `json:"date,omitempty"`
	Fixture     string   `json:"fixture,omitempty"`
	FixtureURL  string   `json:"fixture_url,omitempty"`
	Source      string   `json:"source"`
	Graded      *float64 `json:"graded,omitempty"`
}

// Entries flattens a board into rows. components is the event's
// sexagesimal component count.
func Entries(b *leaderboard.Board, components int) []Entry {
	var out []Entry
	for i, g := range b.Groups() {
		for j, p := range g.Members {
			e := Entry{
				Performance: p.OriginalSpecial(),
				Athlete:     p.Name(),
				AthleteURL:  p.NameURL(),
				Date:        p.Date(),
				Fixture:     p.Fixture(),
				FixtureURL:  p.FixtureURL(),
				Source:      p.Source().String(),
			}
			if e.Performance == "" {
				e.Performance = score.Format(p.Score(), components, p.DecimalPlaces())
			}
			if j == 0 {
				e.Rank = i + 1
			}
			if v, ok := p.Graded(); ok {
				e.Graded = &v
			}
			out = append(out, e)
		}
	}
	return out
}
