package leaderboard

import (
	"github.com/okian/clubrecords/internal/domain/catalog"
	"github.com/okian/clubrecords/internal/domain/model"
)

// Target is one board a performance is offered to.
type Target struct {
	Key           Key
	Perf          *model.Performance
	SmallerBetter bool
	Capacity      int
	Value         ValueFunc
}

// FanOut lists the boards p belongs on: its own category, the open
// category when the event is open to it, and the all-time and per-year
// graded boards when a grade can be computed. The same performance is
// reused for every record board; graded boards get a graded copy.
func (a *Aggregator) FanOut(p *model.Performance, e catalog.Event) []Target {
	record := func(category string, capacity int) Target {
		return Target{
			Key:           Key{Kind: KindRecord, Category: category, Event: e.Code, Gender: p.Gender()},
			Perf:          p,
			SmallerBetter: e.SmallerBetter,
			Capacity:      capacity,
			Value:         RawScore,
		}
	}

	var targets []Target
	if p.Category() == catalog.Open {
		targets = append(targets, record(catalog.Open, a.caps.All))
	} else {
		targets = append(targets, record(p.Category(), a.caps.PerCategory))
		if e.ValidFor(catalog.Open) {
			targets = append(targets, record(catalog.Open, a.caps.All))
		}
	}

	if a.grader == nil {
		return targets
	}

	graded := func(kind Kind, g float64, all, perYear int) []Target {
		gp := p.WithGrade(g)
		base := Key{Kind: kind, Category: catalog.Open, Event: e.Code, Gender: p.Gender()}
		yearly := base
		yearly.Year = p.Year()
		out := []Target{{Key: base, Perf: gp, Capacity: all, Value: GradedScore}}
		if yearly.Year != 0 {
			out = append(out, Target{Key: yearly, Perf: gp, Capacity: perYear, Value: GradedScore})
		}
		return out
	}

	if g, ok := a.grader.AgeGrade(p, e); ok {
		targets = append(targets, graded(KindAgeGrade, g, a.caps.AgeGradeAll, a.caps.AgeGradeYear)...)
	}
	if g, ok := a.grader.ClubPB(p, e); ok {
		targets = append(targets, graded(KindClubPB, g, a.caps.ClubPBAll, a.caps.ClubPBYear)...)
	}
	return targets
}
