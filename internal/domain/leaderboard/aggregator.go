package leaderboard

import (
	"cmp"
	"slices"

	"github.com/okian/clubrecords/internal/domain/catalog"
	"github.com/okian/clubrecords/internal/domain/model"
)

// Capacities bound the number of tie groups per board.
type Capacities struct {
	All          int `json:"max_all"`
	PerCategory  int `json:"max_per_category"`
	AgeGradeAll  int `json:"max_wava_all"`
	AgeGradeYear int `json:"max_wava_year"`
	ClubPBAll    int `json:"max_pb_all"`
	ClubPBYear   int `json:"max_pb_year"`
}

// DefaultCapacities are the sizes used for the published club records.
func DefaultCapacities() Capacities {
	return Capacities{
		All:          10,
		PerCategory:  3,
		AgeGradeAll:  20,
		AgeGradeYear: 10,
		ClubPBAll:    20,
		ClubPBYear:   10,
	}
}

// Grader computes graded values for a performance. Absent tables return ok=false.
type Grader interface {
	ClubPB(p *model.Performance, e catalog.Event) (float64, bool)
	AgeGrade(p *model.Performance, e catalog.Event) (float64, bool)
}

// Placement is the outcome of offering a performance to one board.
type Placement struct {
	Key     Key
	Outcome Outcome
}

// Aggregator owns every board of one run. Boards are created on first use.
// It is not safe for concurrent use; feed it from a single goroutine.
type Aggregator struct {
	catalog *catalog.Catalog
	grader  Grader
	caps    Capacities
	boards  map[Key]*Board
}

// NewAggregator returns an aggregator with no boards.
func NewAggregator(c *catalog.Catalog, opts ...Option) *Aggregator {
	a := &Aggregator{
		catalog: c,
		caps:    DefaultCapacities(),
		boards:  make(map[Key]*Board),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Add offers p to every board it belongs on. The error wraps
// catalog.ErrUnknownEvent when the event code is not in the catalog; the
// performance is then dropped.
func (a *Aggregator) Add(p *model.Performance) ([]Placement, error) {
	e, err := a.catalog.Lookup(p.Event())
	if err != nil {
		return nil, err
	}

	targets := a.FanOut(p, e)
	placements := make([]Placement, 0, len(targets))
	for _, t := range targets {
		b, ok := a.boards[t.Key]
		if !ok {
			b = NewBoard(t.Key, t.SmallerBetter, t.Capacity, t.Value)
			a.boards[t.Key] = b
		}
		placements = append(placements, Placement{Key: t.Key, Outcome: b.Insert(t.Perf)})
	}
	return placements, nil
}

// Board returns the board for key, if any performance reached it.
func (a *Aggregator) Board(key Key) (*Board, bool) {
	b, ok := a.boards[key]
	if !ok || b.Len() == 0 {
		return nil, false
	}
	return b, true
}

// Keys returns the keys of every non-empty board in a stable order.
func (a *Aggregator) Keys() []Key {
	keys := make([]Key, 0, len(a.boards))
	for k, b := range a.boards {
		if b.Len() > 0 {
			keys = append(keys, k)
		}
	}
	slices.SortFunc(keys, func(x, y Key) int {
		return cmp.Or(
			cmp.Compare(x.Kind, y.Kind),
			cmp.Compare(x.Category, y.Category),
			cmp.Compare(x.Event, y.Event),
			cmp.Compare(x.Gender, y.Gender),
			cmp.Compare(x.Year, y.Year),
		)
	})
	return keys
}

// Len is the number of non-empty boards.
func (a *Aggregator) Len() int {
	n := 0
	for _, b := range a.boards {
		if b.Len() > 0 {
			n++
		}
	}
	return n
}

// Years returns the distinct years of per-year boards of kind, ascending.
func (a *Aggregator) Years(kind Kind) []int {
	var years []int
	for k, b := range a.boards {
		if k.Kind == kind && k.Year != 0 && b.Len() > 0 && !slices.Contains(years, k.Year) {
			years = append(years, k.Year)
		}
	}
	slices.Sort(years)
	return years
}

// Capacities returns the configured board sizes.
func (a *Aggregator) Capacities() Capacities { return a.caps }

// Catalog returns the event catalog the aggregator ranks against.
func (a *Aggregator) Catalog() *catalog.Catalog { return a.catalog }
