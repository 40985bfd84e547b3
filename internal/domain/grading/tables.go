package grading

import (
	"fmt"
	"os"
	"sort"

	"github.com/okian/clubrecords/internal/domain/catalog"
	"github.com/okian/clubrecords/internal/domain/model"
	"gopkg.in/yaml.v3"
)

type document struct {
	ClubPB   []clubPBEntry   `yaml:"club_pb"`
	AgeGrade []ageGradeEntry `yaml:"age_grade"`
}

type clubPBEntry struct {
	Event    string    `yaml:"event"`
	Gender   string    `yaml:"gender"`
	Category string    `yaml:"category"`
	Levels   []float64 `yaml:"levels"`
}

type ageGradeEntry struct {
	Event    string          `yaml:"event"`
	Gender   string          `yaml:"gender"`
	Standard float64         `yaml:"standard"`
	Factors  map[int]float64 `yaml:"factors"`
}

type tableKey struct {
	event, gender, category string
}

type ageStandard struct {
	standard float64
	ages     []int // ascending
	factors  map[int]float64
}

// Tables holds the grade thresholds for every graded event. It is built once
// before aggregation and read-only afterwards.
type Tables struct {
	margin   float64
	clubPB   map[tableKey]Levels
	ageGrade map[tableKey]ageStandard
}

// NewTables returns empty tables.
func NewTables(opts ...Option) *Tables {
	t := &Tables{
		margin:   DefaultSafetyMargin,
		clubPB:   make(map[tableKey]Levels),
		ageGrade: make(map[tableKey]ageStandard),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// LoadTables reads each non-empty path as a YAML document with optional
// club_pb and age_grade sections and merges them.
func LoadTables(paths []string, opts ...Option) (*Tables, error) {
	t := NewTables(opts...)
	for _, path := range paths {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadTables, err)
		}
		if err := t.Parse(data); err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
	}
	return t, nil
}

// Parse merges one YAML document into t.
func (t *Tables) Parse(data []byte) error {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("%w: %w", ErrLoadTables, err)
	}

	for _, e := range doc.ClubPB {
		if len(e.Levels) != NumLevels {
			return fmt.Errorf("%w: club_pb %s %s %s has %d levels, want %d",
				ErrInvalidTable, e.Event, e.Gender, e.Category, len(e.Levels), NumLevels)
		}
		var l Levels
		copy(l[:], e.Levels)
		category := e.Category
		if category == "" {
			category = catalog.Open
		}
		t.clubPB[tableKey{e.Event, e.Gender, category}] = l
	}

	for _, e := range doc.AgeGrade {
		if e.Standard <= 0 {
			return fmt.Errorf("%w: age_grade %s %s has no standard", ErrInvalidTable, e.Event, e.Gender)
		}
		s := ageStandard{standard: e.Standard, factors: e.Factors}
		for age := range e.Factors {
			s.ages = append(s.ages, age)
		}
		sort.Ints(s.ages)
		t.ageGrade[tableKey{event: e.Event, gender: e.Gender}] = s
	}
	return nil
}

// Len reports how many club PB and age-grade tables are loaded.
func (t *Tables) Len() (clubPB, ageGrade int) {
	return len(t.clubPB), len(t.ageGrade)
}

// ClubPB returns the interpolated club PB level of p. A table for the
// performance's own category is preferred over the open one.
func (t *Tables) ClubPB(p *model.Performance, e catalog.Event) (float64, bool) {
	levels, ok := t.clubPB[tableKey{p.Event(), p.Gender(), p.Category()}]
	if !ok {
		levels, ok = t.clubPB[tableKey{p.Event(), p.Gender(), catalog.Open}]
	}
	if !ok {
		return 0, false
	}
	return Interpolate(levels, p.Score(), e.SmallerBetter, t.margin), true
}

// AgeGrade returns p's age-grade percentage. It needs the athlete's age and
// a factor at or below that age.
func (t *Tables) AgeGrade(p *model.Performance, e catalog.Event) (float64, bool) {
	if p.Age() <= 0 || p.Score() <= 0 {
		return 0, false
	}
	s, ok := t.ageGrade[tableKey{event: p.Event(), gender: p.Gender()}]
	if !ok {
		return 0, false
	}
	factor, ok := s.factorFor(p.Age())
	if !ok || factor <= 0 {
		return 0, false
	}
	if e.SmallerBetter {
		return s.standard / (p.Score() * factor) * 100, true
	}
	return p.Score() / factor / s.standard * 100, true
}

func (s ageStandard) factorFor(age int) (float64, bool) {
	i := sort.SearchInts(s.ages, age+1) - 1
	if i < 0 {
		return 0, false
	}
	return s.factors[s.ages[i]], true
}
