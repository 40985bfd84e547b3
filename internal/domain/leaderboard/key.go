package leaderboard

import (
	"fmt"
	"strconv"
)

// Kind is the kind of bucket a leaderboard ranks.
type Kind int

const (
	// KindRecord ranks raw performances per category.
	KindRecord Kind = iota
	// KindAgeGrade ranks age-grade percentages.
	KindAgeGrade
	// KindClubPB ranks interpolated club PB levels.
	KindClubPB
)

var kindNames = map[Kind]string{
	KindRecord:   "records",
	KindAgeGrade: "wava",
	KindClubPB:   "pb",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// ParseKind is the inverse of Kind.String.
func ParseKind(s string) (Kind, bool) {
	for k, name := range kindNames {
		if name == s {
			return k, true
		}
	}
	return 0, false
}

// Key identifies one leaderboard. Year is zero for all-time boards.
type Key struct {
	Kind     Kind
	Category string
	Event    string
	Gender   string
	Year     int
}

func (k Key) String() string {
	s := fmt.Sprintf("%s/%s/%s/%s", k.Kind, k.Category, k.Event, k.Gender)
	if k.Year != 0 {
		s += "/" + strconv.Itoa(k.Year)
	}
	return s
}
