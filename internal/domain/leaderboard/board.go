// Package leaderboard maintains bounded, tie-aware ranked lists of
// performances and reconciles the same result reported by several sources.
package leaderboard

import (
	"slices"

	"github.com/okian/clubrecords/internal/domain/model"
)

// Outcome reports what an insertion did to a board.
type Outcome int

const (
	// OutcomeRejected means the performance did not make the board.
	OutcomeRejected Outcome = iota
	// OutcomeAdded means a new rank was created.
	OutcomeAdded
	// OutcomeTied means the performance joined an existing tie group.
	OutcomeTied
	// OutcomeDuplicate means an equal or better source already listed it.
	OutcomeDuplicate
	// OutcomeUpgraded means it replaced the same result from a weaker source.
	OutcomeUpgraded
	// OutcomeRetracted means an invalid marker removed a listed result.
	OutcomeRetracted
	// OutcomeIgnored means an invalid marker matched nothing.
	OutcomeIgnored
)

var outcomeNames = [...]string{"rejected", "added", "tied", "duplicate", "upgraded", "retracted", "ignored"}

func (o Outcome) String() string {
	if int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// TieGroup is a set of performances sharing one comparison value.
type TieGroup struct {
	Value   float64
	Members []*model.Performance
}

// ValueFunc extracts the value a board ranks on.
type ValueFunc func(*model.Performance) float64

// RawScore ranks on the normalized performance.
func RawScore(p *model.Performance) float64 { return p.Score() }

// GradedScore ranks on the graded value, zero when none was set.
func GradedScore(p *model.Performance) float64 {
	g, _ := p.Graded()
	return g
}

// Board is one capacity-limited leaderboard. It is not safe for concurrent use.
type Board struct {
	key           Key
	smallerBetter bool
	capacity      int
	value         ValueFunc
	groups        []*TieGroup
}

// NewBoard returns an empty board.
func NewBoard(key Key, smallerBetter bool, capacity int, value ValueFunc) *Board {
	if value == nil {
		value = RawScore
	}
	return &Board{key: key, smallerBetter: smallerBetter, capacity: capacity, value: value}
}

func (b *Board) Key() Key            { return b.key }
func (b *Board) SmallerBetter() bool { return b.smallerBetter }
func (b *Board) Capacity() int       { return b.capacity }
func (b *Board) Len() int            { return len(b.groups) }

// Groups returns a copy of the tie groups, best first.
func (b *Board) Groups() []TieGroup {
	out := make([]TieGroup, len(b.groups))
	for i, g := range b.groups {
		out[i] = TieGroup{Value: g.Value, Members: slices.Clone(g.Members)}
	}
	return out
}

// atLeastAsGood reports whether a ranks level with or above b.
func (b *Board) atLeastAsGood(a, than float64) bool {
	if b.smallerBetter {
		return a <= than
	}
	return a >= than
}

// Insert offers p to the board.
//
// A full board admits p only when it is at least as good as the worst tie
// group. A performance equal to an existing group's value is reconciled
// against that group: the same athlete keeps the higher-precedence source,
// an invalid marker retracts the listed result, and a different athlete
// joins the tie. Afterwards each athlete keeps only their best rank and the
// board is cut back to capacity.
func (b *Board) Insert(p *model.Performance) Outcome {
	v := b.value(p)

	if len(b.groups) >= b.capacity {
		if b.capacity <= 0 || !b.atLeastAsGood(v, b.groups[len(b.groups)-1].Value) {
			return OutcomeRejected
		}
	}

	outcome := b.place(p, v)
	switch outcome {
	case OutcomeDuplicate, OutcomeIgnored, OutcomeRejected:
		return outcome
	}

	b.repair()
	if len(b.groups) > b.capacity {
		b.groups = b.groups[:b.capacity]
	}

	if (outcome == OutcomeAdded || outcome == OutcomeTied || outcome == OutcomeUpgraded) && !b.contains(p) {
		return OutcomeRejected
	}
	return outcome
}

func (b *Board) place(p *model.Performance, v float64) Outcome {
	for gi, g := range b.groups {
		if g.Value != v {
			continue
		}
		for mi, existing := range g.Members {
			if existing.Athlete() != p.Athlete() {
				continue
			}
			if p.Invalid() {
				g.Members = slices.Delete(g.Members, mi, mi+1)
				if len(g.Members) == 0 {
					b.groups = slices.Delete(b.groups, gi, gi+1)
				}
				return OutcomeRetracted
			}
			if !p.Source().Outranks(existing.Source()) {
				return OutcomeDuplicate
			}
			g.Members[mi] = p
			return OutcomeUpgraded
		}
		if p.Invalid() {
			return OutcomeIgnored
		}
		g.Members = append(g.Members, p)
		return OutcomeTied
	}

	if p.Invalid() {
		return OutcomeIgnored
	}
	b.groups = append(b.groups, &TieGroup{Value: v, Members: []*model.Performance{p}})
	slices.SortStableFunc(b.groups, func(x, y *TieGroup) int {
		switch {
		case x.Value == y.Value:
			return 0
		case b.atLeastAsGood(x.Value, y.Value):
			return -1
		default:
			return 1
		}
	})
	return OutcomeAdded
}

// repair keeps each athlete in the first (best) group they appear in and
// drops groups left empty.
func (b *Board) repair() {
	seen := make(map[string]struct{})
	kept := b.groups[:0]
	for _, g := range b.groups {
		members := g.Members[:0]
		for _, m := range g.Members {
			if _, dup := seen[m.Athlete()]; !dup {
				members = append(members, m)
			}
		}
		g.Members = members
		for _, m := range members {
			seen[m.Athlete()] = struct{}{}
		}
		if len(members) > 0 {
			kept = append(kept, g)
		}
	}
	clear(b.groups[len(kept):])
	b.groups = kept
}

func (b *Board) contains(p *model.Performance) bool {
	for _, g := range b.groups {
		if slices.Contains(g.Members, p) {
			return true
		}
	}
	return false
}
