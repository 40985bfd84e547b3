// Package grading turns performances into continuous graded values: club PB
// scores interpolated from nine award levels, and age-grade percentages.
package grading

// NumLevels is the number of award thresholds defined per table.
const NumLevels = 9

// DefaultSafetyMargin puts level 10 at a 25% improvement on level 9.
const DefaultSafetyMargin = 0.25

// Levels are the award thresholds from level 1 (worst) to level 9 (best).
type Levels [NumLevels]float64

// Grade maps score onto a continuous level using DefaultSafetyMargin.
func Grade(levels Levels, score float64, smallerBetter bool) float64 {
	return Interpolate(levels, score, smallerBetter, DefaultSafetyMargin)
}

// Interpolate maps score onto a continuous level. A score equal to
// levels[i] grades as i+1. Scores worse than level 1 ramp down towards 0;
// scores at or beyond level 9 ramp linearly towards 10, reached at margin
// beyond levels[8].
func Interpolate(levels Levels, score float64, smallerBetter bool, margin float64) float64 {
	worst, best := levels[0], levels[NumLevels-1]

	better := func(a, b float64) bool {
		if smallerBetter {
			return a < b
		}
		return a > b
	}

	if better(worst, score) {
		if smallerBetter {
			// Reciprocal so very slow times tend to zero instead of going negative.
			if score <= 0 {
				return 0
			}
			return worst / score
		}
		if worst == 0 {
			return 0
		}
		return score / worst
	}

	if !better(best, score) {
		limit := best * (1 + margin)
		if smallerBetter {
			limit = best * (1 - margin)
		}
		if limit == best {
			return NumLevels
		}
		return NumLevels + (score-best)/(limit-best)
	}

	for i := 0; i < NumLevels-1; i++ {
		lo, hi := levels[i], levels[i+1]
		if !better(lo, score) && better(hi, score) {
			if hi == lo {
				return float64(i + 1)
			}
			return float64(i+1) + (score-lo)/(hi-lo)
		}
	}
	// Levels out of order; fall back to the discrete level 1.
	return 1
}
