package leaderboard

// Option applies a configuration option to the Aggregator.
type Option func(*Aggregator)

// WithCapacities sets the per-kind board sizes.
func WithCapacities(c Capacities) Option {
	return func(a *Aggregator) {
		a.caps = c
	}
}

// WithGrader enables the age-grade and club PB boards.
func WithGrader(g Grader) Option {
	return func(a *Aggregator) {
		a.grader = g
	}
}
