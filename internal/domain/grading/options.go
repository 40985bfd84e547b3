package grading

// Option applies a configuration option to Tables.
type Option func(*Tables)

// WithSafetyMargin sets how far beyond the level 9 threshold the synthetic
// level 10 lies, as a fraction of that threshold. Non-positive values are ignored.
func WithSafetyMargin(margin float64) Option {
	return func(t *Tables) {
		if margin > 0 {
			t.margin = margin
		}
	}
}
