package repository

import "time"

// Option applies a configuration option to the SQLiteCache.
type Option func(*SQLiteCache)

// WithMaxAge makes entries older than d count as misses. Zero keeps
// entries forever, which is the default.
func WithMaxAge(d time.Duration) Option {
	return func(c *SQLiteCache) {
		if d >= 0 {
			c.maxAge = d
		}
	}
}

// WithClock overrides the time source used to stamp and age entries.
func WithClock(now func() time.Time) Option {
	return func(c *SQLiteCache) {
		if now != nil {
			c.now = now
		}
	}
}
