// Package config defines the run configuration and how it is loaded.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - Load layers a YAML file and environment variables over the defaults.
// - External errors are wrapped with this package's sentinel errors.
package config

import (
	"runtime"
	"time"

	"github.com/okian/clubrecords/internal/domain/leaderboard"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level" validate:"oneof=debug info warn error"`
	// LogJSON switches log output to JSON lines.
	LogJSON bool `koanf:"log_json"`

	// ClubID is the club queried on both ranking sites.
	ClubID    int `koanf:"club_id" validate:"gt=0"`
	FirstYear int `koanf:"first_year" validate:"gte=1900"`
	LastYear  int `koanf:"last_year" validate:"gtefield=FirstYear"`

	// PowerOf10 and Runbritain enable each site.
	PowerOf10  bool `koanf:"powerof10"`
	Runbritain bool `koanf:"runbritain"`

	// Output is the HTML report path.
	Output string `koanf:"output" validate:"required"`
	// CacheFile is the SQLite page cache. Empty disables caching.
	CacheFile string `koanf:"cache_file"`
	// MetricsFile receives a Prometheus text dump at the end of the run.
	MetricsFile string `koanf:"metrics_file"`
	// Addr is the listen address for serve mode. Empty means no server.
	Addr string `koanf:"addr"`

	// WorkerCount sets the number of fetch workers.
	WorkerCount int `koanf:"worker_count" validate:"gte=1"`
	// QueueSize bounds the in-memory fetch job queue.
	QueueSize int `koanf:"queue_size" validate:"gte=1"`

	RequestTimeoutMS int `koanf:"request_timeout_ms" validate:"gte=1"`
	// RequestDelayMS is the minimum spacing between requests, shared by all workers.
	RequestDelayMS int `koanf:"request_delay_ms" validate:"gte=0"`

	PowerOf10URL  string `koanf:"powerof10_url" validate:"url"`
	RunbritainURL string `koanf:"runbritain_url" validate:"url"`

	// GradesFile and AgeGradesFile are YAML grade tables. Either may be empty.
	GradesFile     string  `koanf:"grades_file"`
	AgeGradesFile  string  `koanf:"age_grades_file"`
	PBSafetyMargin float64 `koanf:"pb_safety_margin" validate:"gt=0,lt=1"`

	MaxAll         int `koanf:"max_all" validate:"gte=1"`
	MaxPerCategory int `koanf:"max_per_category" validate:"gte=1"`
	MaxWavaAll     int `koanf:"max_wava_all" validate:"gte=1"`
	MaxWavaYear    int `koanf:"max_wava_year" validate:"gte=1"`
	MaxPBAll       int `koanf:"max_pb_all" validate:"gte=1"`
	MaxPBYear      int `koanf:"max_pb_year" validate:"gte=1"`
}

// New creates a Config populated with defaults.
func New() *Config {
	caps := leaderboard.DefaultCapacities()
	return &Config{
		LogLevel:         "info",
		ClubID:           238,
		FirstYear:        2006,
		LastYear:         2023,
		PowerOf10:        true,
		Runbritain:       true,
		Output:           "records.htm",
		CacheFile:        "cache.db",
		WorkerCount:      min(runtime.NumCPU(), 4),
		QueueSize:        1024,
		RequestTimeoutMS: 30_000,
		RequestDelayMS:   250,
		PowerOf10URL:     "https://www.thepowerof10.info",
		RunbritainURL:    "https://www.runbritainrankings.com",
		PBSafetyMargin:   0.25,
		MaxAll:           caps.All,
		MaxPerCategory:   caps.PerCategory,
		MaxWavaAll:       caps.AgeGradeAll,
		MaxWavaYear:      caps.AgeGradeYear,
		MaxPBAll:         caps.ClubPBAll,
		MaxPBYear:        caps.ClubPBYear,
	}
}

// Capacities returns the leaderboard sizes.
func (c *Config) Capacities() leaderboard.Capacities {
	return leaderboard.Capacities{
		All:          c.MaxAll,
		PerCategory:  c.MaxPerCategory,
		AgeGradeAll:  c.MaxWavaAll,
		AgeGradeYear: c.MaxWavaYear,
		ClubPBAll:    c.MaxPBAll,
		ClubPBYear:   c.MaxPBYear,
	}
}

// RequestTimeout returns RequestTimeoutMS as a duration.
func (c *Config) RequestTimeout() time.Duration {
	return time.Duration(c.RequestTimeoutMS) * time.Millisecond
}

// RequestDelay returns RequestDelayMS as a duration.
func (c *Config) RequestDelay() time.Duration {
	return time.Duration(c.RequestDelayMS) * time.Millisecond
}

// GradeFiles lists the configured grade table paths.
func (c *Config) GradeFiles() []string {
	return []string{c.GradesFile, c.AgeGradesFile}
}
