package service

import (
	"time"

	"github.com/okian/clubrecords/internal/adapters/mq/worker"
	"github.com/okian/clubrecords/internal/domain/catalog"
	"github.com/okian/clubrecords/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithFiles adds records spreadsheets to ingest before the web results.
func WithFiles(paths ...string) Option {
	return func(s *Service) {
		s.files = append(s.files, paths...)
	}
}

// WithFetcher replaces the HTTP fetcher.
func WithFetcher(f worker.Fetcher) Option {
	return func(s *Service) {
		if f != nil {
			s.fetcher = f
		}
	}
}

// WithCache replaces the page cache. The service does not close it.
func WithCache(c worker.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithCatalog replaces the default event catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(s *Service) {
		if c != nil {
			s.catalog = c
		}
	}
}

// WithClock overrides the time stamped on the report.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
