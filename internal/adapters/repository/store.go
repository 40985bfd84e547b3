// Package repository persists parsed ranking pages between runs so a page
// is fetched from the ranking sites only once.
package repository

import (
	"context"

	"github.com/okian/clubrecords/internal/domain/model"
)

// Cache stores the performances parsed from one request, keyed by the
// request's cache key.
type Cache interface {
	// Get returns the cached fields for key and whether they were found.
	// A page cached with no performances is found with an empty slice.
	Get(ctx context.Context, key string) ([]model.Fields, bool, error)
	// Put stores fields under key, replacing any previous entry.
	Put(ctx context.Context, key string, fields []model.Fields) error
	// Count returns the number of cached pages.
	Count(ctx context.Context) (int, error)
	Close() error
}
