// Package dedupe drops performances that were already ingested, such as a
// result listed in two overlapping worksheets or returned twice for one query.
package dedupe

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/okian/clubrecords/internal/domain/model"
)

// Deduper records fingerprints to ensure each performance is aggregated once.
type Deduper interface {
	// SeenAndRecord reports whether id was seen before and records it if not.
	SeenAndRecord(ctx context.Context, id string) bool
	// Size is the number of fingerprints currently remembered.
	Size() int64
}

// Fingerprint identifies one reported result from one source. Two sources
// reporting the same result give different fingerprints; those are
// reconciled by source precedence on the leaderboards instead.
func Fingerprint(p *model.Performance) string {
	return strings.Join([]string{
		p.Source().String(),
		p.Category(),
		p.Event(),
		p.Gender(),
		p.Athlete(),
		strconv.FormatFloat(p.Score(), 'f', -1, 64),
		strconv.FormatBool(p.Invalid()),
		p.Date(),
	}, "|")
}

// inMemoryDeduper keeps fingerprints in a map. When bounded, the oldest
// fingerprint is evicted first from a ring of insertion order.
type inMemoryDeduper struct {
	mu      sync.Mutex
	seen    map[string]struct{}
	ring    []string
	next    int
	maxSize int
}

// NewInMemoryDeduper creates a new in-memory deduper with configuration options.
func NewInMemoryDeduper(opts ...Option) Deduper {
	d := &inMemoryDeduper{}
	for _, opt := range opts {
		opt(d)
	}
	d.seen = make(map[string]struct{})
	if d.maxSize > 0 {
		d.ring = make([]string, 0, d.maxSize)
	}
	return d
}

func (d *inMemoryDeduper) SeenAndRecord(_ context.Context, id string) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.seen[id]; ok {
		return true
	}
	d.seen[id] = struct{}{}

	if d.maxSize <= 0 {
		return false
	}
	if len(d.ring) < d.maxSize {
		d.ring = append(d.ring, id)
		return false
	}
	delete(d.seen, d.ring[d.next])
	d.ring[d.next] = id
	d.next = (d.next + 1) % d.maxSize
	return false
}

func (d *inMemoryDeduper) Size() int64 {
	d.mu.Lock()
	defer d.mu.Unlock()
	return int64(len(d.seen))
}
