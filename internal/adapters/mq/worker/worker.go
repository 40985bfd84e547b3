// Package worker fetches queued jobs concurrently and hands the results to
// a single consumer.
package worker

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/okian/clubrecords/internal/adapters/fetch"
	"github.com/okian/clubrecords/internal/adapters/mq/queue"
	"github.com/okian/clubrecords/internal/domain/model"
	"github.com/okian/clubrecords/pkg/logger"
	"github.com/okian/clubrecords/pkg/metrics"
)

// Fetcher retrieves and parses the page of a job.
type Fetcher interface {
	Fetch(ctx context.Context, job fetch.Job) (fetch.Result, error)
}

// Cache stores parsed results by request key.
type Cache interface {
	Get(ctx context.Context, key string) ([]model.Fields, bool, error)
	Put(ctx context.Context, key string, fields []model.Fields) error
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue() <-chan queue.Job
}

// Batch is the outcome of one job. Err is set when the page could not be
// fetched; such a job contributes nothing.
type Batch struct {
	Job      fetch.Job
	Fields   []model.Fields
	Warnings []error
	Cached   bool
	Err      error
}

// InMemoryWorker takes jobs off the queue until it is closed.
type InMemoryWorker struct {
	queue   Queue
	fetcher Fetcher
	cache   Cache
	out     chan<- Batch
	name    string
	logger  logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, f Fetcher, out chan<- Batch, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:   q,
		fetcher: f,
		out:     out,
		name:    "worker",
		logger:  logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run processes jobs until the queue is drained and closed or ctx ends.
func (w *InMemoryWorker) Run(ctx context.Context) {
	jobs := w.queue.Dequeue()
	for {
		select {
		case <-ctx.Done():
			return
		case job, ok := <-jobs:
			if !ok {
				return
			}
			b := w.process(ctx, job)
			select {
			case w.out <- b:
			case <-ctx.Done():
				return
			}
		}
	}
}

func (w *InMemoryWorker) process(ctx context.Context, job fetch.Job) Batch { //nolint:gocritic // Job is passed by value for channel semantics
	start := time.Now()
	defer func() {
		metrics.RecordWorkerJobLatency(float64(time.Since(start).Milliseconds()))
	}()

	key := job.Key()
	if w.cache != nil {
		fields, found, err := w.cache.Get(ctx, key)
		if err != nil {
			w.logger.Warn(ctx, "cache lookup failed", logger.String("key", key), logger.Error(err))
		}
		metrics.RecordCacheLookup(found)
		if found {
			w.logger.Debug(ctx, "performances from cache",
				logger.String("key", key),
				logger.Int("count", len(fields)),
			)
			return Batch{Job: job, Fields: fields, Cached: true}
		}
	}

	res, err := w.fetcher.Fetch(ctx, job)
	if err != nil {
		metrics.RecordWorkerError()
		return Batch{Job: job, Err: err}
	}

	if w.cache != nil {
		if err := w.cache.Put(ctx, key, res.Fields); err != nil {
			w.logger.Warn(ctx, "cache store failed", logger.String("key", key), logger.Error(err))
		}
	}
	return Batch{Job: job, Fields: res.Fields, Warnings: res.Warnings}
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	logger  logger.Logger
}

// NewPool creates workerCount workers reading q and writing to out. cache may be nil.
func NewPool(workerCount int, q Queue, f Fetcher, cache Cache, out chan<- Batch) *Pool {
	workerCount = max(workerCount, 1)
	p := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := range p.workers {
		p.workers[i] = NewInMemoryWorker(q, f, out,
			WithName("worker-"+strconv.Itoa(i)),
			WithCache(cache),
		)
	}
	return p
}

// Run starts every worker and blocks until all have stopped. It returns
// ctx.Err() when stopped by cancellation.
func (p *Pool) Run(ctx context.Context) error {
	var wg sync.WaitGroup
	metrics.UpdateWorkerActive(len(p.workers))
	for _, w := range p.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w.Run(ctx)
		}()
	}
	wg.Wait()
	metrics.UpdateWorkerActive(0)
	p.logger.Debug(ctx, "workers stopped", logger.Int("workers", len(p.workers)))
	return ctx.Err()
}
