// Package service runs one aggregation: it ingests records spreadsheets,
// fetches and parses ranking pages, reduces every performance into the
// leaderboards and writes the report.
package service

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/okian/clubrecords/internal/adapters/fetch"
	"github.com/okian/clubrecords/internal/adapters/mq/queue"
	"github.com/okian/clubrecords/internal/adapters/mq/worker"
	"github.com/okian/clubrecords/internal/adapters/report"
	"github.com/okian/clubrecords/internal/adapters/repository"
	"github.com/okian/clubrecords/internal/adapters/spreadsheet"
	"github.com/okian/clubrecords/internal/config"
	"github.com/okian/clubrecords/internal/domain/catalog"
	"github.com/okian/clubrecords/internal/domain/dedupe"
	"github.com/okian/clubrecords/internal/domain/grading"
	"github.com/okian/clubrecords/internal/domain/ingest"
	"github.com/okian/clubrecords/internal/domain/leaderboard"
	"github.com/okian/clubrecords/internal/domain/markup"
	"github.com/okian/clubrecords/internal/domain/model"
	"github.com/okian/clubrecords/pkg/logger"
	"github.com/okian/clubrecords/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Drop reasons reported in logs and metrics.
const (
	dropDuplicate    = "duplicate"
	dropUnknownEvent = "unknown_event"
	dropUnparseable  = "unparseable_score"
	dropMissingField = "missing_field"
	dropInvalidRow   = "invalid_row"
	dropFile         = "unreadable_file"
	dropSheet        = "skipped_sheet"
	dropJob          = "failed_job"
)

// Service owns one run. Run must complete before the leaderboards are read.
type Service struct {
	cfg     *config.Config
	catalog *catalog.Catalog
	files   []string
	fetcher worker.Fetcher
	cache   worker.Cache
	logger  logger.Logger
	now     func() time.Time

	// Only the aggregation goroutine writes these; mu guards readers.
	mu      sync.RWMutex
	runID   string
	agg     *leaderboard.Aggregator
	deduper dedupe.Deduper
	stats   runStats
}

type runStats struct {
	ingested  map[model.Kind]int
	dropped   map[string]int
	outcomes  map[string]int
	jobs      int
	cached    int
	failed    int
	startedAt time.Time
	duration  time.Duration
}

// New constructs a Service for cfg.
func New(cfg *config.Config, opts ...Option) *Service {
	s := &Service{
		cfg:     cfg,
		catalog: catalog.Default(),
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	return s
}

// Run performs the whole aggregation and writes the report. Record-level
// problems are logged and counted; only configuration, cancellation and
// output failures are returned.
func (s *Service) Run(ctx context.Context) error {
	s.mu.Lock()
	s.runID = uuid.NewString()
	s.stats = runStats{
		ingested:  map[model.Kind]int{},
		dropped:   map[string]int{},
		outcomes:  map[string]int{},
		startedAt: s.now(),
	}
	s.mu.Unlock()
	log := s.logger.With(logger.String("run_id", s.runID))

	tables, err := grading.LoadTables(s.cfg.GradeFiles(), grading.WithSafetyMargin(s.cfg.PBSafetyMargin))
	if err != nil {
		return fmt.Errorf("%w: %w", ErrGradeTables, err)
	}
	pbTables, ageTables := tables.Len()
	log.Info(ctx, "grade tables loaded", logger.Int("club_pb", pbTables), logger.Int("age_grade", ageTables))

	s.mu.Lock()
	s.agg = leaderboard.NewAggregator(s.catalog,
		leaderboard.WithCapacities(s.cfg.Capacities()),
		leaderboard.WithGrader(tables),
	)
	s.deduper = dedupe.NewInMemoryDeduper()
	s.mu.Unlock()

	for _, path := range s.files {
		s.ingestFile(ctx, log, path)
	}

	if err := s.fetchAll(ctx, log); err != nil {
		return err
	}

	s.mu.Lock()
	s.stats.duration = s.now().Sub(s.stats.startedAt)
	metrics.UpdateLeaderboards(s.agg.Len())
	s.mu.Unlock()

	if err := s.writeReport(); err != nil {
		return err
	}
	if s.cfg.MetricsFile != "" {
		if err := metrics.WriteTextfile(s.cfg.MetricsFile); err != nil {
			log.Warn(ctx, "metrics not written", logger.String("path", s.cfg.MetricsFile), logger.Error(err))
		}
	}

	log.Info(ctx, "run complete",
		logger.String("output", s.cfg.Output),
		logger.Int("leaderboards", s.agg.Len()),
		logger.Any("ingested", s.ingestedBySource()),
		logger.Any("dropped", s.stats.dropped),
	)
	return nil
}

// Aggregator returns the leaderboards of the last run.
func (s *Service) Aggregator() *leaderboard.Aggregator {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.agg
}

func (s *Service) ingestFile(ctx context.Context, log logger.Logger, path string) {
	wb, err := spreadsheet.Load(ctx, path)
	if err != nil {
		s.drop(dropFile)
		log.Warn(ctx, "spreadsheet skipped", logger.String("path", path), logger.Error(err))
		return
	}
	for _, w := range wb.Warnings {
		s.drop(dropSheet)
		log.Warn(ctx, "worksheet skipped", logger.Error(w))
	}
	for _, sheet := range wb.Sheets {
		for i, row := range sheet.Rows {
			p, err := ingest.FromRow(row, sheet.Source)
			if err != nil {
				reason := dropUnparseable
				switch {
				case errors.Is(err, ingest.ErrMissingRequiredField):
					reason = dropMissingField
				case errors.Is(err, ingest.ErrInvalidField):
					reason = dropInvalidRow
				}
				s.drop(reason)
				log.Warn(ctx, "row skipped",
					logger.String("source", sheet.Source.String()),
					logger.Int("row", i+1),
					logger.Error(err),
				)
				continue
			}
			if p == nil {
				continue
			}
			s.offer(ctx, log, p)
		}
	}
}

// fetchAll enqueues the planned jobs, fetches them on the worker pool and
// aggregates the batches on this goroutine's single consumer.
func (s *Service) fetchAll(ctx context.Context, log logger.Logger) error {
	jobs := fetch.Plan(fetch.PlanConfig{
		ClubID:        s.cfg.ClubID,
		FirstYear:     s.cfg.FirstYear,
		LastYear:      s.cfg.LastYear,
		PowerOf10:     s.cfg.PowerOf10,
		Runbritain:    s.cfg.Runbritain,
		PowerOf10URL:  s.cfg.PowerOf10URL,
		RunbritainURL: s.cfg.RunbritainURL,
	}, s.catalog)
	if len(jobs) == 0 {
		return nil
	}
	log.Info(ctx, "fetching rankings", logger.Int("jobs", len(jobs)))

	cache, closeCache := s.openCache(ctx, log)
	defer closeCache()

	fetcher := s.fetcher
	if fetcher == nil {
		fetcher = fetch.NewFetcher(fetch.NewClient(
			fetch.WithTimeout(s.cfg.RequestTimeout()),
			fetch.WithDelay(s.cfg.RequestDelay()),
			fetch.WithLogger(log.Named("fetch")),
		))
	}

	q := queue.NewInMemoryQueue(queue.WithCapacity(s.cfg.QueueSize))
	out := make(chan worker.Batch, s.cfg.WorkerCount)
	pool := worker.NewPool(s.cfg.WorkerCount, q, fetcher, cache, out)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		defer q.Close()
		for _, j := range jobs {
			if err := q.Enqueue(gctx, j); err != nil {
				return err
			}
		}
		return nil
	})
	g.Go(func() error {
		defer close(out)
		return pool.Run(gctx)
	})
	g.Go(func() error {
		for b := range out {
			s.absorb(gctx, log, b)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return fmt.Errorf("%w: %w", ErrFetch, err)
	}
	return nil
}

// openCache returns the injected cache, or opens the configured SQLite
// file. A cache that cannot be opened only costs refetching.
func (s *Service) openCache(ctx context.Context, log logger.Logger) (worker.Cache, func()) {
	if s.cache != nil {
		return s.cache, func() {}
	}
	if s.cfg.CacheFile == "" {
		return nil, func() {}
	}
	c, err := repository.OpenSQLite(s.cfg.CacheFile)
	if err != nil {
		log.Warn(ctx, "page cache unavailable", logger.String("path", s.cfg.CacheFile), logger.Error(err))
		return nil, func() {}
	}
	if n, err := c.Count(ctx); err == nil {
		log.Info(ctx, "page cache opened", logger.String("path", s.cfg.CacheFile), logger.Int("pages", n))
	}
	return c, func() {
		if err := c.Close(); err != nil {
			log.Warn(ctx, "page cache close failed", logger.Error(err))
		}
	}
}

func (s *Service) absorb(ctx context.Context, log logger.Logger, b worker.Batch) {
	s.mu.Lock()
	s.stats.jobs++
	if b.Cached {
		s.stats.cached++
	}
	if b.Err != nil {
		s.stats.failed++
	}
	s.mu.Unlock()

	if b.Err != nil {
		s.drop(dropJob)
		log.Warn(ctx, "job failed", logger.String("job", b.Job.Key()), logger.Error(b.Err))
		return
	}

	malformed := false
	for _, w := range b.Warnings {
		if errors.Is(w, markup.ErrMalformedMarkup) {
			malformed = true
			log.Warn(ctx, "malformed markup", logger.String("job", b.Job.Key()), logger.Error(w))
			continue
		}
		log.Debug(ctx, "page warning", logger.String("job", b.Job.Key()), logger.Error(w))
	}
	if malformed {
		metrics.RecordMarkupWarning(b.Job.Site.String())
	}

	for _, f := range b.Fields {
		p, err := model.NewPerformance(f)
		if err != nil {
			s.drop(dropUnparseable)
			log.Warn(ctx, "performance skipped",
				logger.String("performance", f.Performance),
				logger.String("name", f.Name),
				logger.String("source", f.Source.String()),
				logger.Error(err),
			)
			continue
		}
		s.offer(ctx, log, p)
	}
}

// offer deduplicates p and hands it to the aggregator.
func (s *Service) offer(ctx context.Context, log logger.Logger, p *model.Performance) {
	if s.deduper.SeenAndRecord(ctx, dedupe.Fingerprint(p)) {
		s.drop(dropDuplicate)
		return
	}

	s.mu.Lock()
	placements, err := s.agg.Add(p)
	if err == nil {
		s.stats.ingested[p.Source().Kind]++
		for _, pl := range placements {
			s.stats.outcomes[pl.Outcome.String()]++
		}
	}
	s.mu.Unlock()

	if err != nil {
		s.drop(dropUnknownEvent)
		log.Warn(ctx, "performance skipped",
			logger.String("event", p.Event()),
			logger.String("name", p.Name()),
			logger.String("source", p.Source().String()),
			logger.Error(err),
		)
		return
	}
	metrics.RecordPerformanceIngested(p.Source().Kind.String())
	for _, pl := range placements {
		metrics.RecordInsertion(pl.Outcome.String())
	}
}

func (s *Service) drop(reason string) {
	s.mu.Lock()
	s.stats.dropped[reason]++
	s.mu.Unlock()
	metrics.RecordDropped(reason)
}

func (s *Service) writeReport() error {
	f, err := os.Create(s.cfg.Output)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrReport, err)
	}

	s.mu.RLock()
	r := report.Report{
		Generated:  s.now(),
		RunID:      s.runID,
		Sources:    s.sources(),
		Counts:     s.counts(),
		Aggregator: s.agg,
	}
	err = report.Write(f, r)
	s.mu.RUnlock()

	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return fmt.Errorf("%w: %s: %w", ErrReport, s.cfg.Output, err)
	}
	return nil
}

// sources describes what the run read, for the report header.
func (s *Service) sources() []string {
	var out []string
	years := strconv.Itoa(s.cfg.FirstYear) + "-" + strconv.Itoa(s.cfg.LastYear)
	if s.cfg.PowerOf10 {
		out = append(out, model.KindPowerOf10.String()+" "+years)
	}
	if s.cfg.Runbritain {
		out = append(out, model.KindRunbritain.String()+" "+years)
	}
	for _, f := range s.files {
		out = append(out, filepath.Base(f))
	}
	return out
}

// counts lists ingested performances per source kind, site of record first.
func (s *Service) counts() []report.SourceCount {
	var out []report.SourceCount
	for _, k := range []model.Kind{model.KindPowerOf10, model.KindRunbritain, model.KindFile} {
		if n := s.stats.ingested[k]; n > 0 {
			out = append(out, report.SourceCount{Source: k.String(), Count: n})
		}
	}
	return out
}

func (s *Service) ingestedBySource() map[string]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(map[string]int, len(s.stats.ingested))
	for k, n := range s.stats.ingested {
		out[k.String()] = n
	}
	return out
}
