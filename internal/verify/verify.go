// Package verify reads every leaderboard from a running server and checks
// the ranking invariants: bounded size, sort order, tie ranks and one rank
// per athlete.
package verify

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/okian/clubrecords/internal/adapters/http/api"
	"github.com/okian/clubrecords/internal/domain/model"
	"github.com/okian/clubrecords/internal/domain/score"
	"github.com/okian/clubrecords/pkg/logger"
	"golang.org/x/sync/errgroup"
)

// Config controls a verification pass.
type Config struct {
	BaseURL     string
	Concurrency int
	Timeout     time.Duration
}

// Report summarizes a pass. Violations hold one error per broken board.
type Report struct {
	Boards     int
	Entries    int
	Violations []error
}

// Run fetches the board list, then every board with cfg.Concurrency
// requests in flight, and checks each one.
func Run(ctx context.Context, cfg Config) (Report, error) {
	client := &http.Client{Timeout: cfg.Timeout}
	base := strings.TrimRight(cfg.BaseURL, "/")
	log := logger.Get().Named("verify")

	var keys []api.KeyView
	if err := getJSON(ctx, client, base+"/leaderboards", &keys); err != nil {
		return Report{}, err
	}
	log.Info(ctx, "verifying leaderboards", logger.Int("boards", len(keys)))

	var (
		mu  sync.Mutex
		rep = Report{Boards: len(keys)}
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Concurrency, 1))
	for _, k := range keys {
		g.Go(func() error {
			var b api.BoardView
			if err := getJSON(gctx, client, base+k.Path, &b); err != nil {
				return err
			}
			err := Check(b)
			mu.Lock()
			rep.Entries += len(b.Entries)
			if err != nil {
				rep.Violations = append(rep.Violations, err)
			}
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return rep, err
	}

	if len(rep.Violations) > 0 {
		log.Warn(ctx, "leaderboards violate invariants", logger.Int("violations", len(rep.Violations)))
	} else {
		log.Info(ctx, "leaderboards verified", logger.Int("entries", rep.Entries))
	}
	return rep, nil
}

// Check validates one board.
func Check(b api.BoardView) error {
	fail := func(format string, args ...any) error {
		return fmt.Errorf("%w: %s: %s", ErrViolation, b.Path, fmt.Sprintf(format, args...))
	}

	groups := 0
	seen := map[string]int{}
	var prev, groupValue float64
	for i, e := range b.Entries {
		v, err := value(b, e)
		if err != nil {
			return fail("row %d: %v", i+1, err)
		}

		if e.Rank != 0 {
			groups++
			if e.Rank != groups {
				return fail("row %d has rank %d, want %d", i+1, e.Rank, groups)
			}
			if groups > 1 && !better(prev, v, b.SmallerBetter) {
				return fail("rank %d (%v) is not behind rank %d (%v)", groups, v, groups-1, prev)
			}
			prev, groupValue = v, v
		} else {
			if i == 0 {
				return fail("first row has no rank")
			}
			if v != groupValue {
				return fail("row %d (%v) differs from its tie group (%v)", i+1, v, groupValue)
			}
		}

		id := model.Identity(e.Athlete)
		if g, ok := seen[id]; ok && g != groups {
			return fail("%s ranks in groups %d and %d", e.Athlete, g, groups)
		}
		seen[id] = groups
	}

	if groups > b.Capacity {
		return fail("%d tie groups exceed capacity %d", groups, b.Capacity)
	}
	return nil
}

func better(a, b float64, smallerBetter bool) bool {
	if smallerBetter {
		return a < b
	}
	return a > b
}

func value(b api.BoardView, e api.Entry) (float64, error) {
	if b.Kind != "records" {
		if e.Graded == nil {
			return 0, fmt.Errorf("graded board row without a graded value")
		}
		return *e.Graded, nil
	}
	res, err := score.Normalize(e.Performance)
	if err != nil {
		return 0, err
	}
	return res.Value, nil
}

func getJSON(ctx context.Context, client *http.Client, url string, v any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return fmt.Errorf("%w: %s returned %d", ErrRequest, url, resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("%w: decode %s: %w", ErrRequest, url, err)
	}
	return nil
}
