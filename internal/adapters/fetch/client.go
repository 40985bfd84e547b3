// Package fetch retrieves ranking pages and turns them into performance
// fields. It plans the requests for a run, issues them politely and parses
// the two page formats.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/okian/clubrecords/pkg/logger"
	"github.com/okian/clubrecords/pkg/metrics"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "clubrecords/1.0"
	maxPageBytes     = 32 << 20
)

// Client issues GET requests against the ranking sites. The delay spaces
// requests across every goroutine sharing the client.
type Client struct {
	http      *http.Client
	timeout   time.Duration
	delay     time.Duration
	userAgent string
	logger    logger.Logger

	mu   sync.Mutex
	next time.Time
}

// NewClient creates a client with configuration options.
func NewClient(opts ...Option) *Client {
	c := &Client{
		http:      &http.Client{},
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
		logger:    logger.Get().Named("fetch"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Get fetches base with q and returns the body. site labels metrics.
// A non-200 response returns an error wrapping ErrHTTPStatus.
func (c *Client) Get(ctx context.Context, site Site, base string, q Query) (string, error) {
	if err := c.throttle(ctx); err != nil {
		return "", err
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	target := base
	if len(q) > 0 {
		target += "?" + q.Encode()
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	latency := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordFetch(site.String(), 0, latency)
		return "", fmt.Errorf("get %s: %w", target, err)
	}
	defer resp.Body.Close()

	metrics.RecordFetch(site.String(), resp.StatusCode, latency)
	c.logger.Debug(ctx, "page fetched",
		logger.String("url", target),
		logger.Int("status", resp.StatusCode),
		logger.Float64("latency_ms", latency),
	)

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return "", fmt.Errorf("%w: %d from %s", ErrHTTPStatus, resp.StatusCode, target)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxPageBytes))
	if err != nil {
		return "", fmt.Errorf("read %s: %w", target, err)
	}
	return string(body), nil
}

// throttle reserves the next request slot and waits for it.
func (c *Client) throttle(ctx context.Context) error {
	if c.delay <= 0 {
		return ctx.Err()
	}
	c.mu.Lock()
	now := time.Now()
	slot := c.next
	if slot.Before(now) {
		slot = now
	}
	slot = slot.Add(c.delay)
	c.next = slot
	c.mu.Unlock()

	t := time.NewTimer(time.Until(slot))
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
