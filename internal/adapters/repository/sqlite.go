package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/goccy/go-json"
	_ "github.com/mattn/go-sqlite3" // sqlite3 driver
	"github.com/okian/clubrecords/internal/domain/model"
)

const schema = `CREATE TABLE IF NOT EXISTS page_cache (
	key        TEXT PRIMARY KEY,
	payload    BLOB NOT NULL,
	fetched_at DATETIME NOT NULL
)`

// SQLiteCache implements Cache on a single SQLite file.
type SQLiteCache struct {
	db     *sql.DB
	maxAge time.Duration
	now    func() time.Time

	mu     sync.RWMutex
	closed bool
}

// OpenSQLite opens (creating if needed) the cache database at path.
func OpenSQLite(path string, opts ...Option) (*SQLiteCache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache: %w", err)
	}
	// Workers write concurrently; one connection serializes them.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize cache: %w", err)
	}

	c := &SQLiteCache{db: db, now: time.Now}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *SQLiteCache) Get(ctx context.Context, key string) ([]model.Fields, bool, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return nil, false, ErrCacheClosed
	}

	var (
		payload   []byte
		fetchedAt time.Time
	)
	err := c.db.QueryRowContext(ctx, `SELECT payload, fetched_at FROM page_cache WHERE key = ?`, key).
		Scan(&payload, &fetchedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get %q: %w", key, err)
	}
	if c.maxAge > 0 && c.now().Sub(fetchedAt) > c.maxAge {
		return nil, false, nil
	}

	fields := []model.Fields{}
	if err := json.Unmarshal(payload, &fields); err != nil {
		return nil, false, fmt.Errorf("%w: %q: %w", ErrCorruptEntry, key, err)
	}
	return fields, true, nil
}

func (c *SQLiteCache) Put(ctx context.Context, key string, fields []model.Fields) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return ErrCacheClosed
	}

	if fields == nil {
		fields = []model.Fields{}
	}
	payload, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("cache encode %q: %w", key, err)
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT INTO page_cache (key, payload, fetched_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET payload = excluded.payload, fetched_at = excluded.fetched_at`,
		key, payload, c.now().UTC())
	if err != nil {
		return fmt.Errorf("cache put %q: %w", key, err)
	}
	return nil
}

func (c *SQLiteCache) Count(ctx context.Context) (int, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return 0, ErrCacheClosed
	}

	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM page_cache`).Scan(&n); err != nil {
		return 0, fmt.Errorf("cache count: %w", err)
	}
	return n, nil
}

// Close releases the database. Later calls return ErrCacheClosed.
func (c *SQLiteCache) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.db.Close()
}
