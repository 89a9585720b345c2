package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/surim0n/Github-Thumbnail-Bot/internal/discovery"
)

// PoolIface is the slice of pgxpool.Pool the store needs. pgxmock satisfies
// it in tests.
type PoolIface interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// Config controls the Postgres connection pool behind the catalog.
type Config struct {
	DSN             string
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
}

// Store is the Postgres-backed repository catalog.
type Store struct {
	pool  PoolIface
	clock Clock
}

// New connects a catalog store using the provided config.
func New(ctx context.Context, cfg Config, clock Clock) (*Store, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("db.dsn is required")
	}
	if clock == nil {
		return nil, fmt.Errorf("clock is required")
	}
	poolCfg, err := pgxpool.ParseConfig(cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("parse postgres dsn: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolCfg.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolCfg.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	}
	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return &Store{pool: pool, clock: clock}, nil
}

// NewWithPool constructs a store from an existing pool (primarily for
// testing).
func NewWithPool(pool PoolIface, clock Clock) (*Store, error) {
	if pool == nil {
		return nil, fmt.Errorf("pool is required")
	}
	if clock == nil {
		return nil, fmt.Errorf("clock is required")
	}
	return &Store{pool: pool, clock: clock}, nil
}

// Close releases the underlying pool resources.
func (s *Store) Close() {
	if s == nil || s.pool == nil {
		return
	}
	s.pool.Close()
}

const schemaSQL = `
CREATE TABLE IF NOT EXISTS repositories (
	url TEXT PRIMARY KEY,
	name TEXT NOT NULL,
	description_trending_page TEXT NOT NULL DEFAULT '',
	last_seen_trending TIMESTAMPTZ NOT NULL,
	stars BIGINT,
	created_at TIMESTAMPTZ,
	twitter_handle TEXT,
	screenshot_path TEXT
)`

// EnsureSchema creates the repositories table if it is absent. Idempotent;
// safe to call on every process start.
func (s *Store) EnsureSchema(ctx context.Context) error {
	if _, err := s.pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("ensure catalog schema: %w", err)
	}
	return nil
}

const upsertSQL = `
INSERT INTO repositories (url, name, description_trending_page, last_seen_trending)
VALUES ($1, $2, $3, $4)
ON CONFLICT (url) DO UPDATE SET
	name = EXCLUDED.name,
	description_trending_page = EXCLUDED.description_trending_page,
	last_seen_trending = EXCLUDED.last_seen_trending`

// UpsertCandidate inserts or refreshes the discovery-owned columns for a
// candidate. The conflict clause deliberately omits the enrichment columns
// (stars, created_at, twitter_handle, screenshot_path), so an existing row
// keeps those values verbatim: this is a merge, not a blind overwrite.
func (s *Store) UpsertCandidate(ctx context.Context, cand discovery.Candidate) error {
	if cand.URL == "" {
		return fmt.Errorf("candidate url is required")
	}
	_, err := s.pool.Exec(ctx, upsertSQL,
		cand.URL,
		cand.Name,
		cand.Description,
		s.clock.Now(),
	)
	if err != nil {
		return fmt.Errorf("upsert candidate %s: %w", cand.URL, err)
	}
	return nil
}

const updateScreenshotSQL = `UPDATE repositories SET screenshot_path = $2 WHERE url = $1`

// UpdateScreenshotPath records the thumbnail location for a row. It only
// touches screenshot_path; an empty path or a missing row is a no-op.
func (s *Store) UpdateScreenshotPath(ctx context.Context, url, path string) error {
	if path == "" {
		return nil
	}
	if _, err := s.pool.Exec(ctx, updateScreenshotSQL, url, path); err != nil {
		return fmt.Errorf("update screenshot path for %s: %w", url, err)
	}
	return nil
}

const getSQL = `
SELECT url, name, description_trending_page, last_seen_trending,
	stars, created_at, twitter_handle, screenshot_path
FROM repositories WHERE url = $1`

// Get fetches one catalog row, or ErrNotFound.
func (s *Store) Get(ctx context.Context, url string) (Entry, error) {
	var e Entry
	err := s.pool.QueryRow(ctx, getSQL, url).Scan(
		&e.URL,
		&e.Name,
		&e.DescriptionTrendingPage,
		&e.LastSeenTrending,
		&e.Stars,
		&e.CreatedAt,
		&e.TwitterHandle,
		&e.ScreenshotPath,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Entry{}, ErrNotFound
	}
	if err != nil {
		return Entry{}, fmt.Errorf("get catalog entry %s: %w", url, err)
	}
	return e, nil
}
