package catalog

import (
	"context"

	"github.com/surim0n/Github-Thumbnail-Bot/internal/discovery"
)

// Catalog is the persistence surface the rest of the application depends on.
// Store implements it against Postgres; NoOpCatalog discards everything.
type Catalog interface {
	EnsureSchema(ctx context.Context) error
	UpsertCandidate(ctx context.Context, cand discovery.Candidate) error
	UpdateScreenshotPath(ctx context.Context, url, path string) error
	Get(ctx context.Context, url string) (Entry, error)
	Close()
}

// NoOpCatalog drops all writes and finds nothing. Useful for dry runs where
// no database is configured.
type NoOpCatalog struct{}

// EnsureSchema does nothing and returns nil.
func (NoOpCatalog) EnsureSchema(_ context.Context) error { return nil }

// UpsertCandidate discards the candidate.
func (NoOpCatalog) UpsertCandidate(_ context.Context, _ discovery.Candidate) error { return nil }

// UpdateScreenshotPath discards the path.
func (NoOpCatalog) UpdateScreenshotPath(_ context.Context, _, _ string) error { return nil }

// Get always reports ErrNotFound.
func (NoOpCatalog) Get(_ context.Context, _ string) (Entry, error) { return Entry{}, ErrNotFound }

// Close does nothing.
func (NoOpCatalog) Close() {}
