// Package catalog persists discovery and snapshot metadata for trending
// repositories, keyed by canonical repository URL.
package catalog

import (
	"errors"
	"time"
)

// ErrNotFound reports a lookup for a URL with no catalog row.
var ErrNotFound = errors.New("catalog: entry not found")

// Clock supplies timestamps; injected so tests are deterministic.
type Clock interface {
	Now() time.Time
}

// Entry is one durable catalog row.
//
// The enrichment columns (Stars, CreatedAt, TwitterHandle, ScreenshotPath)
// are populated by processes outside the discovery cycle and survive every
// upsert untouched.
type Entry struct {
	URL                     string     `json:"url"`
	Name                    string     `json:"name"`
	DescriptionTrendingPage string     `json:"description_trending_page"`
	LastSeenTrending        time.Time  `json:"last_seen_trending"`
	Stars                   *int64     `json:"stars,omitempty"`
	CreatedAt               *time.Time `json:"created_at,omitempty"`
	TwitterHandle           *string    `json:"twitter_handle,omitempty"`
	ScreenshotPath          *string    `json:"screenshot_path,omitempty"`
}
