// Package notify publishes per-candidate snapshot outcome events. The
// abstraction keeps the pipeline independent of a specific broker (GCP
// Pub/Sub in production, memory/noop elsewhere).
package notify

import (
	"context"
	"sync"
	"time"
)

// Snapshot outcome statuses.
const (
	StatusCaptured = "captured"
	StatusFailed   = "failed"
)

// SnapshotEvent describes the terminal state of one candidate.
type SnapshotEvent struct {
	ID             string    `json:"id"`
	RepoURL        string    `json:"repo_url"`
	Status         string    `json:"status"`
	ScreenshotPath string    `json:"screenshot_path,omitempty"`
	FailureKind    string    `json:"failure_kind,omitempty"`
	At             time.Time `json:"at"`
}

// Provider publishes snapshot events.
type Provider interface {
	Publish(ctx context.Context, event SnapshotEvent) error
	Close() error
}

// NoOpProvider drops events. Useful when no broker is configured.
type NoOpProvider struct{}

// Publish for NoOpProvider does nothing and returns nil.
func (NoOpProvider) Publish(_ context.Context, _ SnapshotEvent) error { return nil }

// Close for NoOpProvider does nothing and returns nil.
func (NoOpProvider) Close() error { return nil }

// MemoryProvider collects events in order. Test helper.
type MemoryProvider struct {
	mu     sync.Mutex
	events []SnapshotEvent
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{}
}

// Publish appends the event.
func (m *MemoryProvider) Publish(_ context.Context, event SnapshotEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

// Close does nothing.
func (m *MemoryProvider) Close() error { return nil }

// Events returns a copy of everything published so far.
func (m *MemoryProvider) Events() []SnapshotEvent {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SnapshotEvent(nil), m.events...)
}
