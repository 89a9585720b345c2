// Package sink defines the blob storage providers that persist finished
// thumbnails. The abstraction keeps the capture engine independent of a
// specific backend (local filesystem, Google Cloud Storage, or nothing at
// all for dry runs).
package sink

import (
	"context"
	"sync"
)

// Provider persists a thumbnail and returns its externally visible path.
type Provider interface {
	Save(ctx context.Context, objectName string, data []byte) (string, error)
}

// NoOpProvider discards thumbnails. Useful for dry runs where pages are
// captured but nothing is kept.
type NoOpProvider struct{}

// Save for NoOpProvider does nothing and reports the object name back as the
// path.
func (NoOpProvider) Save(_ context.Context, objectName string, _ []byte) (string, error) {
	return objectName, nil
}

// MemoryProvider keeps thumbnails in a map. Test helper.
type MemoryProvider struct {
	mu      sync.Mutex
	objects map[string][]byte
}

// NewMemoryProvider creates an empty in-memory provider.
func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{objects: map[string][]byte{}}
}

// Save stores a copy of data under objectName.
func (m *MemoryProvider) Save(_ context.Context, objectName string, data []byte) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectName] = append([]byte(nil), data...)
	return "mem://" + objectName, nil
}

// Get returns the stored bytes for objectName, if any.
func (m *MemoryProvider) Get(objectName string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.objects[objectName]
	return data, ok
}

// Len reports how many objects have been saved.
func (m *MemoryProvider) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.objects)
}
