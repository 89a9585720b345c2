package sink

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLocalProviderCreatesDirectory(t *testing.T) {
	t.Parallel()

	base := filepath.Join(t.TempDir(), "screenshots")
	_, err := NewLocalProvider(base)
	require.NoError(t, err)

	info, err := os.Stat(base)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewLocalProviderRejectsEmptyAndFiles(t *testing.T) {
	t.Parallel()

	_, err := NewLocalProvider("  ")
	require.Error(t, err)

	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))
	_, err = NewLocalProvider(file)
	require.Error(t, err)
}

func TestLocalSaveWritesAndReturnsPath(t *testing.T) {
	t.Parallel()

	base := t.TempDir()
	p, err := NewLocalProvider(base)
	require.NoError(t, err)

	path, err := p.Save(context.Background(), "o_r_readme_4x3.png", []byte("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(base, "o_r_readme_4x3.png"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)

	// No temp files left behind.
	entries, err := os.ReadDir(base)
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, strings.Contains(e.Name(), ".tmp"), "leftover temp file %s", e.Name())
	}
}

func TestLocalSaveRejectsEscapingNames(t *testing.T) {
	t.Parallel()

	p, err := NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	_, err = p.Save(context.Background(), "../outside.png", []byte("x"))
	require.Error(t, err)

	_, err = p.Save(context.Background(), "", []byte("x"))
	require.Error(t, err)
}

func TestLocalSaveHonorsCanceledContext(t *testing.T) {
	t.Parallel()

	p, err := NewLocalProvider(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Save(ctx, "a.png", []byte("x"))
	require.Error(t, err)
}

func TestMemoryProvider(t *testing.T) {
	t.Parallel()

	m := NewMemoryProvider()
	path, err := m.Save(context.Background(), "a.png", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "mem://a.png", path)

	data, ok := m.Get("a.png")
	require.True(t, ok)
	assert.Equal(t, []byte("x"), data)
	assert.Equal(t, 1, m.Len())
}

func TestNoOpProvider(t *testing.T) {
	t.Parallel()

	path, err := NoOpProvider{}.Save(context.Background(), "a.png", []byte("x"))
	require.NoError(t, err)
	assert.Equal(t, "a.png", path)
}
