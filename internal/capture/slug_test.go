package capture

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSlug(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		url  string
		want string
	}{
		{"github repo", "https://github.com/torvalds/linux", "torvalds_linux"},
		{"trailing slash", "https://github.com/torvalds/linux/", "torvalds_linux"},
		{"deep path keeps last two", "https://example.com/a/b/c", "b_c"},
		{"single segment falls back to sanitized url", "https://localhost", "https_localhost"},
		{"bare host", "localhost", "localhost"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, Slug(tc.url))
		})
	}
}

func TestFilename(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "torvalds_linux_readme_4x3.png", Filename("https://github.com/torvalds/linux"))
}
