package capture

import (
	"net/url"
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^\w-]+`)

// Slug derives a deterministic filesystem-safe token from a repository URL:
// the last two path segments joined by an underscore (owner_repo for GitHub
// URLs). URLs with fewer than two path segments fall back to a sanitized
// form of the whole URL.
func Slug(rawURL string) string {
	if u, err := url.Parse(rawURL); err == nil {
		var parts []string
		for _, p := range strings.Split(u.EscapedPath(), "/") {
			if p != "" {
				parts = append(parts, p)
			}
		}
		if len(parts) >= 2 {
			return parts[len(parts)-2] + "_" + parts[len(parts)-1]
		}
	}
	return unsafeFilenameChars.ReplaceAllString(rawURL, "_")
}

// Filename is the screenshot object name for a repository URL.
func Filename(rawURL string) string {
	return Slug(rawURL) + "_readme_4x3.png"
}
