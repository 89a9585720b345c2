package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surim0n/Github-Thumbnail-Bot/internal/catalog"
)

type stubCatalog struct {
	entries map[string]catalog.Entry
	err     error
}

func (s *stubCatalog) Get(_ context.Context, url string) (catalog.Entry, error) {
	if s.err != nil {
		return catalog.Entry{}, s.err
	}
	entry, ok := s.entries[url]
	if !ok {
		return catalog.Entry{}, catalog.ErrNotFound
	}
	return entry, nil
}

func newTestServer(cat EntryGetter) *httptest.Server {
	return httptest.NewServer(NewServer(cat, nil).Handler())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(&stubCatalog{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, resp.Header.Get("X-Request-ID"))

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "ok", body["status"])
}

func TestMetricsEndpoint(t *testing.T) {
	srv := newTestServer(&stubCatalog{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetEntry(t *testing.T) {
	seen := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	path := "screenshots/acme_widgets_readme_4x3.png"
	cat := &stubCatalog{entries: map[string]catalog.Entry{
		"https://github.com/acme/widgets": {
			URL:                     "https://github.com/acme/widgets",
			Name:                    "acme/widgets",
			DescriptionTrendingPage: "a widget llm",
			LastSeenTrending:        seen,
			ScreenshotPath:          &path,
		},
	}}
	srv := newTestServer(cat)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/entries?url=https://github.com/acme/widgets")
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var entry catalog.Entry
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&entry))
	assert.Equal(t, "acme/widgets", entry.Name)
	require.NotNil(t, entry.ScreenshotPath)
	assert.Equal(t, path, *entry.ScreenshotPath)
}

func TestGetEntryNotFound(t *testing.T) {
	srv := newTestServer(&stubCatalog{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/entries?url=https://github.com/acme/missing")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestGetEntryRequiresURL(t *testing.T) {
	srv := newTestServer(&stubCatalog{})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/entries")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestGetEntryStoreError(t *testing.T) {
	srv := newTestServer(&stubCatalog{err: errors.New("connection reset")})
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/v1/entries?url=https://github.com/acme/widgets")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
