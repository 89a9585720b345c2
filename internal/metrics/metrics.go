// Package metrics exposes Prometheus collectors for the thumbnail pipeline.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CandidatesDiscovered counts repositories that passed the keyword filter.
	CandidatesDiscovered = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thumbnailbot_candidates_discovered_total",
		Help: "The total number of trending repositories that matched the keyword filter.",
	})
	// SnapshotsCaptured counts thumbnails captured, composited, and persisted.
	SnapshotsCaptured = promauto.NewCounter(prometheus.CounterOpts{
		Name: "thumbnailbot_snapshots_captured_total",
		Help: "The total number of README thumbnails successfully persisted.",
	})
	// CaptureFailures counts soft per-candidate failures by kind.
	CaptureFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "thumbnailbot_capture_failures_total",
		Help: "The total number of per-candidate capture failures, labeled by kind.",
	}, []string{"kind"})
)
