package pipeline

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/surim0n/Github-Thumbnail-Bot/internal/capture"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/discovery"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/metrics"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/notify"
)

// Catalog is the slice of the catalog store the driver needs.
type Catalog interface {
	UpsertCandidate(ctx context.Context, cand discovery.Candidate) error
	UpdateScreenshotPath(ctx context.Context, url, path string) error
}

// Capturer produces a persisted thumbnail path for a repository URL.
type Capturer interface {
	Capture(ctx context.Context, targetURL string) (string, error)
}

// Clock supplies event timestamps.
type Clock interface {
	Now() time.Time
}

// Summary reports the outcome counts of one run.
type Summary struct {
	Discovered int
	Captured   int
	Failed     int
}

// Driver runs the per-candidate pipeline strictly sequentially: one
// candidate is captured, composited, and persisted before the next begins.
type Driver struct {
	catalog  Catalog
	capturer Capturer
	notifier notify.Provider
	clock    Clock
	logger   *zap.Logger

	captureLimit int
	delay        time.Duration
	pause        pauseController
}

// NewDriver wires a pipeline driver.
func NewDriver(
	cfg Config,
	cat Catalog,
	cap Capturer,
	notifier notify.Provider,
	clock Clock,
	logger *zap.Logger,
) (*Driver, error) {
	if cat == nil || cap == nil || clock == nil {
		return nil, fmt.Errorf("catalog, capturer, and clock are required")
	}
	if notifier == nil {
		notifier = notify.NoOpProvider{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Driver{
		catalog:      cat,
		capturer:     cap,
		notifier:     notifier,
		clock:        clock,
		logger:       logger,
		captureLimit: cfg.CaptureLimit,
		delay:        cfg.CandidateDelay,
		pause:        &timerPauseController{},
	}, nil
}

// Run upserts every discovered candidate, then captures thumbnails for the
// configured subset. Capture failures are isolated per candidate; catalog
// failures abort the run, since a catalog that stops accepting writes cannot
// be safely continued past.
func (d *Driver) Run(ctx context.Context, candidates []discovery.Candidate) (Summary, error) {
	summary := Summary{Discovered: len(candidates)}
	metrics.CandidatesDiscovered.Add(float64(len(candidates)))

	for _, cand := range candidates {
		if err := d.catalog.UpsertCandidate(ctx, cand); err != nil {
			return summary, fmt.Errorf("catalog upsert for %s: %w", cand.URL, err)
		}
	}

	limit := len(candidates)
	if d.captureLimit > 0 && d.captureLimit < limit {
		limit = d.captureLimit
	}

	for i, cand := range candidates[:limit] {
		if err := ctx.Err(); err != nil {
			return summary, fmt.Errorf("run canceled: %w", err)
		}

		if err := d.processCandidate(ctx, cand, &summary); err != nil {
			return summary, err
		}

		if i < limit-1 {
			d.pause.Pause(ctx, d.delay)
		}
	}

	d.logger.Info("snapshot run finished",
		zap.Int("discovered", summary.Discovered),
		zap.Int("captured", summary.Captured),
		zap.Int("failed", summary.Failed),
	)
	return summary, nil
}

// processCandidate captures one candidate. The returned error is non-nil
// only for catalog failures; capture failures are recorded and swallowed.
func (d *Driver) processCandidate(ctx context.Context, cand discovery.Candidate, summary *Summary) error {
	path, err := d.capturer.Capture(ctx, cand.URL)
	if err != nil {
		kind := capture.FailureCapture
		var cerr *capture.Error
		if errors.As(err, &cerr) {
			kind = cerr.Kind
		}
		summary.Failed++
		metrics.CaptureFailures.WithLabelValues(string(kind)).Inc()
		d.logger.Warn("candidate capture failed",
			zap.String("url", cand.URL),
			zap.String("kind", string(kind)),
			zap.Error(err),
		)
		d.publish(ctx, notify.SnapshotEvent{
			ID:          uuid.NewString(),
			RepoURL:     cand.URL,
			Status:      notify.StatusFailed,
			FailureKind: string(kind),
			At:          d.clock.Now(),
		})
		return nil
	}

	if err := d.catalog.UpdateScreenshotPath(ctx, cand.URL, path); err != nil {
		return fmt.Errorf("record screenshot path for %s: %w", cand.URL, err)
	}

	summary.Captured++
	metrics.SnapshotsCaptured.Inc()
	d.logger.Info("candidate captured",
		zap.String("url", cand.URL),
		zap.String("path", path),
	)
	d.publish(ctx, notify.SnapshotEvent{
		ID:             uuid.NewString(),
		RepoURL:        cand.URL,
		Status:         notify.StatusCaptured,
		ScreenshotPath: path,
		At:             d.clock.Now(),
	})
	return nil
}

func (d *Driver) publish(ctx context.Context, event notify.SnapshotEvent) {
	if err := d.notifier.Publish(ctx, event); err != nil {
		d.logger.Warn("failed to publish snapshot event",
			zap.String("url", event.RepoURL),
			zap.Error(err),
		)
	}
}
