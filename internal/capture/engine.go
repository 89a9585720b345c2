// Package capture drives headless Chrome to screenshot the README region of
// a repository page and persists the composited thumbnail.
package capture

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/cdproto/network"
	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/surim0n/Github-Thumbnail-Bot/internal/imaging"
)

// Sink persists a finished thumbnail and returns the externally visible path.
type Sink interface {
	Save(ctx context.Context, objectName string, data []byte) (string, error)
}

// Config controls a capture engine.
type Config struct {
	UserAgent         string
	NavigationTimeout time.Duration
	LocatorTimeout    time.Duration
	SettleDelay       time.Duration
	Padding           int
	Strategies        []Strategy
}

// Engine captures README thumbnails. One browser tab is scoped to each
// Capture call; the shared exec allocator only holds the Chrome process
// configuration.
type Engine struct {
	cfg         Config
	sink        Sink
	logger      *zap.Logger
	allocator   context.Context
	allocCancel context.CancelFunc

	// waitVisible is swapped out in tests to exercise the fallback order
	// without a browser.
	waitVisible func(ctx context.Context, selector string) error
}

// New creates a capture engine backed by chromedp.
func New(cfg Config, snk Sink, logger *zap.Logger) (*Engine, error) {
	if snk == nil {
		return nil, fmt.Errorf("sink is required")
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.NavigationTimeout <= 0 {
		cfg.NavigationTimeout = 90 * time.Second
	}
	if cfg.LocatorTimeout <= 0 {
		cfg.LocatorTimeout = 20 * time.Second
	}
	if len(cfg.Strategies) == 0 {
		cfg.Strategies = DefaultStrategies()
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", "new"),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("hide-scrollbars", true),
	)
	allocCtx, allocCancel := chromedp.NewExecAllocator(context.Background(), opts...)

	e := &Engine{
		cfg:         cfg,
		sink:        snk,
		logger:      logger,
		allocator:   allocCtx,
		allocCancel: allocCancel,
	}
	e.waitVisible = func(ctx context.Context, selector string) error {
		return chromedp.Run(ctx, chromedp.WaitVisible(selector, chromedp.ByQuery))
	}
	return e, nil
}

// Close cancels the allocator context, tearing down any remaining browser
// processes.
func (e *Engine) Close() {
	e.allocCancel()
}

// Capture navigates to targetURL, resolves the README region through the
// ordered locator fallback, screenshots it, composites the raster, and saves
// the result. All failures come back as *Error values; none of them should
// stop a batch.
func (e *Engine) Capture(ctx context.Context, targetURL string) (string, error) {
	objectName := Filename(targetURL)

	tabCtx, cancelTab := chromedp.NewContext(e.allocator)
	defer cancelTab()

	stopForward := forwardCancel(ctx, cancelTab)
	defer stopForward()

	if err := e.navigate(tabCtx, targetURL); err != nil {
		return "", err
	}

	strategy, ok := e.resolveRegion(tabCtx, targetURL)
	if !ok {
		return "", &Error{Kind: FailureRegionNotFound, URL: targetURL}
	}

	shot, err := e.screenshot(tabCtx, strategy)
	if err != nil {
		return "", &Error{Kind: FailureCapture, URL: targetURL, Err: err}
	}

	img, err := imaging.Compose(shot, e.cfg.Padding)
	if err != nil {
		kind := FailureComposition
		if errors.Is(err, imaging.ErrInvalidImage) {
			kind = FailureInvalidImage
		}
		return "", &Error{Kind: kind, URL: targetURL, Err: err}
	}

	data, err := imaging.EncodePNG(img)
	if err != nil {
		return "", &Error{Kind: FailureComposition, URL: targetURL, Err: err}
	}

	path, err := e.sink.Save(ctx, objectName, data)
	if err != nil {
		return "", &Error{Kind: FailureCapture, URL: targetURL, Err: fmt.Errorf("save thumbnail: %w", err)}
	}

	e.logger.Info("thumbnail captured",
		zap.String("url", targetURL),
		zap.String("strategy", strategy.Name),
		zap.String("path", path),
	)
	return path, nil
}

func (e *Engine) navigate(tabCtx context.Context, targetURL string) error {
	navCtx, cancel := context.WithTimeout(tabCtx, e.cfg.NavigationTimeout)
	defer cancel()

	actions := []chromedp.Action{
		chromedp.ActionFunc(func(ctx context.Context) error {
			if err := network.Enable().Do(ctx); err != nil {
				return fmt.Errorf("enable network domain: %w", err)
			}
			if e.cfg.UserAgent != "" {
				if err := emulation.SetUserAgentOverride(e.cfg.UserAgent).Do(ctx); err != nil {
					return fmt.Errorf("set user-agent: %w", err)
				}
			}
			return nil
		}),
		chromedp.Navigate(targetURL),
		chromedp.WaitReady("body", chromedp.ByQuery),
	}
	if err := chromedp.Run(navCtx, actions...); err != nil {
		kind := FailureCapture
		if errors.Is(err, context.DeadlineExceeded) {
			kind = FailureNavigationTimeout
		}
		return &Error{Kind: kind, URL: targetURL, Err: err}
	}
	return nil
}

func (e *Engine) screenshot(tabCtx context.Context, strategy Strategy) ([]byte, error) {
	// Bound the settle + screenshot with the locator timeout so a wedged tab
	// cannot stall the batch.
	shotCtx, cancel := context.WithTimeout(tabCtx, e.cfg.LocatorTimeout)
	defer cancel()

	var shot []byte
	tasks := chromedp.Tasks{
		chromedp.Sleep(e.settle()),
		chromedp.Screenshot(strategy.Selector, &shot, chromedp.NodeVisible, chromedp.ByQuery),
	}
	if err := chromedp.Run(shotCtx, tasks); err != nil {
		return nil, fmt.Errorf("element screenshot: %w", err)
	}
	return shot, nil
}

// forwardCancel propagates caller cancellation into the tab context.
func forwardCancel(parent context.Context, cancel context.CancelFunc) func() {
	if parent == nil {
		return func() {}
	}
	done := make(chan struct{})
	go func() {
		select {
		case <-parent.Done():
			cancel()
		case <-done:
		}
	}()
	return func() { close(done) }
}
