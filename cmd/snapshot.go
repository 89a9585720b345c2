// Package cmd defines and implements the CLI commands for the thumbnailbot
// executable.
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/surim0n/Github-Thumbnail-Bot/internal/capture"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/discovery"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/pipeline"
)

// newSnapshotCmd creates and configures the 'snapshot' subcommand. It runs
// one full pass: discover trending repositories, capture README thumbnails,
// and record everything in the catalog.
func newSnapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Runs one discovery and capture pass",
		Long: `Fetches the configured GitHub trending page, filters repositories by
keyword, captures a normalized 4:3 README thumbnail for each selected
candidate, and upserts repository metadata into the catalog.`,

		RunE: runSnapshotCommand,
	}
	return cmd
}

func runSnapshotCommand(cmd *cobra.Command, _ []string) error {
	appInstance, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	logger := appInstance.GetLogger()

	cfg, err := pipeline.LoadConfig(viper.GetViper())
	if err != nil {
		return fmt.Errorf("load pipeline config: %w", err)
	}

	scraper, err := discovery.NewScraper(discovery.Config{
		TrendingURL: cfg.TrendingURL,
		Keywords:    cfg.Keywords,
		UserAgent:   cfg.UserAgent,
		Timeout:     cfg.DiscoveryTimeout,
	}, logger)
	if err != nil {
		return fmt.Errorf("init scraper: %w", err)
	}

	engine, err := capture.New(capture.Config{
		UserAgent:         cfg.UserAgent,
		NavigationTimeout: cfg.NavigationTimeout,
		LocatorTimeout:    cfg.LocatorTimeout,
		SettleDelay:       cfg.SettleDelay,
		Padding:           cfg.Padding,
	}, appInstance.GetSink(), logger)
	if err != nil {
		return fmt.Errorf("init capture engine: %w", err)
	}
	defer engine.Close()

	driver, err := pipeline.NewDriver(
		cfg,
		appInstance.GetCatalog(),
		engine,
		appInstance.GetNotifier(),
		appInstance.GetClock(),
		logger,
	)
	if err != nil {
		return fmt.Errorf("init pipeline: %w", err)
	}

	candidates, err := scraper.Discover(cmd.Context())
	if err != nil {
		return fmt.Errorf("discover trending repositories: %w", err)
	}

	summary, err := driver.Run(cmd.Context(), candidates)
	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("run snapshot pipeline: %w", err)
	}

	logger.Info("Snapshot command finished.",
		zap.Int("discovered", summary.Discovered),
		zap.Int("captured", summary.Captured),
		zap.Int("failed", summary.Failed),
	)
	return nil
}

func resolveApp(ctx context.Context) (App, error) {
	appInstance, ok := ctx.Value(appKey).(App)
	if !ok || appInstance == nil {
		return nil, errors.New("application services not initialized")
	}
	return appInstance, nil
}
