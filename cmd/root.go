package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/surim0n/Github-Thumbnail-Bot/internal/app"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/catalog"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/clock/system"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/logging"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/notify"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/sink"
	"github.com/surim0n/Github-Thumbnail-Bot/pkg/config"
)

var cfgFile string

// appKeyType is the key for storing the App in the context.
type appKeyType string

const appKey appKeyType = "app"

// App defines the application interface that commands use. This allows a
// mock app to be injected during tests.
type App interface {
	Close()
	GetLogger() *zap.Logger
	GetCatalog() catalog.Catalog
	GetSink() sink.Provider
	GetNotifier() notify.Provider
	GetClock() *system.Clock
}

// newApp is the application factory. It is a variable so tests can replace
// it with a mock factory.
var newApp func(ctx context.Context) (App, error) = func(ctx context.Context) (App, error) {
	return app.NewApp(ctx)
}

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "thumbnailbot",
		Short: "Captures README thumbnails for trending GitHub repositories.",
		Long: `thumbnailbot discovers trending GitHub repositories that match a set of
keywords, captures a visually normalized 4:3 screenshot of each README, and
records repository metadata in a durable catalog.`,

		// Runs after config is loaded but before the subcommand's RunE, so
		// the application container is available to every subcommand.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			appInstance, err := newApp(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize application services: %w", err)
			}
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)
			cmd.SetContext(ctx)
			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if appInstance, ok := cmd.Context().Value(appKey).(App); ok && appInstance != nil {
				appInstance.Close()
			}
		},
	}

	cobra.OnInitialize(func() {
		if cfgFile != "" {
			viper.SetConfigFile(cfgFile)
		}
		config.InitConfig()
	})

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.thumbnailbot/config.yaml)")

	cmd.AddCommand(newSnapshotCmd())

	return cmd
}

// Execute is the main entry point.
func Execute() {
	logging.InitLogger(viper.GetBool("logging.development"))

	if err := newRootCmd().Execute(); err != nil {
		logging.L.Fatal("Command execution failed", zap.Error(err))
	}
}
