// Package app initializes and holds long-lived application services, acting
// as a dependency injection container.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/surim0n/Github-Thumbnail-Bot/internal/api"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/catalog"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/clock/system"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/logging"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/notify"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/sink"
)

// App holds the shared, long-lived services for the application: the logger,
// the repository catalog, the screenshot sink, and the event notifier. It is
// initialized once at startup and handed to the commands that need it.
type App struct {
	Logger   *zap.Logger
	Catalog  catalog.Catalog
	Sink     sink.Provider
	Notifier notify.Provider
	Clock    *system.Clock

	statusServer *http.Server
}

// GetLogger returns the shared zap logger instance.
func (a *App) GetLogger() *zap.Logger { return a.Logger }

// GetCatalog exposes the repository catalog.
func (a *App) GetCatalog() catalog.Catalog { return a.Catalog }

// GetSink exposes the configured screenshot sink.
func (a *App) GetSink() sink.Provider { return a.Sink }

// GetNotifier returns the snapshot event publisher.
func (a *App) GetNotifier() notify.Provider { return a.Notifier }

// GetClock returns the wall clock services should read time from.
func (a *App) GetClock() *system.Clock { return a.Clock }

// NewApp creates and initializes a new App based on the application's
// configuration. It reads provider choices from Viper and fails fast if any
// critical service cannot be initialized.
func NewApp(ctx context.Context) (*App, error) {
	l := logging.L
	l.Info("Initializing application services...")

	snk, err := buildSink(ctx, l)
	if err != nil {
		return nil, err
	}

	cat, err := buildCatalog(ctx, l)
	if err != nil {
		return nil, err
	}

	notifier, err := buildNotifier(ctx, l)
	if err != nil {
		return nil, err
	}

	a := &App{
		Logger:   l,
		Catalog:  cat,
		Sink:     snk,
		Notifier: notifier,
		Clock:    system.New(),
	}

	if viper.GetBool("server.enabled") {
		a.startStatusServer(viper.GetString("server.addr"))
	}

	l.Info("Application services initialized successfully.")
	return a, nil
}

func buildSink(ctx context.Context, l *zap.Logger) (sink.Provider, error) {
	switch provider := viper.GetString("sink.provider"); provider {
	case "local":
		dir := viper.GetString("screenshots.dir")
		if dir == "" {
			return nil, fmt.Errorf("sink provider is 'local' but screenshots.dir is not set")
		}
		l.Info("Using local screenshot sink", zap.String("dir", dir))
		snk, err := sink.NewLocalProvider(dir)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sink: %w", err)
		}
		return snk, nil
	case "gcs":
		bucket := viper.GetString("sink.gcs.bucket_name")
		if bucket == "" {
			return nil, fmt.Errorf("sink provider is 'gcs' but sink.gcs.bucket_name is not set")
		}
		l.Info("Using GCS screenshot sink", zap.String("bucket", bucket))
		snk, err := sink.NewGCSProvider(ctx, bucket, viper.GetString("sink.gcs.prefix"))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize sink: %w", err)
		}
		return snk, nil
	case "noop":
		l.Info("Using No-Op screenshot sink. Thumbnails will be discarded.")
		return sink.NoOpProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown sink provider: %s", provider)
	}
}

func buildCatalog(ctx context.Context, l *zap.Logger) (catalog.Catalog, error) {
	switch provider := viper.GetString("catalog.provider"); provider {
	case "postgres":
		dsn := viper.GetString("db.dsn")
		if dsn == "" {
			return nil, fmt.Errorf("catalog provider is 'postgres' but db.dsn is not set")
		}
		l.Info("Connecting to PostgreSQL...")
		store, err := catalog.New(ctx, catalog.Config{
			DSN:             dsn,
			MaxConns:        viper.GetInt32("db.max_conns"),
			MinConns:        viper.GetInt32("db.min_conns"),
			MaxConnLifetime: viper.GetDuration("db.max_conn_lifetime"),
		}, system.New())
		if err != nil {
			return nil, fmt.Errorf("failed to initialize catalog: %w", err)
		}
		if err := store.EnsureSchema(ctx); err != nil {
			store.Close()
			return nil, fmt.Errorf("failed to initialize catalog: %w", err)
		}
		return store, nil
	case "noop":
		l.Info("Using No-Op catalog. Metadata will be discarded.")
		return catalog.NoOpCatalog{}, nil
	default:
		return nil, fmt.Errorf("unknown catalog provider: %s", provider)
	}
}

func buildNotifier(ctx context.Context, l *zap.Logger) (notify.Provider, error) {
	switch provider := viper.GetString("notify.provider"); provider {
	case "pubsub":
		projectID := viper.GetString("notify.gcp.project_id")
		topicID := viper.GetString("notify.gcp.topic_id")
		if projectID == "" || topicID == "" {
			return nil, fmt.Errorf("notify provider is 'pubsub' but project_id or topic_id is not set")
		}
		l.Info("Connecting to GCP Pub/Sub", zap.String("topic", topicID))
		notifier, err := notify.NewPubSubProvider(ctx, projectID, topicID)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize notifier: %w", err)
		}
		return notifier, nil
	case "noop":
		l.Info("Using No-Op notifier. No events will be sent.")
		return notify.NoOpProvider{}, nil
	default:
		return nil, fmt.Errorf("unknown notify provider: %s", provider)
	}
}

// startStatusServer serves health, metrics, and catalog lookups in the
// background for the lifetime of the process.
func (a *App) startStatusServer(addr string) {
	srv := &http.Server{
		Addr:              addr,
		Handler:           api.NewServer(a.Catalog, a.Logger).Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.statusServer = srv
	go func() {
		a.Logger.Info("Starting status server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Logger.Error("Status server failed", zap.Error(err))
		}
	}()
}

// Close gracefully shuts down all services in the App container. It is
// called by a Cobra hook after the command finishes execution.
func (a *App) Close() {
	a.Logger.Info("Shutting down application services...")

	if a.statusServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.statusServer.Shutdown(ctx); err != nil {
			a.Logger.Warn("Error shutting down status server", zap.Error(err))
		}
	}
	if a.Catalog != nil {
		a.Catalog.Close()
	}
	if a.Notifier != nil {
		if err := a.Notifier.Close(); err != nil {
			a.Logger.Warn("Error closing notifier", zap.Error(err))
		}
	}
	if closer, ok := a.Sink.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			a.Logger.Warn("Error closing sink", zap.Error(err))
		}
	}

	// Flush buffered log entries before the process exits. Best effort.
	if err := a.Logger.Sync(); err != nil {
		a.Logger.Warn("Error syncing logger on shutdown", zap.Error(err))
	}
}
