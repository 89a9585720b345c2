// Package config is responsible for initializing the application's
// configuration. It uses the Viper library to read settings from a config
// file and environment variables, providing a unified configuration system.
package config

import (
	"strings"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/surim0n/Github-Thumbnail-Bot/internal/logging"
)

// InitConfig initializes the application's configuration using Viper. It sets
// up default values, defines configuration search paths, and enables reading
// from environment variables. Called once at application startup.
func InitConfig() {
	viper.SetConfigName("config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/thumbnailbot/")
	viper.AddConfigPath("$HOME/.thumbnailbot")

	// --- Set Defaults ---
	viper.SetDefault("bot.user_agent", "GithubThumbnailBot/1.0 (+https://github.com/surim0n/Github-Thumbnail-Bot)")

	viper.SetDefault("discovery.trending_url", "https://github.com/trending/python?since=daily&spoken_language_code=en")
	viper.SetDefault("discovery.keywords", []string{
		"ai",
		"llm",
		"artificial intelligence",
		"machine learning",
		"deep learning",
		"neural network",
	})
	viper.SetDefault("discovery.timeout", "30s")

	viper.SetDefault("capture.navigation_timeout", "90s")
	viper.SetDefault("capture.locator_timeout", "20s")
	viper.SetDefault("capture.settle_delay", "200ms")
	viper.SetDefault("capture.padding", 2)

	viper.SetDefault("pipeline.candidate_delay", "5s")
	viper.SetDefault("pipeline.capture_limit", 3)

	viper.SetDefault("screenshots.dir", "screenshots")
	viper.SetDefault("sink.provider", "local")
	viper.SetDefault("sink.gcs.bucket_name", "")
	viper.SetDefault("sink.gcs.prefix", "thumbnails")

	viper.SetDefault("catalog.provider", "postgres")
	viper.SetDefault("db.dsn", "")
	viper.SetDefault("db.max_conns", 4)
	viper.SetDefault("db.min_conns", 0)
	viper.SetDefault("db.max_conn_lifetime", "30m")

	viper.SetDefault("notify.provider", "noop")
	viper.SetDefault("notify.gcp.project_id", "")
	viper.SetDefault("notify.gcp.topic_id", "")

	viper.SetDefault("server.enabled", false)
	viper.SetDefault("server.addr", ":8080")

	viper.SetDefault("logging.development", false)

	// --- Environment Variables ---
	viper.SetEnvPrefix("THUMBNAILBOT") // e.g., THUMBNAILBOT_DB_DSN=...
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// --- Read Config File ---
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			logging.L.Warn("Config file not found; using defaults and environment variables.")
		} else {
			logging.L.Error("Error reading config file", zap.Error(err))
		}
	} else {
		logging.L.Info("Using config file", zap.String("path", viper.ConfigFileUsed()))
	}
}
