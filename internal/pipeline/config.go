// Package pipeline sequences discovery, capture, and catalog persistence for
// one batch run.
package pipeline

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config captures every knob that influences a snapshot run. All values
// originate from Viper so the pipeline can be configured via files, env
// vars, or CLI flags.
type Config struct {
	TrendingURL       string
	Keywords          []string
	DiscoveryTimeout  time.Duration
	UserAgent         string
	ScreenshotDir     string
	NavigationTimeout time.Duration
	LocatorTimeout    time.Duration
	SettleDelay       time.Duration
	Padding           int
	CandidateDelay    time.Duration
	CaptureLimit      int
}

// LoadConfig constructs a Config by reading from Viper.
func LoadConfig(v *viper.Viper) (Config, error) {
	cfg := Config{
		TrendingURL:       v.GetString("discovery.trending_url"),
		Keywords:          v.GetStringSlice("discovery.keywords"),
		DiscoveryTimeout:  v.GetDuration("discovery.timeout"),
		UserAgent:         v.GetString("bot.user_agent"),
		ScreenshotDir:     v.GetString("screenshots.dir"),
		NavigationTimeout: v.GetDuration("capture.navigation_timeout"),
		LocatorTimeout:    v.GetDuration("capture.locator_timeout"),
		SettleDelay:       v.GetDuration("capture.settle_delay"),
		Padding:           v.GetInt("capture.padding"),
		CandidateDelay:    v.GetDuration("pipeline.candidate_delay"),
		CaptureLimit:      v.GetInt("pipeline.capture_limit"),
	}
	return cfg, cfg.Validate()
}

// Validate checks for obviously bad configuration combinations.
func (c Config) Validate() error {
	if c.TrendingURL == "" {
		return fmt.Errorf("discovery.trending_url must be set")
	}
	if c.NavigationTimeout <= 0 {
		return fmt.Errorf("capture.navigation_timeout must be > 0")
	}
	if c.LocatorTimeout <= 0 {
		return fmt.Errorf("capture.locator_timeout must be > 0")
	}
	if c.Padding < 0 {
		return fmt.Errorf("capture.padding must be >= 0")
	}
	if c.CandidateDelay < 0 {
		return fmt.Errorf("pipeline.candidate_delay must be >= 0")
	}
	if c.CaptureLimit < 0 {
		return fmt.Errorf("pipeline.capture_limit must be >= 0")
	}
	return nil
}
