package pipeline

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestViper() *viper.Viper {
	v := viper.New()
	v.Set("discovery.trending_url", "https://github.com/trending/python?since=daily")
	v.Set("discovery.keywords", []string{"ai", "llm"})
	v.Set("discovery.timeout", "30s")
	v.Set("bot.user_agent", "thumbnail-bot/1.0")
	v.Set("screenshots.dir", "screenshots")
	v.Set("capture.navigation_timeout", "90s")
	v.Set("capture.locator_timeout", "20s")
	v.Set("capture.settle_delay", "200ms")
	v.Set("capture.padding", 2)
	v.Set("pipeline.candidate_delay", "5s")
	v.Set("pipeline.capture_limit", 3)
	return v
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(newTestViper())
	require.NoError(t, err)

	assert.Equal(t, "https://github.com/trending/python?since=daily", cfg.TrendingURL)
	assert.Equal(t, []string{"ai", "llm"}, cfg.Keywords)
	assert.Equal(t, 90*time.Second, cfg.NavigationTimeout)
	assert.Equal(t, 20*time.Second, cfg.LocatorTimeout)
	assert.Equal(t, 200*time.Millisecond, cfg.SettleDelay)
	assert.Equal(t, 2, cfg.Padding)
	assert.Equal(t, 5*time.Second, cfg.CandidateDelay)
	assert.Equal(t, 3, cfg.CaptureLimit)
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	tests := []struct {
		name  string
		key   string
		value any
	}{
		{"missing trending url", "discovery.trending_url", ""},
		{"zero navigation timeout", "capture.navigation_timeout", "0s"},
		{"zero locator timeout", "capture.locator_timeout", "0s"},
		{"negative padding", "capture.padding", -1},
		{"negative delay", "pipeline.candidate_delay", "-1s"},
		{"negative capture limit", "pipeline.capture_limit", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newTestViper()
			v.Set(tt.key, tt.value)
			_, err := LoadConfig(v)
			assert.Error(t, err)
		})
	}
}
