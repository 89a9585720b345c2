package app_test

import (
	"context"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/surim0n/Github-Thumbnail-Bot/internal/app"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/catalog"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/logging"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/notify"
	"github.com/surim0n/Github-Thumbnail-Bot/internal/sink"
)

func TestMain(m *testing.M) {
	logging.InitLogger(true)
	m.Run()
}

// setupTest configures Viper with "noop" providers for a clean test environment.
func setupTest() {
	viper.Reset()
	viper.Set("sink.provider", "noop")
	viper.Set("catalog.provider", "noop")
	viper.Set("notify.provider", "noop")
}

func TestNewApp_Success(t *testing.T) {
	setupTest()

	a, err := app.NewApp(context.Background())
	require.NoError(t, err)
	require.NotNil(t, a)
	defer a.Close()

	assert.NotNil(t, a.GetLogger())
	assert.NotNil(t, a.GetClock())
	assert.IsType(t, sink.NoOpProvider{}, a.Sink)
	assert.IsType(t, catalog.NoOpCatalog{}, a.Catalog)
	assert.IsType(t, notify.NoOpProvider{}, a.Notifier)
}

func TestNewApp_LocalSink(t *testing.T) {
	setupTest()
	viper.Set("sink.provider", "local")
	viper.Set("screenshots.dir", t.TempDir())

	a, err := app.NewApp(context.Background())
	require.NoError(t, err)
	defer a.Close()

	assert.IsType(t, &sink.LocalProvider{}, a.Sink)
}

func TestNewApp_ConfigErrors(t *testing.T) {
	testCases := []struct {
		name          string
		configSetup   func()
		expectedError string
	}{
		{
			name: "local sink missing dir",
			configSetup: func() {
				viper.Set("sink.provider", "local")
				viper.Set("screenshots.dir", "")
			},
			expectedError: "sink provider is 'local' but screenshots.dir is not set",
		},
		{
			name: "gcs sink missing bucket",
			configSetup: func() {
				viper.Set("sink.provider", "gcs")
				viper.Set("sink.gcs.bucket_name", "")
			},
			expectedError: "sink provider is 'gcs' but sink.gcs.bucket_name is not set",
		},
		{
			name: "postgres catalog missing DSN",
			configSetup: func() {
				viper.Set("catalog.provider", "postgres")
				viper.Set("db.dsn", "")
			},
			expectedError: "catalog provider is 'postgres' but db.dsn is not set",
		},
		{
			name: "pubsub notifier missing project ID",
			configSetup: func() {
				viper.Set("notify.provider", "pubsub")
				viper.Set("notify.gcp.project_id", "")
				viper.Set("notify.gcp.topic_id", "test-topic")
			},
			expectedError: "notify provider is 'pubsub' but project_id or topic_id is not set",
		},
		{
			name: "unknown sink provider",
			configSetup: func() {
				viper.Set("sink.provider", "unknown")
			},
			expectedError: "unknown sink provider: unknown",
		},
		{
			name: "unknown catalog provider",
			configSetup: func() {
				viper.Set("catalog.provider", "unknown")
			},
			expectedError: "unknown catalog provider: unknown",
		},
		{
			name: "unknown notify provider",
			configSetup: func() {
				viper.Set("notify.provider", "unknown")
			},
			expectedError: "unknown notify provider: unknown",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setupTest()
			tc.configSetup()

			_, err := app.NewApp(context.Background())
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.expectedError)
		})
	}
}

func TestApp_CloseIsSafeWithNoOps(t *testing.T) {
	setupTest()

	a, err := app.NewApp(context.Background())
	require.NoError(t, err)

	// Close twice to make sure teardown is idempotent enough for deferred use.
	a.Close()
	a.Close()
}
