package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattkeefer/sports-odds-backend/internal/sources"
)

// writeTempConfig writes content to a temporary YAML file and returns its path
func writeTempConfig(t *testing.T, content string) string {
	tmpFile, err := os.CreateTemp(t.TempDir(), "config-*.yaml")
	require.NoError(t, err)

	_, err = tmpFile.WriteString(content)
	require.NoError(t, err)
	require.NoError(t, tmpFile.Close())

	return tmpFile.Name()
}

// TestLoadConfig_Defaults tests loading configuration with default values
func TestLoadConfig_Defaults(t *testing.T) {
	config, err := LoadConfig("")

	require.NoError(t, err)
	require.NotNil(t, config)

	// Verify server defaults
	assert.Equal(t, 8080, config.Server.Port)
	assert.Equal(t, 30*time.Second, config.Server.ReadTimeout)
	assert.Equal(t, 30*time.Second, config.Server.WriteTimeout)
	assert.Equal(t, 30*time.Second, config.Server.RequestTimeout)

	// Verify provider defaults
	assert.Equal(t, "https://api.sportsgameodds.com/v2", config.Provider.BaseURL)
	assert.Equal(t, "", config.Provider.APIKey)
	assert.Equal(t, 10*time.Second, config.Provider.Timeout)
	assert.Equal(t, 3, config.Provider.MaxRetries)
	assert.Equal(t, time.Second, config.Provider.RetryDelay)
	assert.Equal(t, "NBA", config.Provider.DefaultLeague)
	assert.Equal(t, 50, config.Provider.DefaultLimit)

	// Verify source registry defaults
	assert.Equal(t, DefaultSources, config.Sources)

	// Verify evaluation defaults
	assert.Equal(t, -400, config.Evaluation.MinPrice)
	assert.Equal(t, 300, config.Evaluation.MaxPrice)
	assert.Equal(t, 0.0, config.Evaluation.MinEV)
	assert.Equal(t, 1000.0, config.Evaluation.Bankroll)
	assert.Equal(t, 0.25, config.Evaluation.KellyFraction)
	assert.False(t, config.Evaluation.IncludeEqualPrice)

	// Verify Redis defaults
	assert.True(t, config.Redis.Enabled)
	assert.Equal(t, "localhost:6379", config.Redis.Addr)
	assert.Equal(t, 0, config.Redis.DB)
	assert.Equal(t, time.Minute, config.Redis.TTL)
	assert.Equal(t, "snapshots", config.Redis.Prefix)

	// Verify Kafka defaults
	assert.False(t, config.Kafka.Enabled)
	assert.Equal(t, []string{"localhost:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "positive_ev_opportunities", config.Kafka.Topic)

	// Verify CORS defaults
	assert.Equal(t, []string{"http://localhost:3000"}, config.CORS.AllowedOrigins)
	assert.True(t, config.CORS.AllowCredentials)

	// Verify logging defaults
	assert.Equal(t, "info", config.Logging.Level)
	assert.Equal(t, "json", config.Logging.Format)
}

// TestLoadConfig_WithFile tests loading configuration from file
func TestLoadConfig_WithFile(t *testing.T) {
	path := writeTempConfig(t, `
server:
  port: 9090
  read_timeout: 45s
  write_timeout: 45s

provider:
  base_url: http://provider.local/v2
  api_key: file-key
  timeout: 5s
  max_retries: 1
  default_league: NFL
  default_limit: 10

sources:
  - id: fanduel
    name: FanDuel
  - id: pinnacle
    name: Pinnacle

evaluation:
  min_price: -200
  max_price: 200
  min_ev: 0.02
  bankroll: 5000
  kelly_fraction: 0.5
  include_equal_price: true

redis:
  addr: redis:6379
  password: test_password
  db: 1
  ttl: 30s

kafka:
  enabled: true
  brokers:
    - broker1:9092
    - broker2:9092
  topic: test_topic

logging:
  level: debug
  format: console
`)

	config, err := LoadConfig(path)

	require.NoError(t, err)
	require.NotNil(t, config)

	assert.Equal(t, 9090, config.Server.Port)
	assert.Equal(t, 45*time.Second, config.Server.ReadTimeout)

	assert.Equal(t, "http://provider.local/v2", config.Provider.BaseURL)
	assert.Equal(t, "file-key", config.Provider.APIKey)
	assert.Equal(t, 5*time.Second, config.Provider.Timeout)
	assert.Equal(t, 1, config.Provider.MaxRetries)
	assert.Equal(t, "NFL", config.Provider.DefaultLeague)
	assert.Equal(t, 10, config.Provider.DefaultLimit)

	assert.Equal(t, []sources.Source{
		{ID: "fanduel", Name: "FanDuel"},
		{ID: "pinnacle", Name: "Pinnacle"},
	}, config.Sources)

	assert.Equal(t, -200, config.Evaluation.MinPrice)
	assert.Equal(t, 200, config.Evaluation.MaxPrice)
	assert.Equal(t, 0.02, config.Evaluation.MinEV)
	assert.Equal(t, 5000.0, config.Evaluation.Bankroll)
	assert.Equal(t, 0.5, config.Evaluation.KellyFraction)
	assert.True(t, config.Evaluation.IncludeEqualPrice)

	assert.Equal(t, "redis:6379", config.Redis.Addr)
	assert.Equal(t, "test_password", config.Redis.Password)
	assert.Equal(t, 1, config.Redis.DB)
	assert.Equal(t, 30*time.Second, config.Redis.TTL)

	assert.True(t, config.Kafka.Enabled)
	assert.Equal(t, []string{"broker1:9092", "broker2:9092"}, config.Kafka.Brokers)
	assert.Equal(t, "test_topic", config.Kafka.Topic)

	assert.Equal(t, "debug", config.Logging.Level)
	assert.Equal(t, "console", config.Logging.Format)
}

// TestLoadConfig_EnvOverride tests environment variable overrides
func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("SPORTS_ODDS_PROVIDER_API_KEY", "env-key")
	t.Setenv("SPORTS_ODDS_SERVER_PORT", "9999")
	t.Setenv("SPORTS_ODDS_EVALUATION_MIN_EV", "0.03")

	config, err := LoadConfig("")

	require.NoError(t, err)
	assert.Equal(t, "env-key", config.Provider.APIKey)
	assert.Equal(t, 9999, config.Server.Port)
	assert.Equal(t, 0.03, config.Evaluation.MinEV)
}

// TestLoadConfig_MissingFile tests loading from a nonexistent file
func TestLoadConfig_MissingFile(t *testing.T) {
	config, err := LoadConfig("/nonexistent/config.yaml")

	assert.Error(t, err)
	assert.Nil(t, config)
	assert.Contains(t, err.Error(), "failed to read config file")
}

// TestLoadConfig_InvalidEvaluation tests rejected evaluation defaults
func TestLoadConfig_InvalidEvaluation(t *testing.T) {
	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{
			name:    "Min price above max price",
			content: "evaluation:\n  min_price: 200\n  max_price: -200\n",
			errMsg:  "min_price",
		},
		{
			name:    "Zero bankroll",
			content: "evaluation:\n  bankroll: 0\n",
			errMsg:  "bankroll",
		},
		{
			name:    "Kelly fraction above one",
			content: "evaluation:\n  kelly_fraction: 1.5\n",
			errMsg:  "kelly_fraction",
		},
		{
			name:    "Zero default limit",
			content: "provider:\n  default_limit: 0\n",
			errMsg:  "default_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config, err := LoadConfig(writeTempConfig(t, tt.content))

			require.Error(t, err)
			assert.Nil(t, config)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

// TestToEvaluationParams tests conversion to evaluation parameters
func TestToEvaluationParams(t *testing.T) {
	cfg := EvaluationConfig{
		MinPrice:          -250,
		MaxPrice:          250,
		MinEV:             0.01,
		Bankroll:          2500,
		KellyFraction:     0.1,
		IncludeEqualPrice: true,
	}

	params := cfg.ToEvaluationParams()

	assert.Equal(t, -250, params.MinPrice)
	assert.Equal(t, 250, params.MaxPrice)
	assert.Equal(t, 0.01, params.MinEV)
	assert.Equal(t, 2500.0, params.Bankroll)
	assert.Equal(t, 0.1, params.KellyFraction)
	assert.True(t, params.IncludeEqualPrice)
	assert.Empty(t, params.CompareToSource)
}
