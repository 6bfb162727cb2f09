package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigYAML = `
app:
  name: runline
  environment: development
  log_level: debug

simulation:
  num_simulations: 5000
  workers: 8
  seed: 42
  market_vig_odds: -110
  default_line: 8.5

backtest:
  start_date: "2025-04-01"
  end_date: "2025-09-30"
  num_simulations: 1000
  output_path: ./output/report.json

gamelog:
  base_url: https://api.example.com
  rate_limit: 2.5
  sync_schedule: "0 6 * * *"

metrics:
  enabled: true
  port: 9100
`

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad(t *testing.T) {
	cfg, err := Load(writeConfigFile(t, testConfigYAML))
	require.NoError(t, err)

	assert.Equal(t, "runline", cfg.App.Name)
	assert.Equal(t, "debug", cfg.App.LogLevel)
	assert.Equal(t, 5000, cfg.Simulation.NumSimulations)
	assert.Equal(t, 8, cfg.Simulation.Workers)
	assert.Equal(t, int64(42), cfg.Simulation.Seed)
	assert.Equal(t, -110, cfg.Simulation.MarketVigOdds)
	assert.Equal(t, "2025-04-01", cfg.Backtest.StartDate)
	assert.Equal(t, "https://api.example.com", cfg.GameLog.BaseURL)
	assert.Equal(t, 2.5, cfg.GameLog.RateLimit)
	assert.True(t, cfg.Metrics.Enabled)
	assert.False(t, cfg.Database.Enabled())
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("RUNLINE_TEST_DB_PASSWORD", "hunter2")
	yaml := testConfigYAML + `
database:
  host: localhost
  port: 5432
  name: runline
  user: runline
  password: ${RUNLINE_TEST_DB_PASSWORD}
`
	cfg, err := Load(writeConfigFile(t, yaml))
	require.NoError(t, err)
	assert.Equal(t, "hunter2", cfg.Database.Password)
	assert.True(t, cfg.Database.Enabled())
}

func TestLoadWithDefaults(t *testing.T) {
	// No file at all: everything comes from defaults.
	cfg, err := LoadWithDefaults(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "runline", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Environment)
	assert.Equal(t, 10000, cfg.Simulation.NumSimulations)
	assert.Equal(t, 4, cfg.Simulation.Workers)
	assert.Equal(t, -110, cfg.Simulation.MarketVigOdds)
	assert.Equal(t, 2000, cfg.Backtest.NumSimulations)
	assert.False(t, cfg.Metrics.Enabled)
	assert.NoError(t, Validate(cfg))
}

func TestLoadWithDefaultsFileOverrides(t *testing.T) {
	cfg, err := LoadWithDefaults(writeConfigFile(t, testConfigYAML))
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.Simulation.NumSimulations)
	// Untouched keys keep their defaults.
	assert.Equal(t, 900, cfg.Simulation.ProfileTTL)
}

func TestValidateRejectsBadValues(t *testing.T) {
	base := func() *Config {
		cfg, err := LoadWithDefaults(writeConfigFile(t, testConfigYAML))
		require.NoError(t, err)
		return cfg
	}

	cfg := base()
	cfg.App.Environment = "sandbox"
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.App.LogLevel = "verbose"
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.Backtest.StartDate = "not-a-date"
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.Backtest.StartDate = "2025-12-01"
	cfg.Backtest.EndDate = "2025-04-01"
	assert.Error(t, Validate(cfg), "start date after end date")

	cfg = base()
	cfg.Simulation.MarketVigOdds = 0
	assert.Error(t, Validate(cfg))

	cfg = base()
	cfg.GameLog.BaseURL = ""
	assert.Error(t, Validate(cfg), "sync schedule without base URL")

	cfg = base()
	cfg.Simulation.NumSimulations = 0
	assert.Error(t, Validate(cfg))
}

func TestValidateAcceptsGoodConfig(t *testing.T) {
	cfg, err := LoadWithDefaults(writeConfigFile(t, testConfigYAML))
	require.NoError(t, err)
	assert.NoError(t, Validate(cfg))
}
