// Package config provides configuration management for the runline
// simulation engine.
package config

// Config represents the complete application configuration
type Config struct {
	App        AppConfig        `mapstructure:"app" validate:"required"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Simulation SimulationConfig `mapstructure:"simulation" validate:"required"`
	Backtest   BacktestConfig   `mapstructure:"backtest" validate:"required"`
	GameLog    GameLogConfig    `mapstructure:"gamelog"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// AppConfig represents application-level configuration
type AppConfig struct {
	Name        string `mapstructure:"name" validate:"required"`
	Environment string `mapstructure:"environment" validate:"required,environment"`
	LogLevel    string `mapstructure:"log_level" validate:"required,loglevel"`
}

// DatabaseConfig represents database connection configuration. The database
// is optional: predictions run entirely from resolved inputs, only the
// game-log and profile stores need Postgres.
type DatabaseConfig struct {
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
	Name           string `mapstructure:"name"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	SSLMode        string `mapstructure:"ssl_mode" validate:"omitempty,oneof=disable require verify-full"`
	MaxConnections int    `mapstructure:"max_connections" validate:"omitempty,gt=0"`
}

// Enabled reports whether a database was configured at all.
func (d DatabaseConfig) Enabled() bool {
	return d.Host != ""
}

// SimulationConfig tunes the Monte Carlo core.
type SimulationConfig struct {
	NumSimulations int     `mapstructure:"num_simulations" validate:"required,gt=0"`
	Workers        int     `mapstructure:"workers" validate:"required,gt=0"`
	Seed           int64   `mapstructure:"seed"`
	MarketVigOdds  int     `mapstructure:"market_vig_odds"`
	ProfileTTL     int     `mapstructure:"profile_ttl_seconds" validate:"omitempty,gt=0"`
	DefaultLine    float64 `mapstructure:"default_line" validate:"omitempty,gt=0"`
}

// BacktestConfig represents backtesting configuration
type BacktestConfig struct {
	StartDate      string `mapstructure:"start_date" validate:"required,datetime=2006-01-02"`
	EndDate        string `mapstructure:"end_date" validate:"required,datetime=2006-01-02"`
	NumSimulations int    `mapstructure:"num_simulations" validate:"required,gt=0"`
	Seed           int64  `mapstructure:"seed"`
	OutputPath     string `mapstructure:"output_path" validate:"required"`
}

// GameLogConfig configures the external game-log source.
type GameLogConfig struct {
	BaseURL        string  `mapstructure:"base_url" validate:"omitempty,url"`
	APIKey         string  `mapstructure:"api_key"`
	TimeoutSeconds int     `mapstructure:"timeout_seconds" validate:"omitempty,gt=0"`
	MaxRetries     int     `mapstructure:"max_retries" validate:"omitempty,gte=0"`
	RateLimit      float64 `mapstructure:"rate_limit" validate:"omitempty,gt=0"`
	SyncSchedule   string  `mapstructure:"sync_schedule"`
}

// MetricsConfig represents metrics and monitoring configuration
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
	Port    int  `mapstructure:"port" validate:"omitempty,min=1,max=65535"`
}
