// Package main provides the game-log synchronization tool. It fetches final
// scores and closing lines from the configured league API and stores them for
// backtesting, either once or on a cron schedule.
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/yourusername/runline/internal/config"
	"github.com/yourusername/runline/internal/database"
	"github.com/yourusername/runline/internal/gamelog"
	"github.com/yourusername/runline/internal/health"
	"github.com/yourusername/runline/internal/logger"
	"github.com/yourusername/runline/internal/repository"
	"github.com/yourusername/runline/internal/scheduler"
)

// Build information - set via ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

var (
	configFile string
	daemonMode bool
	appLogger  *logrus.Logger
	cfg        *config.Config
	db         *database.DB
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "./config/config.yaml", "Path to configuration file")
	rootCmd.Flags().BoolVar(&daemonMode, "daemon", false, "Keep running and sync on the configured cron schedule")
	rootCmd.AddCommand(versionCmd)
}

var rootCmd = &cobra.Command{
	Use:   "gamelog-sync",
	Short: "Synchronize historical game logs into the backtest store",
	Long:  `Fetches final scores, closing lines, and game conditions from the configured league API and upserts them into Postgres for backtesting.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := loadConfig(); err != nil {
			return fmt.Errorf("failed to load configuration: %w", err)
		}
		if err := setupDependencies(cmd.Context()); err != nil {
			return fmt.Errorf("failed to setup dependencies: %w", err)
		}
		return nil
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		defer db.Close()
		if daemonMode {
			return runDaemon()
		}
		return runOnce()
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config or database needed just to print the version.
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("gamelog-sync %s (commit %s, built %s)\n", Version, GitCommit, BuildDate)
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

func loadConfig() error {
	loaded, err := config.LoadWithDefaults(configFile)
	if err != nil {
		return err
	}
	if err := config.Validate(loaded); err != nil {
		return err
	}
	if !loaded.Database.Enabled() {
		return fmt.Errorf("gamelog-sync requires a configured database")
	}
	if loaded.GameLog.BaseURL == "" {
		return fmt.Errorf("gamelog-sync requires gamelog.base_url")
	}
	cfg = loaded
	return nil
}

func setupDependencies(ctx context.Context) error {
	appLogger = logger.NewLogger(cfg.App.LogLevel)

	var err error
	db, err = database.NewDB(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	return nil
}

func buildScheduler() *scheduler.Scheduler {
	clientCfg := gamelog.DefaultHTTPClientConfig()
	if cfg.GameLog.TimeoutSeconds > 0 {
		clientCfg.Timeout = time.Duration(cfg.GameLog.TimeoutSeconds) * time.Second
	}
	if cfg.GameLog.MaxRetries > 0 {
		clientCfg.MaxRetries = cfg.GameLog.MaxRetries
	}
	if cfg.GameLog.RateLimit > 0 {
		clientCfg.RateLimit = cfg.GameLog.RateLimit
	}

	client := gamelog.NewRateLimitedHTTPClient(clientCfg, appLogger)
	source := gamelog.NewAPISource(cfg.GameLog.BaseURL, cfg.GameLog.APIKey, client, appLogger)
	repo := repository.NewPostgresGameLogRepository(db)
	return scheduler.NewScheduler(source, repo, appLogger)
}

func runOnce() error {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Minute)
	defer cancel()
	return buildScheduler().SyncOnce(ctx)
}

func runDaemon() error {
	schedule := cfg.GameLog.SyncSchedule
	if schedule == "" {
		return fmt.Errorf("daemon mode requires gamelog.sync_schedule")
	}

	sched := buildScheduler()
	if err := sched.ScheduleSync(schedule); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	healthServer := health.NewServer(health.Config{
		ServiceName: "gamelog-sync",
		Version:     Version,
		Port:        cfg.Metrics.Port,
		Logger:      appLogger,
		DB:          db,
	})
	if err := healthServer.Start(ctx); err != nil {
		return err
	}

	sched.Start()
	healthServer.SetReady(true)
	appLogger.WithField("schedule", schedule).Info("Game-log sync daemon started")

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	appLogger.Info("Shutting down game-log sync daemon")
	healthServer.SetReady(false)
	sched.Stop()
	return nil
}
