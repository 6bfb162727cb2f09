// Package main provides the entry point for the calibration/backtest CLI
// tool.
package main

import (
	"context"
	"flag"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/runline/internal/backtest"
	"github.com/yourusername/runline/internal/config"
	"github.com/yourusername/runline/internal/database"
	"github.com/yourusername/runline/internal/gamelog"
	"github.com/yourusername/runline/internal/logger"
	"github.com/yourusername/runline/internal/models"
	"github.com/yourusername/runline/internal/profile"
	"github.com/yourusername/runline/internal/repository"
	"github.com/yourusername/runline/internal/sim"
)

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		gamesFile  = flag.String("games", "", "JSON game-log file (skips the database)")
		startDate  = flag.String("start-date", "", "Override start date (YYYY-MM-DD)")
		endDate    = flag.String("end-date", "", "Override end date (YYYY-MM-DD)")
		numSims    = flag.Int("sims", 0, "Override per-game simulation count")
		seed       = flag.Int64("seed", 0, "Override base RNG seed")
		output     = flag.String("output", "", "Override output path for the report")
	)
	flag.Parse()

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		return
	}
	log := logger.NewLogger(cfg.App.LogLevel)
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	ctx := context.Background()
	start, end := resolveDates(cfg, *startDate, *endDate, log)

	var db *database.DB
	if cfg.Database.Enabled() {
		db, err = database.NewDB(ctx, &cfg.Database)
		if err != nil {
			log.Fatalf("Failed to connect to database: %v", err)
		}
		defer db.Close()
	}

	games := loadGames(ctx, db, *gamesFile, start, end, log)
	log.WithFields(logrus.Fields{"games": len(games), "start": start, "end": end}).Info("Starting backtest")

	harness := buildHarness(cfg, db, *numSims, *seed, log)
	report, err := harness.Run(ctx, games)
	if err != nil {
		log.Fatalf("Backtest failed: %v", err)
	}

	outputPath := cfg.Backtest.OutputPath
	if *output != "" {
		outputPath = *output
	}
	if err := backtest.WriteReport(report, outputPath); err != nil {
		log.Fatalf("Failed to write report: %v", err)
	}
	fmt.Print(backtest.GenerateConsoleReport(report))
}

func resolveDates(cfg *config.Config, startOverride, endOverride string, log *logrus.Logger) (time.Time, time.Time) {
	start, err := time.Parse("2006-01-02", cfg.Backtest.StartDate)
	if err != nil {
		log.Fatalf("Invalid configured start date: %v", err)
	}
	end, err := time.Parse("2006-01-02", cfg.Backtest.EndDate)
	if err != nil {
		log.Fatalf("Invalid configured end date: %v", err)
	}
	if startOverride != "" {
		if start, err = time.Parse("2006-01-02", startOverride); err != nil {
			log.Fatalf("Invalid start date: %v", err)
		}
	}
	if endOverride != "" {
		if end, err = time.Parse("2006-01-02", endOverride); err != nil {
			log.Fatalf("Invalid end date: %v", err)
		}
	}
	return start, end
}

func loadGames(ctx context.Context, db *database.DB, gamesFile string, start, end time.Time, log *logrus.Logger) []models.GameLog {
	if gamesFile != "" {
		source := gamelog.NewFileSource(gamesFile)
		games, err := source.FetchGameLogs(ctx, start, end)
		if err != nil {
			log.Fatalf("Failed to load games from file: %v", err)
		}
		return games
	}
	if db == nil {
		log.Fatal("No game source: provide -games or configure the database")
	}
	repo := repository.NewPostgresGameLogRepository(db)
	games, err := repo.GetByDateRange(ctx, start, end)
	if err != nil {
		log.Fatalf("Failed to load games from database: %v", err)
	}
	return games
}

func buildHarness(cfg *config.Config, db *database.DB, numSims int, seed int64, log *logrus.Logger) *backtest.Harness {
	priors := profile.DefaultLeaguePriors()
	model := sim.NewEventModel(sim.DefaultModelParams(), priors)
	predictor := sim.NewPredictor(model, priors, sim.PredictorConfig{Workers: cfg.Simulation.Workers}, log)

	var store profile.Store
	if db != nil {
		ttl := time.Duration(cfg.Simulation.ProfileTTL) * time.Second
		if ttl <= 0 {
			ttl = 15 * time.Minute
		}
		store = profile.NewCachedStore(repository.NewPostgresProfileStore(db), ttl)
	} else {
		// Without a profile database every game runs on neutral profiles;
		// that still calibrates the model's baseline.
		store = profile.NewStaticStore()
	}

	btCfg := backtest.Config{
		NumSimulations: cfg.Backtest.NumSimulations,
		Seed:           cfg.Backtest.Seed,
		OutputPath:     cfg.Backtest.OutputPath,
	}
	if numSims > 0 {
		btCfg.NumSimulations = numSims
	}
	if seed != 0 {
		btCfg.Seed = seed
	}

	harness, err := backtest.NewHarness(predictor, store, btCfg, log)
	if err != nil {
		log.Fatalf("Failed to create harness: %v", err)
	}
	return harness
}
