// Package main provides the entry point for the prediction CLI tool.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/runline/internal/config"
	"github.com/yourusername/runline/internal/logger"
	"github.com/yourusername/runline/internal/metrics"
	"github.com/yourusername/runline/internal/models"
	"github.com/yourusername/runline/internal/profile"
	"github.com/yourusername/runline/internal/sim"
)

// predictionInput is the resolved matchup read from the input file. The
// data layer producing it is responsible for lineups and probable starters;
// this tool only simulates.
type predictionInput struct {
	Game        models.GameContext    `json:"game"`
	HomeLineup  models.Lineup         `json:"home_lineup"`
	AwayLineup  models.Lineup         `json:"away_lineup"`
	HomePitcher models.PitcherProfile `json:"home_pitcher"`
	AwayPitcher models.PitcherProfile `json:"away_pitcher"`
}

func main() {
	var (
		configPath = flag.String("config", "config/config.yaml", "Path to config file")
		inputPath  = flag.String("input", "", "Path to resolved matchup JSON (required)")
		marketLine = flag.Float64("line", 8.5, "Market total line")
		numSims    = flag.Int("sims", 0, "Override simulation count")
		seed       = flag.Int64("seed", 0, "Base RNG seed (0 = time-based)")
		timeoutSec = flag.Int("timeout", 0, "Overall timeout in seconds (0 = none)")
		output     = flag.String("output", "", "Output path for result JSON (default stdout)")
	)
	flag.Parse()

	log := newLogger(*configPath)
	if *inputPath == "" {
		log.Fatal("Missing required -input flag")
	}

	cfg, err := config.LoadWithDefaults(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := config.Validate(cfg); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	startMetricsServer(cfg, log)

	input, err := readInput(*inputPath)
	if err != nil {
		log.Fatalf("Failed to read input: %v", err)
	}

	req := buildRequest(input, cfg, *marketLine, *numSims, *seed)
	predictor := buildPredictor(cfg, log)

	ctx := context.Background()
	if *timeoutSec > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(*timeoutSec)*time.Second)
		defer cancel()
	}

	result, err := predictor.Predict(ctx, req)
	if err != nil {
		log.Fatalf("Prediction failed: %v", err)
	}

	log.WithFields(logrus.Fields{
		"predicted_total": result.PredictedTotal,
		"over":            result.OverProbability,
		"edge":            result.EdgeVsMarket,
		"confidence":      result.Confidence,
	}).Info("Prediction complete")

	if err := writeResult(result, *output); err != nil {
		log.Fatalf("Failed to write result: %v", err)
	}
}

func newLogger(configPath string) *logrus.Logger {
	cfg, err := config.LoadWithDefaults(configPath)
	if err != nil {
		return logger.NewLogger("info")
	}
	return logger.NewLogger(cfg.App.LogLevel)
}

func readInput(path string) (*predictionInput, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	input := &predictionInput{}
	if err := json.Unmarshal(data, input); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return input, nil
}

func buildRequest(input *predictionInput, cfg *config.Config, line float64, sims int, seed int64) sim.PredictionRequest {
	if sims <= 0 {
		sims = cfg.Simulation.NumSimulations
	}
	if seed == 0 {
		seed = cfg.Simulation.Seed
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return sim.PredictionRequest{
		Game:           input.Game,
		HomeLineup:     input.HomeLineup,
		AwayLineup:     input.AwayLineup,
		HomePitcher:    input.HomePitcher,
		AwayPitcher:    input.AwayPitcher,
		MarketLine:     line,
		NumSimulations: sims,
		Seed:           seed,
	}
}

func buildPredictor(cfg *config.Config, log *logrus.Logger) *sim.Predictor {
	priors := profile.DefaultLeaguePriors()
	model := sim.NewEventModel(sim.DefaultModelParams(), priors)
	predictorCfg := sim.PredictorConfig{Workers: cfg.Simulation.Workers}
	if cfg.Simulation.MarketVigOdds != 0 {
		if implied, err := models.ImpliedProbability(cfg.Simulation.MarketVigOdds); err == nil {
			predictorCfg.MarketImpliedProbability = implied
		}
	}
	return sim.NewPredictor(model, priors, predictorCfg, log)
}

func startMetricsServer(cfg *config.Config, log *logrus.Logger) {
	if !cfg.Metrics.Enabled {
		return
	}
	go func() {
		addr := fmt.Sprintf(":%d", cfg.Metrics.Port)
		mux := http.NewServeMux()
		mux.Handle("/metrics", metrics.Handler())
		if err := http.ListenAndServe(addr, mux); err != nil {
			log.WithError(err).Warn("Metrics server stopped")
		}
	}()
}

func writeResult(result *models.SimulationResult, output string) error {
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	if output == "" {
		fmt.Println(string(data))
		return nil
	}
	return os.WriteFile(output, data, 0o644)
}
