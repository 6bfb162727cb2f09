// Package backtest replays historical games through the simulator and scores
// the predicted run-total distributions against known final scores.
package backtest

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/yourusername/runline/internal/metrics"
	"github.com/yourusername/runline/internal/models"
	"github.com/yourusername/runline/internal/profile"
	"github.com/yourusername/runline/internal/sim"
)

// Config tunes a backtest run.
type Config struct {
	NumSimulations int
	Seed           int64
	OutputPath     string
}

// Validate checks the backtest configuration.
func (c Config) Validate() error {
	if c.NumSimulations <= 0 {
		return fmt.Errorf("num simulations must be positive")
	}
	return nil
}

// Harness drives the calibration/backtest loop: one prediction per
// historical game, scored against ground truth.
type Harness struct {
	predictor *sim.Predictor
	profiles  profile.Store
	cfg       Config
	logger    *logrus.Logger
}

// NewHarness creates a harness. The profile store supplies lineups and
// starters per team; missing data falls back to neutral profiles inside the
// store, so resolution never aborts the run.
func NewHarness(predictor *sim.Predictor, profiles profile.Store, cfg Config, logger *logrus.Logger) (*Harness, error) {
	if predictor == nil {
		return nil, fmt.Errorf("predictor is required")
	}
	if profiles == nil {
		return nil, fmt.Errorf("profile store is required")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if logger == nil {
		logger = logrus.New()
	}
	return &Harness{predictor: predictor, profiles: profiles, cfg: cfg, logger: logger}, nil
}

// Run replays every historical game. Malformed records are counted and
// skipped, never fatal; per-game prediction failures are likewise skipped
// with a warn log. Each game is seeded deterministically from the base seed
// and its position so a fixed seed reproduces the whole run.
func (h *Harness) Run(ctx context.Context, games []models.GameLog) (*Report, error) {
	report := NewReport()

	for i, game := range games {
		if err := ctx.Err(); err != nil {
			return report.Finalize(), err
		}
		report.TotalGames++
		metrics.BacktestGamesTotal.Inc()

		if err := game.Validate(); err != nil {
			report.Skipped++
			metrics.BacktestGamesSkippedTotal.Inc()
			h.logger.WithFields(logrus.Fields{"game": game.ID, "error": err}).Warn("Skipping malformed game log")
			continue
		}

		result, err := h.predictGame(ctx, game, int64(i))
		if err != nil {
			report.Skipped++
			metrics.BacktestGamesSkippedTotal.Inc()
			h.logger.WithFields(logrus.Fields{"game": game.ID, "error": err}).Warn("Skipping game after prediction failure")
			continue
		}

		sample := ScoreGame(game, result)
		report.Add(sample)
	}

	final := report.Finalize()
	metrics.BacktestAccuracy.Set(final.Accuracy)
	h.logger.WithFields(logrus.Fields{
		"games":    final.TotalGames,
		"scored":   final.Scored,
		"skipped":  final.Skipped,
		"accuracy": final.Accuracy,
		"log_loss": final.AvgLogLoss,
		"crps":     final.AvgCRPS,
	}).Info("Backtest complete")
	return final, nil
}

func (h *Harness) predictGame(ctx context.Context, game models.GameLog, offset int64) (*models.SimulationResult, error) {
	gameCtx := game.Context()

	homeLineup, err := h.profiles.Lineup(ctx, game.HomeTeam)
	if err != nil {
		return nil, fmt.Errorf("resolve home lineup: %w", err)
	}
	awayLineup, err := h.profiles.Lineup(ctx, game.AwayTeam)
	if err != nil {
		return nil, fmt.Errorf("resolve away lineup: %w", err)
	}
	homePitcher, err := h.profiles.StartingPitcher(ctx, game.HomeTeam)
	if err != nil {
		return nil, fmt.Errorf("resolve home pitcher: %w", err)
	}
	awayPitcher, err := h.profiles.StartingPitcher(ctx, game.AwayTeam)
	if err != nil {
		return nil, fmt.Errorf("resolve away pitcher: %w", err)
	}

	req := sim.PredictionRequest{
		Game:             gameCtx,
		HomeLineup:       homeLineup,
		AwayLineup:       awayLineup,
		HomePitcher:      homePitcher,
		AwayPitcher:      awayPitcher,
		MarketLine:       game.ClosingLine,
		NumSimulations:   h.cfg.NumSimulations,
		Seed:             h.cfg.Seed + offset*1000,
		KeepDistribution: true,
	}
	return h.predictor.Predict(ctx, req)
}
