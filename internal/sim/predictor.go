package sim

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/yourusername/runline/internal/metrics"
	"github.com/yourusername/runline/internal/models"
	"github.com/yourusername/runline/internal/profile"
)

// DefaultSimulations is the Monte Carlo sample size when the caller does not
// choose one.
const DefaultSimulations = 10000

// PredictionRequest carries the fully resolved inputs for one prediction.
// All external data must be in place before Predict runs; the core performs
// no I/O.
type PredictionRequest struct {
	Game        models.GameContext
	HomeLineup  models.Lineup
	AwayLineup  models.Lineup
	HomePitcher models.PitcherProfile
	AwayPitcher models.PitcherProfile

	MarketLine     float64
	NumSimulations int
	Seed           int64

	// KeepDistribution retains the raw run totals on the result, needed by
	// the backtest harness for CRPS and PIT scoring.
	KeepDistribution bool
}

// Validate enforces the caller-facing contract. These are the only hard
// failures the core produces.
func (r *PredictionRequest) Validate() error {
	if r.NumSimulations <= 0 {
		return fmt.Errorf("%w: got %d", models.ErrInvalidSimulationCount, r.NumSimulations)
	}
	if r.MarketLine <= 0 {
		return fmt.Errorf("%w: got %f", models.ErrInvalidMarketLine, r.MarketLine)
	}
	if err := r.HomeLineup.Validate(); err != nil {
		return fmt.Errorf("home lineup: %w", err)
	}
	if err := r.AwayLineup.Validate(); err != nil {
		return fmt.Errorf("away lineup: %w", err)
	}
	return nil
}

// PredictorConfig tunes the Monte Carlo aggregator.
type PredictorConfig struct {
	// Workers is the number of parallel simulation workers. It is part of
	// the reproducibility contract: the same seed and worker count yield a
	// bit-identical result.
	Workers int

	// MarketImpliedProbability is the break-even baseline the edge is
	// measured against. Defaults to standard -110 juice.
	MarketImpliedProbability float64
}

// DefaultPredictorConfig returns the standard configuration.
func DefaultPredictorConfig() PredictorConfig {
	return PredictorConfig{
		Workers:                  4,
		MarketImpliedProbability: models.MarketImpliedProbability(),
	}
}

// Predictor runs N independent game simulations and aggregates them into a
// SimulationResult.
type Predictor struct {
	model  OutcomeEstimator
	priors profile.LeaguePriors
	cfg    PredictorConfig
	logger *logrus.Logger
}

// NewPredictor builds a predictor. A nil logger gets a default one.
func NewPredictor(model OutcomeEstimator, priors profile.LeaguePriors, cfg PredictorConfig, logger *logrus.Logger) *Predictor {
	if logger == nil {
		logger = logrus.New()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = DefaultPredictorConfig().Workers
	}
	if cfg.MarketImpliedProbability <= 0 {
		cfg.MarketImpliedProbability = models.MarketImpliedProbability()
	}
	return &Predictor{model: model, priors: priors, cfg: cfg, logger: logger}
}

// Predict runs the Monte Carlo sample and derives the run-total distribution
// statistics. Simulations are independent and identically distributed: each
// reads only immutable inputs and writes only its own slot of the totals
// slice. Worker i draws from its own RNG stream seeded base+i, and the
// partition of game indices over workers is deterministic, so a fixed seed
// and worker count reproduce every distribution statistic bit for bit. The
// result ID and timestamp are per-call metadata, outside that contract.
//
// Cancelling ctx stops the workers early; the completed simulations are
// aggregated into a partial result with a correspondingly reduced
// confidence.
func (p *Predictor) Predict(ctx context.Context, req PredictionRequest) (*models.SimulationResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	simulator := NewGameSimulator(p.model, req.Game, req.HomeLineup, req.AwayLineup, req.HomePitcher, req.AwayPitcher, p.priors)

	n := req.NumSimulations
	totals := make([]int, n)
	completed := make([]bool, n)
	flagCh := make(chan GameFlags, p.cfg.Workers)

	var wg sync.WaitGroup
	for w := 0; w < p.cfg.Workers; w++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			rng := NewRand(req.Seed + int64(worker))
			workerFlags := GameFlags{}
			// Strided partition: worker w owns games w, w+W, w+2W, ...
			for i := worker; i < n; i += p.cfg.Workers {
				select {
				case <-ctx.Done():
					flagCh <- workerFlags
					return
				default:
				}
				total, flags := simulator.SimulateGame(rng)
				totals[i] = total
				completed[i] = true
				workerFlags.TruncatedHalfInnings += flags.TruncatedHalfInnings
				workerFlags.ClampedDistributions += flags.ClampedDistributions
				if flags.TruncatedExtras {
					workerFlags.TruncatedExtras = true
				}
			}
			flagCh <- workerFlags
		}(w)
	}
	wg.Wait()
	close(flagCh)

	aggFlags := GameFlags{}
	truncatedExtras := 0
	for f := range flagCh {
		aggFlags.TruncatedHalfInnings += f.TruncatedHalfInnings
		aggFlags.ClampedDistributions += f.ClampedDistributions
		if f.TruncatedExtras {
			truncatedExtras++
		}
	}

	// Single-threaded reduction over completed games only.
	sample := make([]int, 0, n)
	for i, done := range completed {
		if done {
			sample = append(sample, totals[i])
		}
	}
	if len(sample) == 0 {
		return nil, fmt.Errorf("no simulations completed: %w", ctx.Err())
	}
	partial := len(sample) < n

	result := p.aggregate(sample, req.MarketLine, partial)
	result.TruncatedHalfInnings = aggFlags.TruncatedHalfInnings
	result.TruncatedExtras = truncatedExtras
	result.ClampedDistributions = aggFlags.ClampedDistributions
	if req.KeepDistribution {
		result.Distribution = sample
	}

	if aggFlags.TruncatedHalfInnings > 0 || truncatedExtras > 0 {
		p.logger.WithFields(logrus.Fields{
			"truncated_half_innings": aggFlags.TruncatedHalfInnings,
			"truncated_extras":       truncatedExtras,
		}).Warn("Simulation safety bounds fired")
	}
	if aggFlags.ClampedDistributions > 0 {
		p.logger.WithField("clamped_distributions", aggFlags.ClampedDistributions).
			Warn("Negative outcome probabilities clamped; check profile inputs")
	}
	if partial {
		p.logger.WithFields(logrus.Fields{
			"completed": len(sample),
			"requested": n,
		}).Warn("Prediction aggregated from partial sample")
	}

	metrics.SimulationsTotal.Add(float64(len(sample)))
	metrics.PredictionsTotal.Inc()
	metrics.HalfInningTruncationsTotal.Add(float64(aggFlags.TruncatedHalfInnings))
	metrics.ExtraInningTruncationsTotal.Add(float64(truncatedExtras))
	metrics.ClampedDistributionsTotal.Add(float64(aggFlags.ClampedDistributions))
	metrics.LastPredictedTotal.Set(result.PredictedTotal)
	metrics.LastOverProbability.Set(result.OverProbability)

	return result, nil
}

func (p *Predictor) aggregate(sample []int, marketLine float64, partial bool) *models.SimulationResult {
	n := len(sample)
	mean, std := meanStdInt(sample)

	sorted := make([]int, n)
	copy(sorted, sample)
	sort.Ints(sorted)

	over := 0
	for _, total := range sample {
		if float64(total) > marketLine {
			over++
		}
	}
	overProb := float64(over) / float64(n)
	underProb := 1 - overProb

	edge := bestSideProbability(overProb, underProb) - p.cfg.MarketImpliedProbability
	confidence := p.confidence(n, edge)

	return &models.SimulationResult{
		// ID and PredictedAt identify the call, not the sample; they are the
		// only fields a repeated (seed, workers) run does not reproduce.
		ID:               uuid.New(),
		PredictedTotal:   mean,
		MarketLine:       marketLine,
		OverProbability:  overProb,
		UnderProbability: underProb,
		Percentiles: models.Percentiles{
			P5:  percentileInt(sorted, 0.05),
			P25: percentileInt(sorted, 0.25),
			P50: percentileInt(sorted, 0.50),
			P75: percentileInt(sorted, 0.75),
			P95: percentileInt(sorted, 0.95),
		},
		EdgeVsMarket: edge,
		Confidence:   confidence,
		Details: models.SimulationDetails{
			GamesSimulated: n,
			MeanRuns:       mean,
			StdRuns:        std,
		},
		Partial:     partial,
		PredictedAt: time.Now().UTC(),
	}
}

// confidence grows with the completed sample size and the magnitude of the
// edge, bounded to [0, 100]. A partial sample lowers it through the smaller
// n.
func (p *Predictor) confidence(n int, edge float64) float64 {
	sizeScore := math.Sqrt(math.Min(1, float64(n)/float64(DefaultSimulations)))
	score := 50*sizeScore + 400*math.Abs(edge)*sizeScore
	return math.Max(0, math.Min(100, score))
}

func bestSideProbability(overProb, underProb float64) float64 {
	if overProb >= underProb {
		return overProb
	}
	return underProb
}

func meanStdInt(values []int) (float64, float64) {
	if len(values) == 0 {
		return 0, 0
	}
	mean := 0.0
	for _, v := range values {
		mean += float64(v)
	}
	mean /= float64(len(values))
	variance := 0.0
	for _, v := range values {
		diff := float64(v) - mean
		variance += diff * diff
	}
	variance /= float64(len(values))
	return mean, math.Sqrt(variance)
}

// percentileInt reads the pth percentile from an already sorted sample.
func percentileInt(sorted []int, p float64) float64 {
	if len(sorted) == 0 {
		return 0
	}
	idx := int(math.Floor(p * float64(len(sorted)-1)))
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return float64(sorted[idx])
}
