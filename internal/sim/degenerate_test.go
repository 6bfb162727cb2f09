package sim

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/runline/internal/models"
	"github.com/yourusername/runline/internal/profile"
)

// constantEstimator always returns the same outcome distribution, regardless
// of matchup or state.
type constantEstimator struct {
	probs   EventProbabilities
	clamped bool
}

func (c constantEstimator) Estimate(_ models.GameContext, _ profile.PitcherContext, _ PitcherRegime, _ profile.BatterContext, _ BaseOutState) (EventProbabilities, bool) {
	return c.probs, c.clamped
}

func newDegenerateSimulator(outcome Outcome) *GameSimulator {
	probs := EventProbabilities{}
	probs[outcome] = 1.0
	priors := profile.DefaultLeaguePriors()
	return NewGameSimulator(
		constantEstimator{probs: probs},
		models.NeutralGameContext("HOME", "AWAY"),
		profile.NeutralLineup("HOME"),
		profile.NeutralLineup("AWAY"),
		profile.NeutralPitcher("hp", "HOME"),
		profile.NeutralPitcher("ap", "AWAY"),
		priors,
	)
}

func TestAllStrikeoutsScoreZero(t *testing.T) {
	simulator := newDegenerateSimulator(OutcomeStrikeout)
	rng := NewRand(1)

	for i := 0; i < 50; i++ {
		total, flags := simulator.SimulateGame(rng)
		require.Zero(t, total)
		require.Zero(t, flags.TruncatedHalfInnings)
		// A permanent 0-0 tie runs into the extra-innings cap.
		require.True(t, flags.TruncatedExtras)
	}
}

func TestAllHomeRunsExercisesTruncation(t *testing.T) {
	simulator := newDegenerateSimulator(OutcomeHomeRun)
	rng := NewRand(1)

	total, flags := simulator.SimulateGame(rng)
	// Without outs the half-inning can only end at the plate appearance cap.
	assert.Greater(t, flags.TruncatedHalfInnings, 0)
	assert.True(t, flags.RunCapHit)
	assert.Equal(t, maxGameRuns, total)
}

func TestClampedDistributionsSurface(t *testing.T) {
	probs := EventProbabilities{}
	probs[OutcomeInPlayOut] = 1.0
	estimator := constantEstimator{probs: probs, clamped: true}
	priors := profile.DefaultLeaguePriors()

	simulator := NewGameSimulator(
		estimator,
		models.NeutralGameContext("HOME", "AWAY"),
		profile.NeutralLineup("HOME"),
		profile.NeutralLineup("AWAY"),
		profile.NeutralPitcher("hp", "HOME"),
		profile.NeutralPitcher("ap", "AWAY"),
		priors,
	)
	_, flags := simulator.SimulateGame(NewRand(1))
	// Every plate appearance reported a clamped distribution.
	assert.Greater(t, flags.ClampedDistributions, 0)

	predictor := NewPredictor(estimator, priors, PredictorConfig{Workers: 2}, nil)
	result, err := predictor.Predict(context.Background(), neutralRequest(50, 1))
	require.NoError(t, err)
	assert.Greater(t, result.ClampedDistributions, 0)
}

func TestMonteCarloConvergence(t *testing.T) {
	// The spread of repeated sample means shrinks roughly as 1/sqrt(N): a 16x
	// larger sample should cut it by about 4x.
	variance := func(sims int, seeds []int64) float64 {
		means := make([]float64, len(seeds))
		simulator := newNeutralSimulator()
		for i, seed := range seeds {
			rng := NewRand(seed)
			sum := 0
			for g := 0; g < sims; g++ {
				total, _ := simulator.SimulateGame(rng)
				sum += total
			}
			means[i] = float64(sum) / float64(sims)
		}
		m, v := 0.0, 0.0
		for _, x := range means {
			m += x
		}
		m /= float64(len(means))
		for _, x := range means {
			v += (x - m) * (x - m)
		}
		return v / float64(len(means))
	}

	seeds := make([]int64, 20)
	for i := range seeds {
		seeds[i] = int64(1000 + i)
	}

	small := variance(250, seeds)
	large := variance(4000, seeds)
	require.Greater(t, small, 0.0)
	require.Greater(t, large, 0.0)
	assert.Greater(t, small/large, 4.0, "variance ratio %f, want near 16", small/large)
}

func TestSelfConsistentPITIsUniform(t *testing.T) {
	// Score actuals drawn from the model's own distribution against that same
	// distribution: the probability integral transform must come out close to
	// uniform. This is the calibration sanity floor; real data can only be
	// worse.
	simulator := newNeutralSimulator()

	refRNG := NewRand(10)
	reference := make([]int, 4000)
	for i := range reference {
		reference[i], _ = simulator.SimulateGame(refRNG)
	}

	const games = 1000
	bins := [10]int{}
	drawRNG := NewRand(20)
	for g := 0; g < games; g++ {
		actual, _ := simulator.SimulateGame(drawRNG)
		less, equal := 0, 0
		for _, v := range reference {
			switch {
			case v < actual:
				less++
			case v == actual:
				equal++
			}
		}
		pit := (float64(less) + 0.5*float64(equal)) / float64(len(reference))
		bin := int(pit * 10)
		if bin > 9 {
			bin = 9
		}
		bins[bin]++
	}

	// Run totals are discrete, so individual atoms of probability land whole
	// in single bins; judge uniformity in aggregate rather than bin by bin.
	maxDev, sumDev := 0.0, 0.0
	for _, count := range bins {
		dev := math.Abs(float64(count)/games - 0.1)
		sumDev += dev
		if dev > maxDev {
			maxDev = dev
		}
	}
	assert.Less(t, maxDev, 0.12, "PIT histogram far from uniform: %v", bins)
	assert.Less(t, sumDev/10, 0.05, "PIT histogram far from uniform: %v", bins)
}
