package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yourusername/runline/internal/models"
	"github.com/yourusername/runline/internal/profile"
)

func newNeutralSimulator() *GameSimulator {
	priors := profile.DefaultLeaguePriors()
	model := NewEventModel(DefaultModelParams(), priors)
	return NewGameSimulator(
		model,
		models.NeutralGameContext("HOME", "AWAY"),
		profile.NeutralLineup("HOME"),
		profile.NeutralLineup("AWAY"),
		profile.NeutralPitcher("hp", "HOME"),
		profile.NeutralPitcher("ap", "AWAY"),
		priors,
	)
}

func TestSimulateGameBounds(t *testing.T) {
	simulator := newNeutralSimulator()
	rng := NewRand(42)

	for i := 0; i < 500; i++ {
		total, flags := simulator.SimulateGame(rng)
		require.GreaterOrEqual(t, total, 0)
		require.LessOrEqual(t, total, maxGameRuns)
		require.GreaterOrEqual(t, flags.TruncatedHalfInnings, 0)
	}
}

func TestSimulateGameReproducible(t *testing.T) {
	a := newNeutralSimulator()
	b := newNeutralSimulator()
	rngA := NewRand(7)
	rngB := NewRand(7)

	for i := 0; i < 200; i++ {
		totalA, flagsA := a.SimulateGame(rngA)
		totalB, flagsB := b.SimulateGame(rngB)
		require.Equal(t, totalA, totalB, "game %d diverged", i)
		require.Equal(t, flagsA, flagsB, "game %d flags diverged", i)
	}
}

func TestSimulateGameCalibration(t *testing.T) {
	simulator := newNeutralSimulator()
	rng := NewRand(1234)

	const games = 3000
	sum := 0
	for i := 0; i < games; i++ {
		total, _ := simulator.SimulateGame(rng)
		sum += total
	}
	mean := float64(sum) / games
	// Two league-average sides should combine for a plausible big-league
	// total, well away from both zero and the run cap.
	assert.Greater(t, mean, 6.0, "mean total %f too low", mean)
	assert.Less(t, mean, 11.0, "mean total %f too high", mean)
}

func TestHomeTeamSkipsBottom(t *testing.T) {
	tests := []struct {
		name     string
		inning   int
		home     int
		away     int
		want     bool
	}{
		{"home leads in the ninth", 9, 5, 3, true},
		{"home leads in extras", 11, 5, 3, true},
		{"tied in the ninth", 9, 3, 3, false},
		{"home trails in the ninth", 9, 2, 3, false},
		{"home leads in the eighth", 8, 5, 3, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, homeTeamSkipsBottom(tt.inning, tt.home, tt.away))
		})
	}
}

func TestSimulateHalfInningTerminates(t *testing.T) {
	simulator := newNeutralSimulator()
	rng := NewRand(99)

	for i := 0; i < 2000; i++ {
		side := &teamSide{batters: simulator.home.batters, pitcher: simulator.away.pitcher}
		flags := GameFlags{}
		runs := simulator.simulateHalfInning(rng, side, 1, &flags)
		require.GreaterOrEqual(t, runs, 0)
		require.LessOrEqual(t, runs, maxPlateAppearances*4)
	}
}

func TestLineupCycles(t *testing.T) {
	side := &teamSide{batters: make([]profile.BatterContext, 9)}
	for i := range side.batters {
		side.batters[i].Name = string(rune('a' + i))
	}
	for i := 0; i < 20; i++ {
		b := side.nextBatter()
		assert.Equal(t, string(rune('a'+i%9)), b.Name)
	}
}
