package sim

import (
	"github.com/yourusername/runline/internal/models"
	"github.com/yourusername/runline/internal/profile"
)

// Safety bounds. Both caps are documented modeling limitations: hitting one
// is flagged on the result, never silently resolved.
const (
	// maxPlateAppearances bounds a single half-inning against a
	// miscalibrated probability table that never produces outs.
	maxPlateAppearances = 15

	// maxExtraInnings bounds pathological ties.
	maxExtraInnings = 10

	// maxGameRuns caps a single game's total.
	maxGameRuns = 25

	regulationInnings = 9
)

// GameFlags reports which safety bounds fired during one simulated game.
type GameFlags struct {
	TruncatedHalfInnings int
	TruncatedExtras      bool
	RunCapHit            bool

	// ClampedDistributions counts plate appearances whose outcome
	// distribution needed negative probabilities clamped before
	// renormalization. A non-zero count points at miscalibrated inputs.
	ClampedDistributions int
}

// teamSide tracks one team's batting order position and shrunk batter
// contexts across innings, plus the opposing pitcher it faces.
type teamSide struct {
	batters      []profile.BatterContext
	lineupIndex  int
	pitcher      profile.PitcherContext
	battersFaced int
}

func (t *teamSide) nextBatter() profile.BatterContext {
	b := t.batters[t.lineupIndex]
	t.lineupIndex = (t.lineupIndex + 1) % len(t.batters)
	return b
}

// OutcomeEstimator produces the outcome distribution for one plate
// appearance. *EventModel is the production implementation; tests inject
// degenerate distributions through it.
type OutcomeEstimator interface {
	Estimate(game models.GameContext, pitcher profile.PitcherContext, regime PitcherRegime, batter profile.BatterContext, state BaseOutState) (EventProbabilities, bool)
}

// GameSimulator drives the Markov chain for complete games. It holds only
// immutable model/context data; all mutable state lives on the stack of
// SimulateGame, so one simulator is safe for concurrent use with per-worker
// RNG streams.
type GameSimulator struct {
	model OutcomeEstimator
	game  models.GameContext
	home  gameInputs
	away  gameInputs
}

type gameInputs struct {
	batters []profile.BatterContext
	pitcher profile.PitcherContext
}

// NewGameSimulator prepares a simulator for one matchup. Lineups must be
// resolved 9-batter orders; shrinkage happens here, once, so the Monte Carlo
// loop only reads.
func NewGameSimulator(model OutcomeEstimator, game models.GameContext, homeLineup, awayLineup models.Lineup, homePitcher, awayPitcher models.PitcherProfile, priors profile.LeaguePriors) *GameSimulator {
	return &GameSimulator{
		model: model,
		game:  game,
		home:  buildInputs(homeLineup, homePitcher, priors),
		away:  buildInputs(awayLineup, awayPitcher, priors),
	}
}

func buildInputs(lineup models.Lineup, pitcher models.PitcherProfile, priors profile.LeaguePriors) gameInputs {
	team := profile.TeamRatesFromLineup(lineup, priors)
	batters := make([]profile.BatterContext, len(lineup.Batters))
	for i, b := range lineup.Batters {
		batters[i] = profile.BuildBatterContext(b, team, priors)
	}
	return gameInputs{
		batters: batters,
		pitcher: profile.BuildPitcherContext(pitcher, priors),
	}
}

// SimulateGame plays one full game and returns the combined run total. The
// away team bats against the home pitcher and vice versa; the bottom of the
// 9th (and later) is skipped when the home team already leads (walk-off
// rule); ties extend into capped extra innings.
func (s *GameSimulator) SimulateGame(rng RNG) (int, GameFlags) {
	flags := GameFlags{}

	away := &teamSide{batters: s.away.batters, pitcher: s.home.pitcher}
	home := &teamSide{batters: s.home.batters, pitcher: s.away.pitcher}

	awayRuns, homeRuns := 0, 0
	maxInnings := regulationInnings + maxExtraInnings

	for inning := 1; inning <= maxInnings; inning++ {
		awayRuns += s.simulateHalfInning(rng, away, inning, &flags)

		if homeTeamSkipsBottom(inning, homeRuns, awayRuns) {
			break
		}
		homeRuns += s.simulateHalfInning(rng, home, inning, &flags)

		if inning >= regulationInnings && awayRuns != homeRuns {
			break
		}
		if inning == maxInnings && awayRuns == homeRuns {
			flags.TruncatedExtras = true
		}
	}

	total := awayRuns + homeRuns
	if total > maxGameRuns {
		total = maxGameRuns
		flags.RunCapHit = true
	}
	return total, flags
}

// homeTeamSkipsBottom implements the walk-off rule: from the 9th inning on,
// the home team does not bat while already ahead.
func homeTeamSkipsBottom(inning, homeRuns, awayRuns int) bool {
	return inning >= regulationInnings && homeRuns > awayRuns
}

// simulateHalfInning runs one half-inning from the empty state to the third
// out, cycling the 9-slot order. The plate appearance cap truncates runaway
// innings: the runs collected so far are kept and the truncation is flagged.
func (s *GameSimulator) simulateHalfInning(rng RNG, side *teamSide, inning int, flags *GameFlags) int {
	state := EmptyState()
	runs := 0
	regime := DeriveRegime(side.battersFaced, inning)

	for pa := 0; pa < maxPlateAppearances; pa++ {
		if state.InningOver() {
			return runs
		}
		batter := side.nextBatter()
		probs, clamped := s.model.Estimate(s.game, side.pitcher, regime, batter, state)
		if clamped {
			flags.ClampedDistributions++
		}
		outcome := probs.Sample(rng)

		var scored int
		state, scored = Apply(outcome, state)
		runs += scored
		side.battersFaced++
	}

	if !state.InningOver() {
		flags.TruncatedHalfInnings++
	}
	return runs
}
