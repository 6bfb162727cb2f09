package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// allLiveStates enumerates the 24 live base/out combinations.
func allLiveStates() []BaseOutState {
	states := make([]BaseOutState, 0, 24)
	for runners := uint8(0); runners < 8; runners++ {
		for outs := uint8(0); outs < 3; outs++ {
			states = append(states, BaseOutState{Runners: runners, Outs: outs})
		}
	}
	return states
}

func TestApplyTotality(t *testing.T) {
	for _, state := range allLiveStates() {
		for o := 0; o < NumOutcomes; o++ {
			outcome := Outcome(o)
			next, runs := Apply(outcome, state)

			assert.GreaterOrEqual(t, runs, 0, "%s on %+v", outcome, state)
			assert.LessOrEqual(t, runs, 4, "%s on %+v", outcome, state)
			assert.LessOrEqual(t, next.Outs, uint8(3), "%s on %+v", outcome, state)
			if next.InningOver() {
				assert.Equal(t, uint8(0), next.Runners, "absorbing state must clear bases: %s on %+v", outcome, state)
			}
			// Conservation: runners in + batter = runners out + runs + outs added.
			before := state.RunnerCount() + 1
			after := next.RunnerCount() + runs + int(next.Outs-state.Outs)
			if !next.InningOver() {
				assert.Equal(t, before, after, "runner conservation: %s on %+v", outcome, state)
			}
		}
	}
}

func TestApplyAbsorbingState(t *testing.T) {
	over := BaseOutState{Runners: 0, Outs: 3}
	for o := 0; o < NumOutcomes; o++ {
		next, runs := Apply(Outcome(o), over)
		assert.Equal(t, over, next)
		assert.Zero(t, runs)
	}
}

func TestApplyWalk(t *testing.T) {
	tests := []struct {
		name        string
		runners     uint8
		wantRunners uint8
		wantRuns    int
	}{
		{"bases empty", 0, RunnerOnFirst, 0},
		{"runner on first forces to second", RunnerOnFirst, RunnerOnFirst | RunnerOnSecond, 0},
		{"runner on second holds", RunnerOnSecond, RunnerOnFirst | RunnerOnSecond, 0},
		{"runner on third holds", RunnerOnThird, RunnerOnFirst | RunnerOnThird, 0},
		{"first and second force to third", RunnerOnFirst | RunnerOnSecond, RunnerOnFirst | RunnerOnSecond | RunnerOnThird, 0},
		{"first and third no force home", RunnerOnFirst | RunnerOnThird, RunnerOnFirst | RunnerOnSecond | RunnerOnThird, 0},
		{"bases loaded forces a run", RunnerOnFirst | RunnerOnSecond | RunnerOnThird, RunnerOnFirst | RunnerOnSecond | RunnerOnThird, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, runs := Apply(OutcomeWalk, BaseOutState{Runners: tt.runners, Outs: 1})
			assert.Equal(t, tt.wantRunners, next.Runners)
			assert.Equal(t, uint8(1), next.Outs)
			assert.Equal(t, tt.wantRuns, runs)
		})
	}
}

func TestApplyHits(t *testing.T) {
	loaded := BaseOutState{Runners: RunnerOnFirst | RunnerOnSecond | RunnerOnThird, Outs: 2}

	next, runs := Apply(OutcomeSingle, loaded)
	assert.Equal(t, 1, runs)
	assert.Equal(t, RunnerOnFirst|RunnerOnSecond|RunnerOnThird, next.Runners)

	next, runs = Apply(OutcomeDouble, loaded)
	assert.Equal(t, 2, runs)
	assert.Equal(t, RunnerOnSecond|RunnerOnThird, next.Runners)

	next, runs = Apply(OutcomeTriple, loaded)
	assert.Equal(t, 3, runs)
	assert.Equal(t, RunnerOnThird, next.Runners)

	next, runs = Apply(OutcomeHomeRun, loaded)
	assert.Equal(t, 4, runs)
	assert.Equal(t, uint8(0), next.Runners)
	assert.False(t, next.InningOver())
}

func TestApplySoloHomeRun(t *testing.T) {
	next, runs := Apply(OutcomeHomeRun, EmptyState())
	assert.Equal(t, 1, runs)
	assert.Equal(t, EmptyState(), next)
}

func TestApplySacFly(t *testing.T) {
	next, runs := Apply(OutcomeSacFly, BaseOutState{Runners: RunnerOnThird, Outs: 1})
	assert.Equal(t, 1, runs)
	assert.Equal(t, uint8(0), next.Runners)
	assert.Equal(t, uint8(2), next.Outs)

	// No runner on third: a plain fly out.
	next, runs = Apply(OutcomeSacFly, BaseOutState{Runners: RunnerOnSecond, Outs: 0})
	assert.Zero(t, runs)
	assert.Equal(t, RunnerOnSecond, next.Runners)
	assert.Equal(t, uint8(1), next.Outs)

	// With two outs the fly is the third out; the runner does not score.
	next, runs = Apply(OutcomeSacFly, BaseOutState{Runners: RunnerOnThird, Outs: 2})
	assert.Zero(t, runs)
	assert.True(t, next.InningOver())
}

func TestApplyDoublePlay(t *testing.T) {
	tests := []struct {
		name        string
		state       BaseOutState
		wantRunners uint8
		wantOuts    uint8
	}{
		{"bases empty only the batter is out", BaseOutState{}, 0, 1},
		{"runner on first, nobody out", BaseOutState{Runners: RunnerOnFirst}, 0, 2},
		{"first and second", BaseOutState{Runners: RunnerOnFirst | RunnerOnSecond}, RunnerOnSecond, 2},
		{"first and third", BaseOutState{Runners: RunnerOnFirst | RunnerOnThird}, RunnerOnSecond, 2},
		{"bases loaded", BaseOutState{Runners: RunnerOnFirst | RunnerOnSecond | RunnerOnThird}, RunnerOnSecond | RunnerOnThird, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, runs := Apply(OutcomeDoublePlay, tt.state)
			assert.Zero(t, runs, "no runs score on a double play")
			assert.Equal(t, tt.wantRunners, next.Runners)
			assert.Equal(t, tt.wantOuts, next.Outs)
		})
	}
}

func TestApplyDoublePlayEndsInning(t *testing.T) {
	next, runs := Apply(OutcomeDoublePlay, BaseOutState{Runners: RunnerOnFirst, Outs: 2})
	assert.Zero(t, runs)
	assert.True(t, next.InningOver())
	assert.Equal(t, uint8(0), next.Runners)
}

func TestRunnerCount(t *testing.T) {
	assert.Equal(t, 0, EmptyState().RunnerCount())
	assert.Equal(t, 2, BaseOutState{Runners: RunnerOnFirst | RunnerOnThird}.RunnerCount())
	assert.Equal(t, 3, BaseOutState{Runners: RunnerOnFirst | RunnerOnSecond | RunnerOnThird}.RunnerCount())
}
