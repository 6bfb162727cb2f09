package sim

// Runner occupancy bits for BaseOutState.Runners.
const (
	RunnerOnFirst  uint8 = 1 << 0
	RunnerOnSecond uint8 = 1 << 1
	RunnerOnThird  uint8 = 1 << 2
)

// inningOverOuts marks the absorbing state once the third out is recorded.
const inningOverOuts uint8 = 3

// BaseOutState is one of the 24 live base/out combinations plus the absorbing
// inning-over state. It is an immutable value; Apply returns new states.
type BaseOutState struct {
	Runners uint8 // bit0=1B, bit1=2B, bit2=3B
	Outs    uint8
}

// EmptyState is the start of every half-inning: bases empty, nobody out.
func EmptyState() BaseOutState {
	return BaseOutState{}
}

// InningOver reports whether the state is absorbing.
func (s BaseOutState) InningOver() bool {
	return s.Outs >= inningOverOuts
}

// RunnerCount returns how many bases are occupied.
func (s BaseOutState) RunnerCount() int {
	n := 0
	for mask := RunnerOnFirst; mask <= RunnerOnThird; mask <<= 1 {
		if s.Runners&mask != 0 {
			n++
		}
	}
	return n
}

func (s BaseOutState) onFirst() bool  { return s.Runners&RunnerOnFirst != 0 }
func (s BaseOutState) onSecond() bool { return s.Runners&RunnerOnSecond != 0 }
func (s BaseOutState) onThird() bool  { return s.Runners&RunnerOnThird != 0 }

// Apply resolves one plate appearance outcome against a state, returning the
// new state and the runs scored on the play. It is total: every (outcome,
// state) pair has defined behavior. Runs per play never exceed 4.
func Apply(outcome Outcome, s BaseOutState) (BaseOutState, int) {
	if s.InningOver() {
		return s, 0
	}

	switch outcome {
	case OutcomeStrikeout, OutcomeInPlayOut:
		return recordOuts(s, 1, s.Runners, 0)

	case OutcomeWalk:
		return applyWalk(s)

	case OutcomeSingle:
		runs := 0
		runners := uint8(0)
		if s.onThird() {
			runs++
		}
		if s.onSecond() {
			runners |= RunnerOnThird
		}
		if s.onFirst() {
			runners |= RunnerOnSecond
		}
		runners |= RunnerOnFirst // batter
		return BaseOutState{Runners: runners, Outs: s.Outs}, runs

	case OutcomeDouble:
		runs := 0
		runners := uint8(0)
		if s.onThird() {
			runs++
		}
		if s.onSecond() {
			runs++
		}
		if s.onFirst() {
			runners |= RunnerOnThird
		}
		runners |= RunnerOnSecond // batter
		return BaseOutState{Runners: runners, Outs: s.Outs}, runs

	case OutcomeTriple:
		runs := s.RunnerCount()
		return BaseOutState{Runners: RunnerOnThird, Outs: s.Outs}, runs

	case OutcomeHomeRun:
		runs := s.RunnerCount() + 1
		return BaseOutState{Runners: 0, Outs: s.Outs}, runs

	case OutcomeDoublePlay:
		return applyDoublePlay(s)

	case OutcomeSacFly:
		// With two outs the fly ball is the third out and nobody scores.
		runs := 0
		runners := s.Runners
		if s.Outs < 2 && s.onThird() {
			runs = 1
			runners &^= RunnerOnThird
		}
		return recordOuts(s, 1, runners, runs)

	default:
		// Unknown outcomes are treated as outs so the chain still absorbs.
		return recordOuts(s, 1, s.Runners, 0)
	}
}

// recordOuts adds outs and collapses to the absorbing state at three. Runs
// that scored before the third out still count.
func recordOuts(s BaseOutState, outs uint8, runners uint8, runs int) (BaseOutState, int) {
	next := s.Outs + outs
	if next >= inningOverOuts {
		return BaseOutState{Runners: 0, Outs: inningOverOuts}, runs
	}
	return BaseOutState{Runners: runners, Outs: next}, runs
}

// applyWalk advances only forced runners. The batter always takes first; the
// runner on third scores only when the bases were loaded.
func applyWalk(s BaseOutState) (BaseOutState, int) {
	runners := s.Runners
	runs := 0
	if s.onFirst() {
		if s.onSecond() {
			if s.onThird() {
				runs++
			}
			runners |= RunnerOnThird
		}
		runners |= RunnerOnSecond
	}
	runners |= RunnerOnFirst
	return BaseOutState{Runners: runners, Outs: s.Outs}, runs
}

// applyDoublePlay records two outs (batter and lead runner); survivors move
// up one base. No runs score on the play. With the bases empty there is no
// lead runner to erase, so only the batter is out.
func applyDoublePlay(s BaseOutState) (BaseOutState, int) {
	if s.Runners == 0 {
		return recordOuts(s, 1, 0, 0)
	}
	runners := s.Runners
	// Lead runner is erased: third, else second, else first.
	switch {
	case s.onThird():
		runners &^= RunnerOnThird
	case s.onSecond():
		runners &^= RunnerOnSecond
	case s.onFirst():
		runners &^= RunnerOnFirst
	}
	// Survivors advance one base, batter is out.
	advanced := uint8(0)
	if runners&RunnerOnSecond != 0 {
		advanced |= RunnerOnThird
	}
	if runners&RunnerOnFirst != 0 {
		advanced |= RunnerOnSecond
	}
	return recordOuts(s, 2, advanced, 0)
}
