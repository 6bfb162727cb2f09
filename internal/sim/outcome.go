package sim

// Outcome is one of the nine ways a plate appearance can resolve.
type Outcome int

const (
	OutcomeStrikeout Outcome = iota
	OutcomeWalk
	OutcomeSingle
	OutcomeDouble
	OutcomeTriple
	OutcomeHomeRun
	OutcomeInPlayOut
	OutcomeDoublePlay
	OutcomeSacFly

	NumOutcomes = 9
)

var outcomeNames = [NumOutcomes]string{
	"strikeout",
	"walk",
	"single",
	"double",
	"triple",
	"home_run",
	"in_play_out",
	"double_play",
	"sac_fly",
}

func (o Outcome) String() string {
	if o < 0 || int(o) >= NumOutcomes {
		return "unknown"
	}
	return outcomeNames[o]
}
