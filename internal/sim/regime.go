package sim

// PitcherRegime buckets pitcher fatigue and role. Starters degrade by times
// through the order; bullpen tiers take over from the middle innings.
type PitcherRegime int

const (
	RegimeStarterTTO1 PitcherRegime = iota
	RegimeStarterTTO2
	RegimeStarterTTO3
	RegimeLongRelief
	RegimeMidRelief
	RegimeLateRelief
	RegimeHighLeverage
)

var regimeNames = map[PitcherRegime]string{
	RegimeStarterTTO1:  "starter_tto1",
	RegimeStarterTTO2:  "starter_tto2",
	RegimeStarterTTO3:  "starter_tto3",
	RegimeLongRelief:   "long_relief",
	RegimeMidRelief:    "mid_relief",
	RegimeLateRelief:   "late_relief",
	RegimeHighLeverage: "high_leverage",
}

func (r PitcherRegime) String() string {
	if name, ok := regimeNames[r]; ok {
		return name
	}
	return "unknown"
}

// Pitch count estimate per batter faced, used to decide when the starter's
// day is over.
const (
	pitchesPerBatter  = 3.9
	starterPitchLimit = 100
)

// DeriveRegime recomputes the regime entering an inning from the starter's
// cumulative batters faced. The starter works through the order up to three
// times or the pitch limit, whichever comes first; after that the bullpen
// tier is chosen by inning.
func DeriveRegime(battersFaced, inning int) PitcherRegime {
	pitchCount := float64(battersFaced) * pitchesPerBatter
	if pitchCount < starterPitchLimit {
		switch {
		case battersFaced < 9:
			return RegimeStarterTTO1
		case battersFaced < 18:
			return RegimeStarterTTO2
		case battersFaced < 27:
			return RegimeStarterTTO3
		}
	}
	switch {
	case inning <= 5:
		return RegimeLongRelief
	case inning <= 7:
		return RegimeMidRelief
	case inning == 8:
		return RegimeLateRelief
	default:
		return RegimeHighLeverage
	}
}

// regimeAdjustment holds the rate multipliers a regime applies to the
// pitcher's strikeout, walk and home run probabilities. Hand-tuned
// calibration parameters; the backtest harness is the tool for fitting them.
type regimeAdjustment struct {
	k, bb, hr float64
}

var regimeAdjustments = map[PitcherRegime]regimeAdjustment{
	RegimeStarterTTO1:  {k: 1.05, bb: 0.97, hr: 0.94},
	RegimeStarterTTO2:  {k: 1.00, bb: 1.00, hr: 1.00},
	RegimeStarterTTO3:  {k: 0.92, bb: 1.05, hr: 1.12},
	RegimeLongRelief:   {k: 0.96, bb: 1.04, hr: 1.05},
	RegimeMidRelief:    {k: 1.02, bb: 1.02, hr: 1.00},
	RegimeLateRelief:   {k: 1.08, bb: 0.98, hr: 0.94},
	RegimeHighLeverage: {k: 1.15, bb: 0.95, hr: 0.88},
}

func (r PitcherRegime) adjustment() regimeAdjustment {
	if adj, ok := regimeAdjustments[r]; ok {
		return adj
	}
	return regimeAdjustment{k: 1, bb: 1, hr: 1}
}
