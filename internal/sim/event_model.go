package sim

import (
	"fmt"

	"github.com/yourusername/runline/internal/models"
	"github.com/yourusername/runline/internal/profile"
)

// League base rates for the nine outcomes. These sum to 1.0 and are
// calibrated so two league-average sides combine for roughly 8-9 runs per
// game. Hand-tuned calibration parameters, fitted via the backtest harness.
var leagueBaseRates = EventProbabilities{
	OutcomeStrikeout:  0.220,
	OutcomeWalk:       0.085,
	OutcomeSingle:     0.145,
	OutcomeDouble:     0.044,
	OutcomeTriple:     0.004,
	OutcomeHomeRun:    0.032,
	OutcomeInPlayOut:  0.455,
	OutcomeDoublePlay: 0.000, // unlocked situationally
	OutcomeSacFly:     0.015,
}

// ModelParams are the tunable multiplier strengths of the event model.
type ModelParams struct {
	KMatchupScale      float64
	BBMatchupScale     float64
	ISOPowerScale      float64
	BABIPContactScale  float64
	ERAQualityScale    float64
	ParkDamping        float64
	TempHRPerDegree    float64
	WindHRPerMPH       float64
	ParkWeatherCap     float64
	ParkWeatherFloor   float64
	TwoOutClutchK      float64
	TwoOutClutchHR     float64
	DoublePlayRate     float64
	PlatoonKFactor     float64
	PlatoonHRFactor    float64
	MultiplierFloor    float64
	MultiplierCeiling  float64
}

// DefaultModelParams returns the calibrated defaults.
func DefaultModelParams() ModelParams {
	return ModelParams{
		KMatchupScale:     1.5,
		BBMatchupScale:    2.0,
		ISOPowerScale:     2.0,
		BABIPContactScale: 1.2,
		ERAQualityScale:   0.03,
		ParkDamping:       0.5,
		TempHRPerDegree:   0.003,
		WindHRPerMPH:      0.010,
		ParkWeatherCap:    1.5,
		ParkWeatherFloor:  0.6,
		TwoOutClutchK:     1.03,
		TwoOutClutchHR:    1.05,
		DoublePlayRate:    0.06,
		PlatoonKFactor:    1.05,
		PlatoonHRFactor:   0.95,
		MultiplierFloor:   0.5,
		MultiplierCeiling: 1.8,
	}
}

// EventModel turns a (game, pitcher, batter, state) tuple into the nine-way
// outcome distribution. Estimate is pure: no side effects and no randomness.
type EventModel struct {
	params ModelParams
	priors profile.LeaguePriors
}

// NewEventModel builds a model with the given parameters.
func NewEventModel(params ModelParams, priors profile.LeaguePriors) *EventModel {
	return &EventModel{params: params, priors: priors}
}

// Estimate produces the outcome distribution for one plate appearance. The
// returned bool reports whether any adjusted probability went negative and
// had to be clamped before renormalization (a data-quality warning, not an
// error).
func (m *EventModel) Estimate(game models.GameContext, pitcher profile.PitcherContext, regime PitcherRegime, batter profile.BatterContext, state BaseOutState) (EventProbabilities, bool) {
	p := leagueBaseRates

	m.applyMatchup(&p, pitcher, batter)
	m.applyRegime(&p, regime)
	m.applyParkWeather(&p, game)
	m.applySituational(&p, state)
	m.applyPlatoon(&p, pitcher, batter)

	clamped := p.ClampNegatives()
	if err := p.Normalize(); err != nil {
		// Total adjustment collapse; fall back to league rates rather than
		// emit an invalid distribution.
		p = leagueBaseRates
		clamped = true
	}
	return p, clamped
}

// applyMatchup scales rates by pitcher-vs-batter deviations from league
// average.
func (m *EventModel) applyMatchup(p *EventProbabilities, pitcher profile.PitcherContext, batter profile.BatterContext) {
	kMult := 1 + m.params.KMatchupScale*(pitcher.KRate-m.priors.KRate) + m.params.KMatchupScale*(batter.KRate-m.priors.KRate)
	bbMult := 1 + m.params.BBMatchupScale*(pitcher.BBRate-m.priors.BBRate) + m.params.BBMatchupScale*(batter.BBRate-m.priors.BBRate)
	hrMult := 1 + m.params.ISOPowerScale*(batter.ISO-m.priors.ISO) + m.params.ERAQualityScale*(pitcher.ERA-m.priors.ERA)
	contactMult := 1 + m.params.BABIPContactScale*(batter.BABIP-m.priors.BABIP)
	// Contact outs move opposite to hits: better BABIP and worse pitching
	// mean fewer outs on balls in play.
	outMult := 1 - m.params.BABIPContactScale*(batter.BABIP-m.priors.BABIP) - m.params.ERAQualityScale*(pitcher.ERA-m.priors.ERA)

	p[OutcomeStrikeout] *= m.bound(kMult)
	p[OutcomeWalk] *= m.bound(bbMult)
	p[OutcomeHomeRun] *= m.bound(hrMult)
	p[OutcomeSingle] *= m.bound(contactMult)
	p[OutcomeDouble] *= m.bound(contactMult)
	p[OutcomeTriple] *= m.bound(contactMult)
	p[OutcomeInPlayOut] *= m.bound(outMult)
}

func (m *EventModel) applyRegime(p *EventProbabilities, regime PitcherRegime) {
	adj := regime.adjustment()
	p[OutcomeStrikeout] *= adj.k
	p[OutcomeWalk] *= adj.bb
	p[OutcomeHomeRun] *= adj.hr
}

// applyParkWeather adjusts home run and double rates only. The combined
// multiplier is damped and hard-capped so outlier venues cannot blow up the
// distribution.
func (m *EventModel) applyParkWeather(p *EventProbabilities, game models.GameContext) {
	mult := 1 + m.params.ParkDamping*(game.ParkFactor-1)
	mult += m.params.TempHRPerDegree * (game.TemperatureF - 70)
	switch game.WindDirection {
	case models.WindOut:
		mult += m.params.WindHRPerMPH * game.WindSpeedMPH
	case models.WindIn:
		mult -= m.params.WindHRPerMPH * game.WindSpeedMPH
	}
	if mult > m.params.ParkWeatherCap {
		mult = m.params.ParkWeatherCap
	}
	if mult < m.params.ParkWeatherFloor {
		mult = m.params.ParkWeatherFloor
	}
	p[OutcomeHomeRun] *= mult
	// Doubles react at half strength.
	p[OutcomeDouble] *= 1 + (mult-1)/2
}

// applySituational handles base/out dependent effects: the two-out clutch
// bump and the double-play unlock with a matching in-play-out reduction so
// mass is conserved before normalization.
func (m *EventModel) applySituational(p *EventProbabilities, state BaseOutState) {
	if state.Outs == 2 && state.RunnerCount() > 0 {
		p[OutcomeStrikeout] *= m.params.TwoOutClutchK
		p[OutcomeHomeRun] *= m.params.TwoOutClutchHR
	}
	if state.Runners&RunnerOnFirst != 0 && state.Outs < 2 {
		dp := m.params.DoublePlayRate
		if dp > p[OutcomeInPlayOut] {
			dp = p[OutcomeInPlayOut]
		}
		p[OutcomeDoublePlay] = dp
		p[OutcomeInPlayOut] -= dp
	}
}

// applyPlatoon applies the bounded handedness adjustment: opposite-handed
// matchups lift strikeouts and suppress home runs, same-handed the reverse.
func (m *EventModel) applyPlatoon(p *EventProbabilities, pitcher profile.PitcherContext, batter profile.BatterContext) {
	if pitcher.Handedness != batter.Handedness {
		p[OutcomeStrikeout] *= m.params.PlatoonKFactor
		p[OutcomeHomeRun] *= m.params.PlatoonHRFactor
	} else {
		p[OutcomeStrikeout] /= m.params.PlatoonKFactor
		p[OutcomeHomeRun] /= m.params.PlatoonHRFactor
	}
}

func (m *EventModel) bound(mult float64) float64 {
	if mult < m.params.MultiplierFloor {
		return m.params.MultiplierFloor
	}
	if mult > m.params.MultiplierCeiling {
		return m.params.MultiplierCeiling
	}
	return mult
}

// Validate rejects parameter sets that cannot yield a proper distribution.
func (p ModelParams) Validate() error {
	if p.MultiplierFloor <= 0 {
		return fmt.Errorf("multiplier floor must be positive")
	}
	if p.MultiplierCeiling < p.MultiplierFloor {
		return fmt.Errorf("multiplier ceiling below floor")
	}
	if p.ParkWeatherCap < p.ParkWeatherFloor {
		return fmt.Errorf("park/weather cap below floor")
	}
	if p.DoublePlayRate < 0 || p.DoublePlayRate > 0.2 {
		return fmt.Errorf("double play rate out of range")
	}
	return nil
}
