package profile

import "github.com/yourusername/runline/internal/models"

// Shrinkage stabilization constants: the sample size at which an entity's own
// rate carries half the weight. Batters in plate appearances, pitchers in
// batters faced.
const (
	batterStabilization  = 170.0
	pitcherStabilization = 220.0

	// teamWeight splits the non-individual mass between the team rate and
	// the league prior.
	teamWeight = 0.6
)

// TeamRates are aggregate rates for one team, the middle level of the
// shrinkage hierarchy.
type TeamRates struct {
	KRate  float64
	BBRate float64
	OPS    float64
	ISO    float64
	BABIP  float64
	ERA    float64
	WHIP   float64
}

// TeamRatesFromLineup aggregates a lineup into team-level batting rates.
func TeamRatesFromLineup(lineup models.Lineup, priors LeaguePriors) TeamRates {
	rates := TeamRates{ERA: priors.ERA, WHIP: priors.WHIP}
	if len(lineup.Batters) == 0 {
		rates.KRate = priors.KRate
		rates.BBRate = priors.BBRate
		rates.OPS = priors.OPS
		rates.ISO = priors.ISO
		rates.BABIP = priors.BABIP
		return rates
	}
	n := float64(len(lineup.Batters))
	for _, b := range lineup.Batters {
		rates.KRate += b.KRate / n
		rates.BBRate += b.BBRate / n
		rates.OPS += b.OPS / n
		rates.ISO += b.ISO / n
		rates.BABIP += b.BABIP / n
	}
	return rates
}

// ShrinkRate blends an entity's own observed rate toward its team rate and
// the league prior. The own-rate weight n/(n+k) grows monotonically with
// sample size and approaches 1 asymptotically, so small-sample entities
// cannot produce extreme event probabilities.
func ShrinkRate(own, team, league float64, sampleSize int, stabilization float64) float64 {
	w := float64(sampleSize) / (float64(sampleSize) + stabilization)
	hierarchical := teamWeight*team + (1-teamWeight)*league
	return w*own + (1-w)*hierarchical
}

// BatterContext is a batter's shrinkage-adjusted rates, ready for the event
// model. One per lineup slot.
type BatterContext struct {
	Name             string
	OPS              float64
	ISO              float64
	BABIP            float64
	KRate            float64
	BBRate           float64
	Handedness       models.Handedness
	PlateAppearances int
}

// PitcherContext is a pitcher's shrinkage-adjusted rates. The regime is
// attached per half-inning by the simulator, not here.
type PitcherContext struct {
	Name       string
	ERA        float64
	WHIP       float64
	KRate      float64
	BBRate     float64
	Handedness models.Handedness
}

// BuildBatterContext shrinks a raw batter profile against team and league
// levels.
func BuildBatterContext(b models.BatterProfile, team TeamRates, priors LeaguePriors) BatterContext {
	n := b.PlateAppearances
	hand := b.Handedness
	if !hand.Valid() {
		hand = models.HandRight
	}
	return BatterContext{
		Name:             b.Name,
		OPS:              ShrinkRate(b.OPS, team.OPS, priors.OPS, n, batterStabilization),
		ISO:              ShrinkRate(b.ISO, team.ISO, priors.ISO, n, batterStabilization),
		BABIP:            ShrinkRate(b.BABIP, team.BABIP, priors.BABIP, n, batterStabilization),
		KRate:            ShrinkRate(b.KRate, team.KRate, priors.KRate, n, batterStabilization),
		BBRate:           ShrinkRate(b.BBRate, team.BBRate, priors.BBRate, n, batterStabilization),
		Handedness:       hand,
		PlateAppearances: n,
	}
}

// BuildPitcherContext shrinks a raw pitcher profile. Pitching has no lineup
// to aggregate, so the team level falls back to the league prior.
func BuildPitcherContext(p models.PitcherProfile, priors LeaguePriors) PitcherContext {
	n := p.SampleSize
	hand := p.Handedness
	if !hand.Valid() {
		hand = models.HandRight
	}
	return PitcherContext{
		Name:       p.Name,
		ERA:        ShrinkRate(p.ERA, priors.ERA, priors.ERA, n, pitcherStabilization),
		WHIP:       ShrinkRate(p.WHIP, priors.WHIP, priors.WHIP, n, pitcherStabilization),
		KRate:      ShrinkRate(p.KRate, priors.KRate, priors.KRate, n, pitcherStabilization),
		BBRate:     ShrinkRate(p.BBRate, priors.BBRate, priors.BBRate, n, pitcherStabilization),
		Handedness: hand,
	}
}
