// Package profile holds the read-only player/team profile store and the
// hierarchical shrinkage that turns raw season rates into simulation-ready
// contexts.
package profile

import "github.com/yourusername/runline/internal/models"

// LeaguePriors are league-wide rate constants used as the shrinkage target
// when an entity's own sample is thin. Calibrated so a game between two
// league-average sides lands around 8-9 total runs.
type LeaguePriors struct {
	KRate  float64
	BBRate float64
	OPS    float64
	ISO    float64
	BABIP  float64
	ERA    float64
	WHIP   float64
}

// DefaultLeaguePriors returns the league-average constants.
func DefaultLeaguePriors() LeaguePriors {
	return LeaguePriors{
		KRate:  0.220,
		BBRate: 0.085,
		OPS:    0.715,
		ISO:    0.160,
		BABIP:  0.295,
		ERA:    4.10,
		WHIP:   1.28,
	}
}

// NeutralBatter returns a league-average batter profile, used when the data
// layer knows nothing about an entity. Zero plate appearances means the
// shrinkage collapses fully onto the prior anyway.
func NeutralBatter(name, team string) models.BatterProfile {
	p := DefaultLeaguePriors()
	return models.BatterProfile{
		Name:       name,
		Team:       team,
		OPS:        p.OPS,
		ISO:        p.ISO,
		BABIP:      p.BABIP,
		KRate:      p.KRate,
		BBRate:     p.BBRate,
		Handedness: models.HandRight,
	}
}

// NeutralPitcher returns a league-average pitcher profile.
func NeutralPitcher(name, team string) models.PitcherProfile {
	p := DefaultLeaguePriors()
	return models.PitcherProfile{
		Name:       name,
		Team:       team,
		ERA:        p.ERA,
		WHIP:       p.WHIP,
		KRate:      p.KRate,
		BBRate:     p.BBRate,
		Handedness: models.HandRight,
	}
}

// NeutralLineup builds a nine-slot league-average lineup for a team. The
// simulator requires a resolved lineup; this is the fallback when the store
// has none.
func NeutralLineup(team string) models.Lineup {
	batters := make([]models.BatterProfile, 9)
	for i := range batters {
		batters[i] = NeutralBatter(team+"_unknown", team)
	}
	return models.Lineup{Team: team, Batters: batters}
}
