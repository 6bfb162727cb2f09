package models

// WindDirection describes the prevailing wind relative to home plate.
type WindDirection string

const (
	WindOut   WindDirection = "out"
	WindIn    WindDirection = "in"
	WindCross WindDirection = "cross"
	WindCalm  WindDirection = "calm"
)

// GameContext carries venue and weather conditions for one simulated game.
// It is read-only for the duration of a prediction.
type GameContext struct {
	HomeTeam      string        `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam      string        `db:"away_team" json:"away_team" validate:"required"`
	Venue         string        `db:"venue" json:"venue"`
	ParkFactor    float64       `db:"park_factor" json:"park_factor" validate:"gte=0"`
	TemperatureF  float64       `db:"temperature_f" json:"temperature_f"`
	WindSpeedMPH  float64       `db:"wind_speed_mph" json:"wind_speed_mph" validate:"gte=0"`
	WindDirection WindDirection `db:"wind_direction" json:"wind_direction"`
}

// NeutralGameContext returns a park-neutral, mild-weather context used when
// venue data is missing. Unknown venues never fail a prediction.
func NeutralGameContext(home, away string) GameContext {
	return GameContext{
		HomeTeam:      home,
		AwayTeam:      away,
		Venue:         "unknown",
		ParkFactor:    1.0,
		TemperatureF:  72,
		WindSpeedMPH:  0,
		WindDirection: WindCalm,
	}
}
