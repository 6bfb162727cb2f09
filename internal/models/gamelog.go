package models

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// GameLog is one historical game with a known final score, as supplied by the
// external game-log source. It is the ground truth consumed by the backtest
// harness.
type GameLog struct {
	ID          uuid.UUID `db:"id" json:"id"`
	GameDate    time.Time `db:"game_date" json:"game_date" validate:"required"`
	HomeTeam    string    `db:"home_team" json:"home_team" validate:"required"`
	AwayTeam    string    `db:"away_team" json:"away_team" validate:"required"`
	Venue       string    `db:"venue" json:"venue"`
	HomeScore   int       `db:"home_score" json:"home_score" validate:"gte=0"`
	AwayScore   int       `db:"away_score" json:"away_score" validate:"gte=0"`
	ClosingLine float64   `db:"closing_line" json:"closing_line" validate:"gte=0"`

	ParkFactor    float64       `db:"park_factor" json:"park_factor"`
	TemperatureF  float64       `db:"temperature_f" json:"temperature_f"`
	WindSpeedMPH  float64       `db:"wind_speed_mph" json:"wind_speed_mph"`
	WindDirection WindDirection `db:"wind_direction" json:"wind_direction"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// ActualTotal returns the combined final score.
func (g *GameLog) ActualTotal() int {
	return g.HomeScore + g.AwayScore
}

// Context builds a GameContext from the recorded conditions, falling back to
// neutral values where fields are missing.
func (g *GameLog) Context() GameContext {
	ctx := NeutralGameContext(g.HomeTeam, g.AwayTeam)
	if g.Venue != "" {
		ctx.Venue = g.Venue
	}
	if g.ParkFactor > 0 {
		ctx.ParkFactor = g.ParkFactor
	}
	if g.TemperatureF != 0 {
		ctx.TemperatureF = g.TemperatureF
	}
	if g.WindSpeedMPH > 0 {
		ctx.WindSpeedMPH = g.WindSpeedMPH
	}
	if g.WindDirection != "" {
		ctx.WindDirection = g.WindDirection
	}
	return ctx
}

// Validate checks the record is complete enough to score a prediction
// against. Incomplete records are skipped by the harness, not fatal.
func (g *GameLog) Validate() error {
	if g.HomeTeam == "" || g.AwayTeam == "" {
		return fmt.Errorf("%w: missing team", ErrMalformedGameLog)
	}
	if g.HomeScore < 0 || g.AwayScore < 0 {
		return fmt.Errorf("%w: negative score", ErrMalformedGameLog)
	}
	if g.ClosingLine <= 0 {
		return fmt.Errorf("%w: missing closing line", ErrMalformedGameLog)
	}
	return nil
}
