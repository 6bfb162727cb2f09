package models

import "fmt"

// Handedness indicates which side a player throws or bats from.
type Handedness string

const (
	HandLeft  Handedness = "L"
	HandRight Handedness = "R"
)

// Valid reports whether the handedness is one of the known values.
func (h Handedness) Valid() bool {
	return h == HandLeft || h == HandRight
}

// PitcherProfile represents a pitcher's season-level rates as resolved by the
// data layer. Rates are raw (pre-shrinkage); sample size is innings pitched
// converted to batters faced.
type PitcherProfile struct {
	Name       string     `db:"name" json:"name" validate:"required"`
	Team       string     `db:"team" json:"team"`
	ERA        float64    `db:"era" json:"era" validate:"gte=0"`
	WHIP       float64    `db:"whip" json:"whip" validate:"gte=0"`
	KRate      float64    `db:"k_rate" json:"k_rate" validate:"gte=0,lte=1"`
	BBRate     float64    `db:"bb_rate" json:"bb_rate" validate:"gte=0,lte=1"`
	Handedness Handedness `db:"handedness" json:"handedness"`
	SampleSize int        `db:"sample_size" json:"sample_size" validate:"gte=0"`
}

// BatterProfile represents a batter's season-level rates as resolved by the
// data layer. PlateAppearances drives the shrinkage weight.
type BatterProfile struct {
	Name             string     `db:"name" json:"name" validate:"required"`
	Team             string     `db:"team" json:"team"`
	OPS              float64    `db:"ops" json:"ops" validate:"gte=0"`
	ISO              float64    `db:"iso" json:"iso" validate:"gte=0"`
	BABIP            float64    `db:"babip" json:"babip" validate:"gte=0,lte=1"`
	KRate            float64    `db:"k_rate" json:"k_rate" validate:"gte=0,lte=1"`
	BBRate           float64    `db:"bb_rate" json:"bb_rate" validate:"gte=0,lte=1"`
	Handedness       Handedness `db:"handedness" json:"handedness"`
	PlateAppearances int        `db:"plate_appearances" json:"plate_appearances" validate:"gte=0"`
}

// Lineup is a resolved 9-batter batting order for one team. The simulation
// core never synthesizes lineups; the data layer supplies them.
type Lineup struct {
	Team    string          `json:"team"`
	Batters []BatterProfile `json:"batters" validate:"required,len=9"`
}

// Validate checks the lineup carries exactly nine batters.
func (l *Lineup) Validate() error {
	if len(l.Batters) != 9 {
		return fmt.Errorf("%w: got %d batters", ErrInvalidLineup, len(l.Batters))
	}
	return nil
}
