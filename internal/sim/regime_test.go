package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRegime(t *testing.T) {
	tests := []struct {
		name         string
		battersFaced int
		inning       int
		want         PitcherRegime
	}{
		{"first batter of the game", 0, 1, RegimeStarterTTO1},
		{"end of first trip", 8, 3, RegimeStarterTTO1},
		{"second time through", 9, 3, RegimeStarterTTO2},
		{"third time through", 18, 6, RegimeStarterTTO3},
		{"pitch limit forces bullpen early", 26, 5, RegimeLongRelief},
		{"pitch limit in middle innings", 27, 6, RegimeMidRelief},
		{"mid relief seventh", 30, 7, RegimeMidRelief},
		{"late relief eighth", 30, 8, RegimeLateRelief},
		{"high leverage ninth", 30, 9, RegimeHighLeverage},
		{"high leverage extras", 40, 12, RegimeHighLeverage},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DeriveRegime(tt.battersFaced, tt.inning))
		})
	}
}

func TestRegimeAdjustmentFatigue(t *testing.T) {
	// Third time through the order must be easier on hitters than the first:
	// fewer strikeouts, more walks and home runs.
	first := RegimeStarterTTO1.adjustment()
	third := RegimeStarterTTO3.adjustment()
	assert.Greater(t, first.k, third.k)
	assert.Less(t, first.bb, third.bb)
	assert.Less(t, first.hr, third.hr)
}

func TestRegimeString(t *testing.T) {
	assert.Equal(t, "starter_tto1", RegimeStarterTTO1.String())
	assert.Equal(t, "high_leverage", RegimeHighLeverage.String())
	assert.Equal(t, "unknown", PitcherRegime(99).String())
}
