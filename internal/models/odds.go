package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// StandardVigOdds is the American price assumed for over/under markets when
// the caller does not supply one (-110 both sides).
const StandardVigOdds = -110

// ImpliedProbability converts American odds to the probability implied by the
// price. Decimal arithmetic avoids drift in the divisions.
func ImpliedProbability(americanOdds int) (float64, error) {
	if americanOdds == 0 {
		return 0, fmt.Errorf("american odds cannot be zero")
	}
	odds := decimal.NewFromInt(int64(americanOdds))
	hundred := decimal.NewFromInt(100)

	var implied decimal.Decimal
	if americanOdds > 0 {
		// p = 100 / (odds + 100)
		implied = hundred.Div(odds.Add(hundred))
	} else {
		// p = -odds / (-odds + 100)
		neg := odds.Neg()
		implied = neg.Div(neg.Add(hundred))
	}
	f, _ := implied.Round(6).Float64()
	return f, nil
}

// MarketImpliedProbability returns the break-even probability at standard
// -110 juice (~52.38%).
func MarketImpliedProbability() float64 {
	p, _ := ImpliedProbability(StandardVigOdds)
	return p
}

// FlatStakeProfit returns the profit on a 1-unit flat stake at the given
// American odds when the bet wins, or -1 when it loses.
func FlatStakeProfit(americanOdds int, won bool) float64 {
	if !won {
		return -1
	}
	odds := decimal.NewFromInt(int64(americanOdds))
	hundred := decimal.NewFromInt(100)
	var profit decimal.Decimal
	if americanOdds > 0 {
		profit = odds.Div(hundred)
	} else {
		profit = hundred.Div(odds.Neg())
	}
	f, _ := profit.Round(6).Float64()
	return f
}
