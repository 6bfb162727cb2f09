package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Percentiles is the predicted run-total percentile ladder.
type Percentiles struct {
	P5  float64 `json:"p5"`
	P25 float64 `json:"p25"`
	P50 float64 `json:"p50"`
	P75 float64 `json:"p75"`
	P95 float64 `json:"p95"`
}

// SimulationDetails carries metadata about the Monte Carlo sample backing a
// result.
type SimulationDetails struct {
	GamesSimulated int     `json:"games_simulated"`
	MeanRuns       float64 `json:"mean_runs"`
	StdRuns        float64 `json:"std_runs"`
}

// SimulationResult is the single output of a prediction call.
type SimulationResult struct {
	ID               uuid.UUID         `json:"id"`
	PredictedTotal   float64           `json:"predicted_total"`
	MarketLine       float64           `json:"market_line"`
	OverProbability  float64           `json:"over_probability"`
	UnderProbability float64           `json:"under_probability"`
	Percentiles      Percentiles       `json:"percentiles"`
	EdgeVsMarket     float64           `json:"edge_vs_market"`
	Confidence       float64           `json:"confidence"`
	Details          SimulationDetails `json:"simulation_details"`

	// Distribution holds the raw per-simulation run totals. The backtest
	// harness needs it for CRPS and PIT scoring.
	Distribution []int `json:"distribution,omitempty"`

	// Truncation diagnostics. Non-zero counts indicate the safety bounds
	// fired and the sample is a degraded (but still usable) estimate.
	TruncatedHalfInnings int  `json:"truncated_half_innings,omitempty"`
	TruncatedExtras      int  `json:"truncated_extras,omitempty"`
	ClampedDistributions int  `json:"clamped_distributions,omitempty"`
	Partial              bool `json:"partial,omitempty"`

	PredictedAt time.Time `json:"predicted_at"`
}

// PredictedSide returns "over" or "under" according to which side the model
// favours at the market line.
func (r *SimulationResult) PredictedSide() string {
	if r.OverProbability >= r.UnderProbability {
		return "over"
	}
	return "under"
}

// SideProbability returns the probability assigned to the predicted side.
func (r *SimulationResult) SideProbability() float64 {
	if r.OverProbability >= r.UnderProbability {
		return r.OverProbability
	}
	return r.UnderProbability
}

// ToJSON exports the result to JSON.
func (r *SimulationResult) ToJSON() string {
	data, _ := json.Marshal(r)
	return string(data)
}
