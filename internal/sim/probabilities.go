package sim

import (
	"fmt"
	"math"
)

// probabilityTolerance bounds how far from 1.0 a distribution may drift
// before Validate rejects it.
const probabilityTolerance = 1e-9

// EventProbabilities is a categorical distribution over the nine plate
// appearance outcomes, indexed by Outcome.
type EventProbabilities [NumOutcomes]float64

// Sum returns the total probability mass.
func (p *EventProbabilities) Sum() float64 {
	total := 0.0
	for _, v := range p {
		total += v
	}
	return total
}

// ClampNegatives zeroes any negative entries and reports whether any were
// found. Negative mass indicates an adjustment math error upstream.
func (p *EventProbabilities) ClampNegatives() bool {
	clamped := false
	for i, v := range p {
		if v < 0 {
			p[i] = 0
			clamped = true
		}
	}
	return clamped
}

// Normalize rescales the distribution to sum to exactly 1.0. A zero-mass
// distribution cannot be normalized and is returned as an error.
func (p *EventProbabilities) Normalize() error {
	total := p.Sum()
	if total <= 0 {
		return fmt.Errorf("cannot normalize zero-mass distribution")
	}
	for i := range p {
		p[i] /= total
	}
	return nil
}

// Validate checks the distribution is a proper categorical: every entry
// non-negative and the mass summing to 1 within tolerance.
func (p *EventProbabilities) Validate() error {
	for i, v := range p {
		if v < 0 {
			return fmt.Errorf("probability for %s is negative: %f", Outcome(i), v)
		}
	}
	if diff := math.Abs(p.Sum() - 1.0); diff > probabilityTolerance {
		return fmt.Errorf("probabilities sum to %f, want 1.0", p.Sum())
	}
	return nil
}

// Sample draws one outcome from the distribution using the supplied RNG.
// The distribution must already be normalized.
func (p *EventProbabilities) Sample(rng RNG) Outcome {
	u := rng.Float64()
	cum := 0.0
	for i, v := range p {
		cum += v
		if u < cum {
			return Outcome(i)
		}
	}
	// Floating residue can leave u just above the final cumulative sum.
	return Outcome(NumOutcomes - 1)
}
