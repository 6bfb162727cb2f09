package sim

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixedRNG returns a scripted sequence of values, then repeats the last one.
type fixedRNG struct {
	values []float64
	i      int
}

func (f *fixedRNG) Float64() float64 {
	if f.i >= len(f.values) {
		return f.values[len(f.values)-1]
	}
	v := f.values[f.i]
	f.i++
	return v
}

func TestLeagueBaseRatesAreProper(t *testing.T) {
	p := leagueBaseRates
	require.NoError(t, p.Validate())
}

func TestNormalize(t *testing.T) {
	p := EventProbabilities{0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2, 0.2}
	require.NoError(t, p.Normalize())
	assert.InDelta(t, 1.0, p.Sum(), probabilityTolerance)
	assert.InDelta(t, 1.0/9, p[0], 1e-12)
}

func TestNormalizeZeroMass(t *testing.T) {
	p := EventProbabilities{}
	assert.Error(t, p.Normalize())
}

func TestClampNegatives(t *testing.T) {
	p := EventProbabilities{0.5, -0.1, 0.6}
	clamped := p.ClampNegatives()
	assert.True(t, clamped)
	assert.Zero(t, p[1])

	q := EventProbabilities{0.5, 0.5}
	assert.False(t, q.ClampNegatives())
}

func TestValidate(t *testing.T) {
	good := EventProbabilities{0.5, 0.5}
	assert.NoError(t, good.Validate())

	short := EventProbabilities{0.5, 0.4}
	assert.Error(t, short.Validate())

	negative := EventProbabilities{1.1, -0.1}
	assert.Error(t, negative.Validate())
}

func TestSample(t *testing.T) {
	p := EventProbabilities{}
	p[OutcomeStrikeout] = 0.5
	p[OutcomeWalk] = 0.3
	p[OutcomeHomeRun] = 0.2
	require.NoError(t, p.Validate())

	rng := &fixedRNG{values: []float64{0.0, 0.49, 0.51, 0.79, 0.81, 0.99}}
	assert.Equal(t, OutcomeStrikeout, p.Sample(rng))
	assert.Equal(t, OutcomeStrikeout, p.Sample(rng))
	assert.Equal(t, OutcomeWalk, p.Sample(rng))
	assert.Equal(t, OutcomeWalk, p.Sample(rng))
	assert.Equal(t, OutcomeHomeRun, p.Sample(rng))
	assert.Equal(t, OutcomeHomeRun, p.Sample(rng))
}

func TestSampleFloatingResidue(t *testing.T) {
	// A distribution whose float sum lands a hair under the drawn value must
	// still return a defined outcome.
	p := EventProbabilities{}
	for i := range p {
		p[i] = 1.0 / 9
	}
	rng := &fixedRNG{values: []float64{0.9999999999999999}}
	outcome := p.Sample(rng)
	assert.GreaterOrEqual(t, int(outcome), 0)
	assert.Less(t, int(outcome), NumOutcomes)
}
