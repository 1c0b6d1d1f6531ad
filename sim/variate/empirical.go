// Package variate provides the VariateSource implementations consumed by the
// simulation core: seeded, infinite, lazily generated duration streams.
package variate

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// ErrInvalidDistribution reports a distribution that cannot be sampled.
var ErrInvalidDistribution = errors.New("invalid distribution")

// probabilityTolerance bounds how far the probabilities may sum from 1.0.
const probabilityTolerance = 1e-9

// Outcome is one row of an empirical distribution table.
type Outcome struct {
	Value float64 `yaml:"value"`
	Prob  float64 `yaml:"prob"`
}

// Empirical samples from a discrete probability table by inverse transform.
// Table order defines the cumulative-probability breakpoints.
type Empirical struct {
	values []float64
	cdf    []float64
	rng    *rand.Rand
}

// NewEmpirical validates the table and builds a source drawing from rng.
// The table must be non-empty with non-negative values and probabilities
// that sum to 1.0.
func NewEmpirical(table []Outcome, rng *rand.Rand) (*Empirical, error) {
	if rng == nil {
		return nil, errors.New("empirical source needs a random number generator")
	}
	if len(table) == 0 {
		return nil, fmt.Errorf("%w: empty table", ErrInvalidDistribution)
	}
	values := make([]float64, 0, len(table))
	cdf := make([]float64, 0, len(table))
	cumulative := 0.0
	for i, o := range table {
		if o.Value < 0 || math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
			return nil, fmt.Errorf("%w: outcome[%d] value %v must be a finite non-negative number", ErrInvalidDistribution, i, o.Value)
		}
		if o.Prob < 0 || math.IsNaN(o.Prob) {
			return nil, fmt.Errorf("%w: outcome[%d] probability %v must be >= 0", ErrInvalidDistribution, i, o.Prob)
		}
		cumulative += o.Prob
		values = append(values, o.Value)
		cdf = append(cdf, cumulative)
	}
	if math.Abs(cumulative-1.0) > probabilityTolerance {
		return nil, fmt.Errorf("%w: probabilities sum to %v, want 1.0", ErrInvalidDistribution, cumulative)
	}
	return &Empirical{values: values, cdf: cdf, rng: rng}, nil
}

// Next draws u in [0,1) and returns the first outcome whose cumulative
// probability exceeds u. Rounding residue falls on the last outcome.
func (e *Empirical) Next() float64 {
	u := e.rng.Float64()
	for i, p := range e.cdf {
		if u < p {
			return e.values[i]
		}
	}
	return e.values[len(e.values)-1]
}

// Mean returns the expected value of the table.
func (e *Empirical) Mean() float64 {
	mean, prev := 0.0, 0.0
	for i, p := range e.cdf {
		mean += e.values[i] * (p - prev)
		prev = p
	}
	return mean
}
