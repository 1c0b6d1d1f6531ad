package variate

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
)

// Constant always returns the same value.
type Constant struct {
	value float64
}

// NewConstant creates a source that always yields v.
func NewConstant(v float64) (*Constant, error) {
	if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
		return nil, fmt.Errorf("%w: constant %v must be a finite non-negative number", ErrInvalidDistribution, v)
	}
	return &Constant{value: v}, nil
}

// Next returns the fixed value.
func (c *Constant) Next() float64 {
	return c.value
}

// Sequence replays a fixed list of values, cycling back to the first after
// the last. Used for scripted, fully deterministic runs.
type Sequence struct {
	values []float64
	pos    int
}

// NewSequence creates a source replaying values in order.
func NewSequence(values ...float64) (*Sequence, error) {
	if len(values) == 0 {
		return nil, fmt.Errorf("%w: empty sequence", ErrInvalidDistribution)
	}
	for i, v := range values {
		if v < 0 || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: sequence[%d] = %v must be a finite non-negative number", ErrInvalidDistribution, i, v)
		}
	}
	return &Sequence{values: append([]float64(nil), values...)}, nil
}

// Next returns the next value, wrapping to the start after the last one.
func (s *Sequence) Next() float64 {
	v := s.values[s.pos]
	s.pos = (s.pos + 1) % len(s.values)
	return v
}

// Exponential produces exponentially-distributed durations with the given mean.
type Exponential struct {
	mean float64
	rng  *rand.Rand
}

// NewExponential creates an exponential source drawing from rng.
func NewExponential(mean float64, rng *rand.Rand) (*Exponential, error) {
	if rng == nil {
		return nil, errors.New("exponential source needs a random number generator")
	}
	if mean <= 0 || math.IsNaN(mean) || math.IsInf(mean, 0) {
		return nil, fmt.Errorf("%w: exponential mean %v must be a finite positive number", ErrInvalidDistribution, mean)
	}
	return &Exponential{mean: mean, rng: rng}, nil
}

// Next draws an exponentially distributed duration with the configured mean.
func (e *Exponential) Next() float64 {
	return e.rng.ExpFloat64() * e.mean
}
