// Package futurevalue compounds a present amount forward through per-period
// rates.
package futurevalue

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/timevalue/rate"
)

// FromRates returns pv * (1+r1) * (1+r2) * ... with rates[0] applied to
// period 1, rates[1] to period 2 and so on.
//
// An empty sequence is rejected with rate.ErrEmptyRateSequence rather than
// returning pv unchanged.
func FromRates(pv float64, rates rate.Sequence) (float64, error) {
	if err := rates.Validate(); err != nil {
		return 0, err
	}

	growth := make([]float64, len(rates))
	for i, r := range rates {
		growth[i] = 1 + r
	}
	return pv * floats.Prod(growth), nil
}

// FromRate compounds pv at a constant rate for the given number of periods.
func FromRate(pv, r float64, periods int) (float64, error) {
	if periods < 0 {
		return 0, fmt.Errorf("futurevalue: periods must be non-negative, got %d", periods)
	}
	return FromRates(pv, rate.Constant(r, periods))
}
