// Package rate holds the per-period rate model shared by the discounting and
// compounding engines.
//
// Rates are decimals (0.05 means 5%). A rate of -1 or lower makes
// (1+r)^n zero or negative, so discounting by it is undefined.
package rate

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidRate is returned when a discount or compounding rate is <= -1
	// (or NaN).
	ErrInvalidRate = errors.New("invalid rate")

	// ErrEmptyRateSequence is returned when a compounding sequence has no
	// periods.
	ErrEmptyRateSequence = errors.New("empty rate sequence")
)

// Sequence is an ordered list of per-period rates. Entry i applies to
// period i+1.
type Sequence []float64

// Constant returns a Sequence of n copies of r.
func Constant(r float64, n int) Sequence {
	if n <= 0 {
		return Sequence{}
	}
	seq := make(Sequence, n)
	for i := range seq {
		seq[i] = r
	}
	return seq
}

// Validate reports ErrInvalidRate when r cannot be used for discounting.
func Validate(r float64) error {
	if math.IsNaN(r) || r <= -1 {
		return fmt.Errorf("%w: %g (must be > -1)", ErrInvalidRate, r)
	}
	return nil
}

// Validate checks every rate in the sequence and rejects an empty sequence.
func (s Sequence) Validate() error {
	if len(s) == 0 {
		return ErrEmptyRateSequence
	}
	for i, r := range s {
		if err := Validate(r); err != nil {
			return fmt.Errorf("period %d: %w", i+1, err)
		}
	}
	return nil
}

// Periods is the number of compounding periods the sequence covers.
func (s Sequence) Periods() int {
	return len(s)
}
