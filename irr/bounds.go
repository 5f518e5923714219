package irr

import (
	"fmt"
	"math"

	"github.com/meenmo/timevalue/cashflow"
	"github.com/meenmo/timevalue/presentvalue"
	"github.com/meenmo/timevalue/rate"
)

// DefaultSearchLimit is the number of expansion steps FindBracket takes when
// called through SolveFromGuess without WithSearchLimit.
const DefaultSearchLimit = 64

// FindBracket looks for a bracket around a root of the series NPV, starting
// at guess and stepping outward.
//
// Each step moves the current rate one notch left or right, toward the
// neighbour with the smaller |NPV|. Rightward steps double a positive rate
// (0 goes to 1, a negative rate to its absolute value). Leftward steps go
// halfway to -1, so every candidate remains a valid rate. The first pair of
// adjacent rates whose NPVs straddle zero is returned; a guess whose NPV is
// exactly zero yields the degenerate bracket {guess, guess}.
func FindBracket(series cashflow.Series, guess float64, limit int) (Bracket, error) {
	if limit <= 0 {
		return Bracket{}, fmt.Errorf("%w: search limit must be positive, got %d", ErrInvalidConfig, limit)
	}
	if err := rate.Validate(guess); err != nil {
		return Bracket{}, err
	}

	r := guess
	v, err := presentvalue.NPV(series, r)
	if err != nil {
		return Bracket{}, err
	}
	if v == 0 {
		return Bracket{Low: r, High: r}, nil
	}

	left := shiftRate(r, true)
	vl, err := presentvalue.NPV(series, left)
	if err != nil {
		return Bracket{}, err
	}
	if straddles(v, vl) {
		return Bracket{Low: left, High: r}, nil
	}

	right := shiftRate(r, false)
	vr, err := presentvalue.NPV(series, right)
	if err != nil {
		return Bracket{}, err
	}
	if straddles(v, vr) {
		return Bracket{Low: r, High: right}, nil
	}

	for count := 1; count < limit; count++ {
		goLeft := (v < 0 && vr < vl) || (v > 0 && vl < vr)

		if goLeft {
			right, vr = r, v
			r, v = left, vl
			left = shiftRate(left, true)
			if vl, err = presentvalue.NPV(series, left); err != nil {
				return Bracket{}, err
			}
		} else {
			left, vl = r, v
			r, v = right, vr
			right = shiftRate(right, false)
			if vr, err = presentvalue.NPV(series, right); err != nil {
				return Bracket{}, err
			}
		}

		if v == 0 {
			return Bracket{Low: r, High: r}, nil
		}
		if straddles(v, vl) {
			return Bracket{Low: left, High: r}, nil
		}
		if straddles(v, vr) {
			return Bracket{Low: r, High: right}, nil
		}
	}

	return Bracket{}, fmt.Errorf("%w: no sign change within %d steps of guess %g (reached %s)",
		ErrNoRootBracketed, limit, guess, Bracket{Low: left, High: right})
}

func shiftRate(r float64, left bool) float64 {
	if left {
		return (r - 1) / 2
	}
	switch {
	case r > 0:
		return r * 2
	case r < 0:
		return -r
	}
	return 1
}

func straddles(a, b float64) bool {
	if math.IsNaN(a) || math.IsNaN(b) {
		return false
	}
	return sign(a)*sign(b) <= 0
}
