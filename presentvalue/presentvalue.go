// Package presentvalue discounts integer-period cash flows back to period 0.
package presentvalue

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/meenmo/timevalue/cashflow"
	"github.com/meenmo/timevalue/rate"
)

// DiscountFactor returns 1/(1+r)^periods.
func DiscountFactor(r float64, periods int) (float64, error) {
	if err := rate.Validate(r); err != nil {
		return 0, err
	}
	if periods < 0 {
		return 0, fmt.Errorf("%w: %d", cashflow.ErrNegativePeriod, periods)
	}
	return math.Pow(1+r, -float64(periods)), nil
}

// Single returns amount / (1+r)^periods.
//
// A zero amount is worth zero at any rate, including rates close enough to
// -1 that the discount factor overflows.
func Single(amount, r float64, periods int) (float64, error) {
	df, err := DiscountFactor(r, periods)
	if err != nil {
		return 0, err
	}
	if amount == 0 {
		return 0, nil
	}
	return amount * df, nil
}

// NPV returns the sum of every cash flow in the series discounted at r.
func NPV(series cashflow.Series, r float64) (float64, error) {
	if len(series) == 0 {
		return 0, cashflow.ErrEmptySeries
	}
	if err := rate.Validate(r); err != nil {
		return 0, err
	}

	pvs := make([]float64, len(series))
	for i, cf := range series {
		pv, err := Single(cf.Amount, r, cf.Period)
		if err != nil {
			return 0, fmt.Errorf("cash flow %d: %w", i, err)
		}
		pvs[i] = pv
	}
	return floats.Sum(pvs), nil
}
