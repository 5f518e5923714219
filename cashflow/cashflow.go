// Package cashflow defines integer-period cash flows and the series the
// valuation engines operate on.
package cashflow

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrEmptySeries is returned when a series has no entries.
	ErrEmptySeries = errors.New("empty cash flow series")

	// ErrInvalidInput is returned when a series cannot be solved for a rate:
	// fewer than two entries or a non-finite amount.
	ErrInvalidInput = errors.New("invalid cash flow input")

	// ErrNegativePeriod is returned when a period index is below zero.
	ErrNegativePeriod = errors.New("negative period")
)

// CashFlow is a single signed amount paid or received at an integer period.
// Period 0 is the present.
type CashFlow struct {
	Period int     `json:"period" yaml:"period"`
	Amount float64 `json:"amount" yaml:"amount"`
}

// Series is an ordered list of cash flows. Insertion order is period order;
// the series is never re-sorted.
type Series []CashFlow

// FromAmounts builds a Series where amounts[i] falls at period i.
func FromAmounts(amounts []float64) Series {
	s := make(Series, len(amounts))
	for i, a := range amounts {
		s[i] = CashFlow{Period: i, Amount: a}
	}
	return s
}

// CheckPeriods rejects negative period indices.
func (s Series) CheckPeriods() error {
	for i, cf := range s {
		if cf.Period < 0 {
			return fmt.Errorf("cash flow %d: %w: %d", i, ErrNegativePeriod, cf.Period)
		}
	}
	return nil
}

// Validate checks the shape required by rate solving: at least two entries,
// non-negative periods and finite amounts.
func (s Series) Validate() error {
	if len(s) < 2 {
		return fmt.Errorf("%w: need at least 2 cash flows, got %d", ErrInvalidInput, len(s))
	}
	if err := s.CheckPeriods(); err != nil {
		return err
	}
	for i, cf := range s {
		if math.IsNaN(cf.Amount) || math.IsInf(cf.Amount, 0) {
			return fmt.Errorf("%w: cash flow %d has non-finite amount", ErrInvalidInput, i)
		}
	}
	return nil
}

// HasSignChange reports whether the series holds both a non-positive and a
// non-negative amount. Without one no real rate can zero the NPV.
func (s Series) HasSignChange() bool {
	var nonPos, nonNeg bool
	for _, cf := range s {
		if cf.Amount <= 0 {
			nonPos = true
		}
		if cf.Amount >= 0 {
			nonNeg = true
		}
	}
	return nonPos && nonNeg
}
