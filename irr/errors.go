package irr

import (
	"errors"
	"fmt"
)

var (
	// ErrNoRootBracketed is returned when the NPV does not change sign across
	// the search interval, including series whose amounts all share a sign.
	ErrNoRootBracketed = errors.New("no root bracketed")

	// ErrDidNotConverge is returned when the iteration budget runs out.
	ErrDidNotConverge = errors.New("did not converge")

	// ErrInvalidConfig is returned for an unusable tolerance, iteration limit
	// or bracket.
	ErrInvalidConfig = errors.New("invalid solver config")
)

// ConvergenceError carries the solver state at the point the iteration
// budget ran out. It matches ErrDidNotConverge under errors.Is.
type ConvergenceError struct {
	Iterations int
	// Estimate is the last midpoint evaluated.
	Estimate float64
	// NPV is the NPV at Estimate.
	NPV     float64
	Bracket Bracket
}

func (e *ConvergenceError) Error() string {
	return fmt.Sprintf("%s after %d iterations: last estimate %g (npv %g), bracket %s",
		ErrDidNotConverge, e.Iterations, e.Estimate, e.NPV, e.Bracket)
}

func (e *ConvergenceError) Unwrap() error {
	return ErrDidNotConverge
}
