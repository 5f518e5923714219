package irr

import (
	"fmt"
	"math"
)

// Bracket is a search interval of candidate rates.
type Bracket struct {
	Low  float64 `json:"low" yaml:"low"`
	High float64 `json:"high" yaml:"high"`
}

// Width returns High - Low.
func (b Bracket) Width() float64 {
	return b.High - b.Low
}

// Contains reports whether r lies in [Low, High].
func (b Bracket) Contains(r float64) bool {
	return b.Low <= r && r <= b.High
}

// Mid returns the bisection midpoint.
func (b Bracket) Mid() float64 {
	return (b.Low + b.High) / 2
}

func (b Bracket) String() string {
	return fmt.Sprintf("[%g, %g]", b.Low, b.High)
}

// Config holds the bisection convergence parameters.
type Config struct {
	// Tolerance is both the absolute NPV accepted as zero and the bracket
	// half-width at which the midpoint is accepted.
	Tolerance float64

	// MaxIterations bounds the number of midpoints evaluated per solve.
	MaxIterations int

	// Bracket is the initial search interval. Both NPV endpoints must
	// straddle zero.
	Bracket Bracket
}

// DefaultConfig spans from just above -100% to +1000%.
var DefaultConfig = Config{
	Tolerance:     1e-7,
	MaxIterations: 100,
	Bracket:       Bracket{Low: -0.999999, High: 10.0},
}

// WithDefaults fills zero-valued fields from DefaultConfig. A bracket is
// taken as a unit: it is replaced only when both endpoints are zero.
func (c Config) WithDefaults() Config {
	if c.Tolerance == 0 {
		c.Tolerance = DefaultConfig.Tolerance
	}
	if c.MaxIterations == 0 {
		c.MaxIterations = DefaultConfig.MaxIterations
	}
	if c.Bracket == (Bracket{}) {
		c.Bracket = DefaultConfig.Bracket
	}
	return c
}

// Validate rejects configurations the solver cannot run with.
func (c Config) Validate() error {
	if !(c.Tolerance > 0) || math.IsInf(c.Tolerance, 0) {
		return fmt.Errorf("%w: tolerance must be positive and finite, got %g", ErrInvalidConfig, c.Tolerance)
	}
	if c.MaxIterations <= 0 {
		return fmt.Errorf("%w: max iterations must be positive, got %d", ErrInvalidConfig, c.MaxIterations)
	}
	if isNonFinite(c.Bracket.Low) || isNonFinite(c.Bracket.High) {
		return fmt.Errorf("%w: bracket %s must be finite", ErrInvalidConfig, c.Bracket)
	}
	if !(c.Bracket.Low < c.Bracket.High) {
		return fmt.Errorf("%w: bracket %s must have low < high", ErrInvalidConfig, c.Bracket)
	}
	return nil
}

func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}
