// Package irr solves for the internal rate of return of a cash flow series:
// the discount rate at which its NPV is zero.
//
// The solver is plain bisection on a bracket whose endpoint NPVs have
// opposite signs. The bracket width halves on every iteration, so the number
// of iterations needed for a given tolerance is fixed by the initial width
// and identical inputs always produce identical results.
package irr

import (
	"fmt"
	"math"

	"github.com/rs/zerolog"

	"github.com/meenmo/timevalue/cashflow"
	"github.com/meenmo/timevalue/presentvalue"
)

// Result is a converged IRR together with the bracket it was found in.
type Result struct {
	Rate float64 `json:"rate"`
	// NPV is the NPV at Rate; within tolerance of zero unless the bracket
	// collapsed first.
	NPV        float64 `json:"npv"`
	Iterations int     `json:"iterations"`
	// Bracket is the interval that held Rate when the solve stopped.
	Bracket Bracket `json:"bracket"`
	NPVLow  float64 `json:"npv_low"`
	NPVHigh float64 `json:"npv_high"`
}

// Step describes one bisection iteration.
type Step struct {
	Iteration int
	// Bracket is the interval being halved; Mid is its midpoint.
	Bracket Bracket
	Mid     float64
	NPVMid  float64
}

// Option configures a Solver.
type Option func(*Solver)

// WithLogger routes solver diagnostics to l. Iterations are logged at trace
// level, validation and outcome at debug.
func WithLogger(l zerolog.Logger) Option {
	return func(s *Solver) {
		s.log = l
	}
}

// WithObserver registers fn to be called synchronously after every midpoint
// evaluation.
func WithObserver(fn func(Step)) Option {
	return func(s *Solver) {
		s.observe = fn
	}
}

// WithSearchLimit sets the number of expansion steps SolveFromGuess may take
// while looking for a bracket.
func WithSearchLimit(n int) Option {
	return func(s *Solver) {
		s.searchLimit = n
	}
}

// Solver runs bisection with a fixed Config. It keeps no per-call state and
// is safe for concurrent use as long as the observer is.
type Solver struct {
	cfg         Config
	searchLimit int
	log         zerolog.Logger
	observe     func(Step)
}

// NewSolver returns a Solver for cfg. The config is validated on every solve,
// not here.
func NewSolver(cfg Config, opts ...Option) *Solver {
	s := &Solver{
		cfg:         cfg,
		searchLimit: DefaultSearchLimit,
		log:         zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Compute solves series with cfg and no logging. Zero-valued fields of cfg
// take their DefaultConfig values, so Config{} means the defaults.
func Compute(series cashflow.Series, cfg Config) (Result, error) {
	return NewSolver(cfg.WithDefaults()).Solve(series)
}

// Solve finds the IRR of series inside the configured bracket.
func (s *Solver) Solve(series cashflow.Series) (Result, error) {
	return s.bisect(series, s.cfg)
}

// SolveFromGuess searches outward from guess for a bracket (see FindBracket)
// and bisects inside it. The configured bracket is ignored.
func (s *Solver) SolveFromGuess(series cashflow.Series, guess float64) (Result, error) {
	if err := validateSeries(series); err != nil {
		return Result{}, err
	}

	b, err := FindBracket(series, guess, s.searchLimit)
	if err != nil {
		return Result{}, err
	}
	s.log.Debug().
		Float64("guess", guess).
		Stringer("bracket", b).
		Msg("bracket found")

	if b.Low == b.High {
		npv, err := presentvalue.NPV(series, b.Low)
		if err != nil {
			return Result{}, err
		}
		return Result{Rate: b.Low, NPV: npv, Bracket: b, NPVLow: npv, NPVHigh: npv}, nil
	}

	cfg := s.cfg
	cfg.Bracket = b
	return s.bisect(series, cfg)
}

func validateSeries(series cashflow.Series) error {
	if err := series.Validate(); err != nil {
		return err
	}
	if !series.HasSignChange() {
		return fmt.Errorf("%w: all cash flows share the same sign", ErrNoRootBracketed)
	}
	return nil
}

func (s *Solver) bisect(series cashflow.Series, cfg Config) (Result, error) {
	if err := cfg.Validate(); err != nil {
		return Result{}, err
	}
	if err := validateSeries(series); err != nil {
		return Result{}, err
	}

	tol := cfg.Tolerance
	low, high := cfg.Bracket.Low, cfg.Bracket.High

	low, npvLow, err := s.settleEndpoint(series, low, high)
	if err != nil {
		return Result{}, fmt.Errorf("npv at bracket low: %w", err)
	}
	high, npvHigh, err := s.settleEndpoint(series, high, low)
	if err != nil {
		return Result{}, fmt.Errorf("npv at bracket high: %w", err)
	}

	s.log.Debug().
		Float64("low", low).
		Float64("high", high).
		Float64("npv_low", npvLow).
		Float64("npv_high", npvHigh).
		Float64("tolerance", tol).
		Int("max_iterations", cfg.MaxIterations).
		Msg("bisection start")

	// An endpoint that already prices to zero is the answer.
	start := Bracket{Low: low, High: high}
	if math.Abs(npvLow) <= tol {
		return Result{Rate: low, NPV: npvLow, Bracket: start, NPVLow: npvLow, NPVHigh: npvHigh}, nil
	}
	if math.Abs(npvHigh) <= tol {
		return Result{Rate: high, NPV: npvHigh, Bracket: start, NPVLow: npvLow, NPVHigh: npvHigh}, nil
	}
	if math.IsNaN(npvLow) || math.IsNaN(npvHigh) {
		return Result{}, fmt.Errorf("%w: npv is undefined at the bracket ends (npv(%g)=%g, npv(%g)=%g)",
			ErrNoRootBracketed, low, npvLow, high, npvHigh)
	}
	if sign(npvLow) == sign(npvHigh) {
		return Result{}, fmt.Errorf("%w: npv(%g)=%g and npv(%g)=%g have the same sign",
			ErrNoRootBracketed, low, npvLow, high, npvHigh)
	}

	var mid, npvMid float64
	for k := 1; k <= cfg.MaxIterations; k++ {
		b := Bracket{Low: low, High: high}
		mid = b.Mid()
		npvMid, err = presentvalue.NPV(series, mid)
		if err != nil {
			return Result{}, fmt.Errorf("npv at midpoint %g: %w", mid, err)
		}

		if s.observe != nil {
			s.observe(Step{Iteration: k, Bracket: b, Mid: mid, NPVMid: npvMid})
		}
		s.log.Trace().
			Int("iteration", k).
			Float64("low", low).
			Float64("high", high).
			Float64("mid", mid).
			Float64("npv_mid", npvMid).
			Msg("bisection step")

		if math.Abs(npvMid) <= tol || b.Width()/2 <= tol {
			s.log.Debug().
				Int("iterations", k).
				Float64("rate", mid).
				Float64("npv", npvMid).
				Msg("bisection converged")
			return Result{
				Rate:       mid,
				NPV:        npvMid,
				Iterations: k,
				Bracket:    b,
				NPVLow:     npvLow,
				NPVHigh:    npvHigh,
			}, nil
		}

		if sign(npvMid) == sign(npvLow) {
			low, npvLow = mid, npvMid
		} else {
			high, npvHigh = mid, npvMid
		}
	}

	cerr := &ConvergenceError{
		Iterations: cfg.MaxIterations,
		Estimate:   mid,
		NPV:        npvMid,
		Bracket:    Bracket{Low: low, High: high},
	}
	s.log.Debug().Err(cerr).Msg("bisection exhausted")
	return Result{}, cerr
}

// maxEndpointSteps bounds how far settleEndpoint moves a bracket end.
const maxEndpointSteps = 64

// settleEndpoint evaluates the NPV at r and, while it is NaN, moves r toward
// other. Just above -1 the late discount factors overflow, so flows of
// opposite sign sum to Inf-Inf; a low end is moved by doubling its distance
// from -1, which clears that within a few steps. r never passes the bracket
// midpoint. The NPV returned may still be NaN after maxEndpointSteps.
func (s *Solver) settleEndpoint(series cashflow.Series, r, other float64) (float64, float64, error) {
	npv, err := presentvalue.NPV(series, r)
	for i := 0; err == nil && math.IsNaN(npv) && i < maxEndpointSteps; i++ {
		next := (r + other) / 2
		if r < other {
			next = math.Min(-1+2*(r+1), next)
		}
		s.log.Debug().
			Float64("from", r).
			Float64("to", next).
			Msg("npv undefined at bracket end, moving inward")
		r = next
		npv, err = presentvalue.NPV(series, r)
	}
	return r, npv, err
}

func sign(x float64) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
