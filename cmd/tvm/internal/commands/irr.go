package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/meenmo/timevalue/cashflow"
	"github.com/meenmo/timevalue/irr"
)

// irrInput fields left unset fall back to the loaded solver config.
type irrInput struct {
	TaskID        string              `json:"task_id,omitempty" yaml:"task_id"`
	CashFlows     []cashflow.CashFlow `json:"cash_flows,omitempty" yaml:"cash_flows"`
	Amounts       []float64           `json:"amounts,omitempty" yaml:"amounts"`
	Tolerance     *float64            `json:"tolerance,omitempty" yaml:"tolerance"`
	MaxIterations *int                `json:"max_iterations,omitempty" yaml:"max_iterations"`
	Bracket       *irr.Bracket        `json:"bracket,omitempty" yaml:"bracket"`
	// Guess switches from the fixed bracket to a bracket search around it.
	Guess *float64 `json:"guess,omitempty" yaml:"guess"`
}

type irrOutput struct {
	TaskID     string       `json:"task_id,omitempty"`
	IRR        float64      `json:"irr"`
	NPV        float64      `json:"npv"`
	Iterations int          `json:"iterations"`
	Bracket    *irr.Bracket `json:"bracket,omitempty"`
	// Estimate is the last midpoint when the iteration budget ran out.
	Estimate *float64 `json:"estimate,omitempty"`
	Error    string   `json:"error,omitempty"`
}

func (o irrOutput) failed() bool { return o.Error != "" }

func (a *app) irrCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "irr",
		Short: "Internal rate of return by bisection",
		Long: `Solve for the rate at which the NPV of a cash flow series is zero.

The solver bisects the configured bracket (solver.bracket_low/high) unless
the request carries its own bracket or a guess to search outward from.

Example requests:
  {"amounts": [-100, 110]}
  {"amounts": [-100, 60, 60], "tolerance": 1e-10, "bracket": {"low": 0, "high": 1}}
  {"cash_flows": [{"period": 0, "amount": -100}, {"period": 3, "amount": 133.1}], "guess": 0.5}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "irr", a.processIRR)
		},
	}
}

func (a *app) processIRR(in irrInput) irrOutput {
	out := irrOutput{TaskID: in.TaskID}
	series, err := seriesFrom(in.CashFlows, in.Amounts)
	if err != nil {
		out.Error = err.Error()
		return out
	}

	cfg := a.cfg.Solver.IRR()
	if in.Tolerance != nil {
		cfg.Tolerance = *in.Tolerance
	}
	if in.MaxIterations != nil {
		cfg.MaxIterations = *in.MaxIterations
	}
	if in.Bracket != nil {
		cfg.Bracket = *in.Bracket
	}

	solver := irr.NewSolver(cfg,
		irr.WithLogger(a.log.With().Str("command", "irr").Str("task_id", in.TaskID).Logger()),
		irr.WithSearchLimit(a.cfg.Solver.SearchLimit),
	)

	var res irr.Result
	if in.Guess != nil {
		res, err = solver.SolveFromGuess(series, *in.Guess)
	} else {
		res, err = solver.Solve(series)
	}
	if err != nil {
		out.Error = err.Error()
		var cerr *irr.ConvergenceError
		if errors.As(err, &cerr) {
			estimate := cerr.Estimate
			out.Estimate = &estimate
			out.Iterations = cerr.Iterations
			out.Bracket = &cerr.Bracket
		}
		return out
	}

	out.IRR = res.Rate
	out.NPV = res.NPV
	out.Iterations = res.Iterations
	out.Bracket = &res.Bracket
	return out
}
