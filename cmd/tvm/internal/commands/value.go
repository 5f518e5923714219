package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/meenmo/timevalue/cashflow"
	"github.com/meenmo/timevalue/futurevalue"
	"github.com/meenmo/timevalue/presentvalue"
	"github.com/meenmo/timevalue/rate"
)

type pvInput struct {
	TaskID  string  `json:"task_id,omitempty" yaml:"task_id"`
	Amount  float64 `json:"amount" yaml:"amount"`
	Rate    float64 `json:"rate" yaml:"rate"`
	Periods int     `json:"periods" yaml:"periods"`
}

type pvOutput struct {
	TaskID       string  `json:"task_id,omitempty"`
	PresentValue float64 `json:"present_value"`
	Error        string  `json:"error,omitempty"`
}

func (o pvOutput) failed() bool { return o.Error != "" }

func (a *app) pvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "pv",
		Short: "Discount a single amount to period 0",
		Long: `Discount a single amount: amount / (1+rate)^periods.

Example request:
  {"amount": 110, "rate": 0.10, "periods": 1}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "pv", processPV)
		},
	}
}

func processPV(in pvInput) pvOutput {
	out := pvOutput{TaskID: in.TaskID}
	pv, err := presentvalue.Single(in.Amount, in.Rate, in.Periods)
	if err == nil {
		err = checkFinite("present value", pv)
	}
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.PresentValue = pv
	return out
}

type npvInput struct {
	TaskID    string              `json:"task_id,omitempty" yaml:"task_id"`
	Rate      float64             `json:"rate" yaml:"rate"`
	CashFlows []cashflow.CashFlow `json:"cash_flows,omitempty" yaml:"cash_flows"`
	Amounts   []float64           `json:"amounts,omitempty" yaml:"amounts"`
}

type npvOutput struct {
	TaskID string  `json:"task_id,omitempty"`
	NPV    float64 `json:"npv"`
	Error  string  `json:"error,omitempty"`
}

func (o npvOutput) failed() bool { return o.Error != "" }

func (a *app) npvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "npv",
		Short: "Net present value of a cash flow series",
		Long: `Discount every cash flow of a series at one rate and sum them.

Cash flows are given either with explicit periods or as plain amounts, the
i-th amount falling at period i:
  {"rate": 0.10, "cash_flows": [{"period": 0, "amount": -100}, {"period": 1, "amount": 110}]}
  {"rate": 0.10, "amounts": [-100, 110]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "npv", processNPV)
		},
	}
}

func processNPV(in npvInput) npvOutput {
	out := npvOutput{TaskID: in.TaskID}
	series, err := seriesFrom(in.CashFlows, in.Amounts)
	if err != nil {
		out.Error = err.Error()
		return out
	}
	npv, err := presentvalue.NPV(series, in.Rate)
	if err == nil {
		err = checkFinite("npv", npv)
	}
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.NPV = npv
	return out
}

type fvInput struct {
	TaskID       string    `json:"task_id,omitempty" yaml:"task_id"`
	PresentValue float64   `json:"present_value" yaml:"present_value"`
	Rates        []float64 `json:"rates" yaml:"rates"`
}

type fvOutput struct {
	TaskID      string  `json:"task_id,omitempty"`
	FutureValue float64 `json:"future_value"`
	Periods     int     `json:"periods"`
	Error       string  `json:"error,omitempty"`
}

func (o fvOutput) failed() bool { return o.Error != "" }

func (a *app) fvCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fv",
		Short: "Compound a present value through per-period rates",
		Long: `Compound a present value forward, one period per rate:
present_value * (1+r1) * (1+r2) * ...

Example request:
  {"present_value": 100, "rates": [0.05, 0.05]}`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBatch(a, "fv", processFV)
		},
	}
}

func processFV(in fvInput) fvOutput {
	out := fvOutput{TaskID: in.TaskID}
	fv, err := futurevalue.FromRates(in.PresentValue, rate.Sequence(in.Rates))
	if err == nil {
		err = checkFinite("future value", fv)
	}
	if err != nil {
		out.Error = err.Error()
		return out
	}
	out.FutureValue = fv
	out.Periods = len(in.Rates)
	return out
}

func seriesFrom(flows []cashflow.CashFlow, amounts []float64) (cashflow.Series, error) {
	switch {
	case len(flows) > 0 && len(amounts) > 0:
		return nil, fmt.Errorf("set either cash_flows or amounts, not both")
	case len(amounts) > 0:
		return cashflow.FromAmounts(amounts), nil
	}
	return cashflow.Series(flows), nil
}
