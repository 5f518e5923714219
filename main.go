package main

import (
	"fmt"

	"github.com/meenmo/timevalue/cashflow"
	"github.com/meenmo/timevalue/futurevalue"
	"github.com/meenmo/timevalue/irr"
	"github.com/meenmo/timevalue/logger"
	"github.com/meenmo/timevalue/presentvalue"
	"github.com/meenmo/timevalue/rate"
)

func main() {
	log := logger.New(logger.Config{Level: "info", Pretty: true})

	// Five-year project: 1,000 up front, growing inflows, salvage in year 5.
	project := cashflow.Series{
		{Period: 0, Amount: -1000},
		{Period: 1, Amount: 150},
		{Period: 2, Amount: 250},
		{Period: 3, Amount: 300},
		{Period: 4, Amount: 300},
		{Period: 5, Amount: 350},
	}

	for _, r := range []float64{0.0, 0.05, 0.10} {
		npv, err := presentvalue.NPV(project, r)
		if err != nil {
			log.Fatal().Err(err).Float64("rate", r).Msg("npv")
		}
		fmt.Printf("NPV @ %5.2f%%: %10.4f\n", r*100, npv)
	}

	res, err := irr.NewSolver(irr.DefaultConfig, irr.WithLogger(log)).Solve(project)
	if err != nil {
		log.Fatal().Err(err).Msg("irr")
	}
	fmt.Printf("IRR:          %10.6f%% (%d iterations, bracket %s)\n", res.Rate*100, res.Iterations, res.Bracket)

	// Reinvest the initial outlay at the forward path of expected rates.
	expected := rate.Sequence{0.03, 0.035, 0.04, 0.045, 0.05}
	fv, err := futurevalue.FromRates(1000, expected)
	if err != nil {
		log.Fatal().Err(err).Msg("future value")
	}
	fmt.Printf("FV of 1000:   %10.4f over %d periods\n", fv, expected.Periods())
}
