/*
Package scheduler dispatches a solve request to the DP or CP-SAT engine.
It is shared by the HTTP API and the CLI so the two callers never drift
on solver selection.
*/
package scheduler

import (
	"fmt"

	"github.com/cashctl/cashflow-scheduler/cashflow"
	"github.com/cashctl/cashflow-scheduler/cpsat"
	"github.com/cashctl/cashflow-scheduler/dp"
)

// SolveWith runs plan through the solver named by mode ("", "dp", "cpsat",
// or "auto") and returns the resulting schedule and the solver that
// actually produced it.
func SolveWith(plan *cashflow.Plan, mode string) (*cashflow.Schedule, string, error) {
	switch mode {
	case "", "dp":
		s, err := dp.Solve(plan, dp.Options{})
		return s, "dp", err
	case "cpsat":
		result, err := cpsat.Solve(plan, cpsat.Options{})
		if err != nil {
			return nil, "cpsat", err
		}
		return result.Schedule, "cpsat", nil
	case "auto":
		result, err := cpsat.SolveWithFallback(plan, cpsat.Options{DPFallback: true}, dp.Options{})
		if err != nil {
			return nil, "auto", err
		}
		return result.Schedule, result.Schedule.SolverUsed, nil
	default:
		return nil, "", &cashflow.InvalidPlanError{Reason: fmt.Sprintf("unknown solver %q", mode)}
	}
}
