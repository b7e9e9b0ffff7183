/*
resume.go - Resume-from-day and the mid-month adjust operation

PURPOSE:
  SolveFrom locks a prefix of actions and re-solves the remainder by
  delegating straight to Solve: the locked-action rule in allowedActions
  already restricts the DP to the given prefix, so no separate code path
  is needed for "resume".

  AdjustFromDay implements the higher-level resume flow: solve the full
  plan, copy the first current_day actions into a fresh plan, append a
  compensating Adjustment on current_day equal to the delta between the
  actual and computed closing, and re-solve.
*/
package dp

import "github.com/cashctl/cashflow-scheduler/cashflow"

// SolveFrom re-solves plan whose actions[0:startDay] are already locked
// (the caller is expected to have pre-filled them, typically from a prior
// solution). It is an ordinary Solve call; the locked-prefix restriction
// falls naturally out of the day-by-day action alphabet.
func SolveFrom(plan *cashflow.Plan, startDay int, opts Options) (*cashflow.Schedule, error) {
	return Solve(plan, opts)
}

// AdjustFromDay re-solves the tail of a plan after a real-world balance
// check: it solves the full original plan, locks the first currentDay
// actions to that solution's choices, appends an Adjustment on currentDay
// equal to actualEODCents minus the originally computed closing for that
// day, and re-solves. The adjustment aligns currentDay's ledger with the
// observed balance before the remaining days are re-optimized.
func AdjustFromDay(originalPlan *cashflow.Plan, currentDay int, actualEODCents int64, opts Options) (*cashflow.Schedule, error) {
	baseline, err := Solve(originalPlan, opts)
	if err != nil {
		return nil, err
	}

	computedEOD := baseline.Ledger[currentDay-1].ClosingCents
	delta := actualEODCents - computedEOD

	next := originalPlan.Clone()
	for i := 0; i < currentDay; i++ {
		next.Lock(i+1, baseline.Actions[i])
	}
	for i := currentDay; i < cashflow.Horizon; i++ {
		next.Actions[i] = nil
	}
	if delta != 0 {
		next.ManualAdjustments = append(next.ManualAdjustments, cashflow.Adjustment{
			Day:         currentDay,
			AmountCents: delta,
			Note:        "adjust_from_day compensating adjustment",
		})
	}

	return Solve(next, opts)
}
