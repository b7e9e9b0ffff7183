/*
ledger.go - Pure ledger construction from a Plan and an action sequence

PURPOSE:
  Builds the 30-row day-by-day ledger given a Plan and a chosen action for
  every day. This is a pure function: it does not check feasibility (that
  is the Validator's job in validator.go) and it never mutates the Plan.

INTRA-DAY ORDER:
  opening_d = closing_{d-1}        (opening_1 = start_balance)
  closing_d = opening_d + deposits_d + adjustments_d + net(action_d) - bills_d

Multiple deposits/bills/adjustments on the same day are summed via
Aggregates before the ledger row is built.
*/
package cashflow

// BuildLedger computes the 30-day ledger for plan under the given action
// sequence. actions[i] is the action taken on day i+1.
func BuildLedger(p *Plan, actions [Horizon]Action) [Horizon]DayLedger {
	agg := BuildAggregates(p)
	return BuildLedgerWithAggregates(p, agg, actions)
}

// BuildLedgerWithAggregates is BuildLedger for a caller that already holds
// the plan's Aggregates (the solvers recompute them once per solve and
// reuse them here rather than rebuilding).
func BuildLedgerWithAggregates(p *Plan, agg *Aggregates, actions [Horizon]Action) [Horizon]DayLedger {
	var ledger [Horizon]DayLedger
	opening := p.StartBalanceCents
	for i := 0; i < Horizon; i++ {
		day := i + 1
		deposits := agg.DepositsCents[i]
		adjustments := agg.AdjustmentsCents[i]
		bills := agg.BillsCents[i]
		action := actions[i]
		net := action.Net()
		closing := opening + deposits + adjustments + net - bills

		ledger[i] = DayLedger{
			Day:              day,
			OpeningCents:     opening,
			DepositsCents:    deposits,
			AdjustmentsCents: adjustments,
			Action:           action,
			NetCents:         net,
			BillsCents:       bills,
			ClosingCents:     closing,
		}
		opening = closing
	}
	return ledger
}

// ComputeObjective computes the lexicographic cost tuple for a completed
// action sequence and its final closing: workdays, back-to-back Work pairs, and the absolute
// cents distance of the final closing from the plan's target.
func ComputeObjective(p *Plan, actions [Horizon]Action, finalClosing int64) Objective {
	obj := Objective{}
	for i := 0; i < Horizon; i++ {
		if actions[i] == Work {
			obj.Workdays++
			if i > 0 && actions[i-1] == Work {
				obj.B2B++
			}
		}
	}
	diff := finalClosing - p.TargetEndCents
	if diff < 0 {
		diff = -diff
	}
	obj.AbsDiff = diff
	return obj
}
