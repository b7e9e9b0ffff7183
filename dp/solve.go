/*
solve.go - Primary dynamic-programming cashflow solver

PURPOSE:
  Finds an [30]Action sequence minimizing the lexicographic cost
  (workdays, back_to_back, |closing_30 - target_end|) subject to the four
  hard checks of cashflow.Validate, or reports cashflow.ErrInfeasible.

STATE:
  See state.go for the (work_used, net_so_far, prev_worked) state key and
  the per-day backpointer table. This file owns the transition, pruning,
  and terminal-selection logic.

DETERMINISM:
  Given identical input, Solve is reproducible: state merges keep the
  minimum back-to-back count with a fixed lexicographic tie-break, and the
  terminal scan itself breaks ties the same way. No goroutines, no shared
  mutable state outside a single call.
*/
package dp

import (
	"github.com/cashctl/cashflow-scheduler/cashflow"
)

// Options configures a single Solve call. The zero value is the default:
// full horizon, band pruning enabled, no diagnostics.
type Options struct {
	// CollectDiagnostics records state counts explored/pruned into the
	// returned Schedule.Diagnostics. Off by default to keep solves cheap.
	CollectDiagnostics bool
}

// Solve finds the lexicographically optimal feasible schedule for plan, or
// returns an error wrapping cashflow.ErrInfeasible when no terminal state
// survives the hard checks.
func Solve(plan *cashflow.Plan, opts Options) (*cashflow.Schedule, error) {
	agg := cashflow.BuildAggregates(plan)

	days := make([]*dayTable, cashflow.Horizon+1)
	days[0] = newDayTable()
	days[0].records = []stateRecord{{key: key{}, b2b: 0, parentIdx: -1}}
	days[0].index[key{}] = 0

	diag := &cashflow.Diagnostics{}

	for d := 1; d <= cashflow.Horizon; d++ {
		days[d] = newDayTable()
		allowed := allowedActions(plan, d)

		for srcIdx, src := range days[d-1].records {
			for _, a := range allowed {
				rec, ok := transition(plan, agg, d, srcIdx, src, a)
				if !ok {
					diag.StatesPruned++
					continue
				}
				days[d].merge(days, d, rec)
			}
		}
		diag.StatesExplored += len(days[d].records)
	}

	best, bestIdx, found := selectTerminal(plan, agg, days)
	if !found {
		return nil, &cashflow.InfeasibleError{
			TargetCents: plan.TargetEndCents,
			BandCents:   plan.BandCents,
			RentGuard:   plan.RentGuardCents,
			LockedDays:  countLocked(plan),
		}
	}

	actions := reconstruct(days, cashflow.Horizon, bestIdx)
	var fullActions [cashflow.Horizon]cashflow.Action
	copy(fullActions[:], actions)

	ledger := cashflow.BuildLedgerWithAggregates(plan, agg, fullActions)
	schedule := &cashflow.Schedule{
		Actions:           fullActions,
		Objective:         best,
		FinalClosingCents: ledger[cashflow.Horizon-1].ClosingCents,
		Ledger:            ledger,
		SolverUsed:        "dp",
	}
	if opts.CollectDiagnostics {
		schedule.Diagnostics = diag
	}
	return schedule, nil
}

// allowedActions returns the action alphabet for 1-indexed day d: a single
// locked action if plan.Actions[d-1] is set, Work only on day 1, else both.
func allowedActions(plan *cashflow.Plan, d int) []cashflow.Action {
	if locked := plan.LockedAction(d); locked != nil {
		return []cashflow.Action{*locked}
	}
	if d == 1 {
		return []cashflow.Action{cashflow.Work}
	}
	return []cashflow.Action{cashflow.Off, cashflow.Work}
}

// countLocked counts how many of the plan's 30 days are locked, for the
// InfeasibleError diagnostic summary.
func countLocked(plan *cashflow.Plan) int {
	n := 0
	for i := 0; i < cashflow.Horizon; i++ {
		if plan.Actions[i] != nil {
			n++
		}
	}
	return n
}

// transition applies action a on day d to the predecessor state src,
// enforcing the hard checks that must hold at every step (non-negative
// closing, the day-30 pre-rent guard) and the band-reachability prune.
// ok is false when the transition must be rejected.
func transition(plan *cashflow.Plan, agg *cashflow.Aggregates, d, srcIdx int, src stateRecord, a cashflow.Action) (stateRecord, bool) {
	netNew := src.key.netSoFar + a.Net()
	workNew := src.key.workUsed
	if a == cashflow.Work {
		workNew++
	}
	b2bNew := src.b2b
	if a == cashflow.Work && src.key.prevWorked {
		b2bNew++
	}

	closingNew := agg.ClosingAt(plan.StartBalanceCents, d, netNew)
	if closingNew < 0 {
		return stateRecord{}, false
	}

	if d == cashflow.Horizon {
		preRent := agg.PreRentBalance30(closingNew)
		if preRent < plan.RentGuardCents {
			return stateRecord{}, false
		}
	} else if !bandReachable(plan, agg, d, closingNew) {
		return stateRecord{}, false
	}

	return stateRecord{
		key:       key{workUsed: workNew, netSoFar: netNew, prevWorked: a == cashflow.Work},
		b2b:       b2bNew,
		parentIdx: srcIdx,
		action:    a,
	}, true
}

// bandReachable reports whether, from a closing of closingNew at the end of
// day d, the plan's target band can still possibly be hit by day 30, given
// remaining days can each contribute at most cashflow.WorkNetCents (all
// Work) or at least 0 (all Off). This is a necessary, not sufficient,
// condition and only prunes transitions that can never succeed.
func bandReachable(plan *cashflow.Plan, agg *cashflow.Aggregates, d int, closingNew int64) bool {
	remainingDays := cashflow.Horizon - d
	remainingPrefix := agg.PrefixCents[cashflow.Horizon] - agg.PrefixCents[d]

	maxFinal := closingNew + remainingPrefix + int64(remainingDays)*cashflow.WorkNetCents
	minFinal := closingNew + remainingPrefix

	lo := plan.TargetEndCents - plan.BandCents
	hi := plan.TargetEndCents + plan.BandCents
	return maxFinal >= lo && minFinal <= hi
}

// selectTerminal scans day-30 states, keeps those within the target band
// (the rent guard and non-negativity were already enforced during
// transition), and returns the lexicographically minimal objective with a
// deterministic full-sequence tie-break.
func selectTerminal(plan *cashflow.Plan, agg *cashflow.Aggregates, days []*dayTable) (cashflow.Objective, int, bool) {
	lo := plan.TargetEndCents - plan.BandCents
	hi := plan.TargetEndCents + plan.BandCents

	found := false
	var best cashflow.Objective
	bestIdx := -1

	for idx, rec := range days[cashflow.Horizon].records {
		closing := agg.ClosingAt(plan.StartBalanceCents, cashflow.Horizon, rec.key.netSoFar)
		if closing < lo || closing > hi {
			continue
		}
		diff := closing - plan.TargetEndCents
		if diff < 0 {
			diff = -diff
		}
		obj := cashflow.Objective{Workdays: rec.key.workUsed, B2B: rec.b2b, AbsDiff: diff}

		if !found {
			found, best, bestIdx = true, obj, idx
			continue
		}
		if obj.Less(best) {
			best, bestIdx = obj, idx
		} else if obj.Equal(best) {
			if sequenceLess(reconstruct(days, cashflow.Horizon, idx), reconstruct(days, cashflow.Horizon, bestIdx)) {
				bestIdx = idx
			}
		}
	}
	return best, bestIdx, found
}
