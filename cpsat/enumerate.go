/*
enumerate.go - Tie enumeration among lexicographically optimal schedules

PURPOSE:
  With all three stage minima bound (workdays, b2b, abs_diff), enumerate up
  to `limit` distinct feasible action sequences achieving that exact
  objective triple. Implemented as DFS over the allowed action tree with a
  no-good cut: once a full sequence is emitted, it is excluded from the
  remaining search by remembering it and skipping an exact repeat.
*/
package cpsat

import "github.com/cashctl/cashflow-scheduler/cashflow"

// EnumerateTies returns up to limit distinct 30-day action sequences that
// achieve exactly the given objective triple on plan.
func EnumerateTies(plan *cashflow.Plan, objective cashflow.Objective, limit int, opts Options) ([][cashflow.Horizon]cashflow.Action, error) {
	agg := cashflow.BuildAggregates(plan)
	workBound := objective.Workdays
	b2bBound := objective.B2B

	s := newSearcher(plan, agg, goalAbsDiff, &workBound, &b2bBound, opts.maxTime())

	var results [][cashflow.Horizon]cashflow.Action
	seen := make(map[[cashflow.Horizon]cashflow.Action]bool)

	var walk func(st state, day int, prefix [cashflow.Horizon]cashflow.Action) bool
	walk = func(st state, day int, prefix [cashflow.Horizon]cashflow.Action) bool {
		if len(results) >= limit {
			return false // stop: limit reached
		}
		if s.deadlineCheck() {
			return false
		}
		if day > cashflow.Horizon {
			closing := agg.ClosingAt(plan.StartBalanceCents, cashflow.Horizon, st.netSoFar)
			diff := closing - plan.TargetEndCents
			if diff < 0 {
				diff = -diff
			}
			if diff != objective.AbsDiff {
				return true
			}
			if !seen[prefix] {
				seen[prefix] = true
				results = append(results, prefix)
			}
			return len(results) < limit
		}
		for _, a := range allowedActions(plan, day) {
			next, feasible := s.step(st, day, a)
			if !feasible {
				continue
			}
			// No-good bound: the remaining search from `next` must still be
			// able to reach the exact bound triple.
			if _, ok := s.rec(next); !ok {
				continue
			}
			prefix[day-1] = a
			if !walk(next, day+1, prefix) {
				return false
			}
		}
		return true
	}

	start := state{day: 0}
	walk(start, 1, [cashflow.Horizon]cashflow.Action{})

	return results, nil
}
