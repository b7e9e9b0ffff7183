/*
search.go - Memoized branch-and-bound search over the one-hot action space

PURPOSE:
  Each sequential-lex stage (minimize workdays, then b2b with workdays
  bound, then abs_diff with both bound) is one call to searcher.solve,
  which explores the day-by-day action tree depth first, prunes on the
  hard constraints (non-negative closings, the day-30 band and rent
  guard), and memoizes the best achievable stage value per (day, state) so
  repeated sub-problems are solved once.
*/
package cpsat

import (
	"time"

	"github.com/cashctl/cashflow-scheduler/cashflow"
)

type goal int

const (
	goalWorkdays goal = iota
	goalB2B
	goalAbsDiff
)

// searcher holds the data shared across one stage's recursion: the plan's
// aggregates, the equality bindings from prior stages, the deadline, and
// the memo table.
type searcher struct {
	plan  *cashflow.Plan
	agg   *cashflow.Aggregates
	goal  goal

	fixedWork *int
	fixedB2B  *int

	deadline time.Time
	expired  bool

	memo map[state]memoEntry
}

type memoEntry struct {
	ok    bool
	value int64
}

// newSearcher builds a searcher for one stage. fixedWork/fixedB2B bind
// earlier stages' optimal values as equality constraints on this stage.
func newSearcher(plan *cashflow.Plan, agg *cashflow.Aggregates, g goal, fixedWork, fixedB2B *int, maxTimeSeconds float64) *searcher {
	return &searcher{
		plan:      plan,
		agg:       agg,
		goal:      g,
		fixedWork: fixedWork,
		fixedB2B:  fixedB2B,
		deadline:  time.Now().Add(time.Duration(maxTimeSeconds * float64(time.Second))),
		memo:      make(map[state]memoEntry),
	}
}

// solve runs the recursive search from the initial state and returns the
// optimal stage value, whether any feasible completion exists, and whether
// the deadline expired before the search could prove optimality.
func (s *searcher) solve() (value int64, ok bool, timedOut bool) {
	start := state{day: 0, workUsed: 0, netSoFar: 0, prevWorked: false, b2b: 0}
	v, ok := s.rec(start)
	return v, ok, s.expired
}

func (s *searcher) deadlineCheck() bool {
	if s.expired {
		return true
	}
	if time.Now().After(s.deadline) {
		s.expired = true
	}
	return s.expired
}

// rec returns the best stage value achievable from st (st.day days already
// decided), or ok=false if no feasible completion exists.
func (s *searcher) rec(st state) (int64, bool) {
	if s.deadlineCheck() {
		return 0, false
	}
	if entry, cached := s.memo[st]; cached {
		return entry.value, entry.ok
	}

	var result int64
	var ok bool

	if st.day == cashflow.Horizon {
		result, ok = s.terminal(st)
	} else {
		result, ok = s.branch(st)
	}

	s.memo[st] = memoEntry{ok: ok, value: result}
	return result, ok
}

// terminal evaluates st as a day-30 state: checks the band and rent-guard
// hard constraints and any equality bindings from earlier stages, then
// returns the value for the active goal.
func (s *searcher) terminal(st state) (int64, bool) {
	closing := s.agg.ClosingAt(s.plan.StartBalanceCents, cashflow.Horizon, st.netSoFar)
	lo := s.plan.TargetEndCents - s.plan.BandCents
	hi := s.plan.TargetEndCents + s.plan.BandCents
	if closing < lo || closing > hi {
		return 0, false
	}
	preRent := s.agg.PreRentBalance30(closing)
	if preRent < s.plan.RentGuardCents {
		return 0, false
	}
	if s.fixedWork != nil && st.workUsed != *s.fixedWork {
		return 0, false
	}
	if s.fixedB2B != nil && st.b2b != *s.fixedB2B {
		return 0, false
	}

	switch s.goal {
	case goalWorkdays:
		return int64(st.workUsed), true
	case goalB2B:
		return int64(st.b2b), true
	default:
		diff := closing - s.plan.TargetEndCents
		if diff < 0 {
			diff = -diff
		}
		return diff, true
	}
}

// branch tries every allowed action on day st.day+1, recurses, and keeps
// the minimum value among feasible continuations.
func (s *searcher) branch(st state) (int64, bool) {
	day := st.day + 1
	found := false
	var best int64

	for _, a := range allowedActions(s.plan, day) {
		next, feasible := s.step(st, day, a)
		if !feasible {
			continue
		}
		v, ok := s.rec(next)
		if !ok {
			continue
		}
		if !found || v < best {
			found, best = true, v
		}
	}
	return best, found
}

// step applies action a on day to state st, enforcing the non-negative
// closing hard check. feasible is false when the transition must be
// rejected.
func (s *searcher) step(st state, day int, a cashflow.Action) (state, bool) {
	netNew := st.netSoFar + a.Net()
	closing := s.agg.ClosingAt(s.plan.StartBalanceCents, day, netNew)
	if closing < 0 {
		return state{}, false
	}
	workNew := st.workUsed
	if a == cashflow.Work {
		workNew++
	}
	b2bNew := st.b2b
	if a == cashflow.Work && st.prevWorked {
		b2bNew++
	}
	return state{
		day:        day,
		workUsed:   workNew,
		netSoFar:   netNew,
		prevWorked: a == cashflow.Work,
		b2b:        b2bNew,
	}, true
}

// allowedActions mirrors dp.allowedActions: a locked day restricts to the
// single locked action, day 1 is forced Work, otherwise both are tried.
func allowedActions(plan *cashflow.Plan, day int) []cashflow.Action {
	if locked := plan.LockedAction(day); locked != nil {
		return []cashflow.Action{*locked}
	}
	if day == 1 {
		return []cashflow.Action{cashflow.Work}
	}
	return []cashflow.Action{cashflow.Off, cashflow.Work}
}
