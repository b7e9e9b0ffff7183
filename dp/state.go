/*
state.go - DP state keys and the per-day backpointer table

PURPOSE:
  A DP state at the end of day d is (work_used, net_so_far, prev_worked).
  Balance at day d is a pure function of (d, net_so_far) via the plan's
  prefix aggregate, so it is never part of the state key.

  States are kept in arrays indexed by (day, state_id) rather than an
  object graph with pointers between states: each day owns a slice of
  stateRecord, and a record's parentIdx points into the previous day's
  slice. This keeps memory locality predictable and avoids reference
  cycles, per the engine's design notes.
*/
package dp

import "github.com/cashctl/cashflow-scheduler/cashflow"

// key is the DP state key: work days so far, cumulative action-net cents,
// and whether the previous day was Work (needed for back-to-back counting).
type key struct {
	workUsed   int
	netSoFar   int64
	prevWorked bool
}

// stateRecord is one entry in a day's state table: the minimal back-to-back
// count known for key, and a backpointer to the predecessor record that
// achieves it.
type stateRecord struct {
	key       key
	b2b       int
	parentIdx int // index into the previous day's records; -1 at day 0
	action    cashflow.Action
}

// dayTable holds, for a single day, the deduplicated state records plus an
// index from key to its position in records for O(1) merge lookups.
type dayTable struct {
	records []stateRecord
	index   map[key]int
}

func newDayTable() *dayTable {
	return &dayTable{index: make(map[key]int)}
}

// reconstructFrom walks the backpointer chain starting at rec (the state
// reached at the end of `day`, not necessarily stored in days[day] yet)
// back to day 0, returning the day-length action prefix.
func reconstructFrom(days []*dayTable, day int, rec stateRecord) []cashflow.Action {
	seq := make([]cashflow.Action, day)
	seq[day-1] = rec.action
	idx := rec.parentIdx
	for d := day - 1; d > 0; d-- {
		r := days[d].records[idx]
		seq[d-1] = r.action
		idx = r.parentIdx
	}
	return seq
}

// reconstruct returns the full prefix ending at the stored record
// days[day].records[idx].
func reconstruct(days []*dayTable, day, idx int) []cashflow.Action {
	return reconstructFrom(days, day, days[day].records[idx])
}

// sequenceLess reports whether prefix a is lexicographically smaller than
// prefix b under Off < Work ordering. Used to break exact ties
// deterministically (equal b2b in merge, equal objective in
// selectTerminal), preferring "earliest work-day moved later".
func sequenceLess(a, b []cashflow.Action) bool {
	for i := range a {
		if a[i] != b[i] {
			return a[i] < b[i]
		}
	}
	return false
}

// merge inserts or updates the record for rec.key in t (the table under
// construction for `day`), keeping the lower b2b count. On an exact tie,
// the candidate replaces the existing entry only if its reconstructed
// prefix is lexicographically smaller.
func (t *dayTable) merge(days []*dayTable, day int, rec stateRecord) {
	if idx, ok := t.index[rec.key]; ok {
		existing := t.records[idx]
		switch {
		case rec.b2b < existing.b2b:
			t.records[idx] = rec
		case rec.b2b == existing.b2b:
			if sequenceLess(reconstructFrom(days, day, rec), reconstructFrom(days, day, existing)) {
				t.records[idx] = rec
			}
		}
		return
	}
	t.index[rec.key] = len(t.records)
	t.records = append(t.records, rec)
}
