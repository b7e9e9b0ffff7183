/*
model.go - Boolean one-hot action variables and the lexicographic model

PURPOSE:
  Describes, in Go terms, a constraint model equivalent to the one a
  CP-SAT solver would be given: for each day d and action a, a boolean
  x[d,a]; exactly one per day; day 1 fixed to Work; locked days fixed to
  their lock. closing_d is a linear expression of
  start + prefix[d] + work-so-far*WorkNetCents.

  There is no mature pure-Go CP-SAT/ILP binding usable without cgo. This
  package instead runs a deterministic memoized branch-and-bound search
  over the same one-hot day/action space — independent of the dp
  package's bottom-up state table — with admissible bounds, a
  deterministic branching order, and a soft wall-clock deadline.

STATUS VOCABULARY:
  Every stage reports one of OPTIMAL, FEASIBLE, INFEASIBLE, UNKNOWN, the
  same status vocabulary a CP-SAT solver reports.
*/
package cpsat

import "github.com/cashctl/cashflow-scheduler/cashflow"

// Status mirrors the CP-SAT solver status vocabulary.
type Status string

const (
	StatusOptimal    Status = "OPTIMAL"
	StatusFeasible   Status = "FEASIBLE"
	StatusInfeasible Status = "INFEASIBLE"
	StatusUnknown    Status = "UNKNOWN"
)

// Options configures a verify/solve call.
type Options struct {
	// MaxTimeSeconds bounds the whole sequential-lex run; zero means the
	// package default (60s).
	MaxTimeSeconds float64

	// NumSearchWorkers is accepted for option-surface parity with a real
	// CP-SAT backend (default 8; 1 for determinism) but does not change
	// behavior: this backtracking search is single-threaded and already
	// deterministic regardless of its value.
	NumSearchWorkers int

	// DPFallback, when true, makes SolveWithFallback fall back to the dp
	// package's Solve on SolverUnavailable instead of returning the error to
	// the caller. Solve itself does not read it.
	DPFallback bool

	// ForceUnavailable simulates the backend being missing so callers can
	// exercise the SolverUnavailable/DPFallback path without a real outage.
	// This package's pure-Go search has no external dependency to go
	// missing; this is purely a test seam.
	ForceUnavailable bool
}

// DefaultMaxTimeSeconds is the default CP-SAT wall-clock cap.
const DefaultMaxTimeSeconds = 60.0

func (o Options) maxTime() float64 {
	if o.MaxTimeSeconds > 0 {
		return o.MaxTimeSeconds
	}
	return DefaultMaxTimeSeconds
}

// state is the search-tree node identity: cumulative work days, cumulative
// action-net cents, whether the previous day worked, and the
// back-to-back count so far. Kept as one comparable struct so it can be
// used directly as a memo map key.
type state struct {
	day        int
	workUsed   int
	netSoFar   int64
	prevWorked bool
	b2b        int
}

// StageResult captures one sequential-lex stage's outcome.
type StageResult struct {
	Stage  string
	Status Status
	Value  int64
}

// VerificationReport is the result of verifying a dp.Schedule's objective
// against this package's independent search.
type VerificationReport struct {
	Stages       []StageResult
	Objective    cashflow.Objective
	OK           bool
	FallbackUsed bool
}
