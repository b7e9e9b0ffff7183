/*
types.go - Core value types for the cashflow core

PURPOSE:
  Bill, Deposit, Adjustment, Action, Plan, DayLedger, Schedule, and
  ValidationReport are the immutable types every other package in this
  repository builds on. A Plan is read-only through a solve; a Schedule and
  its ledger are pure derivations with no back-pointer into the Plan that
  produced them.

HORIZON:
  The horizon is fixed at exactly 30 days. Days are 1-indexed in [1,30];
  internally, slices are 0-indexed with day d at index d-1.

SEE ALSO:
  - money.go: cents conversion and ceiling
  - ledger.go: builds DayLedger rows from a Plan and an action sequence
  - validator.go: the four hard checks over a (Plan, Schedule) pair
*/
package cashflow

// Horizon is the fixed number of days every plan and schedule covers.
const Horizon = 30

// WorkNetCents is the fixed net contribution of a Work day ("Spark").
const WorkNetCents int64 = 10_000

// Action is the daily choice: Off (no earnings) or Work (fixed net).
type Action int8

const (
	Off Action = iota
	Work
)

// Net returns the cents an action contributes to a day's closing balance.
func (a Action) Net() int64 {
	if a == Work {
		return WorkNetCents
	}
	return 0
}

func (a Action) String() string {
	if a == Work {
		return "Spark"
	}
	return "O"
}

// Less orders Off before Work, used by the DP's deterministic tie-break
// over full action sequences.
func (a Action) Less(b Action) bool { return a == Off && b == Work }

// Bill is a scheduled outflow on a given day. Name is a label only; it is
// never referenced by either solver.
type Bill struct {
	Day         int
	Name        string
	AmountCents int64
}

// Deposit is a scheduled inflow on a given day. Multiple same-day deposits
// are allowed and summed by the ledger builder and the solvers' aggregates.
type Deposit struct {
	Day         int
	AmountCents int64
}

// Adjustment is a one-off signed inflow/outflow applied like a deposit; it
// may be negative. Note is a label only.
type Adjustment struct {
	Day         int
	AmountCents int64
	Note        string
}

// Plan is the read-only input to a solve: starting balance, target band,
// rent guard, scheduled cashflows, per-day action locks, and manual
// adjustments.
//
// actions[i] = Some(a) locks day i+1 to action a; nil leaves it free for
// the solver to choose.
type Plan struct {
	StartBalanceCents int64
	TargetEndCents    int64
	BandCents         int64
	RentGuardCents    int64

	Deposits           []Deposit
	Bills              []Bill
	Actions            [Horizon]*Action
	ManualAdjustments  []Adjustment
	Metadata           map[string]any
}

// Clone returns a deep copy of the plan suitable for mutating (e.g. to set
// a locked prefix for resume-from-day) without aliasing the original's
// slices or lock array.
func (p *Plan) Clone() *Plan {
	clone := *p
	clone.Deposits = append([]Deposit(nil), p.Deposits...)
	clone.Bills = append([]Bill(nil), p.Bills...)
	clone.ManualAdjustments = append([]Adjustment(nil), p.ManualAdjustments...)
	if p.Metadata != nil {
		clone.Metadata = make(map[string]any, len(p.Metadata))
		for k, v := range p.Metadata {
			clone.Metadata[k] = v
		}
	}
	for i, a := range p.Actions {
		if a != nil {
			v := *a
			clone.Actions[i] = &v
		} else {
			clone.Actions[i] = nil
		}
	}
	return &clone
}

// LockedAction returns the locked action for 1-indexed day d, or nil if
// day d is free for the solver to decide.
func (p *Plan) LockedAction(day int) *Action {
	return p.Actions[day-1]
}

// Lock sets the locked action for 1-indexed day d.
func (p *Plan) Lock(day int, a Action) {
	v := a
	p.Actions[day-1] = &v
}

// DayLedger is one day's row in the derived ledger: closing = opening +
// deposits + adjustments + net(action) - bills.
type DayLedger struct {
	Day            int
	OpeningCents   int64
	DepositsCents  int64
	AdjustmentsCents int64
	Action         Action
	NetCents       int64
	BillsCents     int64
	ClosingCents   int64
}

// Objective is the lexicographic cost tuple (workdays, back-to-back count,
// |closing_30 - target_end| in cents), compared left to right.
type Objective struct {
	Workdays int
	B2B      int
	AbsDiff  int64
}

// Less reports whether o is lexicographically better than other.
func (o Objective) Less(other Objective) bool {
	if o.Workdays != other.Workdays {
		return o.Workdays < other.Workdays
	}
	if o.B2B != other.B2B {
		return o.B2B < other.B2B
	}
	return o.AbsDiff < other.AbsDiff
}

// Equal reports whether the two objective tuples are identical.
func (o Objective) Equal(other Objective) bool {
	return o.Workdays == other.Workdays && o.B2B == other.B2B && o.AbsDiff == other.AbsDiff
}

// Diagnostics carries solver-internal detail that is useful for debugging
// but not part of the feasibility/optimality contract.
type Diagnostics struct {
	StatesExplored int
	StatesPruned   int
	Notes          []string
}

// Schedule is the output of a solve: the 30-day action sequence, its
// objective, the final closing balance, and the derived ledger.
type Schedule struct {
	Actions          [Horizon]Action
	Objective        Objective
	FinalClosingCents int64
	Ledger           [Horizon]DayLedger
	SolverUsed       string
	Diagnostics      *Diagnostics
}

// CheckResult is one named hard-feasibility check and its outcome.
type CheckResult struct {
	Name   string
	Pass   bool
	Detail string
}

// ValidationReport is the independent derivation of whether a (Plan,
// Schedule) pair satisfies all hard feasibility constraints.
type ValidationReport struct {
	OK     bool
	Checks []CheckResult
}
