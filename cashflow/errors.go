/*
errors.go - Centralized error types for the cashflow core

PURPOSE:
  All error types in one place for consistency and discoverability. The
  dp and cpsat packages wrap these errors with solver-specific context but
  never invent new sentinel kinds — ErrorKind is the sole source of truth.

ERROR CATEGORIES:
  1. Ingest errors   - malformed external input (amount, day, action literal, plan shape)
  2. Solve errors    - Infeasible, SolverUnavailable, Timeout

USAGE:
  if errors.Is(err, cashflow.ErrInfeasible) {
      // no schedule exists under this plan; caller must change the plan
  }
*/
package cashflow

import (
	"errors"
	"fmt"
)

// ErrorKind is the closed set of error categories the core ever returns.
type ErrorKind string

const (
	ErrorKindInvalidAmount        ErrorKind = "InvalidAmount"
	ErrorKindInvalidDay           ErrorKind = "InvalidDay"
	ErrorKindInvalidActionLiteral ErrorKind = "InvalidActionLiteral"
	ErrorKindInvalidPlan          ErrorKind = "InvalidPlan"
	ErrorKindInfeasible           ErrorKind = "Infeasible"
	ErrorKindSolverUnavailable    ErrorKind = "SolverUnavailable"
	ErrorKindTimeout              ErrorKind = "Timeout"
)

// =============================================================================
// SENTINEL ERRORS - use with errors.Is()
// =============================================================================

var (
	// ErrInfeasible is returned when no feasible schedule exists under a plan.
	ErrInfeasible = errors.New("infeasible: no schedule satisfies the plan's constraints")

	// ErrSolverUnavailable is returned when the CP-SAT backend cannot run.
	ErrSolverUnavailable = errors.New("solver unavailable")

	// ErrTimeout is returned when the CP-SAT wall-clock budget is exhausted.
	ErrTimeout = errors.New("solver timed out")

	// ErrInvalidPlan is returned for structural plan problems not covered by
	// a more specific amount/day/literal error.
	ErrInvalidPlan = errors.New("invalid plan")
)

// InvalidAmountError carries the offending input and why it was rejected.
type InvalidAmountError struct {
	Input  string
	Reason string
}

func (e *InvalidAmountError) Error() string {
	return fmt.Sprintf("invalid amount %q: %s", e.Input, e.Reason)
}

func (e *InvalidAmountError) Kind() ErrorKind { return ErrorKindInvalidAmount }

// InvalidDayError carries the offending day value.
type InvalidDayError struct {
	Day int
}

func (e *InvalidDayError) Error() string {
	return fmt.Sprintf("invalid day %d: must be in [1,30]", e.Day)
}

func (e *InvalidDayError) Kind() ErrorKind { return ErrorKindInvalidDay }

// InvalidActionLiteralError carries the offending JSON action literal.
type InvalidActionLiteralError struct {
	Literal string
}

func (e *InvalidActionLiteralError) Error() string {
	return fmt.Sprintf("invalid action literal %q: must be null, \"O\", or \"Spark\"", e.Literal)
}

func (e *InvalidActionLiteralError) Kind() ErrorKind { return ErrorKindInvalidActionLiteral }

// InvalidPlanError carries a structural reason (e.g. wrong actions length).
type InvalidPlanError struct {
	Reason string
}

func (e *InvalidPlanError) Error() string {
	return fmt.Sprintf("invalid plan: %s", e.Reason)
}

func (e *InvalidPlanError) Unwrap() error    { return ErrInvalidPlan }
func (e *InvalidPlanError) Kind() ErrorKind { return ErrorKindInvalidPlan }

// InfeasibleError carries a short summary of why the terminal scan came up
// empty: the band interval, the rent guard, and the locked-action count.
type InfeasibleError struct {
	TargetCents int64
	BandCents   int64
	RentGuard   int64
	LockedDays  int
}

func (e *InfeasibleError) Error() string {
	return fmt.Sprintf(
		"infeasible: no day-30 state landed within [%s, %s] and pre-rent >= %s (%d days locked)",
		CentsToString(e.TargetCents-e.BandCents), CentsToString(e.TargetCents+e.BandCents),
		CentsToString(e.RentGuard), e.LockedDays,
	)
}

func (e *InfeasibleError) Unwrap() error    { return ErrInfeasible }
func (e *InfeasibleError) Kind() ErrorKind { return ErrorKindInfeasible }

// SolverUnavailableError records why CP-SAT could not run and whether the
// wrapper fell back to DP.
type SolverUnavailableError struct {
	Reason          string
	FellBackToDP    bool
}

func (e *SolverUnavailableError) Error() string {
	return fmt.Sprintf("cpsat solver unavailable: %s", e.Reason)
}

func (e *SolverUnavailableError) Unwrap() error    { return ErrSolverUnavailable }
func (e *SolverUnavailableError) Kind() ErrorKind { return ErrorKindSolverUnavailable }

// TimeoutError records the wall-clock budget that was exceeded and the
// stage the search was in when it expired.
type TimeoutError struct {
	Stage          string
	BudgetSeconds  float64
}

func (e *TimeoutError) Error() string {
	return fmt.Sprintf("solver timed out in stage %q after %.1fs", e.Stage, e.BudgetSeconds)
}

func (e *TimeoutError) Unwrap() error    { return ErrTimeout }
func (e *TimeoutError) Kind() ErrorKind { return ErrorKindTimeout }

// IsInfeasible reports whether err indicates no feasible schedule exists.
func IsInfeasible(err error) bool { return errors.Is(err, ErrInfeasible) }

// IsSolverUnavailable reports whether err indicates the CP-SAT backend
// could not run.
func IsSolverUnavailable(err error) bool { return errors.Is(err, ErrSolverUnavailable) }

// IsTimeout reports whether err indicates a CP-SAT wall-clock expiry.
func IsTimeout(err error) bool { return errors.Is(err, ErrTimeout) }
