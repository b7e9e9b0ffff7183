/*
verify.go - Sequential lexicographic minimization and the verifier API

PURPOSE:
  Runs the three-stage sequential lex minimization and exposes
  VerifyLexOptimal(plan, schedule), which confirms a dp.Schedule's
  objective by an independent search rather than by re-running the DP.

SEQUENTIAL LEX MINIMIZATION:
  1. Minimize workdays -> bind.
  2. Minimize b2b with workdays = bound minimum -> bind.
  3. Minimize abs_diff with both bound -> final.
  Each stage's status is recorded; if a stage is not OPTIMAL, later stages
  are not run and the partial status vector is returned as-is.

FAILURE:
  Solve raises a SolverUnavailableError when Options.ForceUnavailable is
  set (a seam for callers that want to exercise the DPFallback path; this
  package's pure-Go search has no external dependency to go missing). A
  stage that exhausts its time budget without a definite answer returns
  StatusUnknown and a wrapped TimeoutError.
*/
package cpsat

import (
	"time"

	"github.com/cashctl/cashflow-scheduler/cashflow"
	"github.com/cashctl/cashflow-scheduler/dp"
)

// SolveResult is the outcome of the full sequential-lex search.
type SolveResult struct {
	Schedule *cashflow.Schedule
	Stages   []StageResult
}

// Solve runs the sequential lex minimization from scratch and returns a
// schedule with SolverUsed == "cpsat". When the backend is unavailable it
// returns a SolverUnavailableError whatever opts.DPFallback says; the DP
// fallback is done by SolveWithFallback.
func Solve(plan *cashflow.Plan, opts Options) (*SolveResult, error) {
	if opts.ForceUnavailable {
		return nil, &cashflow.SolverUnavailableError{Reason: "backend forced unavailable"}
	}

	budgetStart := time.Now()
	agg := cashflow.BuildAggregates(plan)

	stages := make([]StageResult, 0, 3)

	s1 := newSearcher(plan, agg, goalWorkdays, nil, nil, remaining(opts, budgetStart))
	minWork, ok, timedOut := s1.solve()
	st1 := stageStatus(ok, timedOut)
	stages = append(stages, StageResult{Stage: "workdays", Status: st1, Value: minWork})
	if st1 != StatusOptimal {
		return &SolveResult{Stages: stages}, stageFailure(plan, st1, "workdays", opts)
	}
	workBound := int(minWork)

	s2 := newSearcher(plan, agg, goalB2B, &workBound, nil, remaining(opts, budgetStart))
	minB2B, ok, timedOut := s2.solve()
	st2 := stageStatus(ok, timedOut)
	stages = append(stages, StageResult{Stage: "b2b", Status: st2, Value: minB2B})
	if st2 != StatusOptimal {
		return &SolveResult{Stages: stages}, stageFailure(plan, st2, "b2b", opts)
	}
	b2bBound := int(minB2B)

	s3 := newSearcher(plan, agg, goalAbsDiff, &workBound, &b2bBound, remaining(opts, budgetStart))
	minDiff, ok, timedOut := s3.solve()
	st3 := stageStatus(ok, timedOut)
	stages = append(stages, StageResult{Stage: "abs_diff", Status: st3, Value: minDiff})
	if st3 != StatusOptimal {
		return &SolveResult{Stages: stages}, stageFailure(plan, st3, "abs_diff", opts)
	}

	actions, err := rebuildSequence(plan, agg, workBound, b2bBound, minDiff)
	if err != nil {
		return &SolveResult{Stages: stages}, err
	}

	ledger := cashflow.BuildLedgerWithAggregates(plan, agg, actions)
	schedule := &cashflow.Schedule{
		Actions:           actions,
		Objective:         cashflow.Objective{Workdays: workBound, B2B: b2bBound, AbsDiff: minDiff},
		FinalClosingCents: ledger[cashflow.Horizon-1].ClosingCents,
		Ledger:            ledger,
		SolverUsed:        "cpsat",
	}
	return &SolveResult{Schedule: schedule, Stages: stages}, nil
}

// VerifyLexOptimal confirms that schedule's objective matches the
// independent sequential-lex search's objective on the same plan.
func VerifyLexOptimal(plan *cashflow.Plan, schedule *cashflow.Schedule, opts Options) (*VerificationReport, error) {
	result, err := Solve(plan, opts)
	if err != nil {
		if result != nil {
			return &VerificationReport{Stages: result.Stages}, err
		}
		return nil, err
	}
	// Action sequences need not match, only the objective triples: tie-
	// breaking among equally optimal schedules is left to each search's
	// own deterministic rule, not enforced across them.
	ok := result.Schedule.Objective.Equal(schedule.Objective)
	return &VerificationReport{
		Stages:    result.Stages,
		Objective: result.Schedule.Objective,
		OK:        ok,
	}, nil
}

func remaining(opts Options, start time.Time) float64 {
	elapsed := time.Since(start).Seconds()
	left := opts.maxTime() - elapsed
	if left <= 0 {
		return 0
	}
	return left
}

func stageStatus(ok, timedOut bool) Status {
	if timedOut {
		return StatusUnknown
	}
	if ok {
		return StatusOptimal
	}
	return StatusInfeasible
}

func stageFailure(plan *cashflow.Plan, status Status, stageName string, opts Options) error {
	if status == StatusUnknown {
		return &cashflow.TimeoutError{Stage: stageName, BudgetSeconds: opts.maxTime()}
	}
	return &cashflow.InfeasibleError{
		TargetCents: plan.TargetEndCents,
		BandCents:   plan.BandCents,
		RentGuard:   plan.RentGuardCents,
	}
}

// rebuildSequence reconstructs one optimal 30-day action sequence
// consistent with the three bound stage values, by greedily following, at
// each day, an action whose continuation is known (via a fresh bounded
// search) to reach the bound triple exactly.
func rebuildSequence(plan *cashflow.Plan, agg *cashflow.Aggregates, workBound, b2bBound int, diffBound int64) ([cashflow.Horizon]cashflow.Action, error) {
	var actions [cashflow.Horizon]cashflow.Action

	s := newSearcher(plan, agg, goalAbsDiff, &workBound, &b2bBound, DefaultMaxTimeSeconds)
	st := state{day: 0, workUsed: 0, netSoFar: 0, prevWorked: false, b2b: 0}

	for day := 1; day <= cashflow.Horizon; day++ {
		chosen := false
		for _, a := range allowedActions(plan, day) {
			next, feasible := s.step(st, day, a)
			if !feasible {
				continue
			}
			v, ok := s.rec(next)
			if !ok {
				continue
			}
			if day == cashflow.Horizon {
				if v != diffBound {
					continue
				}
			}
			actions[day-1] = a
			st = next
			chosen = true
			break
		}
		if !chosen {
			return actions, &cashflow.InfeasibleError{}
		}
	}
	return actions, nil
}

// SolveWithFallback runs Solve and, when it fails with SolverUnavailable
// and opts.DPFallback is set, falls back to dp.Solve, recording the
// SolverUnavailable reason as a note in the schedule's Diagnostics.
func SolveWithFallback(plan *cashflow.Plan, opts Options, dpOpts dp.Options) (*SolveResult, error) {
	result, err := Solve(plan, opts)
	if err == nil {
		return result, nil
	}
	if !cashflow.IsSolverUnavailable(err) || !opts.DPFallback {
		return result, err
	}
	schedule, dpErr := dp.Solve(plan, dpOpts)
	if dpErr != nil {
		return result, dpErr
	}
	if schedule.Diagnostics == nil {
		schedule.Diagnostics = &cashflow.Diagnostics{}
	}
	schedule.Diagnostics.Notes = append(schedule.Diagnostics.Notes, "fallback_reason: "+err.Error())
	var stages []StageResult
	if result != nil {
		stages = result.Stages
	}
	return &SolveResult{Schedule: schedule, Stages: stages}, nil
}
