/*
validator.go - Independent hard-feasibility validator

PURPOSE:
  Validate checks a (Plan, Schedule) pair against the four hard constraints
  that any correct solver must already satisfy. It is read-only, depends on
  no solver, and never retries or mutates its inputs. A correct solver never
  emits a schedule that fails this check; if one ever did, Validate would
  catch it and the caller would observe ValidationReport.OK = false.

CHECK SET:
  1. Day 1 is Work
  2. Non-negative closings on every day
  3. Final closing within [target-band, target+band]
  4. Day-30 pre-rent balance >= rent guard

This check set is the sole source of truth for hard feasibility; the DP
solver (dp package) and the CP-SAT verifier (cpsat package) each enforce an
equivalent set internally so that a correct solve never needs a retry here.
*/
package cashflow

import "fmt"

// Validate checks plan against schedule's actions and ledger, recomputing
// the ledger fresh from the plan so that validation is independent of
// whatever the caller's schedule claims.
func Validate(p *Plan, actions [Horizon]Action) ValidationReport {
	agg := BuildAggregates(p)
	ledger := BuildLedgerWithAggregates(p, agg, actions)

	checks := make([]CheckResult, 0, 4)

	// Check 1: Day 1 is Work.
	day1Pass := actions[0] == Work
	checks = append(checks, CheckResult{
		Name:   "Day 1 is Work",
		Pass:   day1Pass,
		Detail: fmt.Sprintf("day 1 action is %s", actions[0]),
	})

	// Check 2: non-negative closings.
	nonNegPass := true
	nonNegDetail := "all closings are non-negative"
	for i := 0; i < Horizon; i++ {
		if ledger[i].ClosingCents < 0 {
			nonNegPass = false
			nonNegDetail = fmt.Sprintf("day %d closing is %s", ledger[i].Day, CentsToString(ledger[i].ClosingCents))
			break
		}
	}
	checks = append(checks, CheckResult{Name: "Non-negative closings", Pass: nonNegPass, Detail: nonNegDetail})

	// Check 3: final within band.
	final := ledger[Horizon-1].ClosingCents
	diff := final - p.TargetEndCents
	if diff < 0 {
		diff = -diff
	}
	bandPass := diff <= p.BandCents
	checks = append(checks, CheckResult{
		Name: "Final within band",
		Pass: bandPass,
		Detail: fmt.Sprintf("closing %s, allowed [%s, %s]",
			CentsToString(final),
			CentsToString(p.TargetEndCents-p.BandCents),
			CentsToString(p.TargetEndCents+p.BandCents)),
	})

	// Check 4: day-30 pre-rent guard.
	day30 := ledger[Horizon-1]
	preRent := day30.OpeningCents + day30.DepositsCents + day30.AdjustmentsCents + day30.NetCents
	guardPass := preRent >= p.RentGuardCents
	checks = append(checks, CheckResult{
		Name:   "Day-30 pre-rent guard",
		Pass:   guardPass,
		Detail: fmt.Sprintf("pre-rent balance %s, required >= %s", CentsToString(preRent), CentsToString(p.RentGuardCents)),
	})

	ok := true
	for _, c := range checks {
		if !c.Pass {
			ok = false
			break
		}
	}
	return ValidationReport{OK: ok, Checks: checks}
}

// ValidateSchedule is a convenience wrapper over Validate that also
// checks every Plan lock is honored by the schedule's actions.
func ValidateSchedule(p *Plan, s *Schedule) ValidationReport {
	report := Validate(p, s.Actions)
	for i := 0; i < Horizon; i++ {
		if locked := p.Actions[i]; locked != nil && s.Actions[i] != *locked {
			report.OK = false
			report.Checks = append(report.Checks, CheckResult{
				Name:   fmt.Sprintf("Lock honored (day %d)", i+1),
				Pass:   false,
				Detail: fmt.Sprintf("day %d locked to %s but schedule has %s", i+1, locked, s.Actions[i]),
			})
		}
	}
	return report
}
