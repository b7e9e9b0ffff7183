/*
Package factory converts JSON plan definitions into cashflow.Plan values,
and renders solved schedules back to the JSON response shape.

PURPOSE:
  This is the only place dollar-string parsing and action-literal decoding
  happen. It keeps the wire format (decimal dollars, "O"/"Spark" literals)
  out of the cashflow/dp/cpsat packages, which operate on cents and the
  closed Action variant exclusively.

JSON SCHEMA (plan ingest):
  {
    "start_balance":  <amount>,
    "target_end":     <amount>,
    "band":           <amount>,
    "rent_guard":     <amount>,
    "deposits":            [ { "day": int, "amount": amount }, ... ],
    "bills":               [ { "day": int, "name": str, "amount": amount }, ... ],
    "actions":             [ null | "O" | "Spark" ] * 30,
    "manual_adjustments":  [ { "day": int, "amount": amount, "note": str? }, ... ],
    "metadata":            { ... }
  }

  Every amount is a JSON string holding decimal dollars (e.g. "125.50").
  Bare JSON numbers are not accepted: they fail to decode into the string
  fields below.

REJECTS:
  amounts exceeding the ceiling, days out of [1,30], action literals other
  than null/"O"/"Spark", an actions array whose length isn't 30. Missing
  optional fields default to empty arrays / an empty object.

SEE ALSO:
  - cashflow/types.go: the decoded Plan and its invariants
  - cashflow/money.go: ToCents / CentsToString
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/cashctl/cashflow-scheduler/cashflow"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// DepositJSON is one scheduled inflow.
type DepositJSON struct {
	Day    int    `json:"day"`
	Amount string `json:"amount"`
}

// BillJSON is one scheduled outflow.
type BillJSON struct {
	Day    int    `json:"day"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// AdjustmentJSON is one one-off signed inflow/outflow.
type AdjustmentJSON struct {
	Day    int    `json:"day"`
	Amount string `json:"amount"`
	Note   string `json:"note,omitempty"`
}

// PlanJSON is the wire representation of a cashflow.Plan.
type PlanJSON struct {
	StartBalance string           `json:"start_balance"`
	TargetEnd    string           `json:"target_end"`
	Band         string           `json:"band"`
	RentGuard    string           `json:"rent_guard"`

	Deposits          []DepositJSON    `json:"deposits,omitempty"`
	Bills             []BillJSON       `json:"bills,omitempty"`
	Actions           []*string        `json:"actions,omitempty"`
	ManualAdjustments []AdjustmentJSON `json:"manual_adjustments,omitempty"`
	Metadata          map[string]any   `json:"metadata,omitempty"`
}

// =============================================================================
// INGEST
// =============================================================================

// ParsePlan parses a JSON-encoded plan into a cashflow.Plan.
func ParsePlan(data []byte) (*cashflow.Plan, error) {
	var pj PlanJSON
	if err := json.Unmarshal(data, &pj); err != nil {
		return nil, &cashflow.InvalidPlanError{Reason: fmt.Sprintf("malformed JSON: %v", err)}
	}
	return FromJSON(pj)
}

// FromJSON converts a decoded PlanJSON into a validated cashflow.Plan.
func FromJSON(pj PlanJSON) (*cashflow.Plan, error) {
	start, err := cashflow.ToCents(pj.StartBalance)
	if err != nil {
		return nil, err
	}
	target, err := cashflow.ToCents(pj.TargetEnd)
	if err != nil {
		return nil, err
	}
	band, err := cashflow.ToCents(pj.Band)
	if err != nil {
		return nil, err
	}
	rentGuard, err := cashflow.ToCents(pj.RentGuard)
	if err != nil {
		return nil, err
	}

	plan := &cashflow.Plan{
		StartBalanceCents: start,
		TargetEndCents:    target,
		BandCents:         band,
		RentGuardCents:    rentGuard,
	}

	for _, dj := range pj.Deposits {
		if err := checkDay(dj.Day); err != nil {
			return nil, err
		}
		amount, err := cashflow.ToCents(dj.Amount)
		if err != nil {
			return nil, err
		}
		plan.Deposits = append(plan.Deposits, cashflow.Deposit{Day: dj.Day, AmountCents: amount})
	}

	for _, bj := range pj.Bills {
		if err := checkDay(bj.Day); err != nil {
			return nil, err
		}
		amount, err := cashflow.ToCents(bj.Amount)
		if err != nil {
			return nil, err
		}
		plan.Bills = append(plan.Bills, cashflow.Bill{Day: bj.Day, Name: bj.Name, AmountCents: amount})
	}

	for _, aj := range pj.ManualAdjustments {
		if err := checkDay(aj.Day); err != nil {
			return nil, err
		}
		amount, err := cashflow.ToCents(aj.Amount)
		if err != nil {
			return nil, err
		}
		plan.ManualAdjustments = append(plan.ManualAdjustments, cashflow.Adjustment{
			Day: aj.Day, AmountCents: amount, Note: aj.Note,
		})
	}

	if pj.Actions != nil {
		if len(pj.Actions) != cashflow.Horizon {
			return nil, &cashflow.InvalidPlanError{
				Reason: fmt.Sprintf("actions length must be %d, got %d", cashflow.Horizon, len(pj.Actions)),
			}
		}
		for i, lit := range pj.Actions {
			a, err := parseActionLiteral(lit)
			if err != nil {
				return nil, err
			}
			if a != nil {
				plan.Actions[i] = a
			}
		}
	}

	if pj.Metadata != nil {
		plan.Metadata = pj.Metadata
	} else {
		plan.Metadata = map[string]any{}
	}

	return plan, nil
}

func checkDay(day int) error {
	if day < 1 || day > cashflow.Horizon {
		return &cashflow.InvalidDayError{Day: day}
	}
	return nil
}

// parseActionLiteral decodes null | "O" | "Spark" into *cashflow.Action.
// nil means the day is unlocked (solver decides).
func parseActionLiteral(lit *string) (*cashflow.Action, error) {
	if lit == nil {
		return nil, nil
	}
	switch *lit {
	case "O":
		a := cashflow.Off
		return &a, nil
	case "Spark":
		a := cashflow.Work
		return &a, nil
	default:
		return nil, &cashflow.InvalidActionLiteralError{Literal: *lit}
	}
}

// =============================================================================
// EGRESS
// =============================================================================

// DayLedgerJSON is the wire representation of one cashflow.DayLedger row.
type DayLedgerJSON struct {
	Day       int    `json:"day"`
	Opening   string `json:"opening"`
	Deposits  string `json:"deposits"`
	Action    string `json:"action"`
	Net       string `json:"net"`
	Bills     string `json:"bills"`
	Closing   string `json:"closing"`
}

// CheckJSON is the wire representation of one validation check.
type CheckJSON [3]any // [name string, ok bool, detail string]

// SolverInfoJSON describes which solver produced a schedule.
type SolverInfoJSON struct {
	Name            string   `json:"name"`
	Statuses        []string `json:"statuses,omitempty"`
	Seconds         float64  `json:"seconds,omitempty"`
	FallbackReason  string   `json:"fallback_reason,omitempty"`
}

// ScheduleJSON is the wire representation of a cashflow.Schedule plus its
// validation checks.
type ScheduleJSON struct {
	Actions      []string        `json:"actions"`
	Objective    [3]int64        `json:"objective"`
	FinalClosing string          `json:"final_closing"`
	Ledger       []DayLedgerJSON `json:"ledger"`
	Checks       []CheckJSON     `json:"checks"`
	Solver       SolverInfoJSON  `json:"solver"`
}

// ToJSON renders a solved schedule and its validation report into the
// JSON wire shape external callers read.
func ToJSON(s *cashflow.Schedule, report cashflow.ValidationReport) ScheduleJSON {
	out := ScheduleJSON{
		Actions:      make([]string, cashflow.Horizon),
		FinalClosing: cashflow.CentsToString(s.FinalClosingCents),
		Ledger:       make([]DayLedgerJSON, cashflow.Horizon),
		Checks:       make([]CheckJSON, len(report.Checks)),
		Solver:       SolverInfoJSON{Name: s.SolverUsed},
	}
	out.Objective = [3]int64{int64(s.Objective.Workdays), int64(s.Objective.B2B), s.Objective.AbsDiff}

	for i := 0; i < cashflow.Horizon; i++ {
		out.Actions[i] = s.Actions[i].String()
		row := s.Ledger[i]
		out.Ledger[i] = DayLedgerJSON{
			Day:      row.Day,
			Opening:  cashflow.CentsToString(row.OpeningCents),
			Deposits: cashflow.CentsToString(row.DepositsCents),
			Action:   row.Action.String(),
			Net:      cashflow.CentsToString(row.NetCents),
			Bills:    cashflow.CentsToString(row.BillsCents),
			Closing:  cashflow.CentsToString(row.ClosingCents),
		}
	}
	for i, c := range report.Checks {
		out.Checks[i] = CheckJSON{c.Name, c.Pass, c.Detail}
	}
	return out
}

// Marshal renders s and report as indented JSON bytes.
func Marshal(s *cashflow.Schedule, report cashflow.ValidationReport) ([]byte, error) {
	return json.MarshalIndent(ToJSON(s, report), "", "  ")
}
