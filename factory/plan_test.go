package factory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashctl/cashflow-scheduler/cashflow"
	"github.com/cashctl/cashflow-scheduler/factory"
)

func TestFromJSON_ParsesAllFields(t *testing.T) {
	work := "Spark"
	off := "O"
	actions := make([]*string, cashflow.Horizon)
	actions[0] = &work
	actions[1] = &off

	pj := factory.PlanJSON{
		StartBalance: "500.00",
		TargetEnd:    "600.00",
		Band:         "50.00",
		RentGuard:    "100.00",
		Deposits:     []factory.DepositJSON{{Day: 1, Amount: "10.00"}},
		Bills:        []factory.BillJSON{{Day: 30, Name: "rent", Amount: "400.00"}},
		Actions:      actions,
	}

	plan, err := factory.FromJSON(pj)
	require.NoError(t, err)
	assert.Equal(t, int64(50_000), plan.StartBalanceCents)
	assert.Equal(t, int64(60_000), plan.TargetEndCents)
	assert.Equal(t, int64(5_000), plan.BandCents)
	assert.Equal(t, int64(10_000), plan.RentGuardCents)
	assert.Equal(t, cashflow.Work, *plan.LockedAction(1))
	assert.Equal(t, cashflow.Off, *plan.LockedAction(2))
	assert.Nil(t, plan.LockedAction(3))
}

func TestFromJSON_RejectsInvalidAmount(t *testing.T) {
	pj := factory.PlanJSON{StartBalance: "not-a-number", TargetEnd: "0", Band: "0", RentGuard: "0"}
	_, err := factory.FromJSON(pj)
	require.Error(t, err)
	var amtErr *cashflow.InvalidAmountError
	assert.ErrorAs(t, err, &amtErr)
}

func TestFromJSON_RejectsOutOfRangeDay(t *testing.T) {
	pj := factory.PlanJSON{
		StartBalance: "0", TargetEnd: "0", Band: "0", RentGuard: "0",
		Deposits: []factory.DepositJSON{{Day: 31, Amount: "10.00"}},
	}
	_, err := factory.FromJSON(pj)
	require.Error(t, err)
	var dayErr *cashflow.InvalidDayError
	assert.ErrorAs(t, err, &dayErr)
}

func TestFromJSON_RejectsBadActionLiteral(t *testing.T) {
	bogus := "Vacation"
	actions := make([]*string, cashflow.Horizon)
	actions[0] = &bogus
	pj := factory.PlanJSON{StartBalance: "0", TargetEnd: "0", Band: "0", RentGuard: "0", Actions: actions}
	_, err := factory.FromJSON(pj)
	require.Error(t, err)
	var litErr *cashflow.InvalidActionLiteralError
	assert.ErrorAs(t, err, &litErr)
}

func TestFromJSON_RejectsWrongLengthActions(t *testing.T) {
	work := "Spark"
	pj := factory.PlanJSON{
		StartBalance: "0", TargetEnd: "0", Band: "0", RentGuard: "0",
		Actions: []*string{&work},
	}
	_, err := factory.FromJSON(pj)
	require.Error(t, err)
	var planErr *cashflow.InvalidPlanError
	assert.ErrorAs(t, err, &planErr)
}

func TestFromJSON_DefaultsMetadataToEmptyMap(t *testing.T) {
	pj := factory.PlanJSON{StartBalance: "0", TargetEnd: "0", Band: "0", RentGuard: "0"}
	plan, err := factory.FromJSON(pj)
	require.NoError(t, err)
	assert.NotNil(t, plan.Metadata)
	assert.Empty(t, plan.Metadata)
}

func TestParsePlan_RejectsMalformedJSON(t *testing.T) {
	_, err := factory.ParsePlan([]byte(`{not json`))
	require.Error(t, err)
	var planErr *cashflow.InvalidPlanError
	assert.ErrorAs(t, err, &planErr)
}

func TestParsePlan_RoundTripsThroughJSON(t *testing.T) {
	data := []byte(`{
		"start_balance": "1000.00",
		"target_end": "1200.00",
		"band": "100.00",
		"rent_guard": "200.00",
		"deposits": [{"day": 2, "amount": "50.00"}],
		"bills": [{"day": 30, "name": "rent", "amount": "900.00"}]
	}`)
	plan, err := factory.ParsePlan(data)
	require.NoError(t, err)
	assert.Equal(t, int64(100_000), plan.StartBalanceCents)
	require.Len(t, plan.Deposits, 1)
	assert.Equal(t, int64(5_000), plan.Deposits[0].AmountCents)
}

func TestToJSON_RendersScheduleAndChecks(t *testing.T) {
	plan := &cashflow.Plan{StartBalanceCents: 0, TargetEndCents: 10_000, BandCents: 0}
	var actions [cashflow.Horizon]cashflow.Action
	actions[0] = cashflow.Work
	ledger := cashflow.BuildLedger(plan, actions)
	sched := &cashflow.Schedule{
		Actions:           actions,
		Objective:         cashflow.Objective{Workdays: 1, B2B: 0, AbsDiff: 0},
		FinalClosingCents: ledger[cashflow.Horizon-1].ClosingCents,
		Ledger:            ledger,
		SolverUsed:        "dp",
	}
	report := cashflow.Validate(plan, actions)

	out := factory.ToJSON(sched, report)
	assert.Equal(t, "Spark", out.Actions[0])
	assert.Equal(t, "O", out.Actions[1])
	assert.Equal(t, [3]int64{1, 0, 0}, out.Objective)
	assert.Equal(t, "dp", out.Solver.Name)
	assert.Len(t, out.Checks, len(report.Checks))
	assert.Len(t, out.Ledger, cashflow.Horizon)
}

func TestMarshal_ProducesValidIndentedJSON(t *testing.T) {
	plan := &cashflow.Plan{StartBalanceCents: 0, TargetEndCents: 10_000, BandCents: 0}
	var actions [cashflow.Horizon]cashflow.Action
	actions[0] = cashflow.Work
	ledger := cashflow.BuildLedger(plan, actions)
	sched := &cashflow.Schedule{Actions: actions, Ledger: ledger, SolverUsed: "dp"}
	report := cashflow.Validate(plan, actions)

	data, err := factory.Marshal(sched, report)
	require.NoError(t, err)
	assert.Contains(t, string(data), "\"solver\"")
}
