package cashflow_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashctl/cashflow-scheduler/cashflow"
)

func checkByName(t *testing.T, report cashflow.ValidationReport, name string) cashflow.CheckResult {
	t.Helper()
	for _, c := range report.Checks {
		if c.Name == name {
			return c
		}
	}
	require.Failf(t, "check not found", "no check named %q", name)
	return cashflow.CheckResult{}
}

func TestValidate_FailsWhenDay1IsNotWork(t *testing.T) {
	plan := &cashflow.Plan{StartBalanceCents: 100_000, TargetEndCents: 100_000, BandCents: 100_000}
	var actions [cashflow.Horizon]cashflow.Action // all Off
	report := cashflow.Validate(plan, actions)

	assert.False(t, report.OK)
	assert.False(t, checkByName(t, report, "Day 1 is Work").Pass)
}

func TestValidate_FailsOnNegativeClosing(t *testing.T) {
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    0,
		BandCents:         1_000_000,
		Bills:             []cashflow.Bill{{Day: 2, Name: "rent", AmountCents: 50_000}},
	}
	var actions [cashflow.Horizon]cashflow.Action
	actions[0] = cashflow.Work // day 1 satisfied
	report := cashflow.Validate(plan, actions)

	assert.False(t, report.OK)
	assert.False(t, checkByName(t, report, "Non-negative closings").Pass)
}

func TestValidate_FailsWhenFinalOutsideBand(t *testing.T) {
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    100_000,
		BandCents:         1_000,
	}
	var actions [cashflow.Horizon]cashflow.Action
	actions[0] = cashflow.Work
	report := cashflow.Validate(plan, actions)

	assert.False(t, report.OK)
	assert.False(t, checkByName(t, report, "Final within band").Pass)
}

func TestValidate_FailsOnRentGuardBreach(t *testing.T) {
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    0,
		BandCents:         1_000_000,
		RentGuardCents:    50_000,
		Bills:             []cashflow.Bill{{Day: 30, Name: "rent", AmountCents: 1_000}},
	}
	var actions [cashflow.Horizon]cashflow.Action
	actions[0] = cashflow.Work
	report := cashflow.Validate(plan, actions)

	assert.False(t, report.OK)
	assert.False(t, checkByName(t, report, "Day-30 pre-rent guard").Pass)
}

func TestValidate_PassesAllChecksOnFeasibleSchedule(t *testing.T) {
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    10_000,
		BandCents:         0,
		RentGuardCents:    0,
	}
	var actions [cashflow.Horizon]cashflow.Action
	actions[0] = cashflow.Work
	report := cashflow.Validate(plan, actions)

	assert.True(t, report.OK)
	for _, c := range report.Checks {
		assert.True(t, c.Pass, c.Name)
	}
}

func TestValidateSchedule_FlagsUnhonoredLock(t *testing.T) {
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    10_000,
		BandCents:         0,
	}
	plan.Lock(2, cashflow.Work)

	var actions [cashflow.Horizon]cashflow.Action
	actions[0] = cashflow.Work
	actions[1] = cashflow.Off // violates the lock on day 2

	sched := &cashflow.Schedule{Actions: actions}
	report := cashflow.ValidateSchedule(plan, sched)

	assert.False(t, report.OK)
	found := false
	for _, c := range report.Checks {
		if c.Name == "Lock honored (day 2)" {
			found = true
			assert.False(t, c.Pass)
		}
	}
	assert.True(t, found, "expected a lock-honored check for day 2")
}
