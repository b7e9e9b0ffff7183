package dp_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashctl/cashflow-scheduler/cashflow"
	"github.com/cashctl/cashflow-scheduler/dp"
)

// loosePlan is easy to satisfy: wide band, no rent guard, no bills.
func loosePlan() *cashflow.Plan {
	return &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    100_000,
		BandCents:         1_000_000,
		RentGuardCents:    0,
	}
}

func TestSolve_Day1IsAlwaysWork(t *testing.T) {
	sched, err := dp.Solve(loosePlan(), dp.Options{})
	require.NoError(t, err)
	assert.Equal(t, cashflow.Work, sched.Actions[0])
}

func TestSolve_MinimizesWorkdaysFirst(t *testing.T) {
	// Target is exactly reachable with one workday (day 1 net = 10000);
	// any extra workday only adds back-to-back risk or moves the final
	// balance further from target, so the optimal schedule should use the
	// minimum workdays that can still land within the band.
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    cashflow.WorkNetCents,
		BandCents:         0,
	}
	sched, err := dp.Solve(plan, dp.Options{})
	require.NoError(t, err)
	assert.Equal(t, 1, sched.Objective.Workdays)
	assert.Equal(t, cashflow.Work, sched.Actions[0])
	for i := 1; i < cashflow.Horizon; i++ {
		assert.Equal(t, cashflow.Off, sched.Actions[i], "day %d should be Off once target is hit", i+1)
	}
}

func TestSolve_AvoidsBackToBackWhenPossible(t *testing.T) {
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    3 * cashflow.WorkNetCents,
		BandCents:         0,
	}
	sched, err := dp.Solve(plan, dp.Options{})
	require.NoError(t, err)
	assert.Equal(t, 3, sched.Objective.Workdays)
	assert.Equal(t, 0, sched.Objective.B2B, "3 workdays fit in 30 days with no back-to-back pairs required")
}

func TestSolve_RespectsLockedDays(t *testing.T) {
	plan := loosePlan()
	plan.Lock(2, cashflow.Work)
	plan.Lock(3, cashflow.Off)

	sched, err := dp.Solve(plan, dp.Options{})
	require.NoError(t, err)
	assert.Equal(t, cashflow.Work, sched.Actions[1])
	assert.Equal(t, cashflow.Off, sched.Actions[2])
}

func TestSolve_NegativeClosingIsRejected(t *testing.T) {
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    0,
		BandCents:         1_000_000,
		Bills:             []cashflow.Bill{{Day: 2, Name: "rent", AmountCents: 15_000}},
	}
	sched, err := dp.Solve(plan, dp.Options{})
	require.NoError(t, err)
	for _, row := range sched.Ledger {
		assert.GreaterOrEqual(t, row.ClosingCents, int64(0))
	}
}

func TestSolve_InfeasibleWhenBandUnreachable(t *testing.T) {
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    10_000_000, // far beyond what 30 days of Work can reach
		BandCents:         0,
	}
	_, err := dp.Solve(plan, dp.Options{})
	require.Error(t, err)
	assert.True(t, cashflow.IsInfeasible(err))
	var infErr *cashflow.InfeasibleError
	assert.ErrorAs(t, err, &infErr)
}

func TestSolve_InfeasibleWhenRentGuardBreached(t *testing.T) {
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    30 * cashflow.WorkNetCents,
		BandCents:         1_000_000,
		RentGuardCents:    30 * cashflow.WorkNetCents + 1,
	}
	_, err := dp.Solve(plan, dp.Options{})
	require.Error(t, err)
	assert.True(t, cashflow.IsInfeasible(err))
}

func TestSolve_ValidatesAgainstIndependentChecker(t *testing.T) {
	plan := loosePlan()
	sched, err := dp.Solve(plan, dp.Options{})
	require.NoError(t, err)

	report := cashflow.ValidateSchedule(plan, sched)
	assert.True(t, report.OK)
}

func TestSolve_IsDeterministicAcrossRepeatedCalls(t *testing.T) {
	plan := &cashflow.Plan{
		StartBalanceCents: 0,
		TargetEndCents:    5 * cashflow.WorkNetCents,
		BandCents:         500,
	}
	first, err := dp.Solve(plan, dp.Options{})
	require.NoError(t, err)
	second, err := dp.Solve(plan, dp.Options{})
	require.NoError(t, err)
	assert.Equal(t, first.Actions, second.Actions)
}

func TestSolve_CollectsDiagnosticsWhenRequested(t *testing.T) {
	sched, err := dp.Solve(loosePlan(), dp.Options{CollectDiagnostics: true})
	require.NoError(t, err)
	require.NotNil(t, sched.Diagnostics)
	assert.Greater(t, sched.Diagnostics.StatesExplored, 0)
}

func TestSolve_NoDiagnosticsByDefault(t *testing.T) {
	sched, err := dp.Solve(loosePlan(), dp.Options{})
	require.NoError(t, err)
	assert.Nil(t, sched.Diagnostics)
}
