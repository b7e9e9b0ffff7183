package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashctl/cashflow-scheduler/api"
	"github.com/cashctl/cashflow-scheduler/factory"
)

func newTestRouter() http.Handler {
	return api.NewRouter(api.NewHandler())
}

func feasiblePlanJSON() factory.PlanJSON {
	return factory.PlanJSON{
		StartBalance: "0.00",
		TargetEnd:    "300.00",
		Band:         "0.00",
		RentGuard:    "0.00",
	}
}

func postJSON(t *testing.T, router http.Handler, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	data, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestSolve_ReturnsFeasibleSchedule(t *testing.T) {
	router := newTestRouter()
	rec := postJSON(t, router, "/api/plans/solve", map[string]any{"plan": feasiblePlanJSON()})

	require.Equal(t, http.StatusOK, rec.Code)
	var resp factory.ScheduleJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Spark", resp.Actions[0])
	assert.Equal(t, "dp", resp.Solver.Name)
}

func TestSolve_InvalidAmountReturnsBadRequest(t *testing.T) {
	router := newTestRouter()
	plan := feasiblePlanJSON()
	plan.StartBalance = "not-a-number"
	rec := postJSON(t, router, "/api/plans/solve", map[string]any{"plan": plan})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestSolve_InfeasiblePlanReturnsConflict(t *testing.T) {
	router := newTestRouter()
	plan := feasiblePlanJSON()
	plan.TargetEnd = "10000000.00"
	plan.Band = "0.00"
	rec := postJSON(t, router, "/api/plans/solve", map[string]any{"plan": plan})

	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestValidate_ReportsPassingChecks(t *testing.T) {
	router := newTestRouter()
	work := "Spark"
	off := "O"
	actions := make([]*string, 30)
	for i := 0; i < 30; i++ {
		actions[i] = &off
	}
	// Work on days 1, 3 and 5 lands exactly on the 300.00 target.
	actions[0] = &work
	actions[2] = &work
	actions[4] = &work

	body := map[string]any{
		"plan":    feasiblePlanJSON(),
		"actions": actions,
	}
	rec := postJSON(t, router, "/api/plans/validate", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		OK bool
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.OK)
}

func TestVerify_AgreesWithDPSolve(t *testing.T) {
	router := newTestRouter()
	rec := postJSON(t, router, "/api/plans/verify", map[string]any{"plan": feasiblePlanJSON()})

	require.Equal(t, http.StatusOK, rec.Code)
	var report struct {
		OK bool
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.True(t, report.OK)
}

func TestAdjust_AppliesCompensatingAdjustment(t *testing.T) {
	router := newTestRouter()
	// A wide band keeps the plan feasible once day 5 is corrected up to
	// 1000.00: with no bills the balance can never fall back to 300.00.
	plan := feasiblePlanJSON()
	plan.Band = "1000.00"
	body := map[string]any{
		"plan":        plan,
		"current_day": 5,
		"actual_eod":  "1000.00",
	}
	rec := postJSON(t, router, "/api/plans/adjust", body)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp factory.ScheduleJSON
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "1000", trimDecimal(resp.Ledger[4].Closing))
}

// trimDecimal strips the cents suffix for a coarse comparison, tolerating
// either "1000.00" or "1000.0" style renderings.
func trimDecimal(s string) string {
	out := make([]byte, 0, len(s))
	for _, c := range s {
		if c == '.' {
			break
		}
		out = append(out, byte(c))
	}
	return string(out)
}
