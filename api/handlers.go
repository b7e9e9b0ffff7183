/*
handlers.go - HTTP handlers for the cashflow scheduler API

PURPOSE:
  Decodes a Plan (and, where relevant, a Schedule) from the request body,
  calls the appropriate solver/validator/verifier, and serializes the
  result. Every handler is a thin wrapper: all feasibility and optimality
  logic lives in cashflow/dp/cpsat.

ERROR HANDLING:
  Errors are returned as JSON with an HTTP status derived from the
  underlying cashflow.ErrorKind:
    400: InvalidAmount, InvalidDay, InvalidActionLiteral, InvalidPlan
    409: Infeasible
    503: SolverUnavailable
    504: Timeout
    500: anything else (should not happen for a correct solver)

SEE ALSO:
  - server.go: router and middleware
  - factory/plan.go: Plan/Schedule JSON (de)serialization
*/
package api

import (
	"encoding/json"
	"net/http"

	"github.com/cashctl/cashflow-scheduler/cashflow"
	"github.com/cashctl/cashflow-scheduler/cpsat"
	"github.com/cashctl/cashflow-scheduler/dp"
	"github.com/cashctl/cashflow-scheduler/factory"
	"github.com/cashctl/cashflow-scheduler/scheduler"
)

// Handler holds the (stateless) dependencies for the HTTP handlers. It
// carries no store and no cache: every call builds a Plan, solves it, and
// returns: no store, no cache, no cross-call state.
type Handler struct{}

// NewHandler creates a Handler.
func NewHandler() *Handler { return &Handler{} }

// solveRequest is the body of POST /api/plans/solve.
type solveRequest struct {
	Plan   factory.PlanJSON `json:"plan"`
	Solver string           `json:"solver,omitempty"` // auto|dp|cpsat
}

// Solve handles POST /api/plans/solve.
func (h *Handler) Solve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}

	plan, err := factory.FromJSON(req.Plan)
	if err != nil {
		writeErrorKind(w, err)
		return
	}

	schedule, solverName, err := scheduler.SolveWith(plan, req.Solver)
	if err != nil {
		writeErrorKind(w, err)
		return
	}

	report := cashflow.ValidateSchedule(plan, schedule)
	resp := factory.ToJSON(schedule, report)
	resp.Solver.Name = solverName
	writeJSON(w, http.StatusOK, resp)
}

// validateRequest is the body of POST /api/plans/validate.
type validateRequest struct {
	Plan     factory.PlanJSON `json:"plan"`
	Actions  []*string        `json:"actions"`
}

// Validate handles POST /api/plans/validate.
func (h *Handler) Validate(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	plan, err := factory.FromJSON(req.Plan)
	if err != nil {
		writeErrorKind(w, err)
		return
	}
	if len(req.Actions) != cashflow.Horizon {
		writeError(w, http.StatusBadRequest, "actions must have length 30", nil)
		return
	}
	var actions [cashflow.Horizon]cashflow.Action
	for i, lit := range req.Actions {
		if lit == nil {
			writeError(w, http.StatusBadRequest, "validate requires every day to have an action", nil)
			return
		}
		switch *lit {
		case "O":
			actions[i] = cashflow.Off
		case "Spark":
			actions[i] = cashflow.Work
		default:
			writeErrorKind(w, &cashflow.InvalidActionLiteralError{Literal: *lit})
			return
		}
	}

	report := cashflow.Validate(plan, actions)
	writeJSON(w, http.StatusOK, report)
}

// verifyRequest is the body of POST /api/plans/verify.
type verifyRequest struct {
	Plan           factory.PlanJSON `json:"plan"`
	Solver         string           `json:"solver,omitempty"`
	MaxTimeSeconds float64          `json:"max_time_seconds,omitempty"`
}

// Verify handles POST /api/plans/verify: it solves the plan (DP by
// default) and cross-checks the objective against the CP-SAT search.
func (h *Handler) Verify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	plan, err := factory.FromJSON(req.Plan)
	if err != nil {
		writeErrorKind(w, err)
		return
	}

	schedule, _, err := scheduler.SolveWith(plan, req.Solver)
	if err != nil {
		writeErrorKind(w, err)
		return
	}

	report, err := cpsat.VerifyLexOptimal(plan, schedule, cpsat.Options{MaxTimeSeconds: req.MaxTimeSeconds})
	if err != nil {
		writeErrorKind(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

// adjustRequest is the body of POST /api/plans/adjust.
type adjustRequest struct {
	Plan        factory.PlanJSON `json:"plan"`
	CurrentDay  int              `json:"current_day"`
	ActualEOD   string           `json:"actual_eod"`
}

// Adjust handles POST /api/plans/adjust: the mid-month adjust_from_day flow.
func (h *Handler) Adjust(w http.ResponseWriter, r *http.Request) {
	var req adjustRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err)
		return
	}
	plan, err := factory.FromJSON(req.Plan)
	if err != nil {
		writeErrorKind(w, err)
		return
	}
	if req.CurrentDay < 1 || req.CurrentDay > cashflow.Horizon {
		writeErrorKind(w, &cashflow.InvalidDayError{Day: req.CurrentDay})
		return
	}
	actualCents, err := cashflow.ToCents(req.ActualEOD)
	if err != nil {
		writeErrorKind(w, err)
		return
	}

	schedule, err := dp.AdjustFromDay(plan, req.CurrentDay, actualCents, dp.Options{})
	if err != nil {
		writeErrorKind(w, err)
		return
	}
	report := cashflow.ValidateSchedule(plan, schedule)
	writeJSON(w, http.StatusOK, factory.ToJSON(schedule, report))
}


// =============================================================================
// RESPONSE HELPERS
// =============================================================================

type errorResponse struct {
	Error   string `json:"error"`
	Kind    string `json:"kind,omitempty"`
	Details string `json:"details,omitempty"`
}

type kindError interface {
	Kind() cashflow.ErrorKind
}

func writeErrorKind(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	kind := ""
	if ke, ok := err.(kindError); ok {
		kind = string(ke.Kind())
		switch ke.Kind() {
		case cashflow.ErrorKindInvalidAmount, cashflow.ErrorKindInvalidDay,
			cashflow.ErrorKindInvalidActionLiteral, cashflow.ErrorKindInvalidPlan:
			status = http.StatusBadRequest
		case cashflow.ErrorKindInfeasible:
			status = http.StatusConflict
		case cashflow.ErrorKindSolverUnavailable:
			status = http.StatusServiceUnavailable
		case cashflow.ErrorKindTimeout:
			status = http.StatusGatewayTimeout
		}
	}
	writeJSON(w, status, errorResponse{Error: err.Error(), Kind: kind})
}

func writeError(w http.ResponseWriter, status int, message string, err error) {
	resp := errorResponse{Error: message}
	if err != nil {
		resp.Details = err.Error()
	}
	writeJSON(w, status, resp)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
