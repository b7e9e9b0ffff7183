/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the HTTP router (chi), middleware stack, and route definitions.
  This is a thin external caller: it only
  constructs a cashflow.Plan, calls a solver, and serializes the returned
  Schedule/ValidationReport/VerificationReport. No business logic lives
  here.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for local tooling

ROUTES:
  POST /api/plans/solve     Solve a plan, return a Schedule
  POST /api/plans/validate  Validate a 30-day action sequence against a Plan
  POST /api/plans/verify    Solve a Plan and cross-check its objective against the CP-SAT search
  POST /api/plans/adjust    Resume-from-day with a compensating adjustment

SEE ALSO:
  - handlers.go: handler implementations
  - cmd/scheduler/main.go: CLI entry point built on the same packages
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api/plans", func(r chi.Router) {
		r.Post("/solve", h.Solve)
		r.Post("/validate", h.Validate)
		r.Post("/verify", h.Verify)
		r.Post("/adjust", h.Adjust)
	})

	return r
}
