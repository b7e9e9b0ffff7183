/*
main.go - Cashflow scheduler CLI entry point

PURPOSE:
  Reads a Plan JSON file, solves it, and prints the resulting Schedule
  JSON to stdout. No persistence, no network, no flags beyond input,
  solver selection, and the optional cross-check.

COMMAND-LINE FLAGS:
  -plan     Path to a Plan JSON file (default: read from stdin)
  -solver   auto|dp|cpsat (default: dp)
  -verify   Also run the CP-SAT cross-check and print a VerificationReport
            to stderr (default: false)

EXAMPLES:
  ./scheduler -plan plan.json
  ./scheduler -plan plan.json -solver cpsat -verify

SEE ALSO:
  - api/server.go: the HTTP shell built on the same packages
  - factory/plan.go: Plan/Schedule JSON (de)serialization
*/
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/cashctl/cashflow-scheduler/cashflow"
	"github.com/cashctl/cashflow-scheduler/cpsat"
	"github.com/cashctl/cashflow-scheduler/factory"
	"github.com/cashctl/cashflow-scheduler/scheduler"
)

func main() {
	planPath := flag.String("plan", "", "path to a Plan JSON file (default: stdin)")
	solver := flag.String("solver", "dp", "solver to use: auto|dp|cpsat")
	verify := flag.Bool("verify", false, "also run the CP-SAT cross-check")
	flag.Parse()

	data, err := readPlanInput(*planPath)
	if err != nil {
		log.Fatalf("failed to read plan: %v", err)
	}

	plan, err := factory.ParsePlan(data)
	if err != nil {
		log.Fatalf("invalid plan: %v", err)
	}

	schedule, solverName, err := scheduler.SolveWith(plan, *solver)
	if err != nil {
		log.Fatalf("solve failed: %v", err)
	}

	if *verify {
		report, vErr := cpsat.VerifyLexOptimal(plan, schedule, cpsat.Options{})
		if vErr != nil {
			log.Printf("verification failed: %v", vErr)
		} else {
			fmt.Fprintf(os.Stderr, "cpsat agreement: ok=%v objective=%+v stages=%v\n", report.OK, report.Objective, report.Stages)
		}
	}

	report := cashflow.ValidateSchedule(plan, schedule)
	resp := factory.ToJSON(schedule, report)
	resp.Solver.Name = solverName

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		log.Fatalf("failed to encode schedule: %v", err)
	}
}

func readPlanInput(path string) ([]byte, error) {
	if path == "" {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(path)
}
