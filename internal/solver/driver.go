// Package solver is the Solver Driver: it invokes the underlying MIP
// solver with a configured time limit, captures status and objective,
// and returns a raw mip.Solution for the Result Extractor.
package solver

import (
	"fmt"
	"time"

	"github.com/nextmv-io/sdk/mip"

	"github.com/johncoudeadam/opopt-plan/internal/model"
)

// Status is the outcome of one solve attempt.
type Status string

const (
	Optimal      Status = "OPTIMAL"
	Feasible     Status = "FEASIBLE"
	Infeasible   Status = "INFEASIBLE"
	ModelInvalid Status = "MODEL_INVALID"
	Unknown      Status = "UNKNOWN"
)

// Params configures one solve attempt.
type Params struct {
	TimeLimitSeconds int
	NumWorkers       int
	PlanningDays     int
}

// DefaultParams returns reasonable defaults for a local or test solve.
func DefaultParams() Params {
	return Params{TimeLimitSeconds: 60, NumWorkers: 1, PlanningDays: 14}
}

// Result is the raw, unformatted outcome of one solve: a status, the
// wall time spent, the objective (when one exists) and -- on OPTIMAL or
// FEASIBLE -- the solved mip.Solution the Result Extractor will walk.
type Result struct {
	Status          Status
	Message         string
	ObjectiveValue  *int
	WallTimeSeconds float64
	Solution        mip.Solution
}

// Solve is the Solver Driver entrypoint. It is re-entrant: every call
// creates its own mip.Solver against the given built model and retains
// no state across invocations.
func Solve(built *model.Built, params Params) (Result, error) {
	if params.TimeLimitSeconds < 1 {
		return Result{}, fmt.Errorf("solver: time_limit_seconds must be >= 1, got %d", params.TimeLimitSeconds)
	}
	if params.NumWorkers < 1 {
		return Result{}, fmt.Errorf("solver: num_workers must be >= 1, got %d", params.NumWorkers)
	}

	mipSolver, err := mip.NewSolver(mip.Highs, built.Model)
	if err != nil {
		return Result{Status: ModelInvalid, Message: err.Error()}, nil
	}

	solveOptions := mip.NewSolveOptions()
	if err := solveOptions.SetMaximumDuration(time.Duration(params.TimeLimitSeconds) * time.Second); err != nil {
		return Result{}, fmt.Errorf("solver: setting time limit: %w", err)
	}
	if err := solveOptions.SetMIPGapRelative(0); err != nil {
		return Result{}, fmt.Errorf("solver: setting MIP gap: %w", err)
	}
	solveOptions.SetVerbosity(mip.Off)

	// NumWorkers is accepted on Params for interface completeness; the
	// HiGHS driver reached through this SDK (see DESIGN.md) exposes
	// duration, MIP-gap and verbosity knobs but no documented per-solve
	// thread count in the surface this builder exercises, so it is not
	// wired to an actual solver option here.

	solution, err := mipSolver.Solve(solveOptions)
	if err != nil {
		return Result{Status: ModelInvalid, Message: err.Error()}, nil
	}

	return classify(solution, params), nil
}

// classify maps a solved mip.Solution onto this package's Status values.
// The mip.Solution surface this driver exercises (HasValues, IsOptimal,
// IsSubOptimal, ObjectiveValue, RunTime, Value) does not expose a direct
// infeasible-vs-timed-out discriminator once
// HasValues() is false. This driver treats "no values, full time budget
// consumed" as TimeoutWithoutSolution (UNKNOWN) and "no values, solver
// returned before the limit" as Infeasible -- the same heuristic a
// caller reading solver.RunTime() against the requested limit would
// apply by hand; a solver whose Go binding exposes a dedicated
// infeasibility flag should use it directly instead.
func classify(solution mip.Solution, params Params) Result {
	if solution == nil || !solution.HasValues() {
		elapsed := 0.0
		if solution != nil {
			elapsed = solution.RunTime().Seconds()
		}
		limit := float64(params.TimeLimitSeconds)
		if elapsed >= limit*0.95 {
			return Result{
				Status:          Unknown,
				Message:         "time limit reached without a feasible solution",
				WallTimeSeconds: elapsed,
			}
		}
		return Result{
			Status:          Infeasible,
			Message:         "solver proved the model infeasible",
			WallTimeSeconds: elapsed,
		}
	}

	wallTime := solution.RunTime().Seconds()

	status := Feasible
	if solution.IsOptimal() {
		status = Optimal
	}

	objective := int(solution.ObjectiveValue() + 0.5)

	return Result{
		Status:          status,
		ObjectiveValue:  &objective,
		WallTimeSeconds: wallTime,
		Solution:        solution,
	}
}
