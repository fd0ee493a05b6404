// Command opopt-plan wires a data provider, the Model Builder, the
// Solver Driver and the Result Extractor into one CLI:
// run.CLI(solver).Run(ctx), a json-and-default-tag Option struct, and a
// slice-of-Output return value.
package main

import (
	"context"
	"log"
	"time"

	"github.com/nextmv-io/sdk/run"

	"github.com/johncoudeadam/opopt-plan/internal/dataset"
	"github.com/johncoudeadam/opopt-plan/internal/dummydata"
	"github.com/johncoudeadam/opopt-plan/internal/model"
	"github.com/johncoudeadam/opopt-plan/internal/schedule"
	"github.com/johncoudeadam/opopt-plan/internal/solver"
)

func main() {
	err := run.CLI(solve).Run(context.Background())
	if err != nil {
		log.Fatal(err)
	}
}

// Input is the expected JSON input. Dataset is optional: when omitted,
// the CLI falls back to the dummydata provider so the binary is runnable
// with no input file at all.
type Input struct {
	Dataset *dataset.Dataset `json:"dataset,omitempty"`
}

// Option is the solve-parameter surface: a nested Limits struct carrying
// a default-tagged time.Duration alongside the worker count and solve
// horizon.
type Option struct {
	Limits struct {
		Duration time.Duration `json:"duration" default:"60s"`
	} `json:"limits"`
	Workers         int  `json:"workers" default:"1"`
	PlanningDays    int  `json:"planning_days" default:"14"`
	ForcePreventive bool `json:"force_preventive" default:"false"`
}

// Output is the CLI's single result: the solved fleet schedule.
type Output struct {
	Schedule schedule.Schedule `json:"schedule"`
}

func solve(input Input, opts Option) ([]Output, error) {
	ds, err := resolveDataset(input)
	if err != nil {
		return nil, err
	}

	if err := dataset.Validate(ds); err != nil {
		return nil, err
	}

	built, err := model.Build(ds, model.Options{
		PlanningDays:    opts.PlanningDays,
		ForcePreventive: opts.ForcePreventive,
	})
	if err != nil {
		return nil, err
	}

	params := solver.Params{
		TimeLimitSeconds: int(opts.Limits.Duration.Seconds()),
		NumWorkers:       opts.Workers,
		PlanningDays:     opts.PlanningDays,
	}
	if params.TimeLimitSeconds < 1 {
		params.TimeLimitSeconds = 60
	}
	if params.NumWorkers < 1 {
		params.NumWorkers = 1
	}

	result, err := solver.Solve(built, params)
	if err != nil {
		return nil, err
	}

	sched, err := schedule.Extract(
		built,
		result.Solution,
		schedule.Status(result.Status),
		result.Message,
		result.ObjectiveValue,
		result.WallTimeSeconds,
	)
	if err != nil {
		return nil, err
	}

	return []Output{{Schedule: sched}}, nil
}

func resolveDataset(input Input) (dataset.Dataset, error) {
	if input.Dataset != nil {
		return *input.Dataset, nil
	}
	return dummydata.Generate(dummydata.DefaultConfig())
}
