package model

import (
	"fmt"

	"github.com/nextmv-io/sdk/mip"

	"github.com/johncoudeadam/opopt-plan/internal/dataset"
)

// Options configures the Model Builder.
type Options struct {
	// PlanningDays is the horizon length in days; it is a build-time
	// input because the horizon determines how many shift-indexed
	// variables exist. Zero defaults to the smallest horizon that
	// covers every route in the dataset.
	PlanningDays int

	// ForcePreventive, when true, fixes every preventive instance's
	// "done" boolean to true instead of leaving it to the objective, so
	// a caller that wants every due preventive task scheduled no matter
	// the cost can force it.
	ForcePreventive bool
}

// Built is everything the Solver Driver and Result Extractor need: the
// raw mip.Model, the variable handles, the index, and the derived
// instances.
type Built struct {
	Model     mip.Model
	Vars      *Variables
	Index     *Index
	Instances []Instance
	KMax      int

	// depotManhourConstraints caches one cumulative manhour constraint
	// per (depot, shift) so every instance's contribution accumulates
	// onto a single constraint instead of creating duplicates.
	depotManhourConstraints map[[2]int]mip.Constraint
}

// Build allocates every decision variable the fleet schedule needs and
// posts every constraint and the objective onto a fresh MIP model. The
// caller must have already run dataset.Validate.
func Build(ds dataset.Dataset, opts Options) (*Built, error) {
	planningDays := opts.PlanningDays
	if planningDays <= 0 {
		planningDays = ds.PlanningDays()
	}

	idx, err := BuildIndex(ds, planningDays)
	if err != nil {
		return nil, err
	}

	instances, err := DeriveInstances(idx, ds)
	if err != nil {
		return nil, err
	}

	kMax := computeKMax(idx, instances)

	m := mip.NewModel()
	m.Objective().SetMinimize()

	vars := allocateVariables(m, idx, instances, kMax)

	b := &Built{Model: m, Vars: vars, Index: idx, Instances: instances, KMax: kMax}

	postRouteCoverage(b)            // every route run by exactly one vehicle
	postVehicleExclusivity(b)       // a vehicle does one thing per shift
	postInitialLocations(b)         // fixes atLoc[v,0,*] to each vehicle's start
	postLocationContinuity(b)       // location transitions, night immobility
	postRouteStartLocation(b)       // a vehicle must be present to take a route
	postLocationCapacity(b)         // depot/parking capacity per shift
	postKMAccumulation(b)           // odometer bookkeeping
	postMaintenanceElementLookup(b) // reads odometer at a maintenance's start
	postMaxKMBound(b)               // hard km ceiling once scheduled
	postMaintenanceLocation(b)      // depot selection and presence
	postMaintenanceActivity(b)      // occupied shifts follow the chosen start
	postDepotManhourCumulative(b)   // per-depot, per-shift manhour budget
	postCorrectiveObligation(b, opts)
	postObjective(b)

	return b, nil
}

func (b *Built) locationIndexOrPanic(id string) int {
	li, ok := b.Index.LocationIndex(id)
	if !ok {
		// dataset.Validate should have caught this; a miss here is a
		// builder bug, not a bad input.
		panic(fmt.Sprintf("model: unresolved location id %q reached the builder", id))
	}
	return li
}
