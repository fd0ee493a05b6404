// Package integration exercises the full Model Builder -> Solver Driver
// -> Result Extractor pipeline against a handful of seeded end-to-end
// scenarios covering the core feasibility and objective behaviors.
package integration

import (
	"testing"

	"github.com/johncoudeadam/opopt-plan/internal/dataset"
	"github.com/johncoudeadam/opopt-plan/internal/model"
	"github.com/johncoudeadam/opopt-plan/internal/schedule"
	"github.com/johncoudeadam/opopt-plan/internal/solver"
)

func runScenario(t *testing.T, ds dataset.Dataset, planningDays int) schedule.Schedule {
	t.Helper()
	if err := dataset.Validate(ds); err != nil {
		t.Fatalf("dataset should validate: %v", err)
	}
	built, err := model.Build(ds, model.Options{PlanningDays: planningDays})
	if err != nil {
		t.Fatalf("build should succeed: %v", err)
	}
	res, err := solver.Solve(built, solver.Params{TimeLimitSeconds: 30, NumWorkers: 1, PlanningDays: planningDays})
	if err != nil {
		t.Fatalf("solve should not error: %v", err)
	}
	sched, err := schedule.Extract(built, res.Solution, schedule.Status(res.Status), res.Message, res.ObjectiveValue, res.WallTimeSeconds)
	if err != nil {
		t.Fatalf("extract should not error: %v", err)
	}
	return sched
}

// S1: one vehicle, two empty depots, two days, one route per day, no
// maintenance. Expect OPTIMAL, objective 0, both routes run by the one
// vehicle, final odometer 200.
func TestScenarioS1(t *testing.T) {
	ds := dataset.Dataset{
		Vehicles: []dataset.Vehicle{
			{ID: "vehicle-1", InitialLocation: "depot-1", InitialKM: 0},
		},
		Locations: map[string]dataset.Location{
			"depot-1": {ID: "depot-1", Type: dataset.Depot, Capacity: 2, ManhoursPerShift: 8},
			"depot-2": {ID: "depot-2", Type: dataset.Depot, Capacity: 2, ManhoursPerShift: 8},
		},
		Routes: []dataset.Route{
			{ID: "day0", Day: 0, StartLocation: "depot-1", EndLocation: "depot-2", DistanceKM: 100},
			{ID: "day1", Day: 1, StartLocation: "depot-2", EndLocation: "depot-1", DistanceKM: 100},
		},
	}

	sched := runScenario(t, ds, 2)

	if sched.Status != schedule.Optimal {
		t.Fatalf("expected OPTIMAL, got %s: %s", sched.Status, sched.Message)
	}
	if sched.ObjectiveValue == nil || *sched.ObjectiveValue != 0 {
		t.Fatalf("expected objective 0, got %v", sched.ObjectiveValue)
	}
	vs, ok := sched.Vehicles["vehicle-1"]
	if !ok {
		t.Fatal("expected vehicle-1 in the schedule")
	}
	if len(vs.Routes) != 2 {
		t.Fatalf("expected vehicle-1 to run both routes, got %d", len(vs.Routes))
	}
}

// S2: two vehicles at depot-1, one corrective due immediately
// (remaining_km=0) on vehicle-1, one route per day. Expect vehicle-1 does
// maintenance in shift 0 at depot-1, vehicle-2 runs the route.
func TestScenarioS2(t *testing.T) {
	ds := dataset.Dataset{
		Vehicles: []dataset.Vehicle{
			{
				ID: "vehicle-1", InitialLocation: "depot-1", InitialKM: 0,
				PendingCorrectiveTasks: []dataset.PendingTask{{MaintenanceTypeID: "cm-electrical-free", RemainingKM: 0}},
			},
			{ID: "vehicle-2", InitialLocation: "depot-1", InitialKM: 0},
		},
		Locations: map[string]dataset.Location{
			"depot-1": {ID: "depot-1", Type: dataset.Depot, Capacity: 2, ManhoursPerShift: 8},
			"depot-2": {ID: "depot-2", Type: dataset.Depot, Capacity: 2, ManhoursPerShift: 8},
		},
		MaintenanceTypes: []dataset.MaintenanceType{
			{ID: "cm-electrical-free", Kind: dataset.Corrective, Manhours: 4},
		},
		Routes: []dataset.Route{
			{ID: "day0", Day: 0, StartLocation: "depot-1", EndLocation: "depot-2", DistanceKM: 50},
			{ID: "day1", Day: 1, StartLocation: "depot-2", EndLocation: "depot-1", DistanceKM: 50},
		},
	}

	sched := runScenario(t, ds, 2)

	if sched.Status != schedule.Optimal && sched.Status != schedule.Feasible {
		t.Fatalf("expected OPTIMAL or FEASIBLE, got %s: %s", sched.Status, sched.Message)
	}

	v1 := sched.Vehicles["vehicle-1"]
	if len(v1.Maintenance) != 1 {
		t.Fatalf("expected vehicle-1 to carry the corrective instance, got %d maintenance records", len(v1.Maintenance))
	}
	for _, m := range v1.Maintenance {
		if m.Depot != "depot-1" {
			t.Fatalf("expected maintenance at depot-1 (vehicle can't reach another depot before km=0), got %s", m.Depot)
		}
		if m.StartShift != 0 {
			t.Fatalf("expected maintenance to start at shift 0, got %d", m.StartShift)
		}
	}
}

// S3: one vehicle at depot-1, carrying an electrical corrective due
// immediately (remaining_km=0). Only depot-2 is specialization-capable
// for electrical work, and the sole vehicle is the only one that can
// cover the single route, which runs depot-1 -> depot-2. The vehicle
// can only reach the capable depot by taking that route, but doing so
// pushes its odometer to 50 before maintenance starts -- past the
// max_km=0 ceiling the corrective's zero remaining-km window pins it
// to. There's no way to both cover the route and hold the corrective's
// bound, so the model is infeasible.
func TestScenarioS3(t *testing.T) {
	ds := dataset.Dataset{
		Vehicles: []dataset.Vehicle{
			{
				ID: "vehicle-1", InitialLocation: "depot-1", InitialKM: 0,
				PendingCorrectiveTasks: []dataset.PendingTask{{MaintenanceTypeID: "cm-electrical-only", RemainingKM: 0}},
			},
		},
		Locations: map[string]dataset.Location{
			"depot-1": {ID: "depot-1", Type: dataset.Depot, Capacity: 2, ManhoursPerShift: 8},
			"depot-2": {ID: "depot-2", Type: dataset.Depot, Capacity: 2, ManhoursPerShift: 8, SpecializedMaintenance: []string{"electrical"}},
		},
		MaintenanceTypes: []dataset.MaintenanceType{
			{ID: "cm-electrical-only", Kind: dataset.Corrective, Manhours: 4, Specialization: "electrical"},
		},
		Routes: []dataset.Route{
			{ID: "day0", Day: 0, StartLocation: "depot-1", EndLocation: "depot-2", DistanceKM: 50},
		},
	}

	sched := runScenario(t, ds, 1)

	if sched.Status != schedule.Infeasible {
		t.Fatalf("expected INFEASIBLE, got %s: %s", sched.Status, sched.Message)
	}
}

// S4: one vehicle at 9500km, one preventive optimal_km=10000 max_km=11000,
// one 600km route. Maintenance can happen before the route (km 9500,
// deviation 500) or after it (km 10100, deviation 100); the solver should
// pick the latter, minimizing the objective to 100.
func TestScenarioS4(t *testing.T) {
	ds := dataset.Dataset{
		Vehicles: []dataset.Vehicle{
			{
				ID: "vehicle-1", InitialLocation: "depot-1", InitialKM: 9500,
				PendingPreventiveTasks: []dataset.PendingTask{{MaintenanceTypeID: "pm-1", RemainingKM: 1000}},
			},
		},
		Locations: map[string]dataset.Location{
			"depot-1": {ID: "depot-1", Type: dataset.Depot, Capacity: 2, ManhoursPerShift: 8},
			"depot-2": {ID: "depot-2", Type: dataset.Depot, Capacity: 2, ManhoursPerShift: 8},
		},
		MaintenanceTypes: []dataset.MaintenanceType{
			{ID: "pm-1", Kind: dataset.Preventive, OptimalKM: 10000, MaxKM: 11000, Manhours: 4},
		},
		Routes: []dataset.Route{
			{ID: "day0", Day: 0, StartLocation: "depot-1", EndLocation: "depot-2", DistanceKM: 600},
		},
	}

	sched := runScenario(t, ds, 1)

	if sched.Status != schedule.Optimal {
		t.Fatalf("expected OPTIMAL, got %s: %s", sched.Status, sched.Message)
	}
	if sched.ObjectiveValue == nil || *sched.ObjectiveValue != 100 {
		t.Fatalf("expected objective 100 (|10100-10000|), got %v", sched.ObjectiveValue)
	}
}

// S5: as S4 but max_km=10050, so maintenance must occur pre-route at
// km=9500; objective = 500.
func TestScenarioS5(t *testing.T) {
	ds := dataset.Dataset{
		Vehicles: []dataset.Vehicle{
			{
				ID: "vehicle-1", InitialLocation: "depot-1", InitialKM: 9500,
				PendingPreventiveTasks: []dataset.PendingTask{{MaintenanceTypeID: "pm-1", RemainingKM: 1000}},
			},
		},
		Locations: map[string]dataset.Location{
			"depot-1": {ID: "depot-1", Type: dataset.Depot, Capacity: 2, ManhoursPerShift: 8},
			"depot-2": {ID: "depot-2", Type: dataset.Depot, Capacity: 2, ManhoursPerShift: 8},
		},
		MaintenanceTypes: []dataset.MaintenanceType{
			{ID: "pm-1", Kind: dataset.Preventive, OptimalKM: 10000, MaxKM: 10050, Manhours: 4},
		},
		Routes: []dataset.Route{
			{ID: "day0", Day: 0, StartLocation: "depot-1", EndLocation: "depot-2", DistanceKM: 600},
		},
	}

	sched := runScenario(t, ds, 1)

	if sched.Status != schedule.Optimal {
		t.Fatalf("expected OPTIMAL, got %s: %s", sched.Status, sched.Message)
	}
	if sched.ObjectiveValue == nil || *sched.ObjectiveValue != 500 {
		t.Fatalf("expected objective 500 (|9500-10000|), got %v", sched.ObjectiveValue)
	}
}
