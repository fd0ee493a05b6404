// Package dummydata is a concrete data provider that synthesizes a
// fleet/depot/route/maintenance dataset for local runs and tests. It is
// not the only legal provider -- it is the stand-in for whatever feeds
// real operational data into the core.
package dummydata

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/johncoudeadam/opopt-plan/internal/dataset"
)

// Config shapes the synthetic fleet the generator builds.
type Config struct {
	VehicleCount  int
	DepotCount    int
	ParkingCount  int
	PlanningDays  int
	DepotCapacity int
	ParkingCapacity int
	ManhoursPerShift int
	RouteDistanceKM int
}

// DefaultConfig returns a small, feasible-by-construction configuration
// suitable for local smoke runs.
func DefaultConfig() Config {
	return Config{
		VehicleCount:     4,
		DepotCount:       2,
		ParkingCount:     1,
		PlanningDays:     14,
		DepotCapacity:    4,
		ParkingCapacity:  4,
		ManhoursPerShift: 16,
		RouteDistanceKM:  150,
	}
}

// Generate produces a validated synthetic Dataset. Location and vehicle
// IDs are deterministic and human-readable; a run tag minted with
// google/uuid is attached to the first depot's ID suffix so repeated
// local runs of this provider are trivially distinguishable in logs,
// without disturbing the deterministic numbering the rest of the
// generator relies on.
func Generate(cfg Config) (dataset.Dataset, error) {
	if cfg.VehicleCount < 1 {
		return dataset.Dataset{}, fmt.Errorf("dummydata: vehicle count must be >= 1")
	}
	if cfg.DepotCount < 2 {
		return dataset.Dataset{}, fmt.Errorf("dummydata: depot count must be >= 2")
	}

	runTag := uuid.New().String()[:8]

	locations := make(map[string]dataset.Location)
	depotIDs := make([]string, cfg.DepotCount)
	for i := 0; i < cfg.DepotCount; i++ {
		id := fmt.Sprintf("depot-%d", i)
		if i == 0 {
			id = fmt.Sprintf("depot-0-%s", runTag)
		}
		depotIDs[i] = id
		locations[id] = dataset.Location{
			ID:               id,
			Type:             dataset.Depot,
			Capacity:         cfg.DepotCapacity,
			ManhoursPerShift: cfg.ManhoursPerShift,
		}
	}
	for i := 0; i < cfg.ParkingCount; i++ {
		id := fmt.Sprintf("parking-%d", i)
		locations[id] = dataset.Location{
			ID:       id,
			Type:     dataset.Parking,
			Capacity: cfg.ParkingCapacity,
		}
	}

	maintenanceTypes := []dataset.MaintenanceType{
		{
			ID:        "preventive-inspection",
			Kind:      dataset.Preventive,
			OptimalKM: 10000,
			MaxKM:     11000,
			Manhours:  4,
		},
		{
			ID:             "corrective-brake",
			Kind:           dataset.Corrective,
			Manhours:       6,
			Specialization: "electrical",
			SafetyCritical: true,
		},
	}
	if len(depotIDs) > 0 {
		d := locations[depotIDs[len(depotIDs)-1]]
		d.SpecializedMaintenance = append(d.SpecializedMaintenance, "electrical")
		locations[depotIDs[len(depotIDs)-1]] = d
	}

	vehicles := make([]dataset.Vehicle, cfg.VehicleCount)
	for i := 0; i < cfg.VehicleCount; i++ {
		vehicles[i] = dataset.Vehicle{
			ID:              fmt.Sprintf("vehicle-%d", i),
			InitialLocation: depotIDs[i%len(depotIDs)],
			InitialKM:       9000 + 500*i,
			PendingPreventiveTasks: []dataset.PendingTask{
				{MaintenanceTypeID: "preventive-inspection", RemainingKM: 1000 + 500*i},
			},
		}
	}
	// One vehicle always carries the corrective instance, so the
	// generated dataset always exercises the specialization-routing
	// path end to end.
	vehicles[0].PendingCorrectiveTasks = []dataset.PendingTask{
		{MaintenanceTypeID: "corrective-brake", RemainingKM: 300},
	}

	routes := make([]dataset.Route, 0, cfg.PlanningDays)
	for day := 0; day < cfg.PlanningDays; day++ {
		start := depotIDs[day%len(depotIDs)]
		end := depotIDs[(day+1)%len(depotIDs)]
		if start == end && len(depotIDs) > 1 {
			end = depotIDs[(day+1)%len(depotIDs)]
		}
		routes = append(routes, dataset.Route{
			ID:            fmt.Sprintf("route-%d", day),
			Day:           day,
			StartLocation: start,
			EndLocation:   end,
			DistanceKM:    cfg.RouteDistanceKM,
		})
	}

	ds := dataset.Dataset{
		Vehicles:         vehicles,
		Locations:        locations,
		MaintenanceTypes: maintenanceTypes,
		Routes:           routes,
	}

	if err := dataset.Validate(ds); err != nil {
		return dataset.Dataset{}, err
	}
	return ds, nil
}
