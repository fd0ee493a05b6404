package schedule

import (
	"math"

	"github.com/nextmv-io/sdk/mip"

	"github.com/johncoudeadam/opopt-plan/internal/model"
)

const trueThreshold = 0.5

// Extract is the Result Extractor. It never consults the solver again:
// solution is read once, here.
//
// status/message/objectiveValue/wallTimeSeconds come from the Solver
// Driver; they are plain values (not a solver.Result) so this package
// never imports the solver package and stays a pure function of a
// solved model and the input dataset.
func Extract(
	built *model.Built,
	solution mip.Solution,
	status Status,
	message string,
	objectiveValue *int,
	wallTimeSeconds float64,
) (Schedule, error) {
	if status != Optimal && status != Feasible {
		return Schedule{
			Status:          status,
			Message:         message,
			WallTimeSeconds: wallTimeSeconds,
		}, nil
	}

	vehicles := make(map[string]VehicleSchedule, len(built.Index.Vehicles))
	for _, v := range built.Index.Vehicles {
		vehicles[v.ID] = VehicleSchedule{
			Routes:      make(map[string]RouteEntry),
			Maintenance: make(map[string]MaintenanceEntry),
		}
	}

	if err := extractRoutes(built, solution, vehicles); err != nil {
		return Schedule{}, err
	}

	totalMaintenance, err := extractMaintenance(built, solution, vehicles)
	if err != nil {
		return Schedule{}, err
	}

	return Schedule{
		Status:           status,
		ObjectiveValue:   objectiveValue,
		WallTimeSeconds:  wallTimeSeconds,
		TotalRoutes:      len(built.Index.Routes),
		TotalMaintenance: totalMaintenance,
		Vehicles:         vehicles,
	}, nil
}

func extractRoutes(built *model.Built, solution mip.Solution, vehicles map[string]VehicleSchedule) error {
	for ri, route := range built.Index.Routes {
		assignedVehicle := -1
		for v := range built.Index.Vehicles {
			if solution.Value(built.Vars.Assign(v, ri)) > trueThreshold {
				if assignedVehicle != -1 {
					return extractionErrorf("route %q is assigned to more than one vehicle", route.ID)
				}
				assignedVehicle = v
			}
		}
		if assignedVehicle == -1 {
			return extractionErrorf("route %q has no vehicle assigned", route.ID)
		}

		veh := built.Index.Vehicles[assignedVehicle]
		km := int(math.Round(solution.Value(built.Vars.KMStart(assignedVehicle, route.Shift()))))

		vehicles[veh.ID].Routes[route.ID] = RouteEntry{
			Shift:         route.Shift(),
			RouteID:       route.ID,
			StartLocation: route.StartLocation,
			EndLocation:   route.EndLocation,
			KM:            km,
		}
	}
	return nil
}

func extractMaintenance(built *model.Built, solution mip.Solution, vehicles map[string]VehicleSchedule) (int, error) {
	total := 0
	for _, inst := range built.Instances {
		if solution.Value(built.Vars.MDone(inst.ID)) <= trueThreshold {
			continue
		}
		total++

		startShift := -1
		for s := 0; s <= built.Index.Shifts-inst.Duration; s++ {
			sel, ok := built.Vars.MStartSel(inst.ID, s)
			if !ok {
				continue
			}
			if solution.Value(sel) > trueThreshold {
				if startShift != -1 {
					return 0, extractionErrorf("maintenance instance %q has more than one start shift selected", inst.ID)
				}
				startShift = s
			}
		}
		if startShift == -1 {
			return 0, extractionErrorf("maintenance instance %q is done but has no start shift selected", inst.ID)
		}

		depotIdx := -1
		for _, l := range inst.CapableDepots {
			sel, ok := built.Vars.MDepotSel(inst.ID, l)
			if !ok {
				continue
			}
			if solution.Value(sel) > trueThreshold {
				if depotIdx != -1 {
					return 0, extractionErrorf("maintenance instance %q has more than one depot selected", inst.ID)
				}
				depotIdx = l
			}
		}
		if depotIdx == -1 {
			return 0, extractionErrorf("maintenance instance %q is done but has no depot selected", inst.ID)
		}

		km := int(math.Round(solution.Value(built.Vars.MKM(inst.ID))))
		veh := built.Index.Vehicles[inst.VehicleIdx]

		vehicles[veh.ID].Maintenance[inst.ID] = MaintenanceEntry{
			MaintenanceType: inst.TypeID,
			StartShift:      startShift,
			EndShift:        startShift + inst.Duration - 1,
			Depot:           built.Index.LocationIDs[depotIdx],
			KM:              km,
		}
	}
	return total, nil
}
