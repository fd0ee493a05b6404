package model

import "github.com/nextmv-io/sdk/mip"

// postRouteCoverage requires every route to be covered by exactly one
// vehicle.
func postRouteCoverage(b *Built) {
	for r := range b.Index.Routes {
		c := b.Model.NewConstraint(mip.Equal, 1.0)
		for v := range b.Index.Vehicles {
			c.NewTerm(1.0, b.Vars.Assign(v, r))
		}
	}
}

// instancesByVehicle groups derived maintenance instances by owning
// vehicle.
func instancesByVehicle(instances []Instance) map[int][]Instance {
	out := make(map[int][]Instance)
	for _, inst := range instances {
		out[inst.VehicleIdx] = append(out[inst.VehicleIdx], inst)
	}
	return out
}

// postVehicleExclusivity limits a vehicle to at most one thing (a route,
// or one active maintenance shift) per shift.
func postVehicleExclusivity(b *Built) {
	byVehicle := instancesByVehicle(b.Instances)
	for v := range b.Index.Vehicles {
		for s := 0; s < b.Index.Shifts; s++ {
			c := b.Model.NewConstraint(mip.LessThanOrEqual, 1.0)
			for _, r := range b.Index.RouteIdxByShift[s] {
				c.NewTerm(1.0, b.Vars.Assign(v, r))
			}
			for _, inst := range byVehicle[v] {
				c.NewTerm(1.0, b.Vars.MActive(inst.ID, s))
			}
		}
	}
}

// postKMAccumulation fixes km_start[v,0] to the vehicle's initial
// odometer reading, and carries the odometer forward shift by shift:
// km_start[v,s+1] = km_start[v,s] plus the distance of whichever route v
// runs at shift s (zero if v runs no route, including every maintenance
// shift, since maintenance never contributes a distance term).
func postKMAccumulation(b *Built) {
	for v, veh := range b.Index.Vehicles {
		init := b.Model.NewConstraint(mip.Equal, float64(veh.InitialKM))
		init.NewTerm(1.0, b.Vars.KMStart(v, 0))

		for s := 0; s < b.Index.Shifts-1; s++ {
			c := b.Model.NewConstraint(mip.Equal, 0.0)
			c.NewTerm(1.0, b.Vars.KMStart(v, s+1))
			c.NewTerm(-1.0, b.Vars.KMStart(v, s))
			for _, ri := range b.Index.RouteIdxByShift[s] {
				route := b.Index.Routes[ri]
				c.NewTerm(-float64(route.DistanceKM), b.Vars.Assign(v, ri))
			}
		}
	}
}
