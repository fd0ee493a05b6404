package model

import "github.com/nextmv-io/sdk/mip"

// postInitialLocations fixes atLoc[v,0,l] to the vehicle's
// initial_location: at the very first shift of the horizon, where a
// vehicle sits is a dataset input, not something the solver gets to
// decide.
func postInitialLocations(b *Built) {
	for v, veh := range b.Index.Vehicles {
		initIdx := b.locationIndexOrPanic(veh.InitialLocation)
		for l := range b.Index.Locations {
			rhs := 0.0
			if l == initIdx {
				rhs = 1.0
			}
			c := b.Model.NewConstraint(mip.Equal, rhs)
			c.NewTerm(1.0, b.Vars.AtLoc(v, 0, l))
		}
	}
}

// postLocationContinuity posts the one-hot-per-shift occupancy constraint
// and the location transition rule: a vehicle stays where it is unless it
// runs a route, in which case it ends up wherever that route ends.
// Routes only ever run on day shifts, so night shifts always leave a
// vehicle exactly where it already was -- the same transition rule that
// handles route days also gives night-shift immobility for free, with no
// separate constraint needed for it.
func postLocationContinuity(b *Built) {
	for v := range b.Index.Vehicles {
		for s := 0; s < b.Index.Shifts; s++ {
			// one-hot: vehicle occupies exactly one location at shift s
			oneHot := b.Model.NewConstraint(mip.Equal, 1.0)
			for l := range b.Index.Locations {
				oneHot.NewTerm(1.0, b.Vars.AtLoc(v, s, l))
			}

			if s == b.Index.Shifts-1 {
				continue
			}

			routes := b.Index.RouteIdxByShift[s]
			for l := range b.Index.Locations {
				// (A) atLoc[v,s+1,l] >= atLoc[v,s,l] - take[v,s]
				lower := b.Model.NewConstraint(mip.GreaterThanOrEqual, 0.0)
				lower.NewTerm(1.0, b.Vars.AtLoc(v, s+1, l))
				lower.NewTerm(-1.0, b.Vars.AtLoc(v, s, l))
				for _, ri := range routes {
					lower.NewTerm(1.0, b.Vars.Assign(v, ri))
				}

				// (B) atLoc[v,s+1,l] <= atLoc[v,s,l] + take[v,s]
				upper := b.Model.NewConstraint(mip.LessThanOrEqual, 0.0)
				upper.NewTerm(1.0, b.Vars.AtLoc(v, s+1, l))
				upper.NewTerm(-1.0, b.Vars.AtLoc(v, s, l))
				for _, ri := range routes {
					upper.NewTerm(-1.0, b.Vars.Assign(v, ri))
				}

				// (C) atLoc[v,s+1,l] >= sum of routes ending at l the
				// vehicle is assigned at shift s
				arrival := b.Model.NewConstraint(mip.GreaterThanOrEqual, 0.0)
				arrival.NewTerm(1.0, b.Vars.AtLoc(v, s+1, l))
				for _, ri := range routes {
					route := b.Index.Routes[ri]
					if route.EndLocation == b.Index.LocationIDs[l] {
						arrival.NewTerm(-1.0, b.Vars.Assign(v, ri))
					}
				}
			}
		}
	}
}

// postRouteStartLocation requires a vehicle to already be at a route's
// start location before it can be assigned to run it:
// assign[v,r]=1 => atLoc[v, shift(r), idx(r.start_location)] = 1. Without
// this, postLocationContinuity's arrival rule (C) would happily teleport
// a vehicle to the route's end location regardless of where it actually
// started the shift -- the same depot-presence check postMaintenanceLocation
// already applies before letting a vehicle begin a maintenance instance.
func postRouteStartLocation(b *Built) {
	for ri, route := range b.Index.Routes {
		startIdx := b.locationIndexOrPanic(route.StartLocation)
		shift := route.Shift()
		for v := range b.Index.Vehicles {
			c := b.Model.NewConstraint(mip.GreaterThanOrEqual, 0.0)
			c.NewTerm(1.0, b.Vars.AtLoc(v, shift, startIdx))
			c.NewTerm(-1.0, b.Vars.Assign(v, ri))
		}
	}
}

// postLocationCapacity keeps every location's simultaneous resident count
// within its capacity, every shift.
func postLocationCapacity(b *Built) {
	for l, loc := range b.Index.Locations {
		for s := 0; s < b.Index.Shifts; s++ {
			c := b.Model.NewConstraint(mip.LessThanOrEqual, float64(loc.Capacity))
			for v := range b.Index.Vehicles {
				c.NewTerm(1.0, b.Vars.AtLoc(v, s, l))
			}
		}
	}
}
