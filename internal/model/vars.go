package model

import (
	"fmt"

	"github.com/nextmv-io/sdk/mip"
	"github.com/nextmv-io/sdk/model"

	"github.com/johncoudeadam/opopt-plan/internal/dataset"
)

// assignmentKey identifies one (vehicle, route) pair, built through
// model.NewMultiMap below rather than a bare map since it is the one
// variable family with a clean, regular key shape.
type assignmentKey struct {
	VehicleIdx int
	RouteIdx   int
}

// ID implements model.Identifier.
func (k assignmentKey) ID() string {
	return fmt.Sprintf("v%d-r%d", k.VehicleIdx, k.RouteIdx)
}

// Variables holds every decision variable the Model Builder allocates.
// Irregularly shaped families (location occupancy, per-instance scalars,
// per-instance-per-shift activity) are kept as plain nested maps, the
// fallback for collections a single MultiMap key type can't express
// cleanly.
type Variables struct {
	// assign[v][r]: true iff vehicle v runs route r.
	assignKeys []assignmentKey
	assign     model.MultiMap[mip.Bool, assignmentKey]

	// atLoc[v][s][l]: true iff vehicle v is at location l during shift s.
	atLoc map[int]map[int]map[int]mip.Bool

	// kmStart[v][s]: vehicle v's odometer reading at the start of shift s.
	kmStart map[int]map[int]mip.Int

	// Per maintenance instance (indexed by Instance.ID):
	mDone      map[string]mip.Bool
	mStartSel  map[string]map[int]mip.Bool // [instance][shift]
	mDepotSel  map[string]map[int]mip.Bool // [instance][location]
	mActive    map[string]map[int]mip.Bool // [instance][shift]
	mKM        map[string]mip.Int
	dev        map[string]mip.Int // preventive only
}

// Assign returns the boolean for whether vehicle v runs route r.
func (vars *Variables) Assign(v, r int) mip.Bool {
	return vars.assign.Get(assignmentKey{VehicleIdx: v, RouteIdx: r})
}

// AtLoc returns the boolean for whether vehicle v is at location l
// during shift s.
func (vars *Variables) AtLoc(v, s, l int) mip.Bool { return vars.atLoc[v][s][l] }

// KMStart returns vehicle v's odometer reading at the start of shift s.
func (vars *Variables) KMStart(v, s int) mip.Int { return vars.kmStart[v][s] }

// MDone returns whether maintenance instance i is scheduled at all.
func (vars *Variables) MDone(instanceID string) mip.Bool { return vars.mDone[instanceID] }

// MStartSel returns the one-hot "instance i starts at shift s" boolean.
func (vars *Variables) MStartSel(instanceID string, s int) (mip.Bool, bool) {
	b, ok := vars.mStartSel[instanceID][s]
	return b, ok
}

// MDepotSel returns the one-hot "instance i is executed at location l"
// boolean.
func (vars *Variables) MDepotSel(instanceID string, l int) (mip.Bool, bool) {
	b, ok := vars.mDepotSel[instanceID][l]
	return b, ok
}

// MActive returns the "instance i occupies shift s" boolean.
func (vars *Variables) MActive(instanceID string, s int) mip.Bool { return vars.mActive[instanceID][s] }

// MKM returns the odometer reading at which instance i is performed.
func (vars *Variables) MKM(instanceID string) mip.Int { return vars.mKM[instanceID] }

// Dev returns the preventive deviation-from-optimal-km variable for
// instance i.
func (vars *Variables) Dev(instanceID string) mip.Int { return vars.dev[instanceID] }

// allocateVariables creates every decision variable over the index and
// the derived maintenance instances.
func allocateVariables(m mip.Model, idx *Index, instances []Instance, kMax int) *Variables {
	vars := &Variables{
		atLoc:     make(map[int]map[int]map[int]mip.Bool),
		kmStart:   make(map[int]map[int]mip.Int),
		mDone:     make(map[string]mip.Bool),
		mStartSel: make(map[string]map[int]mip.Bool),
		mDepotSel: make(map[string]map[int]mip.Bool),
		mActive:   make(map[string]map[int]mip.Bool),
		mKM:       make(map[string]mip.Int),
		dev:       make(map[string]mip.Int),
	}

	// assign[v,r]
	keys := make([]assignmentKey, 0, len(idx.Vehicles)*len(idx.Routes))
	for v := range idx.Vehicles {
		for r := range idx.Routes {
			keys = append(keys, assignmentKey{VehicleIdx: v, RouteIdx: r})
		}
	}
	vars.assignKeys = keys
	vars.assign = model.NewMultiMap(
		func(...assignmentKey) mip.Bool { return m.NewBool() },
		keys,
	)

	// atLoc[v,s,l] and km_start[v,s]
	for v := range idx.Vehicles {
		vars.atLoc[v] = make(map[int]map[int]mip.Bool)
		vars.kmStart[v] = make(map[int]mip.Int)
		for s := 0; s < idx.Shifts; s++ {
			vars.atLoc[v][s] = make(map[int]mip.Bool)
			for l := range idx.Locations {
				vars.atLoc[v][s][l] = m.NewBool()
			}
			vars.kmStart[v][s] = m.NewInt(0, kMax)
		}
	}

	// Per-instance variables.
	for _, inst := range instances {
		vars.mDone[inst.ID] = m.NewBool()
		vars.mKM[inst.ID] = m.NewInt(0, kMax)
		if inst.Kind == dataset.Preventive {
			vars.dev[inst.ID] = m.NewInt(0, kMax)
		}

		vars.mStartSel[inst.ID] = make(map[int]mip.Bool)
		lastValidStart := idx.Shifts - inst.Duration
		for s := 0; s <= lastValidStart; s++ {
			vars.mStartSel[inst.ID][s] = m.NewBool()
		}

		vars.mDepotSel[inst.ID] = make(map[int]mip.Bool)
		for _, l := range inst.CapableDepots {
			vars.mDepotSel[inst.ID][l] = m.NewBool()
		}

		vars.mActive[inst.ID] = make(map[int]mip.Bool)
		for s := 0; s < idx.Shifts; s++ {
			vars.mActive[inst.ID][s] = m.NewBool()
		}
	}

	return vars
}
