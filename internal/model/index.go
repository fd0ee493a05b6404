// Package model is the Model Builder: it allocates decision variables
// over a fleet/depot/route/maintenance dataset and posts the full set of
// scheduling constraints and the objective onto a
// github.com/nextmv-io/sdk/mip model.
package model

import (
	"fmt"
	"sort"

	"github.com/johncoudeadam/opopt-plan/internal/dataset"
)

// Index flattens the dataset's string-keyed entities into small integer
// indices, so the rest of the builder can work over array indices
// instead of map lookups, keeping the string IDs only at the boundary.
type Index struct {
	Days   int
	Shifts int // 2*Days

	LocationIDs []string
	locationIdx map[string]int
	Locations   []dataset.Location

	Vehicles []dataset.Vehicle

	// Routes is the flat, globally-indexed route list; RouteIdxByShift
	// holds indices into it so every route has exactly one stable
	// integer identity regardless of which shift it occupies.
	Routes        []dataset.Route
	RouteIdxByShift map[int][]int

	MaintenanceTypes map[string]dataset.MaintenanceType
}

// LocationIndex returns the integer index of a location ID.
func (idx *Index) LocationIndex(id string) (int, bool) {
	i, ok := idx.locationIdx[id]
	return i, ok
}

// BuildIndex derives an Index from a validated dataset and a planning
// horizon in days. Callers must run dataset.Validate first.
func BuildIndex(ds dataset.Dataset, planningDays int) (*Index, error) {
	if planningDays < 1 {
		return nil, fmt.Errorf("model: planning_days must be >= 1, got %d", planningDays)
	}

	ids := make([]string, 0, len(ds.Locations))
	for id := range ds.Locations {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	locationIdx := make(map[string]int, len(ids))
	locations := make([]dataset.Location, len(ids))
	for i, id := range ids {
		locationIdx[id] = i
		locations[i] = ds.Locations[id]
	}

	routeIdxByShift := make(map[int][]int)
	for ri, r := range ds.Routes {
		if r.Day >= planningDays {
			return nil, fmt.Errorf("model: route %q falls on day %d, outside the %d-day horizon", r.ID, r.Day, planningDays)
		}
		routeIdxByShift[r.Shift()] = append(routeIdxByShift[r.Shift()], ri)
	}

	return &Index{
		Days:             planningDays,
		Shifts:           2 * planningDays,
		LocationIDs:      ids,
		locationIdx:      locationIdx,
		Locations:        locations,
		Vehicles:         ds.Vehicles,
		Routes:           ds.Routes,
		RouteIdxByShift:  routeIdxByShift,
		MaintenanceTypes: ds.MaintenanceTypeByID(),
	}, nil
}

// CapableDepots returns the location indices of every depot able to
// perform the given specialization (all depots, if specialization is
// empty).
func (idx *Index) CapableDepots(specialization string) []int {
	out := make([]int, 0)
	for i, l := range idx.Locations {
		if l.Capable(specialization) {
			out = append(out, i)
		}
	}
	return out
}
