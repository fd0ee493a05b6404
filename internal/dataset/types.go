// Package dataset holds the input dataset consumed by the model builder:
// vehicles, locations, maintenance types and routes for one planning
// horizon. Values here are read-only inputs; nothing in this package
// allocates a decision variable.
package dataset

// LocationType tags a Location as a depot (can perform maintenance) or a
// parking (capacity only).
type LocationType string

const (
	Depot    LocationType = "depot"
	Parking  LocationType = "parking"
)

// MaintenanceKind tags a MaintenanceType/MaintenanceInstance as preventive
// (scheduled around an optimal km target) or corrective (repair of a known
// defect, bound to a hard km window).
type MaintenanceKind string

const (
	Preventive MaintenanceKind = "preventive"
	Corrective MaintenanceKind = "corrective"
)

// PendingTask is one maintenance obligation a vehicle carries into the
// planning horizon.
type PendingTask struct {
	MaintenanceTypeID string `json:"maintenance_type_id"`
	RemainingKM       int    `json:"remaining_km"`
}

// Vehicle is one unit of the homogeneous fleet.
type Vehicle struct {
	ID                     string        `json:"id"`
	InitialLocation        string        `json:"initial_location"`
	InitialKM              int           `json:"initial_km"`
	PendingCorrectiveTasks []PendingTask `json:"pending_corrective_tasks"`
	PendingPreventiveTasks []PendingTask `json:"pending_preventive_tasks"`
}

// Location is a depot or a parking. ManhoursPerShift and
// SpecializedMaintenance are only meaningful when Type == Depot.
type Location struct {
	ID                     string       `json:"id"`
	Type                   LocationType `json:"type"`
	Capacity               int          `json:"capacity"`
	ManhoursPerShift       int          `json:"manhours_per_shift,omitempty"`
	SpecializedMaintenance []string     `json:"specialized_maintenance,omitempty"`
}

// IsDepot reports whether the location can host maintenance.
func (l Location) IsDepot() bool { return l.Type == Depot }

// Capable reports whether a depot can execute the given specialization.
// An empty specialization is always capable (no specialization required).
// Non-depots are never capable.
func (l Location) Capable(specialization string) bool {
	if !l.IsDepot() {
		return false
	}
	if specialization == "" {
		return true
	}
	for _, s := range l.SpecializedMaintenance {
		if s == specialization {
			return true
		}
	}
	return false
}

// MaintenanceType describes one catalog entry a MaintenanceInstance may
// reference. Preventive-only and corrective-only fields are zero-valued
// on the other kind.
type MaintenanceType struct {
	ID              string          `json:"id"`
	Kind            MaintenanceKind `json:"type"`
	OptimalKM       int             `json:"optimal_km,omitempty"`
	MaxKM           int             `json:"max_km,omitempty"`
	MaxKMWindow     int             `json:"max_km_window,omitempty"`
	Manhours        int             `json:"manhours"`
	Specialization  string          `json:"specialization,omitempty"`
	SafetyCritical  bool            `json:"safety_critical,omitempty"`
}

// Route is one predefined day-shift trip between two locations.
type Route struct {
	ID             string `json:"id"`
	Day            int    `json:"day"`
	StartLocation  string `json:"start_location"`
	EndLocation    string `json:"end_location"`
	DistanceKM     int    `json:"distance_km"`
}

// Shift returns the (even) shift index this route occupies.
func (r Route) Shift() int { return 2 * r.Day }

// Dataset is the complete input consumed by the model builder. It is
// read-only once handed to the builder.
type Dataset struct {
	Vehicles         []Vehicle                  `json:"vehicles"`
	Locations        map[string]Location        `json:"locations"`
	MaintenanceTypes []MaintenanceType           `json:"maintenance_types"`
	Routes           []Route                     `json:"routes"`
}

// MaintenanceTypeByID indexes MaintenanceTypes for O(1) lookup.
func (d Dataset) MaintenanceTypeByID() map[string]MaintenanceType {
	out := make(map[string]MaintenanceType, len(d.MaintenanceTypes))
	for _, mt := range d.MaintenanceTypes {
		out[mt.ID] = mt
	}
	return out
}

// PlanningDays returns one past the highest route day seen, i.e. the
// smallest horizon (in days) that covers every route in the dataset.
func (d Dataset) PlanningDays() int {
	days := 0
	for _, r := range d.Routes {
		if r.Day+1 > days {
			days = r.Day + 1
		}
	}
	return days
}
