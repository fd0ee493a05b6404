package dataset

import "testing"

func twoDepotDataset() Dataset {
	return Dataset{
		Vehicles: []Vehicle{
			{ID: "v1", InitialLocation: "depot-a", InitialKM: 0},
		},
		Locations: map[string]Location{
			"depot-a": {ID: "depot-a", Type: Depot, Capacity: 2, ManhoursPerShift: 8},
			"depot-b": {ID: "depot-b", Type: Depot, Capacity: 2, ManhoursPerShift: 8},
		},
		MaintenanceTypes: []MaintenanceType{
			{ID: "pm-1", Kind: Preventive, OptimalKM: 10000, MaxKM: 11000, Manhours: 4},
		},
		Routes: []Route{
			{ID: "r1", Day: 0, StartLocation: "depot-a", EndLocation: "depot-b", DistanceKM: 100},
		},
	}
}

func TestValidate_OK(t *testing.T) {
	if err := Validate(twoDepotDataset()); err != nil {
		t.Fatalf("expected valid dataset, got error: %v", err)
	}
}

func TestValidate_TooFewDepots(t *testing.T) {
	d := twoDepotDataset()
	delete(d.Locations, "depot-b")
	if err := Validate(d); err == nil {
		t.Fatal("expected error for fewer than two depots")
	}
}

func TestValidate_UnknownVehicleLocation(t *testing.T) {
	d := twoDepotDataset()
	v := d.Vehicles[0]
	v.InitialLocation = "nowhere"
	d.Vehicles[0] = v
	if err := Validate(d); err == nil {
		t.Fatal("expected error for unresolved vehicle location")
	}
}

func TestValidate_UnknownRouteLocation(t *testing.T) {
	d := twoDepotDataset()
	d.Routes[0].EndLocation = "nowhere"
	if err := Validate(d); err == nil {
		t.Fatal("expected error for unresolved route location")
	}
}

func TestValidate_UnknownPendingTaskType(t *testing.T) {
	d := twoDepotDataset()
	v := d.Vehicles[0]
	v.PendingPreventiveTasks = []PendingTask{{MaintenanceTypeID: "does-not-exist", RemainingKM: 10}}
	d.Vehicles[0] = v
	if err := Validate(d); err == nil {
		t.Fatal("expected error for unresolved pending task maintenance type")
	}
}

func TestValidate_UncoveredSpecialization(t *testing.T) {
	d := twoDepotDataset()
	d.MaintenanceTypes = append(d.MaintenanceTypes, MaintenanceType{
		ID:             "corrective-1",
		Kind:           Corrective,
		Manhours:       4,
		Specialization: "electrical",
	})
	if err := Validate(d); err == nil {
		t.Fatal("expected error: no depot provides the electrical specialization")
	}
}

func TestValidate_SpecializationCoveredByOneDepot(t *testing.T) {
	d := twoDepotDataset()
	depotB := d.Locations["depot-b"]
	depotB.SpecializedMaintenance = []string{"electrical"}
	d.Locations["depot-b"] = depotB
	d.MaintenanceTypes = append(d.MaintenanceTypes, MaintenanceType{
		ID:             "corrective-1",
		Kind:           Corrective,
		Manhours:       4,
		Specialization: "electrical",
	})
	if err := Validate(d); err != nil {
		t.Fatalf("expected valid dataset, got: %v", err)
	}
}
