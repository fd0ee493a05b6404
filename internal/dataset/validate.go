package dataset

// Validate fails fast with a descriptive *ValidationError whenever the
// dataset violates one of its structural invariants:
//
//   - every location reference resolves
//   - every maintenance-type reference on a pending task resolves
//   - any specialized maintenance type has at least one capable depot
//   - at least two depots exist
func Validate(d Dataset) error {
	if err := validateLocationCount(d); err != nil {
		return err
	}
	if err := validateVehicleLocationRefs(d); err != nil {
		return err
	}
	if err := validateRouteLocationRefs(d); err != nil {
		return err
	}
	maintenanceTypes := d.MaintenanceTypeByID()
	if err := validatePendingTaskRefs(d, maintenanceTypes); err != nil {
		return err
	}
	if err := validateSpecializationCoverage(d, maintenanceTypes); err != nil {
		return err
	}
	return nil
}

func validateLocationCount(d Dataset) error {
	depots := 0
	for _, l := range d.Locations {
		if l.IsDepot() {
			depots++
		}
	}
	if depots < 2 {
		return validationErrorf("at least two depots are required, found %d", depots)
	}
	return nil
}

func validateVehicleLocationRefs(d Dataset) error {
	for _, v := range d.Vehicles {
		if _, ok := d.Locations[v.InitialLocation]; !ok {
			return validationErrorf("vehicle %q references unknown initial_location %q", v.ID, v.InitialLocation)
		}
	}
	return nil
}

func validateRouteLocationRefs(d Dataset) error {
	for _, r := range d.Routes {
		if _, ok := d.Locations[r.StartLocation]; !ok {
			return validationErrorf("route %q references unknown start_location %q", r.ID, r.StartLocation)
		}
		if _, ok := d.Locations[r.EndLocation]; !ok {
			return validationErrorf("route %q references unknown end_location %q", r.ID, r.EndLocation)
		}
	}
	return nil
}

func validatePendingTaskRefs(d Dataset, maintenanceTypes map[string]MaintenanceType) error {
	for _, v := range d.Vehicles {
		for _, t := range v.PendingCorrectiveTasks {
			if _, ok := maintenanceTypes[t.MaintenanceTypeID]; !ok {
				return validationErrorf("vehicle %q pending corrective task references unknown maintenance_type_id %q", v.ID, t.MaintenanceTypeID)
			}
		}
		for _, t := range v.PendingPreventiveTasks {
			if _, ok := maintenanceTypes[t.MaintenanceTypeID]; !ok {
				return validationErrorf("vehicle %q pending preventive task references unknown maintenance_type_id %q", v.ID, t.MaintenanceTypeID)
			}
		}
	}
	return nil
}

func validateSpecializationCoverage(d Dataset, maintenanceTypes map[string]MaintenanceType) error {
	for _, mt := range maintenanceTypes {
		if mt.Specialization == "" {
			continue
		}
		capable := false
		for _, l := range d.Locations {
			if l.Capable(mt.Specialization) {
				capable = true
				break
			}
		}
		if !capable {
			return validationErrorf("maintenance type %q requires specialization %q but no depot provides it", mt.ID, mt.Specialization)
		}
	}
	return nil
}
