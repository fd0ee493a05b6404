package model

import (
	"fmt"

	"github.com/johncoudeadam/opopt-plan/internal/dataset"
)

// Instance is one concrete required execution of a maintenance type on a
// specific vehicle. It is derived from the dataset's pending tasks, not
// read directly off the wire.
type Instance struct {
	ID             string
	VehicleIdx     int
	VehicleID      string
	TypeID         string
	Kind           dataset.MaintenanceKind
	Specialization string // "" means any depot qualifies
	Manhours       int
	OptimalKM      int // preventive only
	MaxKM          int // derived km ceiling this instance must not exceed
	SafetyCritical bool
	Mandatory      bool // corrective instances are always mandatory (must be scheduled)

	CapableDepots    []int // location indices
	Duration         int   // shifts occupied once started
	PerShiftManhours int   // manhour demand while active
}

// DeriveInstances expands every vehicle's pending corrective and
// preventive tasks into Instance values. Preventive tasks are included
// whenever present in the dataset; the data provider is responsible for
// only surfacing preventive tasks whose next-due km falls within the
// horizon, so this function does not re-filter them.
func DeriveInstances(idx *Index, ds dataset.Dataset) ([]Instance, error) {
	instances := make([]Instance, 0)
	for vi, v := range ds.Vehicles {
		for seq, task := range v.PendingCorrectiveTasks {
			inst, err := newCorrectiveInstance(idx, vi, v, seq, task)
			if err != nil {
				return nil, err
			}
			instances = append(instances, inst)
		}
		for seq, task := range v.PendingPreventiveTasks {
			inst, err := newPreventiveInstance(idx, vi, v, seq, task)
			if err != nil {
				return nil, err
			}
			instances = append(instances, inst)
		}
	}
	return instances, nil
}

func newCorrectiveInstance(idx *Index, vi int, v dataset.Vehicle, seq int, task dataset.PendingTask) (Instance, error) {
	mt, ok := idx.MaintenanceTypes[task.MaintenanceTypeID]
	if !ok {
		return Instance{}, fmt.Errorf("model: vehicle %q pending corrective task references unknown maintenance type %q", v.ID, task.MaintenanceTypeID)
	}
	capable := idx.CapableDepots(mt.Specialization)
	duration, perShift, err := maintenanceDuration(idx, mt, capable)
	if err != nil {
		return Instance{}, err
	}
	return Instance{
		ID:               fmt.Sprintf("%s/%s/corrective/%d", v.ID, mt.ID, seq),
		VehicleIdx:       vi,
		VehicleID:        v.ID,
		TypeID:           mt.ID,
		Kind:             dataset.Corrective,
		Specialization:   mt.Specialization,
		Manhours:         mt.Manhours,
		MaxKM:            v.InitialKM + task.RemainingKM, // window anchored to the vehicle's km at horizon start
		SafetyCritical:   mt.SafetyCritical,
		Mandatory:        true,
		CapableDepots:    capable,
		Duration:         duration,
		PerShiftManhours: perShift,
	}, nil
}

func newPreventiveInstance(idx *Index, vi int, v dataset.Vehicle, seq int, task dataset.PendingTask) (Instance, error) {
	mt, ok := idx.MaintenanceTypes[task.MaintenanceTypeID]
	if !ok {
		return Instance{}, fmt.Errorf("model: vehicle %q pending preventive task references unknown maintenance type %q", v.ID, task.MaintenanceTypeID)
	}
	capable := idx.CapableDepots(mt.Specialization)
	duration, perShift, err := maintenanceDuration(idx, mt, capable)
	if err != nil {
		return Instance{}, err
	}
	return Instance{
		ID:               fmt.Sprintf("%s/%s/preventive/%d", v.ID, mt.ID, seq),
		VehicleIdx:       vi,
		VehicleID:        v.ID,
		TypeID:           mt.ID,
		Kind:             dataset.Preventive,
		Specialization:   mt.Specialization,
		Manhours:         mt.Manhours,
		OptimalKM:        mt.OptimalKM,
		MaxKM:            mt.MaxKM,
		SafetyCritical:   false,
		Mandatory:        false, // preventive is optional, pressured only by the objective's deviation cost
		CapableDepots:    capable,
		Duration:         duration,
		PerShiftManhours: perShift,
	}, nil
}

// maintenanceDuration fixes a maintenance instance's duration at build
// time: ceil(manhours / min_depot_shift_capacity), where the minimum
// ranges over depots capable of performing this maintenance type. A
// richer model could let duration vary by the eventually-chosen depot
// instead; this implementation fixes it upfront to keep the depot choice
// a pure selection rather than a duration-changing decision.
func maintenanceDuration(idx *Index, mt dataset.MaintenanceType, capableDepots []int) (duration, perShiftManhours int, err error) {
	minShiftCapacity := 0
	for _, li := range capableDepots {
		cap := idx.Locations[li].ManhoursPerShift
		if cap <= 0 {
			continue
		}
		if minShiftCapacity == 0 || cap < minShiftCapacity {
			minShiftCapacity = cap
		}
	}
	if minShiftCapacity == 0 {
		return 0, 0, fmt.Errorf("model: maintenance type %q has no capable depot with positive manhours_per_shift", mt.ID)
	}
	if mt.Manhours <= 0 {
		return 1, 0, nil
	}
	duration = ceilDiv(mt.Manhours, minShiftCapacity)
	if duration < 1 {
		duration = 1
	}
	perShiftManhours = ceilDiv(mt.Manhours, duration)
	return duration, perShiftManhours, nil
}

func ceilDiv(a, b int) int {
	if b <= 0 {
		return a
	}
	return (a + b - 1) / b
}
