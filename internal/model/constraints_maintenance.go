package model

import "github.com/nextmv-io/sdk/mip"

// postMaintenanceElementLookup pins m_km[i] to whichever shift's odometer
// reading the instance actually starts at. This is a big-M equality
// guarded by the one-hot start-shift selector: when m_start_sel[i,s]
// fires, m_km[i] is forced equal to km_start[v,s]; otherwise the
// inequality is slack (the big-M term cancels it out).
func postMaintenanceElementLookup(b *Built) {
	kMax := float64(b.KMax)
	for _, inst := range b.Instances {
		v := inst.VehicleIdx
		mKM := b.Vars.MKM(inst.ID)
		for s := 0; s <= b.Index.Shifts-inst.Duration; s++ {
			sel, ok := b.Vars.MStartSel(inst.ID, s)
			if !ok {
				continue
			}
			km := b.Vars.KMStart(v, s)

			lower := b.Model.NewConstraint(mip.GreaterThanOrEqual, -kMax)
			lower.NewTerm(1.0, mKM)
			lower.NewTerm(-1.0, km)
			lower.NewTerm(-kMax, sel)

			upper := b.Model.NewConstraint(mip.LessThanOrEqual, kMax)
			upper.NewTerm(1.0, mKM)
			upper.NewTerm(-1.0, km)
			upper.NewTerm(kMax, sel)
		}

		// Exactly one start shift is selected iff the instance is done.
		startSum := b.Model.NewConstraint(mip.Equal, 0.0)
		for s := 0; s <= b.Index.Shifts-inst.Duration; s++ {
			if sel, ok := b.Vars.MStartSel(inst.ID, s); ok {
				startSum.NewTerm(1.0, sel)
			}
		}
		startSum.NewTerm(-1.0, b.Vars.MDone(inst.ID))
	}
}

// postMaxKMBound lets a maintenance instance's max-km ceiling bind only
// once the instance is actually scheduled; an unscheduled instance's
// m_km is otherwise unconstrained up to K_max.
func postMaxKMBound(b *Built) {
	kMax := float64(b.KMax)
	for _, inst := range b.Instances {
		c := b.Model.NewConstraint(mip.LessThanOrEqual, float64(inst.MaxKM)+kMax)
		c.NewTerm(1.0, b.Vars.MKM(inst.ID))
		c.NewTerm(kMax, b.Vars.MDone(inst.ID))
	}
}

// postMaintenanceLocation ties a maintenance instance's chosen depot to
// where the vehicle actually is, and restricts the choice to depots
// capable of the instance's specialization.
//
// The vehicle staying put for the instance's whole duration needs no
// extra constraint here: vehicle exclusivity already forbids running a
// route on an active maintenance shift, and the location transition rule
// already says "no route taken => location unchanged", so the stay-put
// behavior falls out of those two for free. The specialization
// restriction is enforced by construction too: an instance's depot
// selector booleans only exist over its capable depots (see vars.go).
func postMaintenanceLocation(b *Built) {
	for _, inst := range b.Instances {
		v := inst.VehicleIdx
		for s := 0; s <= b.Index.Shifts-inst.Duration; s++ {
			sel, ok := b.Vars.MStartSel(inst.ID, s)
			if !ok {
				continue
			}
			for _, l := range inst.CapableDepots {
				depotSel, ok := b.Vars.MDepotSel(inst.ID, l)
				if !ok {
					continue
				}
				// sel + depotSel - atLoc <= 1: if both selectors fire,
				// the vehicle must already be at that depot.
				c := b.Model.NewConstraint(mip.LessThanOrEqual, 1.0)
				c.NewTerm(1.0, sel)
				c.NewTerm(1.0, depotSel)
				c.NewTerm(-1.0, b.Vars.AtLoc(v, s, l))
			}
		}

		// exactly one depot selected iff the instance is done
		depotSum := b.Model.NewConstraint(mip.Equal, 0.0)
		for _, l := range inst.CapableDepots {
			if depotSel, ok := b.Vars.MDepotSel(inst.ID, l); ok {
				depotSum.NewTerm(1.0, depotSel)
			}
		}
		depotSum.NewTerm(-1.0, b.Vars.MDone(inst.ID))
	}
}

// postMaintenanceActivity links m_active[i,s] to the chosen start shift
// and the instance's fixed duration: the active shifts are exactly the
// duration-length window beginning at the selected start shift.
func postMaintenanceActivity(b *Built) {
	for _, inst := range b.Instances {
		for s := 0; s < b.Index.Shifts; s++ {
			c := b.Model.NewConstraint(mip.Equal, 0.0)
			c.NewTerm(1.0, b.Vars.MActive(inst.ID, s))
			for s0 := s - inst.Duration + 1; s0 <= s; s0++ {
				if s0 < 0 {
					continue
				}
				if sel, ok := b.Vars.MStartSel(inst.ID, s0); ok {
					c.NewTerm(-1.0, sel)
				}
			}
		}
	}
}

// andBool linearizes z = a AND b for two booleans, the standard encoding
// used here to combine an instance's "active this shift" and "at this
// depot" selectors into a single indicator for the depot's cumulative
// manhour demand.
func andBool(m mip.Model, a, b mip.Bool) mip.Bool {
	z := m.NewBool()
	c1 := m.NewConstraint(mip.LessThanOrEqual, 0.0)
	c1.NewTerm(1.0, z)
	c1.NewTerm(-1.0, a)
	c2 := m.NewConstraint(mip.LessThanOrEqual, 0.0)
	c2.NewTerm(1.0, z)
	c2.NewTerm(-1.0, b)
	c3 := m.NewConstraint(mip.GreaterThanOrEqual, -1.0)
	c3.NewTerm(1.0, z)
	c3.NewTerm(-1.0, a)
	c3.NewTerm(-1.0, b)
	return z
}

// postDepotManhourCumulative keeps, per (depot, shift), the sum of every
// active instance's per-shift manhour demand within the depot's
// per-shift manhour budget.
func postDepotManhourCumulative(b *Built) {
	for _, inst := range b.Instances {
		if inst.PerShiftManhours <= 0 {
			continue
		}
		for _, l := range inst.CapableDepots {
			depotSel, ok := b.Vars.MDepotSel(inst.ID, l)
			if !ok {
				continue
			}
			for s := 0; s < b.Index.Shifts; s++ {
				active := b.Vars.MActive(inst.ID, s)
				z := andBool(b.Model, active, depotSel)
				c := b.depotManhourConstraint(l, s)
				c.NewTerm(float64(inst.PerShiftManhours), z)
			}
		}
	}
}

// depotManhourConstraint returns the cumulative constraint for (depot,
// shift), creating it on first use with the depot's manhour budget as
// the right-hand side.
func (b *Built) depotManhourConstraint(depot, shift int) mip.Constraint {
	if b.depotManhourConstraints == nil {
		b.depotManhourConstraints = make(map[[2]int]mip.Constraint)
	}
	key := [2]int{depot, shift}
	if c, ok := b.depotManhourConstraints[key]; ok {
		return c
	}
	budget := b.Index.Locations[depot].ManhoursPerShift
	c := b.Model.NewConstraint(mip.LessThanOrEqual, float64(budget))
	b.depotManhourConstraints[key] = c
	return c
}

// postCorrectiveObligation fixes m_done[i]=1 for every mandatory
// (corrective) instance, and -- when Options.ForcePreventive is set --
// for preventive instances too.
func postCorrectiveObligation(b *Built, opts Options) {
	for _, inst := range b.Instances {
		if inst.Mandatory || opts.ForcePreventive {
			c := b.Model.NewConstraint(mip.Equal, 1.0)
			c.NewTerm(1.0, b.Vars.MDone(inst.ID))
		}
	}
}
