package model

import (
	"github.com/nextmv-io/sdk/mip"

	"github.com/johncoudeadam/opopt-plan/internal/dataset"
)

// postObjective minimizes the total absolute deviation of preventive
// maintenance execution km from each instance's optimal km, linearized
// with the standard two-inequality |x| trick, both guarded on m_done so
// an unscheduled preventive instance contributes zero.
func postObjective(b *Built) {
	kMax := float64(b.KMax)
	for _, inst := range b.Instances {
		if inst.Kind != dataset.Preventive {
			continue
		}
		dev := b.Vars.Dev(inst.ID)
		mKM := b.Vars.MKM(inst.ID)
		mDone := b.Vars.MDone(inst.ID)
		optimal := float64(inst.OptimalKM)

		// dev[i] >= m_km[i] - optimal - kMax*(1-m_done[i])
		above := b.Model.NewConstraint(mip.GreaterThanOrEqual, -optimal-kMax)
		above.NewTerm(1.0, dev)
		above.NewTerm(-1.0, mKM)
		above.NewTerm(-kMax, mDone)

		// dev[i] >= optimal - m_km[i] - kMax*(1-m_done[i])
		below := b.Model.NewConstraint(mip.GreaterThanOrEqual, optimal-kMax)
		below.NewTerm(1.0, dev)
		below.NewTerm(1.0, mKM)
		below.NewTerm(-kMax, mDone)

		b.Model.Objective().NewTerm(1.0, dev)
	}
}
