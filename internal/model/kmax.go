package model

// computeKMax derives the global km upper bound used for every odometer
// variable's domain, and as the big-M constant in the builder's big-M
// implications: the highest initial odometer reading across the fleet,
// plus the worst-case distance the horizon could add, plus a safety
// margin.
func computeKMax(idx *Index, instances []Instance) int {
	maxInitialKM := 0
	for _, v := range idx.Vehicles {
		if v.InitialKM > maxInitialKM {
			maxInitialKM = v.InitialKM
		}
	}

	worstCase := 0
	for day := 0; day < idx.Days; day++ {
		shift := 2 * day
		maxDistance := 0
		for _, ri := range idx.RouteIdxByShift[shift] {
			if d := idx.Routes[ri].DistanceKM; d > maxDistance {
				maxDistance = d
			}
		}
		worstCase += maxDistance
	}

	// The safety margin must at least cover the widest km ceiling any
	// instance could be checked against, so an unscheduled instance's
	// relaxed max-km bound never accidentally binds.
	safetyMargin := 1000
	for _, i := range instances {
		if i.MaxKM > safetyMargin {
			safetyMargin = i.MaxKM
		}
	}

	return maxInitialKM + worstCase + safetyMargin
}
