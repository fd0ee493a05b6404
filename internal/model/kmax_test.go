package model

import "testing"

func TestComputeKMax(t *testing.T) {
	ds := datasetWithPendingTasks()
	idx, err := BuildIndex(ds, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	instances, err := DeriveInstances(idx, ds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	kMax := computeKMax(idx, instances)

	// max_vehicle_initial_km=100 + worst_case (100+100=200 over 2 days)
	// + safety_margin (>= the largest max_km among instances, 11000).
	if kMax < 100+200+11000 {
		t.Fatalf("expected K_max to dominate initial km + horizon worst case + largest instance max_km, got %d", kMax)
	}
}
