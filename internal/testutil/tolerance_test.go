package testutil

import "testing"

func TestRamp(t *testing.T) {
	got := Ramp(1, 0.5, 4)
	RequireSliceNearlyEqual(t, got, []float64{1, 1.5, 2, 2.5}, 0)
	RequireFinite(t, got)
}

func TestRequireNearlyEqualWithinEps(t *testing.T) {
	RequireNearlyEqual(t, 1.0, 1.0+1e-13, 1e-12)
}
