package common

import (
	"testing"

	"github.com/RyanBlaney/sonido-scope/internal/testutil"
)

func TestCloneJaggedIsDeep(t *testing.T) {
	src := [][]float64{{1, 2}, {3}}
	dst := CloneJagged(src)
	dst[0][0] = 100
	if src[0][0] != 1 {
		t.Fatal("clone shares storage with source")
	}

	csrc := [][]complex128{{1 + 2i}}
	cdst := CloneJagged(csrc)
	cdst[0][0] = 0
	if csrc[0][0] != 1+2i {
		t.Fatal("complex clone shares storage with source")
	}

	if CloneJagged[float64](nil) != nil {
		t.Fatal("nil input should stay nil")
	}
}

func TestRealParts(t *testing.T) {
	got := RealParts([][]complex128{{1 + 2i, -3 - 1i}, {0.5i}})
	testutil.RequireSliceNearlyEqual(t, got[0], []float64{1, -3}, 0)
	testutil.RequireSliceNearlyEqual(t, got[1], []float64{0}, 0)
}

func TestColumnMeans(t *testing.T) {
	got := ColumnMeans([][]float64{{1, 2, 3}, {3, 4, 5}})
	testutil.RequireSliceNearlyEqual(t, got, []float64{2, 3, 4}, 0)

	if ColumnMeans(nil) != nil {
		t.Fatal("empty input should return nil")
	}
}
