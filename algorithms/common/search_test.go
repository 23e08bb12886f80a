package common

import "testing"

func TestDirectionalSearch(t *testing.T) {
	array := []float64{0, 1, 3, 2, 5, 4}

	tests := []struct {
		name   string
		search func([]float64, float64, int) int
		value  float64
		start  int
		want   int
	}{
		{"right higher", SearchRightFirstHigher, 2, 0, 2},
		{"right higher exhausted", SearchRightFirstHigher, 5, 0, -1},
		{"right higher at start", SearchRightFirstHigher, -1, 0, 0},
		{"right lower equal keeps moving", SearchRightFirstLower, 3, 2, 3},
		{"right lower exhausted", SearchRightFirstLower, -1, 0, -1},
		{"left lower", SearchLeftFirstLower, 3, 4, 3},
		{"left lower exhausted", SearchLeftFirstLower, 0, 5, -1},
		{"left higher equal keeps moving", SearchLeftFirstHigher, 2, 3, 2},
		{"left higher exhausted", SearchLeftFirstHigher, 10, 5, -1},
		{"start below range", SearchRightFirstHigher, 2, -1, -1},
		{"start above range", SearchLeftFirstLower, 2, len(array), -1},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.search(array, tc.value, tc.start); got != tc.want {
				t.Fatalf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestSearchOnEmptyArray(t *testing.T) {
	if got := SearchRightFirstHigher(nil, 0, 0); got != -1 {
		t.Fatalf("got %d, want -1", got)
	}
}

func TestIndexInEquidistantRoundTrip(t *testing.T) {
	const increment = 0.25
	array := make([]float64, 9)
	for i := range array {
		array[i] = 10 + float64(i)*increment
	}

	for i := range array {
		if got := IndexInEquidistant(array, array[0]+float64(i)*increment); got != i {
			t.Fatalf("i=%d: got %d", i, got)
		}
	}
}

func TestIndexInEquidistantBoundaries(t *testing.T) {
	array := []float64{10, 10.25, 10.5, 10.75, 11}

	tests := []struct {
		value float64
		want  int
	}{
		{9.9, 0},     // within half an increment below
		{9.8, -1},    // further out
		{11.1, 4},    // within half an increment above
		{11.2, -1},   // further out
		{11.125, 4},  // exactly half an increment above stays on the last index
		{9.875, 0},   // exactly half an increment below stays on the first index
		{10.37, 1},   // nearest sample
		{10.38, 2},   // nearest sample
	}
	for _, tc := range tests {
		if got := IndexInEquidistant(array, tc.value); got != tc.want {
			t.Fatalf("value %v: got %d, want %d", tc.value, got, tc.want)
		}
	}

	if got := IndexInEquidistant([]float64{3}, 100); got != 0 {
		t.Fatalf("single element: got %d, want 0", got)
	}
	if got := IndexInEquidistant(nil, 0); got != -1 {
		t.Fatalf("empty: got %d, want -1", got)
	}
}
