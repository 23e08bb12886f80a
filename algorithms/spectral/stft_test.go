package spectral

import (
	"errors"
	"math"
	"testing"

	"gonum.org/v1/gonum/floats"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
	"github.com/RyanBlaney/sonido-scope/algorithms/windowing"
	"github.com/RyanBlaney/sonido-scope/internal/testutil"
	"github.com/RyanBlaney/sonido-scope/logging"
)

const stftDT = 1.0 / 1024

func sineSignal(n int, frequency float64, envelope func(t float64) float64) ([]float64, []float64) {
	time := testutil.Ramp(0, stftDT, n)
	values := make([]float64, n)
	for i, t := range time {
		values[i] = envelope(t) * math.Sin(2*math.Pi*frequency*t)
	}
	return time, values
}

func flat(float64) float64 { return 1 }

func TestSTFTShape(t *testing.T) {
	time, values := sineSignal(2048, 64, flat)

	surface, err := NewSTFT().Compute(time, values, 16*stftDT, 128*stftDT)
	if err != nil {
		t.Fatal(err)
	}

	tiles, bins := surface.Dims()
	if tiles != 118 || bins != 65 {
		t.Fatalf("dims = %dx%d, want 118x65", tiles, bins)
	}
	if surface.ShiftSamples != 16 || surface.WindowWidthSamples != 128 {
		t.Fatalf("samples = %d/%d, want 16/128", surface.ShiftSamples, surface.WindowWidthSamples)
	}

	tt := surface.Time()
	testutil.RequireNearlyEqual(t, tt[0], 0, 0)
	testutil.RequireNearlyEqual(t, tt[117], 117*16*stftDT, 1e-12)

	freq := surface.Frequency()
	testutil.RequireNearlyEqual(t, freq[1], 8, 1e-9)
	testutil.RequireNearlyEqual(t, freq[64], 512, 1e-9)

	for i := range tiles {
		if _, peak := common.ArgMax(surface.Segment(i)); peak != 8 {
			t.Fatalf("tile %d peaks at bin %d, want 8 (64 Hz)", i, peak)
		}
	}
}

func TestSTFTFloorsToWholeSamples(t *testing.T) {
	time := testutil.Ramp(0, 0.1, 20)
	values := make([]float64, 20)

	surface, err := NewSTFT().Compute(time, values, 0.3, 0.55)
	if err != nil {
		t.Fatal(err)
	}
	if surface.ShiftSamples != 3 || surface.WindowWidthSamples != 5 {
		t.Fatalf("samples = %d/%d, want 3/5", surface.ShiftSamples, surface.WindowWidthSamples)
	}
	testutil.RequireNearlyEqual(t, surface.TimeShift, 0.3, 1e-12)
	testutil.RequireNearlyEqual(t, surface.TimeWindowWidth, 0.5, 1e-12)

	if tiles, _ := surface.Dims(); tiles != 4 {
		t.Fatalf("tiles = %d, want 4", tiles)
	}
}

func TestTileCount(t *testing.T) {
	tests := []struct {
		n, shift, window, want int
	}{
		{2048, 16, 128, 118},
		{20, 3, 5, 4},
		{10, 1, 8, 0},
		{1, 1, 1, 0},
	}
	for _, tt := range tests {
		if got := TileCount(tt.n, tt.shift, tt.window); got != tt.want {
			t.Errorf("TileCount(%d, %d, %d) = %d, want %d", tt.n, tt.shift, tt.window, got, tt.want)
		}
	}
}

func TestSTFTEveryTileFits(t *testing.T) {
	for _, n := range []int{100, 257, 1000} {
		for _, shift := range []int{1, 3, 7} {
			for _, window := range []int{2, 16, 33} {
				count := TileCount(n, shift, window)
				if count < 1 {
					continue
				}
				if last := (count-1)*shift + window; last > n {
					t.Fatalf("n=%d shift=%d window=%d: last tile ends at %d", n, shift, window, last)
				}
			}
		}
	}
}

func TestSTFTWorkersMatchSequential(t *testing.T) {
	time, values := sineSignal(2048, 100, func(t float64) float64 { return 1 + t })

	seq, err := NewSTFT().Compute(time, values, 16*stftDT, 128*stftDT)
	if err != nil {
		t.Fatal(err)
	}
	par, err := NewSTFT(WithWorkers(4), WithLogger(&logging.NoOpLogger{})).Compute(time, values, 16*stftDT, 128*stftDT)
	if err != nil {
		t.Fatal(err)
	}

	tiles, _ := seq.Dims()
	for i := range tiles {
		testutil.RequireSliceNearlyEqual(t, par.Segment(i), seq.Segment(i), 0)
	}
}

func TestSTFTTransformersAgree(t *testing.T) {
	time, values := sineSignal(1024, 40, flat)

	a, err := NewSTFT(WithTransformer(NewGoDSPTransformer())).Compute(time, values, 32*stftDT, 100*stftDT)
	if err != nil {
		t.Fatal(err)
	}
	b, err := NewSTFT(WithTransformer(NewGonumTransformer())).Compute(time, values, 32*stftDT, 100*stftDT)
	if err != nil {
		t.Fatal(err)
	}

	tiles, _ := a.Dims()
	for i := range tiles {
		testutil.RequireSliceNearlyEqual(t, a.Segment(i), b.Segment(i), 1e-9)
	}
}

func TestSTFTRectangularWindowAmplitude(t *testing.T) {
	time, values := sineSignal(1024, 64, flat)

	surface, err := NewSTFT(WithWindow(windowing.TypeRectangular)).Compute(time, values, 64*stftDT, 128*stftDT)
	if err != nil {
		t.Fatal(err)
	}
	// A bin-centred unit sine gives N/2 in its bin.
	testutil.RequireNearlyEqual(t, surface.At(0, 8), 64, 1e-9)
}

func TestSTFTNormalize(t *testing.T) {
	time, values := sineSignal(2048, 64, func(t float64) float64 { return 1 + t })

	surface, err := NewSTFT().Compute(time, values, 16*stftDT, 128*stftDT)
	if err != nil {
		t.Fatal(err)
	}
	surface.Normalize()

	rows := surface.Amplitude()
	maxValue := math.Inf(-1)
	for _, row := range rows {
		maxValue = math.Max(maxValue, floats.Max(row))
	}
	testutil.RequireNearlyEqual(t, maxValue, 1, 0)

	// Earlier tiles carry a smaller envelope and must stay below 1.
	if floats.Max(rows[0]) >= 1 {
		t.Fatalf("first tile max = %v, want < 1", floats.Max(rows[0]))
	}
}

func TestSTFTNormalizeEachSegment(t *testing.T) {
	time, values := sineSignal(2048, 64, func(t float64) float64 { return 1 + t })

	surface, err := NewSTFT().Compute(time, values, 16*stftDT, 128*stftDT)
	if err != nil {
		t.Fatal(err)
	}
	surface.NormalizeEachSegment()

	for i, row := range surface.Amplitude() {
		if m := floats.Max(row); m != 1 {
			t.Fatalf("tile %d max = %v, want 1", i, m)
		}
	}
}

func TestSTFTNormalizeZeroSignal(t *testing.T) {
	time := testutil.Ramp(0, stftDT, 512)
	values := make([]float64, 512)

	surface, err := NewSTFT().Compute(time, values, 16*stftDT, 64*stftDT)
	if err != nil {
		t.Fatal(err)
	}
	surface.Normalize()
	surface.NormalizeEachSegment()

	for _, row := range surface.Amplitude() {
		testutil.RequireFinite(t, row)
		if floats.Max(row) != 0 {
			t.Fatalf("zero signal produced %v", row)
		}
	}
}

func TestSTFTAccessorsReturnCopies(t *testing.T) {
	time, values := sineSignal(512, 64, flat)
	surface, err := NewSTFT().Compute(time, values, 16*stftDT, 64*stftDT)
	if err != nil {
		t.Fatal(err)
	}

	surface.Time()[0] = 42
	surface.Frequency()[0] = 42
	surface.Segment(0)[0] = 42
	if surface.Time()[0] == 42 || surface.Frequency()[0] == 42 || surface.At(0, 0) == 42 {
		t.Fatal("accessor exposed internal storage")
	}
}

func TestSTFTErrors(t *testing.T) {
	good := testutil.Ramp(0, 0.1, 20)
	tests := []struct {
		name          string
		time, values  []float64
		shift, window float64
	}{
		{"mismatch", good, make([]float64, 19), 0.1, 0.5},
		{"too short", []float64{0}, []float64{0}, 0.1, 0.5},
		{"descending time", []float64{1, 0, -1}, make([]float64, 3), 0.1, 0.5},
		{"shift below one sample", good, make([]float64, 20), 0.05, 0.5},
		{"window below two samples", good, make([]float64, 20), 0.1, 0.15},
		{"no complete tile", good, make([]float64, 20), 0.1, 1.9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSTFT().Compute(tt.time, tt.values, tt.shift, tt.window)
			if !errors.Is(err, common.ErrInvalidArgument) {
				t.Fatalf("err = %v, want ErrInvalidArgument", err)
			}
		})
	}
}
