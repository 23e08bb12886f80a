package spectral

import (
	"fmt"
	"math"
	"runtime"
	"slices"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
	"github.com/RyanBlaney/sonido-scope/algorithms/windowing"
	"github.com/RyanBlaney/sonido-scope/logging"
)

// floorGuard absorbs representation error when shift or width is an exact
// multiple of dt (0.3/0.1 = 2.9999999999999996).
const floorGuard = 1e-9

// STFT provides Short-Time Fourier Transform functionality
type STFT struct {
	transformer Transformer
	window      windowing.Type
	workers     int
	logger      logging.Logger
}

// STFTOption configures an STFT
type STFTOption func(*STFT)

// WithTransformer sets the FFT backend. The default is go-dsp.
func WithTransformer(t Transformer) STFTOption {
	return func(s *STFT) {
		if t != nil {
			s.transformer = t
		}
	}
}

// WithWindow sets the window applied to each tile. The default is a
// symmetric Hamming window.
func WithWindow(t windowing.Type) STFTOption {
	return func(s *STFT) {
		s.window = t
	}
}

// WithWorkers spreads tiles over n goroutines. n <= 0 uses one worker per
// CPU. The default of 1 computes every tile on the calling goroutine.
func WithWorkers(n int) STFTOption {
	return func(s *STFT) {
		if n <= 0 {
			n = runtime.NumCPU()
		}
		s.workers = n
	}
}

// WithLogger replaces the component logger
func WithLogger(l logging.Logger) STFTOption {
	return func(s *STFT) {
		if l != nil {
			s.logger = l
		}
	}
}

// NewSTFT creates a new STFT calculator
func NewSTFT(opts ...STFTOption) *STFT {
	s := &STFT{
		transformer: NewGoDSPTransformer(),
		window:      windowing.TypeHamming,
		workers:     1,
		logger: logging.WithFields(logging.Fields{
			"component": "stft",
		}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// STFTSurface is the time x frequency amplitude surface of a signal.
// Time and Frequency are fixed once computed; the amplitudes change only
// through Normalize and NormalizeEachSegment.
type STFTSurface struct {
	time      []float64
	frequency []float64
	amplitude *mat.Dense // rows: tiles, columns: frequency bins

	// Effective tiling after flooring to whole samples
	TimeShift          float64 `json:"time_shift"`
	TimeWindowWidth    float64 `json:"time_window_width"`
	ShiftSamples       int     `json:"shift_samples"`
	WindowWidthSamples int     `json:"window_width_samples"`
}

// Compute tiles the equidistant signal (time, values) into windows of width
// seconds, shift seconds apart. Both are floored to whole samples. Only
// tiles that fit completely inside the signal are produced.
func (s *STFT) Compute(time, values []float64, shift, width float64) (*STFTSurface, error) {
	if len(time) != len(values) {
		return nil, fmt.Errorf("length mismatch: %d times, %d values: %w", len(time), len(values), common.ErrInvalidArgument)
	}
	if len(time) < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d: %w", len(time), common.ErrInvalidArgument)
	}

	dt := time[1] - time[0]
	if dt <= 0 || math.IsNaN(dt) {
		return nil, fmt.Errorf("time must be ascending, dt=%v: %w", dt, common.ErrInvalidArgument)
	}

	shiftSamples := floorSamples(shift, dt)
	windowSamples := floorSamples(width, dt)
	if shiftSamples < 1 {
		return nil, fmt.Errorf("time shift %v is shorter than one sample (%v): %w", shift, dt, common.ErrInvalidArgument)
	}
	if windowSamples < 2 {
		return nil, fmt.Errorf("window width %v is shorter than two samples (%v): %w", width, dt, common.ErrInvalidArgument)
	}

	tileCount := TileCount(len(time), shiftSamples, windowSamples)
	if tileCount < 1 {
		return nil, fmt.Errorf("signal of %d samples too short for window %d and shift %d: %w",
			len(time), windowSamples, shiftSamples, common.ErrInvalidArgument)
	}

	win, err := windowing.New(s.window, windowSamples)
	if err != nil {
		return nil, fmt.Errorf("failed to build window: %w", err)
	}
	coefficients := win.GetCoefficients()

	effectiveShift := dt * float64(shiftSamples)
	surface := &STFTSurface{
		time:               make([]float64, tileCount),
		frequency:          OneSidedFrequencies(dt, windowSamples),
		TimeShift:          effectiveShift,
		TimeWindowWidth:    dt * float64(windowSamples),
		ShiftSamples:       shiftSamples,
		WindowWidthSamples: windowSamples,
	}
	for i := range surface.time {
		surface.time[i] = time[0] + float64(i)*effectiveShift
	}
	surface.amplitude = mat.NewDense(tileCount, len(surface.frequency), nil)

	s.logger.Debug("Computing STFT", logging.Fields{
		"tiles":          tileCount,
		"window_samples": windowSamples,
		"shift_samples":  shiftSamples,
		"window":         s.window,
		"workers":        s.workers,
	})

	tile := func(idx int, frame []complex128) {
		start := idx * shiftSamples
		for k := range frame {
			frame[k] = complex(values[start+k]*coefficients[k], 0)
		}
		amplitude := OneSidedAmplitude(s.transformer.Forward(frame), false)
		surface.amplitude.SetRow(idx, amplitude)
	}

	workers := min(s.workers, tileCount)
	if workers <= 1 {
		frame := make([]complex128, windowSamples)
		for idx := range tileCount {
			tile(idx, frame)
		}
		return surface, nil
	}

	jobs := make(chan int, tileCount)
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()

			// Reuse frame buffer for this worker
			frame := make([]complex128, windowSamples)
			for idx := range jobs {
				tile(idx, frame)
			}
		}()
	}
	for idx := range tileCount {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	return surface, nil
}

// TileCount returns how many windows of windowSamples, shiftSamples apart,
// fit inside a signal of n samples:
// floor((n-1)/shift) - floor(window/shift) - 1.
func TileCount(n, shiftSamples, windowSamples int) int {
	if n < 2 || shiftSamples < 1 || windowSamples < 1 {
		return 0
	}
	return (n-1)/shiftSamples - windowSamples/shiftSamples - 1
}

func floorSamples(duration, dt float64) int {
	if duration <= 0 || math.IsNaN(duration) || math.IsInf(duration, 0) {
		return 0
	}
	return int(math.Floor(duration/dt + floorGuard))
}

// Time returns a copy of the tile start times
func (s *STFTSurface) Time() []float64 { return slices.Clone(s.time) }

// Frequency returns a copy of the one-sided frequency axis
func (s *STFTSurface) Frequency() []float64 { return slices.Clone(s.frequency) }

// Dims returns the number of tiles and frequency bins
func (s *STFTSurface) Dims() (tiles, bins int) { return s.amplitude.Dims() }

// At returns the amplitude of bin j in tile i
func (s *STFTSurface) At(i, j int) float64 { return s.amplitude.At(i, j) }

// Segment returns a copy of the amplitude row of tile i
func (s *STFTSurface) Segment(i int) []float64 {
	return mat.Row(nil, i, s.amplitude)
}

// Amplitude returns a copy of the whole surface indexed [tile][bin]
func (s *STFTSurface) Amplitude() [][]float64 {
	rows, _ := s.amplitude.Dims()
	out := make([][]float64, rows)
	for i := range out {
		out[i] = s.Segment(i)
	}
	return out
}

// Normalize divides every cell by the largest amplitude of the surface.
// Calls are not idempotent-guarded: a second call on a surface whose maximum
// is already 1 is a no-op only by arithmetic.
func (s *STFTSurface) Normalize() {
	maxValue := mat.Max(s.amplitude)
	if maxValue == 0 || math.IsNaN(maxValue) {
		return
	}

	rows, _ := s.amplitude.Dims()
	for i := range rows {
		row := s.amplitude.RawRowView(i)
		for j := range row {
			row[j] /= maxValue
		}
	}
}

// NormalizeEachSegment divides every tile by its own largest amplitude.
// Tiles that are entirely zero are left untouched.
func (s *STFTSurface) NormalizeEachSegment() {
	rows, _ := s.amplitude.Dims()
	for i := range rows {
		row := s.amplitude.RawRowView(i)
		maxValue := floats.Max(row)
		if maxValue == 0 || math.IsNaN(maxValue) {
			continue
		}
		for j := range row {
			row[j] /= maxValue
		}
	}
}
