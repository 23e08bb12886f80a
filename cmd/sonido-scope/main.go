// Command sonido-scope characterizes sampled traces stored as two-column
// text files and prints the result as JSON.
//
// Usage:
//
//	sonido-scope [flags] --mode <mode> --input <file> [more files...]
//
// Modes:
//
//	pulse       rise time, FWHM and 10/50/90% crossings of a time/value trace
//	spectrum    peak and -3dB bandwidth of a frequency/amplitude trace
//	stft        short-time amplitude spectrum of a time/value trace
//	filter      band filter a time/value trace through its spectrum
//	magnitudes  peak magnitude statistics across all given traces
//
// Examples:
//
//	sonido-scope -m pulse -i pulse.csv
//	sonido-scope --mode stft --shift 0.01 --width 0.1 --input chirp.csv
//	sonido-scope -c scope.yaml -m filter -i noisy.csv
//	sonido-scope -m magnitudes a.csv b.csv c.csv
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/spf13/pflag"

	"github.com/RyanBlaney/sonido-scope/algorithms/common"
	"github.com/RyanBlaney/sonido-scope/algorithms/spectral"
	"github.com/RyanBlaney/sonido-scope/algorithms/stats"
	"github.com/RyanBlaney/sonido-scope/algorithms/temporal"
	"github.com/RyanBlaney/sonido-scope/config"
	"github.com/RyanBlaney/sonido-scope/dataio"
	"github.com/RyanBlaney/sonido-scope/logging"
)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			os.Exit(0)
		}
		logging.Error(err, "sonido-scope failed")
		os.Exit(1)
	}
}

type options struct {
	configPath  string
	mode        string
	inputs      []string
	shift       float64
	width       float64
	offsetUntil float64
	cutStart    float64
	cutEnd      float64
	pad         int
}

func parseFlags(args []string, stderr io.Writer) (*options, error) {
	fs := pflag.NewFlagSet("sonido-scope", pflag.ContinueOnError)
	fs.SetOutput(stderr)

	o := &options{}
	var input string
	fs.StringVarP(&o.configPath, "config", "c", "", "YAML configuration file")
	fs.StringVarP(&o.mode, "mode", "m", "pulse", "analysis: pulse, spectrum, stft, filter or magnitudes")
	fs.StringVarP(&input, "input", "i", "", "two-column input file")
	fs.Float64Var(&o.shift, "shift", math.NaN(), "STFT time shift (overrides stft.shift)")
	fs.Float64Var(&o.width, "width", math.NaN(), "STFT window width (overrides stft.width)")
	fs.Float64Var(&o.offsetUntil, "offset-until", math.NaN(), "subtract the mean of the trace up to this time")
	fs.Float64Var(&o.cutStart, "cut-start", math.NaN(), "keep the trace from this time on")
	fs.Float64Var(&o.cutEnd, "cut-end", math.NaN(), "keep the trace up to this time")
	fs.IntVar(&o.pad, "pad", 0, "zeros appended before filtering")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: sonido-scope [flags] --input <file> [more files...]\n\n")
		fmt.Fprintf(stderr, "Characterizes two-column traces and prints JSON to stdout.\n\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if input != "" {
		o.inputs = append(o.inputs, input)
	}
	o.inputs = append(o.inputs, fs.Args()...)
	if len(o.inputs) == 0 {
		fs.Usage()
		return nil, fmt.Errorf("no input file given")
	}
	return o, nil
}

func run(args []string, stdout io.Writer) error {
	o, err := parseFlags(args, os.Stderr)
	if err != nil {
		return err
	}

	cfg := config.Default()
	if o.configPath != "" {
		if cfg, err = config.Load(o.configPath); err != nil {
			return err
		}
	}

	logger, err := cfg.Logging.NewLogger()
	if err != nil {
		return err
	}
	logging.SetGlobalLogger(logger)
	if zl, ok := logger.(*logging.ZapLogger); ok {
		defer zl.Sync()
	}

	if !math.IsNaN(o.shift) {
		cfg.STFT.Shift = o.shift
	}
	if !math.IsNaN(o.width) {
		cfg.STFT.Width = o.width
	}

	sep, err := cfg.Input.SeparatorRune()
	if err != nil {
		return err
	}
	traces := make([]*dataio.TwoColumn, len(o.inputs))
	for i, path := range o.inputs {
		traces[i], err = dataio.LoadTwoColumnFile(path,
			dataio.WithSeparator(sep),
			dataio.WithHeader(cfg.Input.SkipHeader),
		)
		if err != nil {
			return err
		}
	}

	logging.Info("Running analysis", logging.Fields{
		"mode":   o.mode,
		"inputs": len(traces),
	})

	var result any
	switch o.mode {
	case "pulse":
		result, err = analyzePulse(o, traces[0])
	case "spectrum":
		result, err = spectral.AnalyzeSpectrumDrop(traces[0].X, traces[0].Y, cfg.Spectrum.DropDB)
	case "stft":
		result, err = computeSTFT(o, cfg, traces[0])
	case "filter":
		result, err = filterTrace(o, cfg, traces[0])
	case "magnitudes":
		series := make([][]float64, len(traces))
		for i, tc := range traces {
			series[i] = tc.Y
		}
		result, err = stats.AnalyzeMagnitudes(series)
	default:
		return fmt.Errorf("unknown mode %q", o.mode)
	}
	if err != nil {
		return fmt.Errorf("%s analysis failed: %w", o.mode, err)
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(result)
}

// condition applies the optional offset removal and cut to a time trace
func condition(o *options, tc *dataio.TwoColumn) (times, values []float64, err error) {
	times, values = tc.X, tc.Y

	if !math.IsNaN(o.offsetUntil) {
		if values, err = temporal.RemoveMeanOffset(values, times, o.offsetUntil); err != nil {
			return nil, nil, err
		}
	}

	if !math.IsNaN(o.cutStart) || !math.IsNaN(o.cutEnd) {
		start, end := o.cutStart, o.cutEnd
		if math.IsNaN(start) {
			start = times[0]
		}
		if math.IsNaN(end) {
			end = times[len(times)-1]
		}
		if values, times, err = temporal.CutTimeDomain(values, times, start, end); err != nil {
			return nil, nil, err
		}
	}
	return times, values, nil
}

func analyzePulse(o *options, tc *dataio.TwoColumn) (temporal.PulseFeatures, error) {
	times, values, err := condition(o, tc)
	if err != nil {
		return temporal.PulseFeatures{}, err
	}
	return temporal.AnalyzePulse(times, values)
}

type stftResult struct {
	Time      []float64   `json:"time"`
	Frequency []float64   `json:"frequency"`
	Amplitude [][]float64 `json:"amplitude"`
	*spectral.STFTSurface
}

func computeSTFT(o *options, cfg *config.Config, tc *dataio.TwoColumn) (*stftResult, error) {
	times, values, err := condition(o, tc)
	if err != nil {
		return nil, err
	}

	engine, err := cfg.STFT.NewSTFT()
	if err != nil {
		return nil, err
	}
	surface, err := engine.Compute(times, values, cfg.STFT.Shift, cfg.STFT.Width)
	if err != nil {
		return nil, err
	}

	switch cfg.STFT.Normalize {
	case config.NormalizeGlobal:
		surface.Normalize()
	case config.NormalizeSegment:
		surface.NormalizeEachSegment()
	}

	return &stftResult{
		Time:        surface.Time(),
		Frequency:   surface.Frequency(),
		Amplitude:   surface.Amplitude(),
		STFTSurface: surface,
	}, nil
}

type filterResult struct {
	Time      []float64 `json:"time"`
	Value     []float64 `json:"value"`
	Frequency []float64 `json:"frequency"`
	Before    []float64 `json:"amplitude_before"`
	After     []float64 `json:"amplitude_after"`
}

func filterTrace(o *options, cfg *config.Config, tc *dataio.TwoColumn) (*filterResult, error) {
	times, values, err := condition(o, tc)
	if err != nil {
		return nil, err
	}
	if o.pad > 0 {
		if values, times, err = temporal.ZeroPad(values, times, o.pad, false); err != nil {
			return nil, err
		}
	}

	if len(values) < 2 {
		return nil, fmt.Errorf("need at least 2 samples, got %d: %w", len(values), common.ErrInvalidArgument)
	}

	transformer, err := spectral.NewTransformer(cfg.STFT.Transformer)
	if err != nil {
		return nil, err
	}
	grid, err := spectral.NewFrequencyGrid(times[1]-times[0], len(values))
	if err != nil {
		return nil, err
	}

	spectrum := transformer.Forward(spectral.ToComplex(values))
	res := &filterResult{
		Time:      times,
		Frequency: grid.Frequencies(),
		Before:    spectral.OneSidedAmplitude(spectrum, false),
	}

	switch cfg.Filter.Type {
	case config.FilterLowpass:
		err = grid.Lowpass(spectrum, cfg.Filter.Low)
	case config.FilterHighpass:
		err = grid.Highpass(spectrum, cfg.Filter.Low)
	case config.FilterBandstop:
		err = grid.Bandstop(spectrum, cfg.Filter.Low, cfg.Filter.High)
	}
	if err != nil {
		return nil, err
	}

	res.After = spectral.OneSidedAmplitude(spectrum, false)
	res.Value = spectral.RealPart(transformer.Inverse(spectrum))
	return res, nil
}
