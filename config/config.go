// Package config holds the sonido-scope run configuration
package config

import (
	"fmt"
	"math"
	"os"
	"strings"
	"unicode/utf8"

	"gopkg.in/yaml.v3"

	"github.com/RyanBlaney/sonido-scope/algorithms/spectral"
	"github.com/RyanBlaney/sonido-scope/algorithms/windowing"
	"github.com/RyanBlaney/sonido-scope/logging"
)

// Config is the top-level configuration
type Config struct {
	Logging  LoggingConfig  `yaml:"logging"`
	Input    InputConfig    `yaml:"input"`
	Spectrum SpectrumConfig `yaml:"spectrum"`
	STFT     STFTConfig     `yaml:"stft"`
	Filter   FilterConfig   `yaml:"filter"`
}

// LoggingConfig selects the log backend and level
type LoggingConfig struct {
	Level   string `yaml:"level"`   // debug, info, warn, error
	Backend string `yaml:"backend"` // default or zap
}

// InputConfig describes two-column input files
type InputConfig struct {
	Separator  string `yaml:"separator"`   // single character, "\t" for tabs
	SkipHeader bool   `yaml:"skip_header"` // first line holds column names
}

// SpectrumConfig contains bandwidth measurement settings
type SpectrumConfig struct {
	DropDB float64 `yaml:"drop_db"`
}

// Normalization modes applied to an STFT surface
const (
	NormalizeNone    = "none"
	NormalizeGlobal  = "global"
	NormalizeSegment = "segment"
)

// STFTConfig contains short-time Fourier transform settings. Shift and width
// are in the units of the input time column.
type STFTConfig struct {
	Shift       float64 `yaml:"shift"`
	Width       float64 `yaml:"width"`
	Window      string  `yaml:"window"`
	Workers     int     `yaml:"workers"`
	Normalize   string  `yaml:"normalize"`
	Transformer string  `yaml:"transformer"`
}

// Filter types
const (
	FilterNone     = "none"
	FilterLowpass  = "lowpass"
	FilterHighpass = "highpass"
	FilterBandstop = "bandstop"
)

// FilterConfig selects a spectral band filter. Lowpass and highpass use Low
// as the cutoff; bandstop clears Low..High.
type FilterConfig struct {
	Type string  `yaml:"type"`
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Default returns the configuration used when no file is given
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			Backend: "default",
		},
		Input: InputConfig{
			Separator:  ",",
			SkipHeader: true,
		},
		Spectrum: SpectrumConfig{
			DropDB: spectral.DefaultDropDB,
		},
		STFT: STFTConfig{
			Window:      string(windowing.TypeHamming),
			Workers:     1,
			Normalize:   NormalizeNone,
			Transformer: string(spectral.TransformerGoDSP),
		},
		Filter: FilterConfig{
			Type: FilterNone,
		},
	}
}

// Load reads a YAML file. Keys missing from the file keep their defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes YAML over the defaults and validates the result
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every section
func (c *Config) Validate() error {
	if _, err := logging.ParseLevel(c.Logging.Level); err != nil {
		return fmt.Errorf("logging.level: %w", err)
	}
	switch strings.ToLower(c.Logging.Backend) {
	case "", "default", "zap", "none":
	default:
		return fmt.Errorf("logging.backend: unknown backend %q", c.Logging.Backend)
	}

	if _, err := c.Input.SeparatorRune(); err != nil {
		return err
	}

	if c.Spectrum.DropDB <= 0 || math.IsNaN(c.Spectrum.DropDB) {
		return fmt.Errorf("spectrum.drop_db must be > 0, got %v", c.Spectrum.DropDB)
	}

	if c.STFT.Shift < 0 || c.STFT.Width < 0 {
		return fmt.Errorf("stft.shift and stft.width must be >= 0")
	}
	if _, err := windowing.ParseType(c.STFT.Window); err != nil {
		return fmt.Errorf("stft.window: %w", err)
	}
	switch c.STFT.Normalize {
	case "", NormalizeNone, NormalizeGlobal, NormalizeSegment:
	default:
		return fmt.Errorf("stft.normalize: unknown mode %q", c.STFT.Normalize)
	}
	if _, err := spectral.NewTransformer(c.STFT.Transformer); err != nil {
		return fmt.Errorf("stft.transformer: %w", err)
	}

	switch c.Filter.Type {
	case "", FilterNone:
	case FilterLowpass, FilterHighpass:
		if c.Filter.Low < 0 {
			return fmt.Errorf("filter.low must be >= 0, got %v", c.Filter.Low)
		}
	case FilterBandstop:
		if c.Filter.Low < 0 || c.Filter.High < c.Filter.Low {
			return fmt.Errorf("filter band [%v, %v] is invalid", c.Filter.Low, c.Filter.High)
		}
	default:
		return fmt.Errorf("filter.type: unknown filter %q", c.Filter.Type)
	}

	return nil
}

// SeparatorRune returns the configured separator. "\t" and "tab" both mean
// a tab character.
func (ic InputConfig) SeparatorRune() (rune, error) {
	switch ic.Separator {
	case "":
		return ',', nil
	case `\t`, "tab":
		return '\t', nil
	}
	if utf8.RuneCountInString(ic.Separator) != 1 {
		return 0, fmt.Errorf("input.separator must be a single character, got %q", ic.Separator)
	}
	r, _ := utf8.DecodeRuneInString(ic.Separator)
	return r, nil
}

// NewLogger builds the logger described by the logging section
func (lc LoggingConfig) NewLogger() (logging.Logger, error) {
	level, err := logging.ParseLevel(lc.Level)
	if err != nil {
		return nil, err
	}
	return logging.New(lc.Backend, level)
}

// NewSTFT builds an STFT engine from the stft section
func (sc STFTConfig) NewSTFT() (*spectral.STFT, error) {
	window, err := windowing.ParseType(sc.Window)
	if err != nil {
		return nil, err
	}
	transformer, err := spectral.NewTransformer(sc.Transformer)
	if err != nil {
		return nil, err
	}

	return spectral.NewSTFT(
		spectral.WithWindow(window),
		spectral.WithTransformer(transformer),
		spectral.WithWorkers(sc.Workers),
	), nil
}
