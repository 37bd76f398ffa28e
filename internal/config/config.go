package config

import (
	"errors"
	"fmt"
	"math"
	"os"

	"github.com/san-kum/numlab/internal/integrators"
	"gopkg.in/yaml.v3"
)

const (
	DefaultValue        = 0.25
	DefaultSweepStart   = 0.06251
	DefaultSweepStop    = 1.999999
	DefaultSweepSamples = 10000
	DefaultSplineStart  = -0.75
	DefaultSplineStop   = 1.5
	DefaultSplineSample = 1000
	DefaultConvStart    = -20.0
	DefaultConvStop     = 20.0
	DefaultCircuitStart = 0.0
	DefaultCircuitStop  = 40.0
)

var ErrInvalid = errors.New("config: invalid value")

type Config struct {
	Verify        bool                `yaml:"verify"`
	Precision     PrecisionConfig     `yaml:"precision"`
	Linear        LinearConfig        `yaml:"linear"`
	Interpolation InterpolationConfig `yaml:"interpolation"`
	Convolution   ConvolutionConfig   `yaml:"convolution"`
	Circuit       CircuitConfig       `yaml:"circuit"`
}

type PrecisionConfig struct {
	Value        float64 `yaml:"value"`
	SweepStart   float64 `yaml:"sweep_start"`
	SweepStop    float64 `yaml:"sweep_stop"`
	SweepSamples int     `yaml:"sweep_samples"`
}

type LinearConfig struct {
	A             [][]float64 `yaml:"a"`
	B             []float64   `yaml:"b"`
	SharedFactors bool        `yaml:"shared_factors"`
}

type InterpolationConfig struct {
	X       []float64 `yaml:"x"`
	Y       []float64 `yaml:"y"`
	Start   float64   `yaml:"start"`
	Stop    float64   `yaml:"stop"`
	Samples int       `yaml:"samples"`
}

type ConvolutionConfig struct {
	Start   float64 `yaml:"start"`
	Stop    float64 `yaml:"stop"`
	Samples []int   `yaml:"samples"`
}

type CircuitConfig struct {
	Method  string    `yaml:"method"`
	Start   float64   `yaml:"start"`
	Stop    float64   `yaml:"stop"`
	Samples []int     `yaml:"samples"`
	Periods []float64 `yaml:"periods"`
}

// DefaultConfig reproduces the coursework inputs.
func DefaultConfig() *Config {
	return &Config{
		Verify: true,
		Precision: PrecisionConfig{
			Value:        DefaultValue,
			SweepStart:   DefaultSweepStart,
			SweepStop:    DefaultSweepStop,
			SweepSamples: DefaultSweepSamples,
		},
		Linear: LinearConfig{
			A: [][]float64{
				{3, 1, 0, 0, 0},
				{3, 9, 4, 0, 0},
				{0, 8, 20, 10, 0},
				{0, 0, -22, 31, -25},
				{0, 0, 0, -35, 61},
			},
			B: []float64{2, 5, -4, 8, 9},
		},
		Interpolation: InterpolationConfig{
			X:       []float64{-0.75, -0.5, -0.35, -0.1, 0.05, 0.1, 0.23, 0.29, 0.48, 0.6, 0.92, 1.05, 1.5},
			Y:       []float64{0.1, 0.3, 0.47, 0.66, 0.6, 0.54, 0.3, 0.15, -0.32, -0.54, -0.6, -0.47, -0.08},
			Start:   DefaultSplineStart,
			Stop:    DefaultSplineStop,
			Samples: DefaultSplineSample,
		},
		Convolution: ConvolutionConfig{
			Start:   DefaultConvStart,
			Stop:    DefaultConvStop,
			Samples: []int{41, 4001},
		},
		Circuit: CircuitConfig{
			Method:  string(integrators.RungeKutta4),
			Start:   DefaultCircuitStart,
			Stop:    DefaultCircuitStop,
			Samples: []int{401, 801, 1601},
			Periods: []float64{2, 0.5},
		},
	}
}

// Load reads a YAML file over the defaults; keys absent from the file keep
// their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// LoadSystem reads a linear system file with top-level a and b keys.
func LoadSystem(path string) (LinearConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return LinearConfig{}, fmt.Errorf("config: %w", err)
	}
	var sys LinearConfig
	if err := yaml.Unmarshal(data, &sys); err != nil {
		return LinearConfig{}, fmt.Errorf("config: parse %s: %w", path, err)
	}
	if err := sys.Validate(); err != nil {
		return LinearConfig{}, err
	}
	return sys, nil
}

// Validate reports every unusable value at once.
func (c *Config) Validate() error {
	return errors.Join(
		c.Precision.Validate(),
		c.Linear.Validate(),
		c.Interpolation.Validate(),
		c.Convolution.Validate(),
		c.Circuit.Validate(),
	)
}

func invalid(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{ErrInvalid}, args...)...)
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func (p PrecisionConfig) Validate() error {
	switch {
	case !finite(p.Value) || p.Value <= 0:
		return invalid("precision.value must be positive and finite, got %g", p.Value)
	case !finite(p.SweepStart) || p.SweepStart <= 0:
		return invalid("precision.sweep_start must be positive, got %g", p.SweepStart)
	case !finite(p.SweepStop) || p.SweepStop <= p.SweepStart:
		return invalid("precision.sweep_stop must exceed sweep_start, got %g", p.SweepStop)
	case p.SweepSamples < 1:
		return invalid("precision.sweep_samples must be at least 1, got %d", p.SweepSamples)
	}
	return nil
}

func (l LinearConfig) Validate() error {
	n := len(l.A)
	if n == 0 {
		return invalid("linear.a is empty")
	}
	for i, row := range l.A {
		if len(row) != n {
			return invalid("linear.a row %d has %d entries, want %d", i, len(row), n)
		}
	}
	if len(l.B) != n {
		return invalid("linear.b has %d entries, want %d", len(l.B), n)
	}
	return nil
}

func (s InterpolationConfig) Validate() error {
	if len(s.X) != len(s.Y) {
		return invalid("interpolation.x and y differ in length: %d vs %d", len(s.X), len(s.Y))
	}
	if len(s.X) < 3 {
		return invalid("interpolation needs at least 3 nodes, got %d", len(s.X))
	}
	for i := 1; i < len(s.X); i++ {
		if !(s.X[i] > s.X[i-1]) {
			return invalid("interpolation.x must be strictly increasing at index %d", i)
		}
	}
	if !(s.Stop > s.Start) {
		return invalid("interpolation.stop must exceed start")
	}
	if s.Samples < 2 {
		return invalid("interpolation.samples must be at least 2, got %d", s.Samples)
	}
	return nil
}

func (c ConvolutionConfig) Validate() error {
	if !(c.Stop > c.Start) {
		return invalid("convolution.stop must exceed start")
	}
	if len(c.Samples) == 0 {
		return invalid("convolution.samples is empty")
	}
	for _, n := range c.Samples {
		if n < 2 {
			return invalid("convolution.samples entries must be at least 2, got %d", n)
		}
	}
	return nil
}

func (c CircuitConfig) Validate() error {
	if _, err := integrators.ParseMethod(c.Method); err != nil {
		return fmt.Errorf("%w: circuit.method: %w", ErrInvalid, err)
	}
	if !finite(c.Start) || c.Start < 0 {
		return invalid("circuit.start must be non-negative, got %g", c.Start)
	}
	if !(c.Stop > c.Start) {
		return invalid("circuit.stop must exceed start")
	}
	if len(c.Samples) == 0 {
		return invalid("circuit.samples is empty")
	}
	for _, n := range c.Samples {
		if n < integrators.MinSamples {
			return invalid("circuit.samples entries must be at least %d, got %d", integrators.MinSamples, n)
		}
	}
	for _, p := range c.Periods {
		if !finite(p) || p <= 0 {
			return invalid("circuit.periods entries must be positive, got %g", p)
		}
	}
	return nil
}
