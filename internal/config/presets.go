package config

import (
	"math"
	"sort"
)

// Presets override parts of DefaultConfig, keyed by section then name.
var Presets = map[string]map[string]func(*Config){
	"precision": {
		"quarter": func(c *Config) { c.Precision.Value = 0.25 },
		"unit":    func(c *Config) { c.Precision.Value = 1 },
		"binades": func(c *Config) {
			c.Precision.SweepStart, c.Precision.SweepStop, c.Precision.SweepSamples = 0.5, 8, 2000
		},
	},
	"linear": {
		"coursework": func(c *Config) {},
		"identity": func(c *Config) {
			c.Linear.A = [][]float64{{1, 0, 0, 0}, {0, 1, 0, 0}, {0, 0, 1, 0}, {0, 0, 0, 1}}
			c.Linear.B = []float64{1, 2, 3, 4}
		},
		"diagonal": func(c *Config) {
			c.Linear.A = [][]float64{{2, 0, 0}, {0, 4, 0}, {0, 0, 8}}
			c.Linear.B = []float64{1, 1, 1}
		},
		"shared": func(c *Config) { c.Linear.SharedFactors = true },
	},
	"interpolation": {
		"coursework": func(c *Config) {},
		"sine": func(c *Config) {
			x := make([]float64, 9)
			y := make([]float64, 9)
			for i := range x {
				x[i] = float64(i) * math.Pi / 4
				y[i] = math.Sin(x[i])
			}
			c.Interpolation.X, c.Interpolation.Y = x, y
			c.Interpolation.Start, c.Interpolation.Stop = 0, 2*math.Pi
		},
	},
	"convolution": {
		"coarse": func(c *Config) { c.Convolution.Samples = []int{41} },
		"fine":   func(c *Config) { c.Convolution.Samples = []int{4001} },
	},
	"circuit": {
		"coarse": func(c *Config) { c.Circuit.Samples = []int{401} },
		"fine":   func(c *Config) { c.Circuit.Samples = []int{1601} },
		"ab4":    func(c *Config) { c.Circuit.Method = "AB4" },
		"slow-square": func(c *Config) {
			c.Circuit.Periods = []float64{4, 8}
		},
	},
}

// GetPreset returns a fresh default config with the preset applied, or nil
// when the section or preset is unknown.
func GetPreset(section, preset string) *Config {
	sectionPresets, ok := Presets[section]
	if !ok {
		return nil
	}
	apply, ok := sectionPresets[preset]
	if !ok {
		return nil
	}
	cfg := DefaultConfig()
	apply(cfg)
	return cfg
}

// ListPresets returns the preset names of a section in sorted order.
func ListPresets(section string) []string {
	sectionPresets, ok := Presets[section]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(sectionPresets))
	for name := range sectionPresets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
