package experiment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/san-kum/numlab/internal/config"
)

var ErrUnknownSection = errors.New("experiment: unknown section")

// RunFunc computes one section from the configuration.
type RunFunc func(ctx context.Context, cfg *config.Config) (*Result, error)

type Section struct {
	ID    string
	Name  string
	Title string
	Run   RunFunc
}

type Registry struct {
	sections map[string]Section
	order    []string
}

func NewRegistry() *Registry {
	r := &Registry{sections: make(map[string]Section)}

	r.Register(Section{ID: "q1", Name: "precision", Title: "Floating-point neighbours", Run: runPrecision})
	r.Register(Section{ID: "q2", Name: "linear", Title: "LU decomposition", Run: runLinear})
	r.Register(Section{ID: "q3", Name: "interpolation", Title: "Lagrange and cubic spline interpolation", Run: runInterpolation})
	r.Register(Section{ID: "q4", Name: "convolution", Title: "Convolution by FFT", Run: runConvolution})
	r.Register(Section{ID: "q5", Name: "circuit", Title: "RC low-pass integration", Run: runCircuit})

	return r
}

// Register adds or replaces a section.
func (r *Registry) Register(s Section) {
	if _, ok := r.sections[s.Name]; !ok {
		r.order = append(r.order, s.Name)
	}
	r.sections[s.Name] = s
}

// Get resolves a section by name or id, case-insensitively.
func (r *Registry) Get(name string) (Section, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	if s, ok := r.sections[key]; ok {
		return s, nil
	}
	for _, s := range r.sections {
		if s.ID == key {
			return s, nil
		}
	}
	return Section{}, fmt.Errorf("%w: %s", ErrUnknownSection, name)
}

// List returns the sections in registration order.
func (r *Registry) List() []Section {
	out := make([]Section, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.sections[name])
	}
	return out
}

func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}
