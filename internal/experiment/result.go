package experiment

import (
	"errors"
	"time"

	"github.com/san-kum/numlab/internal/linalg"
)

// Value is a labelled scalar in report order.
type Value struct {
	Label string  `json:"label"`
	V     float64 `json:"value"`
}

type NamedMatrix struct {
	Name string      `json:"name"`
	M    [][]float64 `json:"matrix"`
}

type NamedVector struct {
	Name string    `json:"name"`
	V    []float64 `json:"vector"`
}

// Series is a named curve sampled at X.
type Series struct {
	Name string    `json:"name"`
	X    []float64 `json:"x"`
	Y    []float64 `json:"y"`
}

// Check is the outcome of one self-check. Detail holds the failure message.
type Check struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
	Detail string `json:"detail,omitempty"`
}

// Result collects everything a section produced.
type Result struct {
	Section  string        `json:"section"`
	Title    string        `json:"title"`
	Values   []Value       `json:"values"`
	Matrices []NamedMatrix `json:"matrices,omitempty"`
	Vectors  []NamedVector `json:"vectors,omitempty"`
	Series   []Series      `json:"-"`
	Checks   []Check       `json:"checks"`
	Duration time.Duration `json:"duration"`
}

func (r *Result) AddValue(label string, v float64) {
	r.Values = append(r.Values, Value{Label: label, V: v})
}

func (r *Result) AddMatrix(name string, m linalg.Matrix) {
	r.Matrices = append(r.Matrices, NamedMatrix{Name: name, M: m})
}

func (r *Result) AddVector(name string, v []float64) {
	r.Vectors = append(r.Vectors, NamedVector{Name: name, V: v})
}

func (r *Result) AddSeries(name string, x, y []float64) {
	r.Series = append(r.Series, Series{Name: name, X: x, Y: y})
}

// AddCheck records a passed check for a nil err and a failed one otherwise.
func (r *Result) AddCheck(name string, err error) {
	c := Check{Name: name, Passed: err == nil}
	if err != nil {
		c.Detail = err.Error()
	}
	r.Checks = append(r.Checks, c)
}

// Passed reports whether every recorded check passed.
func (r *Result) Passed() bool {
	for _, c := range r.Checks {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Value looks up a scalar by label.
func (r *Result) Value(label string) (float64, bool) {
	for _, v := range r.Values {
		if v.Label == label {
			return v.V, true
		}
	}
	return 0, false
}

// FindSeries looks up a series by name.
func (r *Result) FindSeries(name string) (Series, bool) {
	for _, s := range r.Series {
		if s.Name == name {
			return s, true
		}
	}
	return Series{}, false
}

// verified records the outcome of a kernel operation. Oracle failures become
// failed checks and the section carries on; any other error is returned.
func (r *Result) verified(name string, verify bool, err error) error {
	if errors.Is(err, linalg.ErrValidation) {
		r.AddCheck(name, err)
		return nil
	}
	if err != nil {
		return err
	}
	if verify {
		r.AddCheck(name, nil)
	}
	return nil
}
