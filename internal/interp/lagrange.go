// Package interp interpolates tabulated data with a global Lagrange
// polynomial or a natural cubic spline.
package interp

import (
	"errors"
	"fmt"
)

var (
	ErrLengthMismatch = errors.New("interp: xs and ys differ in length")
	ErrNoNodes        = errors.New("interp: no nodes")
	ErrDuplicateNode  = errors.New("interp: duplicate node")
	ErrTooFewNodes    = errors.New("interp: too few nodes")
	ErrNotIncreasing  = errors.New("interp: nodes must be strictly increasing")
)

func checkNodes(xs, ys []float64) error {
	if len(xs) != len(ys) {
		return fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(xs), len(ys))
	}
	if len(xs) == 0 {
		return ErrNoNodes
	}
	return nil
}

// Lagrange evaluates the polynomial through (xs[i], ys[i]) at t.
func Lagrange(xs, ys []float64, t float64) (float64, error) {
	out, err := LagrangeAll(xs, ys, []float64{t})
	if err != nil {
		return 0, err
	}
	return out[0], nil
}

// LagrangeAll evaluates the interpolating polynomial at every point of ts.
func LagrangeAll(xs, ys, ts []float64) ([]float64, error) {
	if err := checkNodes(xs, ys); err != nil {
		return nil, err
	}
	for i := range xs {
		for j := i + 1; j < len(xs); j++ {
			if xs[i] == xs[j] {
				return nil, fmt.Errorf("%w: x[%d] = x[%d] = %g", ErrDuplicateNode, i, j, xs[i])
			}
		}
	}

	out := make([]float64, len(ts))
	for k, t := range ts {
		sum := 0.0
		for i, xi := range xs {
			prod := 1.0
			for j, xj := range xs {
				if j != i {
					prod *= (t - xj) / (xi - xj)
				}
			}
			sum += prod * ys[i]
		}
		out[k] = sum
	}
	return out, nil
}
