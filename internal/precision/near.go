// Package precision probes the spacing of float64 values around a given
// number by bisection, without reading the bit pattern.
package precision

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrNotFinite    = errors.New("precision: value is not finite")
	ErrNotPositive  = errors.New("precision: value must be positive")
	ErrNoNeighbour  = errors.New("precision: bisection could not move off the value")
	ErrInconsistent = errors.New("precision: neighbours are not mutual")
)

// Neighbours describes the representable numbers adjacent to a value.
type Neighbours struct {
	Upper float64
	Lower float64

	// FracRange is the width of the interval that rounds to the value,
	// relative to the value.
	FracRange float64
}

// Near finds the nearest representable numbers above and below r. Each side
// starts a quarter of r away and halves the gap until the midpoint rounds
// back onto r or onto the previous candidate.
func Near(r float64) (Neighbours, error) {
	if math.IsNaN(r) || math.IsInf(r, 0) {
		return Neighbours{}, ErrNotFinite
	}
	if r <= 0 {
		return Neighbours{}, fmt.Errorf("%w: %g", ErrNotPositive, r)
	}

	upper := bisect(r, r+r/4)
	lower := bisect(r, r-r/4)
	if !(upper > r) || math.IsInf(upper, 0) || !(lower < r) {
		return Neighbours{}, fmt.Errorf("%w: %g", ErrNoNeighbour, r)
	}

	difU := (upper - r) / 2
	difL := (r - lower) / 2
	return Neighbours{
		Upper:     upper,
		Lower:     lower,
		FracRange: (difU + difL) / r,
	}, nil
}

func bisect(r, x float64) float64 {
	last := math.NaN()
	for x != r && x != last {
		last = x
		x = (x + r) / 2
	}
	return last
}

// Check verifies that the neighbours of r see r as their own neighbour.
func Check(r float64) error {
	n, err := Near(r)
	if err != nil {
		return err
	}
	above, err := Near(n.Upper)
	if err != nil {
		return err
	}
	below, err := Near(n.Lower)
	if err != nil {
		return err
	}
	if above.Lower != r || below.Upper != r {
		return fmt.Errorf("%w: r=%g upper.lower=%g lower.upper=%g", ErrInconsistent, r, above.Lower, below.Upper)
	}
	return nil
}

// PowersOfTwo are the binade edges highlighted in the sweep report.
var PowersOfTwo = []float64{2, 1, 0.5, 0.25, 0.125, 0.0625}
