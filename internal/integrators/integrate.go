package integrators

import (
	"fmt"
	"math"
)

const (
	// InitialOutput is Vout[0]: the capacitor starts charged to the input
	// level it held before t = 0.
	InitialOutput = 1.0

	// RunUp is the number of RK4 steps taken before the selected method
	// takes over; AB4 needs that much history.
	RunUp = 3

	// MinSamples is the shortest grid Integrate accepts.
	MinSamples = RunUp + 1

	gridTol = 1e-9
)

// Samples is the input to an integration: a uniform time grid, the input
// voltage at every grid point and at every midpoint t[i] + H/2.
type Samples struct {
	T       []float64
	Vin     []float64
	VinHalf []float64
	H       float64
}

// NewSamples validates the grid and derives H = t[1] - t[0].
func NewSamples(t, vin, vinHalf []float64) (*Samples, error) {
	n := len(t)
	if len(vin) != n || len(vinHalf) != n {
		return nil, fmt.Errorf("%w: len(t)=%d len(vin)=%d len(vinHalf)=%d", ErrLengthMismatch, n, len(vin), len(vinHalf))
	}
	if n < MinSamples {
		return nil, fmt.Errorf("%w: got %d, need at least %d", ErrTooFewSamples, n, MinSamples)
	}

	h := t[1] - t[0]
	if !(h > 0) {
		return nil, fmt.Errorf("%w: first step %g", ErrNonUniformGrid, h)
	}
	for i := 1; i < n-1; i++ {
		if d := t[i+1] - t[i]; math.Abs(d-h) > gridTol*h {
			return nil, fmt.Errorf("%w: step %d is %g, first step is %g", ErrNonUniformGrid, i, d, h)
		}
	}

	return &Samples{T: t, Vin: vin, VinHalf: vinHalf, H: h}, nil
}

func (s *Samples) Len() int {
	return len(s.T)
}

// Integrate returns Vout sampled on t. The method is checked before anything
// is computed, so an invalid method never yields a partial trajectory.
func Integrate(t, vin, vinHalf []float64, method Method) ([]float64, error) {
	stepper, err := NewStepper(method)
	if err != nil {
		return nil, err
	}
	s, err := NewSamples(t, vin, vinHalf)
	if err != nil {
		return nil, err
	}
	return Run(s, stepper), nil
}

// Run seeds Vout[0], takes RunUp RK4 steps and hands the rest of the grid to
// stepper.
func Run(s *Samples, stepper Stepper) []float64 {
	n := s.Len()
	vout := make([]float64, n)
	vout[0] = InitialOutput

	runUp := NewRK4()
	for i := 0; i < RunUp; i++ {
		runUp.Advance(s, vout, i)
	}
	for i := RunUp; i < n-1; i++ {
		stepper.Advance(s, vout, i)
	}
	return vout
}
