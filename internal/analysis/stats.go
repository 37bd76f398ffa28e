package analysis

import (
	"fmt"
	"math"
)

// MeanRelativeError compares got with want over indices 1..n-1; index 0 is
// the shared initial condition. It returns the mean and the per-sample
// errors.
func MeanRelativeError(got, want []float64) (float64, []float64, error) {
	if len(got) != len(want) {
		return 0, nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(got), len(want))
	}
	if len(got) < 2 {
		return 0, nil, ErrEmpty
	}

	errs := make([]float64, len(got)-1)
	sum := 0.0
	for i := 1; i < len(got); i++ {
		if want[i] == 0 {
			return 0, nil, fmt.Errorf("%w: index %d", ErrZeroReference, i)
		}
		e := math.Abs(got[i]-want[i]) / math.Abs(want[i])
		errs[i-1] = e
		sum += e
	}
	return sum / float64(len(errs)), errs, nil
}

// ConvergenceOrder is log2(coarse/fine) for errors measured at step h and
// h/2.
func ConvergenceOrder(coarse, fine float64) float64 {
	return math.Log2(coarse / fine)
}
