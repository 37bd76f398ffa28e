// Package waveform builds sample grids and the input signals used by the
// exercises.
package waveform

import "math"

// Linspace returns n evenly spaced samples over [start, stop]. The last
// sample is exactly stop.
func Linspace(start, stop float64, n int) []float64 {
	if n <= 0 {
		return []float64{}
	}
	if n == 1 {
		return []float64{start}
	}
	out := make([]float64, n)
	step := (stop - start) / float64(n-1)
	for i := range out {
		out[i] = float64(i)*step + start
	}
	out[n-1] = stop
	return out
}

// Shift returns t + d.
func Shift(t []float64, d float64) []float64 {
	out := make([]float64, len(t))
	for i, v := range t {
		out[i] = v + d
	}
	return out
}

// Sample evaluates f at every point of t.
func Sample(t []float64, f func(float64) float64) []float64 {
	out := make([]float64, len(t))
	for i, v := range t {
		out[i] = f(v)
	}
	return out
}

// Step is 1 for t < 0 and 0 afterwards: a unit input switched off at t = 0.
func Step(t []float64) []float64 {
	return Sample(t, func(x float64) float64 {
		if x < 0 {
			return 1
		}
		return 0
	})
}

// Square is 1 for t < 0, then alternates 0 and 1 every half period.
func Square(t []float64, period float64) []float64 {
	return Sample(t, func(x float64) float64 {
		if x < 0 {
			return 1
		}
		if int(2*(x/period))%2 == 0 {
			return 0
		}
		return 1
	})
}

// Gauss is exp(-t²/4)/√(2π).
func Gauss(t []float64) []float64 {
	norm := 1 / math.Sqrt(2*math.Pi)
	return Sample(t, func(x float64) float64 {
		return norm * math.Exp(-x*x/4)
	})
}

// TopHat is 4 on [5, 7] and 0 elsewhere.
func TopHat(t []float64) []float64 {
	return Sample(t, func(x float64) float64 {
		if x >= 5 && x <= 7 {
			return 4
		}
		return 0
	})
}

// Decay is exp(-t), the analytic response of the RC circuit to Step.
func Decay(t []float64) []float64 {
	return Sample(t, func(x float64) float64 { return math.Exp(-x) })
}

// Polynomial evaluates c[0] + c[1]·t + c[2]·t² + ... by Horner's rule.
func Polynomial(t []float64, c ...float64) []float64 {
	return Sample(t, func(x float64) float64 {
		sum := 0.0
		for i := len(c) - 1; i >= 0; i-- {
			sum = sum*x + c[i]
		}
		return sum
	})
}
