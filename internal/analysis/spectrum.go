package analysis

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrEmpty          = errors.New("analysis: empty signal")
	ErrLengthMismatch = errors.New("analysis: signals differ in length")
	ErrBadSpacing     = errors.New("analysis: sample spacing must be positive")
	ErrZeroReference  = errors.New("analysis: reference value is zero")
)

// FFTFreq returns the sample frequencies of an n-point transform with
// sample spacing d, in the order the transform produces them.
func FFTFreq(n int, d float64) []float64 {
	out := make([]float64, n)
	half := (n + 1) / 2
	for i := range out {
		k := i
		if i >= half {
			k = i - n
		}
		out[i] = float64(k) / (d * float64(n))
	}
	return out
}

// FFTShift moves the zero-frequency entry to the centre.
func FFTShift[T any](x []T) []T {
	n := len(x)
	out := make([]T, n)
	for i, v := range x {
		out[(i+n/2)%n] = v
	}
	return out
}

// ortho is the forward transform scaled by 1/√n.
func ortho(x []float64) []complex128 {
	f := fft.FFTReal(x)
	s := complex(1/math.Sqrt(float64(len(x))), 0)
	for i := range f {
		f[i] *= s
	}
	return f
}

// Spectrum returns the shifted frequency axis and the magnitude of the
// orthonormal transform of x sampled every dt.
func Spectrum(x []float64, dt float64) (freq, mag []float64, err error) {
	if len(x) == 0 {
		return nil, nil, ErrEmpty
	}
	if !(dt > 0) {
		return nil, nil, fmt.Errorf("%w: %g", ErrBadSpacing, dt)
	}

	f := FFTShift(ortho(x))
	mag = make([]float64, len(f))
	for i, v := range f {
		mag[i] = cmplx.Abs(v)
	}
	return FFTShift(FFTFreq(len(x), dt)), mag, nil
}

// CircularConvolve multiplies the orthonormal transforms of a and b and
// returns the real part of the shifted inverse. This is the circular
// convolution of a and b divided by their length.
func CircularConvolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 {
		return nil, ErrEmpty
	}
	if len(a) != len(b) {
		return nil, fmt.Errorf("%w: %d vs %d", ErrLengthMismatch, len(a), len(b))
	}

	fa, fb := ortho(a), ortho(b)
	for i := range fa {
		fa[i] *= fb[i]
	}
	return realPart(FFTShift(fft.IFFT(fa))), nil
}

// LinearConvolve returns the full len(a)+len(b)-1 point convolution.
func LinearConvolve(a, b []float64) ([]float64, error) {
	if len(a) == 0 || len(b) == 0 {
		return nil, ErrEmpty
	}

	n := len(a) + len(b) - 1
	fa := fft.FFTReal(pad(a, n))
	fb := fft.FFTReal(pad(b, n))
	for i := range fa {
		fa[i] *= fb[i]
	}
	return realPart(fft.IFFT(fa)), nil
}

func pad(x []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, x)
	return out
}

func realPart(x []complex128) []float64 {
	out := make([]float64, len(x))
	for i, v := range x {
		out[i] = real(v)
	}
	return out
}

// ArgMax returns the index of the largest entry, or -1 for an empty slice.
func ArgMax(x []float64) int {
	best := -1
	for i, v := range x {
		if best < 0 || v > x[best] {
			best = i
		}
	}
	return best
}
