package interp

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/numlab/internal/linalg"
	"github.com/san-kum/numlab/internal/waveform"
)

// Solver solves the dense system for the interior second derivatives.
// *linalg.Kernel satisfies it.
type Solver interface {
	Solve(a linalg.Matrix, b linalg.Vector) (linalg.Vector, error)
}

// CubicSpline is a natural cubic spline: the second derivative vanishes at
// both end nodes.
type CubicSpline struct {
	xs, ys []float64
	d2     []float64
}

// NewCubicSpline fits a natural spline through at least three strictly
// increasing nodes. A nil solver uses the unverified default kernel.
func NewCubicSpline(xs, ys []float64, solver Solver) (*CubicSpline, error) {
	if err := checkNodes(xs, ys); err != nil {
		return nil, err
	}
	n := len(xs)
	if n < 3 {
		return nil, fmt.Errorf("%w: got %d, need at least 3", ErrTooFewNodes, n)
	}
	for i := 1; i < n; i++ {
		if !(xs[i] > xs[i-1]) {
			return nil, fmt.Errorf("%w: x[%d]=%g after x[%d]=%g", ErrNotIncreasing, i, xs[i], i-1, xs[i-1])
		}
	}
	if solver == nil {
		solver = linalg.New()
	}

	a, b := system(xs, ys)
	inner, err := solver.Solve(a, b)
	if err != nil {
		return nil, fmt.Errorf("interp: second derivatives: %w", err)
	}

	d2 := make([]float64, n)
	copy(d2[1:n-1], inner)
	return &CubicSpline{
		xs: append([]float64(nil), xs...),
		ys: append([]float64(nil), ys...),
		d2: d2,
	}, nil
}

// system builds the (n-2)x(n-2) tridiagonal equations for f''[1..n-2].
func system(xs, ys []float64) (linalg.Matrix, linalg.Vector) {
	m := len(xs) - 2
	a := linalg.NewMatrix(m)
	b := make(linalg.Vector, m)
	for j := 0; j < m; j++ {
		i := j + 1
		a[j][j] = (xs[i+1] - xs[i-1]) / 3
		if j != 0 {
			a[j][j-1] = (xs[i] - xs[i-1]) / 6
		}
		if j != m-1 {
			a[j][j+1] = (xs[i+1] - xs[i]) / 6
		}
		b[j] = (ys[i+1]-ys[i])/(xs[i+1]-xs[i]) - (ys[i]-ys[i-1])/(xs[i]-xs[i-1])
	}
	return a, b
}

// SecondDerivatives returns f'' at every node, zero at both ends.
func (s *CubicSpline) SecondDerivatives() []float64 {
	return append([]float64(nil), s.d2...)
}

// At evaluates the spline at t. Points outside the nodes use the end
// intervals.
func (s *CubicSpline) At(t float64) float64 {
	i := s.interval(t)
	h := s.xs[i+1] - s.xs[i]
	a := (s.xs[i+1] - t) / h
	b := 1 - a
	c := (a*a*a - a) * h * h / 6
	d := (b*b*b - b) * h * h / 6
	return a*s.ys[i] + b*s.ys[i+1] + c*s.d2[i] + d*s.d2[i+1]
}

// Eval evaluates the spline at every point of ts.
func (s *CubicSpline) Eval(ts []float64) []float64 {
	return waveform.Sample(ts, s.At)
}

// interval returns i with x[i] <= t <= x[i+1], clamped to [0, n-2].
func (s *CubicSpline) interval(t float64) int {
	i := sort.SearchFloat64s(s.xs, t) - 1
	if i < 0 {
		return 0
	}
	if last := len(s.xs) - 2; i > last {
		return last
	}
	return i
}

// Polynomial check parameters: y = x³/3 + 3x² sampled on 15 nodes over
// [-10, 10] and compared on [-6, 6], away from the natural end conditions.
const (
	CheckNodes   = 15
	CheckSamples = 5001
	CheckTol     = 0.1
)

// PolynomialCheck fits the check cubic and returns the largest deviation
// between spline and polynomial on the inner range.
func PolynomialCheck(solver Solver) (float64, error) {
	xs := waveform.Linspace(-10, 10, CheckNodes)
	spline, err := NewCubicSpline(xs, waveform.Polynomial(xs, 0, 0, 3, 1.0/3), solver)
	if err != nil {
		return 0, err
	}

	ts := waveform.Linspace(-6, 6, CheckSamples)
	want := waveform.Polynomial(ts, 0, 0, 3, 1.0/3)
	worst := 0.0
	for i, v := range spline.Eval(ts) {
		d := math.Abs(v - want[i])
		if !(d <= CheckTol) {
			return d, fmt.Errorf("interp: spline off by %g at x=%g (tol %g)", d, ts[i], CheckTol)
		}
		worst = math.Max(worst, d)
	}
	return worst, nil
}
