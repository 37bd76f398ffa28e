package interp

import (
	"errors"
	"math"
	"testing"

	"github.com/san-kum/numlab/internal/linalg"
	"github.com/san-kum/numlab/internal/waveform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Tabulated data from the interpolation exercise.
var (
	dataX = []float64{-0.75, -0.5, -0.35, -0.1, 0.05, 0.1, 0.23, 0.29, 0.48, 0.6, 0.92, 1.05, 1.5}
	dataY = []float64{0.1, 0.3, 0.47, 0.66, 0.6, 0.54, 0.3, 0.15, -0.32, -0.54, -0.6, -0.47, -0.08}
)

func TestLagrange_HitsNodes(t *testing.T) {
	got, err := LagrangeAll(dataX, dataY, dataX)
	require.NoError(t, err)
	assert.Equal(t, dataY, got)
}

func TestLagrange_ReproducesQuadratic(t *testing.T) {
	xs := []float64{-1, 0.5, 2}
	ys := waveform.Polynomial(xs, 1, -2, 0.5)

	v, err := Lagrange(xs, ys, 3)
	require.NoError(t, err)
	assert.InDelta(t, 1-6+4.5, v, 1e-12)
}

func TestLagrange_Errors(t *testing.T) {
	_, err := Lagrange([]float64{1, 2, 1}, []float64{0, 0, 0}, 0.5)
	require.ErrorIs(t, err, ErrDuplicateNode)

	_, err = Lagrange([]float64{1, 2}, []float64{0}, 0.5)
	require.ErrorIs(t, err, ErrLengthMismatch)

	_, err = Lagrange(nil, nil, 0.5)
	require.ErrorIs(t, err, ErrNoNodes)
}

func TestCubicSpline_HitsNodes(t *testing.T) {
	s, err := NewCubicSpline(dataX, dataY, linalg.New(linalg.WithVerification(true)))
	require.NoError(t, err)

	for i, x := range dataX {
		assert.InDelta(t, dataY[i], s.At(x), 1e-12, "node %d", i)
	}
}

func TestCubicSpline_NaturalEnds(t *testing.T) {
	s, err := NewCubicSpline(dataX, dataY, nil)
	require.NoError(t, err)

	d2 := s.SecondDerivatives()
	require.Len(t, d2, len(dataX))
	assert.Zero(t, d2[0])
	assert.Zero(t, d2[len(d2)-1])

	d2[1] = 99
	assert.NotEqual(t, 99.0, s.SecondDerivatives()[1])
}

func TestCubicSpline_ReproducesLine(t *testing.T) {
	xs := []float64{0, 0.3, 1, 1.2, 2.5}
	s, err := NewCubicSpline(xs, waveform.Polynomial(xs, 1, 2), nil)
	require.NoError(t, err)

	ts := waveform.Linspace(0, 2.5, 26)
	want := waveform.Polynomial(ts, 1, 2)
	for i, v := range s.Eval(ts) {
		assert.InDelta(t, want[i], v, 1e-12, "t=%g", ts[i])
	}
}

func TestCubicSpline_ClampsInterval(t *testing.T) {
	xs := []float64{0, 1, 2, 3}
	s, err := NewCubicSpline(xs, []float64{0, 1, 0, 1}, nil)
	require.NoError(t, err)

	assert.Equal(t, 0, s.interval(0))
	assert.Equal(t, 0, s.interval(-5))
	assert.Equal(t, 1, s.interval(1.5))
	assert.Equal(t, 2, s.interval(3))
	assert.Equal(t, 2, s.interval(10))
	assert.InDelta(t, 0, s.At(0), 1e-15)
}

func TestCubicSpline_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		xs, ys []float64
		want   error
	}{
		{"two nodes", []float64{0, 1}, []float64{0, 1}, ErrTooFewNodes},
		{"repeated", []float64{0, 1, 1}, []float64{0, 1, 2}, ErrNotIncreasing},
		{"decreasing", []float64{2, 1, 0}, []float64{0, 1, 2}, ErrNotIncreasing},
		{"nan", []float64{0, math.NaN(), 2}, []float64{0, 1, 2}, ErrNotIncreasing},
		{"lengths", []float64{0, 1, 2}, []float64{0, 1}, ErrLengthMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCubicSpline(tt.xs, tt.ys, nil)
			require.ErrorIs(t, err, tt.want)
		})
	}
}

type failingSolver struct{}

func (failingSolver) Solve(linalg.Matrix, linalg.Vector) (linalg.Vector, error) {
	return nil, linalg.ErrSingular
}

func TestCubicSpline_SolverErrorPropagates(t *testing.T) {
	_, err := NewCubicSpline(dataX, dataY, failingSolver{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, linalg.ErrSingular))
}

func TestPolynomialCheck(t *testing.T) {
	worst, err := PolynomialCheck(nil)
	require.NoError(t, err)
	assert.Greater(t, worst, 0.0)
	assert.Less(t, worst, CheckTol)
}
