package waveform

import (
	"math"
	"testing"
)

func TestLinspace(t *testing.T) {
	tests := []struct {
		name        string
		start, stop float64
		n           int
		want        []float64
	}{
		{"empty", 0, 1, 0, []float64{}},
		{"single", 2, 5, 1, []float64{2}},
		{"pair", -1, 1, 2, []float64{-1, 1}},
		{"quarters", 0, 1, 5, []float64{0, 0.25, 0.5, 0.75, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Linspace(tt.start, tt.stop, tt.n)
			if len(got) != len(tt.want) {
				t.Fatalf("len = %d, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("[%d] = %v, want %v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLinspace_CourseworkGrid(t *testing.T) {
	grid := Linspace(0, 40, 401)
	if grid[400] != 40 {
		t.Errorf("last sample = %v, want 40", grid[400])
	}
	if h := grid[1] - grid[0]; math.Abs(h-0.1) > 1e-15 {
		t.Errorf("spacing = %v, want 0.1", h)
	}
}

func TestStep(t *testing.T) {
	got := Step([]float64{-1, -1e-9, 0, 0.5})
	want := []float64{1, 1, 0, 0}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Step[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestSquare(t *testing.T) {
	// period 2: low on [0,1), high on [1,2), low on [2,3)
	got := Square([]float64{-0.5, 0, 0.9, 1, 1.5, 2, 3.2}, 2)
	want := []float64{1, 0, 0, 1, 1, 0, 1}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Square[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestTopHatAndGauss(t *testing.T) {
	h := TopHat([]float64{4.99, 5, 6, 7, 7.01})
	if h[0] != 0 || h[1] != 4 || h[2] != 4 || h[3] != 4 || h[4] != 0 {
		t.Errorf("TopHat = %v", h)
	}

	g := Gauss([]float64{0, 2})
	if math.Abs(g[0]-1/math.Sqrt(2*math.Pi)) > 1e-15 {
		t.Errorf("Gauss(0) = %v", g[0])
	}
	if math.Abs(g[1]-math.Exp(-1)/math.Sqrt(2*math.Pi)) > 1e-15 {
		t.Errorf("Gauss(2) = %v", g[1])
	}
}

func TestPolynomialAndShift(t *testing.T) {
	x := Shift([]float64{-1, 0, 1}, 1)
	if x[0] != 0 || x[1] != 1 || x[2] != 2 {
		t.Fatalf("Shift = %v", x)
	}

	// 1 + 2t + 3t²
	p := Polynomial(x, 1, 2, 3)
	want := []float64{1, 6, 17}
	for i := range want {
		if p[i] != want[i] {
			t.Errorf("Polynomial[%d] = %v, want %v", i, p[i], want[i])
		}
	}
}
