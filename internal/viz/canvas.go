package viz

import (
	"fmt"
	"math"
	"strings"
)

// Braille cells hold 2x4 dots:
//
//	1 4
//	2 5
//	3 6
//	7 8
//
// The empty cell is U+2800.
const brailleBase = 0x2800

var pixelMap = [4][2]rune{
	{0x1, 0x8},
	{0x2, 0x10},
	{0x4, 0x20},
	{0x40, 0x80},
}

// Canvas is a grid of Braille cells. Pixel coordinates run from (0, 0) at
// the top left to (2*Width-1, 4*Height-1).
type Canvas struct {
	Width, Height int
	Grid          [][]rune
}

func NewCanvas(w, h int) *Canvas {
	c := &Canvas{
		Width:  w,
		Height: h,
		Grid:   make([][]rune, h),
	}
	for i := range c.Grid {
		c.Grid[i] = make([]rune, w)
	}
	c.Clear()
	return c
}

// Set turns on the pixel at (x, y). Out of range pixels are ignored.
func (c *Canvas) Set(x, y int) {
	if x < 0 || y < 0 {
		return
	}
	col, row := x/2, y/4
	if col >= c.Width || row >= c.Height {
		return
	}
	c.Grid[row][col] |= pixelMap[y%4][x%2]
}

// Clear resets every cell to blank.
func (c *Canvas) Clear() {
	for i := range c.Grid {
		for j := range c.Grid[i] {
			c.Grid[i][j] = brailleBase
		}
	}
}

// DrawLine draws a line using Bresenham's algorithm.
func (c *Canvas) DrawLine(x0, y0, x1, y1 int) {
	dx := absInt(x1 - x0)
	dy := absInt(y1 - y0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy

	for {
		c.Set(x0, y0)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func (c *Canvas) String() string {
	var b strings.Builder
	for _, row := range c.Grid {
		b.WriteString(string(row) + "\n")
	}
	return b.String()
}

// Scatter plots the points (xs[i], ys[i]) scaled to fill the canvas. Non
// finite points are skipped. With join set, consecutive points are
// connected.
func (c *Canvas) Scatter(xs, ys []float64, join bool) {
	n := min(len(xs), len(ys))
	xlo, xhi := bounds(xs[:n])
	ylo, yhi := bounds(ys[:n])

	px := func(v float64) int { return scale(v, xlo, xhi, 2*c.Width-1) }
	py := func(v float64) int { return 4*c.Height - 1 - scale(v, ylo, yhi, 4*c.Height-1) }

	prev := -1
	for i := 0; i < n; i++ {
		if !finite(xs[i]) || !finite(ys[i]) {
			prev = -1
			continue
		}
		x, y := px(xs[i]), py(ys[i])
		if join && prev >= 0 {
			c.DrawLine(px(xs[prev]), py(ys[prev]), x, y)
		} else {
			c.Set(x, y)
		}
		prev = i
	}
}

// ScatterPlot renders a Braille scatter plot with its y range on the left
// and x range underneath.
func ScatterPlot(xs, ys []float64, width, height int, caption string) string {
	c := NewCanvas(width, height)
	c.Scatter(xs, ys, false)

	xlo, xhi := bounds(xs)
	ylo, yhi := bounds(ys)
	top, bottom := fmt.Sprintf("%.4g", yhi), fmt.Sprintf("%.4g", ylo)
	pad := max(len(top), len(bottom))

	var b strings.Builder
	for i, row := range c.Grid {
		label := ""
		switch i {
		case 0:
			label = top
		case len(c.Grid) - 1:
			label = bottom
		}
		fmt.Fprintf(&b, "%*s ┤%s\n", pad, label, string(row))
	}
	lo, hi := fmt.Sprintf("%.4g", xlo), fmt.Sprintf("%.4g", xhi)
	gap := max(width-len(lo)-len(hi), 1)
	fmt.Fprintf(&b, "%*s  %s%s%s\n", pad, "", lo, strings.Repeat(" ", gap), hi)
	if caption != "" {
		fmt.Fprintf(&b, "%*s  %s\n", pad, "", caption)
	}
	return b.String()
}

func bounds(v []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, x := range v {
		if !finite(x) {
			continue
		}
		lo = math.Min(lo, x)
		hi = math.Max(hi, x)
	}
	if lo > hi {
		return 0, 0
	}
	return lo, hi
}

// scale maps v in [lo, hi] onto [0, span]. A flat range maps to the middle.
func scale(v, lo, hi float64, span int) int {
	if hi == lo {
		return span / 2
	}
	return int(math.Round((v - lo) / (hi - lo) * float64(span)))
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

func absInt(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
