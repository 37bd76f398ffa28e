package experiment

import (
	"context"
	"fmt"
	"math"

	"github.com/san-kum/numlab/internal/analysis"
	"github.com/san-kum/numlab/internal/config"
	"github.com/san-kum/numlab/internal/integrators"
	"github.com/san-kum/numlab/internal/interp"
	"github.com/san-kum/numlab/internal/linalg"
	"github.com/san-kum/numlab/internal/precision"
	"github.com/san-kum/numlab/internal/waveform"
)

// Order bounds for the fourth-order check on a halved step.
const (
	minOrder = 3.5
	maxOrder = 4.5
)

func runPrecision(_ context.Context, cfg *config.Config) (*Result, error) {
	p := cfg.Precision
	res := new(Result)

	n, err := precision.Near(p.Value)
	if err != nil {
		return nil, err
	}
	res.AddValue("value", p.Value)
	res.AddValue("upper", n.Upper)
	res.AddValue("lower", n.Lower)
	res.AddValue("fractional range", n.FracRange)

	if above, err := precision.Near(n.Upper); err == nil {
		res.AddValue("upper of upper", above.Upper)
		res.AddValue("lower of upper", above.Lower)
		res.AddValue("fractional range of upper", above.FracRange)
	}
	if below, err := precision.Near(n.Lower); err == nil {
		res.AddValue("upper of lower", below.Upper)
		res.AddValue("lower of lower", below.Lower)
		res.AddValue("fractional range of lower", below.FracRange)
	}
	res.AddCheck("neighbours mutual", precision.Check(p.Value))

	xs := waveform.Linspace(p.SweepStart, p.SweepStop, p.SweepSamples)
	ranges, err := precision.Sweep(xs)
	if err != nil {
		return nil, err
	}
	res.AddSeries("fractional range", xs, ranges)

	edges, err := precision.Sweep(precision.PowersOfTwo)
	if err != nil {
		return nil, err
	}
	res.AddSeries("powers of two", precision.PowersOfTwo, edges)
	return res, nil
}

func runLinear(_ context.Context, cfg *config.Config) (*Result, error) {
	a := linalg.Matrix(cfg.Linear.A)
	b := linalg.Vector(cfg.Linear.B)
	k := linalg.New(
		linalg.WithVerification(cfg.Verify),
		linalg.WithSharedFactors(cfg.Linear.SharedFactors),
	)

	res := new(Result)
	res.AddMatrix("A", a)
	res.AddVector("b", b)

	f, err := k.Factorize(a)
	if err := res.verified(linalg.CheckFactorize, cfg.Verify, err); err != nil {
		return nil, err
	}
	if f != nil {
		res.AddMatrix("L", f.L)
		res.AddMatrix("U", f.U)
		res.AddMatrix("Res", f.Res)
	}

	det, err := k.Determinant(a)
	if err := res.verified(linalg.CheckDeterminant, cfg.Verify, err); err != nil {
		return nil, err
	}
	if err == nil {
		res.AddValue("determinant", det)
	}

	x, err := k.Solve(a, b)
	if err := res.verified("solve", cfg.Verify, err); err != nil {
		return nil, err
	}
	if x != nil {
		res.AddVector("x", x)
		res.AddValue("max |A·x - b|", maxAbsDiff(a.MulVec(x), b))
	}

	inv, err := k.Inverse(a)
	if err := res.verified(linalg.CheckInverse, cfg.Verify, err); err != nil {
		return nil, err
	}
	if inv != nil {
		res.AddMatrix("inverse", inv)
		res.AddValue("max |A·inv - I|", maxAbsMatrixDiff(a.Mul(inv), linalg.Identity(len(a))))
		res.AddValue("max |inv·A - I|", maxAbsMatrixDiff(inv.Mul(a), linalg.Identity(len(a))))
		if x != nil {
			res.AddValue("max |inv·b - x|", maxAbsDiff(inv.MulVec(b), x))
		}
	}
	return res, nil
}

func runInterpolation(_ context.Context, cfg *config.Config) (*Result, error) {
	s := cfg.Interpolation
	k := linalg.New(linalg.WithVerification(cfg.Verify))
	res := new(Result)

	ts := waveform.Linspace(s.Start, s.Stop, s.Samples)
	lag, err := interp.LagrangeAll(s.X, s.Y, ts)
	if err != nil {
		return nil, err
	}
	spline, err := interp.NewCubicSpline(s.X, s.Y, k)
	if err != nil {
		return nil, err
	}

	res.AddSeries("nodes", s.X, s.Y)
	res.AddSeries("lagrange", ts, lag)
	res.AddSeries("cubic spline", ts, spline.Eval(ts))
	res.AddVector("second derivatives", spline.SecondDerivatives())
	res.AddValue("lagrange min", minOf(lag))
	res.AddValue("lagrange max", maxOf(lag))

	worst, err := interp.PolynomialCheck(k)
	res.AddCheck("spline reproduces cubic", err)
	res.AddValue("spline cubic max error", worst)
	return res, nil
}

func runConvolution(ctx context.Context, cfg *config.Config) (*Result, error) {
	c := cfg.Convolution
	res := new(Result)

	for _, n := range c.Samples {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		t := waveform.Linspace(c.Start, c.Stop, n)
		dt := t[1] - t[0]
		g, h := waveform.Gauss(t), waveform.TopHat(t)

		conv, err := analysis.CircularConvolve(g, h)
		if err != nil {
			return nil, err
		}
		ref, err := analysis.LinearConvolve(g, h)
		if err != nil {
			return nil, err
		}
		for i := range ref {
			ref[i] /= float64(n)
		}

		peak := analysis.ArgMax(conv)
		refPeak := analysis.ArgMax(ref)
		res.AddValue(fmt.Sprintf("dt (n=%d)", n), dt)
		res.AddValue(fmt.Sprintf("peak t (n=%d)", n), t[peak])
		res.AddValue(fmt.Sprintf("peak value (n=%d)", n), conv[peak])
		res.AddValue(fmt.Sprintf("reference peak value (n=%d)", n), ref[refPeak])

		res.AddSeries(fmt.Sprintf("convolution n=%d", n), t, conv)
		res.AddSeries(fmt.Sprintf("reference n=%d", n), waveform.Linspace(2*c.Start, 2*c.Stop, len(ref)), ref)

		if n == c.Samples[len(c.Samples)-1] {
			res.AddSeries("gauss", t, g)
			res.AddSeries("top hat", t, h)
			for _, in := range []struct {
				name string
				x    []float64
			}{{"|G(f)|", g}, {"|H(f)|", h}} {
				freq, mag, err := analysis.Spectrum(in.x, dt)
				if err != nil {
					return nil, err
				}
				res.AddSeries(in.name, freq, mag)
			}
		}
	}
	return res, nil
}

func runCircuit(ctx context.Context, cfg *config.Config) (*Result, error) {
	c := cfg.Circuit
	method, err := integrators.ParseMethod(c.Method)
	if err != nil {
		return nil, err
	}
	res := new(Result)

	for _, m := range integrators.Methods() {
		var prev float64
		prevN := 0
		for _, n := range c.Samples {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			t := waveform.Linspace(c.Start, c.Stop, n)
			vout, err := integrateInput(t, waveform.Step, m)
			if err != nil {
				return nil, err
			}
			exact := waveform.Decay(waveform.Shift(t, -c.Start))
			mean, errs, err := analysis.MeanRelativeError(vout, exact)
			if err != nil {
				return nil, err
			}
			res.AddValue(fmt.Sprintf("%s mean relative error (n=%d)", m, n), mean)

			if prevN > 0 && n-1 == 2*(prevN-1) {
				p := analysis.ConvergenceOrder(prev, mean)
				res.AddValue(fmt.Sprintf("%s order (n=%d->%d)", m, prevN, n), p)
				var orderErr error
				if !(p >= minOrder && p <= maxOrder) {
					orderErr = fmt.Errorf("observed order %.3f outside [%g, %g]", p, minOrder, maxOrder)
				}
				res.AddCheck(fmt.Sprintf("%s fourth order (n=%d->%d)", m, prevN, n), orderErr)
			}
			prev, prevN = mean, n

			if m == method && n == c.Samples[len(c.Samples)-1] {
				res.AddSeries(fmt.Sprintf("%s step response", m), t, vout)
				res.AddSeries("exact step response", t, exact)
				res.AddSeries(fmt.Sprintf("%s relative error", m), t[1:], errs)
			}
		}
	}

	n := c.Samples[len(c.Samples)-1]
	t := waveform.Linspace(c.Start, c.Stop, n)
	for _, period := range c.Periods {
		square := func(x []float64) []float64 { return waveform.Square(x, period) }
		vout, err := integrateInput(t, square, method)
		if err != nil {
			return nil, err
		}
		res.AddSeries(fmt.Sprintf("square input T=%g", period), t, square(t))
		res.AddSeries(fmt.Sprintf("%s square response T=%g", method, period), t, vout)
		res.AddValue(fmt.Sprintf("square response T=%g final", period), vout[len(vout)-1])
	}
	return res, nil
}

// integrateInput samples input on t and on the midpoints, then integrates.
func integrateInput(t []float64, input func([]float64) []float64, m integrators.Method) ([]float64, error) {
	h := t[1] - t[0]
	return integrators.Integrate(t, input(t), input(waveform.Shift(t, h/2)), m)
}

func maxAbsDiff(a, b []float64) float64 {
	worst := 0.0
	for i := range a {
		worst = math.Max(worst, math.Abs(a[i]-b[i]))
	}
	return worst
}

func maxAbsMatrixDiff(a, b linalg.Matrix) float64 {
	worst := 0.0
	for i := range a {
		worst = math.Max(worst, maxAbsDiff(a[i], b[i]))
	}
	return worst
}

func minOf(x []float64) float64 {
	m := math.Inf(1)
	for _, v := range x {
		m = math.Min(m, v)
	}
	return m
}

func maxOf(x []float64) float64 {
	m := math.Inf(-1)
	for _, v := range x {
		m = math.Max(m, v)
	}
	return m
}
