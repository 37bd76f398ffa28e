package integrators

// AB4 is the explicit fourth-order Adams-Bashforth step. It needs the four
// most recent outputs, so i must be at least 3.
type AB4 struct {
	f Derivative
}

func NewAB4() *AB4 {
	return &AB4{f: RCLowPass}
}

func (a *AB4) Advance(s *Samples, vout []float64, i int) {
	f0 := a.f(s.Vin[i], vout[i])
	f1 := a.f(s.Vin[i-1], vout[i-1])
	f2 := a.f(s.Vin[i-2], vout[i-2])
	f3 := a.f(s.Vin[i-3], vout[i-3])

	vout[i+1] = vout[i] + (s.H/24)*(55*f0-59*f1+37*f2-9*f3)
}
