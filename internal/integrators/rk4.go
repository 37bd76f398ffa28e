package integrators

// Derivative is the right-hand side dVout/dt = f(Vin, Vout).
type Derivative func(vin, vout float64) float64

// RCLowPass is the first-order RC divider: dVout/dt = Vin - Vout, with time
// measured in units of RC.
func RCLowPass(vin, vout float64) float64 {
	return vin - vout
}

// Stepper computes vout[i+1] from the samples and the outputs up to i.
type Stepper interface {
	Advance(s *Samples, vout []float64, i int)
}

// RK4 is the classic four-stage Runge-Kutta step. The midpoint stages read
// the input from s.VinHalf.
type RK4 struct {
	f Derivative
}

func NewRK4() *RK4 {
	return &RK4{f: RCLowPass}
}

func (r *RK4) Advance(s *Samples, vout []float64, i int) {
	h := s.H
	v := vout[i]

	k1 := r.f(s.Vin[i], v)
	k2 := r.f(s.VinHalf[i], v+h*k1/2)
	k3 := r.f(s.VinHalf[i], v+h*k2/2)
	k4 := r.f(s.Vin[i+1], v+h*k3)

	vout[i+1] = v + (h/6)*(k1+2*k2+2*k3+k4)
}
