package integrators

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrInvalidMethod indicates a method other than AB4 or RK4.
	ErrInvalidMethod = errors.New("integrators: invalid method")

	// ErrLengthMismatch indicates t, Vin and VinHalf of different lengths.
	ErrLengthMismatch = errors.New("integrators: sample lengths differ")

	// ErrTooFewSamples indicates fewer samples than the RK4 run-up needs.
	ErrTooFewSamples = errors.New("integrators: too few samples")

	// ErrNonUniformGrid indicates a time grid that is not strictly increasing
	// with constant spacing.
	ErrNonUniformGrid = errors.New("integrators: time grid is not uniform")
)

// Method selects the stepper used after the RK4 run-up.
type Method string

const (
	AdamsBashforth4 Method = "AB4"
	RungeKutta4     Method = "RK4"
)

func Methods() []Method {
	return []Method{AdamsBashforth4, RungeKutta4}
}

func (m Method) Valid() bool {
	return m == AdamsBashforth4 || m == RungeKutta4
}

// ParseMethod accepts "AB4" or "RK4" in any case.
func ParseMethod(s string) (Method, error) {
	m := Method(strings.ToUpper(strings.TrimSpace(s)))
	if !m.Valid() {
		return "", invalidMethod(Method(s))
	}
	return m, nil
}

// NewStepper returns the stepper for m.
func NewStepper(m Method) (Stepper, error) {
	switch m {
	case AdamsBashforth4:
		return NewAB4(), nil
	case RungeKutta4:
		return NewRK4(), nil
	default:
		return nil, invalidMethod(m)
	}
}

func invalidMethod(m Method) error {
	return fmt.Errorf("%w %q (want %s or %s)", ErrInvalidMethod, string(m), AdamsBashforth4, RungeKutta4)
}
