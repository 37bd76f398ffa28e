package linalg

import (
	"errors"
	"fmt"
)

// Input and oracle errors for kernel operations.
var (
	// ErrEmpty indicates a matrix with no rows.
	ErrEmpty = errors.New("linalg: empty matrix")

	// ErrNotSquare indicates a matrix whose rows are not all of length n.
	ErrNotSquare = errors.New("linalg: matrix is not square")

	// ErrDimensionMismatch indicates a right-hand side of the wrong length.
	ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

	// ErrSingular indicates a zero pivot; the kernel never exchanges rows.
	ErrSingular = errors.New("linalg: zero pivot (matrix needs pivoting or is singular)")

	// ErrValidation is wrapped by every ValidationError.
	ErrValidation = errors.New("linalg: validation failed")
)

// Check names reported by ValidationError.
const (
	CheckFactorize   = "factorize"
	CheckDeterminant = "determinant"
	CheckResidual    = "solve residual"
	CheckReference   = "solve reference"
	CheckInverse     = "inverse"
)

// ValidationError reports a result that disagreed with the independent
// reference computation. Row and Col locate the offending entry; Col is -1
// for vector checks and both are -1 for scalar checks.
type ValidationError struct {
	Check string
	Row   int
	Col   int
	Got   float64
	Want  float64
	Tol   float64
	A     Matrix
	B     Vector
}

func (e *ValidationError) Error() string {
	switch {
	case e.Row < 0:
		return fmt.Sprintf("linalg: %s check failed: got %.17g, want %.17g (tol %g)",
			e.Check, e.Got, e.Want, e.Tol)
	case e.Col < 0:
		return fmt.Sprintf("linalg: %s check failed at [%d]: got %.17g, want %.17g (tol %g)",
			e.Check, e.Row, e.Got, e.Want, e.Tol)
	default:
		return fmt.Sprintf("linalg: %s check failed at [%d,%d]: got %.17g, want %.17g (tol %g)",
			e.Check, e.Row, e.Col, e.Got, e.Want, e.Tol)
	}
}

func (e *ValidationError) Unwrap() error {
	return ErrValidation
}
