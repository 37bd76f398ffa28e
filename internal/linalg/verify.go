package linalg

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// The reference side of every check goes through gonum so that a bug in this
// package cannot hide behind itself.

func toDense(a Matrix) *mat.Dense {
	n := len(a)
	data := make([]float64, 0, n*n)
	for _, row := range a {
		data = append(data, row...)
	}
	return mat.NewDense(n, n, data)
}

// exceeds reports whether |diff| > tol, treating NaN as a failure.
func exceeds(diff, tol float64) bool {
	return !(math.Abs(diff) <= tol)
}

func checkFactors(a Matrix, f *Factors) error {
	var lu mat.Dense
	lu.Mul(toDense(f.L), toDense(f.U))
	for i := range a {
		for j := range a[i] {
			if got := lu.At(i, j); exceeds(got-a[i][j], FactorTol) {
				return &ValidationError{Check: CheckFactorize, Row: i, Col: j, Got: got, Want: a[i][j], Tol: FactorTol, A: a}
			}
		}
	}
	return nil
}

func checkDeterminant(a Matrix, d float64) error {
	want := mat.Det(toDense(a))
	if exceeds(d-want, DeterminantTol) {
		return &ValidationError{Check: CheckDeterminant, Row: -1, Col: -1, Got: d, Want: want, Tol: DeterminantTol, A: a}
	}
	return nil
}

func checkSolve(a Matrix, x, b Vector) error {
	A := toDense(a)
	n := len(a)

	var ax mat.VecDense
	ax.MulVec(A, mat.NewVecDense(n, x.Clone()))

	var ref mat.VecDense
	if err := ref.SolveVec(A, mat.NewVecDense(n, b.Clone())); err != nil {
		var cond mat.Condition
		if !errors.As(err, &cond) {
			return fmt.Errorf("%w: reference solve: %v", ErrValidation, err)
		}
	}

	for i := 0; i < n; i++ {
		if got := ax.AtVec(i); exceeds(got-b[i], SolveTol) {
			return &ValidationError{Check: CheckResidual, Row: i, Col: -1, Got: got, Want: b[i], Tol: SolveTol, A: a, B: b}
		}
		if want := ref.AtVec(i); exceeds(x[i]-want, SolveTol) {
			return &ValidationError{Check: CheckReference, Row: i, Col: -1, Got: x[i], Want: want, Tol: SolveTol, A: a, B: b}
		}
	}
	return nil
}

// checkInverse compares a·inv with the identity. Diagonal and off-diagonal
// entries are both held to |p - δij| ≤ InverseTol.
func checkInverse(a, inv Matrix) error {
	var p mat.Dense
	p.Mul(toDense(a), toDense(inv))
	for i := range a {
		for j := range a {
			want := 0.0
			if i == j {
				want = 1.0
			}
			if got := p.At(i, j); exceeds(got-want, InverseTol) {
				return &ValidationError{Check: CheckInverse, Row: i, Col: j, Got: got, Want: want, Tol: InverseTol, A: a}
			}
		}
	}
	return nil
}
