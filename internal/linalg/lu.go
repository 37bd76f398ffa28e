package linalg

import "fmt"

// Factors holds a Doolittle factorization A = L·U. Res packs U on and above
// the diagonal and L strictly below it; it never shares storage with L or U.
type Factors struct {
	L   Matrix
	U   Matrix
	Res Matrix
}

// Factorize computes L and U column by column. The inner products run over
// the full index range; the zero-initialised triangles make the extra terms
// vanish.
func (k *Kernel) Factorize(a Matrix) (*Factors, error) {
	if err := validateSquare(a); err != nil {
		return nil, err
	}
	f, err := factorize(a)
	if err != nil {
		return nil, err
	}
	if k.verify {
		if err := checkFactors(a, f); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func factorize(a Matrix) (*Factors, error) {
	n := len(a)
	L := NewMatrix(n)
	U := NewMatrix(n)

	for j := 0; j < n; j++ {
		L[j][j] = 1.0
		for i := 0; i <= j; i++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += L[i][k] * U[k][j]
			}
			U[i][j] = a[i][j] - sum
		}
		if U[j][j] == 0 && j < n-1 {
			return nil, fmt.Errorf("%w: U[%d][%d] = 0", ErrSingular, j, j)
		}
		for i := j + 1; i < n; i++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += L[i][k] * U[k][j]
			}
			L[i][j] = (a[i][j] - sum) / U[j][j]
		}
	}

	return &Factors{L: L, U: U, Res: combine(L, U)}, nil
}

func combine(L, U Matrix) Matrix {
	res := U.Clone()
	for i := range res {
		for j := 0; j < i; j++ {
			res[i][j] = L[i][j]
		}
	}
	return res
}

// Det returns the product of U's diagonal.
func (f *Factors) Det() float64 {
	d := 1.0
	for i := range f.U {
		d *= f.U[i][i]
	}
	return d
}

// Solve runs forward substitution on L then back substitution on U.
func (f *Factors) Solve(b Vector) (Vector, error) {
	n := len(f.U)
	if len(b) != n {
		return nil, fmt.Errorf("%w: rhs has %d entries, factors are %dx%d", ErrDimensionMismatch, len(b), n, n)
	}
	if f.U[n-1][n-1] == 0 {
		return nil, fmt.Errorf("%w: U[%d][%d] = 0", ErrSingular, n-1, n-1)
	}

	// L has a unit diagonal, so no division on the way down.
	y := make(Vector, n)
	y[0] = b[0]
	for i := 1; i < n; i++ {
		sum := 0.0
		for j := 0; j < i; j++ {
			sum += f.L[i][j] * y[j]
		}
		y[i] = b[i] - sum
	}

	x := make(Vector, n)
	x[n-1] = y[n-1] / f.U[n-1][n-1]
	for i := n - 2; i >= 0; i-- {
		sum := 0.0
		for j := i + 1; j < n; j++ {
			sum += f.U[i][j] * x[j]
		}
		x[i] = (y[i] - sum) / f.U[i][i]
	}
	return x, nil
}
