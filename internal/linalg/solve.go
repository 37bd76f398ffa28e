package linalg

import "fmt"

// Determinant factorizes a and returns the product of U's diagonal.
func (k *Kernel) Determinant(a Matrix) (float64, error) {
	f, err := k.Factorize(a)
	if err != nil {
		return 0, err
	}
	d := f.Det()
	if k.verify {
		if err := checkDeterminant(a, d); err != nil {
			return 0, err
		}
	}
	return d, nil
}

// Solve returns x with a·x = b. a is refactorized on every call.
func (k *Kernel) Solve(a Matrix, b Vector) (Vector, error) {
	if err := validateSystem(a, b); err != nil {
		return nil, err
	}
	f, err := k.Factorize(a)
	if err != nil {
		return nil, err
	}
	return k.substitute(a, f, b)
}

func (k *Kernel) substitute(a Matrix, f *Factors, b Vector) (Vector, error) {
	x, err := f.Solve(b)
	if err != nil {
		return nil, err
	}
	if k.verify {
		if err := checkSolve(a, x, b); err != nil {
			return nil, err
		}
	}
	return x, nil
}

// Inverse assembles a⁻¹ one column at a time from solves against the
// standard basis. Without shared factors every column refactorizes a.
func (k *Kernel) Inverse(a Matrix) (Matrix, error) {
	if err := validateSquare(a); err != nil {
		return nil, err
	}
	n := len(a)

	var shared *Factors
	if k.shareFactors {
		var err error
		if shared, err = k.Factorize(a); err != nil {
			return nil, err
		}
	}

	inv := NewMatrix(n)
	for j := 0; j < n; j++ {
		var (
			col Vector
			err error
		)
		if shared != nil {
			col, err = k.substitute(a, shared, Basis(n, j))
		} else {
			col, err = k.Solve(a, Basis(n, j))
		}
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", j, err)
		}
		for i := 0; i < n; i++ {
			inv[i][j] = col[i]
		}
	}

	if k.verify {
		if err := checkInverse(a, inv); err != nil {
			return nil, err
		}
	}
	return inv, nil
}
