package linalg

import "fmt"

// Matrix is a dense row-major matrix.
type Matrix [][]float64

// Vector is a dense column vector.
type Vector []float64

// NewMatrix returns an n×n zero matrix.
func NewMatrix(n int) Matrix {
	m := make(Matrix, n)
	for i := range m {
		m[i] = make([]float64, n)
	}
	return m
}

// Identity returns the n×n identity matrix.
func Identity(n int) Matrix {
	m := NewMatrix(n)
	for i := 0; i < n; i++ {
		m[i][i] = 1.0
	}
	return m
}

// Basis returns the j-th standard basis vector of length n.
func Basis(n, j int) Vector {
	e := make(Vector, n)
	e[j] = 1.0
	return e
}

func (m Matrix) Size() int {
	return len(m)
}

func (m Matrix) Clone() Matrix {
	c := make(Matrix, len(m))
	for i := range m {
		c[i] = make([]float64, len(m[i]))
		copy(c[i], m[i])
	}
	return c
}

// Mul returns m·o. Both operands must be square of the same size.
func (m Matrix) Mul(o Matrix) Matrix {
	n := len(m)
	result := NewMatrix(n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sum := 0.0
			for k := 0; k < n; k++ {
				sum += m[i][k] * o[k][j]
			}
			result[i][j] = sum
		}
	}
	return result
}

// MulVec returns m·v.
func (m Matrix) MulVec(v Vector) Vector {
	result := make(Vector, len(m))
	for i := range m {
		sum := 0.0
		for k, a := range m[i] {
			sum += a * v[k]
		}
		result[i] = sum
	}
	return result
}

// Col returns a copy of column j.
func (m Matrix) Col(j int) Vector {
	c := make(Vector, len(m))
	for i := range m {
		c[i] = m[i][j]
	}
	return c
}

func (v Vector) Clone() Vector {
	c := make(Vector, len(v))
	copy(c, v)
	return c
}

func validateSquare(a Matrix) error {
	n := len(a)
	if n == 0 {
		return ErrEmpty
	}
	for i, row := range a {
		if len(row) != n {
			return fmt.Errorf("%w: row %d has %d entries, want %d", ErrNotSquare, i, len(row), n)
		}
	}
	return nil
}

func validateSystem(a Matrix, b Vector) error {
	if err := validateSquare(a); err != nil {
		return err
	}
	if len(b) != len(a) {
		return fmt.Errorf("%w: rhs has %d entries, matrix is %dx%d", ErrDimensionMismatch, len(b), len(a), len(a))
	}
	return nil
}
