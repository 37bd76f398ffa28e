package linalg

// Oracle tolerances, all absolute.
const (
	FactorTol      = 1e-14
	DeterminantTol = 1e-8
	SolveTol       = 1e-14
	InverseTol     = 1e-14
)

// Kernel runs the factorization based operations. The zero value is a
// kernel with verification off and no factor sharing.
type Kernel struct {
	verify       bool
	shareFactors bool
}

type Option func(*Kernel)

// WithVerification turns the reference checks on or off.
func WithVerification(on bool) Option {
	return func(k *Kernel) { k.verify = on }
}

// WithSharedFactors makes Inverse factorize once and reuse the factors for
// every column instead of calling Solve n times.
func WithSharedFactors(on bool) Option {
	return func(k *Kernel) { k.shareFactors = on }
}

func New(opts ...Option) *Kernel {
	k := &Kernel{}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

func (k *Kernel) Verifying() bool     { return k.verify }
func (k *Kernel) SharesFactors() bool { return k.shareFactors }

var std = New()

// Factorize runs Kernel.Factorize on an unverified kernel.
func Factorize(a Matrix) (*Factors, error) { return std.Factorize(a) }

// Determinant runs Kernel.Determinant on an unverified kernel.
func Determinant(a Matrix) (float64, error) { return std.Determinant(a) }

// Solve runs Kernel.Solve on an unverified kernel.
func Solve(a Matrix, b Vector) (Vector, error) { return std.Solve(a, b) }

// Inverse runs Kernel.Inverse on an unverified kernel.
func Inverse(a Matrix) (Matrix, error) { return std.Inverse(a) }
