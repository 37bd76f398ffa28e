// Package linalg provides a dense linear algebra kernel built on a Doolittle
// LU factorization without pivoting.
//
// The kernel exposes four operations:
//
//   - [Kernel.Factorize]: L (unit lower), U (upper) and the combined Res matrix
//   - [Kernel.Determinant]: product of U's diagonal
//   - [Kernel.Solve]: forward then back substitution
//   - [Kernel.Inverse]: one solve per basis column
//
// # Verification
//
// A kernel built with [WithVerification] recomputes every answer with an
// independent reference (gonum) and returns a [*ValidationError] when the two
// disagree beyond fixed tolerances. The check is an oracle for development
// runs, so it is off by default.
//
// # Example
//
//	k := linalg.New(linalg.WithVerification(true))
//	x, err := k.Solve(a, b)
//	var verr *linalg.ValidationError
//	if errors.As(err, &verr) {
//		// abort: implementation bug or a zero-pivot input
//	}
//
// Inputs must admit an LU factorization without row exchanges: every leading
// principal minor has to be nonzero.
package linalg
