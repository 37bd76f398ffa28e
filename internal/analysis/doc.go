// Package analysis provides the spectral and error tools used by the
// exercises.
//
// Transforms run on go-dsp, which handles any length, so grids such as
// linspace(-20, 20, 4001) need no padding to a power of two:
//
//   - [FFTFreq] and [FFTShift]: frequency axis and zero-centred ordering
//   - [Spectrum]: orthonormally scaled magnitude spectrum
//   - [CircularConvolve]: convolution theorem on equal-length signals
//   - [LinearConvolve]: zero-padded reference convolution
//
// # Error statistics
//
// [MeanRelativeError] compares a trajectory with its analytic solution and
// [ConvergenceOrder] turns the errors of a step and its half into an
// observed order:
//
//	coarse, _, _ := analysis.MeanRelativeError(vout401, exact401)
//	fine, _, _ := analysis.MeanRelativeError(vout801, exact801)
//	p := analysis.ConvergenceOrder(coarse, fine) // ≈ 4 for RK4
package analysis
