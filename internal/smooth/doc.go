// Package smooth turns a jagged sampled polyline into a visually smooth
// curve.
//
// # Modes
//
// Three modes trade cost for quality:
//   - Jagged: two passes of the 3-point weighted average
//     0.25*prev + 0.5*cur + 0.25*next (endpoints fixed). O(n), allocation
//     free, the default for large batches.
//   - ApproxSmooth: optional arc-length resampling, one averaging pass,
//     then one piecewise quadratic spline fit.
//   - TrueSmooth: as ApproxSmooth, with the spline fit applied a second
//     time to its own output.
//
// # Timestamps
//
// Resampling and fitting change the point count, so output timestamps are
// re-derived by linear interpolation of the input timestamps across the
// output count. The result is non-decreasing whenever the input is.
//
// # Failure
//
// Smoothing never fails. A spline fit that produces a non-finite value is
// discarded and the averaged points are returned instead; the Result
// reports the fallback so callers can count it.
package smooth
