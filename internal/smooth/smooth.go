package smooth

import (
	"fmt"

	"gonum.org/v1/gonum/interp"

	"github.com/gogpu/trail/internal/polyline"
)

// Mode selects the smoothing quality.
type Mode uint8

const (
	// Jagged applies two local-average passes.
	Jagged Mode = iota
	// ApproxSmooth resamples, averages and fits one quadratic spline pass.
	ApproxSmooth
	// TrueSmooth resamples, averages and fits two quadratic spline passes.
	TrueSmooth
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Jagged:
		return "jagged"
	case ApproxSmooth:
		return "approx_smooth"
	case TrueSmooth:
		return "true_smooth"
	default:
		return fmt.Sprintf("Mode(%d)", int(m))
	}
}

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool { return m <= TrueSmooth }

// ParseMode parses a mode name as returned by Mode.String.
func ParseMode(s string) (Mode, error) {
	for m := Jagged; m <= TrueSmooth; m++ {
		if m.String() == s {
			return m, nil
		}
	}
	return Jagged, fmt.Errorf("smooth: unknown mode %q", s)
}

// Default resampling limits.
const (
	DefaultMaxResamplePoints = 256
	DefaultResampleFactor    = 2.0
)

// Params configures one Smooth call.
type Params struct {
	Mode Mode

	// MaxResamplePoints caps the arc-length resampling target.
	MaxResamplePoints int

	// ResampleFactor scales the input length to get the resampling target.
	// Values <= 1 disable resampling.
	ResampleFactor float64
}

// Result describes what a Smooth call did.
type Result struct {
	Resampled   bool
	FitFallback bool
}

// Smoother owns the scratch storage of the smoothing stages.
// A zero Smoother is ready to use; it is not safe for concurrent use.
type Smoother struct {
	resampled polyline.Polyline
	averaged  polyline.Polyline
	tmp       polyline.Polyline
	fit1      polyline.Polyline
	fit2      polyline.Polyline

	arc    []float64 // cumulative arc length
	keepS  []float64 // strictly increasing arc subset
	keepV  []float64 // coordinate values matching keepS
	target []float64
	index  []float64

	spline splineScratch
	linear interp.PiecewiseLinear
}

// Smooth writes the smoothed version of src into dst.
// src must contain at least two points; shorter input is copied unchanged.
func (s *Smoother) Smooth(dst, src *polyline.Polyline, p Params) Result {
	var res Result
	n := src.Len()
	if n < 3 {
		dst.CopyFrom(src)
		return res
	}

	if p.Mode == Jagged {
		s.tmp.Resize(n)
		dst.Resize(n)
		averageColumns(&s.tmp, src)
		averageColumns(dst, &s.tmp)
		copy(dst.T, src.T)
		return res
	}

	work := src
	if m := resampleTarget(n, p); m > n && s.resample(&s.resampled, src, m) {
		work = &s.resampled
		res.Resampled = true
	}

	s.averaged.Resize(work.Len())
	averageColumns(&s.averaged, work)
	result := &s.averaged

	if s.fit(&s.fit1, &s.averaged) {
		result = &s.fit1
		if p.Mode == TrueSmooth {
			if s.fit(&s.fit2, &s.fit1) {
				result = &s.fit2
			} else {
				result = &s.averaged
				res.FitFallback = true
			}
		}
	} else {
		res.FitFallback = true
	}

	dst.Resize(result.Len())
	copy(dst.X, result.X)
	copy(dst.Y, result.Y)
	copy(dst.Z, result.Z)
	s.retime(dst.T, src.T)
	return res
}

// resampleTarget returns min(MaxResamplePoints, n*ResampleFactor).
func resampleTarget(n int, p Params) int {
	if p.ResampleFactor <= 1 {
		return n
	}
	m := int(float64(n) * p.ResampleFactor)
	if p.MaxResamplePoints > 0 {
		m = min(m, p.MaxResamplePoints)
	}
	return m
}

// averageColumns applies one local-average pass to every coordinate.
// dst must already have src's length and must not alias src.
func averageColumns(dst, src *polyline.Polyline) {
	localAverage(dst.X, src.X)
	localAverage(dst.Y, src.Y)
	localAverage(dst.Z, src.Z)
}
