package smooth

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/gogpu/trail/internal/polyline"
)

// minArcLength is the total length below which resampling is skipped.
const minArcLength = 1e-9

// resample writes m points spaced uniformly by arc length along src into
// dst. It reports false, leaving dst unspecified, when src has no usable
// length.
func (s *Smoother) resample(dst, src *polyline.Polyline, m int) bool {
	n := src.Len()
	s.arc = resize(s.arc, n)
	s.arc[0] = 0
	for i := 1; i < n; i++ {
		dx := src.X[i] - src.X[i-1]
		dy := src.Y[i] - src.Y[i-1]
		dz := src.Z[i] - src.Z[i-1]
		s.arc[i] = math.Sqrt(dx*dx + dy*dy + dz*dz)
	}
	floats.CumSum(s.arc, s.arc)
	total := s.arc[n-1]
	if !(total > minArcLength) {
		return false
	}

	s.target = resize(s.target, m)
	floats.Span(s.target, 0, total)

	dst.Resize(m)
	for _, col := range [...]struct{ dst, src []float64 }{
		{dst.X, src.X}, {dst.Y, src.Y}, {dst.Z, src.Z},
	} {
		if !s.interpolateColumn(col.dst, col.src) {
			return false
		}
	}
	return true
}

// interpolateColumn evaluates the piecewise-linear function through
// (arc, values) at every target. Zero-length segments are skipped so the
// abscissae are strictly increasing as interp requires.
func (s *Smoother) interpolateColumn(dst, values []float64) bool {
	s.keepS = append(s.keepS[:0], s.arc[0])
	s.keepV = append(s.keepV[:0], values[0])
	for i := 1; i < len(s.arc); i++ {
		if s.arc[i] > s.keepS[len(s.keepS)-1] {
			s.keepS = append(s.keepS, s.arc[i])
			s.keepV = append(s.keepV, values[i])
		}
	}
	if err := s.linear.Fit(s.keepS, s.keepV); err != nil {
		return false
	}
	for j, u := range s.target {
		dst[j] = s.linear.Predict(u)
	}
	return true
}

// retime fills dst with src timestamps linearly interpolated across
// len(dst) points, so dst[0] = src[0] and dst[len-1] = src[len-1].
func (s *Smoother) retime(dst, src []float64) {
	n, m := len(src), len(dst)
	if n == m {
		copy(dst, src)
		return
	}
	if n == 1 || m == 1 {
		for i := range dst {
			dst[i] = src[n-1]
		}
		return
	}
	s.index = resize(s.index, n)
	floats.Span(s.index, 0, float64(n-1))
	s.target = resize(s.target, m)
	floats.Span(s.target, 0, float64(n-1))
	if err := s.linear.Fit(s.index, src); err != nil {
		// Index abscissae are strictly increasing; unreachable.
		for i := range dst {
			dst[i] = src[n-1]
		}
		return
	}
	for j, u := range s.target {
		dst[j] = s.linear.Predict(u)
	}
}

func resize(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n, max(n, 2*cap(s)))
	}
	return s[:n]
}
