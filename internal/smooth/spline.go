package smooth

import (
	"math"

	"github.com/gogpu/trail/internal/polyline"
)

// splineScratch holds the tridiagonal solver workspace.
type splineScratch struct {
	ctrl []float64
	cp   []float64
	dp   []float64
}

// fit interpolates src with a uniform quadratic B-spline and writes the
// node values interleaved with the spline midpoints into dst (2n-1
// points). It reports false if the fit produced a non-finite value.
//
// With control points c and data y, interpolation at the nodes gives
//
//	c[i-1] + 6*c[i] + c[i+1] = 8*y[i]   (interior)
//	c[0] = y[0], c[n-1] = y[n-1]        (ends)
//
// and the spline midway between nodes i and i+1 is (c[i]+c[i+1])/2.
func (s *Smoother) fit(dst, src *polyline.Polyline) bool {
	n := src.Len()
	m := 2*n - 1
	dst.Resize(m)
	for _, col := range [...]struct{ dst, src []float64 }{
		{dst.X, src.X}, {dst.Y, src.Y}, {dst.Z, src.Z},
	} {
		if !s.spline.fitColumn(col.dst, col.src) {
			return false
		}
	}
	return true
}

func (w *splineScratch) fitColumn(dst, y []float64) bool {
	n := len(y)
	w.ctrl = resize(w.ctrl, n)
	c := w.ctrl
	c[0], c[n-1] = y[0], y[n-1]

	if k := n - 2; k > 0 {
		w.cp = resize(w.cp, k)
		w.dp = resize(w.dp, k)
		// Thomas algorithm; the system is strictly diagonally dominant.
		for r := 0; r < k; r++ {
			i := r + 1
			rhs := 8 * y[i]
			if r == 0 {
				rhs -= c[0]
			}
			if r == k-1 {
				rhs -= c[n-1]
			}
			if r == 0 {
				w.cp[r] = 1.0 / 6.0
				w.dp[r] = rhs / 6.0
				continue
			}
			denom := 6 - w.cp[r-1]
			w.cp[r] = 1 / denom
			w.dp[r] = (rhs - w.dp[r-1]) / denom
		}
		c[k] = w.dp[k-1]
		for r := k - 2; r >= 0; r-- {
			c[r+1] = w.dp[r] - w.cp[r]*c[r+2]
		}
	}

	for i := 0; i < n; i++ {
		dst[2*i] = y[i]
		if i+1 < n {
			dst[2*i+1] = 0.5 * (c[i] + c[i+1])
		}
	}
	return finite(dst[:2*n-1])
}

func finite(s []float64) bool {
	for _, v := range s {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
