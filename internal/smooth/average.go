package smooth

import "gonum.org/v1/gonum/floats"

// localAverage writes 0.25*src[i-1] + 0.5*src[i] + 0.25*src[i+1] into
// dst[i] for interior points and copies the endpoints. dst and src must
// have the same length and must not alias.
func localAverage(dst, src []float64) {
	n := len(src)
	if n < 3 {
		copy(dst, src)
		return
	}
	dst[0] = src[0]
	dst[n-1] = src[n-1]
	mid := dst[1 : n-1]
	floats.ScaleTo(mid, 0.5, src[1:n-1])
	floats.AddScaled(mid, 0.25, src[:n-2])
	floats.AddScaled(mid, 0.25, src[2:])
}
