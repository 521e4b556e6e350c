package wide

import "math"

// Lanes is the number of elements processed per F32x8 operation.
const Lanes = 8

// F32x8 represents 8 float32 values for SIMD-style operations.
// Designed for Go compiler auto-vectorization with fixed-size arrays.
type F32x8 [Lanes]float32

// SplatF32 creates F32x8 with all elements set to n.
// This is useful for initializing constants or broadcasting a single value.
func SplatF32(n float32) F32x8 {
	var result F32x8
	for i := range result {
		result[i] = n
	}
	return result
}

// LoadF64 creates F32x8 by narrowing the first Lanes elements of s.
// Missing elements (len(s) < Lanes) are zero.
func LoadF64(s []float64) F32x8 {
	var result F32x8
	n := min(len(s), Lanes)
	for i := 0; i < n; i++ {
		result[i] = float32(s[i])
	}
	return result
}

// Store writes the lane into dst, truncated to len(dst).
func (v F32x8) Store(dst []float32) {
	copy(dst, v[:])
}

// Add performs element-wise addition.
func (v F32x8) Add(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + other[i]
	}
	return result
}

// Mul performs element-wise multiplication.
func (v F32x8) Mul(other F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] * other[i]
	}
	return result
}

// MulAdd returns v*m + a element-wise.
func (v F32x8) MulAdd(m, a F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i]*m[i] + a[i]
	}
	return result
}

// Sqrt computes square root of each element.
// Negative values result in NaN according to IEEE 754.
func (v F32x8) Sqrt() F32x8 {
	var result F32x8
	for i := range v {
		result[i] = float32(math.Sqrt(float64(v[i])))
	}
	return result
}

// Clamp clamps each element to [minVal, maxVal].
// NaN elements are mapped to minVal.
func (v F32x8) Clamp(minVal, maxVal float32) F32x8 {
	var result F32x8
	for i := range v {
		switch {
		case v[i] > maxVal:
			result[i] = maxVal
		case v[i] >= minVal:
			result[i] = v[i]
		default:
			result[i] = minVal
		}
	}
	return result
}

// Lerp performs linear interpolation: v + (other - v) * t.
// When t=0, returns v; when t=1, returns other.
// t is per-element interpolation factor.
func (v F32x8) Lerp(other F32x8, t F32x8) F32x8 {
	var result F32x8
	for i := range v {
		result[i] = v[i] + (other[i]-v[i])*t[i]
	}
	return result
}
