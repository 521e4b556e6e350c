// Package wide provides SIMD-friendly wide types for batch attribute processing.
//
// This package implements the F32x8 wide type, designed to enable Go
// compiler auto-vectorization. By using fixed-size arrays and simple loops,
// the compiler can generate SIMD instructions on supported architectures
// (SSE, AVX, NEON).
//
// # Lanes
//
// Per-vertex trail attributes (progress, width, opacity, glow) and tangent
// lengths are computed eight at a time. LoadF64 narrows a window of float64 inputs into a lane,
// arithmetic runs lane-wise, and Store writes the lane back into a float32
// slice. Partial windows at the end of a slice are zero-padded on load and
// truncated on store, so callers never branch per element.
//
// # Design Philosophy
//
//   - Use simple loops over fixed-size arrays for auto-vectorization
//   - Avoid unsafe and assembly - rely on compiler optimization
//   - Keep functions small and inlineable
//
// # Usage Example
//
//	for i := 0; i < len(progress); i += wide.Lanes {
//	    p := wide.LoadF64(ages[i:]).Clamp(0, 1)
//	    w := wide.SplatF32(w0).Lerp(wide.SplatF32(w1), p)
//	    w.Store(width[i:])
//	}
package wide
