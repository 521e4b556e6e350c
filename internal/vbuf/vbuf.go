// Package vbuf packs smoothed trail points and their attributes into a
// line-list vertex buffer.
//
// Segment (i, i+1) becomes vertices 2i (start) and 2i+1 (end). The writes
// are two strided passes over the destination, one for every start and
// one for every end, directly into caller-provided storage.
package vbuf

import (
	"golang.org/x/image/math/f32"

	"github.com/gogpu/trail/internal/attrib"
	"github.com/gogpu/trail/internal/polyline"
)

// Vertex is one line-list vertex as consumed by the GPU line pipeline.
//
// Memory layout (64 bytes, no padding):
//
//	Position    vec3<f32>  offset  0
//	Color       vec4<f32>  offset 12
//	Progress    f32        offset 28
//	Width       f32        offset 32
//	Glow        f32        offset 36
//	PrevTangent vec3<f32>  offset 40
//	NextTangent vec3<f32>  offset 52
type Vertex struct {
	Position    f32.Vec3
	Color       f32.Vec4
	Progress    float32
	Width       float32
	Glow        float32
	PrevTangent f32.Vec3
	NextTangent f32.Vec3
}

// Stride is the size of a Vertex in bytes.
const Stride = 64

// Count returns the number of vertices produced by m points.
func Count(m int) int {
	if m < 2 {
		return 0
	}
	return 2 * (m - 1)
}

// Build writes the line-list for pts into dst and returns the number of
// vertices written. dst must hold at least Count(pts.Len()) vertices and
// a must have pts.Len() points. rgb is the base color; alpha comes from
// the opacity attribute.
func Build(dst []Vertex, pts *polyline.Polyline, a *attrib.Attributes, rgb [3]float32) int {
	n := Count(pts.Len())
	if n == 0 {
		return 0
	}
	dst = dst[:n:n]
	segs := n / 2

	// Starts: dst[0::2] <- point i, tangent pair (i, i+1).
	for s := 0; s < segs; s++ {
		writeVertex(&dst[2*s], pts, a, rgb, s, s, s+1)
	}
	// Ends: dst[1::2] <- point i+1, same tangent pair.
	for s := 0; s < segs; s++ {
		writeVertex(&dst[2*s+1], pts, a, rgb, s+1, s, s+1)
	}
	return n
}

func writeVertex(v *Vertex, pts *polyline.Polyline, a *attrib.Attributes, rgb [3]float32, i, prev, next int) {
	v.Position = f32.Vec3{float32(pts.X[i]), float32(pts.Y[i]), float32(pts.Z[i])}
	v.Color = f32.Vec4{rgb[0], rgb[1], rgb[2], a.Opacity[i]}
	v.Progress = a.Progress[i]
	v.Width = a.Width[i]
	v.Glow = a.Glow[i]
	v.PrevTangent = f32.Vec3{a.TX[prev], a.TY[prev], a.TZ[prev]}
	v.NextTangent = f32.Vec3{a.TX[next], a.TY[next], a.TZ[next]}
}
