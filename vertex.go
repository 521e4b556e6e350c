package trail

import "github.com/gogpu/trail/internal/vbuf"

// Vertex is one vertex of the published line-list buffer.
//
// Layout (64 bytes): Position vec3<f32>, Color vec4<f32> (alpha is the
// faded opacity), Progress f32, Width f32, Glow f32, PrevTangent
// vec3<f32>, NextTangent vec3<f32>. Segment k of a trace occupies
// vertices 2k (start) and 2k+1 (end); both carry the segment's tangent
// pair so the line shader can build joins without neighbor lookups.
type Vertex = vbuf.Vertex

// VertexStride is the size of a Vertex in bytes.
const VertexStride = vbuf.Stride

// VertexCount returns the number of vertices a trace with the given
// number of smoothed points contributes: 2*(points-1).
func VertexCount(points int) int {
	return vbuf.Count(points)
}
