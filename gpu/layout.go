// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/trail"
)

// Topology is the primitive topology of the vertex buffer: every pair of
// vertices is one independent segment.
const Topology = gputypes.PrimitiveTopologyLineList

// VertexLayout returns the vertex buffer layout of trail.Vertex.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: trail.VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x3, Offset: 0, ShaderLocation: 0},  // position
				{Format: gputypes.VertexFormatFloat32x4, Offset: 12, ShaderLocation: 1}, // color
				{Format: gputypes.VertexFormatFloat32, Offset: 28, ShaderLocation: 2},   // progress
				{Format: gputypes.VertexFormatFloat32, Offset: 32, ShaderLocation: 3},   // width
				{Format: gputypes.VertexFormatFloat32, Offset: 36, ShaderLocation: 4},   // glow
				{Format: gputypes.VertexFormatFloat32x3, Offset: 40, ShaderLocation: 5}, // prev_tangent
				{Format: gputypes.VertexFormatFloat32x3, Offset: 52, ShaderLocation: 6}, // next_tangent
			},
		},
	}
}

// EncodeVertices appends the little-endian encoding of vs to dst and
// returns the extended slice. Each vertex takes trail.VertexStride bytes.
func EncodeVertices(dst []byte, vs []trail.Vertex) []byte {
	start := len(dst)
	n := start + len(vs)*trail.VertexStride
	if cap(dst) < n {
		grown := make([]byte, start, n)
		copy(grown, dst)
		dst = grown
	}
	dst = dst[:n]

	off := start
	for i := range vs {
		v := &vs[i]
		off = putF32(dst, off, v.Position[:]...)
		off = putF32(dst, off, v.Color[:]...)
		off = putF32(dst, off, v.Progress, v.Width, v.Glow)
		off = putF32(dst, off, v.PrevTangent[:]...)
		off = putF32(dst, off, v.NextTangent[:]...)
	}
	return dst
}

func putF32(dst []byte, off int, vs ...float32) int {
	for _, v := range vs {
		binary.LittleEndian.PutUint32(dst[off:], math.Float32bits(v))
		off += 4
	}
	return off
}
