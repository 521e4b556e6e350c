// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"encoding/binary"
	"math"
	"testing"

	"github.com/gogpu/gputypes"

	"github.com/gogpu/trail"
)

func formatSize(f gputypes.VertexFormat) uint64 {
	switch f {
	case gputypes.VertexFormatFloat32:
		return 4
	case gputypes.VertexFormatFloat32x3:
		return 12
	case gputypes.VertexFormatFloat32x4:
		return 16
	default:
		return 0
	}
}

func TestVertexLayout(t *testing.T) {
	layouts := VertexLayout()
	if len(layouts) != 1 {
		t.Fatalf("len(VertexLayout()) = %d, want 1", len(layouts))
	}
	l := layouts[0]
	if uint64(l.ArrayStride) != trail.VertexStride {
		t.Errorf("ArrayStride = %d, want %d", l.ArrayStride, trail.VertexStride)
	}
	if l.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("StepMode = %v, want vertex", l.StepMode)
	}

	// Attributes are packed back to back and fill the stride.
	var end uint64
	for i, a := range l.Attributes {
		if uint64(a.Offset) != end {
			t.Errorf("attribute %d offset = %d, want %d", i, a.Offset, end)
		}
		if a.ShaderLocation != uint32(i) {
			t.Errorf("attribute %d location = %d", i, a.ShaderLocation)
		}
		end = uint64(a.Offset) + formatSize(a.Format)
	}
	if end != trail.VertexStride {
		t.Errorf("attributes end at %d, want %d", end, trail.VertexStride)
	}
	if Topology != gputypes.PrimitiveTopologyLineList {
		t.Errorf("Topology = %v, want line list", Topology)
	}
}

func f32At(b []byte, off int) float32 {
	return math.Float32frombits(binary.LittleEndian.Uint32(b[off:]))
}

func TestEncodeVertices(t *testing.T) {
	vs := []trail.Vertex{
		{
			Position:    [3]float32{1, 2, 3},
			Color:       [4]float32{0.1, 0.2, 0.3, 0.4},
			Progress:    0.5,
			Width:       6,
			Glow:        0.7,
			PrevTangent: [3]float32{1, 0, 0},
			NextTangent: [3]float32{0, 1, 0},
		},
		{Position: [3]float32{-1, -2, -3}, Width: 2},
	}

	prefix := []byte{0xAA, 0xBB}
	data := EncodeVertices(prefix, vs)
	if len(data) != 2+2*trail.VertexStride {
		t.Fatalf("len = %d, want %d", len(data), 2+2*trail.VertexStride)
	}
	if data[0] != 0xAA || data[1] != 0xBB {
		t.Error("prefix not preserved")
	}

	v := data[2:]
	tests := []struct {
		name string
		off  int
		want float32
	}{
		{"pos.x", 0, 1},
		{"pos.z", 8, 3},
		{"color.r", 12, 0.1},
		{"color.a", 24, 0.4},
		{"progress", 28, 0.5},
		{"width", 32, 6},
		{"glow", 36, 0.7},
		{"prev.x", 40, 1},
		{"next.y", 56, 1},
		{"second pos.y", trail.VertexStride + 4, -2},
		{"second width", trail.VertexStride + 32, 2},
	}
	for _, tt := range tests {
		if got := f32At(v, tt.off); got != tt.want {
			t.Errorf("%s = %v, want %v", tt.name, got, tt.want)
		}
	}
}

func TestEncodeVerticesReusesCapacity(t *testing.T) {
	vs := make([]trail.Vertex, 4)
	buf := make([]byte, 0, 4*trail.VertexStride)
	out := EncodeVertices(buf, vs)
	if &out[0] != &buf[:1][0] {
		t.Error("EncodeVertices reallocated despite enough capacity")
	}
}

func BenchmarkEncodeVertices(b *testing.B) {
	vs := make([]trail.Vertex, 4096)
	var buf []byte
	b.ReportAllocs()
	b.SetBytes(int64(len(vs) * trail.VertexStride))
	for i := 0; i < b.N; i++ {
		buf = EncodeVertices(buf[:0], vs)
	}
}
