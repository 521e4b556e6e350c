// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/trail"
)

// fakeBuffer satisfies hal.Buffer through the embedded interface; its
// methods are never called.
type fakeBuffer struct {
	hal.Buffer
	size uint64
}

type fakeGPU struct {
	created   []*fakeBuffer
	destroyed []*fakeBuffer
	writes    int
	lastWrite []byte
	failNext  bool
}

func (g *fakeGPU) uploader() *Uploader {
	return &Uploader{
		create: func(size uint64) (hal.Buffer, error) {
			if g.failNext {
				g.failNext = false
				return nil, errors.New("out of device memory")
			}
			b := &fakeBuffer{size: size}
			g.created = append(g.created, b)
			return b, nil
		},
		write: func(buf hal.Buffer, data []byte) {
			g.writes++
			g.lastWrite = append(g.lastWrite[:0], data...)
		},
		destroy: func(buf hal.Buffer) {
			g.destroyed = append(g.destroyed, buf.(*fakeBuffer))
		},
	}
}

func TestUploaderGrowth(t *testing.T) {
	g := &fakeGPU{}
	u := g.uploader()

	buf, n, err := u.Upload(make([]trail.Vertex, 4))
	if err != nil {
		t.Fatal(err)
	}
	if n != 4 || buf == nil {
		t.Fatalf("Upload = (%v, %d), want buffer and 4", buf, n)
	}
	if u.Size() != minBufferSize {
		t.Errorf("Size() = %d, want %d", u.Size(), minBufferSize)
	}

	// Fits: no new buffer.
	if _, _, err := u.Upload(make([]trail.Vertex, 16)); err != nil {
		t.Fatal(err)
	}
	if len(g.created) != 1 {
		t.Errorf("created %d buffers, want 1", len(g.created))
	}

	// Slightly larger: doubles.
	if _, _, err := u.Upload(make([]trail.Vertex, 17)); err != nil {
		t.Fatal(err)
	}
	if u.Size() != 2*minBufferSize {
		t.Errorf("Size() = %d, want %d", u.Size(), 2*minBufferSize)
	}
	if len(g.created) != 2 || len(g.destroyed) != 1 || g.destroyed[0] != g.created[0] {
		t.Errorf("created %d, destroyed %d; old buffer should be destroyed", len(g.created), len(g.destroyed))
	}
	if g.writes != 3 {
		t.Errorf("writes = %d, want 3", g.writes)
	}
	if len(g.lastWrite) != 17*trail.VertexStride {
		t.Errorf("last write = %d bytes, want %d", len(g.lastWrite), 17*trail.VertexStride)
	}

	u.Release()
	if u.Size() != 0 || len(g.destroyed) != 2 {
		t.Errorf("Release: size %d, destroyed %d", u.Size(), len(g.destroyed))
	}
}

func TestUploaderEmpty(t *testing.T) {
	g := &fakeGPU{}
	u := g.uploader()
	buf, n, err := u.Upload(nil)
	if err != nil || n != 0 || buf != nil {
		t.Errorf("Upload(nil) = (%v, %d, %v)", buf, n, err)
	}
	if g.writes != 0 || len(g.created) != 0 {
		t.Error("empty upload touched the GPU")
	}
}

func TestUploaderCreateFailure(t *testing.T) {
	g := &fakeGPU{}
	u := g.uploader()
	if _, _, err := u.Upload(make([]trail.Vertex, 2)); err != nil {
		t.Fatal(err)
	}
	g.failNext = true
	if _, _, err := u.Upload(make([]trail.Vertex, 1000)); err == nil {
		t.Fatal("expected error")
	}
	// The old buffer survives a failed growth.
	if len(g.destroyed) != 0 || u.Size() != minBufferSize {
		t.Errorf("destroyed %d, size %d after failed growth", len(g.destroyed), u.Size())
	}
}

func TestNewUploaderNil(t *testing.T) {
	if _, err := NewUploader(nil, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("NewUploader(nil, nil) error = %v, want ErrNilDevice", err)
	}
}

type mockDevice struct{}

func (m *mockDevice) Poll(wait bool) {}
func (m *mockDevice) Destroy()       {}

type mockQueue struct{}

type mockAdapter struct{}

// mockProvider implements gpucontext.DeviceProvider without HAL access.
type mockProvider struct{}

func (m *mockProvider) Device() gpucontext.Device             { return &mockDevice{} }
func (m *mockProvider) Queue() gpucontext.Queue               { return &mockQueue{} }
func (m *mockProvider) Adapter() gpucontext.Adapter           { return &mockAdapter{} }
func (m *mockProvider) SurfaceFormat() gputypes.TextureFormat { return gputypes.TextureFormatBGRA8Unorm }
func (m *mockProvider) AdapterInfo() gpucontext.AdapterInfo {
	return gpucontext.AdapterInfo{Name: "mock", Type: gpucontext.AdapterTypeSoftware}
}

var (
	_ gpucontext.DeviceProvider = (*mockProvider)(nil)
	_ gpucontext.DeviceProvider = (*halMockProvider)(nil)
)

// halMockProvider exposes HAL accessors returning non-HAL values.
type halMockProvider struct {
	mockProvider
}

func (m *halMockProvider) HalDevice() any { return "not a device" }
func (m *halMockProvider) HalQueue() any  { return nil }

func TestNewUploaderFromProvider(t *testing.T) {
	tests := []struct {
		name     string
		provider gpucontext.DeviceProvider
		wantErr  error
	}{
		{"nil provider", nil, ErrNilProvider},
		{"no HAL accessors", &mockProvider{}, ErrProviderNotHAL},
		{"wrong HAL types", &halMockProvider{}, ErrProviderNotHAL},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := NewUploaderFromProvider(tt.provider)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("error = %v, want %v", err, tt.wantErr)
			}
			if u != nil {
				t.Error("uploader should be nil on error")
			}
		})
	}
}
