// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package gpu

import (
	"errors"
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/trail"
)

var (
	// ErrNilDevice is returned when NewUploader is given a nil device or queue.
	ErrNilDevice = errors.New("gpu: nil device or queue")

	// ErrNilProvider is returned when NewUploaderFromProvider is given nil.
	ErrNilProvider = errors.New("gpu: nil DeviceProvider")

	// ErrProviderNotHAL is returned when a provider does not expose
	// hal.Device and hal.Queue.
	ErrProviderNotHAL = errors.New("gpu: provider does not expose HAL types")
)

// minBufferSize is the smallest vertex buffer allocated.
const minBufferSize = 16 * trail.VertexStride

const bufferLabel = "trail-vertices"

// Uploader copies vertices into a reusable hal vertex buffer.
// It is not safe for concurrent use.
type Uploader struct {
	create  func(size uint64) (hal.Buffer, error)
	write   func(buf hal.Buffer, data []byte)
	destroy func(buf hal.Buffer)

	buf     hal.Buffer
	size    uint64
	scratch []byte
}

// NewUploader creates an Uploader that allocates on device and writes
// through queue.
func NewUploader(device hal.Device, queue hal.Queue) (*Uploader, error) {
	if device == nil || queue == nil {
		return nil, ErrNilDevice
	}
	return &Uploader{
		create: func(size uint64) (hal.Buffer, error) {
			return device.CreateBuffer(&hal.BufferDescriptor{
				Label: bufferLabel,
				Size:  size,
				Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
			})
		},
		write: func(buf hal.Buffer, data []byte) {
			queue.WriteBuffer(buf, 0, data)
		},
		destroy: func(buf hal.Buffer) {
			device.DestroyBuffer(buf)
		},
	}, nil
}

// NewUploaderFromProvider creates an Uploader on the device of a host
// provider. The provider must also implement HalDevice() any and
// HalQueue() any returning hal.Device and hal.Queue.
func NewUploaderFromProvider(provider gpucontext.DeviceProvider) (*Uploader, error) {
	if provider == nil {
		return nil, ErrNilProvider
	}
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := provider.(halProvider)
	if !ok {
		return nil, ErrProviderNotHAL
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is not hal.Device", ErrProviderNotHAL)
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is not hal.Queue", ErrProviderNotHAL)
	}
	return NewUploader(device, queue)
}

// Upload writes vs to the start of the vertex buffer and returns the
// buffer and the vertex count. The buffer is re-created, at least doubling
// in size, only when vs does not fit. An empty vs uploads nothing.
func (u *Uploader) Upload(vs []trail.Vertex) (hal.Buffer, int, error) {
	if len(vs) == 0 {
		return u.buf, 0, nil
	}
	u.scratch = EncodeVertices(u.scratch[:0], vs)

	need := uint64(len(u.scratch))
	if need > u.size {
		size := max(need, 2*u.size, minBufferSize)
		buf, err := u.create(size)
		if err != nil {
			return nil, 0, fmt.Errorf("gpu: create vertex buffer (%d bytes): %w", size, err)
		}
		if u.buf != nil {
			u.destroy(u.buf)
		}
		u.buf, u.size = buf, size
	}

	u.write(u.buf, u.scratch)
	return u.buf, len(vs), nil
}

// Size returns the current buffer size in bytes.
func (u *Uploader) Size() uint64 { return u.size }

// Release destroys the vertex buffer. The Uploader may be reused.
func (u *Uploader) Release() {
	if u.buf != nil {
		u.destroy(u.buf)
	}
	u.buf, u.size = nil, 0
}
