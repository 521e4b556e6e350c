// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu hands a trail vertex buffer to a wgpu render pipeline.
//
// VertexLayout and Topology describe trail.Vertex to the pipeline that
// draws it. Uploader copies the published prefix of a trail.Batch into a
// hal vertex buffer that grows by doubling and is otherwise reused across
// frames.
//
// Usage:
//
//	up, err := gpu.NewUploaderFromProvider(provider)
//	if err != nil {
//	    return err
//	}
//	defer up.Release()
//
//	if err := batch.Tick(dt); err != nil {
//	    return err
//	}
//	vs, _ := batch.Published()
//	buf, n, err := up.Upload(vs)
//	// bind buf with gpu.VertexLayout() and draw n vertices as gpu.Topology.
//
// The package records no commands; drawing is the host's job.
package gpu
