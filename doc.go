// Package trail renders fading motion trails for moving points.
//
// # Overview
//
// A Batch owns any number of traces. Each trace samples a PositionSource
// once per Tick and keeps a bounded, time-limited history of positions.
// On every tick the histories are smoothed, per-point attributes (fade
// progress, width, opacity, glow, tangent) are derived, and all traces are
// written as one line-list vertex buffer that a GPU line shader can draw
// without further processing.
//
// # Quick Start
//
//	b := trail.NewBatch()
//
//	cfg := trail.DefaultTraceConfig()
//	cfg.Smoothing = trail.ApproxSmooth
//	cfg.BaseColor = trail.Hex("#ffcc00")
//
//	id, err := b.RegisterTrace(cfg, trail.PositionSourceFunc(func() (trail.Vec3, error) {
//	    return ball.Position(), nil
//	}))
//	if err != nil {
//	    return err
//	}
//
//	for range frames {
//	    if err := b.Tick(1.0 / 60); err != nil {
//	        return err
//	    }
//	    vs, n := b.Published()
//	    upload(vs[:n])
//	}
//
// # Discontinuities
//
// A step much larger than the recent steps of a trace (a teleport) is not
// connected to the tail. The history restarts at the new position and the
// trace bootstraps again, so no segment ever spans the jump. The threshold
// adapts to the recent step distribution; see TeleportTuning.
//
// # Output
//
// Each trace with m smoothed points contributes 2*(m-1) vertices. Traces
// are contiguous and appear in registration order; TraceRange reports the
// range of a single trace. The gpu subpackage describes the Vertex layout
// to a render pipeline and uploads the buffer through wgpu/hal.
//
// # Coordinate System
//
// Positions are in scene units and are not transformed. Times are seconds
// on the batch clock, which starts at zero and advances by each tick's dt.
package trail
