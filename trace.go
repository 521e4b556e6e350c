package trail

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/gogpu/trail/internal/guard"
	"github.com/gogpu/trail/internal/history"
)

// TraceID identifies a registered trace. IDs are never reused.
type TraceID uuid.UUID

// String returns the canonical UUID form of id.
func (id TraceID) String() string {
	return uuid.UUID(id).String()
}

func newTraceID() (TraceID, error) {
	u, err := uuid.NewRandom()
	if err != nil {
		return TraceID{}, fmt.Errorf("trail: generate trace id: %w", err)
	}
	return TraceID(u), nil
}

// TraceState is the sampling state of a trace.
type TraceState uint8

const (
	// StateBootstrapping holds a single seed sample that has not moved yet.
	StateBootstrapping TraceState = iota

	// StateActive appends samples and checks them for discontinuities.
	StateActive

	// StateReset follows a discontinuity: the history was restarted at
	// the new position and the next movement bootstraps it again.
	StateReset
)

// String returns the state name.
func (s TraceState) String() string {
	switch s {
	case StateBootstrapping:
		return "bootstrapping"
	case StateActive:
		return "active"
	case StateReset:
		return "reset"
	default:
		return fmt.Sprintf("TraceState(%d)", int(s))
	}
}

// Sample is a recorded trace position.
type Sample struct {
	Position Vec3
	Time     float64
}

// TraceStats are the cumulative counters of one trace.
type TraceStats struct {
	Samples        uint64
	SkippedSamples uint64
	Resets         uint64
	FitFallbacks   uint64
}

// observation is the outcome of feeding one position into a trace.
type observation uint8

const (
	obsSeeded observation = iota
	obsHeld
	obsBootstrapped
	obsAppended
	obsReset
)

// trace is the per-trace state owned by a Batch.
type trace struct {
	id    TraceID
	cfg   TraceConfig
	src   PositionSource
	hist  *history.History
	guard *guard.Guard
	state TraceState
	stats TraceStats

	// Point range in the batch's smoothed arena and vertex range in the
	// vertex buffer, both from the most recent tick.
	pointStart, pointEnd   int
	vertexStart, vertexEnd int
	empty                  bool
}

func newTrace(id TraceID, cfg TraceConfig, src PositionSource) *trace {
	return &trace{
		id:    id,
		cfg:   cfg,
		src:   src,
		hist:  history.New(cfg.MaxTailLength),
		guard: guard.New(cfg.guardParams()),
	}
}

// observe records position p sampled at time now.
func (t *trace) observe(p Vec3, now float64) observation {
	s := history.Sample{X: p.X, Y: p.Y, Z: p.Z, T: now}

	last, ok := t.hist.Last()
	if !ok {
		t.hist.Push(s)
		if t.state == StateActive {
			t.state = StateBootstrapping
		}
		return obsSeeded
	}

	seed := V3(last.X, last.Y, last.Z)
	d := seed.Distance(p)

	if t.state != StateActive && t.hist.Len() == 1 {
		if d <= t.cfg.BootstrapEpsilon {
			t.hist.ReplaceLast(s)
			return obsHeld
		}
		// The window is empty here, so the threshold is the configured minimum.
		if t.guard.Exceeds(d) {
			t.hist.ReplaceLast(s)
			t.guard.Reset()
			t.state = StateReset
			return obsReset
		}
		t.bootstrap(last, p, d, now)
		return obsBootstrapped
	}

	if t.guard.Exceeds(d) {
		t.hist.Reset()
		t.guard.Reset()
		t.hist.Push(s)
		t.state = StateReset
		return obsReset
	}

	t.hist.Push(s)
	t.guard.Record(d)
	return obsAppended
}

// bootstrap rewrites a one-sample history as [predecessor, seed, p].
// The predecessor sits BootstrapOffset behind the seed, opposite to the
// first movement, so the tail has a defined direction from the start.
// The caller has already checked d against the minimum threshold.
func (t *trace) bootstrap(seed history.Sample, p Vec3, d, now float64) {
	from := V3(seed.X, seed.Y, seed.Z)
	dir := p.Sub(from).Normalize()
	pred := from.Sub(dir.Mul(t.cfg.BootstrapOffset))

	t.hist.Reset()
	t.hist.Push(history.Sample{X: pred.X, Y: pred.Y, Z: pred.Z, T: seed.T})
	t.hist.Push(seed)
	t.hist.Push(history.Sample{X: p.X, Y: p.Y, Z: p.Z, T: now})

	t.guard.Reset()
	t.guard.Record(d)
	t.state = StateActive
}

// clear discards the history and returns the trace to bootstrapping.
func (t *trace) clear() {
	t.hist.Reset()
	t.guard.Reset()
	t.state = StateBootstrapping
}

// reconfigure applies cfg, resizing the history and rebuilding the guard
// window from the retained samples.
func (t *trace) reconfigure(cfg TraceConfig) {
	t.cfg = cfg
	t.hist.Resize(cfg.MaxTailLength)
	t.guard = guard.New(cfg.guardParams())

	samples := t.hist.Samples()
	xs := make([]float64, len(samples))
	ys := make([]float64, len(samples))
	zs := make([]float64, len(samples))
	for i, s := range samples {
		xs[i], ys[i], zs[i] = s.X, s.Y, s.Z
	}
	t.guard.Rebuild(xs, ys, zs)
}

func (t *trace) samples() []Sample {
	hs := t.hist.Samples()
	out := make([]Sample, len(hs))
	for i, s := range hs {
		out[i] = Sample{Position: V3(s.X, s.Y, s.Z), Time: s.T}
	}
	return out
}
