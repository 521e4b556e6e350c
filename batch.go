package trail

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"

	"github.com/gogpu/trail/internal/attrib"
	"github.com/gogpu/trail/internal/polyline"
	"github.com/gogpu/trail/internal/smooth"
	"github.com/gogpu/trail/internal/vbuf"
)

// degenerateLength is the length of the placeholder segment drawn for a
// trace with fewer than two samples.
const degenerateLength = 1e-6

// Stats are cumulative batch counters plus the current buffer sizes.
type Stats struct {
	Ticks          uint64
	Samples        uint64
	SkippedSamples uint64
	Resets         uint64
	FitFallbacks   uint64
	Growths        uint64

	Traces       int
	Capacity     int
	UsedVertices int
}

// Batch owns a set of traces and the vertex buffer they are rendered into.
//
// Each Tick samples every trace once, updates its history, smooths it,
// derives per-point attributes and writes the traces' line-list segments
// contiguously, in registration order, into one buffer. The buffer only
// grows; steady-state ticks do not allocate.
//
// Batch is not safe for concurrent use. The slice returned by Published
// aliases the batch's buffer and is valid until the next Tick.
type Batch struct {
	traces []*trace
	index  map[TraceID]int

	now   float64
	stats Stats

	// Scratch and arenas, reused across ticks.
	raw      polyline.Polyline
	smoothed polyline.Polyline
	points   polyline.Polyline
	attrs    attrib.Attributes
	offsets  []int
	smoother smooth.Smoother
	synth    attrib.Synthesizer

	vertices    []Vertex
	used        int
	maxVertices int

	log *slog.Logger
}

// NewBatch creates an empty batch.
func NewBatch(opts ...Option) *Batch {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	initial := o.initialCapacity
	if o.maxVertices > 0 {
		initial = min(initial, o.maxVertices)
	}
	return &Batch{
		index:       make(map[TraceID]int),
		vertices:    make([]Vertex, initial),
		maxVertices: o.maxVertices,
		log:         o.logger,
	}
}

func (b *Batch) logger() *slog.Logger {
	if b.log != nil {
		return b.log
	}
	return Logger()
}

// RegisterTrace adds a trace sampled from src. The trace starts empty and
// bootstrapping; it first appears in the output after the next Tick.
func (b *Batch) RegisterTrace(cfg TraceConfig, src PositionSource) (TraceID, error) {
	if err := cfg.Validate(); err != nil {
		return TraceID{}, err
	}
	if src == nil {
		return TraceID{}, ErrNilSource
	}
	id, err := newTraceID()
	if err != nil {
		return TraceID{}, err
	}
	b.index[id] = len(b.traces)
	b.traces = append(b.traces, newTrace(id, cfg, src))
	b.logger().Info("trail: trace registered",
		"trace", id.String(),
		"smoothing", cfg.Smoothing.String(),
		"max_tail_length", cfg.MaxTailLength)
	return id, nil
}

func (b *Batch) lookup(id TraceID) (*trace, error) {
	i, ok := b.index[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTrace, id)
	}
	return b.traces[i], nil
}

// ClearTrace discards the history and recent-step window of a trace. The
// trace keeps its config and source and bootstraps again from its next
// sample.
func (b *Batch) ClearTrace(id TraceID) error {
	t, err := b.lookup(id)
	if err != nil {
		return err
	}
	t.clear()
	return nil
}

// RemoveTrace unregisters a trace. The published buffer still contains
// its vertices until the next Tick.
func (b *Batch) RemoveTrace(id TraceID) error {
	i, ok := b.index[id]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownTrace, id)
	}
	b.traces = slices.Delete(b.traces, i, i+1)
	delete(b.index, id)
	for j := i; j < len(b.traces); j++ {
		b.index[b.traces[j].id] = j
	}
	b.logger().Info("trail: trace removed", "trace", id.String())
	return nil
}

// Clear clears every trace.
func (b *Batch) Clear() {
	for _, t := range b.traces {
		t.clear()
	}
}

// SetTraceConfig replaces the config of a trace. A changed MaxTailLength
// resizes the history keeping the newest samples, and the recent-step
// window is rebuilt from what is retained.
func (b *Batch) SetTraceConfig(id TraceID, cfg TraceConfig) error {
	t, err := b.lookup(id)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	t.reconfigure(cfg)
	return nil
}

// SetSource replaces the position source of a trace.
func (b *Batch) SetSource(id TraceID, src PositionSource) error {
	t, err := b.lookup(id)
	if err != nil {
		return err
	}
	if src == nil {
		return ErrNilSource
	}
	t.src = src
	return nil
}

// History returns a copy of the retained samples of a trace, oldest first.
func (b *Batch) History(id TraceID) ([]Sample, error) {
	t, err := b.lookup(id)
	if err != nil {
		return nil, err
	}
	return t.samples(), nil
}

// State returns the sampling state of a trace.
func (b *Batch) State(id TraceID) (TraceState, error) {
	t, err := b.lookup(id)
	if err != nil {
		return 0, err
	}
	return t.state, nil
}

// TraceStats returns the counters of a trace.
func (b *Batch) TraceStats(id TraceID) (TraceStats, error) {
	t, err := b.lookup(id)
	if err != nil {
		return TraceStats{}, err
	}
	return t.stats, nil
}

// TraceRange returns the vertex range [start, end) of a trace in the
// published buffer. A trace registered after the last successful Tick
// has an empty range.
func (b *Batch) TraceRange(id TraceID) (start, end int, err error) {
	t, err := b.lookup(id)
	if err != nil {
		return 0, 0, err
	}
	return t.vertexStart, t.vertexEnd, nil
}

// Len returns the number of registered traces.
func (b *Batch) Len() int { return len(b.traces) }

// Now returns the batch clock: the sum of all tick deltas, in seconds.
func (b *Batch) Now() float64 { return b.now }

// Stats returns the batch counters.
func (b *Batch) Stats() Stats {
	s := b.stats
	s.Traces = len(b.traces)
	s.Capacity = len(b.vertices)
	s.UsedVertices = b.used
	return s
}

// Published returns the vertices written by the last successful Tick and
// their count. The slice aliases the batch's buffer.
func (b *Batch) Published() ([]Vertex, int) {
	return b.vertices[:b.used], b.used
}

// Tick advances the clock by dt seconds, samples every trace and
// re-renders the vertex buffer.
//
// A zero dt does nothing. Source failures never fail the tick: the
// affected trace skips its sample and is drawn from its existing history.
// Tick fails only for an invalid dt, or with ErrCapacityExhausted when the
// output would exceed the WithMaxVertices limit, in which case the
// previously published buffer is kept.
func (b *Batch) Tick(dt float64) error {
	if dt == 0 {
		return nil
	}
	if !(dt > 0) || math.IsInf(dt, 0) {
		return fmt.Errorf("%w: %v", ErrInvalidDelta, dt)
	}
	b.now += dt
	b.stats.Ticks++

	log := b.logger()
	for _, t := range b.traces {
		b.sample(log, t)
	}
	return b.render(log)
}

// sample pulls one position for t and updates its history.
func (b *Batch) sample(log *slog.Logger, t *trace) {
	p, err := samplePosition(t.src)
	switch {
	case err == nil:
		b.stats.Samples++
		t.stats.Samples++
		if t.observe(p, b.now) == obsReset {
			b.stats.Resets++
			t.stats.Resets++
			if log.Enabled(context.Background(), slog.LevelDebug) {
				log.Debug("trail: discontinuity, history reset",
					"trace", t.id.String(),
					"x", p.X, "y", p.Y, "z", p.Z)
			}
		}
	case errors.Is(err, ErrSourcePanic):
		b.stats.SkippedSamples++
		t.stats.SkippedSamples++
		log.Warn("trail: sample skipped", "trace", t.id.String(), "err", err)
	default:
		b.stats.SkippedSamples++
		t.stats.SkippedSamples++
		if log.Enabled(context.Background(), slog.LevelDebug) {
			log.Debug("trail: sample skipped", "trace", t.id.String(), "err", err)
		}
	}
	t.hist.Evict(b.now, t.cfg.TailLifetime)
}

// render smooths every trace into the point arena, sizes the vertex
// buffer and writes each trace's segments.
func (b *Batch) render(log *slog.Logger) error {
	b.points.Reset()
	b.offsets = append(b.offsets[:0], 0)
	required := 0
	for _, t := range b.traces {
		b.stage(t)
		res := b.smoother.Smooth(&b.smoothed, &b.raw, t.cfg.smoothParams())
		if res.FitFallback {
			b.stats.FitFallbacks++
			t.stats.FitFallbacks++
			if log.Enabled(context.Background(), slog.LevelDebug) {
				log.Debug("trail: spline fit failed, using averaged points", "trace", t.id.String())
			}
		}
		t.pointStart = b.points.Len()
		b.points.AppendFrom(&b.smoothed)
		t.pointEnd = b.points.Len()

		required += vbuf.Count(t.pointEnd - t.pointStart)
		b.offsets = append(b.offsets, required)
	}

	if err := b.reserve(log, required); err != nil {
		return err
	}

	b.attrs.Resize(b.points.Len())
	for i, t := range b.traces {
		pts := b.points.Slice(t.pointStart, t.pointEnd)
		a := b.attrs.Slice(t.pointStart, t.pointEnd)
		b.synth.Synthesize(a, &pts, t.cfg.attribParams(b.now))
		if t.empty {
			clear(a.Opacity)
		}
		vbuf.Build(b.vertices[b.offsets[i]:b.offsets[i+1]], &pts, &a, t.cfg.BaseColor.Array())
		t.vertexStart, t.vertexEnd = b.offsets[i], b.offsets[i+1]
	}
	b.used = required
	return nil
}

// stage writes the raw polyline of t into b.raw. A trace with fewer than
// two samples gets a near-zero segment; an empty one sits at the origin
// and is drawn fully transparent.
func (b *Batch) stage(t *trace) {
	b.raw.Reset()
	t.empty = false
	switch t.hist.Len() {
	case 0:
		t.empty = true
		b.raw.Append(0, 0, 0, b.now)
		b.raw.Append(degenerateLength, 0, 0, b.now)
	case 1:
		s := t.hist.At(0)
		b.raw.Append(s.X, s.Y, s.Z, s.T)
		b.raw.Append(s.X+degenerateLength, s.Y, s.Z, s.T)
	default:
		t.hist.Snapshot(&b.raw)
	}
}

// reserve makes room for n vertices, growing to max(n, 2*capacity).
// The current contents are not preserved; every tick rewrites them.
func (b *Batch) reserve(log *slog.Logger, n int) error {
	if b.maxVertices > 0 && n > b.maxVertices {
		log.Warn("trail: vertex buffer growth refused",
			"required", n, "limit", b.maxVertices)
		return fmt.Errorf("%w: need %d vertices, limit is %d", ErrCapacityExhausted, n, b.maxVertices)
	}
	if n <= len(b.vertices) {
		return nil
	}
	c := max(n, 2*len(b.vertices))
	if b.maxVertices > 0 {
		c = min(c, b.maxVertices)
	}
	b.vertices = make([]Vertex, c)
	b.stats.Growths++
	if log.Enabled(context.Background(), slog.LevelDebug) {
		log.Debug("trail: vertex buffer grown", "capacity", c, "required", n)
	}
	return nil
}
