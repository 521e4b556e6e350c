// Package guard detects discontinuities ("teleports") in a sampled
// position stream.
//
// The guard keeps a window of the most recent step distances and derives
// an adaptive threshold from robust statistics over it:
//
//	threshold = max(MinThreshold,
//	                median + MADScale*MAD,
//	                P90Scale*p90,
//	                P99Scale*p99)
//
// The median and MAD are midpoint medians: the mean of the two middle
// values for an even count. The percentiles are empirical.
//
// While the window holds few distances the percentiles are unreliable, so
// the threshold is additionally floored by StartupScale times the largest
// recent distance. A step above the threshold is a discontinuity.
package guard

import (
	"math"
	"slices"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Default tuning. The constants are empirically chosen visual parameters.
const (
	DefaultWindow         = 64
	DefaultMinThreshold   = 0.6
	DefaultMADScale       = 6.0
	DefaultP90Scale       = 1.8
	DefaultP99Scale       = 1.4
	DefaultStartupScale   = 4.5
	DefaultStartupSamples = 3
)

// Params configures a Guard.
type Params struct {
	// Window is the number of recent step distances kept.
	Window int

	// MinThreshold is the lower bound of the adaptive threshold.
	MinThreshold float64

	MADScale     float64
	P90Scale     float64
	P99Scale     float64
	StartupScale float64

	// StartupSamples is the window fill level at or below which the
	// StartupScale floor applies. It counts recorded step distances, not
	// positions.
	StartupSamples int
}

// DefaultParams returns the default guard tuning.
func DefaultParams() Params {
	return Params{
		Window:         DefaultWindow,
		MinThreshold:   DefaultMinThreshold,
		MADScale:       DefaultMADScale,
		P90Scale:       DefaultP90Scale,
		P99Scale:       DefaultP99Scale,
		StartupScale:   DefaultStartupScale,
		StartupSamples: DefaultStartupSamples,
	}
}

// Guard is the recent-step window of one trace.
// Scratch buffers are sized once so Threshold does not allocate.
type Guard struct {
	params Params

	ring []float64
	pos  int
	n    int

	sorted []float64
	dev    []float64
}

// New creates a Guard. A non-positive window falls back to DefaultWindow.
func New(p Params) *Guard {
	if p.Window <= 0 {
		p.Window = DefaultWindow
	}
	return &Guard{
		params: p,
		ring:   make([]float64, p.Window),
		sorted: make([]float64, 0, p.Window),
		dev:    make([]float64, 0, p.Window),
	}
}

// Params returns the guard's configuration.
func (g *Guard) Params() Params { return g.params }

// Len returns the number of recorded distances.
func (g *Guard) Len() int { return g.n }

// Record adds a step distance to the window, dropping the oldest when full.
// Non-finite or negative distances are ignored.
func (g *Guard) Record(d float64) {
	if d < 0 || math.IsNaN(d) || math.IsInf(d, 0) {
		return
	}
	g.ring[g.pos] = d
	g.pos = (g.pos + 1) % len(g.ring)
	if g.n < len(g.ring) {
		g.n++
	}
}

// Reset empties the window.
func (g *Guard) Reset() {
	g.pos = 0
	g.n = 0
}

// Rebuild re-derives the window from consecutive point distances,
// keeping the newest Window of them.
func (g *Guard) Rebuild(xs, ys, zs []float64) {
	g.Reset()
	n := len(xs)
	start := max(1, n-len(g.ring))
	for i := start; i < n; i++ {
		g.Record(distance(xs[i-1], ys[i-1], zs[i-1], xs[i], ys[i], zs[i]))
	}
}

// Recent returns the recorded distances in no particular order.
// The slice aliases the window and is valid until the next Record.
func (g *Guard) Recent() []float64 {
	return g.ring[:g.n]
}

// Threshold returns the current discontinuity threshold.
func (g *Guard) Threshold() float64 {
	p := g.params
	th := p.MinThreshold
	if g.n == 0 {
		return th
	}

	recent := g.Recent()
	g.sorted = append(g.sorted[:0], recent...)
	slices.Sort(g.sorted)

	median := midpoint(g.sorted)
	g.dev = g.dev[:len(g.sorted)]
	for i, d := range g.sorted {
		g.dev[i] = math.Abs(d - median)
	}
	slices.Sort(g.dev)
	mad := midpoint(g.dev)
	p90 := stat.Quantile(0.9, stat.Empirical, g.sorted, nil)
	p99 := stat.Quantile(0.99, stat.Empirical, g.sorted, nil)

	th = max(th, median+p.MADScale*mad, p.P90Scale*p90, p.P99Scale*p99)
	if g.n <= p.StartupSamples {
		th = max(th, p.StartupScale*floats.Max(recent))
	}
	return th
}

// Exceeds reports whether a step of distance d is a discontinuity.
func (g *Guard) Exceeds(d float64) bool {
	return d > g.Threshold()
}

// midpoint returns the median of sorted, which must not be empty.
func midpoint(sorted []float64) float64 {
	n := len(sorted)
	return (sorted[(n-1)/2] + sorted[n/2]) / 2
}

func distance(x0, y0, z0, x1, y1, z1 float64) float64 {
	dx, dy, dz := x1-x0, y1-y0, z1-z0
	return math.Sqrt(dx*dx + dy*dy + dz*dz)
}
