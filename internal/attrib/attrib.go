// Package attrib synthesizes per-point render attributes for a smoothed
// trail: normalized age (progress), width, opacity, glow and a unit
// tangent.
//
// Ages and differences are computed on float64 columns with gonum/floats;
// the float32 attributes and tangent norms derived from them are computed
// eight lanes at a time with wide.F32x8. Only the tangent fallback scan
// branches per point.
package attrib

import (
	"gonum.org/v1/gonum/floats"

	"github.com/gogpu/trail/internal/polyline"
	"github.com/gogpu/trail/internal/wide"
)

// DefaultGlowDecay is the fraction of glow lost at full progress.
const DefaultGlowDecay = 0.6

// minTangentLen is the difference length at or below which a tangent is
// considered degenerate.
const minTangentLen = 1e-12

// Params configures one Synthesize call.
type Params struct {
	// Now is the current time and Lifetime the age at which progress
	// reaches 1, both in seconds.
	Now      float64
	Lifetime float64

	WidthStart, WidthEnd     float32
	OpacityStart, OpacityEnd float32

	// Glow is GlowFactor * (1 - progress*GlowDecay).
	GlowFactor float32
	GlowDecay  float32
}

// Attributes holds per-point attribute columns. All columns have the same
// length.
type Attributes struct {
	Progress []float32
	Width    []float32
	Opacity  []float32
	Glow     []float32

	// TX, TY, TZ form the unit tangent.
	TX, TY, TZ []float32
}

// Len returns the number of points.
func (a *Attributes) Len() int { return len(a.Progress) }

// Resize sets every column to length n, at least doubling capacity when
// a reallocation is needed. Contents are unspecified.
func (a *Attributes) Resize(n int) {
	a.Progress = resize32(a.Progress, n)
	a.Width = resize32(a.Width, n)
	a.Opacity = resize32(a.Opacity, n)
	a.Glow = resize32(a.Glow, n)
	a.TX = resize32(a.TX, n)
	a.TY = resize32(a.TY, n)
	a.TZ = resize32(a.TZ, n)
}

// Slice returns a view of points [i, j) sharing storage with a.
func (a *Attributes) Slice(i, j int) Attributes {
	return Attributes{
		Progress: a.Progress[i:j:j],
		Width:    a.Width[i:j:j],
		Opacity:  a.Opacity[i:j:j],
		Glow:     a.Glow[i:j:j],
		TX:       a.TX[i:j:j],
		TY:       a.TY[i:j:j],
		TZ:       a.TZ[i:j:j],
	}
}

// Synthesizer owns scratch storage for Synthesize.
// A zero Synthesizer is ready to use.
type Synthesizer struct {
	age        []float64
	dx, dy, dz []float64

	// Differences narrowed to float32 and their lengths.
	nx, ny, nz, norm []float32
}

// Synthesize fills out (which must have pts.Len() points) from pts.
func (s *Synthesizer) Synthesize(out Attributes, pts *polyline.Polyline, p Params) {
	m := pts.Len()
	if m == 0 {
		return
	}

	// age = now - t, then normalized by lifetime.
	s.age = resize64(s.age, m)
	floats.ScaleTo(s.age, -1, pts.T)
	floats.AddConst(p.Now, s.age)
	floats.Scale(1/p.Lifetime, s.age)

	w0, w1 := wide.SplatF32(p.WidthStart), wide.SplatF32(p.WidthEnd)
	o0, o1 := wide.SplatF32(p.OpacityStart), wide.SplatF32(p.OpacityEnd)
	glow := wide.SplatF32(p.GlowFactor)
	decay := wide.SplatF32(-p.GlowDecay)
	one := wide.SplatF32(1)

	for i := 0; i < m; i += wide.Lanes {
		prog := wide.LoadF64(s.age[i:]).Clamp(0, 1)
		prog.Store(out.Progress[i:])
		w0.Lerp(w1, prog).Store(out.Width[i:])
		o0.Lerp(o1, prog).Store(out.Opacity[i:])
		glow.Mul(prog.MulAdd(decay, one)).Store(out.Glow[i:])
	}

	s.tangents(out, pts)
}

// tangents writes normalized central differences (forward at the start,
// backward at the end). Degenerate differences reuse the previous valid
// direction; leading degenerate points take the first valid one, and a
// fully degenerate polyline points along +X.
func (s *Synthesizer) tangents(out Attributes, pts *polyline.Polyline) {
	m := pts.Len()
	if m == 1 {
		out.TX[0], out.TY[0], out.TZ[0] = 1, 0, 0
		return
	}
	s.dx = resize64(s.dx, m)
	s.dy = resize64(s.dy, m)
	s.dz = resize64(s.dz, m)
	for _, c := range [...]struct{ d, v []float64 }{
		{s.dx, pts.X}, {s.dy, pts.Y}, {s.dz, pts.Z},
	} {
		c.d[0] = c.v[1] - c.v[0]
		c.d[m-1] = c.v[m-1] - c.v[m-2]
		if m > 2 {
			floats.SubTo(c.d[1:m-1], c.v[2:], c.v[:m-2])
		}
	}

	s.nx = resize32(s.nx, m)
	s.ny = resize32(s.ny, m)
	s.nz = resize32(s.nz, m)
	s.norm = resize32(s.norm, m)
	for i := 0; i < m; i += wide.Lanes {
		x, y, z := wide.LoadF64(s.dx[i:]), wide.LoadF64(s.dy[i:]), wide.LoadF64(s.dz[i:])
		x.Store(s.nx[i:])
		y.Store(s.ny[i:])
		z.Store(s.nz[i:])
		x.Mul(x).Add(y.Mul(y)).Add(z.Mul(z)).Sqrt().Store(s.norm[i:])
	}

	var px, py, pz float32 = 1, 0, 0
	for i := 0; i < m; i++ {
		if l := s.norm[i]; l > minTangentLen {
			px, py, pz = s.nx[i]/l, s.ny[i]/l, s.nz[i]/l
			break
		}
	}
	for i := 0; i < m; i++ {
		if l := s.norm[i]; l > minTangentLen {
			px, py, pz = s.nx[i]/l, s.ny[i]/l, s.nz[i]/l
		}
		out.TX[i], out.TY[i], out.TZ[i] = px, py, pz
	}
}

func resize32(s []float32, n int) []float32 {
	if cap(s) < n {
		return make([]float32, n, max(n, 2*cap(s)))
	}
	return s[:n]
}

func resize64(s []float64, n int) []float64 {
	if cap(s) < n {
		return make([]float64, n, max(n, 2*cap(s)))
	}
	return s[:n]
}
