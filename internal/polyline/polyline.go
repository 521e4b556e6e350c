// Package polyline holds timestamped 3D point sequences in
// structure-of-arrays form.
//
// Every stage of the trail pipeline (history snapshot, smoothing, attribute
// synthesis, vertex packing) operates on the X, Y, Z and T columns as
// contiguous []float64 slices so that bulk operations can use
// gonum/floats kernels instead of per-point method calls. Storage is
// reused across ticks: Resize and Append only allocate when capacity is
// exceeded, and then grow geometrically.
package polyline

// Polyline is an ordered sequence of timestamped points.
// All four columns always have the same length.
type Polyline struct {
	X, Y, Z []float64
	T       []float64
}

// New returns an empty polyline with room for capacity points.
func New(capacity int) *Polyline {
	return &Polyline{
		X: make([]float64, 0, capacity),
		Y: make([]float64, 0, capacity),
		Z: make([]float64, 0, capacity),
		T: make([]float64, 0, capacity),
	}
}

// Len returns the number of points.
func (p *Polyline) Len() int { return len(p.X) }

// Cap returns the number of points that fit without reallocation.
func (p *Polyline) Cap() int { return cap(p.X) }

// Reset truncates the polyline to zero points, keeping its storage.
func (p *Polyline) Reset() {
	p.X = p.X[:0]
	p.Y = p.Y[:0]
	p.Z = p.Z[:0]
	p.T = p.T[:0]
}

// Grow ensures room for n points in total, at least doubling capacity
// when a reallocation is needed. Existing points are preserved.
func (p *Polyline) Grow(n int) {
	if n <= cap(p.X) {
		return
	}
	c := max(n, 2*cap(p.X))
	p.X = grow(p.X, c)
	p.Y = grow(p.Y, c)
	p.Z = grow(p.Z, c)
	p.T = grow(p.T, c)
}

// Resize sets the length to n points. Values beyond the previous length
// are unspecified and must be overwritten by the caller.
func (p *Polyline) Resize(n int) {
	p.Grow(n)
	p.X = p.X[:n]
	p.Y = p.Y[:n]
	p.Z = p.Z[:n]
	p.T = p.T[:n]
}

// Append adds one point.
func (p *Polyline) Append(x, y, z, t float64) {
	p.Grow(len(p.X) + 1)
	p.X = append(p.X, x)
	p.Y = append(p.Y, y)
	p.Z = append(p.Z, z)
	p.T = append(p.T, t)
}

// AppendFrom appends every point of src.
func (p *Polyline) AppendFrom(src *Polyline) {
	p.Grow(p.Len() + src.Len())
	p.X = append(p.X, src.X...)
	p.Y = append(p.Y, src.Y...)
	p.Z = append(p.Z, src.Z...)
	p.T = append(p.T, src.T...)
}

// CopyFrom replaces the contents of p with a copy of src.
func (p *Polyline) CopyFrom(src *Polyline) {
	p.Resize(src.Len())
	copy(p.X, src.X)
	copy(p.Y, src.Y)
	copy(p.Z, src.Z)
	copy(p.T, src.T)
}

// Slice returns a view of points [i, j). The view shares storage with p
// and must not be appended to.
func (p *Polyline) Slice(i, j int) Polyline {
	return Polyline{
		X: p.X[i:j:j],
		Y: p.Y[i:j:j],
		Z: p.Z[i:j:j],
		T: p.T[i:j:j],
	}
}

func grow(s []float64, c int) []float64 {
	out := make([]float64, len(s), c)
	copy(out, s)
	return out
}
