// Package history implements the bounded sample record of a single trail.
//
// A History is a fixed-capacity ring buffer: steady-state Push and Evict
// move indices only and never allocate. Two independent bounds apply:
// the ring capacity (maximum sample count) and an age limit enforced by
// Evict. Age eviction always keeps the two newest samples so a trail that
// has been bootstrapped can still draw at least one segment.
package history

import "github.com/gogpu/trail/internal/polyline"

// Sample is a recorded position and its timestamp in seconds.
type Sample struct {
	X, Y, Z float64
	T       float64
}

// minRetained is the number of newest samples age eviction never removes.
const minRetained = 2

// History is a ring buffer of samples ordered oldest to newest.
// Timestamps are non-decreasing.
type History struct {
	buf  []Sample
	head int // index of the oldest sample
	n    int
}

// New creates a History that holds at most capacity samples.
// Capacity is clamped to at least minRetained.
func New(capacity int) *History {
	return &History{buf: make([]Sample, max(capacity, minRetained))}
}

// Len returns the number of samples.
func (h *History) Len() int { return h.n }

// Cap returns the maximum number of samples.
func (h *History) Cap() int { return len(h.buf) }

// At returns the i-th oldest sample. It panics if i is out of range.
func (h *History) At(i int) Sample {
	if i < 0 || i >= h.n {
		panic("history: index out of range")
	}
	return h.buf[(h.head+i)%len(h.buf)]
}

// Last returns the newest sample and whether one exists.
func (h *History) Last() (Sample, bool) {
	if h.n == 0 {
		return Sample{}, false
	}
	return h.At(h.n - 1), true
}

// Push appends s as the newest sample, evicting the oldest when full.
// A timestamp earlier than the current newest is raised to it.
func (h *History) Push(s Sample) {
	if last, ok := h.Last(); ok && s.T < last.T {
		s.T = last.T
	}
	if h.n == len(h.buf) {
		h.buf[h.head] = s
		h.head = (h.head + 1) % len(h.buf)
		return
	}
	h.buf[(h.head+h.n)%len(h.buf)] = s
	h.n++
}

// ReplaceLast overwrites the newest sample. It is a no-op on an empty
// History.
func (h *History) ReplaceLast(s Sample) {
	if h.n == 0 {
		return
	}
	if h.n > 1 {
		if prev := h.At(h.n - 2); s.T < prev.T {
			s.T = prev.T
		}
	}
	h.buf[(h.head+h.n-1)%len(h.buf)] = s
}

// Evict drops the oldest samples whose age exceeds lifetime at time now,
// never reducing the History below two samples. It returns the number of
// samples removed.
func (h *History) Evict(now, lifetime float64) int {
	removed := 0
	for h.n > minRetained && now-h.buf[h.head].T > lifetime {
		h.head = (h.head + 1) % len(h.buf)
		h.n--
		removed++
	}
	return removed
}

// Reset removes every sample, keeping the storage.
func (h *History) Reset() {
	h.head = 0
	h.n = 0
}

// Resize changes the capacity, keeping the newest samples that fit.
func (h *History) Resize(capacity int) {
	capacity = max(capacity, minRetained)
	if capacity == len(h.buf) {
		return
	}
	keep := min(h.n, capacity)
	buf := make([]Sample, capacity)
	for i := 0; i < keep; i++ {
		buf[i] = h.At(h.n - keep + i)
	}
	h.buf = buf
	h.head = 0
	h.n = keep
}

// Snapshot copies the samples, oldest first, into dst.
// dst is resized to Len points and its previous contents are discarded.
func (h *History) Snapshot(dst *polyline.Polyline) {
	dst.Resize(h.n)
	// Two contiguous runs: [head, end) and [0, wrap).
	first := min(h.n, len(h.buf)-h.head)
	for i, s := range h.buf[h.head : h.head+first] {
		dst.X[i], dst.Y[i], dst.Z[i], dst.T[i] = s.X, s.Y, s.Z, s.T
	}
	for i, s := range h.buf[:h.n-first] {
		j := first + i
		dst.X[j], dst.Y[j], dst.Z[j], dst.T[j] = s.X, s.Y, s.Z, s.T
	}
}

// Samples returns a copy of the samples, oldest first.
func (h *History) Samples() []Sample {
	out := make([]Sample, h.n)
	for i := range out {
		out[i] = h.At(i)
	}
	return out
}
