package trail

import "fmt"

// PositionSource produces the current position of a traced point.
// It is called once per tick. An error (or panic) skips the trace's
// sample for that tick only.
type PositionSource interface {
	Position() (Vec3, error)
}

// PositionSourceFunc adapts a function to PositionSource.
type PositionSourceFunc func() (Vec3, error)

// Position calls f.
func (f PositionSourceFunc) Position() (Vec3, error) { return f() }

// Fixed returns a source that always reports p.
func Fixed(p Vec3) PositionSource {
	return PositionSourceFunc(func() (Vec3, error) { return p, nil })
}

// samplePosition pulls one position from src, converting panics and
// non-finite positions into errors.
func samplePosition(src PositionSource) (p Vec3, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrSourcePanic, r)
		}
	}()
	p, err = src.Position()
	if err != nil {
		return Vec3{}, err
	}
	if !p.IsFinite() {
		return Vec3{}, fmt.Errorf("%w: %v", ErrNonFinitePosition, p)
	}
	return p, nil
}
