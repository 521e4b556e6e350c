package trail

import "errors"

// Errors returned by Batch operations.
var (
	// ErrInvalidConfig is returned when a TraceConfig fails validation.
	ErrInvalidConfig = errors.New("trail: invalid trace config")

	// ErrNilSource is returned when registering a trace without a position source.
	ErrNilSource = errors.New("trail: position source is nil")

	// ErrUnknownTrace is returned for a TraceID that is not registered.
	ErrUnknownTrace = errors.New("trail: unknown trace")

	// ErrInvalidDelta is returned by Tick for a negative or non-finite dt.
	ErrInvalidDelta = errors.New("trail: invalid tick delta")

	// ErrCapacityExhausted is returned by Tick when the vertex buffer would
	// have to grow beyond the limit set with WithMaxVertices. The previously
	// published buffer is left untouched.
	ErrCapacityExhausted = errors.New("trail: vertex capacity exhausted")

	// ErrNonFinitePosition marks a sample whose position has a NaN or
	// infinite component. Such samples are skipped, never recorded.
	ErrNonFinitePosition = errors.New("trail: non-finite position")

	// ErrSourcePanic marks a position source that panicked. The panic is
	// recovered and the sample skipped.
	ErrSourcePanic = errors.New("trail: position source panicked")
)
