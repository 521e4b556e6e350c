package trail

import "log/slog"

// Option configures a Batch during creation.
//
// Example:
//
//	b := trail.NewBatch(
//	    trail.WithInitialCapacity(4096),
//	    trail.WithMaxVertices(1<<20),
//	)
type Option func(*options)

// options holds optional Batch configuration.
type options struct {
	initialCapacity int
	maxVertices     int
	logger          *slog.Logger
}

func defaultOptions() options {
	return options{}
}

// WithInitialCapacity preallocates room for n vertices.
func WithInitialCapacity(n int) Option {
	return func(o *options) {
		o.initialCapacity = max(n, 0)
	}
}

// WithMaxVertices limits the vertex buffer to n vertices. A Tick that
// would need more returns ErrCapacityExhausted and keeps the previously
// published buffer. Zero means unlimited.
func WithMaxVertices(n int) Option {
	return func(o *options) {
		o.maxVertices = max(n, 0)
	}
}

// WithLogger sets the logger of this batch, overriding the package-wide
// logger set with SetLogger.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}
