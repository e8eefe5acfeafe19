package dive

import (
	"github.com/godive/dive/logger"
)

// Option configures a Diver.
type Option func(*Options)

// Options holds all configuration for a Diver.
type Options struct {
	// Logger receives debug traces of vivifications and walk errors.
	// nil disables tracing entirely.
	Logger *logger.Logger

	// MaxDepth caps the number of keys a single path may carry.
	// 0 means unlimited.
	MaxDepth int

	// PathCacheSize is the capacity of the path-expression compile
	// cache.
	PathCacheSize int

	// CollectMetrics enables the per-Diver counters.
	CollectMetrics bool
}

// DefaultOptions returns the default configuration.
func DefaultOptions() *Options {
	return &Options{
		Logger:         nil,
		MaxDepth:       0,
		PathCacheSize:  256,
		CollectMetrics: true,
	}
}

// WithLogger sets the trace logger.
func WithLogger(l *logger.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithMaxDepth caps path length. 0 removes the cap.
func WithMaxDepth(n int) Option {
	return func(o *Options) {
		o.MaxDepth = n
	}
}

// WithPathCacheSize sets the capacity of the path-expression compile
// cache.
func WithPathCacheSize(n int) Option {
	return func(o *Options) {
		o.PathCacheSize = n
	}
}

// WithMetrics enables or disables counter collection.
func WithMetrics(enable bool) Option {
	return func(o *Options) {
		o.CollectMetrics = enable
	}
}
