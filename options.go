package kmeans3d

import (
	"log/slog"
	"math/rand"
	"time"
)

type options struct {
	rng              *rand.Rand
	logger           *Logger
	metricsCollector MetricsCollector
}

// Option configures engine construction.
type Option func(*options)

func applyOptions(opts []Option) options {
	o := options{
		logger:           NoopLogger(),
		metricsCollector: NoopMetricsCollector{},
	}
	for _, fn := range opts {
		fn(&o)
	}
	if o.rng == nil {
		o.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return o
}

// WithSeed seeds the generator used to pick the initial centroids.
// Two engines built from the same points, k and seed start from the same
// centroids.
func WithSeed(seed int64) Option {
	return func(o *options) {
		o.rng = rand.New(rand.NewSource(seed))
	}
}

// WithRand injects the generator used to pick the initial centroids.
//
// The generator is only read during construction. A *rand.Rand is not safe
// for concurrent use, so do not share one between engines built on
// different goroutines.
func WithRand(rng *rand.Rand) Option {
	return func(o *options) {
		o.rng = rng
	}
}

// WithLogger configures structured logging.
// Pass nil to disable logging.
//
// Example with JSON logging:
//
//	logger := kmeans3d.NewJSONLogger(slog.LevelDebug)
//	eng, _ := kmeans3d.New(points, 3, kmeans3d.WithLogger(logger))
func WithLogger(logger *Logger) Option {
	return func(o *options) {
		if logger == nil {
			logger = NoopLogger()
		}
		o.logger = logger
	}
}

// WithLogLevel creates a text logger with the specified level and sets it.
// Convenience wrapper for WithLogger(NewTextLogger(level)).
func WithLogLevel(level slog.Level) Option {
	return func(o *options) {
		o.logger = NewTextLogger(level)
	}
}

// WithMetricsCollector configures a metrics collector.
// Pass nil to disable metrics collection.
func WithMetricsCollector(mc MetricsCollector) Option {
	return func(o *options) {
		if mc == nil {
			mc = NoopMetricsCollector{}
		}
		o.metricsCollector = mc
	}
}
