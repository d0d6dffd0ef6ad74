package kmeans3d

import (
	"io"
	"log/slog"
	"os"
)

// Logger wraps slog.Logger with clustering-specific helpers.
// This provides structured logging with consistent field names.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses default text handler to stderr.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}
	return &Logger{
		Logger: slog.New(handler),
	}
}

// NewJSONLogger creates a Logger that outputs JSON-formatted logs.
// level sets the minimum log level (e.g., slog.LevelDebug, slog.LevelInfo).
func NewJSONLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NewTextLogger creates a Logger that outputs human-readable text logs.
func NewTextLogger(level slog.Level) *Logger {
	return NewLogger(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// NoopLogger creates a Logger that discards all log output.
func NoopLogger() *Logger {
	return NewLogger(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{
		Level: slog.Level(1000), // Unreachable level
	}))
}

// WithK adds a k (cluster count) field to the logger.
func (l *Logger) WithK(k int) *Logger {
	return &Logger{
		Logger: l.Logger.With("k", k),
	}
}

// WithCount adds a point count field to the logger.
func (l *Logger) WithCount(count int) *Logger {
	return &Logger{
		Logger: l.Logger.With("count", count),
	}
}

// WithSeed adds a seed field to the logger.
func (l *Logger) WithSeed(seed int64) *Logger {
	return &Logger{
		Logger: l.Logger.With("seed", seed),
	}
}

// LogInit logs engine construction.
func (l *Logger) LogInit(k, points int, err error) {
	if err != nil {
		l.Error("engine initialization failed",
			"k", k,
			"points", points,
			"error", err,
		)
		return
	}
	l.Debug("engine initialized",
		"k", k,
		"points", points,
	)
}

// LogStep logs one refinement iteration.
func (l *Logger) LogStep(iteration int, changed bool, empty int) {
	l.Debug("step completed",
		"iteration", iteration,
		"changed", changed,
		"empty_clusters", empty,
	)
}

// LogConverged logs the end of a RunToConvergence call.
func (l *Logger) LogConverged(iterations int, converged bool) {
	if !converged {
		l.Warn("iteration limit reached before convergence",
			"iterations", iterations,
		)
		return
	}
	l.Info("clustering converged",
		"iterations", iterations,
	)
}

// LogRestart logs the outcome of one seeded restart.
func (l *Logger) LogRestart(seed int64, inertia float64, err error) {
	if err != nil {
		l.Error("restart failed",
			"seed", seed,
			"error", err,
		)
		return
	}
	l.Debug("restart completed",
		"seed", seed,
		"inertia", inertia,
	)
}
