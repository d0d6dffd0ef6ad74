package kmeans3d

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting clustering metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    steps        prometheus.Counter
//	    stepDuration prometheus.Histogram
//	}
//
//	func (p *PrometheusCollector) RecordStep(d time.Duration, changed bool, empty int) {
//	    p.steps.Inc()
//	    p.stepDuration.Observe(d.Seconds())
//	}
type MetricsCollector interface {
	// RecordInit is called after each engine construction attempt.
	RecordInit(k, points int, err error)

	// RecordStep is called after each refinement iteration.
	// empty is the number of clusters that had no members in this step.
	RecordStep(duration time.Duration, changed bool, empty int)

	// RecordRun is called when RunToConvergence returns.
	RecordRun(iterations int, converged bool, duration time.Duration)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInit(int, int, error)          {}
func (NoopMetricsCollector) RecordStep(time.Duration, bool, int) {}
func (NoopMetricsCollector) RecordRun(int, bool, time.Duration)  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	InitCount      atomic.Int64
	InitErrors     atomic.Int64
	StepCount      atomic.Int64
	StepChanged    atomic.Int64
	StepTotalNanos atomic.Int64
	EmptyClusters  atomic.Int64
	RunCount       atomic.Int64
	RunConverged   atomic.Int64
	RunTotalNanos  atomic.Int64
	RunIterations  atomic.Int64
}

// RecordInit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInit(_, _ int, err error) {
	b.InitCount.Add(1)
	if err != nil {
		b.InitErrors.Add(1)
	}
}

// RecordStep implements MetricsCollector.
func (b *BasicMetricsCollector) RecordStep(duration time.Duration, changed bool, empty int) {
	b.StepCount.Add(1)
	b.StepTotalNanos.Add(duration.Nanoseconds())
	b.EmptyClusters.Add(int64(empty))
	if changed {
		b.StepChanged.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(iterations int, converged bool, duration time.Duration) {
	b.RunCount.Add(1)
	b.RunIterations.Add(int64(iterations))
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if converged {
		b.RunConverged.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		InitCount:     b.InitCount.Load(),
		InitErrors:    b.InitErrors.Load(),
		StepCount:     b.StepCount.Load(),
		StepChanged:   b.StepChanged.Load(),
		StepAvgNanos:  b.getAvgStepNanos(),
		EmptyClusters: b.EmptyClusters.Load(),
		RunCount:      b.RunCount.Load(),
		RunConverged:  b.RunConverged.Load(),
		RunIterations: b.RunIterations.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgStepNanos() int64 {
	count := b.StepCount.Load()
	if count == 0 {
		return 0
	}
	return b.StepTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	InitCount     int64
	InitErrors    int64
	StepCount     int64
	StepChanged   int64
	StepAvgNanos  int64
	EmptyClusters int64
	RunCount      int64
	RunConverged  int64
	RunIterations int64
}
